package create_meeting

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/m04kA/SMC-SchedulingService/internal/domain"
	linkRepo "github.com/m04kA/SMC-SchedulingService/internal/infra/storage/link"
	calendarClient "github.com/m04kA/SMC-SchedulingService/internal/integrations/calendarservice"
)

// UseCase use case для создания встречи по scheduling-ссылке
//
// Коммит проходит строго через сериализуемую транзакцию: перепроверка
// лимита использований, чтение встреч владельца с FOR UPDATE, проверка
// конфликтов и вставка выполняются атомарно. Из N конкурентных запросов
// на один слот успешным будет ровно один
type UseCase struct {
	linkRepo       LinkRepository
	windowRepo     WindowRepository
	meetingRepo    MeetingRepository
	calendarClient CalendarServiceClient
	txManager      TransactionManager
	timeProvider   TimeProvider
	logger         Logger
}

// NewUseCase создает новый экземпляр use case
func NewUseCase(
	linkRepo LinkRepository,
	windowRepo WindowRepository,
	meetingRepo MeetingRepository,
	calendarClient CalendarServiceClient,
	txManager TransactionManager,
	logger Logger,
) *UseCase {
	return &UseCase{
		linkRepo:       linkRepo,
		windowRepo:     windowRepo,
		meetingRepo:    meetingRepo,
		calendarClient: calendarClient,
		txManager:      txManager,
		timeProvider:   &RealTimeProvider{},
		logger:         logger,
	}
}

// Execute выполняет use case создания встречи
func (uc *UseCase) Execute(ctx context.Context, req *Request) (*Response, error) {
	uc.logger.Info("CreateMeeting: slug=%s, start=%s", req.Slug, req.StartTime)

	// 1. Валидация входных данных
	if err := validateRequest(req); err != nil {
		uc.logger.Warn("CreateMeeting: validation failed: %v", err)
		return nil, err
	}

	// 2. Получаем текущее время (вся математика слотов - в UTC)
	now := uc.timeProvider.Now().UTC()
	start := req.StartTime.UTC()

	// 3. Получаем ссылку по slug
	link, err := uc.linkRepo.GetBySlug(ctx, req.Slug)
	if err != nil {
		if errors.Is(err, linkRepo.ErrLinkNotFound) {
			uc.logger.Warn("CreateMeeting: link slug=%s not found", req.Slug)
			return nil, ErrLinkNotFound
		}
		uc.logger.Error("CreateMeeting: failed to get link slug=%s: %v", req.Slug, err)
		return nil, fmt.Errorf("%w: failed to get link: %v", ErrInternal, err)
	}

	// 4. Проверяем срок действия ссылки
	if link.IsExpired(now) {
		uc.logger.Warn("CreateMeeting: link slug=%s expired at %s", req.Slug, link.ExpirationDate)
		return nil, ErrLinkExpired
	}

	// 5. Проверяем время встречи: не в прошлом и в пределах горизонта
	if err := validateMeetingTime(start, now, link.MaxDaysAhead); err != nil {
		uc.logger.Warn("CreateMeeting: slug=%s, start=%s rejected: %v", req.Slug, start, err)
		return nil, err
	}

	// 6. Проверяем, что слот лежит на сетке одного из окон владельца
	windows, err := uc.windowRepo.ListByOwner(ctx, link.OwnerID)
	if err != nil {
		uc.logger.Error("CreateMeeting: failed to list windows for owner=%d: %v", link.OwnerID, err)
		return nil, fmt.Errorf("%w: failed to list windows: %v", ErrInternal, err)
	}
	if !matchesAnyWindow(windows, start, link.Duration()) {
		uc.logger.Warn("CreateMeeting: slug=%s, start=%s is outside availability windows", req.Slug, start)
		return nil, ErrOutsideWindow
	}

	// 7. Проверяем ответы на обязательные вопросы
	if err := validateAnswers(link.CustomQuestions, req.Answers); err != nil {
		uc.logger.Warn("CreateMeeting: slug=%s: %v", req.Slug, err)
		return nil, err
	}

	// 8. Свежая внешняя занятость - до транзакции, чтобы не держать
	// сериализуемую транзакцию открытой на время сетевого вызова
	// Путь записи fail closed: без занятости коммитить нельзя
	slot := domain.NewInterval(start, start.Add(link.Duration()))
	busy, err := uc.fetchBusyFailClosed(ctx, link.OwnerID, slot, link.BufferBefore(), link.BufferAfter())
	if err != nil {
		return nil, err
	}

	// 9. Проверяем конфликт с внешней занятостью (с буферами ссылки)
	if slot.OverlapsAny(busy) {
		uc.logger.Warn("CreateMeeting: slug=%s, start=%s conflicts with external busy interval", req.Slug, start)
		return nil, ErrSlotConflict
	}

	// 10. Сериализуемая транзакция: перепроверка лимита, чтение встреч
	// с FOR UPDATE, проверка конфликтов, вставка
	var created *domain.Meeting
	err = uc.txManager.DoSerializable(ctx, func(txCtx context.Context) error {
		// 10.1. Перепроверяем лимит использований внутри транзакции -
		// конкурентный коммит мог исчерпать последнее использование
		if link.MaxUses != nil {
			used, err := uc.meetingRepo.CountByLink(txCtx, link.ID)
			if err != nil {
				return fmt.Errorf("failed to count meetings: %w", err)
			}
			if link.IsExhausted(used) {
				return ErrLinkExhausted
			}
		}

		// 10.2. Встречи владельца вокруг слота, с запасом на буферы
		// Внутри транзакции репозиторий добавляет FOR UPDATE - это и есть
		// точка сериализации конкурентных коммитов одного владельца
		from := slot.Start.Add(-link.BufferBefore())
		to := slot.End.Add(link.BufferAfter())
		meetings, err := uc.meetingRepo.ListByOwnerOverlapping(txCtx, link.OwnerID, from, to)
		if err != nil {
			return fmt.Errorf("failed to list meetings: %w", err)
		}

		// 10.3. Проверяем конфликт с уже закоммиченными встречами
		for _, m := range meetings {
			if slot.Overlaps(m.Interval().Expand(link.BufferAfter(), link.BufferBefore())) {
				return ErrSlotConflict
			}
		}

		// 10.4. Вставляем встречу
		created, err = uc.meetingRepo.Create(txCtx, &domain.Meeting{
			OwnerID:         link.OwnerID,
			LinkID:          link.ID,
			InviteeEmail:    req.InviteeEmail,
			InviteeUserID:   req.InviteeUserID,
			LinkedInURL:     req.LinkedInURL,
			StartTime:       start,
			DurationMinutes: link.MeetingLengthMinutes,
			Answers:         req.Answers,
		})
		if err != nil {
			return fmt.Errorf("failed to create meeting: %w", err)
		}
		return nil
	})
	if err != nil {
		if errors.Is(err, ErrLinkExhausted) {
			uc.logger.Warn("CreateMeeting: link slug=%s exhausted", req.Slug)
			return nil, ErrLinkExhausted
		}
		if errors.Is(err, ErrSlotConflict) {
			uc.logger.Warn("CreateMeeting: slug=%s, start=%s lost the slot to a concurrent booking", req.Slug, start)
			return nil, ErrSlotConflict
		}
		uc.logger.Error("CreateMeeting: transaction failed for slug=%s: %v", req.Slug, err)
		return nil, fmt.Errorf("%w: transaction failed: %v", ErrInternal, err)
	}

	uc.logger.Info("CreateMeeting: meeting id=%d committed, slug=%s, start=%s", created.ID, req.Slug, start)

	return &Response{
		ID:              created.ID,
		OwnerID:         created.OwnerID,
		LinkID:          created.LinkID,
		Slug:            link.Slug,
		Title:           link.Title,
		InviteeEmail:    created.InviteeEmail,
		StartTime:       created.StartTime,
		DurationMinutes: created.DurationMinutes,
		Answers:         created.Answers,
		CreatedAt:       created.CreatedAt,
	}, nil
}

// fetchBusyFailClosed получает внешнюю занятость для окрестности слота
// В отличие от пути чтения недоступность CalendarService здесь фатальна:
// коммит поверх неизвестного конфликта недопустим
func (uc *UseCase) fetchBusyFailClosed(ctx context.Context, ownerID int64, slot domain.Interval, bufferBefore, bufferAfter time.Duration) ([]domain.Interval, error) {
	from := slot.Start.Add(-bufferBefore)
	to := slot.End.Add(bufferAfter)

	busyTimes, err := uc.calendarClient.FetchBusyIntervals(ctx, ownerID, from, to)
	if err != nil {
		if errors.Is(err, calendarClient.ErrUnavailable) {
			uc.logger.Warn("CreateMeeting: calendar service unavailable for owner=%d, refusing to commit: %v", ownerID, err)
			return nil, ErrCalendarUnavailable
		}
		uc.logger.Error("CreateMeeting: calendar fetch failed for owner=%d: %v", ownerID, err)
		return nil, fmt.Errorf("%w: calendar fetch failed: %v", ErrInternal, err)
	}

	expanded := make([]domain.Interval, len(busyTimes.Intervals))
	for i, interval := range busyTimes.Intervals {
		expanded[i] = interval.Expand(bufferAfter, bufferBefore)
	}
	return expanded, nil
}
