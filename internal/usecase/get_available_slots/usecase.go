package get_available_slots

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/m04kA/SMC-SchedulingService/internal/domain"
	linkRepo "github.com/m04kA/SMC-SchedulingService/internal/infra/storage/link"
	calendarClient "github.com/m04kA/SMC-SchedulingService/internal/integrations/calendarservice"
	"github.com/m04kA/SMC-SchedulingService/pkg/types"
)

// UseCase use case для получения доступных слотов по scheduling-ссылке
//
// Чтение не имеет side effects: результат - чистая функция от снапшотов
// окон, встреч и занятых интервалов, запросы могут выполняться параллельно
type UseCase struct {
	linkRepo       LinkRepository
	windowRepo     WindowRepository
	meetingRepo    MeetingRepository
	calendarClient CalendarServiceClient
	timeProvider   TimeProvider
	logger         Logger
}

// NewUseCase создает новый экземпляр use case
func NewUseCase(
	linkRepo LinkRepository,
	windowRepo WindowRepository,
	meetingRepo MeetingRepository,
	calendarClient CalendarServiceClient,
	logger Logger,
) *UseCase {
	return &UseCase{
		linkRepo:       linkRepo,
		windowRepo:     windowRepo,
		meetingRepo:    meetingRepo,
		calendarClient: calendarClient,
		timeProvider:   &RealTimeProvider{},
		logger:         logger,
	}
}

// Execute выполняет use case получения доступных слотов
func (uc *UseCase) Execute(ctx context.Context, req *Request) (*Response, error) {
	uc.logger.Info("GetAvailableSlots: slug=%s", req.Slug)

	// 1. Валидация входных данных
	if err := validateRequest(req); err != nil {
		uc.logger.Warn("GetAvailableSlots: validation failed: %v", err)
		return nil, err
	}

	// 2. Получаем текущее время (вся математика слотов - в UTC)
	now := uc.timeProvider.Now().UTC()

	// 3. Получаем ссылку по slug
	link, err := uc.linkRepo.GetBySlug(ctx, req.Slug)
	if err != nil {
		if errors.Is(err, linkRepo.ErrLinkNotFound) {
			uc.logger.Warn("GetAvailableSlots: link slug=%s not found", req.Slug)
			return nil, ErrLinkNotFound
		}
		uc.logger.Error("GetAvailableSlots: failed to get link slug=%s: %v", req.Slug, err)
		return nil, fmt.Errorf("%w: failed to get link: %v", ErrInternal, err)
	}

	// 4. Проверяем срок действия ссылки
	if link.IsExpired(now) {
		uc.logger.Warn("GetAvailableSlots: link slug=%s expired at %s", req.Slug, link.ExpirationDate)
		return nil, ErrLinkExpired
	}

	// 5. Проверяем лимит использований
	if link.MaxUses != nil {
		used, err := uc.meetingRepo.CountByLink(ctx, link.ID)
		if err != nil {
			uc.logger.Error("GetAvailableSlots: failed to count meetings for link id=%d: %v", link.ID, err)
			return nil, fmt.Errorf("%w: failed to count meetings: %v", ErrInternal, err)
		}
		if link.IsExhausted(used) {
			uc.logger.Warn("GetAvailableSlots: link slug=%s exhausted (%d/%d uses)", req.Slug, used, *link.MaxUses)
			return nil, ErrLinkExhausted
		}
	}

	// 6. Диапазон дат: [сегодня, сегодня + maxDaysAhead] включительно
	rangeStart := dateOnly(now)
	rangeEnd := rangeStart.AddDate(0, 0, link.MaxDaysAhead)

	// 7. Получаем недельные окна владельца и материализуем их по дням
	windows, err := uc.windowRepo.ListByOwner(ctx, link.OwnerID)
	if err != nil {
		uc.logger.Error("GetAvailableSlots: failed to list windows for owner=%d: %v", link.OwnerID, err)
		return nil, fmt.Errorf("%w: failed to list windows: %v", ErrInternal, err)
	}
	days := expandWindows(windows, rangeStart, rangeEnd)

	// 8. Получаем занятые интервалы из внешних календарей
	// Путь чтения - best effort: при недоступности CalendarService деградируем
	// до "внешняя занятость неизвестна", но не роняем весь запрос
	busy, err := uc.fetchBusyBestEffort(ctx, link.OwnerID, rangeStart, rangeEnd.AddDate(0, 0, 1))
	if err != nil {
		return nil, err
	}

	// 9. Получаем уже закоммиченные встречи владельца за тот же диапазон -
	// занятые слоты не должны показываться как доступные
	meetings, err := uc.meetingRepo.ListByOwnerOverlapping(ctx, link.OwnerID, rangeStart, rangeEnd.AddDate(0, 0, 1))
	if err != nil {
		uc.logger.Error("GetAvailableSlots: failed to list meetings for owner=%d: %v", link.OwnerID, err)
		return nil, fmt.Errorf("%w: failed to list meetings: %v", ErrInternal, err)
	}

	// 10. Блокирующие интервалы: внешняя занятость с буферами ссылки + встречи
	// Дубли и пересечения внутри busy не мешают - слот отбрасывается при
	// первом же пересечении
	blocked := expandBusyIntervals(busy, link.BufferBefore(), link.BufferAfter())
	blocked = append(blocked, expandBusyIntervals(meetingIntervals(meetings), link.BufferBefore(), link.BufferAfter())...)

	// 11. По каждому дню: генерация слотов, дедупликация, фильтрация
	result := make([]DaySlots, 0, len(days))
	total := 0
	for _, day := range days {
		starts := collectDaySlots(day.windows, link.Duration())
		starts = filterSlots(starts, link.Duration(), blocked, now)
		if len(starts) == 0 {
			continue
		}

		slots := make([]types.TimeString, len(starts))
		for i, start := range starts {
			slots[i] = types.NewTimeString(start)
		}
		result = append(result, DaySlots{Date: day.date, Slots: slots})
		total += len(slots)
	}

	uc.logger.Info("GetAvailableSlots: slug=%s, %d slots across %d days", req.Slug, total, len(result))

	return &Response{
		Slug:                 link.Slug,
		OwnerID:              link.OwnerID,
		MeetingLengthMinutes: link.MeetingLengthMinutes,
		Days:                 result,
	}, nil
}

// fetchBusyBestEffort получает внешнюю занятость с деградацией при недоступности
// Частичный отказ отдельных календарей уже обработан клиентом (успешная часть
// возвращается, отказавшие календари только логируются); полный отказ сервиса
// на пути чтения деградирует до пустой занятости, остальные ошибки фатальны
func (uc *UseCase) fetchBusyBestEffort(ctx context.Context, ownerID int64, from, to time.Time) ([]domain.Interval, error) {
	busyTimes, err := uc.calendarClient.FetchBusyIntervals(ctx, ownerID, from, to)
	if err != nil {
		if errors.Is(err, calendarClient.ErrUnavailable) {
			uc.logger.Warn("GetAvailableSlots: calendar service unavailable for owner=%d, degrading to no busy intervals: %v", ownerID, err)
			return nil, nil
		}
		uc.logger.Error("GetAvailableSlots: calendar fetch failed for owner=%d: %v", ownerID, err)
		return nil, fmt.Errorf("%w: calendar fetch failed: %v", ErrInternal, err)
	}
	return busyTimes.Intervals, nil
}
