package links

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"

	"github.com/m04kA/SMC-SchedulingService/internal/domain"
	linkRepo "github.com/m04kA/SMC-SchedulingService/internal/infra/storage/link"
	"github.com/m04kA/SMC-SchedulingService/internal/service/links/models"
)

// slugAttempts число попыток сгенерировать уникальный slug
// Коллизия 8-символьного префикса uuid крайне маловероятна, но уникальный
// индекс в БД остаётся последней линией защиты
const slugAttempts = 3

// Service сервис для работы со scheduling-ссылками
type Service struct {
	linkRepo    LinkRepository
	meetingRepo MeetingRepository
	logger      Logger
}

// NewService создает новый экземпляр сервиса ссылок
func NewService(
	linkRepo LinkRepository,
	meetingRepo MeetingRepository,
	logger Logger,
) *Service {
	return &Service{
		linkRepo:    linkRepo,
		meetingRepo: meetingRepo,
		logger:      logger,
	}
}

// Create создает новую scheduling-ссылку владельца
// Slug генерируется сервисом и не принимается от клиента
func (s *Service) Create(ctx context.Context, req *models.CreateLinkRequest) (*models.LinkResponse, error) {
	s.logger.Info("Create: creating link for owner=%d, title=%q", req.OwnerID, req.Title)

	// 1. Валидация входных данных
	if req.Title == "" {
		s.logger.Warn("Create: empty title for owner=%d", req.OwnerID)
		return nil, fmt.Errorf("%w: title is required", ErrInvalidInput)
	}
	if len(req.CustomQuestions) > domain.MaxQuestionsPerLink {
		s.logger.Warn("Create: too many questions (%d) for owner=%d", len(req.CustomQuestions), req.OwnerID)
		return nil, fmt.Errorf("%w: at most %d questions per link", ErrInvalidInput, domain.MaxQuestionsPerLink)
	}
	if req.MaxDaysAhead == 0 {
		req.MaxDaysAhead = domain.DefaultMaxDaysAhead
	}

	// 2. Нумеруем вопросы: идентификаторы назначаются ссылкой, начиная с 1
	for i := range req.CustomQuestions {
		req.CustomQuestions[i].ID = int64(i + 1)
	}

	// 3. Проверяем доменные инварианты
	link := req.ToDomainLink(newSlug())
	if err := link.Validate(); err != nil {
		s.logger.Warn("Create: validation failed for owner=%d: %v", req.OwnerID, err)
		return nil, fmt.Errorf("%w: %v", ErrInvalidInput, err)
	}

	// 4. Создаем ссылку, перегенерируя slug при коллизии
	var created *domain.SchedulingLink
	var err error
	for attempt := 0; attempt < slugAttempts; attempt++ {
		created, err = s.linkRepo.Create(ctx, link)
		if err == nil {
			break
		}
		if !errors.Is(err, linkRepo.ErrSlugConflict) {
			s.logger.Error("Create: repository error: %v", err)
			return nil, fmt.Errorf("%w: Create - repository error: %v", ErrInternal, err)
		}
		s.logger.Warn("Create: slug %s already taken, regenerating", link.Slug)
		link.Slug = newSlug()
	}
	if err != nil {
		s.logger.Error("Create: failed to generate unique slug after %d attempts", slugAttempts)
		return nil, fmt.Errorf("%w: failed to generate unique slug: %v", ErrInternal, err)
	}

	s.logger.Info("Create: successfully created link id=%d, slug=%s", created.ID, created.Slug)
	return models.FromDomainLink(created, nil), nil
}

// GetBySlug получает ссылку по slug
// Публичный метод - доступен приглашённым без аутентификации
func (s *Service) GetBySlug(ctx context.Context, slug string) (*models.LinkResponse, error) {
	s.logger.Info("GetBySlug: fetching link slug=%s", slug)

	link, err := s.linkRepo.GetBySlug(ctx, slug)
	if err != nil {
		if errors.Is(err, linkRepo.ErrLinkNotFound) {
			s.logger.Warn("GetBySlug: link slug=%s not found", slug)
			return nil, ErrLinkNotFound
		}
		s.logger.Error("GetBySlug: repository error for slug=%s: %v", slug, err)
		return nil, fmt.Errorf("%w: GetBySlug - repository error: %v", ErrInternal, err)
	}

	var used *int
	if link.MaxUses != nil {
		count, err := s.meetingRepo.CountByLink(ctx, link.ID)
		if err != nil {
			s.logger.Error("GetBySlug: failed to count meetings for link id=%d: %v", link.ID, err)
			return nil, fmt.Errorf("%w: failed to count meetings: %v", ErrInternal, err)
		}
		used = &count
	}

	s.logger.Info("GetBySlug: successfully fetched link id=%d", link.ID)
	return models.FromDomainLink(link, used), nil
}

// ListByOwner получает все ссылки владельца
func (s *Service) ListByOwner(ctx context.Context, ownerID int64) (*models.LinkListResponse, error) {
	s.logger.Info("ListByOwner: fetching links for owner=%d", ownerID)

	links, err := s.linkRepo.ListByOwner(ctx, ownerID)
	if err != nil {
		s.logger.Error("ListByOwner: repository error for owner=%d: %v", ownerID, err)
		return nil, fmt.Errorf("%w: ListByOwner - repository error: %v", ErrInternal, err)
	}

	s.logger.Info("ListByOwner: successfully fetched %d links for owner=%d", len(links), ownerID)
	return models.FromDomainLinkList(links), nil
}

// ListMeetings получает встречи, закоммиченные по ссылке
// Доступно только владельцу ссылки
func (s *Service) ListMeetings(ctx context.Context, slug string, userID int64) (*models.MeetingListResponse, error) {
	s.logger.Info("ListMeetings: fetching meetings for slug=%s by user=%d", slug, userID)

	// 1. Получаем ссылку для проверки прав доступа
	link, err := s.linkRepo.GetBySlug(ctx, slug)
	if err != nil {
		if errors.Is(err, linkRepo.ErrLinkNotFound) {
			s.logger.Warn("ListMeetings: link slug=%s not found", slug)
			return nil, ErrLinkNotFound
		}
		s.logger.Error("ListMeetings: repository error for slug=%s: %v", slug, err)
		return nil, fmt.Errorf("%w: ListMeetings - repository error: %v", ErrInternal, err)
	}

	// 2. Проверяем права доступа (только владелец ссылки)
	if link.OwnerID != userID {
		s.logger.Warn("ListMeetings: user=%d is not the owner of link slug=%s", userID, slug)
		return nil, ErrAccessDenied
	}

	// 3. Получаем встречи
	meetings, err := s.meetingRepo.ListByLink(ctx, link.ID)
	if err != nil {
		s.logger.Error("ListMeetings: repository error for link id=%d: %v", link.ID, err)
		return nil, fmt.Errorf("%w: ListMeetings - repository error: %v", ErrInternal, err)
	}

	s.logger.Info("ListMeetings: successfully fetched %d meetings for slug=%s", len(meetings), slug)
	return models.FromDomainMeetingList(meetings), nil
}

// Delete удаляет ссылку владельца
// Встречи ссылки удаляются каскадно на уровне БД
func (s *Service) Delete(ctx context.Context, id int64, ownerID int64) error {
	s.logger.Info("Delete: deleting link id=%d by owner=%d", id, ownerID)

	if err := s.linkRepo.Delete(ctx, id, ownerID); err != nil {
		if errors.Is(err, linkRepo.ErrLinkNotFound) {
			s.logger.Warn("Delete: link id=%d not found for owner=%d", id, ownerID)
			return ErrLinkNotFound
		}
		s.logger.Error("Delete: repository error for link id=%d: %v", id, err)
		return fmt.Errorf("%w: Delete - repository error: %v", ErrInternal, err)
	}

	s.logger.Info("Delete: successfully deleted link id=%d", id)
	return nil
}

// newSlug генерирует короткий публичный идентификатор ссылки
func newSlug() string {
	return uuid.NewString()[:domain.SlugLength]
}
