package windows

import (
	"context"
	"errors"
	"fmt"

	windowRepo "github.com/m04kA/SMC-SchedulingService/internal/infra/storage/window"
	"github.com/m04kA/SMC-SchedulingService/internal/service/windows/models"
)

// Service сервис для работы с окнами доступности
//
// Окна одного владельца могут пересекаться - генератор слотов дедуплицирует
// совпадающие времена начала, поэтому пересечения здесь не отклоняются
type Service struct {
	windowRepo WindowRepository
	logger     Logger
}

// NewService создает новый экземпляр сервиса окон
func NewService(windowRepo WindowRepository, logger Logger) *Service {
	return &Service{
		windowRepo: windowRepo,
		logger:     logger,
	}
}

// Create создает новое окно доступности владельца
func (s *Service) Create(ctx context.Context, req *models.CreateWindowRequest) (*models.WindowResponse, error) {
	s.logger.Info("Create: creating window for owner=%d, weekday=%d, %s-%s",
		req.OwnerID, req.Weekday, req.StartTime, req.EndTime)

	// 1. Проверяем доменные инварианты (диапазон weekday, формат HH:MM, start < end)
	window := req.ToDomainWindow()
	if err := window.Validate(); err != nil {
		s.logger.Warn("Create: validation failed for owner=%d: %v", req.OwnerID, err)
		return nil, fmt.Errorf("%w: %v", ErrInvalidInput, err)
	}

	// 2. Создаем окно
	created, err := s.windowRepo.Create(ctx, window)
	if err != nil {
		s.logger.Error("Create: repository error: %v", err)
		return nil, fmt.Errorf("%w: Create - repository error: %v", ErrInternal, err)
	}

	s.logger.Info("Create: successfully created window id=%d", created.ID)
	return models.FromDomainWindow(created), nil
}

// ListByOwner получает все окна владельца
// Порядок стабилен: weekday, start_time, id
func (s *Service) ListByOwner(ctx context.Context, ownerID int64) (*models.WindowListResponse, error) {
	s.logger.Info("ListByOwner: fetching windows for owner=%d", ownerID)

	windows, err := s.windowRepo.ListByOwner(ctx, ownerID)
	if err != nil {
		s.logger.Error("ListByOwner: repository error for owner=%d: %v", ownerID, err)
		return nil, fmt.Errorf("%w: ListByOwner - repository error: %v", ErrInternal, err)
	}

	s.logger.Info("ListByOwner: successfully fetched %d windows for owner=%d", len(windows), ownerID)
	return models.FromDomainWindowList(windows), nil
}

// Delete удаляет окно владельца
// Чужое окно неотличимо от несуществующего - в обоих случаях not found
func (s *Service) Delete(ctx context.Context, id int64, ownerID int64) error {
	s.logger.Info("Delete: deleting window id=%d by owner=%d", id, ownerID)

	if err := s.windowRepo.Delete(ctx, id, ownerID); err != nil {
		if errors.Is(err, windowRepo.ErrWindowNotFound) {
			s.logger.Warn("Delete: window id=%d not found for owner=%d", id, ownerID)
			return ErrWindowNotFound
		}
		s.logger.Error("Delete: repository error for window id=%d: %v", id, err)
		return fmt.Errorf("%w: Delete - repository error: %v", ErrInternal, err)
	}

	s.logger.Info("Delete: successfully deleted window id=%d", id)
	return nil
}
