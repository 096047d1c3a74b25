package windows

import (
	"context"

	"github.com/m04kA/SMC-SchedulingService/internal/domain"
)

// WindowRepository интерфейс репозитория окон доступности
type WindowRepository interface {
	Create(ctx context.Context, window *domain.WeeklyWindow) (*domain.WeeklyWindow, error)
	ListByOwner(ctx context.Context, ownerID int64) ([]*domain.WeeklyWindow, error)
	Delete(ctx context.Context, id int64, ownerID int64) error
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
