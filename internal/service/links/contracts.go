package links

import (
	"context"

	"github.com/m04kA/SMC-SchedulingService/internal/domain"
)

// LinkRepository интерфейс репозитория scheduling-ссылок
type LinkRepository interface {
	Create(ctx context.Context, link *domain.SchedulingLink) (*domain.SchedulingLink, error)
	GetBySlug(ctx context.Context, slug string) (*domain.SchedulingLink, error)
	ListByOwner(ctx context.Context, ownerID int64) ([]*domain.SchedulingLink, error)
	Delete(ctx context.Context, id int64, ownerID int64) error
}

// MeetingRepository интерфейс репозитория встреч
type MeetingRepository interface {
	CountByLink(ctx context.Context, linkID int64) (int, error)
	ListByLink(ctx context.Context, linkID int64) ([]*domain.Meeting, error)
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
