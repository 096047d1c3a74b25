package create_meeting

import (
	"context"
	"time"

	"github.com/m04kA/SMC-SchedulingService/internal/domain"
	"github.com/m04kA/SMC-SchedulingService/internal/integrations/calendarservice"
)

// LinkRepository интерфейс репозитория scheduling-ссылок
type LinkRepository interface {
	GetBySlug(ctx context.Context, slug string) (*domain.SchedulingLink, error)
}

// WindowRepository интерфейс репозитория окон доступности
type WindowRepository interface {
	ListByOwner(ctx context.Context, ownerID int64) ([]*domain.WeeklyWindow, error)
}

// MeetingRepository интерфейс репозитория встреч
type MeetingRepository interface {
	Create(ctx context.Context, meeting *domain.Meeting) (*domain.Meeting, error)
	CountByLink(ctx context.Context, linkID int64) (int, error)
	ListByOwnerOverlapping(ctx context.Context, ownerID int64, from, to time.Time) ([]*domain.Meeting, error)
}

// CalendarServiceClient интерфейс клиента для CalendarService
type CalendarServiceClient interface {
	FetchBusyIntervals(ctx context.Context, ownerID int64, from, to time.Time) (*calendarservice.BusyTimes, error)
}

// TransactionManager интерфейс для управления транзакциями
type TransactionManager interface {
	DoSerializable(ctx context.Context, fn func(ctx context.Context) error) error
}

// TimeProvider интерфейс для получения текущего времени (для тестирования)
type TimeProvider interface {
	Now() time.Time
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}

// RealTimeProvider реальный провайдер времени для production
type RealTimeProvider struct{}

// Now возвращает текущее время
func (p *RealTimeProvider) Now() time.Time {
	return time.Now()
}
