package get_link

import (
	"context"

	"github.com/m04kA/SMC-SchedulingService/internal/service/links/models"
)

type LinkService interface {
	GetBySlug(ctx context.Context, slug string) (*models.LinkResponse, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
