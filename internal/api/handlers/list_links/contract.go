package list_links

import (
	"context"

	"github.com/m04kA/SMC-SchedulingService/internal/service/links/models"
)

type LinkService interface {
	ListByOwner(ctx context.Context, ownerID int64) (*models.LinkListResponse, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
