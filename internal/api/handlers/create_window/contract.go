package create_window

import (
	"context"

	"github.com/m04kA/SMC-SchedulingService/internal/service/windows/models"
)

type WindowService interface {
	Create(ctx context.Context, req *models.CreateWindowRequest) (*models.WindowResponse, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
