package create_window

import (
	"github.com/m04kA/SMC-SchedulingService/internal/service/windows/models"
	"github.com/m04kA/SMC-SchedulingService/pkg/types"
)

// CreateWindowRequest HTTP request model
// Weekday: 0 = понедельник ... 6 = воскресенье
type CreateWindowRequest struct {
	Weekday   int    `json:"weekday"`
	StartTime string `json:"startTime"` // "09:00"
	EndTime   string `json:"endTime"`   // "17:00"
}

// ToServiceRequest конвертирует HTTP запрос в модель сервиса
func (r *CreateWindowRequest) ToServiceRequest(ownerID int64) (*models.CreateWindowRequest, error) {
	startTime, err := types.NewTimeStringFromString(r.StartTime)
	if err != nil {
		return nil, err
	}
	endTime, err := types.NewTimeStringFromString(r.EndTime)
	if err != nil {
		return nil, err
	}

	return &models.CreateWindowRequest{
		OwnerID:   ownerID,
		Weekday:   r.Weekday,
		StartTime: startTime,
		EndTime:   endTime,
	}, nil
}
