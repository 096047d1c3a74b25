package models

import (
	"time"

	"github.com/m04kA/SMC-SchedulingService/internal/domain"
	"github.com/m04kA/SMC-SchedulingService/pkg/types"
)

// Request модели

// CreateWindowRequest запрос на создание окна доступности
type CreateWindowRequest struct {
	OwnerID   int64
	Weekday   int // 0 = понедельник ... 6 = воскресенье
	StartTime types.TimeString
	EndTime   types.TimeString
}

// Response модели

// WindowResponse ответ с данными окна доступности
type WindowResponse struct {
	ID        int64            `json:"id"`
	OwnerID   int64            `json:"ownerId"`
	Weekday   int              `json:"weekday"`
	StartTime types.TimeString `json:"startTime"`
	EndTime   types.TimeString `json:"endTime"`
	CreatedAt time.Time        `json:"createdAt"`
	UpdatedAt time.Time        `json:"updatedAt"`
}

// WindowListResponse ответ со списком окон
type WindowListResponse struct {
	Windows []WindowResponse `json:"windows"`
}

// Методы конвертации

// FromDomainWindow конвертирует domain модель в DTO
func FromDomainWindow(w *domain.WeeklyWindow) *WindowResponse {
	if w == nil {
		return nil
	}
	return &WindowResponse{
		ID:        w.ID,
		OwnerID:   w.OwnerID,
		Weekday:   w.Weekday,
		StartTime: w.StartTime,
		EndTime:   w.EndTime,
		CreatedAt: w.CreatedAt,
		UpdatedAt: w.UpdatedAt,
	}
}

// FromDomainWindowList конвертирует список domain моделей в DTO
func FromDomainWindowList(windows []*domain.WeeklyWindow) *WindowListResponse {
	resp := &WindowListResponse{
		Windows: make([]WindowResponse, 0, len(windows)),
	}
	for _, window := range windows {
		if windowResp := FromDomainWindow(window); windowResp != nil {
			resp.Windows = append(resp.Windows, *windowResp)
		}
	}
	return resp
}

// ToDomainWindow конвертирует CreateWindowRequest в domain модель
func (r *CreateWindowRequest) ToDomainWindow() *domain.WeeklyWindow {
	return &domain.WeeklyWindow{
		OwnerID:   r.OwnerID,
		Weekday:   r.Weekday,
		StartTime: r.StartTime,
		EndTime:   r.EndTime,
	}
}
