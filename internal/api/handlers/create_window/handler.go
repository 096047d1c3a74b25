package create_window

import (
	"errors"
	"net/http"

	"github.com/m04kA/SMC-SchedulingService/internal/api/handlers"
	"github.com/m04kA/SMC-SchedulingService/internal/api/middleware"
	"github.com/m04kA/SMC-SchedulingService/internal/service/windows"
)

const (
	msgInvalidRequestBody  = "некорректное тело запроса"
	msgInvalidTime         = "некорректный формат времени, ожидается HH:MM"
	msgMissingUserID       = "отсутствует ID пользователя"
	msgInvalidWindowParams = "некорректные параметры окна"
)

type Handler struct {
	service WindowService
	logger  Logger
}

func NewHandler(service WindowService, logger Logger) *Handler {
	return &Handler{
		service: service,
		logger:  logger,
	}
}

// Handle POST /api/v1/windows
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.GetUserID(r.Context())
	if !ok {
		h.logger.Warn("POST /windows - Missing user ID")
		handlers.RespondUnauthorized(w, msgMissingUserID)
		return
	}

	var req CreateWindowRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("POST /windows - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}

	serviceReq, err := req.ToServiceRequest(userID)
	if err != nil {
		h.logger.Warn("POST /windows - Failed to parse time: %v", err)
		handlers.RespondBadRequest(w, msgInvalidTime)
		return
	}

	result, err := h.service.Create(r.Context(), serviceReq)
	if err != nil {
		if errors.Is(err, windows.ErrInvalidInput) {
			h.logger.Warn("POST /windows - Invalid window params: user_id=%d, error=%v", userID, err)
			handlers.RespondBadRequest(w, msgInvalidWindowParams)
			return
		}
		h.logger.Error("POST /windows - Failed to create window: user_id=%d, error=%v", userID, err)
		handlers.RespondInternalError(w)
		return
	}

	h.logger.Info("POST /windows - Window created successfully: window_id=%d, user_id=%d", result.ID, userID)
	handlers.RespondJSON(w, http.StatusCreated, result)
}
