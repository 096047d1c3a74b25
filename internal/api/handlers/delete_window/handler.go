package delete_window

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gorilla/mux"

	"github.com/m04kA/SMC-SchedulingService/internal/api/handlers"
	"github.com/m04kA/SMC-SchedulingService/internal/api/middleware"
	"github.com/m04kA/SMC-SchedulingService/internal/service/windows"
)

const (
	msgInvalidWindowID = "некорректный ID окна"
	msgWindowNotFound  = "окно не найдено"
	msgMissingUserID   = "отсутствует ID пользователя"
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

// Handle DELETE /api/v1/windows/{windowId}
// Чужое окно неотличимо от несуществующего - 404 в обоих случаях
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)
	windowIDStr := vars["windowId"]

	windowID, err := strconv.ParseInt(windowIDStr, 10, 64)
	if err != nil {
		h.logger.Warn("DELETE /windows/{windowId} - Invalid window ID: %v", err)
		handlers.RespondBadRequest(w, msgInvalidWindowID)
		return
	}

	userID, ok := middleware.GetUserID(r.Context())
	if !ok {
		h.logger.Warn("DELETE /windows/{windowId} - Missing user ID")
		handlers.RespondUnauthorized(w, msgMissingUserID)
		return
	}

	if err := h.service.Delete(r.Context(), windowID, userID); err != nil {
		if errors.Is(err, windows.ErrWindowNotFound) {
			h.logger.Warn("DELETE /windows/{windowId} - Window not found: window_id=%d, user_id=%d",
				windowID, userID)
			handlers.RespondNotFound(w, msgWindowNotFound)
			return
		}
		h.logger.Error("DELETE /windows/{windowId} - Failed to delete window: window_id=%d, error=%v",
			windowID, err)
		handlers.RespondInternalError(w)
		return
	}

	h.logger.Info("DELETE /windows/{windowId} - Window deleted successfully: window_id=%d, user_id=%d",
		windowID, userID)
	handlers.RespondJSON(w, http.StatusNoContent, nil)
}
