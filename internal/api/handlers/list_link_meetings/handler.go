package list_link_meetings

import (
	"errors"
	"net/http"

	"github.com/gorilla/mux"

	"github.com/m04kA/SMC-SchedulingService/internal/api/handlers"
	"github.com/m04kA/SMC-SchedulingService/internal/api/middleware"
	"github.com/m04kA/SMC-SchedulingService/internal/service/links"
)

const (
	msgLinkNotFound  = "ссылка не найдена"
	msgMissingUserID = "отсутствует ID пользователя"
	msgForbidden     = "доступ запрещен"
)

type Handler struct {
	service LinkService
	logger  Logger
}

func NewHandler(service LinkService, logger Logger) *Handler {
	return &Handler{
		service: service,
		logger:  logger,
	}
}

// Handle GET /api/v1/links/{slug}/meetings
// Доступно только владельцу ссылки
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)
	slug := vars["slug"]

	userID, ok := middleware.GetUserID(r.Context())
	if !ok {
		h.logger.Warn("GET /links/{slug}/meetings - Missing user ID")
		handlers.RespondUnauthorized(w, msgMissingUserID)
		return
	}

	result, err := h.service.ListMeetings(r.Context(), slug, userID)
	if err != nil {
		switch {
		case errors.Is(err, links.ErrLinkNotFound):
			h.logger.Warn("GET /links/{slug}/meetings - Link not found: slug=%s", slug)
			handlers.RespondNotFound(w, msgLinkNotFound)

		case errors.Is(err, links.ErrAccessDenied):
			h.logger.Warn("GET /links/{slug}/meetings - Access denied: slug=%s, user_id=%d", slug, userID)
			handlers.RespondForbidden(w, msgForbidden)

		default:
			h.logger.Error("GET /links/{slug}/meetings - Failed to list meetings: slug=%s, error=%v", slug, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("GET /links/{slug}/meetings - Meetings retrieved successfully: slug=%s, count=%d",
		slug, len(result.Meetings))
	handlers.RespondJSON(w, http.StatusOK, result)
}
