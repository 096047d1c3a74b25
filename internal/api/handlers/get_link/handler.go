package get_link

import (
	"errors"
	"net/http"

	"github.com/gorilla/mux"

	"github.com/m04kA/SMC-SchedulingService/internal/api/handlers"
	"github.com/m04kA/SMC-SchedulingService/internal/service/links"
)

const (
	msgLinkNotFound = "ссылка не найдена"
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

// Handle GET /api/v1/links/{slug}
// Публичный endpoint - приглашённый смотрит описание ссылки и вопросы
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)
	slug := vars["slug"]

	result, err := h.service.GetBySlug(r.Context(), slug)
	if err != nil {
		if errors.Is(err, links.ErrLinkNotFound) {
			h.logger.Warn("GET /links/{slug} - Link not found: slug=%s", slug)
			handlers.RespondNotFound(w, msgLinkNotFound)
			return
		}
		h.logger.Error("GET /links/{slug} - Failed to get link: slug=%s, error=%v", slug, err)
		handlers.RespondInternalError(w)
		return
	}

	h.logger.Info("GET /links/{slug} - Link retrieved successfully: slug=%s, link_id=%d", slug, result.ID)
	handlers.RespondJSON(w, http.StatusOK, result)
}
