package create_link

import (
	"errors"
	"net/http"

	"github.com/m04kA/SMC-SchedulingService/internal/api/handlers"
	"github.com/m04kA/SMC-SchedulingService/internal/api/middleware"
	"github.com/m04kA/SMC-SchedulingService/internal/service/links"
)

const (
	msgInvalidRequestBody = "некорректное тело запроса"
	msgInvalidExpiration  = "некорректный формат даты истечения, ожидается RFC3339"
	msgMissingUserID      = "отсутствует ID пользователя"
	msgInvalidLinkParams  = "некорректные параметры ссылки"
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

// Handle POST /api/v1/links
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.GetUserID(r.Context())
	if !ok {
		h.logger.Warn("POST /links - Missing user ID")
		handlers.RespondUnauthorized(w, msgMissingUserID)
		return
	}

	var req CreateLinkRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("POST /links - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}

	serviceReq, err := req.ToServiceRequest(userID)
	if err != nil {
		h.logger.Warn("POST /links - Failed to parse expiration date: %v", err)
		handlers.RespondBadRequest(w, msgInvalidExpiration)
		return
	}

	result, err := h.service.Create(r.Context(), serviceReq)
	if err != nil {
		if errors.Is(err, links.ErrInvalidInput) {
			h.logger.Warn("POST /links - Invalid link params: user_id=%d, error=%v", userID, err)
			handlers.RespondBadRequest(w, msgInvalidLinkParams)
			return
		}
		h.logger.Error("POST /links - Failed to create link: user_id=%d, error=%v", userID, err)
		handlers.RespondInternalError(w)
		return
	}

	h.logger.Info("POST /links - Link created successfully: link_id=%d, slug=%s, user_id=%d",
		result.ID, result.Slug, userID)
	handlers.RespondJSON(w, http.StatusCreated, result)
}
