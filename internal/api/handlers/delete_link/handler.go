package delete_link

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gorilla/mux"

	"github.com/m04kA/SMC-SchedulingService/internal/api/handlers"
	"github.com/m04kA/SMC-SchedulingService/internal/api/middleware"
	"github.com/m04kA/SMC-SchedulingService/internal/service/links"
)

const (
	msgInvalidLinkID = "некорректный ID ссылки"
	msgLinkNotFound  = "ссылка не найдена"
	msgMissingUserID = "отсутствует ID пользователя"
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

// Handle DELETE /api/v1/links/{linkId}
// Встречи ссылки удаляются каскадно; чужая ссылка неотличима от
// несуществующей - 404 в обоих случаях
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)
	linkIDStr := vars["linkId"]

	linkID, err := strconv.ParseInt(linkIDStr, 10, 64)
	if err != nil {
		h.logger.Warn("DELETE /links/{linkId} - Invalid link ID: %v", err)
		handlers.RespondBadRequest(w, msgInvalidLinkID)
		return
	}

	userID, ok := middleware.GetUserID(r.Context())
	if !ok {
		h.logger.Warn("DELETE /links/{linkId} - Missing user ID")
		handlers.RespondUnauthorized(w, msgMissingUserID)
		return
	}

	if err := h.service.Delete(r.Context(), linkID, userID); err != nil {
		if errors.Is(err, links.ErrLinkNotFound) {
			h.logger.Warn("DELETE /links/{linkId} - Link not found: link_id=%d, user_id=%d", linkID, userID)
			handlers.RespondNotFound(w, msgLinkNotFound)
			return
		}
		h.logger.Error("DELETE /links/{linkId} - Failed to delete link: link_id=%d, error=%v", linkID, err)
		handlers.RespondInternalError(w)
		return
	}

	h.logger.Info("DELETE /links/{linkId} - Link deleted successfully: link_id=%d, user_id=%d", linkID, userID)
	handlers.RespondJSON(w, http.StatusNoContent, nil)
}
