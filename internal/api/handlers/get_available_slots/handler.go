package get_available_slots

import (
	"errors"
	"net/http"

	"github.com/gorilla/mux"

	"github.com/m04kA/SMC-SchedulingService/internal/api/handlers"
	getAvailableSlots "github.com/m04kA/SMC-SchedulingService/internal/usecase/get_available_slots"
)

const (
	msgLinkNotFound  = "ссылка не найдена"
	msgLinkExpired   = "срок действия ссылки истёк"
	msgLinkExhausted = "ссылка исчерпала лимит бронирований"
	msgInvalidParams = "некорректные параметры запроса"
)

type Handler struct {
	useCase GetAvailableSlotsUseCase
	logger  Logger
}

func NewHandler(useCase GetAvailableSlotsUseCase, logger Logger) *Handler {
	return &Handler{
		useCase: useCase,
		logger:  logger,
	}
}

// Handle GET /api/v1/links/{slug}/available-slots
// Публичный endpoint - без авторизации
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)
	slug := vars["slug"]

	result, err := h.useCase.Execute(r.Context(), &getAvailableSlots.Request{Slug: slug})
	if err != nil {
		switch {
		case errors.Is(err, getAvailableSlots.ErrLinkNotFound):
			h.logger.Warn("GET /links/{slug}/available-slots - Link not found: slug=%s", slug)
			handlers.RespondNotFound(w, msgLinkNotFound)

		case errors.Is(err, getAvailableSlots.ErrLinkExpired):
			h.logger.Warn("GET /links/{slug}/available-slots - Link expired: slug=%s", slug)
			handlers.RespondError(w, http.StatusGone, msgLinkExpired)

		case errors.Is(err, getAvailableSlots.ErrLinkExhausted):
			h.logger.Warn("GET /links/{slug}/available-slots - Link exhausted: slug=%s", slug)
			handlers.RespondError(w, http.StatusGone, msgLinkExhausted)

		case errors.Is(err, getAvailableSlots.ErrInvalidInput):
			h.logger.Warn("GET /links/{slug}/available-slots - Invalid params: %v", err)
			handlers.RespondBadRequest(w, msgInvalidParams)

		default:
			h.logger.Error("GET /links/{slug}/available-slots - Failed to get slots: slug=%s, error=%v", slug, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("GET /links/{slug}/available-slots - Slots retrieved successfully: slug=%s, days=%d",
		slug, len(result.Days))
	handlers.RespondJSON(w, http.StatusOK, FromUseCaseResponse(result))
}
