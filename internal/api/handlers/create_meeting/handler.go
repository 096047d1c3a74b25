package create_meeting

import (
	"errors"
	"net/http"

	"github.com/gorilla/mux"

	"github.com/m04kA/SMC-SchedulingService/internal/api/handlers"
	createMeeting "github.com/m04kA/SMC-SchedulingService/internal/usecase/create_meeting"
)

const (
	msgInvalidRequestBody    = "некорректное тело запроса"
	msgInvalidStartTime      = "некорректный формат времени начала, ожидается RFC3339"
	msgLinkNotFound          = "ссылка не найдена"
	msgLinkExpired           = "срок действия ссылки истёк"
	msgLinkExhausted         = "ссылка исчерпала лимит бронирований"
	msgOutsideWindow         = "выбранное время вне окон доступности"
	msgSlotConflict          = "выбранный временной слот уже занят"
	msgMissingAnswer         = "не заполнен обязательный вопрос"
	msgCalendarUnavailable   = "сервис календарей недоступен, попробуйте позже"
	msgInvalidMeetingTime    = "некорректное время встречи"
	msgDateTooFar            = "дата встречи слишком далеко в будущем"
	msgInvalidMeetingParams  = "некорректные параметры встречи"
)

type Handler struct {
	useCase CreateMeetingUseCase
	logger  Logger
}

func NewHandler(useCase CreateMeetingUseCase, logger Logger) *Handler {
	return &Handler{
		useCase: useCase,
		logger:  logger,
	}
}

// Handle POST /api/v1/links/{slug}/meetings
// Публичный endpoint - приглашённый бронирует без авторизации
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)
	slug := vars["slug"]

	var req CreateMeetingRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("POST /links/{slug}/meetings - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}

	useCaseReq, err := req.ToUseCaseRequest(slug)
	if err != nil {
		h.logger.Warn("POST /links/{slug}/meetings - Failed to parse start time: %v", err)
		handlers.RespondBadRequest(w, msgInvalidStartTime)
		return
	}

	result, err := h.useCase.Execute(r.Context(), useCaseReq)
	if err != nil {
		switch {
		case errors.Is(err, createMeeting.ErrLinkNotFound):
			h.logger.Warn("POST /links/{slug}/meetings - Link not found: slug=%s", slug)
			handlers.RespondNotFound(w, msgLinkNotFound)

		case errors.Is(err, createMeeting.ErrLinkExpired):
			h.logger.Warn("POST /links/{slug}/meetings - Link expired: slug=%s", slug)
			handlers.RespondError(w, http.StatusGone, msgLinkExpired)

		case errors.Is(err, createMeeting.ErrLinkExhausted):
			h.logger.Warn("POST /links/{slug}/meetings - Link exhausted: slug=%s", slug)
			handlers.RespondError(w, http.StatusGone, msgLinkExhausted)

		case errors.Is(err, createMeeting.ErrOutsideWindow):
			h.logger.Warn("POST /links/{slug}/meetings - Outside availability windows: slug=%s, start=%s",
				slug, req.StartTime)
			handlers.RespondError(w, http.StatusUnprocessableEntity, msgOutsideWindow)

		case errors.Is(err, createMeeting.ErrSlotConflict):
			h.logger.Warn("POST /links/{slug}/meetings - Slot conflict: slug=%s, start=%s", slug, req.StartTime)
			handlers.RespondError(w, http.StatusConflict, msgSlotConflict)

		case errors.Is(err, createMeeting.ErrMissingAnswer):
			h.logger.Warn("POST /links/{slug}/meetings - Missing required answer: slug=%s", slug)
			handlers.RespondError(w, http.StatusUnprocessableEntity, msgMissingAnswer)

		case errors.Is(err, createMeeting.ErrCalendarUnavailable):
			h.logger.Warn("POST /links/{slug}/meetings - Calendar unavailable: slug=%s", slug)
			handlers.RespondError(w, http.StatusServiceUnavailable, msgCalendarUnavailable)

		case errors.Is(err, createMeeting.ErrInvalidMeetingTime):
			h.logger.Warn("POST /links/{slug}/meetings - Invalid meeting time: slug=%s, start=%s",
				slug, req.StartTime)
			handlers.RespondBadRequest(w, msgInvalidMeetingTime)

		case errors.Is(err, createMeeting.ErrDateTooFarInFuture):
			h.logger.Warn("POST /links/{slug}/meetings - Date too far in future: slug=%s, start=%s",
				slug, req.StartTime)
			handlers.RespondBadRequest(w, msgDateTooFar)

		case errors.Is(err, createMeeting.ErrInvalidInput):
			h.logger.Warn("POST /links/{slug}/meetings - Invalid input: %v", err)
			handlers.RespondBadRequest(w, msgInvalidMeetingParams)

		default:
			h.logger.Error("POST /links/{slug}/meetings - Failed to create meeting: slug=%s, error=%v", slug, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("POST /links/{slug}/meetings - Meeting created successfully: meeting_id=%d, slug=%s",
		result.ID, slug)
	handlers.RespondJSON(w, http.StatusCreated, FromUseCaseResponse(result))
}
