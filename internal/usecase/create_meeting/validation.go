package create_meeting

import (
	"fmt"
	"net/mail"
	"time"

	"github.com/m04kA/SMC-SchedulingService/internal/domain"
)

// validateRequest валидирует входные данные запроса
func validateRequest(req *Request) error {
	if req.Slug == "" {
		return fmt.Errorf("%w: slug is required", ErrInvalidInput)
	}
	if req.InviteeEmail == "" {
		return fmt.Errorf("%w: invitee email is required", ErrInvalidInput)
	}
	if _, err := mail.ParseAddress(req.InviteeEmail); err != nil {
		return fmt.Errorf("%w: invitee email is malformed", ErrInvalidInput)
	}
	if req.StartTime.IsZero() {
		return fmt.Errorf("%w: meeting time is required", ErrInvalidMeetingTime)
	}
	if req.StartTime.Truncate(time.Minute) != req.StartTime {
		return fmt.Errorf("%w: meeting time must be aligned to a whole minute", ErrInvalidMeetingTime)
	}
	return nil
}

// validateMeetingTime проверяет, что время встречи не в прошлом и
// не выходит за горизонт бронирования ссылки
func validateMeetingTime(start, now time.Time, maxDaysAhead int) error {
	if start.Before(now) {
		return ErrInvalidMeetingTime
	}
	horizon := dateOnly(now).AddDate(0, 0, maxDaysAhead)
	if dateOnly(start).After(horizon) {
		return ErrDateTooFarInFuture
	}
	return nil
}

// fitsWindowGrid проверяет, что слот [start, start+duration) целиком лежит
// в окне и начало попадает на сетку дискретизации окна: слоты идут от начала
// окна с шагом duration, произвольные времена внутри окна не принимаются
func fitsWindowGrid(window domain.Interval, start time.Time, duration time.Duration) bool {
	slot := domain.NewInterval(start, start.Add(duration))
	if !window.Contains(slot) {
		return false
	}
	return start.Sub(window.Start)%duration == 0
}

// matchesAnyWindow проверяет запрошенный слот против всех недельных окон
// владельца, материализованных на дату встречи
func matchesAnyWindow(windows []*domain.WeeklyWindow, start time.Time, duration time.Duration) bool {
	date := dateOnly(start)
	for _, window := range windows {
		if !window.MatchesDate(date) {
			continue
		}
		if fitsWindowGrid(window.Materialize(date), start, duration) {
			return true
		}
	}
	return false
}

// validateAnswers проверяет, что каждый обязательный вопрос ссылки
// получил непустой ответ
func validateAnswers(questions []domain.CustomQuestion, answers map[int64]string) error {
	for _, q := range questions {
		if !q.Required {
			continue
		}
		if answers[q.ID] == "" {
			return fmt.Errorf("%w: question id=%d", ErrMissingAnswer, q.ID)
		}
	}
	return nil
}

// dateOnly обнуляет время, оставляя только дату (UTC)
func dateOnly(t time.Time) time.Time {
	t = t.UTC()
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}
