package calendarservice

import (
	"time"

	"github.com/m04kA/SMC-SchedulingService/internal/domain"
)

// BusyTimes результат запроса занятых интервалов владельца
// FailedCalendars содержит идентификаторы подключённых календарей,
// которые не удалось опросить; частичный отказ - это данные, а не ошибка
type BusyTimes struct {
	Intervals       []domain.Interval
	FailedCalendars []string
}

// busyResponse модель ответа CalendarService
type busyResponse struct {
	Intervals       []busyInterval `json:"intervals"`
	FailedCalendars []string       `json:"failed_calendars"`
}

// busyInterval занятый интервал в ответе CalendarService
// Все метки времени - абсолютные UTC инстанты (RFC 3339)
type busyInterval struct {
	Start time.Time `json:"start"`
	End   time.Time `json:"end"`
}

// ErrorResponse модель ошибки от CalendarService
type ErrorResponse struct {
	Code    int    `json:"code"`
	Message string `json:"message"`
}
