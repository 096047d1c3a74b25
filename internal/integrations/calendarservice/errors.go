package calendarservice

import "errors"

var (
	// ErrUnavailable возвращается при недоступности CalendarService
	// (сетевые ошибки, таймауты, 5xx)
	ErrUnavailable = errors.New("calendarservice client: service unavailable")

	// ErrInvalidResponse возвращается при некорректном ответе от сервиса
	ErrInvalidResponse = errors.New("calendarservice client: invalid response")

	// ErrInternal возвращается при внутренних ошибках клиента
	ErrInternal = errors.New("calendarservice client: internal error")
)
