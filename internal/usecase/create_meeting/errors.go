package create_meeting

import "errors"

var (
	// ErrLinkNotFound возвращается, когда ссылка не найдена
	ErrLinkNotFound = errors.New("create_meeting: scheduling link not found")

	// ErrLinkExpired возвращается, когда срок действия ссылки истёк
	ErrLinkExpired = errors.New("create_meeting: scheduling link has expired")

	// ErrLinkExhausted возвращается, когда ссылка исчерпала лимит использований
	ErrLinkExhausted = errors.New("create_meeting: scheduling link has no uses left")

	// ErrOutsideWindow возвращается, когда запрошенное время не лежит
	// на сетке слотов ни одного окна доступности владельца
	ErrOutsideWindow = errors.New("create_meeting: requested time is outside availability windows")

	// ErrSlotConflict возвращается, когда запрошенный слот пересекается
	// с занятым интервалом или другой встречей владельца
	ErrSlotConflict = errors.New("create_meeting: requested slot conflicts with an existing commitment")

	// ErrMissingAnswer возвращается, когда не заполнен обязательный вопрос
	ErrMissingAnswer = errors.New("create_meeting: required question is not answered")

	// ErrCalendarUnavailable возвращается, когда внешняя занятость недоступна
	// Путь записи fail closed: бронировать поверх неизвестного конфликта нельзя
	ErrCalendarUnavailable = errors.New("create_meeting: external calendar source unavailable")

	// ErrInvalidMeetingTime возвращается для времени в прошлом или нулевого
	ErrInvalidMeetingTime = errors.New("create_meeting: invalid meeting time")

	// ErrDateTooFarInFuture возвращается, когда дата превышает ограничение maxDaysAhead
	ErrDateTooFarInFuture = errors.New("create_meeting: date is too far in the future")

	// ErrInvalidInput возвращается при некорректных входных данных
	ErrInvalidInput = errors.New("create_meeting: invalid input data")

	// ErrInternal возвращается при внутренних ошибках usecase
	ErrInternal = errors.New("create_meeting: internal error")
)
