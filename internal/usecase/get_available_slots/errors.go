package get_available_slots

import "errors"

var (
	// ErrLinkNotFound возвращается, когда ссылка не найдена
	ErrLinkNotFound = errors.New("scheduling link not found")

	// ErrLinkExpired возвращается, когда срок действия ссылки истёк
	ErrLinkExpired = errors.New("scheduling link has expired")

	// ErrLinkExhausted возвращается, когда ссылка исчерпала лимит использований
	ErrLinkExhausted = errors.New("scheduling link has no uses left")

	// ErrInvalidInput возвращается при некорректных входных данных
	ErrInvalidInput = errors.New("invalid input data")

	// ErrInternal возвращается при внутренних ошибках usecase
	ErrInternal = errors.New("usecase: internal error")
)
