package windows

import "errors"

var (
	// ErrWindowNotFound возвращается, когда окно не найдено
	ErrWindowNotFound = errors.New("availability window not found")

	// ErrInvalidInput возвращается при некорректных входных данных
	ErrInvalidInput = errors.New("invalid input data")

	// ErrInternal возвращается при внутренних ошибках сервиса
	ErrInternal = errors.New("service: internal error")
)
