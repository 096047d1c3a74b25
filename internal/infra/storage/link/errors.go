package link

import "errors"

var (
	// ErrLinkNotFound возвращается, когда ссылка не найдена
	ErrLinkNotFound = errors.New("link.repository: link not found")

	// ErrSlugConflict возвращается при коллизии slug (unique violation)
	ErrSlugConflict = errors.New("link.repository: slug already exists")

	// ErrBuildQuery возвращается при ошибке построения SQL запроса
	ErrBuildQuery = errors.New("link.repository: failed to build query")

	// ErrExecQuery возвращается при ошибке выполнения SQL запроса
	ErrExecQuery = errors.New("link.repository: failed to execute query")

	// ErrScanRow возвращается при ошибке сканирования результата запроса
	ErrScanRow = errors.New("link.repository: failed to scan row")
)
