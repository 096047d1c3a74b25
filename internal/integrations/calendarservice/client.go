package calendarservice

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net"
	"net/http"
	"net/url"
	"time"

	"github.com/m04kA/SMC-SchedulingService/internal/domain"
)

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}

// Client клиент для работы с CalendarService
// CalendarService агрегирует занятые интервалы из внешних календарей владельца,
// уже нормализованные к UTC
type Client struct {
	baseURL    string
	httpClient *http.Client
	log        Logger
}

// NewClient создает новый экземпляр клиента CalendarService
func NewClient(baseURL string, timeout time.Duration, log Logger) *Client {
	return &Client{
		baseURL: baseURL,
		httpClient: &http.Client{
			Timeout: timeout,
		},
		log: log,
	}
}

// FetchBusyIntervals получает занятые интервалы владельца за период [from, to]
// Частичный отказ (недоступность отдельного подключённого календаря) не является
// ошибкой: успешно полученные интервалы возвращаются вместе со списком отказавших
// календарей. Результат никогда не кэшируется между вызовами
func (c *Client) FetchBusyIntervals(ctx context.Context, ownerID int64, from, to time.Time) (*BusyTimes, error) {
	reqURL := fmt.Sprintf("%s/internal/users/%d/busy?%s", c.baseURL, ownerID, url.Values{
		"from": []string{from.UTC().Format(time.RFC3339)},
		"to":   []string{to.UTC().Format(time.RFC3339)},
	}.Encode())

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, reqURL, nil)
	if err != nil {
		return nil, fmt.Errorf("%w: failed to create request: %v", ErrInternal, err)
	}

	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		// Сетевые ошибки и таймауты - недоступность сервиса
		if isTimeout(err) {
			return nil, fmt.Errorf("%w: request timed out: %v", ErrUnavailable, err)
		}
		return nil, fmt.Errorf("%w: failed to execute request: %v", ErrUnavailable, err)
	}
	defer resp.Body.Close()

	switch {
	case resp.StatusCode == http.StatusOK:
		// Продолжаем обработку
	case resp.StatusCode >= http.StatusInternalServerError:
		return nil, fmt.Errorf("%w: status code %d", ErrUnavailable, resp.StatusCode)
	default:
		body, _ := io.ReadAll(resp.Body)
		return nil, fmt.Errorf("%w: unexpected status code %d: %s", ErrInvalidResponse, resp.StatusCode, string(body))
	}

	var payload busyResponse
	if err := json.NewDecoder(resp.Body).Decode(&payload); err != nil {
		return nil, fmt.Errorf("%w: failed to decode response: %v", ErrInvalidResponse, err)
	}

	result := &BusyTimes{
		Intervals:       make([]domain.Interval, 0, len(payload.Intervals)),
		FailedCalendars: payload.FailedCalendars,
	}

	for _, item := range payload.Intervals {
		// Пустые и перевёрнутые интервалы от внешнего источника игнорируем
		interval := domain.NewInterval(item.Start.UTC(), item.End.UTC())
		if interval.IsEmpty() {
			continue
		}
		result.Intervals = append(result.Intervals, interval)
	}

	if len(result.FailedCalendars) > 0 {
		c.log.Warn("FetchBusyIntervals: owner=%d, %d calendars failed: %v",
			ownerID, len(result.FailedCalendars), result.FailedCalendars)
	}

	return result, nil
}

// isTimeout проверяет, является ли ошибка таймаутом
func isTimeout(err error) bool {
	if errors.Is(err, context.DeadlineExceeded) {
		return true
	}
	var netErr net.Error
	return errors.As(err, &netErr) && netErr.Timeout()
}
