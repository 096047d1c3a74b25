package calendarservice

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type noopLogger struct{}

func (noopLogger) Info(string, ...interface{})  {}
func (noopLogger) Warn(string, ...interface{})  {}
func (noopLogger) Error(string, ...interface{}) {}

func TestFetchBusyIntervals_Success(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/internal/users/42/busy", r.URL.Path)
		assert.Equal(t, "2026-01-05T00:00:00Z", r.URL.Query().Get("from"))
		assert.Equal(t, "2026-01-12T00:00:00Z", r.URL.Query().Get("to"))

		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{
			"intervals": [
				{"start": "2026-01-05T09:00:00Z", "end": "2026-01-05T10:00:00Z"},
				{"start": "2026-01-05T11:00:00Z", "end": "2026-01-05T11:00:00Z"}
			],
			"failed_calendars": []
		}`))
	}))
	defer srv.Close()

	client := NewClient(srv.URL, time.Second, noopLogger{})

	from := time.Date(2026, 1, 5, 0, 0, 0, 0, time.UTC)
	got, err := client.FetchBusyIntervals(context.Background(), 42, from, from.AddDate(0, 0, 7))
	require.NoError(t, err)

	// Пустой интервал отброшен
	require.Len(t, got.Intervals, 1)
	assert.Equal(t, time.Date(2026, 1, 5, 9, 0, 0, 0, time.UTC), got.Intervals[0].Start)
	assert.Equal(t, time.Date(2026, 1, 5, 10, 0, 0, 0, time.UTC), got.Intervals[0].End)
}

func TestFetchBusyIntervals_PartialFailureIsNotAnError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"intervals": [], "failed_calendars": ["google-primary"]}`))
	}))
	defer srv.Close()

	client := NewClient(srv.URL, time.Second, noopLogger{})

	got, err := client.FetchBusyIntervals(context.Background(), 42, time.Now(), time.Now().Add(time.Hour))
	require.NoError(t, err)
	assert.Empty(t, got.Intervals)
	assert.Equal(t, []string{"google-primary"}, got.FailedCalendars)
}

func TestFetchBusyIntervals_ServerErrorIsUnavailable(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	}))
	defer srv.Close()

	client := NewClient(srv.URL, time.Second, noopLogger{})

	_, err := client.FetchBusyIntervals(context.Background(), 42, time.Now(), time.Now().Add(time.Hour))
	assert.ErrorIs(t, err, ErrUnavailable)
}

func TestFetchBusyIntervals_ConnectionRefusedIsUnavailable(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(http.ResponseWriter, *http.Request) {}))
	srv.Close() // закрываем сразу, порт перестает слушаться

	client := NewClient(srv.URL, time.Second, noopLogger{})

	_, err := client.FetchBusyIntervals(context.Background(), 42, time.Now(), time.Now().Add(time.Hour))
	assert.ErrorIs(t, err, ErrUnavailable)
}

func TestFetchBusyIntervals_MalformedBodyIsInvalidResponse(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		_, _ = w.Write([]byte(`{"intervals": "oops"`))
	}))
	defer srv.Close()

	client := NewClient(srv.URL, time.Second, noopLogger{})

	_, err := client.FetchBusyIntervals(context.Background(), 42, time.Now(), time.Now().Add(time.Hour))
	assert.ErrorIs(t, err, ErrInvalidResponse)
}

func TestFetchBusyIntervals_ClientErrorIsInvalidResponse(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusNotFound)
	}))
	defer srv.Close()

	client := NewClient(srv.URL, time.Second, noopLogger{})

	_, err := client.FetchBusyIntervals(context.Background(), 42, time.Now(), time.Now().Add(time.Hour))
	assert.ErrorIs(t, err, ErrInvalidResponse)
}
