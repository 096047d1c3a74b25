package create_meeting

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-SchedulingService/internal/domain"
	linkRepo "github.com/m04kA/SMC-SchedulingService/internal/infra/storage/link"
	calendarClient "github.com/m04kA/SMC-SchedulingService/internal/integrations/calendarservice"
	"github.com/m04kA/SMC-SchedulingService/pkg/ptr"
)

// Фейки зависимостей use case

type fakeLinkRepo struct {
	link *domain.SchedulingLink
}

func (f *fakeLinkRepo) GetBySlug(_ context.Context, slug string) (*domain.SchedulingLink, error) {
	if f.link == nil || f.link.Slug != slug {
		return nil, linkRepo.ErrLinkNotFound
	}
	return f.link, nil
}

type fakeWindowRepo struct {
	windows []*domain.WeeklyWindow
}

func (f *fakeWindowRepo) ListByOwner(_ context.Context, _ int64) ([]*domain.WeeklyWindow, error) {
	return f.windows, nil
}

// memMeetingRepo хранит встречи в памяти; потокобезопасен, чтобы
// конкурентные тесты отражали поведение реальной БД
type memMeetingRepo struct {
	mu       sync.Mutex
	meetings []*domain.Meeting
	nextID   int64
}

func (r *memMeetingRepo) Create(_ context.Context, meeting *domain.Meeting) (*domain.Meeting, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.nextID++
	stored := *meeting
	stored.ID = r.nextID
	stored.CreatedAt = time.Date(2026, 1, 5, 0, 0, 0, 0, time.UTC)
	r.meetings = append(r.meetings, &stored)
	return &stored, nil
}

func (r *memMeetingRepo) CountByLink(_ context.Context, linkID int64) (int, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	count := 0
	for _, m := range r.meetings {
		if m.LinkID == linkID {
			count++
		}
	}
	return count, nil
}

func (r *memMeetingRepo) ListByOwnerOverlapping(_ context.Context, ownerID int64, from, to time.Time) ([]*domain.Meeting, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	var result []*domain.Meeting
	for _, m := range r.meetings {
		if m.OwnerID != ownerID {
			continue
		}
		if m.StartTime.Before(to) && m.Interval().End.After(from) {
			result = append(result, m)
		}
	}
	return result, nil
}

type fakeCalendarClient struct {
	busy []domain.Interval
	err  error
}

func (f *fakeCalendarClient) FetchBusyIntervals(_ context.Context, _ int64, _, _ time.Time) (*calendarClient.BusyTimes, error) {
	if f.err != nil {
		return nil, f.err
	}
	return &calendarClient.BusyTimes{Intervals: f.busy}, nil
}

// serialTxManager сериализует транзакции мьютексом - модель
// serializable-изоляции для тестов
type serialTxManager struct {
	mu sync.Mutex
}

func (m *serialTxManager) DoSerializable(ctx context.Context, fn func(ctx context.Context) error) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	return fn(ctx)
}

type fixedTimeProvider struct {
	now time.Time
}

func (f *fixedTimeProvider) Now() time.Time {
	return f.now
}

type noopLogger struct{}

func (noopLogger) Info(string, ...interface{})  {}
func (noopLogger) Warn(string, ...interface{})  {}
func (noopLogger) Error(string, ...interface{}) {}

// Фикстуры: 5 января 2026 - понедельник, "сейчас" - полночь

var testNow = time.Date(2026, 1, 5, 0, 0, 0, 0, time.UTC)

func testLink() *domain.SchedulingLink {
	return &domain.SchedulingLink{
		ID:                   1,
		OwnerID:              42,
		Slug:                 "ab12cd34",
		Title:                "Intro call",
		MeetingLengthMinutes: 30,
		MaxDaysAhead:         7,
	}
}

func mondayWindow() *domain.WeeklyWindow {
	return &domain.WeeklyWindow{ID: 1, OwnerID: 42, Weekday: 0, StartTime: "09:00", EndTime: "10:00"}
}

func testRequest(start time.Time) *Request {
	return &Request{
		Slug:         "ab12cd34",
		InviteeEmail: "invitee@example.com",
		StartTime:    start,
	}
}

func newTestUseCase(link *domain.SchedulingLink, windows []*domain.WeeklyWindow,
	meetings *memMeetingRepo, calendar *fakeCalendarClient) *UseCase {

	uc := NewUseCase(
		&fakeLinkRepo{link: link},
		&fakeWindowRepo{windows: windows},
		meetings,
		calendar,
		&serialTxManager{},
		noopLogger{},
	)
	uc.timeProvider = &fixedTimeProvider{now: testNow}
	return uc
}

func TestExecute_Success(t *testing.T) {
	meetings := &memMeetingRepo{}
	uc := newTestUseCase(testLink(), []*domain.WeeklyWindow{mondayWindow()}, meetings, &fakeCalendarClient{})

	req := testRequest(testNow.Add(9 * time.Hour))
	req.Answers = map[int64]string{1: "Looking for advice"}

	resp, err := uc.Execute(context.Background(), req)
	require.NoError(t, err)

	assert.Equal(t, int64(1), resp.ID)
	assert.Equal(t, int64(42), resp.OwnerID)
	assert.Equal(t, "ab12cd34", resp.Slug)
	assert.Equal(t, 30, resp.DurationMinutes)
	assert.Equal(t, testNow.Add(9*time.Hour), resp.StartTime)
	require.Len(t, meetings.meetings, 1)
}

func TestExecute_SecondSlotOfWindow(t *testing.T) {
	meetings := &memMeetingRepo{}
	uc := newTestUseCase(testLink(), []*domain.WeeklyWindow{mondayWindow()}, meetings, &fakeCalendarClient{})

	_, err := uc.Execute(context.Background(), testRequest(testNow.Add(9*time.Hour+30*time.Minute)))
	require.NoError(t, err)
}

func TestExecute_OffGridTimeRejected(t *testing.T) {
	// 09:10 лежит внутри окна, но не на сетке слотов от его начала
	uc := newTestUseCase(testLink(), []*domain.WeeklyWindow{mondayWindow()}, &memMeetingRepo{}, &fakeCalendarClient{})

	_, err := uc.Execute(context.Background(), testRequest(testNow.Add(9*time.Hour+10*time.Minute)))
	assert.ErrorIs(t, err, ErrOutsideWindow)
}

func TestExecute_SlotMustFitWindow(t *testing.T) {
	// Слот 09:45-10:15 выходит за конец окна 09:00-10:00
	uc := newTestUseCase(testLink(), []*domain.WeeklyWindow{mondayWindow()}, &memMeetingRepo{}, &fakeCalendarClient{})

	_, err := uc.Execute(context.Background(), testRequest(testNow.Add(9*time.Hour+45*time.Minute)))
	assert.ErrorIs(t, err, ErrOutsideWindow)
}

func TestExecute_NoMatchingWeekday(t *testing.T) {
	// Вторник при окне только на понедельник
	uc := newTestUseCase(testLink(), []*domain.WeeklyWindow{mondayWindow()}, &memMeetingRepo{}, &fakeCalendarClient{})

	_, err := uc.Execute(context.Background(), testRequest(testNow.AddDate(0, 0, 1).Add(9*time.Hour)))
	assert.ErrorIs(t, err, ErrOutsideWindow)
}

func TestExecute_PastTimeRejected(t *testing.T) {
	uc := newTestUseCase(testLink(), []*domain.WeeklyWindow{mondayWindow()}, &memMeetingRepo{}, &fakeCalendarClient{})

	_, err := uc.Execute(context.Background(), testRequest(testNow.Add(-time.Hour)))
	assert.ErrorIs(t, err, ErrInvalidMeetingTime)
}

func TestExecute_DateTooFarRejected(t *testing.T) {
	// Понедельник 19 января - за горизонтом в 7 дней
	uc := newTestUseCase(testLink(), []*domain.WeeklyWindow{mondayWindow()}, &memMeetingRepo{}, &fakeCalendarClient{})

	_, err := uc.Execute(context.Background(), testRequest(testNow.AddDate(0, 0, 14).Add(9*time.Hour)))
	assert.ErrorIs(t, err, ErrDateTooFarInFuture)
}

func TestExecute_ExpiredLink(t *testing.T) {
	link := testLink()
	link.ExpirationDate = ptr.Ptr(testNow.Add(-time.Hour))
	uc := newTestUseCase(link, []*domain.WeeklyWindow{mondayWindow()}, &memMeetingRepo{}, &fakeCalendarClient{})

	_, err := uc.Execute(context.Background(), testRequest(testNow.Add(9*time.Hour)))
	assert.ErrorIs(t, err, ErrLinkExpired)
}

func TestExecute_ExhaustedInsideTransaction(t *testing.T) {
	link := testLink()
	link.MaxUses = ptr.Ptr(1)
	meetings := &memMeetingRepo{}
	uc := newTestUseCase(link, []*domain.WeeklyWindow{mondayWindow()}, meetings, &fakeCalendarClient{})

	_, err := uc.Execute(context.Background(), testRequest(testNow.Add(9*time.Hour)))
	require.NoError(t, err)

	// Второй коммит по той же ссылке на другой слот: лимит исчерпан
	_, err = uc.Execute(context.Background(), testRequest(testNow.Add(9*time.Hour+30*time.Minute)))
	assert.ErrorIs(t, err, ErrLinkExhausted)
}

func TestExecute_MissingRequiredAnswer(t *testing.T) {
	link := testLink()
	link.CustomQuestions = []domain.CustomQuestion{
		{ID: 1, Question: "What do you want to discuss?", Required: true, Type: "text"},
		{ID: 2, Question: "Company", Required: false, Type: "text"},
	}
	uc := newTestUseCase(link, []*domain.WeeklyWindow{mondayWindow()}, &memMeetingRepo{}, &fakeCalendarClient{})

	req := testRequest(testNow.Add(9 * time.Hour))
	req.Answers = map[int64]string{2: "Acme"}

	_, err := uc.Execute(context.Background(), req)
	assert.ErrorIs(t, err, ErrMissingAnswer)
}

func TestExecute_CalendarUnavailableFailsClosed(t *testing.T) {
	uc := newTestUseCase(testLink(), []*domain.WeeklyWindow{mondayWindow()}, &memMeetingRepo{},
		&fakeCalendarClient{err: calendarClient.ErrUnavailable})

	_, err := uc.Execute(context.Background(), testRequest(testNow.Add(9*time.Hour)))
	assert.ErrorIs(t, err, ErrCalendarUnavailable)
}

func TestExecute_ExternalBusyConflict(t *testing.T) {
	busy := []domain.Interval{
		domain.NewInterval(testNow.Add(9*time.Hour+15*time.Minute), testNow.Add(9*time.Hour+45*time.Minute)),
	}
	uc := newTestUseCase(testLink(), []*domain.WeeklyWindow{mondayWindow()}, &memMeetingRepo{},
		&fakeCalendarClient{busy: busy})

	_, err := uc.Execute(context.Background(), testRequest(testNow.Add(9*time.Hour)))
	assert.ErrorIs(t, err, ErrSlotConflict)
}

func TestExecute_DuplicateSlotRejected(t *testing.T) {
	meetings := &memMeetingRepo{}
	uc := newTestUseCase(testLink(), []*domain.WeeklyWindow{mondayWindow()}, meetings, &fakeCalendarClient{})

	_, err := uc.Execute(context.Background(), testRequest(testNow.Add(9*time.Hour)))
	require.NoError(t, err)

	_, err = uc.Execute(context.Background(), testRequest(testNow.Add(9*time.Hour)))
	assert.ErrorIs(t, err, ErrSlotConflict)
	require.Len(t, meetings.meetings, 1)
}

func TestExecute_BufferedMeetingConflict(t *testing.T) {
	link := testLink()
	link.BufferBeforeMinutes = 15

	meetings := &memMeetingRepo{}
	uc := newTestUseCase(link, []*domain.WeeklyWindow{mondayWindow()}, meetings, &fakeCalendarClient{})

	_, err := uc.Execute(context.Background(), testRequest(testNow.Add(9*time.Hour)))
	require.NoError(t, err)

	// Слот 09:30 начинается сразу после встречи 09:00-09:30, но буфер before
	// расширяет её до 09:45 - конфликт
	_, err = uc.Execute(context.Background(), testRequest(testNow.Add(9*time.Hour+30*time.Minute)))
	assert.ErrorIs(t, err, ErrSlotConflict)
}

func TestExecute_InvalidEmail(t *testing.T) {
	uc := newTestUseCase(testLink(), []*domain.WeeklyWindow{mondayWindow()}, &memMeetingRepo{}, &fakeCalendarClient{})

	req := testRequest(testNow.Add(9 * time.Hour))
	req.InviteeEmail = "not-an-email"

	_, err := uc.Execute(context.Background(), req)
	assert.ErrorIs(t, err, ErrInvalidInput)
}

func TestExecute_ConcurrentBookingsExactlyOneWins(t *testing.T) {
	meetings := &memMeetingRepo{}
	uc := newTestUseCase(testLink(), []*domain.WeeklyWindow{mondayWindow()}, meetings, &fakeCalendarClient{})

	const workers = 16
	errs := make(chan error, workers)

	var wg sync.WaitGroup
	for i := 0; i < workers; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, err := uc.Execute(context.Background(), testRequest(testNow.Add(9*time.Hour)))
			errs <- err
		}()
	}
	wg.Wait()
	close(errs)

	succeeded, conflicted := 0, 0
	for err := range errs {
		switch {
		case err == nil:
			succeeded++
		case assert.ErrorIs(t, err, ErrSlotConflict):
			conflicted++
		}
	}

	assert.Equal(t, 1, succeeded)
	assert.Equal(t, workers-1, conflicted)
	require.Len(t, meetings.meetings, 1)
}
