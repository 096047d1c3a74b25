package get_available_slots

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-SchedulingService/internal/domain"
	linkRepo "github.com/m04kA/SMC-SchedulingService/internal/infra/storage/link"
	calendarClient "github.com/m04kA/SMC-SchedulingService/internal/integrations/calendarservice"
	"github.com/m04kA/SMC-SchedulingService/pkg/ptr"
	"github.com/m04kA/SMC-SchedulingService/pkg/types"
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

type fakeMeetingRepo struct {
	count    int
	meetings []*domain.Meeting
}

func (f *fakeMeetingRepo) CountByLink(_ context.Context, _ int64) (int, error) {
	return f.count, nil
}

func (f *fakeMeetingRepo) ListByOwnerOverlapping(_ context.Context, _ int64, _, _ time.Time) ([]*domain.Meeting, error) {
	return f.meetings, nil
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

func newTestUseCase(link *domain.SchedulingLink, windows []*domain.WeeklyWindow,
	meetings *fakeMeetingRepo, calendar *fakeCalendarClient) *UseCase {

	uc := NewUseCase(
		&fakeLinkRepo{link: link},
		&fakeWindowRepo{windows: windows},
		meetings,
		calendar,
		noopLogger{},
	)
	uc.timeProvider = &fixedTimeProvider{now: testNow}
	return uc
}

func TestExecute_BasicSlots(t *testing.T) {
	uc := newTestUseCase(testLink(), []*domain.WeeklyWindow{mondayWindow()},
		&fakeMeetingRepo{}, &fakeCalendarClient{})

	resp, err := uc.Execute(context.Background(), &Request{Slug: "ab12cd34"})
	require.NoError(t, err)

	assert.Equal(t, "ab12cd34", resp.Slug)
	assert.Equal(t, 30, resp.MeetingLengthMinutes)
	// Горизонт 7 дней покрывает два понедельника: 5 и 12 января
	require.Len(t, resp.Days, 2)
	assert.Equal(t, testNow, resp.Days[0].Date)
	assert.Equal(t, []types.TimeString{"09:00", "09:30"}, resp.Days[0].Slots)
	assert.Equal(t, testNow.AddDate(0, 0, 7), resp.Days[1].Date)
	assert.Equal(t, []types.TimeString{"09:00", "09:30"}, resp.Days[1].Slots)
}

func TestExecute_BusyIntervalBlocksBothSlots(t *testing.T) {
	// Занятость [09:15, 09:45) пересекает оба получасовых слота
	busy := []domain.Interval{
		domain.NewInterval(testNow.Add(9*time.Hour+15*time.Minute), testNow.Add(9*time.Hour+45*time.Minute)),
	}
	uc := newTestUseCase(testLink(), []*domain.WeeklyWindow{mondayWindow()},
		&fakeMeetingRepo{}, &fakeCalendarClient{busy: busy})

	resp, err := uc.Execute(context.Background(), &Request{Slug: "ab12cd34"})
	require.NoError(t, err)

	// Первый понедельник полностью заблокирован, второй свободен
	require.Len(t, resp.Days, 1)
	assert.Equal(t, testNow.AddDate(0, 0, 7), resp.Days[0].Date)
}

func TestExecute_CommittedMeetingBlocksSlot(t *testing.T) {
	meetings := &fakeMeetingRepo{meetings: []*domain.Meeting{
		{OwnerID: 42, StartTime: testNow.Add(9 * time.Hour), DurationMinutes: 30},
	}}
	uc := newTestUseCase(testLink(), []*domain.WeeklyWindow{mondayWindow()}, meetings, &fakeCalendarClient{})

	resp, err := uc.Execute(context.Background(), &Request{Slug: "ab12cd34"})
	require.NoError(t, err)

	assert.Equal(t, []types.TimeString{"09:30"}, resp.Days[0].Slots)
}

func TestExecute_BuffersExpandBusy(t *testing.T) {
	link := testLink()
	link.BufferBeforeMinutes = 15
	link.BufferAfterMinutes = 15

	// Занятость [10:00, 11:00): буфер after блокирует слот 09:30-10:00,
	// который заканчивается впритык к её началу
	busy := []domain.Interval{
		domain.NewInterval(testNow.Add(10*time.Hour), testNow.Add(11*time.Hour)),
	}
	uc := newTestUseCase(link, []*domain.WeeklyWindow{mondayWindow()},
		&fakeMeetingRepo{}, &fakeCalendarClient{busy: busy})

	resp, err := uc.Execute(context.Background(), &Request{Slug: "ab12cd34"})
	require.NoError(t, err)

	assert.Equal(t, []types.TimeString{"09:00"}, resp.Days[0].Slots)
}

func TestExecute_LinkNotFound(t *testing.T) {
	uc := newTestUseCase(nil, nil, &fakeMeetingRepo{}, &fakeCalendarClient{})

	_, err := uc.Execute(context.Background(), &Request{Slug: "missing1"})
	assert.ErrorIs(t, err, ErrLinkNotFound)
}

func TestExecute_LinkExpired(t *testing.T) {
	link := testLink()
	link.ExpirationDate = ptr.Ptr(testNow.Add(-time.Hour))
	uc := newTestUseCase(link, nil, &fakeMeetingRepo{}, &fakeCalendarClient{})

	_, err := uc.Execute(context.Background(), &Request{Slug: "ab12cd34"})
	assert.ErrorIs(t, err, ErrLinkExpired)
}

func TestExecute_LinkExhausted(t *testing.T) {
	link := testLink()
	link.MaxUses = ptr.Ptr(3)
	uc := newTestUseCase(link, nil, &fakeMeetingRepo{count: 3}, &fakeCalendarClient{})

	_, err := uc.Execute(context.Background(), &Request{Slug: "ab12cd34"})
	assert.ErrorIs(t, err, ErrLinkExhausted)
}

func TestExecute_CalendarUnavailableDegrades(t *testing.T) {
	// При недоступности календарей путь чтения отдаёт слоты без внешней занятости
	uc := newTestUseCase(testLink(), []*domain.WeeklyWindow{mondayWindow()},
		&fakeMeetingRepo{}, &fakeCalendarClient{err: calendarClient.ErrUnavailable})

	resp, err := uc.Execute(context.Background(), &Request{Slug: "ab12cd34"})
	require.NoError(t, err)
	require.Len(t, resp.Days, 2)
	assert.Equal(t, []types.TimeString{"09:00", "09:30"}, resp.Days[0].Slots)
}

func TestExecute_NoWindowsNoSlots(t *testing.T) {
	uc := newTestUseCase(testLink(), nil, &fakeMeetingRepo{}, &fakeCalendarClient{})

	resp, err := uc.Execute(context.Background(), &Request{Slug: "ab12cd34"})
	require.NoError(t, err)
	assert.Empty(t, resp.Days)
}
