package links

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-SchedulingService/internal/domain"
	linkRepo "github.com/m04kA/SMC-SchedulingService/internal/infra/storage/link"
	"github.com/m04kA/SMC-SchedulingService/internal/service/links/models"
	"github.com/m04kA/SMC-SchedulingService/pkg/ptr"
)

type fakeLinkRepo struct {
	links          map[string]*domain.SchedulingLink
	nextID         int64
	conflictsLeft  int
	createAttempts int
}

func newFakeLinkRepo() *fakeLinkRepo {
	return &fakeLinkRepo{links: make(map[string]*domain.SchedulingLink)}
}

func (f *fakeLinkRepo) Create(_ context.Context, link *domain.SchedulingLink) (*domain.SchedulingLink, error) {
	f.createAttempts++
	if f.conflictsLeft > 0 {
		f.conflictsLeft--
		return nil, linkRepo.ErrSlugConflict
	}
	f.nextID++
	stored := *link
	stored.ID = f.nextID
	f.links[stored.Slug] = &stored
	return &stored, nil
}

func (f *fakeLinkRepo) GetBySlug(_ context.Context, slug string) (*domain.SchedulingLink, error) {
	link, ok := f.links[slug]
	if !ok {
		return nil, linkRepo.ErrLinkNotFound
	}
	return link, nil
}

func (f *fakeLinkRepo) ListByOwner(_ context.Context, ownerID int64) ([]*domain.SchedulingLink, error) {
	var result []*domain.SchedulingLink
	for _, link := range f.links {
		if link.OwnerID == ownerID {
			result = append(result, link)
		}
	}
	return result, nil
}

func (f *fakeLinkRepo) Delete(_ context.Context, id int64, ownerID int64) error {
	for slug, link := range f.links {
		if link.ID == id && link.OwnerID == ownerID {
			delete(f.links, slug)
			return nil
		}
	}
	return linkRepo.ErrLinkNotFound
}

type fakeMeetingRepo struct {
	count    int
	meetings []*domain.Meeting
}

func (f *fakeMeetingRepo) CountByLink(_ context.Context, _ int64) (int, error) {
	return f.count, nil
}

func (f *fakeMeetingRepo) ListByLink(_ context.Context, _ int64) ([]*domain.Meeting, error) {
	return f.meetings, nil
}

type noopLogger struct{}

func (noopLogger) Info(string, ...interface{})  {}
func (noopLogger) Warn(string, ...interface{})  {}
func (noopLogger) Error(string, ...interface{}) {}

func createRequest() *models.CreateLinkRequest {
	return &models.CreateLinkRequest{
		OwnerID:              42,
		Title:                "Intro call",
		MeetingLengthMinutes: 30,
	}
}

func TestCreate_GeneratesSlugAndDefaults(t *testing.T) {
	repo := newFakeLinkRepo()
	svc := NewService(repo, &fakeMeetingRepo{}, noopLogger{})

	resp, err := svc.Create(context.Background(), createRequest())
	require.NoError(t, err)

	assert.Len(t, resp.Slug, domain.SlugLength)
	assert.Equal(t, domain.DefaultMaxDaysAhead, resp.MaxDaysAhead)
	assert.Equal(t, int64(42), resp.OwnerID)
}

func TestCreate_NumbersQuestionsSequentially(t *testing.T) {
	repo := newFakeLinkRepo()
	svc := NewService(repo, &fakeMeetingRepo{}, noopLogger{})

	req := createRequest()
	req.CustomQuestions = []domain.CustomQuestion{
		{Question: "Topic?", Required: true, Type: "text"},
		{Question: "Company?", Type: "text"},
	}

	resp, err := svc.Create(context.Background(), req)
	require.NoError(t, err)

	require.Len(t, resp.CustomQuestions, 2)
	assert.Equal(t, int64(1), resp.CustomQuestions[0].ID)
	assert.Equal(t, int64(2), resp.CustomQuestions[1].ID)
}

func TestCreate_RetriesOnSlugConflict(t *testing.T) {
	repo := newFakeLinkRepo()
	repo.conflictsLeft = 2
	svc := NewService(repo, &fakeMeetingRepo{}, noopLogger{})

	_, err := svc.Create(context.Background(), createRequest())
	require.NoError(t, err)
	assert.Equal(t, 3, repo.createAttempts)
}

func TestCreate_GivesUpAfterRepeatedConflicts(t *testing.T) {
	repo := newFakeLinkRepo()
	repo.conflictsLeft = 10
	svc := NewService(repo, &fakeMeetingRepo{}, noopLogger{})

	_, err := svc.Create(context.Background(), createRequest())
	assert.ErrorIs(t, err, ErrInternal)
}

func TestCreate_InvalidParams(t *testing.T) {
	svc := NewService(newFakeLinkRepo(), &fakeMeetingRepo{}, noopLogger{})

	req := createRequest()
	req.MeetingLengthMinutes = 0

	_, err := svc.Create(context.Background(), req)
	assert.ErrorIs(t, err, ErrInvalidInput)

	req = createRequest()
	req.Title = ""
	_, err = svc.Create(context.Background(), req)
	assert.ErrorIs(t, err, ErrInvalidInput)
}

func TestGetBySlug_ReportsUsesRemaining(t *testing.T) {
	repo := newFakeLinkRepo()
	svc := NewService(repo, &fakeMeetingRepo{count: 3}, noopLogger{})

	req := createRequest()
	req.MaxUses = ptr.Ptr(5)
	created, err := svc.Create(context.Background(), req)
	require.NoError(t, err)

	resp, err := svc.GetBySlug(context.Background(), created.Slug)
	require.NoError(t, err)
	require.NotNil(t, resp.UsesRemaining)
	assert.Equal(t, 2, *resp.UsesRemaining)
}

func TestGetBySlug_NotFound(t *testing.T) {
	svc := NewService(newFakeLinkRepo(), &fakeMeetingRepo{}, noopLogger{})

	_, err := svc.GetBySlug(context.Background(), "missing1")
	assert.ErrorIs(t, err, ErrLinkNotFound)
}

func TestListMeetings_OnlyOwner(t *testing.T) {
	repo := newFakeLinkRepo()
	svc := NewService(repo, &fakeMeetingRepo{}, noopLogger{})

	created, err := svc.Create(context.Background(), createRequest())
	require.NoError(t, err)

	_, err = svc.ListMeetings(context.Background(), created.Slug, 42)
	assert.NoError(t, err)

	_, err = svc.ListMeetings(context.Background(), created.Slug, 99)
	assert.ErrorIs(t, err, ErrAccessDenied)
}
