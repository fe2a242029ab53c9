package events

import (
	"context"
	"sort"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/require"
)

type fakeRepo struct {
	nextID int64
	byID   map[int64]Event
}

func newFakeRepo() *fakeRepo {
	return &fakeRepo{nextID: 1, byID: make(map[int64]Event)}
}

func (r *fakeRepo) GetByID(_ context.Context, id int64) (*Event, error) {
	stored, ok := r.byID[id]
	if !ok {
		return nil, ErrNotFound
	}
	result := stored
	return &result, nil
}

func (r *fakeRepo) Create(_ context.Context, event *Event) (*Event, error) {
	stored := *event
	stored.ID = r.nextID
	r.nextID++
	r.byID[stored.ID] = stored
	result := stored
	return &result, nil
}

func (r *fakeRepo) Update(_ context.Context, event *Event) (*Event, error) {
	if _, ok := r.byID[event.ID]; !ok {
		return nil, ErrNotFound
	}
	r.byID[event.ID] = *event
	result := *event
	return &result, nil
}

func (r *fakeRepo) Delete(_ context.Context, id int64) error {
	if _, ok := r.byID[id]; !ok {
		return ErrNotFound
	}
	delete(r.byID, id)
	return nil
}

func (r *fakeRepo) ListByOrganization(_ context.Context, organizationID string) ([]Event, error) {
	var out []Event
	for _, stored := range r.byID {
		if stored.OrganizationID == organizationID {
			out = append(out, stored)
		}
	}
	return out, nil
}

func (r *fakeRepo) ListActiveStartingAfter(_ context.Context, after time.Time, limit int) ([]Event, error) {
	var out []Event
	for _, stored := range r.byID {
		if stored.Status == StatusActive && stored.StartDate.After(after) {
			out = append(out, stored)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].StartDate.Before(out[j].StartDate) })
	if limit > 0 && len(out) > limit {
		out = out[:limit]
	}
	return out, nil
}

const hostOrg = "cccccccc-cccc-cccc-cccc-cccccccccccc"

func eventParams(start time.Time, status Status) CreateParams {
	return CreateParams{
		OrganizationID:       hostOrg,
		Title:                "Blue Economy Hackathon",
		Description:          "48 hours of ocean tech.",
		EventType:            TypeHackathon,
		StartDate:            start,
		EndDate:              start.Add(48 * time.Hour),
		Location:             "Tunguu Campus",
		RegistrationDeadline: start.Add(-72 * time.Hour),
		Status:               status,
	}
}

func TestCreateDefaultsToDraft(t *testing.T) {
	service := NewService(newFakeRepo(), zerolog.Nop())

	params := eventParams(time.Now().Add(240*time.Hour), "")
	created, err := service.Create(context.Background(), params)
	require.NoError(t, err)
	require.Equal(t, StatusDraft, created.Status)
}

func TestUpcomingCapsAtSixSoonestFirst(t *testing.T) {
	repo := newFakeRepo()
	service := NewService(repo, zerolog.Nop())

	base := time.Now().Add(24 * time.Hour)
	for i := 0; i < 9; i++ {
		_, err := service.Create(context.Background(), eventParams(base.Add(time.Duration(i)*24*time.Hour), StatusActive))
		require.NoError(t, err)
	}
	// Draft and past events never appear.
	_, err := service.Create(context.Background(), eventParams(base.Add(time.Hour), StatusDraft))
	require.NoError(t, err)
	_, err = service.Create(context.Background(), eventParams(time.Now().Add(-24*time.Hour), StatusActive))
	require.NoError(t, err)

	upcoming, err := service.Upcoming(context.Background())
	require.NoError(t, err)
	require.Len(t, upcoming, 6)
	for i := 1; i < len(upcoming); i++ {
		require.False(t, upcoming[i].StartDate.Before(upcoming[i-1].StartDate))
	}
	for _, event := range upcoming {
		require.Equal(t, StatusActive, event.Status)
	}
}

func TestUpdateAndDeleteRequireOwnership(t *testing.T) {
	service := NewService(newFakeRepo(), zerolog.Nop())

	created, err := service.Create(context.Background(), eventParams(time.Now().Add(240*time.Hour), StatusActive))
	require.NoError(t, err)

	_, err = service.Update(context.Background(), created.ID, "someone-else", eventParams(created.StartDate, StatusActive))
	require.ErrorIs(t, err, ErrNotOwner)

	require.ErrorIs(t, service.Delete(context.Background(), created.ID, "someone-else"), ErrNotOwner)
	require.NoError(t, service.Delete(context.Background(), created.ID, hostOrg))
}

func TestParseEventTypeAndStatus(t *testing.T) {
	eventType, ok := ParseEventType(" career_fair ")
	require.True(t, ok)
	require.Equal(t, TypeCareerFair, eventType)
	_, ok = ParseEventType("party")
	require.False(t, ok)

	status, ok := ParseStatus("active")
	require.True(t, ok)
	require.Equal(t, StatusActive, status)
	_, ok = ParseStatus("paused")
	require.False(t, ok)
}
