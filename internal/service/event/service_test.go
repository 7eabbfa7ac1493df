package event

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/CodyMacMLE/athletiq-backend-go/internal/domain/event"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeEventRepo struct {
	events  []event.Event
	deleted []string
}

func (f *fakeEventRepo) Create(_ context.Context, e event.Event) (event.Event, error) {
	e.ID = fmt.Sprintf("ev-%d", len(f.events)+1)
	f.events = append(f.events, e)
	return e, nil
}

func (f *fakeEventRepo) GetByID(_ context.Context, id string, orgID string) (event.Event, error) {
	for _, e := range f.events {
		if e.ID == id && e.OrgID == orgID {
			return e, nil
		}
	}
	return event.Event{}, event.ErrEventNotFound
}

func (f *fakeEventRepo) ListOnDate(_ context.Context, orgID string, date time.Time, teamIDs []string) ([]event.Event, error) {
	return nil, nil
}

func (f *fakeEventRepo) ListForReconciliation(_ context.Context, orgID *string, from, to time.Time) ([]event.Event, error) {
	return nil, nil
}

func (f *fakeEventRepo) List(_ context.Context, orgID string, filter event.ListFilter) ([]event.Event, int64, error) {
	var out []event.Event
	for _, e := range f.events {
		if e.OrgID == orgID {
			out = append(out, e)
		}
	}
	return out, int64(len(out)), nil
}

func (f *fakeEventRepo) Delete(_ context.Context, id string, orgID string) error {
	for i, e := range f.events {
		if e.ID == id && e.OrgID == orgID {
			f.events = append(f.events[:i], f.events[i+1:]...)
			f.deleted = append(f.deleted, id)
			return nil
		}
	}
	return event.ErrEventNotFound
}

func newService(repo *fakeEventRepo) *EventServiceImpl {
	return NewEventService(repo, time.UTC)
}

func TestCreate(t *testing.T) {
	repo := &fakeEventRepo{}
	svc := newService(repo)

	resp, err := svc.Create(context.Background(), "org-1", "coach-1", event.CreateEventRequest{
		Title:     "Evening Practice",
		Date:      "2025-09-15",
		StartTime: "18:00",
		EndTime:   "20:00",
	})
	require.NoError(t, err)

	assert.Equal(t, "Evening Practice", resp.Title)
	assert.Equal(t, "2025-09-15", resp.Date)
	assert.Equal(t, "18:00", resp.StartTime)
	assert.False(t, resp.IsAdHoc)

	require.Len(t, repo.events, 1)
	require.NotNil(t, repo.events[0].CreatedBy)
	assert.Equal(t, "coach-1", *repo.events[0].CreatedBy)
	assert.Equal(t, "org-1", repo.events[0].OrgID)
}

func TestCreateRejectsInvertedTimes(t *testing.T) {
	repo := &fakeEventRepo{}
	svc := newService(repo)

	_, err := svc.Create(context.Background(), "org-1", "coach-1", event.CreateEventRequest{
		Title:     "Backwards",
		Date:      "2025-09-15",
		StartTime: "20:00",
		EndTime:   "18:00",
	})
	require.Error(t, err)
	assert.Empty(t, repo.events)
}

func TestCreateRejectsMalformedRequest(t *testing.T) {
	repo := &fakeEventRepo{}
	svc := newService(repo)

	cases := []event.CreateEventRequest{
		{Title: "", Date: "2025-09-15", StartTime: "18:00", EndTime: "20:00"},
		{Title: "Practice", Date: "15-09-2025", StartTime: "18:00", EndTime: "20:00"},
		{Title: "Practice", Date: "2025-09-15", StartTime: "25:99", EndTime: "20:00"},
	}
	for _, req := range cases {
		_, err := svc.Create(context.Background(), "org-1", "coach-1", req)
		assert.Error(t, err, "request %+v should be rejected", req)
	}
	assert.Empty(t, repo.events)
}

func TestGetScopedToOrg(t *testing.T) {
	repo := &fakeEventRepo{}
	svc := newService(repo)

	created, err := svc.Create(context.Background(), "org-1", "coach-1", event.CreateEventRequest{
		Title:     "Scrimmage",
		Date:      "2025-09-16",
		StartTime: "10:00",
		EndTime:   "12:00",
	})
	require.NoError(t, err)

	got, err := svc.Get(context.Background(), created.ID, "org-1")
	require.NoError(t, err)
	assert.Equal(t, "Scrimmage", got.Title)

	_, err = svc.Get(context.Background(), created.ID, "org-2")
	assert.ErrorIs(t, err, event.ErrEventNotFound)
}

func TestDelete(t *testing.T) {
	repo := &fakeEventRepo{}
	svc := newService(repo)

	created, err := svc.Create(context.Background(), "org-1", "coach-1", event.CreateEventRequest{
		Title:     "Practice",
		Date:      "2025-09-17",
		StartTime: "18:00",
		EndTime:   "20:00",
	})
	require.NoError(t, err)

	require.NoError(t, svc.Delete(context.Background(), created.ID, "org-1"))
	assert.Equal(t, []string{created.ID}, repo.deleted)

	err = svc.Delete(context.Background(), created.ID, "org-1")
	assert.ErrorIs(t, err, event.ErrEventNotFound)
}
