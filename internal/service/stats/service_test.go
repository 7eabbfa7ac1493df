package stats

import (
	"context"
	"testing"
	"time"

	"github.com/CodyMacMLE/athletiq-backend-go/internal/domain/checkin"
	"github.com/CodyMacMLE/athletiq-backend-go/internal/domain/event"
	"github.com/CodyMacMLE/athletiq-backend-go/internal/domain/member"
	"github.com/CodyMacMLE/athletiq-backend-go/internal/domain/stats"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const orgID = "0c8f2c4e-4b2c-4f4d-9a39-94b1c0a4d8f1"

type fakeStatsRepo struct {
	events   []event.Event
	checkIns []checkin.CheckIn
}

func (f *fakeStatsRepo) EventsInRange(_ context.Context, _ stats.Scope, _, _ time.Time) ([]event.Event, error) {
	return f.events, nil
}

func (f *fakeStatsRepo) CheckInsInRange(_ context.Context, _ stats.Scope, _, _ time.Time) ([]checkin.CheckIn, error) {
	return f.checkIns, nil
}

type fakeUserRepo struct {
	periods map[string][]member.MembershipPeriod
}

func (f *fakeUserRepo) Create(_ context.Context, u member.User) (member.User, error) { return u, nil }

func (f *fakeUserRepo) GetByID(_ context.Context, _ string) (member.User, error) {
	return member.User{}, member.ErrUserNotFound
}

func (f *fakeUserRepo) GetByEmail(_ context.Context, _ string) (member.User, error) {
	return member.User{}, member.ErrUserNotFound
}

func (f *fakeUserRepo) ListTeamIDs(_ context.Context, _ string) ([]string, error) { return nil, nil }

func (f *fakeUserRepo) ListAthletesByTeams(_ context.Context, _ []string) ([]member.User, error) {
	return nil, nil
}

func (f *fakeUserRepo) ListPeriodsByUser(_ context.Context, userID string) ([]member.MembershipPeriod, error) {
	return f.periods[userID], nil
}

func (f *fakeUserRepo) ListPeriodsByUsers(_ context.Context, _ []string, _ []string) (map[string][]member.MembershipPeriod, error) {
	return nil, nil
}

func (f *fakeUserRepo) CreatePeriod(_ context.Context, p member.MembershipPeriod) (member.MembershipPeriod, error) {
	return p, nil
}

func (f *fakeUserRepo) ClosePeriod(_ context.Context, _, _, _ string) error { return nil }

func (f *fakeUserRepo) HasGuardianLink(_ context.Context, _, _ string) (bool, error) {
	return false, nil
}

func newStatsService(statsRepo *fakeStatsRepo, userRepo *fakeUserRepo, now time.Time) *StatsService {
	svc := NewStatsService(statsRepo, userRepo, time.UTC)
	svc.nowFn = func() time.Time { return now }
	return svc
}

func dayEvent(id string, date time.Time, start, end string) event.Event {
	return event.Event{
		ID:        id,
		OrgID:     orgID,
		Title:     "Practice",
		Date:      date,
		StartTime: start,
		EndTime:   end,
	}
}

func hours(h float64) *float64 { return &h }

func TestSummary(t *testing.T) {
	mon := time.Date(2025, 9, 8, 0, 0, 0, 0, time.UTC)
	wed := time.Date(2025, 9, 10, 0, 0, 0, 0, time.UTC)
	statsRepo := &fakeStatsRepo{
		events: []event.Event{
			dayEvent("ev-1", mon, "6:00 PM", "8:00 PM"),
			dayEvent("ev-2", wed, "6:00 PM", "8:00 PM"),
		},
		checkIns: []checkin.CheckIn{
			{EventID: "ev-1", UserID: "a1", Status: checkin.StatusOnTime, HoursLogged: hours(2.0)},
			{EventID: "ev-2", UserID: "a1", Status: checkin.StatusLate, HoursLogged: hours(1.5)},
		},
	}
	svc := newStatsService(statsRepo, &fakeUserRepo{}, time.Date(2025, 9, 12, 12, 0, 0, 0, time.UTC))

	summary, err := svc.Summary(context.Background(), stats.Query{
		Scope: stats.Scope{OrgID: orgID},
		Range: stats.RangeWeek,
	})
	require.NoError(t, err)
	assert.Equal(t, 2, summary.EventsCount)
	assert.InDelta(t, 4.0, summary.HoursRequired, 0.001)
	assert.InDelta(t, 3.5, summary.HoursLogged, 0.001)
	assert.InDelta(t, 87.5, summary.AttendancePercent, 0.001)
}

func TestSummaryZeroRequiredHours(t *testing.T) {
	svc := newStatsService(&fakeStatsRepo{}, &fakeUserRepo{}, time.Date(2025, 9, 12, 12, 0, 0, 0, time.UTC))

	summary, err := svc.Summary(context.Background(), stats.Query{
		Scope: stats.Scope{OrgID: orgID},
		Range: stats.RangeWeek,
	})
	require.NoError(t, err)
	assert.Equal(t, 0, summary.EventsCount)
	assert.Zero(t, summary.AttendancePercent)
}

func TestSummaryUserScopeFiltersByMembership(t *testing.T) {
	mon := time.Date(2025, 9, 8, 0, 0, 0, 0, time.UTC)
	wed := time.Date(2025, 9, 10, 0, 0, 0, 0, time.UTC)
	statsRepo := &fakeStatsRepo{
		events: []event.Event{
			dayEvent("ev-1", mon, "6:00 PM", "8:00 PM"),
			dayEvent("ev-2", wed, "6:00 PM", "8:00 PM"),
		},
		checkIns: []checkin.CheckIn{
			{EventID: "ev-2", UserID: "a1", Status: checkin.StatusOnTime, HoursLogged: hours(2.0)},
		},
	}
	// The user joined between the two events: only the second counts.
	joined := time.Date(2025, 9, 9, 0, 0, 0, 0, time.UTC)
	userRepo := &fakeUserRepo{periods: map[string][]member.MembershipPeriod{
		"0a49c4b7-51f0-4cc5-b0f5-6a1f0d9f7e21": {{UserID: "a1", TeamID: "team-1", JoinedAt: joined}},
	}}
	svc := newStatsService(statsRepo, userRepo, time.Date(2025, 9, 12, 12, 0, 0, 0, time.UTC))

	userID := "0a49c4b7-51f0-4cc5-b0f5-6a1f0d9f7e21"
	summary, err := svc.Summary(context.Background(), stats.Query{
		Scope: stats.Scope{OrgID: orgID, UserID: &userID},
		Range: stats.RangeWeek,
	})
	require.NoError(t, err)
	assert.Equal(t, 1, summary.EventsCount)
	assert.InDelta(t, 2.0, summary.HoursRequired, 0.001)
	assert.InDelta(t, 100.0, summary.AttendancePercent, 0.001)
}

func TestSummaryRejectsUnknownRange(t *testing.T) {
	svc := newStatsService(&fakeStatsRepo{}, &fakeUserRepo{}, time.Now())

	_, err := svc.Summary(context.Background(), stats.Query{
		Scope: stats.Scope{OrgID: orgID},
		Range: "FORTNIGHT",
	})
	assert.Error(t, err)
}

func TestTrendGroupsByISOWeekMonday(t *testing.T) {
	// Mon 2025-09-08 and Wed 2025-09-10 share a week; Sun 2025-09-14
	// still belongs to it, Mon 2025-09-15 opens the next one.
	statsRepo := &fakeStatsRepo{
		events: []event.Event{
			dayEvent("ev-1", time.Date(2025, 9, 8, 0, 0, 0, 0, time.UTC), "6:00 PM", "8:00 PM"),
			dayEvent("ev-2", time.Date(2025, 9, 10, 0, 0, 0, 0, time.UTC), "6:00 PM", "8:00 PM"),
			dayEvent("ev-3", time.Date(2025, 9, 14, 0, 0, 0, 0, time.UTC), "10:00 AM", "11:00 AM"),
			dayEvent("ev-4", time.Date(2025, 9, 15, 0, 0, 0, 0, time.UTC), "6:00 PM", "8:00 PM"),
		},
		checkIns: []checkin.CheckIn{
			{EventID: "ev-1", UserID: "a1", Status: checkin.StatusOnTime, HoursLogged: hours(2.0)},
			{EventID: "ev-4", UserID: "a1", Status: checkin.StatusOnTime, HoursLogged: hours(2.0)},
		},
	}
	svc := newStatsService(statsRepo, &fakeUserRepo{}, time.Date(2025, 9, 16, 12, 0, 0, 0, time.UTC))

	points, err := svc.Trend(context.Background(), stats.Query{
		Scope: stats.Scope{OrgID: orgID},
		Range: stats.RangeMonth,
	})
	require.NoError(t, err)
	require.Len(t, points, 2)

	assert.Equal(t, "2025-09-08", points[0].WeekStart)
	assert.Equal(t, 3, points[0].EventsCount)
	assert.InDelta(t, 5.0, points[0].HoursRequired, 0.001)
	assert.InDelta(t, 2.0, points[0].HoursLogged, 0.001)
	assert.InDelta(t, 40.0, points[0].AttendancePercent, 0.001)

	assert.Equal(t, "2025-09-15", points[1].WeekStart)
	assert.Equal(t, 1, points[1].EventsCount)
	assert.InDelta(t, 100.0, points[1].AttendancePercent, 0.001)
}
