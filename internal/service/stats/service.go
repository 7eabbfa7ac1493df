package stats

import (
	"context"
	"fmt"
	"log/slog"
	"math"
	"sort"
	"time"

	"github.com/CodyMacMLE/athletiq-backend-go/internal/domain/event"
	"github.com/CodyMacMLE/athletiq-backend-go/internal/domain/member"
	"github.com/CodyMacMLE/athletiq-backend-go/internal/domain/stats"
	"github.com/CodyMacMLE/athletiq-backend-go/internal/pkg/timewindow"
)

// StatsService computes read-only attendance aggregates. It never
// mutates attendance state.
type StatsService struct {
	stats.StatsRepository
	member.UserRepository
	loc   *time.Location
	nowFn func() time.Time
}

func NewStatsService(statsRepo stats.StatsRepository, userRepo member.UserRepository, loc *time.Location) *StatsService {
	return &StatsService{
		StatsRepository: statsRepo,
		UserRepository:  userRepo,
		loc:             loc,
		nowFn:           time.Now,
	}
}

// applicableEvents resolves windows and, for a user scope, drops events
// outside every membership period of that user. Events with broken time
// strings are skipped with a log; one bad event must not poison a
// leaderboard query.
func (s *StatsService) applicableEvents(ctx context.Context, scope stats.Scope, events []event.Event) ([]event.Event, map[string]timewindow.Window, error) {
	var periods []member.MembershipPeriod
	if scope.UserID != nil {
		var err error
		periods, err = s.UserRepository.ListPeriodsByUser(ctx, *scope.UserID)
		if err != nil {
			return nil, nil, fmt.Errorf("failed to list membership periods: %w", err)
		}
	}

	kept := make([]event.Event, 0, len(events))
	windows := make(map[string]timewindow.Window, len(events))
	for _, ev := range events {
		w, err := timewindow.Resolve(ev.Date, ev.StartTime, ev.EndTime, s.loc)
		if err != nil {
			slog.Error("Stats: event has an invalid time window, skipping",
				"event_id", ev.ID, "error", err)
			continue
		}
		if scope.UserID != nil && !member.IsActiveDuring(ev.Date, periods) {
			continue
		}
		kept = append(kept, ev)
		windows[ev.ID] = w
	}
	return kept, windows, nil
}

func attendancePercent(logged, required float64) float64 {
	if required == 0 {
		return 0
	}
	return math.Round(logged/required*10000) / 100
}

// Summary implements the headline aggregate for a scope and range.
func (s *StatsService) Summary(ctx context.Context, q stats.Query) (stats.Summary, error) {
	if err := q.Validate(); err != nil {
		return stats.Summary{}, err
	}
	from, to := q.Bounds(s.nowFn().In(s.loc))

	events, err := s.StatsRepository.EventsInRange(ctx, q.Scope, from, to)
	if err != nil {
		return stats.Summary{}, fmt.Errorf("failed to list events: %w", err)
	}
	kept, windows, err := s.applicableEvents(ctx, q.Scope, events)
	if err != nil {
		return stats.Summary{}, err
	}

	required := 0.0
	for _, ev := range kept {
		required += windows[ev.ID].Hours()
	}

	checkIns, err := s.StatsRepository.CheckInsInRange(ctx, q.Scope, from, to)
	if err != nil {
		return stats.Summary{}, fmt.Errorf("failed to list check-ins: %w", err)
	}
	logged := 0.0
	for _, rec := range checkIns {
		if _, ok := windows[rec.EventID]; !ok {
			continue
		}
		if rec.HoursLogged != nil {
			logged += *rec.HoursLogged
		}
	}

	return stats.Summary{
		EventsCount:       len(kept),
		HoursRequired:     math.Round(required*100) / 100,
		HoursLogged:       math.Round(logged*100) / 100,
		AttendancePercent: attendancePercent(logged, required),
	}, nil
}

// weekStart returns the Monday that begins the ISO week of d.
func weekStart(d time.Time) time.Time {
	offset := (int(d.Weekday()) + 6) % 7
	monday := d.AddDate(0, 0, -offset)
	return time.Date(monday.Year(), monday.Month(), monday.Day(), 0, 0, 0, 0, d.Location())
}

// Trend implements the weekly trend series: one point per ISO week,
// keyed by the week's Monday, ascending.
func (s *StatsService) Trend(ctx context.Context, q stats.Query) ([]stats.TrendPoint, error) {
	if err := q.Validate(); err != nil {
		return nil, err
	}
	from, to := q.Bounds(s.nowFn().In(s.loc))

	events, err := s.StatsRepository.EventsInRange(ctx, q.Scope, from, to)
	if err != nil {
		return nil, fmt.Errorf("failed to list events: %w", err)
	}
	kept, windows, err := s.applicableEvents(ctx, q.Scope, events)
	if err != nil {
		return nil, err
	}

	type bucket struct {
		events   int
		required float64
		logged   float64
	}
	buckets := make(map[string]*bucket)
	eventWeek := make(map[string]string, len(kept))

	for _, ev := range kept {
		week := weekStart(ev.Date).Format("2006-01-02")
		eventWeek[ev.ID] = week
		b, ok := buckets[week]
		if !ok {
			b = &bucket{}
			buckets[week] = b
		}
		b.events++
		b.required += windows[ev.ID].Hours()
	}

	checkIns, err := s.StatsRepository.CheckInsInRange(ctx, q.Scope, from, to)
	if err != nil {
		return nil, fmt.Errorf("failed to list check-ins: %w", err)
	}
	for _, rec := range checkIns {
		week, ok := eventWeek[rec.EventID]
		if !ok || rec.HoursLogged == nil {
			continue
		}
		buckets[week].logged += *rec.HoursLogged
	}

	points := make([]stats.TrendPoint, 0, len(buckets))
	for week, b := range buckets {
		points = append(points, stats.TrendPoint{
			WeekStart:         week,
			EventsCount:       b.events,
			HoursRequired:     math.Round(b.required*100) / 100,
			HoursLogged:       math.Round(b.logged*100) / 100,
			AttendancePercent: attendancePercent(b.logged, b.required),
		})
	}
	sort.Slice(points, func(i, j int) bool {
		return points[i].WeekStart < points[j].WeekStart
	})
	return points, nil
}
