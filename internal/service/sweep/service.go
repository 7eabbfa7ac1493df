package sweep

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/CodyMacMLE/athletiq-backend-go/internal/domain/checkin"
	"github.com/CodyMacMLE/athletiq-backend-go/internal/domain/event"
	"github.com/CodyMacMLE/athletiq-backend-go/internal/domain/member"
	"github.com/CodyMacMLE/athletiq-backend-go/internal/domain/notification"
	"github.com/CodyMacMLE/athletiq-backend-go/internal/domain/team"
	"github.com/CodyMacMLE/athletiq-backend-go/internal/pkg/timewindow"
)

// SweepService reconciles terminal attendance state for events that
// ended without a tap: ABSENT backfill and forced checkouts. Both
// sweeps are idempotent, so overlapping runs across instances are safe.
type SweepService struct {
	checkin.CheckInRepository
	event.EventRepository
	member.UserRepository
	team.TeamRepository
	notificationRepo notification.Repository
	loc              *time.Location
	nowFn            func() time.Time
}

func NewSweepService(
	checkInRepo checkin.CheckInRepository,
	eventRepo event.EventRepository,
	userRepo member.UserRepository,
	teamRepo team.TeamRepository,
	notificationRepo notification.Repository,
	loc *time.Location,
) *SweepService {
	return &SweepService{
		CheckInRepository: checkInRepo,
		EventRepository:   eventRepo,
		UserRepository:    userRepo,
		TeamRepository:    teamRepo,
		notificationRepo:  notificationRepo,
		loc:               loc,
		nowFn:             time.Now,
	}
}

// endedEvents returns non-ad-hoc events in the lookback window whose
// end instant has already passed, each paired with its resolved window.
func (s *SweepService) endedEvents(ctx context.Context, lookback time.Duration, orgID *string) ([]event.Event, map[string]timewindow.Window, error) {
	now := s.nowFn().In(s.loc)
	from := now.Add(-lookback)

	events, err := s.EventRepository.ListForReconciliation(ctx, orgID, from, now)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to list events for reconciliation: %w", err)
	}

	ended := make([]event.Event, 0, len(events))
	windows := make(map[string]timewindow.Window, len(events))
	for _, ev := range events {
		w, err := timewindow.Resolve(ev.Date, ev.StartTime, ev.EndTime, s.loc)
		if err != nil {
			slog.Error("Sweep: event has an invalid time window, skipping",
				"event_id", ev.ID, "error", err)
			continue
		}
		if !w.Ended(now) {
			continue
		}
		ended = append(ended, ev)
		windows[ev.ID] = w
	}
	return ended, windows, nil
}

// SweepAbsences backfills ABSENT records for every ended event in the
// lookback window. The skip-on-conflict bulk insert makes repeated
// sweeps over the same event no-ops, so per-event failures are logged
// and the sweep continues. Returns the number of records created.
func (s *SweepService) SweepAbsences(ctx context.Context, lookback time.Duration, orgID *string) (int, error) {
	events, _, err := s.endedEvents(ctx, lookback, orgID)
	if err != nil {
		return 0, err
	}

	total := 0
	for _, ev := range events {
		created, err := s.sweepEventAbsences(ctx, ev)
		if err != nil {
			slog.Error("Sweep: failed to backfill absences for event",
				"event_id", ev.ID, "error", err)
			continue
		}
		total += created
	}

	if total > 0 {
		slog.Info("Sweep: absence backfill complete", "created", total)
	}
	return total, nil
}

func (s *SweepService) sweepEventAbsences(ctx context.Context, ev event.Event) (int, error) {
	teamIDs := ev.TeamIDs()
	athletes, err := s.UserRepository.ListAthletesByTeams(ctx, teamIDs)
	if err != nil {
		return 0, fmt.Errorf("failed to list athletes: %w", err)
	}
	if len(athletes) == 0 {
		return 0, nil
	}

	athleteIDs := make([]string, 0, len(athletes))
	for _, a := range athletes {
		athleteIDs = append(athleteIDs, a.ID)
	}
	periods, err := s.UserRepository.ListPeriodsByUsers(ctx, athleteIDs, teamIDs)
	if err != nil {
		return 0, fmt.Errorf("failed to list membership periods: %w", err)
	}

	absences := make([]checkin.CheckIn, 0, len(athletes))
	for _, a := range athletes {
		// A member whose tenure had not started on the event date was
		// never expected to attend.
		if !member.IsActiveDuring(ev.Date, periods[a.ID]) {
			continue
		}
		absences = append(absences, checkin.CheckIn{
			UserID:   a.ID,
			EventID:  ev.ID,
			Status:   checkin.StatusAbsent,
			Approved: true,
		})
	}
	if len(absences) == 0 {
		return 0, nil
	}

	created, err := s.CheckInRepository.BulkCreateAbsent(ctx, absences)
	if err != nil {
		return 0, fmt.Errorf("failed to bulk create absences: %w", err)
	}

	if created > 0 {
		s.notifyCoaches(ctx, ev, notification.TypeAbsencesRecorded,
			"Absences recorded",
			fmt.Sprintf("%d members were marked absent for %s", created, ev.Title),
			map[string]interface{}{"event_id": ev.ID, "count": created})
	}
	return created, nil
}

// SweepAutoCheckouts closes check-ins still open after their event
// ended. The checkout is backdated to the event's end so hours are not
// inflated by sweep latency; the same tap closed manually at that
// instant would log identical hours. Returns the number closed.
func (s *SweepService) SweepAutoCheckouts(ctx context.Context, lookback time.Duration, orgID *string) (int, error) {
	events, windows, err := s.endedEvents(ctx, lookback, orgID)
	if err != nil {
		return 0, err
	}

	total := 0
	for _, ev := range events {
		w := windows[ev.ID]
		open, err := s.CheckInRepository.ListOpenByEvent(ctx, ev.ID)
		if err != nil {
			slog.Error("Sweep: failed to list open check-ins",
				"event_id", ev.ID, "error", err)
			continue
		}

		closedForEvent := 0
		for _, rec := range open {
			effectiveStart := timewindow.EffectiveStart(*rec.CheckInTime, w.Start)
			hours := timewindow.RoundHours(w.End.Sub(effectiveStart))

			closed, err := s.CheckInRepository.Close(ctx, rec.ID, w.End, hours)
			if err != nil {
				slog.Error("Sweep: failed to auto-close check-in",
					"check_in_id", rec.ID, "user_id", rec.UserID, "error", err)
				continue
			}
			// Another instance or a racing manual checkout got here
			// first; the row is already terminal.
			if !closed {
				continue
			}
			closedForEvent++
		}

		if closedForEvent > 0 {
			total += closedForEvent
			s.notifyCoaches(ctx, ev, notification.TypeAutoCheckedOut,
				"Check-ins auto-closed",
				fmt.Sprintf("%d open check-ins for %s were closed at the event's end time", closedForEvent, ev.Title),
				map[string]interface{}{"event_id": ev.ID, "count": closedForEvent})
		}
	}

	if total > 0 {
		slog.Info("Sweep: auto-checkout complete", "closed", total)
	}
	return total, nil
}

func (s *SweepService) notifyCoaches(ctx context.Context, ev event.Event, notifType notification.NotificationType, title, message string, data map[string]interface{}) {
	coachIDs, err := s.TeamRepository.ListCoachUserIDs(ctx, ev.TeamIDs())
	if err != nil {
		slog.Error("Sweep: failed to list coaches for notification",
			"event_id", ev.ID, "error", err)
		return
	}

	notifications := make([]*notification.Notification, 0, len(coachIDs))
	for _, coachID := range coachIDs {
		notifications = append(notifications, &notification.Notification{
			OrgID:       ev.OrgID,
			RecipientID: coachID,
			Type:        notifType,
			Title:       title,
			Message:     message,
			Data:        data,
		})
	}
	if len(notifications) == 0 {
		return
	}
	if err := s.notificationRepo.CreateBatch(ctx, notifications); err != nil {
		slog.Error("Sweep: failed to queue notifications",
			"event_id", ev.ID, "error", err)
	}
}
