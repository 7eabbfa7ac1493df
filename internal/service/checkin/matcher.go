package checkin

import (
	"fmt"
	"sort"
	"time"

	"github.com/CodyMacMLE/athletiq-backend-go/internal/domain/checkin"
	"github.com/CodyMacMLE/athletiq-backend-go/internal/domain/event"
	"github.com/CodyMacMLE/athletiq-backend-go/internal/pkg/timewindow"
)

// candidate pairs an event with its resolved window so every later step
// works off the same instants.
type candidate struct {
	event  event.Event
	window timewindow.Window
}

// matchEvent selects at most one of today's events for a tap at "now".
//
// Events the user already completed (a record with a checkout exists)
// are excluded up front. An event with an open record whose start has
// passed wins immediately, even after the window ends, so a late
// checkout tap resolves. The primary pass picks the first event, in
// chronological order, whose tap window [start-30m, end] contains now.
// If none matches, the fallback pass offers the first event still ahead
// of now; unless the caller confirmed an early check-in that surfaces as
// a TooEarlyError carrying the event's title and start. An event whose
// time strings do not resolve aborts the whole match rather than
// producing a bogus window.
func matchEvent(
	now time.Time,
	events []event.Event,
	existing map[string]checkin.CheckIn,
	confirmEarly bool,
	loc *time.Location,
) (candidate, error) {
	candidates := make([]candidate, 0, len(events))
	completed := make([]candidate, 0)

	for _, ev := range events {
		w, err := timewindow.Resolve(ev.Date, ev.StartTime, ev.EndTime, loc)
		if err != nil {
			return candidate{}, fmt.Errorf("event %s has an invalid time window: %w", ev.ID, err)
		}
		c := candidate{event: ev, window: w}
		if rec, ok := existing[ev.ID]; ok && rec.Closed() {
			completed = append(completed, c)
			continue
		}
		candidates = append(candidates, c)
	}

	sort.Slice(candidates, func(i, j int) bool {
		return candidates[i].window.Start.Before(candidates[j].window.Start)
	})

	// An event the user already has an open record on stays matchable
	// after its window ends, so the closing tap still lands. Without
	// this, a member who stays past the end could never check out.
	for _, c := range candidates {
		if _, ok := existing[c.event.ID]; ok && !c.window.Start.After(now) {
			return c, nil
		}
	}

	// Primary pass: now inside a tap window
	for _, c := range candidates {
		if c.window.Contains(now) {
			return c, nil
		}
	}

	// Fallback pass: first event still ahead of now
	for _, c := range candidates {
		if c.window.Start.After(now) {
			if !confirmEarly {
				return candidate{}, &checkin.TooEarlyError{
					EventTitle: c.event.Title,
					StartsAt:   c.window.Start,
				}
			}
			return c, nil
		}
	}

	// A tap inside the window of an event the user already completed is
	// a repeat tap on a closed pair, not a missing event.
	for _, c := range completed {
		if c.window.Contains(now) {
			return candidate{}, checkin.ErrAlreadyCheckedOut
		}
	}

	return candidate{}, checkin.ErrNoEventsToday
}
