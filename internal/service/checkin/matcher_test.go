package checkin

import (
	"errors"
	"testing"
	"time"

	"github.com/CodyMacMLE/athletiq-backend-go/internal/domain/checkin"
	"github.com/CodyMacMLE/athletiq-backend-go/internal/domain/event"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var testDay = time.Date(2025, 9, 15, 0, 0, 0, 0, time.UTC)

func eventAt(id, title, start, end string) event.Event {
	return event.Event{
		ID:        id,
		OrgID:     "org-1",
		Title:     title,
		Date:      testDay,
		StartTime: start,
		EndTime:   end,
	}
}

func at(hour, minute int) time.Time {
	return time.Date(2025, 9, 15, hour, minute, 0, 0, time.UTC)
}

func closedRecord(eventID string) checkin.CheckIn {
	in := at(18, 0)
	out := at(20, 0)
	return checkin.CheckIn{
		ID:           "ci-closed",
		UserID:       "user-1",
		EventID:      eventID,
		Status:       checkin.StatusOnTime,
		CheckInTime:  &in,
		CheckOutTime: &out,
	}
}

func openRecord(eventID string) checkin.CheckIn {
	in := at(17, 58)
	return checkin.CheckIn{
		ID:          "ci-open",
		UserID:      "user-1",
		EventID:     eventID,
		Status:      checkin.StatusOnTime,
		CheckInTime: &in,
	}
}

func TestMatchEventPrimaryWindow(t *testing.T) {
	events := []event.Event{eventAt("ev-1", "Practice", "6:00 PM", "8:00 PM")}

	tests := []struct {
		name    string
		now     time.Time
		matches bool
	}{
		{"just before grace opens", at(17, 29), false},
		{"at grace boundary", at(17, 30), true},
		{"during event", at(18, 45), true},
		{"at event end", at(20, 0), true},
		{"after event end", at(20, 1), false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c, err := matchEvent(tt.now, events, nil, false, time.UTC)
			if tt.matches {
				require.NoError(t, err)
				assert.Equal(t, "ev-1", c.event.ID)
			} else {
				require.Error(t, err)
			}
		})
	}
}

func TestMatchEventTooEarly(t *testing.T) {
	events := []event.Event{eventAt("ev-1", "Evening Practice", "6:00 PM", "8:00 PM")}

	_, err := matchEvent(at(9, 0), events, nil, false, time.UTC)
	var tooEarly *checkin.TooEarlyError
	require.ErrorAs(t, err, &tooEarly)
	assert.Equal(t, "Evening Practice", tooEarly.EventTitle)
	assert.Equal(t, at(18, 0), tooEarly.StartsAt)

	// Confirming flips the same tap into a valid early check-in.
	c, err := matchEvent(at(9, 0), events, nil, true, time.UTC)
	require.NoError(t, err)
	assert.Equal(t, "ev-1", c.event.ID)
}

func TestMatchEventFallbackPicksFirstFutureEvent(t *testing.T) {
	events := []event.Event{
		eventAt("ev-late", "Scrimmage", "7:00 PM", "9:00 PM"),
		eventAt("ev-early", "Practice", "3:00 PM", "4:00 PM"),
	}

	c, err := matchEvent(at(9, 0), events, nil, true, time.UTC)
	require.NoError(t, err)
	assert.Equal(t, "ev-early", c.event.ID)
}

func TestMatchEventChronologicalPrimary(t *testing.T) {
	// Overlapping windows: the earlier-starting event wins.
	events := []event.Event{
		eventAt("ev-b", "Practice B", "6:30 PM", "8:30 PM"),
		eventAt("ev-a", "Practice A", "6:00 PM", "8:00 PM"),
	}

	c, err := matchEvent(at(18, 45), events, nil, false, time.UTC)
	require.NoError(t, err)
	assert.Equal(t, "ev-a", c.event.ID)
}

func TestMatchEventCompletedPairExcluded(t *testing.T) {
	// With the first event completed, an overlapping second event can
	// still match the same tap.
	events := []event.Event{
		eventAt("ev-a", "Practice A", "6:00 PM", "8:00 PM"),
		eventAt("ev-b", "Practice B", "6:30 PM", "8:30 PM"),
	}
	existing := map[string]checkin.CheckIn{"ev-a": closedRecord("ev-a")}

	c, err := matchEvent(at(19, 0), events, existing, false, time.UTC)
	require.NoError(t, err)
	assert.Equal(t, "ev-b", c.event.ID)
}

func TestMatchEventOpenPairMatchableAfterEnd(t *testing.T) {
	// A member who stays past the end still gets their checkout tap
	// resolved to the open pair, not ErrNoEventsToday.
	events := []event.Event{eventAt("ev-1", "Practice", "6:00 PM", "8:00 PM")}
	existing := map[string]checkin.CheckIn{"ev-1": openRecord("ev-1")}

	c, err := matchEvent(at(20, 2), events, existing, false, time.UTC)
	require.NoError(t, err)
	assert.Equal(t, "ev-1", c.event.ID)
}

func TestMatchEventOpenPairBeatsLaterEvent(t *testing.T) {
	// The open pair wins over a later event that would otherwise
	// surface as a too-early fallback.
	events := []event.Event{
		eventAt("ev-1", "Practice", "6:00 PM", "8:00 PM"),
		eventAt("ev-2", "Film Session", "9:00 PM", "10:00 PM"),
	}
	existing := map[string]checkin.CheckIn{"ev-1": openRecord("ev-1")}

	c, err := matchEvent(at(20, 2), events, existing, false, time.UTC)
	require.NoError(t, err)
	assert.Equal(t, "ev-1", c.event.ID)
}

func TestMatchEventRepeatTapAfterCheckout(t *testing.T) {
	events := []event.Event{eventAt("ev-1", "Practice", "6:00 PM", "8:00 PM")}
	existing := map[string]checkin.CheckIn{"ev-1": closedRecord("ev-1")}

	_, err := matchEvent(at(19, 0), events, existing, false, time.UTC)
	assert.ErrorIs(t, err, checkin.ErrAlreadyCheckedOut)
}

func TestMatchEventNoEvents(t *testing.T) {
	_, err := matchEvent(at(19, 0), nil, nil, false, time.UTC)
	assert.ErrorIs(t, err, checkin.ErrNoEventsToday)

	// All of today's events already over.
	events := []event.Event{eventAt("ev-1", "Morning Practice", "7:00 AM", "9:00 AM")}
	_, err = matchEvent(at(19, 0), events, nil, false, time.UTC)
	assert.ErrorIs(t, err, checkin.ErrNoEventsToday)
}

func TestMatchEventInvalidWindowAborts(t *testing.T) {
	events := []event.Event{
		eventAt("ev-ok", "Practice", "6:00 PM", "8:00 PM"),
		eventAt("ev-bad", "Broken", "25:99", "8:00 PM"),
	}

	_, err := matchEvent(at(18, 30), events, nil, false, time.UTC)
	require.Error(t, err)
	assert.False(t, errors.Is(err, checkin.ErrNoEventsToday))
}
