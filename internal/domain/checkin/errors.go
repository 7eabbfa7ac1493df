package checkin

import (
	"errors"
	"fmt"
	"time"
)

// Check-in domain errors
var (
	ErrNoEventsToday         = errors.New("no events today for your teams")
	ErrAlreadyCheckedOut     = errors.New("you have already checked out of this event")
	ErrAlreadyCheckedIn      = errors.New("you have already checked in to this event")
	ErrNotAuthorizedForProxy = errors.New("not authorized to check in on behalf of this member")
	ErrCheckInNotFound       = errors.New("check-in record not found")
	ErrNotAdHocCheckIn       = errors.New("check-in was not created ad hoc")
)

// TooEarlyError is returned when the only candidate is a future event
// and the caller has not confirmed an early check-in. It carries the
// event's title and start so the client can re-prompt.
type TooEarlyError struct {
	EventTitle string
	StartsAt   time.Time
}

func (e *TooEarlyError) Error() string {
	return fmt.Sprintf("event %q has not started yet (starts at %s); confirm to check in early",
		e.EventTitle, e.StartsAt.Format("3:04 PM"))
}
