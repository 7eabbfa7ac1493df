package checkin

import (
	"context"
	"time"
)

// CheckInRepository defines data access for attendance records. The
// store enforces a unique constraint on (user_id, event_id); Create
// surfaces a violation as ErrAlreadyCheckedIn and BulkCreateAbsent
// silently skips conflicting rows.
type CheckInRepository interface {
	Create(ctx context.Context, checkIn CheckIn) (CheckIn, error)

	GetByID(ctx context.Context, id string) (CheckIn, error)

	// ListByUserAndEvents returns the user's records for the given
	// events, keyed by event ID.
	ListByUserAndEvents(ctx context.Context, userID string, eventIDs []string) (map[string]CheckIn, error)

	// ListOpenByEvent returns ON_TIME/LATE records with no checkout yet.
	ListOpenByEvent(ctx context.Context, eventID string) ([]CheckIn, error)

	ListByEvent(ctx context.Context, eventID string) ([]CheckIn, error)

	ListByUser(ctx context.Context, userID string, filter ListFilter) ([]CheckIn, int64, error)

	// Close sets the checkout time and logged hours, only if the record
	// is still open. Returns false when the row was already closed, so a
	// duplicate sweep or a racing manual checkout is a no-op.
	Close(ctx context.Context, id string, checkOutTime time.Time, hoursLogged float64) (bool, error)

	// BulkCreateAbsent inserts ABSENT rows, skipping any (user, event)
	// pair that already has a record. Returns the number inserted.
	BulkCreateAbsent(ctx context.Context, checkIns []CheckIn) (int, error)

	// SetApproved approves an ad-hoc check-in.
	SetApproved(ctx context.Context, id string) error

	// DeleteWithEvent removes an ad-hoc check-in together with its
	// synthesized event, atomically.
	DeleteWithEvent(ctx context.Context, checkInID string, eventID string) error
}
