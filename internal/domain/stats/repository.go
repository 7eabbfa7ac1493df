package stats

import (
	"context"
	"time"

	"github.com/CodyMacMLE/athletiq-backend-go/internal/domain/checkin"
	"github.com/CodyMacMLE/athletiq-backend-go/internal/domain/event"
)

// StatsRepository provides the read-only slices of events and check-ins
// the aggregator works over. It never mutates state.
type StatsRepository interface {
	// EventsInRange returns events whose calendar date falls inside
	// [from, to] for the scope's teams (or the whole organization).
	// Unapproved ad-hoc events are excluded.
	EventsInRange(ctx context.Context, scope Scope, from, to time.Time) ([]event.Event, error)

	// CheckInsInRange returns check-ins of athlete-role members for the
	// scope's events in [from, to].
	CheckInsInRange(ctx context.Context, scope Scope, from, to time.Time) ([]checkin.CheckIn, error)
}
