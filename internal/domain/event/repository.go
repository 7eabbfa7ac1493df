package event

import (
	"context"
	"time"
)

// EventRepository defines data access methods for scheduled events.
// All read methods take orgID to prevent cross-organization access.
type EventRepository interface {
	// Create creates a new event (staff-scheduled or ad-hoc)
	Create(ctx context.Context, event Event) (Event, error)

	// GetByID retrieves an event by ID with org isolation
	GetByID(ctx context.Context, id string, orgID string) (Event, error)

	// ListOnDate retrieves events on a calendar date visible to the given
	// teams: owned by one of them, co-hosted by one of them, or org-wide.
	ListOnDate(ctx context.Context, orgID string, date time.Time, teamIDs []string) ([]Event, error)

	// ListForReconciliation retrieves non-ad-hoc events whose calendar
	// date falls inside [from, to]. orgID is optional; nil scans every
	// organization (scheduler-driven sweeps).
	ListForReconciliation(ctx context.Context, orgID *string, from, to time.Time) ([]Event, error)

	// List retrieves events for an organization with pagination
	List(ctx context.Context, orgID string, filter ListFilter) ([]Event, int64, error)

	// Delete removes an event
	Delete(ctx context.Context, id string, orgID string) error
}
