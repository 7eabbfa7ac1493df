package checkin

import (
	"context"
)

// CheckInService is the real-time half of the attendance engine: tap
// matching, the open/close state machine and the ad-hoc flow.
type CheckInService interface {
	// Tap resolves a tag tap to an event and toggles the caller's (or
	// ward's) check-in state for it.
	Tap(ctx context.Context, req TapRequest) (TapResponse, error)

	// AdHoc synthesizes an event for today and opens an unapproved
	// check-in against it.
	AdHoc(ctx context.Context, req AdHocRequest) (TapResponse, error)

	// Approve marks an ad-hoc check-in as approved.
	Approve(ctx context.Context, id string) error

	// Deny removes an ad-hoc check-in and its synthesized event.
	Deny(ctx context.Context, id string) error

	// GetMyCheckIns lists the caller's records.
	GetMyCheckIns(ctx context.Context, userID string, filter ListFilter) ([]CheckInResponse, int64, error)

	// GetEventRoster lists every record for one event.
	GetEventRoster(ctx context.Context, eventID string, orgID string) ([]CheckInResponse, error)
}
