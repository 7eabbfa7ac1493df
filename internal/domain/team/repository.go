package team

import "context"

type TeamRepository interface {
	GetByID(ctx context.Context, id string, orgID string) (Team, error)

	ListByOrg(ctx context.Context, orgID string) ([]Team, error)

	// ListCoachUserIDs returns user IDs of coach/admin members currently
	// active on any of the given teams. Used by the sweep jobs to address
	// their notifications.
	ListCoachUserIDs(ctx context.Context, teamIDs []string) ([]string, error)
}
