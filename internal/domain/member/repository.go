package member

import (
	"context"
)

// UserRepository defines data access for organization members.
type UserRepository interface {
	Create(ctx context.Context, user User) (User, error)

	GetByID(ctx context.Context, id string) (User, error)

	GetByEmail(ctx context.Context, email string) (User, error)

	// ListTeamIDs returns the teams the user is currently active on
	// (an open membership period exists).
	ListTeamIDs(ctx context.Context, userID string) ([]string, error)

	// ListAthletesByTeams returns distinct athlete-role members currently
	// active on any of the given teams. Coaches and admins are excluded.
	ListAthletesByTeams(ctx context.Context, teamIDs []string) ([]User, error)

	// ListPeriodsByUser returns every membership period of one user,
	// across all teams, oldest first.
	ListPeriodsByUser(ctx context.Context, userID string) ([]MembershipPeriod, error)

	// ListPeriodsByUsers returns membership periods for a set of users
	// keyed by user ID, restricted to the given teams.
	ListPeriodsByUsers(ctx context.Context, userIDs []string, teamIDs []string) (map[string][]MembershipPeriod, error)

	// CreatePeriod appends a membership period (join).
	CreatePeriod(ctx context.Context, period MembershipPeriod) (MembershipPeriod, error)

	// ClosePeriod sets LeftAt on the open period for (user, team).
	ClosePeriod(ctx context.Context, userID string, teamID string, leftAt string) error

	// HasGuardianLink reports whether guardianID may act for wardID.
	HasGuardianLink(ctx context.Context, guardianID string, wardID string) (bool, error)
}
