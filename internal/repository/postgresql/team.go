package postgresql

import (
	"context"
	"errors"
	"fmt"

	"github.com/CodyMacMLE/athletiq-backend-go/internal/domain/member"
	"github.com/CodyMacMLE/athletiq-backend-go/internal/domain/team"
	"github.com/CodyMacMLE/athletiq-backend-go/internal/pkg/database"
	"github.com/jackc/pgx/v5"
)

type teamRepository struct {
	db *database.DB
}

func NewTeamRepository(db *database.DB) team.TeamRepository {
	return &teamRepository{db: db}
}

// GetByID implements team.TeamRepository.
func (r *teamRepository) GetByID(ctx context.Context, id string, orgID string) (team.Team, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT id, org_id, name, created_at, updated_at
		FROM teams
		WHERE id = $1 AND org_id = $2
	`

	var t team.Team
	err := q.QueryRow(ctx, query, id, orgID).Scan(&t.ID, &t.OrgID, &t.Name, &t.CreatedAt, &t.UpdatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return team.Team{}, member.ErrTeamNotFound
		}
		return team.Team{}, fmt.Errorf("failed to get team: %w", err)
	}
	return t, nil
}

// ListByOrg implements team.TeamRepository.
func (r *teamRepository) ListByOrg(ctx context.Context, orgID string) ([]team.Team, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT id, org_id, name, created_at, updated_at
		FROM teams
		WHERE org_id = $1
		ORDER BY name ASC
	`

	rows, err := q.Query(ctx, query, orgID)
	if err != nil {
		return nil, fmt.Errorf("failed to list teams: %w", err)
	}
	defer rows.Close()

	var teams []team.Team
	for rows.Next() {
		var t team.Team
		if err := rows.Scan(&t.ID, &t.OrgID, &t.Name, &t.CreatedAt, &t.UpdatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan team: %w", err)
		}
		teams = append(teams, t)
	}
	return teams, rows.Err()
}

// ListCoachUserIDs implements team.TeamRepository.
func (r *teamRepository) ListCoachUserIDs(ctx context.Context, teamIDs []string) ([]string, error) {
	if len(teamIDs) == 0 {
		return nil, nil
	}
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT DISTINCT u.id
		FROM users u
		JOIN membership_periods mp ON mp.user_id = u.id
		WHERE mp.team_id = ANY($1)
		  AND mp.left_at IS NULL
		  AND u.role IN ('coach', 'admin')
	`

	rows, err := q.Query(ctx, query, teamIDs)
	if err != nil {
		return nil, fmt.Errorf("failed to list coach user ids: %w", err)
	}
	defer rows.Close()

	var userIDs []string
	for rows.Next() {
		var id string
		if err := rows.Scan(&id); err != nil {
			return nil, fmt.Errorf("failed to scan user id: %w", err)
		}
		userIDs = append(userIDs, id)
	}
	return userIDs, rows.Err()
}
