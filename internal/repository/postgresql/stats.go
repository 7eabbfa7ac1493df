package postgresql

import (
	"context"
	"fmt"
	"time"

	"github.com/CodyMacMLE/athletiq-backend-go/internal/domain/checkin"
	"github.com/CodyMacMLE/athletiq-backend-go/internal/domain/event"
	"github.com/CodyMacMLE/athletiq-backend-go/internal/domain/stats"
	"github.com/CodyMacMLE/athletiq-backend-go/internal/pkg/database"
)

type statsRepository struct {
	db *database.DB
}

func NewStatsRepository(db *database.DB) stats.StatsRepository {
	return &statsRepository{db: db}
}

// EventsInRange implements stats.StatsRepository. For a user scope this
// returns events of every team the user has ever had a period on; the
// aggregator filters each event against the period actually covering
// its date.
func (r *statsRepository) EventsInRange(ctx context.Context, scope stats.Scope, from, to time.Time) ([]event.Event, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT e.id, e.org_id, e.team_id, e.participating_team_ids, e.title, e.date,
		       e.start_time, e.end_time, e.is_ad_hoc, e.created_by, e.created_at, e.updated_at
		FROM events e
		WHERE e.org_id = $1
		  AND e.date >= $2
		  AND e.date <= $3
		  AND ($4::uuid IS NULL OR e.team_id = $4 OR e.participating_team_ids @> ARRAY[$4::uuid])
		  AND ($5::uuid IS NULL OR e.team_id IS NULL OR e.team_id IN (
			SELECT mp.team_id FROM membership_periods mp WHERE mp.user_id = $5
		  ) OR EXISTS (
			SELECT 1 FROM membership_periods mp
			WHERE mp.user_id = $5 AND mp.team_id = ANY(e.participating_team_ids)
		  ))
		  AND (
			e.is_ad_hoc = false
			OR EXISTS (
				SELECT 1 FROM check_ins c
				WHERE c.event_id = e.id AND c.approved = true
			)
		  )
		ORDER BY e.date ASC, e.start_time ASC
	`

	rows, err := q.Query(ctx, query, scope.OrgID, from, to, scope.TeamID, scope.UserID)
	if err != nil {
		return nil, fmt.Errorf("failed to query events in range: %w", err)
	}
	return collectEvents(rows)
}

// CheckInsInRange implements stats.StatsRepository.
func (r *statsRepository) CheckInsInRange(ctx context.Context, scope stats.Scope, from, to time.Time) ([]checkin.CheckIn, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT c.id, c.user_id, c.event_id, c.status, c.check_in_time, c.check_out_time,
		       c.hours_logged, c.is_ad_hoc, c.approved, c.created_at, c.updated_at
		FROM check_ins c
		JOIN events e ON e.id = c.event_id
		JOIN users u ON u.id = c.user_id
		WHERE e.org_id = $1
		  AND e.date >= $2
		  AND e.date <= $3
		  AND c.approved = true
		  AND u.role = 'athlete'
		  AND ($4::uuid IS NULL OR e.team_id = $4 OR e.participating_team_ids @> ARRAY[$4::uuid])
		  AND ($5::uuid IS NULL OR c.user_id = $5)
	`

	rows, err := q.Query(ctx, query, scope.OrgID, from, to, scope.TeamID, scope.UserID)
	if err != nil {
		return nil, fmt.Errorf("failed to query check-ins in range: %w", err)
	}
	defer rows.Close()

	var checkIns []checkin.CheckIn
	for rows.Next() {
		c, err := scanCheckIn(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan check-in: %w", err)
		}
		checkIns = append(checkIns, c)
	}
	return checkIns, rows.Err()
}
