package postgresql

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/CodyMacMLE/athletiq-backend-go/internal/domain/event"
	"github.com/CodyMacMLE/athletiq-backend-go/internal/pkg/database"
	"github.com/jackc/pgx/v5"
)

type eventRepository struct {
	db *database.DB
}

func NewEventRepository(db *database.DB) event.EventRepository {
	return &eventRepository{db: db}
}

const eventColumns = `
	id, org_id, team_id, participating_team_ids, title, date,
	start_time, end_time, is_ad_hoc, created_by, created_at, updated_at
`

func scanEvent(row pgx.Row) (event.Event, error) {
	var e event.Event
	err := row.Scan(
		&e.ID, &e.OrgID, &e.TeamID, &e.ParticipatingTeamIDs, &e.Title, &e.Date,
		&e.StartTime, &e.EndTime, &e.IsAdHoc, &e.CreatedBy, &e.CreatedAt, &e.UpdatedAt,
	)
	return e, err
}

func collectEvents(rows pgx.Rows) ([]event.Event, error) {
	defer rows.Close()

	var events []event.Event
	for rows.Next() {
		e, err := scanEvent(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan event: %w", err)
		}
		events = append(events, e)
	}
	return events, rows.Err()
}

// Create implements event.EventRepository.
func (r *eventRepository) Create(ctx context.Context, newEvent event.Event) (event.Event, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		INSERT INTO events (
			org_id, team_id, participating_team_ids, title, date,
			start_time, end_time, is_ad_hoc, created_by
		) VALUES (
			$1, $2, $3, $4, $5, $6, $7, $8, $9
		) RETURNING id, created_at, updated_at
	`

	err := q.QueryRow(ctx, query,
		newEvent.OrgID,
		newEvent.TeamID,
		newEvent.ParticipatingTeamIDs,
		newEvent.Title,
		newEvent.Date,
		newEvent.StartTime,
		newEvent.EndTime,
		newEvent.IsAdHoc,
		newEvent.CreatedBy,
	).Scan(&newEvent.ID, &newEvent.CreatedAt, &newEvent.UpdatedAt)
	if err != nil {
		return event.Event{}, fmt.Errorf("failed to create event: %w", err)
	}
	return newEvent, nil
}

// GetByID implements event.EventRepository.
func (r *eventRepository) GetByID(ctx context.Context, id string, orgID string) (event.Event, error) {
	q := GetQuerier(ctx, r.db)

	query := `SELECT ` + eventColumns + ` FROM events WHERE id = $1 AND org_id = $2`

	e, err := scanEvent(q.QueryRow(ctx, query, id, orgID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return event.Event{}, event.ErrEventNotFound
		}
		return event.Event{}, fmt.Errorf("failed to get event: %w", err)
	}
	return e, nil
}

// ListOnDate implements event.EventRepository. An event is visible to a
// member when it is org-wide (no owning team), owned by one of the
// member's teams, or co-hosted by one of them.
func (r *eventRepository) ListOnDate(ctx context.Context, orgID string, date time.Time, teamIDs []string) ([]event.Event, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT ` + eventColumns + `
		FROM events
		WHERE org_id = $1
		  AND date = $2
		  AND (team_id IS NULL OR team_id = ANY($3) OR participating_team_ids && $3)
		ORDER BY start_time ASC
	`

	rows, err := q.Query(ctx, query, orgID, date, teamIDs)
	if err != nil {
		return nil, fmt.Errorf("failed to list events on date: %w", err)
	}
	return collectEvents(rows)
}

// ListForReconciliation implements event.EventRepository. Ad-hoc events
// are excluded; they carry exactly one attendance record by
// construction and never produce absences or auto-checkouts of their
// own.
func (r *eventRepository) ListForReconciliation(ctx context.Context, orgID *string, from, to time.Time) ([]event.Event, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT ` + eventColumns + `
		FROM events
		WHERE is_ad_hoc = false
		  AND date >= $1
		  AND date <= $2
		  AND ($3::uuid IS NULL OR org_id = $3)
		ORDER BY date ASC, start_time ASC
	`

	rows, err := q.Query(ctx, query, from, to, orgID)
	if err != nil {
		return nil, fmt.Errorf("failed to list events for reconciliation: %w", err)
	}
	return collectEvents(rows)
}

// List implements event.EventRepository.
func (r *eventRepository) List(ctx context.Context, orgID string, filter event.ListFilter) ([]event.Event, int64, error) {
	q := GetQuerier(ctx, r.db)

	conditions := []string{"org_id = $1"}
	args := []interface{}{orgID}
	argIdx := 2

	if filter.TeamID != nil {
		conditions = append(conditions, fmt.Sprintf("(team_id = $%d OR participating_team_ids @> ARRAY[$%d::uuid])", argIdx, argIdx))
		args = append(args, *filter.TeamID)
		argIdx++
	}
	if filter.DateFrom != nil {
		conditions = append(conditions, fmt.Sprintf("date >= $%d", argIdx))
		args = append(args, *filter.DateFrom)
		argIdx++
	}
	if filter.DateTo != nil {
		conditions = append(conditions, fmt.Sprintf("date <= $%d", argIdx))
		args = append(args, *filter.DateTo)
		argIdx++
	}
	baseWhere := strings.Join(conditions, " AND ")

	var total int64
	countQuery := `SELECT COUNT(*) FROM events WHERE ` + baseWhere
	if err := q.QueryRow(ctx, countQuery, args...).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("failed to count events: %w", err)
	}

	limit := filter.Limit
	if limit == 0 {
		limit = 20
	}
	page := filter.Page
	if page == 0 {
		page = 1
	}
	offset := (page - 1) * limit

	selectQuery := fmt.Sprintf(`
		SELECT %s
		FROM events
		WHERE %s
		ORDER BY date DESC, start_time DESC
		LIMIT $%d OFFSET $%d
	`, eventColumns, baseWhere, argIdx, argIdx+1)
	args = append(args, limit, offset)

	rows, err := q.Query(ctx, selectQuery, args...)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to list events: %w", err)
	}
	events, err := collectEvents(rows)
	if err != nil {
		return nil, 0, err
	}
	return events, total, nil
}

// Delete implements event.EventRepository. Events with attendance
// records are protected; delete the records first or keep the event.
func (r *eventRepository) Delete(ctx context.Context, id string, orgID string) error {
	q := GetQuerier(ctx, r.db)

	var hasRecords bool
	err := q.QueryRow(ctx, `SELECT EXISTS (SELECT 1 FROM check_ins WHERE event_id = $1)`, id).Scan(&hasRecords)
	if err != nil {
		return fmt.Errorf("failed to check event records: %w", err)
	}
	if hasRecords {
		return event.ErrEventHasRecords
	}

	commandTag, err := q.Exec(ctx, `DELETE FROM events WHERE id = $1 AND org_id = $2`, id, orgID)
	if err != nil {
		return fmt.Errorf("failed to delete event: %w", err)
	}
	if commandTag.RowsAffected() == 0 {
		return event.ErrEventNotFound
	}
	return nil
}
