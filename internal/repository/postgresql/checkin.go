package postgresql

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/CodyMacMLE/athletiq-backend-go/internal/domain/checkin"
	"github.com/CodyMacMLE/athletiq-backend-go/internal/pkg/database"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
)

const uniqueViolationCode = "23505"

type checkInRepository struct {
	db *database.DB
}

func NewCheckInRepository(db *database.DB) checkin.CheckInRepository {
	return &checkInRepository{db: db}
}

const checkInColumns = `
	id, user_id, event_id, status, check_in_time, check_out_time,
	hours_logged, is_ad_hoc, approved, created_at, updated_at
`

func scanCheckIn(row pgx.Row) (checkin.CheckIn, error) {
	var c checkin.CheckIn
	err := row.Scan(
		&c.ID, &c.UserID, &c.EventID, &c.Status, &c.CheckInTime, &c.CheckOutTime,
		&c.HoursLogged, &c.IsAdHoc, &c.Approved, &c.CreatedAt, &c.UpdatedAt,
	)
	return c, err
}

// Create implements checkin.CheckInRepository. A violation of the
// (user_id, event_id) unique index is mapped to ErrAlreadyCheckedIn so
// the loser of a concurrent double-tap sees a conflict, not a 500.
func (r *checkInRepository) Create(ctx context.Context, newCheckIn checkin.CheckIn) (checkin.CheckIn, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		INSERT INTO check_ins (
			user_id, event_id, status, check_in_time, is_ad_hoc, approved
		) VALUES (
			$1, $2, $3, $4, $5, $6
		) RETURNING id, created_at, updated_at
	`

	err := q.QueryRow(ctx, query,
		newCheckIn.UserID,
		newCheckIn.EventID,
		newCheckIn.Status,
		newCheckIn.CheckInTime,
		newCheckIn.IsAdHoc,
		newCheckIn.Approved,
	).Scan(&newCheckIn.ID, &newCheckIn.CreatedAt, &newCheckIn.UpdatedAt)

	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == uniqueViolationCode {
			return checkin.CheckIn{}, checkin.ErrAlreadyCheckedIn
		}
		return checkin.CheckIn{}, fmt.Errorf("failed to create check-in: %w", err)
	}

	return newCheckIn, nil
}

// GetByID implements checkin.CheckInRepository.
func (r *checkInRepository) GetByID(ctx context.Context, id string) (checkin.CheckIn, error) {
	q := GetQuerier(ctx, r.db)

	query := `SELECT ` + checkInColumns + ` FROM check_ins WHERE id = $1`

	c, err := scanCheckIn(q.QueryRow(ctx, query, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return checkin.CheckIn{}, checkin.ErrCheckInNotFound
		}
		return checkin.CheckIn{}, fmt.Errorf("failed to get check-in: %w", err)
	}
	return c, nil
}

// ListByUserAndEvents implements checkin.CheckInRepository.
func (r *checkInRepository) ListByUserAndEvents(ctx context.Context, userID string, eventIDs []string) (map[string]checkin.CheckIn, error) {
	result := make(map[string]checkin.CheckIn)
	if len(eventIDs) == 0 {
		return result, nil
	}
	q := GetQuerier(ctx, r.db)

	query := `SELECT ` + checkInColumns + ` FROM check_ins WHERE user_id = $1 AND event_id = ANY($2)`

	rows, err := q.Query(ctx, query, userID, eventIDs)
	if err != nil {
		return nil, fmt.Errorf("failed to list check-ins by user and events: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		c, err := scanCheckIn(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan check-in: %w", err)
		}
		result[c.EventID] = c
	}
	return result, rows.Err()
}

// ListOpenByEvent implements checkin.CheckInRepository.
func (r *checkInRepository) ListOpenByEvent(ctx context.Context, eventID string) ([]checkin.CheckIn, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT ` + checkInColumns + `
		FROM check_ins
		WHERE event_id = $1
		  AND check_out_time IS NULL
		  AND status IN ('ON_TIME', 'LATE')
	`

	rows, err := q.Query(ctx, query, eventID)
	if err != nil {
		return nil, fmt.Errorf("failed to list open check-ins: %w", err)
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

// ListByEvent implements checkin.CheckInRepository.
func (r *checkInRepository) ListByEvent(ctx context.Context, eventID string) ([]checkin.CheckIn, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT c.id, c.user_id, c.event_id, c.status, c.check_in_time, c.check_out_time,
		       c.hours_logged, c.is_ad_hoc, c.approved, c.created_at, c.updated_at,
		       u.full_name AS user_name
		FROM check_ins c
		LEFT JOIN users u ON u.id = c.user_id
		WHERE c.event_id = $1
		ORDER BY u.full_name ASC
	`

	rows, err := q.Query(ctx, query, eventID)
	if err != nil {
		return nil, fmt.Errorf("failed to list event check-ins: %w", err)
	}
	defer rows.Close()

	var checkIns []checkin.CheckIn
	for rows.Next() {
		var c checkin.CheckIn
		err := rows.Scan(
			&c.ID, &c.UserID, &c.EventID, &c.Status, &c.CheckInTime, &c.CheckOutTime,
			&c.HoursLogged, &c.IsAdHoc, &c.Approved, &c.CreatedAt, &c.UpdatedAt,
			&c.UserName,
		)
		if err != nil {
			return nil, fmt.Errorf("failed to scan check-in: %w", err)
		}
		checkIns = append(checkIns, c)
	}
	return checkIns, rows.Err()
}

// ListByUser implements checkin.CheckInRepository.
func (r *checkInRepository) ListByUser(ctx context.Context, userID string, filter checkin.ListFilter) ([]checkin.CheckIn, int64, error) {
	q := GetQuerier(ctx, r.db)

	conditions := []string{"c.user_id = $1"}
	args := []interface{}{userID}
	argIdx := 2

	if filter.Status != nil {
		conditions = append(conditions, fmt.Sprintf("c.status = $%d", argIdx))
		args = append(args, *filter.Status)
		argIdx++
	}
	if filter.DateFrom != nil {
		conditions = append(conditions, fmt.Sprintf("e.date >= $%d", argIdx))
		args = append(args, *filter.DateFrom)
		argIdx++
	}
	if filter.DateTo != nil {
		conditions = append(conditions, fmt.Sprintf("e.date <= $%d", argIdx))
		args = append(args, *filter.DateTo)
		argIdx++
	}
	baseWhere := strings.Join(conditions, " AND ")

	countQuery := `
		SELECT COUNT(*)
		FROM check_ins c
		JOIN events e ON e.id = c.event_id
		WHERE ` + baseWhere
	var total int64
	if err := q.QueryRow(ctx, countQuery, args...).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("failed to count check-ins: %w", err)
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
		SELECT c.id, c.user_id, c.event_id, c.status, c.check_in_time, c.check_out_time,
		       c.hours_logged, c.is_ad_hoc, c.approved, c.created_at, c.updated_at,
		       e.title AS event_title
		FROM check_ins c
		JOIN events e ON e.id = c.event_id
		WHERE %s
		ORDER BY e.date DESC, c.created_at DESC
		LIMIT $%d OFFSET $%d
	`, baseWhere, argIdx, argIdx+1)
	args = append(args, limit, offset)

	rows, err := q.Query(ctx, selectQuery, args...)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to list check-ins: %w", err)
	}
	defer rows.Close()

	var checkIns []checkin.CheckIn
	for rows.Next() {
		var c checkin.CheckIn
		err := rows.Scan(
			&c.ID, &c.UserID, &c.EventID, &c.Status, &c.CheckInTime, &c.CheckOutTime,
			&c.HoursLogged, &c.IsAdHoc, &c.Approved, &c.CreatedAt, &c.UpdatedAt,
			&c.EventTitle,
		)
		if err != nil {
			return nil, 0, fmt.Errorf("failed to scan check-in: %w", err)
		}
		checkIns = append(checkIns, c)
	}
	return checkIns, total, rows.Err()
}

// Close implements checkin.CheckInRepository. The check_out_time IS
// NULL guard makes closing idempotent: a row closed by a racing manual
// checkout or a previous sweep matches zero rows and reports false.
func (r *checkInRepository) Close(ctx context.Context, id string, checkOutTime time.Time, hoursLogged float64) (bool, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		UPDATE check_ins
		SET check_out_time = $2, hours_logged = $3, updated_at = NOW()
		WHERE id = $1 AND check_out_time IS NULL
	`

	commandTag, err := q.Exec(ctx, query, id, checkOutTime, hoursLogged)
	if err != nil {
		return false, fmt.Errorf("failed to close check-in: %w", err)
	}
	return commandTag.RowsAffected() > 0, nil
}

// BulkCreateAbsent implements checkin.CheckInRepository. ON CONFLICT DO
// NOTHING gives the skip-on-conflict semantics the sweeps rely on:
// pairs that already have any record are left untouched, so repeated
// or concurrent sweeps never produce duplicates.
func (r *checkInRepository) BulkCreateAbsent(ctx context.Context, checkIns []checkin.CheckIn) (int, error) {
	if len(checkIns) == 0 {
		return 0, nil
	}
	q := GetQuerier(ctx, r.db)

	values := make([]string, 0, len(checkIns))
	args := make([]interface{}, 0, len(checkIns)*2)
	argIdx := 1
	for _, c := range checkIns {
		values = append(values, fmt.Sprintf("($%d, $%d, 'ABSENT', true)", argIdx, argIdx+1))
		args = append(args, c.UserID, c.EventID)
		argIdx += 2
	}

	query := `
		INSERT INTO check_ins (user_id, event_id, status, approved)
		VALUES ` + strings.Join(values, ", ") + `
		ON CONFLICT (user_id, event_id) DO NOTHING
	`

	commandTag, err := q.Exec(ctx, query, args...)
	if err != nil {
		return 0, fmt.Errorf("failed to bulk create absences: %w", err)
	}
	return int(commandTag.RowsAffected()), nil
}

// SetApproved implements checkin.CheckInRepository.
func (r *checkInRepository) SetApproved(ctx context.Context, id string) error {
	q := GetQuerier(ctx, r.db)

	query := `UPDATE check_ins SET approved = true, updated_at = NOW() WHERE id = $1`

	commandTag, err := q.Exec(ctx, query, id)
	if err != nil {
		return fmt.Errorf("failed to approve check-in: %w", err)
	}
	if commandTag.RowsAffected() == 0 {
		return checkin.ErrCheckInNotFound
	}
	return nil
}

// DeleteWithEvent implements checkin.CheckInRepository. Both rows go in
// one transaction so a denied ad-hoc tap leaves nothing behind.
func (r *checkInRepository) DeleteWithEvent(ctx context.Context, checkInID string, eventID string) error {
	return WithTransaction(ctx, r.db, func(tx pgx.Tx) error {
		if _, err := tx.Exec(ctx, `DELETE FROM check_ins WHERE id = $1`, checkInID); err != nil {
			return fmt.Errorf("failed to delete check-in: %w", err)
		}
		if _, err := tx.Exec(ctx, `DELETE FROM events WHERE id = $1 AND is_ad_hoc = true`, eventID); err != nil {
			return fmt.Errorf("failed to delete ad-hoc event: %w", err)
		}
		return nil
	})
}
