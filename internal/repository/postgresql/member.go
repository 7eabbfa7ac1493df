package postgresql

import (
	"context"
	"errors"
	"fmt"

	"github.com/CodyMacMLE/athletiq-backend-go/internal/domain/member"
	"github.com/CodyMacMLE/athletiq-backend-go/internal/pkg/database"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
)

type userRepository struct {
	db *database.DB
}

func NewUserRepository(db *database.DB) member.UserRepository {
	return &userRepository{db: db}
}

const userColumns = `id, org_id, full_name, email, password_hash, role, created_at, updated_at`

func scanUser(row pgx.Row) (member.User, error) {
	var u member.User
	err := row.Scan(
		&u.ID, &u.OrgID, &u.FullName, &u.Email, &u.PasswordHash, &u.Role,
		&u.CreatedAt, &u.UpdatedAt,
	)
	return u, err
}

// Create implements member.UserRepository.
func (r *userRepository) Create(ctx context.Context, user member.User) (member.User, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		INSERT INTO users (org_id, full_name, email, password_hash, role)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING id, created_at, updated_at
	`

	err := q.QueryRow(ctx, query,
		user.OrgID,
		user.FullName,
		user.Email,
		user.PasswordHash,
		user.Role,
	).Scan(&user.ID, &user.CreatedAt, &user.UpdatedAt)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == uniqueViolationCode {
			return member.User{}, member.ErrEmailExists
		}
		return member.User{}, fmt.Errorf("failed to create user: %w", err)
	}
	return user, nil
}

// GetByID implements member.UserRepository.
func (r *userRepository) GetByID(ctx context.Context, id string) (member.User, error) {
	q := GetQuerier(ctx, r.db)

	query := `SELECT ` + userColumns + ` FROM users WHERE id = $1`

	u, err := scanUser(q.QueryRow(ctx, query, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return member.User{}, member.ErrUserNotFound
		}
		return member.User{}, fmt.Errorf("failed to get user: %w", err)
	}
	return u, nil
}

// GetByEmail implements member.UserRepository.
func (r *userRepository) GetByEmail(ctx context.Context, email string) (member.User, error) {
	q := GetQuerier(ctx, r.db)

	query := `SELECT ` + userColumns + ` FROM users WHERE email = $1`

	u, err := scanUser(q.QueryRow(ctx, query, email))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return member.User{}, member.ErrUserNotFound
		}
		return member.User{}, fmt.Errorf("failed to get user by email: %w", err)
	}
	return u, nil
}

// ListTeamIDs implements member.UserRepository.
func (r *userRepository) ListTeamIDs(ctx context.Context, userID string) ([]string, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT DISTINCT team_id
		FROM membership_periods
		WHERE user_id = $1 AND left_at IS NULL
	`

	rows, err := q.Query(ctx, query, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to list team memberships: %w", err)
	}
	defer rows.Close()

	var teamIDs []string
	for rows.Next() {
		var id string
		if err := rows.Scan(&id); err != nil {
			return nil, fmt.Errorf("failed to scan team id: %w", err)
		}
		teamIDs = append(teamIDs, id)
	}
	return teamIDs, rows.Err()
}

// ListAthletesByTeams implements member.UserRepository.
func (r *userRepository) ListAthletesByTeams(ctx context.Context, teamIDs []string) ([]member.User, error) {
	if len(teamIDs) == 0 {
		return nil, nil
	}
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT DISTINCT u.id, u.org_id, u.full_name, u.email, u.password_hash, u.role,
		       u.created_at, u.updated_at
		FROM users u
		JOIN membership_periods mp ON mp.user_id = u.id
		WHERE mp.team_id = ANY($1)
		  AND mp.left_at IS NULL
		  AND u.role = 'athlete'
	`

	rows, err := q.Query(ctx, query, teamIDs)
	if err != nil {
		return nil, fmt.Errorf("failed to list athletes: %w", err)
	}
	defer rows.Close()

	var users []member.User
	for rows.Next() {
		u, err := scanUser(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan user: %w", err)
		}
		users = append(users, u)
	}
	return users, rows.Err()
}

const periodColumns = `id, user_id, team_id, joined_at, left_at`

func scanPeriod(row pgx.Row) (member.MembershipPeriod, error) {
	var p member.MembershipPeriod
	err := row.Scan(&p.ID, &p.UserID, &p.TeamID, &p.JoinedAt, &p.LeftAt)
	return p, err
}

// ListPeriodsByUser implements member.UserRepository.
func (r *userRepository) ListPeriodsByUser(ctx context.Context, userID string) ([]member.MembershipPeriod, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT ` + periodColumns + `
		FROM membership_periods
		WHERE user_id = $1
		ORDER BY joined_at ASC
	`

	rows, err := q.Query(ctx, query, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to list membership periods: %w", err)
	}
	defer rows.Close()

	var periods []member.MembershipPeriod
	for rows.Next() {
		p, err := scanPeriod(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan membership period: %w", err)
		}
		periods = append(periods, p)
	}
	return periods, rows.Err()
}

// ListPeriodsByUsers implements member.UserRepository.
func (r *userRepository) ListPeriodsByUsers(ctx context.Context, userIDs []string, teamIDs []string) (map[string][]member.MembershipPeriod, error) {
	result := make(map[string][]member.MembershipPeriod)
	if len(userIDs) == 0 || len(teamIDs) == 0 {
		return result, nil
	}
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT ` + periodColumns + `
		FROM membership_periods
		WHERE user_id = ANY($1) AND team_id = ANY($2)
		ORDER BY joined_at ASC
	`

	rows, err := q.Query(ctx, query, userIDs, teamIDs)
	if err != nil {
		return nil, fmt.Errorf("failed to list membership periods: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		p, err := scanPeriod(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan membership period: %w", err)
		}
		result[p.UserID] = append(result[p.UserID], p)
	}
	return result, rows.Err()
}

// CreatePeriod implements member.UserRepository.
func (r *userRepository) CreatePeriod(ctx context.Context, period member.MembershipPeriod) (member.MembershipPeriod, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		INSERT INTO membership_periods (user_id, team_id, joined_at)
		VALUES ($1, $2, $3)
		RETURNING id
	`

	err := q.QueryRow(ctx, query, period.UserID, period.TeamID, period.JoinedAt).Scan(&period.ID)
	if err != nil {
		return member.MembershipPeriod{}, fmt.Errorf("failed to create membership period: %w", err)
	}
	return period, nil
}

// ClosePeriod implements member.UserRepository.
func (r *userRepository) ClosePeriod(ctx context.Context, userID string, teamID string, leftAt string) error {
	q := GetQuerier(ctx, r.db)

	query := `
		UPDATE membership_periods
		SET left_at = $3
		WHERE user_id = $1 AND team_id = $2 AND left_at IS NULL
	`

	commandTag, err := q.Exec(ctx, query, userID, teamID, leftAt)
	if err != nil {
		return fmt.Errorf("failed to close membership period: %w", err)
	}
	if commandTag.RowsAffected() == 0 {
		return member.ErrNoActivePeriod
	}
	return nil
}

// HasGuardianLink implements member.UserRepository.
func (r *userRepository) HasGuardianLink(ctx context.Context, guardianID string, wardID string) (bool, error) {
	q := GetQuerier(ctx, r.db)

	query := `SELECT EXISTS (SELECT 1 FROM guardian_links WHERE guardian_id = $1 AND ward_id = $2)`

	var exists bool
	if err := q.QueryRow(ctx, query, guardianID, wardID).Scan(&exists); err != nil {
		return false, fmt.Errorf("failed to check guardian link: %w", err)
	}
	return exists, nil
}
