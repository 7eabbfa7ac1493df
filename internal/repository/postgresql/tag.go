package postgresql

import (
	"context"
	"errors"
	"fmt"

	"github.com/CodyMacMLE/athletiq-backend-go/internal/domain/tag"
	"github.com/CodyMacMLE/athletiq-backend-go/internal/pkg/database"
	"github.com/jackc/pgx/v5"
)

type tagRepository struct {
	db *database.DB
}

func NewTagRepository(db *database.DB) tag.TagRepository {
	return &tagRepository{db: db}
}

const tagColumns = `id, org_id, token, label, is_active, created_at, updated_at`

func scanTag(row pgx.Row) (tag.Tag, error) {
	var t tag.Tag
	err := row.Scan(&t.ID, &t.OrgID, &t.Token, &t.Label, &t.IsActive, &t.CreatedAt, &t.UpdatedAt)
	return t, err
}

// Create implements tag.TagRepository.
func (r *tagRepository) Create(ctx context.Context, newTag tag.Tag) (tag.Tag, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		INSERT INTO nfc_tags (org_id, token, label, is_active)
		VALUES ($1, $2, $3, true)
		RETURNING id, is_active, created_at, updated_at
	`

	err := q.QueryRow(ctx, query, newTag.OrgID, newTag.Token, newTag.Label).
		Scan(&newTag.ID, &newTag.IsActive, &newTag.CreatedAt, &newTag.UpdatedAt)
	if err != nil {
		return tag.Tag{}, fmt.Errorf("failed to create tag: %w", err)
	}
	return newTag, nil
}

// GetByToken implements tag.TagRepository. An unknown token is an
// ErrUnrecognizedTag, not a not-found: the caller is a tap endpoint and
// the message surfaces to the member's device.
func (r *tagRepository) GetByToken(ctx context.Context, token string) (tag.Tag, error) {
	q := GetQuerier(ctx, r.db)

	query := `SELECT ` + tagColumns + ` FROM nfc_tags WHERE token = $1`

	t, err := scanTag(q.QueryRow(ctx, query, token))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return tag.Tag{}, tag.ErrUnrecognizedTag
		}
		return tag.Tag{}, fmt.Errorf("failed to get tag by token: %w", err)
	}
	return t, nil
}

// ListByOrg implements tag.TagRepository.
func (r *tagRepository) ListByOrg(ctx context.Context, orgID string) ([]tag.Tag, error) {
	q := GetQuerier(ctx, r.db)

	query := `SELECT ` + tagColumns + ` FROM nfc_tags WHERE org_id = $1 ORDER BY created_at DESC`

	rows, err := q.Query(ctx, query, orgID)
	if err != nil {
		return nil, fmt.Errorf("failed to list tags: %w", err)
	}
	defer rows.Close()

	var tags []tag.Tag
	for rows.Next() {
		t, err := scanTag(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan tag: %w", err)
		}
		tags = append(tags, t)
	}
	return tags, rows.Err()
}

// Deactivate implements tag.TagRepository.
func (r *tagRepository) Deactivate(ctx context.Context, id string, orgID string) error {
	q := GetQuerier(ctx, r.db)

	query := `
		UPDATE nfc_tags
		SET is_active = false, updated_at = NOW()
		WHERE id = $1 AND org_id = $2
	`

	commandTag, err := q.Exec(ctx, query, id, orgID)
	if err != nil {
		return fmt.Errorf("failed to deactivate tag: %w", err)
	}
	if commandTag.RowsAffected() == 0 {
		return tag.ErrTagNotFound
	}
	return nil
}
