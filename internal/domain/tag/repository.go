package tag

import "context"

type TagRepository interface {
	Create(ctx context.Context, tag Tag) (Tag, error)

	// GetByToken resolves an opaque tap token to its tag.
	GetByToken(ctx context.Context, token string) (Tag, error)

	ListByOrg(ctx context.Context, orgID string) ([]Tag, error)

	// Deactivate flips IsActive off; taps on the tag fail afterwards.
	Deactivate(ctx context.Context, id string, orgID string) error
}
