package tag

import "time"

// Tag is a physical NFC tag registered to an organization. The opaque
// token is what the tag broadcasts; deactivation is an administrative
// action, the check-in engine only reads tags.
type Tag struct {
	ID        string
	OrgID     string
	Token     string
	Label     string
	IsActive  bool
	CreatedAt time.Time
	UpdatedAt time.Time
}
