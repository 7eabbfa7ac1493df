package member

import "time"

type Role string

const (
	RoleAthlete Role = "athlete"
	RoleCoach   Role = "coach"
	RoleAdmin   Role = "admin"
)

// IsStaff reports whether the role may manage events and other members.
func (r Role) IsStaff() bool {
	return r == RoleCoach || r == RoleAdmin
}

type User struct {
	ID           string
	OrgID        string
	FullName     string
	Email        string
	PasswordHash *string
	Role         Role
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

// MembershipPeriod is one contiguous interval of active tenure on a
// team. LeftAt nil means the member is currently active.
type MembershipPeriod struct {
	ID       string
	UserID   string
	TeamID   string
	JoinedAt time.Time
	LeftAt   *time.Time
}

// GuardianLink authorizes a guardian to check a ward in or out.
type GuardianLink struct {
	GuardianID string
	WardID     string
}
