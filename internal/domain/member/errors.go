package member

import "errors"

// Member domain errors
var (
	ErrUserNotFound   = errors.New("user not found")
	ErrNotAMember     = errors.New("user is not a member of this organization or team")
	ErrEmailExists    = errors.New("email already registered in this organization")
	ErrTeamNotFound   = errors.New("team not found")
	ErrNoActivePeriod = errors.New("no active membership period for this team")
)
