package checkin

import "time"

type Status string

const (
	StatusOnTime  Status = "ON_TIME"
	StatusLate    Status = "LATE"
	StatusAbsent  Status = "ABSENT"
	StatusExcused Status = "EXCUSED"
)

// Action is what a tap resolved to.
type Action string

const (
	ActionCheckedIn  Action = "CHECKED_IN"
	ActionCheckedOut Action = "CHECKED_OUT"
)

// CheckIn is one member's attendance record for one event. The
// (UserID, EventID) pair is unique; the database constraint on it is the
// final arbiter under concurrent taps.
type CheckIn struct {
	ID      string
	UserID  string
	EventID string
	Status  Status
	// CheckInTime is nil only for ABSENT records.
	CheckInTime *time.Time
	// CheckOutTime nil means the member is still checked in.
	CheckOutTime *time.Time
	// HoursLogged is rounded to two decimals at close.
	HoursLogged *float64
	IsAdHoc     bool
	Approved    bool
	CreatedAt   time.Time
	UpdatedAt   time.Time

	// DTO
	UserName   *string
	EventTitle *string
}

// Open reports whether the member is currently checked in.
func (c CheckIn) Open() bool {
	return c.CheckInTime != nil && c.CheckOutTime == nil
}

// Closed reports whether the pair reached its terminal state.
func (c CheckIn) Closed() bool {
	return c.CheckOutTime != nil
}
