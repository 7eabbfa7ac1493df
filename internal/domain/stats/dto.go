package stats

import (
	"time"

	"github.com/CodyMacMLE/athletiq-backend-go/internal/pkg/validator"
)

type Range string

const (
	RangeWeek  Range = "WEEK"
	RangeMonth Range = "MONTH"
	RangeAll   Range = "ALL"
)

// Scope narrows aggregation to one user, one team, or a whole
// organization. OrgID is always set.
type Scope struct {
	OrgID  string
	TeamID *string
	UserID *string
}

type Query struct {
	Scope Scope
	Range Range
}

func (q Query) Validate() error {
	var errs validator.ValidationErrors
	if !validator.IsValidUUID(q.Scope.OrgID) {
		errs = append(errs, validator.ValidationError{Field: "org_id", Message: "must be a valid UUID"})
	}
	if q.Scope.TeamID != nil && !validator.IsValidUUID(*q.Scope.TeamID) {
		errs = append(errs, validator.ValidationError{Field: "team_id", Message: "must be a valid UUID"})
	}
	if q.Scope.UserID != nil && !validator.IsValidUUID(*q.Scope.UserID) {
		errs = append(errs, validator.ValidationError{Field: "user_id", Message: "must be a valid UUID"})
	}
	if !validator.IsInSlice(string(q.Range), []string{string(RangeWeek), string(RangeMonth), string(RangeAll)}) {
		errs = append(errs, validator.ValidationError{Field: "range", Message: "must be WEEK, MONTH or ALL"})
	}
	if len(errs) > 0 {
		return errs
	}
	return nil
}

// Bounds resolves the range to [from, to] instants. ALL uses the zero
// time as its lower bound.
func (q Query) Bounds(now time.Time) (time.Time, time.Time) {
	switch q.Range {
	case RangeWeek:
		return now.AddDate(0, 0, -7), now
	case RangeMonth:
		return now.AddDate(0, -1, 0), now
	default:
		return time.Time{}, now
	}
}

// Summary is the headline attendance aggregate for a scope and range.
type Summary struct {
	EventsCount       int     `json:"events_count"`
	HoursRequired     float64 `json:"hours_required"`
	HoursLogged       float64 `json:"hours_logged"`
	AttendancePercent float64 `json:"attendance_percent"`
}

// TrendPoint aggregates one ISO week, keyed by its Monday.
type TrendPoint struct {
	WeekStart         string  `json:"week_start"`
	EventsCount       int     `json:"events_count"`
	HoursRequired     float64 `json:"hours_required"`
	HoursLogged       float64 `json:"hours_logged"`
	AttendancePercent float64 `json:"attendance_percent"`
}
