package checkin

import (
	"time"

	"github.com/CodyMacMLE/athletiq-backend-go/internal/domain/event"
	"github.com/CodyMacMLE/athletiq-backend-go/internal/pkg/timewindow"
	"github.com/CodyMacMLE/athletiq-backend-go/internal/pkg/validator"
)

// TapRequest is a tap-driven check-in/check-out attempt. CallerID and
// CallerRole are filled from the access token by the handler, never from
// the request body.
type TapRequest struct {
	TagToken         string  `json:"tag_token"`
	OnBehalfOfUserID *string `json:"on_behalf_of_user_id,omitempty"`
	TeamID           *string `json:"team_id,omitempty"`
	ConfirmEarly     bool    `json:"confirm_early,omitempty"`

	CallerID   string `json:"-"`
	CallerRole string `json:"-"`
}

func (r TapRequest) Validate() error {
	var errs validator.ValidationErrors
	if validator.IsEmpty(r.TagToken) {
		errs = append(errs, validator.ValidationError{Field: "tag_token", Message: "tag_token is required"})
	}
	if r.OnBehalfOfUserID != nil && !validator.IsValidUUID(*r.OnBehalfOfUserID) {
		errs = append(errs, validator.ValidationError{Field: "on_behalf_of_user_id", Message: "must be a valid UUID"})
	}
	if r.TeamID != nil && !validator.IsValidUUID(*r.TeamID) {
		errs = append(errs, validator.ValidationError{Field: "team_id", Message: "must be a valid UUID"})
	}
	if len(errs) > 0 {
		return errs
	}
	return nil
}

// AdHocRequest synthesizes an event for today with the supplied bounds
// and opens a check-in against it.
type AdHocRequest struct {
	TagToken  string  `json:"tag_token"`
	TeamID    string  `json:"team_id"`
	StartTime string  `json:"start_time"`
	EndTime   string  `json:"end_time"`
	Note      *string `json:"note,omitempty"`

	CallerID string `json:"-"`
}

func (r AdHocRequest) Validate() error {
	var errs validator.ValidationErrors
	if validator.IsEmpty(r.TagToken) {
		errs = append(errs, validator.ValidationError{Field: "tag_token", Message: "tag_token is required"})
	}
	if !validator.IsValidUUID(r.TeamID) {
		errs = append(errs, validator.ValidationError{Field: "team_id", Message: "must be a valid UUID"})
	}
	if _, err := timewindow.ParseTimeOfDay(r.StartTime); err != nil {
		errs = append(errs, validator.ValidationError{Field: "start_time", Message: "start_time is not a valid time of day"})
	}
	if _, err := timewindow.ParseTimeOfDay(r.EndTime); err != nil {
		errs = append(errs, validator.ValidationError{Field: "end_time", Message: "end_time is not a valid time of day"})
	}
	if len(errs) > 0 {
		return errs
	}
	return nil
}

type ListFilter struct {
	Status   *Status
	DateFrom *time.Time
	DateTo   *time.Time
	Page     int
	Limit    int
}

type CheckInResponse struct {
	ID           string   `json:"id"`
	UserID       string   `json:"user_id"`
	EventID      string   `json:"event_id"`
	Status       Status   `json:"status"`
	CheckInTime  *string  `json:"check_in_time,omitempty"`
	CheckOutTime *string  `json:"check_out_time,omitempty"`
	HoursLogged  *float64 `json:"hours_logged,omitempty"`
	IsAdHoc      bool     `json:"is_ad_hoc"`
	Approved     bool     `json:"approved"`
	UserName     *string  `json:"user_name,omitempty"`
	EventTitle   *string  `json:"event_title,omitempty"`
}

// TapResponse is the result of a successful tap.
type TapResponse struct {
	CheckIn CheckInResponse     `json:"check_in"`
	Action  Action              `json:"action"`
	Event   event.EventResponse `json:"event"`
}

func timePtrToString(t *time.Time) *string {
	if t == nil {
		return nil
	}
	format := t.Format("2006-01-02 15:04:05")
	return &format
}

func ToResponse(c CheckIn) CheckInResponse {
	return CheckInResponse{
		ID:           c.ID,
		UserID:       c.UserID,
		EventID:      c.EventID,
		Status:       c.Status,
		CheckInTime:  timePtrToString(c.CheckInTime),
		CheckOutTime: timePtrToString(c.CheckOutTime),
		HoursLogged:  c.HoursLogged,
		IsAdHoc:      c.IsAdHoc,
		Approved:     c.Approved,
		UserName:     c.UserName,
		EventTitle:   c.EventTitle,
	}
}
