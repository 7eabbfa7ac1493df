package event

import (
	"github.com/CodyMacMLE/athletiq-backend-go/internal/pkg/timewindow"
	"github.com/CodyMacMLE/athletiq-backend-go/internal/pkg/validator"
)

type CreateEventRequest struct {
	Title                string   `json:"title"`
	Date                 string   `json:"date"`
	StartTime            string   `json:"start_time"`
	EndTime              string   `json:"end_time"`
	TeamID               *string  `json:"team_id,omitempty"`
	ParticipatingTeamIDs []string `json:"participating_team_ids,omitempty"`
}

func (r CreateEventRequest) Validate() error {
	var errs validator.ValidationErrors

	if validator.IsEmpty(r.Title) {
		errs = append(errs, validator.ValidationError{Field: "title", Message: "title is required"})
	}
	if _, ok := validator.IsValidDate(r.Date); !ok {
		errs = append(errs, validator.ValidationError{Field: "date", Message: "date must be YYYY-MM-DD"})
	}

	start, startErr := timewindow.ParseTimeOfDay(r.StartTime)
	if startErr != nil {
		errs = append(errs, validator.ValidationError{Field: "start_time", Message: "start_time is not a valid time of day"})
	}
	end, endErr := timewindow.ParseTimeOfDay(r.EndTime)
	if endErr != nil {
		errs = append(errs, validator.ValidationError{Field: "end_time", Message: "end_time is not a valid time of day"})
	}
	if startErr == nil && endErr == nil {
		if start.Hour > end.Hour || (start.Hour == end.Hour && start.Minute >= end.Minute) {
			errs = append(errs, validator.ValidationError{Field: "start_time", Message: "start_time must precede end_time"})
		}
	}

	if len(errs) > 0 {
		return errs
	}
	return nil
}

type ListFilter struct {
	TeamID   *string
	DateFrom *string
	DateTo   *string
	Page     int
	Limit    int
}

type EventResponse struct {
	ID                   string   `json:"id"`
	Title                string   `json:"title"`
	Date                 string   `json:"date"`
	StartTime            string   `json:"start_time"`
	EndTime              string   `json:"end_time"`
	TeamID               *string  `json:"team_id,omitempty"`
	ParticipatingTeamIDs []string `json:"participating_team_ids,omitempty"`
	IsAdHoc              bool     `json:"is_ad_hoc"`
}

func ToResponse(e Event) EventResponse {
	return EventResponse{
		ID:                   e.ID,
		Title:                e.Title,
		Date:                 e.Date.Format("2006-01-02"),
		StartTime:            e.StartTime,
		EndTime:              e.EndTime,
		TeamID:               e.TeamID,
		ParticipatingTeamIDs: e.ParticipatingTeamIDs,
		IsAdHoc:              e.IsAdHoc,
	}
}
