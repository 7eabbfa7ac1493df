package event

import (
	"context"
	"fmt"
	"time"

	"github.com/CodyMacMLE/athletiq-backend-go/internal/domain/event"
	"github.com/CodyMacMLE/athletiq-backend-go/internal/pkg/timewindow"
)

type EventServiceImpl struct {
	event.EventRepository
	loc *time.Location
}

func NewEventService(eventRepo event.EventRepository, loc *time.Location) *EventServiceImpl {
	return &EventServiceImpl{
		EventRepository: eventRepo,
		loc:             loc,
	}
}

// Create schedules a staff-created event.
func (s *EventServiceImpl) Create(ctx context.Context, orgID string, createdBy string, req event.CreateEventRequest) (event.EventResponse, error) {
	if err := req.Validate(); err != nil {
		return event.EventResponse{}, err
	}

	date, err := time.ParseInLocation("2006-01-02", req.Date, s.loc)
	if err != nil {
		return event.EventResponse{}, fmt.Errorf("failed to parse event date: %w", err)
	}
	if _, err := timewindow.Resolve(date, req.StartTime, req.EndTime, s.loc); err != nil {
		return event.EventResponse{}, event.ErrInvalidTimes
	}

	created, err := s.EventRepository.Create(ctx, event.Event{
		OrgID:                orgID,
		TeamID:               req.TeamID,
		ParticipatingTeamIDs: req.ParticipatingTeamIDs,
		Title:                req.Title,
		Date:                 date,
		StartTime:            req.StartTime,
		EndTime:              req.EndTime,
		CreatedBy:            &createdBy,
	})
	if err != nil {
		return event.EventResponse{}, fmt.Errorf("failed to create event: %w", err)
	}
	return event.ToResponse(created), nil
}

func (s *EventServiceImpl) Get(ctx context.Context, id string, orgID string) (event.EventResponse, error) {
	ev, err := s.EventRepository.GetByID(ctx, id, orgID)
	if err != nil {
		return event.EventResponse{}, err
	}
	return event.ToResponse(ev), nil
}

func (s *EventServiceImpl) List(ctx context.Context, orgID string, filter event.ListFilter) ([]event.EventResponse, int64, error) {
	events, total, err := s.EventRepository.List(ctx, orgID, filter)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to list events: %w", err)
	}

	responses := make([]event.EventResponse, 0, len(events))
	for _, ev := range events {
		responses = append(responses, event.ToResponse(ev))
	}
	return responses, total, nil
}

func (s *EventServiceImpl) Delete(ctx context.Context, id string, orgID string) error {
	return s.EventRepository.Delete(ctx, id, orgID)
}
