package checkin

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/CodyMacMLE/athletiq-backend-go/internal/domain/checkin"
	"github.com/CodyMacMLE/athletiq-backend-go/internal/domain/event"
	"github.com/CodyMacMLE/athletiq-backend-go/internal/domain/member"
	"github.com/CodyMacMLE/athletiq-backend-go/internal/domain/notification"
	"github.com/CodyMacMLE/athletiq-backend-go/internal/domain/tag"
	"github.com/CodyMacMLE/athletiq-backend-go/internal/domain/team"
	"github.com/CodyMacMLE/athletiq-backend-go/internal/pkg/timewindow"
	"github.com/CodyMacMLE/athletiq-backend-go/internal/pkg/validator"
)

type CheckInServiceImpl struct {
	checkin.CheckInRepository
	event.EventRepository
	member.UserRepository
	tag.TagRepository
	team.TeamRepository
	notificationRepo notification.Repository
	loc              *time.Location
	nowFn            func() time.Time
}

func NewCheckInService(
	checkInRepo checkin.CheckInRepository,
	eventRepo event.EventRepository,
	userRepo member.UserRepository,
	tagRepo tag.TagRepository,
	teamRepo team.TeamRepository,
	notificationRepo notification.Repository,
	loc *time.Location,
) *CheckInServiceImpl {
	return &CheckInServiceImpl{
		CheckInRepository: checkInRepo,
		EventRepository:   eventRepo,
		UserRepository:    userRepo,
		TagRepository:     tagRepo,
		TeamRepository:    teamRepo,
		notificationRepo:  notificationRepo,
		loc:               loc,
		nowFn:             time.Now,
	}
}

// resolveTag looks the tap token up and rejects deactivated tags.
func (s *CheckInServiceImpl) resolveTag(ctx context.Context, token string) (tag.Tag, error) {
	t, err := s.TagRepository.GetByToken(ctx, token)
	if err != nil {
		return tag.Tag{}, err
	}
	if !t.IsActive {
		return tag.Tag{}, tag.ErrTagDeactivated
	}
	return t, nil
}

// resolveTarget decides whose attendance the tap is for and enforces
// the proxy rule: checking in another member requires a guardian link
// or a staff caller.
func (s *CheckInServiceImpl) resolveTarget(ctx context.Context, req checkin.TapRequest) (member.User, error) {
	targetID := req.CallerID
	if req.OnBehalfOfUserID != nil && *req.OnBehalfOfUserID != req.CallerID {
		targetID = *req.OnBehalfOfUserID
		if !member.Role(req.CallerRole).IsStaff() {
			linked, err := s.UserRepository.HasGuardianLink(ctx, req.CallerID, targetID)
			if err != nil {
				return member.User{}, fmt.Errorf("failed to check guardian link: %w", err)
			}
			if !linked {
				return member.User{}, checkin.ErrNotAuthorizedForProxy
			}
		}
	}

	user, err := s.UserRepository.GetByID(ctx, targetID)
	if err != nil {
		return member.User{}, err
	}
	return user, nil
}

// Tap implements checkin.CheckInService.
func (s *CheckInServiceImpl) Tap(ctx context.Context, req checkin.TapRequest) (checkin.TapResponse, error) {
	if err := req.Validate(); err != nil {
		return checkin.TapResponse{}, err
	}
	now := s.nowFn().In(s.loc)

	tg, err := s.resolveTag(ctx, req.TagToken)
	if err != nil {
		return checkin.TapResponse{}, err
	}

	user, err := s.resolveTarget(ctx, req)
	if err != nil {
		return checkin.TapResponse{}, err
	}
	if user.OrgID != tg.OrgID {
		return checkin.TapResponse{}, member.ErrNotAMember
	}

	teamIDs, err := s.UserRepository.ListTeamIDs(ctx, user.ID)
	if err != nil {
		return checkin.TapResponse{}, fmt.Errorf("failed to list teams for user: %w", err)
	}
	if req.TeamID != nil {
		if !validator.IsInSlice(*req.TeamID, teamIDs) && !member.Role(req.CallerRole).IsStaff() {
			return checkin.TapResponse{}, member.ErrNotAMember
		}
		teamIDs = []string{*req.TeamID}
	}

	events, err := s.EventRepository.ListOnDate(ctx, tg.OrgID, now, teamIDs)
	if err != nil {
		return checkin.TapResponse{}, fmt.Errorf("failed to list today's events: %w", err)
	}

	eventIDs := make([]string, 0, len(events))
	for _, ev := range events {
		eventIDs = append(eventIDs, ev.ID)
	}
	existing, err := s.CheckInRepository.ListByUserAndEvents(ctx, user.ID, eventIDs)
	if err != nil {
		return checkin.TapResponse{}, fmt.Errorf("failed to list existing check-ins: %w", err)
	}

	selected, err := matchEvent(now, events, existing, req.ConfirmEarly, s.loc)
	if err != nil {
		return checkin.TapResponse{}, err
	}

	if rec, ok := existing[selected.event.ID]; ok {
		if !rec.Open() {
			// An ABSENT or EXCUSED row already occupies the pair.
			return checkin.TapResponse{}, checkin.ErrAlreadyCheckedIn
		}
		return s.checkOut(ctx, rec, selected, now)
	}
	return s.checkIn(ctx, user.ID, selected, now, false)
}

// checkIn opens a record for the pair. The unique constraint on
// (user_id, event_id) settles concurrent double-taps: exactly one
// insert wins and the loser observes a conflict.
func (s *CheckInServiceImpl) checkIn(ctx context.Context, userID string, c candidate, now time.Time, adHoc bool) (checkin.TapResponse, error) {
	status := checkin.StatusOnTime
	if now.After(c.window.Start) {
		status = checkin.StatusLate
	}

	checkInTime := now
	record := checkin.CheckIn{
		UserID:      userID,
		EventID:     c.event.ID,
		Status:      status,
		CheckInTime: &checkInTime,
		IsAdHoc:     adHoc,
		Approved:    !adHoc,
	}

	created, err := s.CheckInRepository.Create(ctx, record)
	if err != nil {
		return checkin.TapResponse{}, err
	}

	return checkin.TapResponse{
		CheckIn: checkin.ToResponse(created),
		Action:  checkin.ActionCheckedIn,
		Event:   event.ToResponse(c.event),
	}, nil
}

// checkOut closes an open record. Hours are counted from the effective
// start, which discounts arrival before the event officially began.
func (s *CheckInServiceImpl) checkOut(ctx context.Context, rec checkin.CheckIn, c candidate, now time.Time) (checkin.TapResponse, error) {
	effectiveStart := timewindow.EffectiveStart(*rec.CheckInTime, c.window.Start)
	hours := timewindow.RoundHours(now.Sub(effectiveStart))

	closed, err := s.CheckInRepository.Close(ctx, rec.ID, now, hours)
	if err != nil {
		return checkin.TapResponse{}, fmt.Errorf("failed to close check-in: %w", err)
	}
	if !closed {
		return checkin.TapResponse{}, checkin.ErrAlreadyCheckedOut
	}

	rec.CheckOutTime = &now
	rec.HoursLogged = &hours
	return checkin.TapResponse{
		CheckIn: checkin.ToResponse(rec),
		Action:  checkin.ActionCheckedOut,
		Event:   event.ToResponse(c.event),
	}, nil
}

// AdHoc implements checkin.CheckInService.
func (s *CheckInServiceImpl) AdHoc(ctx context.Context, req checkin.AdHocRequest) (checkin.TapResponse, error) {
	if err := req.Validate(); err != nil {
		return checkin.TapResponse{}, err
	}
	now := s.nowFn().In(s.loc)

	tg, err := s.resolveTag(ctx, req.TagToken)
	if err != nil {
		return checkin.TapResponse{}, err
	}

	user, err := s.UserRepository.GetByID(ctx, req.CallerID)
	if err != nil {
		return checkin.TapResponse{}, err
	}
	if user.OrgID != tg.OrgID {
		return checkin.TapResponse{}, member.ErrNotAMember
	}

	teamIDs, err := s.UserRepository.ListTeamIDs(ctx, user.ID)
	if err != nil {
		return checkin.TapResponse{}, fmt.Errorf("failed to list teams for user: %w", err)
	}
	if !validator.IsInSlice(req.TeamID, teamIDs) {
		return checkin.TapResponse{}, member.ErrNotAMember
	}

	today := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, s.loc)
	window, err := timewindow.Resolve(today, req.StartTime, req.EndTime, s.loc)
	if err != nil {
		return checkin.TapResponse{}, event.ErrInvalidTimes
	}

	title := "Ad-hoc session"
	if req.Note != nil && *req.Note != "" {
		title = *req.Note
	}

	teamID := req.TeamID
	newEvent, err := s.EventRepository.Create(ctx, event.Event{
		OrgID:     tg.OrgID,
		TeamID:    &teamID,
		Title:     title,
		Date:      today,
		StartTime: req.StartTime,
		EndTime:   req.EndTime,
		IsAdHoc:   true,
		CreatedBy: &user.ID,
	})
	if err != nil {
		return checkin.TapResponse{}, fmt.Errorf("failed to create ad-hoc event: %w", err)
	}

	resp, err := s.checkIn(ctx, user.ID, candidate{event: newEvent, window: window}, now, true)
	if err != nil {
		return checkin.TapResponse{}, err
	}

	s.notifyAdHocPending(ctx, tg.OrgID, user, newEvent)
	return resp, nil
}

// notifyAdHocPending tells the team's staff an unapproved check-in is
// waiting. Failures are logged, never surfaced to the tapper.
func (s *CheckInServiceImpl) notifyAdHocPending(ctx context.Context, orgID string, user member.User, ev event.Event) {
	coachIDs, err := s.TeamRepository.ListCoachUserIDs(ctx, ev.TeamIDs())
	if err != nil {
		slog.Error("Failed to list coaches for ad-hoc notification", "event_id", ev.ID, "error", err)
		return
	}

	notifications := make([]*notification.Notification, 0, len(coachIDs))
	for _, coachID := range coachIDs {
		notifications = append(notifications, &notification.Notification{
			OrgID:       orgID,
			RecipientID: coachID,
			Type:        notification.TypeAdHocPending,
			Title:       "Ad-hoc check-in pending",
			Message:     fmt.Sprintf("%s checked in to an unscheduled session and needs approval", user.FullName),
			Data: map[string]interface{}{
				"event_id": ev.ID,
				"user_id":  user.ID,
				"date":     ev.Date.Format("2006-01-02"),
			},
		})
	}
	if len(notifications) == 0 {
		return
	}
	if err := s.notificationRepo.CreateBatch(ctx, notifications); err != nil {
		slog.Error("Failed to queue ad-hoc notifications", "event_id", ev.ID, "error", err)
	}
}

// Approve implements checkin.CheckInService.
func (s *CheckInServiceImpl) Approve(ctx context.Context, id string) error {
	rec, err := s.CheckInRepository.GetByID(ctx, id)
	if err != nil {
		return err
	}
	if !rec.IsAdHoc {
		return checkin.ErrNotAdHocCheckIn
	}
	return s.CheckInRepository.SetApproved(ctx, rec.ID)
}

// Deny implements checkin.CheckInService. Denial removes both the
// check-in and the event the tap synthesized.
func (s *CheckInServiceImpl) Deny(ctx context.Context, id string) error {
	rec, err := s.CheckInRepository.GetByID(ctx, id)
	if err != nil {
		return err
	}
	if !rec.IsAdHoc {
		return checkin.ErrNotAdHocCheckIn
	}
	return s.CheckInRepository.DeleteWithEvent(ctx, rec.ID, rec.EventID)
}

// GetMyCheckIns implements checkin.CheckInService.
func (s *CheckInServiceImpl) GetMyCheckIns(ctx context.Context, userID string, filter checkin.ListFilter) ([]checkin.CheckInResponse, int64, error) {
	records, total, err := s.CheckInRepository.ListByUser(ctx, userID, filter)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to list check-ins: %w", err)
	}

	responses := make([]checkin.CheckInResponse, 0, len(records))
	for _, rec := range records {
		responses = append(responses, checkin.ToResponse(rec))
	}
	return responses, total, nil
}

// GetEventRoster implements checkin.CheckInService.
func (s *CheckInServiceImpl) GetEventRoster(ctx context.Context, eventID string, orgID string) ([]checkin.CheckInResponse, error) {
	if _, err := s.EventRepository.GetByID(ctx, eventID, orgID); err != nil {
		if errors.Is(err, event.ErrEventNotFound) {
			return nil, event.ErrEventNotFound
		}
		return nil, fmt.Errorf("failed to load event: %w", err)
	}

	records, err := s.CheckInRepository.ListByEvent(ctx, eventID)
	if err != nil {
		return nil, fmt.Errorf("failed to list event check-ins: %w", err)
	}

	responses := make([]checkin.CheckInResponse, 0, len(records))
	for _, rec := range records {
		responses = append(responses, checkin.ToResponse(rec))
	}
	return responses, nil
}
