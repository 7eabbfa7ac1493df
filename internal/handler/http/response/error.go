package response

import (
	"errors"
	"net/http"

	"github.com/CodyMacMLE/athletiq-backend-go/internal/domain/auth"
	"github.com/CodyMacMLE/athletiq-backend-go/internal/domain/checkin"
	"github.com/CodyMacMLE/athletiq-backend-go/internal/domain/event"
	"github.com/CodyMacMLE/athletiq-backend-go/internal/domain/member"
	"github.com/CodyMacMLE/athletiq-backend-go/internal/domain/notification"
	"github.com/CodyMacMLE/athletiq-backend-go/internal/domain/tag"
	"github.com/CodyMacMLE/athletiq-backend-go/internal/pkg/validator"
)

// HandleError maps domain errors to HTTP responses
func HandleError(w http.ResponseWriter, err error) {
	// Check if it's a validation error
	var validationErrs validator.ValidationErrors
	if errors.As(err, &validationErrs) {
		ValidationError(w, validationErrs.ToMap())
		return
	}

	// Too-early taps carry the event so the client can re-prompt with a
	// confirmation dialog.
	var tooEarly *checkin.TooEarlyError
	if errors.As(err, &tooEarly) {
		ConflictWithDetails(w, "TOO_EARLY", tooEarly.Error(), map[string]string{
			"event_title": tooEarly.EventTitle,
			"starts_at":   tooEarly.StartsAt.Format("2006-01-02T15:04:05Z07:00"),
		})
		return
	}

	// Auth domain errors
	switch {
	case errors.Is(err, auth.ErrInvalidCredentials):
		Unauthorized(w, err.Error())
	case errors.Is(err, auth.ErrInvalidToken):
		Unauthorized(w, "Invalid or expired token")
	case errors.Is(err, auth.ErrTokenExpired):
		Unauthorized(w, "Token expired")
	case errors.Is(err, auth.ErrRefreshTokenRevoked):
		Unauthorized(w, "Refresh token revoked")

	// Member domain errors
	case errors.Is(err, member.ErrUserNotFound):
		NotFound(w, "User not found")
	case errors.Is(err, member.ErrTeamNotFound):
		NotFound(w, "Team not found")
	case errors.Is(err, member.ErrNotAMember):
		Forbidden(w, "Not a member of this organization or team")
	case errors.Is(err, member.ErrEmailExists):
		Conflict(w, "Email already registered in this organization")
	case errors.Is(err, member.ErrNoActivePeriod):
		NotFound(w, "No active membership period for this team")

	// Check-in domain errors
	case errors.Is(err, checkin.ErrNoEventsToday):
		NotFound(w, "No events today for your teams")
	case errors.Is(err, checkin.ErrAlreadyCheckedIn):
		Conflict(w, "Already checked in to this event")
	case errors.Is(err, checkin.ErrAlreadyCheckedOut):
		Conflict(w, "Already checked out of this event")
	case errors.Is(err, checkin.ErrNotAuthorizedForProxy):
		Forbidden(w, "Not authorized to check in on behalf of this member")
	case errors.Is(err, checkin.ErrCheckInNotFound):
		NotFound(w, "Check-in record not found")
	case errors.Is(err, checkin.ErrNotAdHocCheckIn):
		BadRequest(w, "Check-in was not created ad hoc", nil)

	// Event domain errors
	case errors.Is(err, event.ErrEventNotFound):
		NotFound(w, "Event not found")
	case errors.Is(err, event.ErrInvalidTimes):
		BadRequest(w, "Event start time must precede end time", nil)
	case errors.Is(err, event.ErrEventHasRecords):
		Conflict(w, "Event has attendance records and cannot be deleted")

	// Tag domain errors
	case errors.Is(err, tag.ErrUnrecognizedTag):
		NotFound(w, "Tag token is not recognized")
	case errors.Is(err, tag.ErrTagDeactivated):
		Forbidden(w, "Tag has been deactivated")
	case errors.Is(err, tag.ErrTagNotFound):
		NotFound(w, "Tag not found")

	// Notification domain errors
	case errors.Is(err, notification.ErrNotificationNotFound):
		NotFound(w, "Notification not found")

	// Default
	default:
		InternalServerError(w, "An unexpected error occurred")
	}
}
