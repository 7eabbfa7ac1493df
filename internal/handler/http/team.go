package http

import (
	"encoding/json"
	"log/slog"
	"net/http"
	"time"

	"github.com/CodyMacMLE/athletiq-backend-go/internal/domain/member"
	"github.com/CodyMacMLE/athletiq-backend-go/internal/domain/team"
	"github.com/CodyMacMLE/athletiq-backend-go/internal/handler/http/response"
	"github.com/CodyMacMLE/athletiq-backend-go/internal/pkg/validator"
	"github.com/go-chi/chi/v5"
)

type TeamHandler interface {
	List(w http.ResponseWriter, r *http.Request)
	Get(w http.ResponseWriter, r *http.Request)
	AddMember(w http.ResponseWriter, r *http.Request)
	RemoveMember(w http.ResponseWriter, r *http.Request)
}

type teamHandlerImpl struct {
	teamRepo team.TeamRepository
	userRepo member.UserRepository
	loc      *time.Location
}

func NewTeamHandler(teamRepo team.TeamRepository, userRepo member.UserRepository, loc *time.Location) TeamHandler {
	return &teamHandlerImpl{
		teamRepo: teamRepo,
		userRepo: userRepo,
		loc:      loc,
	}
}

// List implements TeamHandler.
func (h *teamHandlerImpl) List(w http.ResponseWriter, r *http.Request) {
	claims, ok := claimsFromRequest(r)
	if !ok {
		response.Unauthorized(w, "Invalid access token")
		return
	}

	teams, err := h.teamRepo.ListByOrg(r.Context(), claims.OrgID)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	results := make([]team.TeamResponse, 0, len(teams))
	for _, t := range teams {
		results = append(results, team.ToResponse(t))
	}
	response.Success(w, results)
}

// Get implements TeamHandler.
func (h *teamHandlerImpl) Get(w http.ResponseWriter, r *http.Request) {
	claims, ok := claimsFromRequest(r)
	if !ok {
		response.Unauthorized(w, "Invalid access token")
		return
	}

	t, err := h.teamRepo.GetByID(r.Context(), chi.URLParam(r, "id"), claims.OrgID)
	if err != nil {
		response.HandleError(w, err)
		return
	}
	response.Success(w, team.ToResponse(t))
}

// AddMember implements TeamHandler. A member rejoining a team gets a
// fresh tenure period rather than reopening the previous one.
func (h *teamHandlerImpl) AddMember(w http.ResponseWriter, r *http.Request) {
	var req team.AddMemberRequest

	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		slog.Error("Add team member decode error", "error", err)
		response.BadRequest(w, "Invalid request format", nil)
		return
	}

	claims, ok := claimsFromRequest(r)
	if !ok {
		response.Unauthorized(w, "Invalid access token")
		return
	}

	if err := req.Validate(); err != nil {
		response.HandleError(w, err)
		return
	}

	teamID := chi.URLParam(r, "id")
	t, err := h.teamRepo.GetByID(r.Context(), teamID, claims.OrgID)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	user, err := h.userRepo.GetByID(r.Context(), req.UserID)
	if err != nil {
		response.HandleError(w, err)
		return
	}
	if user.OrgID != claims.OrgID {
		response.HandleError(w, member.ErrUserNotFound)
		return
	}

	joinedAt := time.Now().In(h.loc)
	if req.JoinedAt != "" {
		joinedAt, err = time.ParseInLocation("2006-01-02", req.JoinedAt, h.loc)
		if err != nil {
			response.BadRequest(w, "joined_at must be YYYY-MM-DD", nil)
			return
		}
	}

	period, err := h.userRepo.CreatePeriod(r.Context(), member.MembershipPeriod{
		UserID:   user.ID,
		TeamID:   t.ID,
		JoinedAt: joinedAt,
	})
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Created(w, "Member added to team", map[string]string{
		"period_id": period.ID,
		"user_id":   user.ID,
		"team_id":   t.ID,
		"joined_at": period.JoinedAt.Format("2006-01-02"),
	})
}

// RemoveMember implements TeamHandler. The open tenure period is closed
// as of left_at (today when omitted); history stays intact so past
// attendance still counts toward the member's stats.
func (h *teamHandlerImpl) RemoveMember(w http.ResponseWriter, r *http.Request) {
	claims, ok := claimsFromRequest(r)
	if !ok {
		response.Unauthorized(w, "Invalid access token")
		return
	}

	teamID := chi.URLParam(r, "id")
	if _, err := h.teamRepo.GetByID(r.Context(), teamID, claims.OrgID); err != nil {
		response.HandleError(w, err)
		return
	}

	leftAt := r.URL.Query().Get("left_at")
	if leftAt == "" {
		leftAt = time.Now().In(h.loc).Format("2006-01-02")
	} else if _, ok := validator.IsValidDate(leftAt); !ok {
		response.BadRequest(w, "left_at must be YYYY-MM-DD", nil)
		return
	}

	userID := chi.URLParam(r, "userId")
	if err := h.userRepo.ClosePeriod(r.Context(), userID, teamID, leftAt); err != nil {
		response.HandleError(w, err)
		return
	}

	response.SuccessWithMessage(w, "Member removed from team", nil)
}
