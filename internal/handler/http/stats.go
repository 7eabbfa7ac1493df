package http

import (
	"net/http"

	"github.com/CodyMacMLE/athletiq-backend-go/internal/domain/member"
	"github.com/CodyMacMLE/athletiq-backend-go/internal/domain/stats"
	"github.com/CodyMacMLE/athletiq-backend-go/internal/handler/http/response"
	statsService "github.com/CodyMacMLE/athletiq-backend-go/internal/service/stats"
)

type StatsHandler interface {
	Summary(w http.ResponseWriter, r *http.Request)
	Trend(w http.ResponseWriter, r *http.Request)
}

type statsHandlerImpl struct {
	statsService *statsService.StatsService
}

func NewStatsHandler(svc *statsService.StatsService) StatsHandler {
	return &statsHandlerImpl{
		statsService: svc,
	}
}

// queryFromRequest builds the aggregation query. Athletes may only look
// at themselves; team_id and user_id params are staff features.
func queryFromRequest(r *http.Request) (stats.Query, bool) {
	claims, ok := claimsFromRequest(r)
	if !ok {
		return stats.Query{}, false
	}

	q := stats.Query{
		Scope: stats.Scope{OrgID: claims.OrgID},
		Range: stats.RangeWeek,
	}
	if s := r.URL.Query().Get("range"); s != "" {
		q.Range = stats.Range(s)
	}

	if !member.Role(claims.Role).IsStaff() {
		userID := claims.UserID
		q.Scope.UserID = &userID
		return q, true
	}

	if s := r.URL.Query().Get("team_id"); s != "" {
		q.Scope.TeamID = &s
	}
	if s := r.URL.Query().Get("user_id"); s != "" {
		q.Scope.UserID = &s
	}
	return q, true
}

// Summary implements StatsHandler.
func (h *statsHandlerImpl) Summary(w http.ResponseWriter, r *http.Request) {
	q, ok := queryFromRequest(r)
	if !ok {
		response.Unauthorized(w, "Invalid access token")
		return
	}

	if err := q.Validate(); err != nil {
		response.HandleError(w, err)
		return
	}

	summary, err := h.statsService.Summary(r.Context(), q)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, summary)
}

// Trend implements StatsHandler.
func (h *statsHandlerImpl) Trend(w http.ResponseWriter, r *http.Request) {
	q, ok := queryFromRequest(r)
	if !ok {
		response.Unauthorized(w, "Invalid access token")
		return
	}

	if err := q.Validate(); err != nil {
		response.HandleError(w, err)
		return
	}

	trend, err := h.statsService.Trend(r.Context(), q)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, trend)
}
