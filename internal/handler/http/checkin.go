package http

import (
	"encoding/json"
	"log/slog"
	"net/http"
	"strconv"
	"time"

	"github.com/CodyMacMLE/athletiq-backend-go/internal/domain/checkin"
	"github.com/CodyMacMLE/athletiq-backend-go/internal/handler/http/response"
	"github.com/go-chi/chi/v5"
)

type CheckInHandler interface {
	Tap(w http.ResponseWriter, r *http.Request)
	AdHoc(w http.ResponseWriter, r *http.Request)
	Approve(w http.ResponseWriter, r *http.Request)
	Deny(w http.ResponseWriter, r *http.Request)
	GetMyCheckIns(w http.ResponseWriter, r *http.Request)
	GetEventRoster(w http.ResponseWriter, r *http.Request)
}

type checkInHandlerImpl struct {
	checkInService checkin.CheckInService
}

func NewCheckInHandler(checkInService checkin.CheckInService) CheckInHandler {
	return &checkInHandlerImpl{
		checkInService: checkInService,
	}
}

// Tap implements CheckInHandler.
func (h *checkInHandlerImpl) Tap(w http.ResponseWriter, r *http.Request) {
	var req checkin.TapRequest

	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		slog.Error("Tap decode error", "error", err)
		response.BadRequest(w, "Invalid request format", nil)
		return
	}

	claims, ok := claimsFromRequest(r)
	if !ok {
		response.Unauthorized(w, "Invalid access token")
		return
	}
	req.CallerID = claims.UserID
	req.CallerRole = claims.Role

	if err := req.Validate(); err != nil {
		response.HandleError(w, err)
		return
	}

	result, err := h.checkInService.Tap(r.Context(), req)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, result)
}

// AdHoc implements CheckInHandler.
func (h *checkInHandlerImpl) AdHoc(w http.ResponseWriter, r *http.Request) {
	var req checkin.AdHocRequest

	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		slog.Error("AdHoc decode error", "error", err)
		response.BadRequest(w, "Invalid request format", nil)
		return
	}

	claims, ok := claimsFromRequest(r)
	if !ok {
		response.Unauthorized(w, "Invalid access token")
		return
	}
	req.CallerID = claims.UserID

	if err := req.Validate(); err != nil {
		response.HandleError(w, err)
		return
	}

	result, err := h.checkInService.AdHoc(r.Context(), req)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Created(w, "Ad-hoc check-in recorded, pending approval", result)
}

// Approve implements CheckInHandler.
func (h *checkInHandlerImpl) Approve(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	if err := h.checkInService.Approve(r.Context(), id); err != nil {
		response.HandleError(w, err)
		return
	}

	response.SuccessWithMessage(w, "Check-in approved", nil)
}

// Deny implements CheckInHandler.
func (h *checkInHandlerImpl) Deny(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	if err := h.checkInService.Deny(r.Context(), id); err != nil {
		response.HandleError(w, err)
		return
	}

	response.SuccessWithMessage(w, "Check-in denied and removed", nil)
}

// GetMyCheckIns implements CheckInHandler.
func (h *checkInHandlerImpl) GetMyCheckIns(w http.ResponseWriter, r *http.Request) {
	claims, ok := claimsFromRequest(r)
	if !ok {
		response.Unauthorized(w, "Invalid access token")
		return
	}

	filter, err := parseCheckInFilter(r)
	if err != nil {
		response.BadRequest(w, err.Error(), nil)
		return
	}

	checkIns, total, err := h.checkInService.GetMyCheckIns(r.Context(), claims.UserID, filter)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.SuccessWithMeta(w, checkIns, paginationMeta(filter.Page, filter.Limit, total))
}

// GetEventRoster implements CheckInHandler.
func (h *checkInHandlerImpl) GetEventRoster(w http.ResponseWriter, r *http.Request) {
	claims, ok := claimsFromRequest(r)
	if !ok {
		response.Unauthorized(w, "Invalid access token")
		return
	}
	eventID := chi.URLParam(r, "id")

	roster, err := h.checkInService.GetEventRoster(r.Context(), eventID, claims.OrgID)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, roster)
}

func parseCheckInFilter(r *http.Request) (checkin.ListFilter, error) {
	var filter checkin.ListFilter

	if s := r.URL.Query().Get("status"); s != "" {
		status := checkin.Status(s)
		filter.Status = &status
	}
	if s := r.URL.Query().Get("date_from"); s != "" {
		t, err := time.Parse("2006-01-02", s)
		if err != nil {
			return filter, err
		}
		filter.DateFrom = &t
	}
	if s := r.URL.Query().Get("date_to"); s != "" {
		t, err := time.Parse("2006-01-02", s)
		if err != nil {
			return filter, err
		}
		filter.DateTo = &t
	}
	filter.Page, _ = strconv.Atoi(r.URL.Query().Get("page"))
	filter.Limit, _ = strconv.Atoi(r.URL.Query().Get("limit"))
	return filter, nil
}

func paginationMeta(page, limit int, total int64) *response.Meta {
	if limit == 0 {
		limit = 20
	}
	if page == 0 {
		page = 1
	}
	totalPages := int((total + int64(limit) - 1) / int64(limit))
	return &response.Meta{
		Page:       page,
		Limit:      limit,
		TotalItems: total,
		TotalPages: totalPages,
	}
}
