package http

import (
	"encoding/json"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/CodyMacMLE/athletiq-backend-go/internal/domain/event"
	"github.com/CodyMacMLE/athletiq-backend-go/internal/handler/http/response"
	eventService "github.com/CodyMacMLE/athletiq-backend-go/internal/service/event"
	"github.com/go-chi/chi/v5"
)

type EventHandler interface {
	Create(w http.ResponseWriter, r *http.Request)
	Get(w http.ResponseWriter, r *http.Request)
	List(w http.ResponseWriter, r *http.Request)
	Delete(w http.ResponseWriter, r *http.Request)
}

type eventHandlerImpl struct {
	eventService *eventService.EventServiceImpl
}

func NewEventHandler(svc *eventService.EventServiceImpl) EventHandler {
	return &eventHandlerImpl{
		eventService: svc,
	}
}

// Create implements EventHandler.
func (h *eventHandlerImpl) Create(w http.ResponseWriter, r *http.Request) {
	var req event.CreateEventRequest

	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		slog.Error("Create event decode error", "error", err)
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

	result, err := h.eventService.Create(r.Context(), claims.OrgID, claims.UserID, req)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Created(w, "Event created successfully", result)
}

// Get implements EventHandler.
func (h *eventHandlerImpl) Get(w http.ResponseWriter, r *http.Request) {
	claims, ok := claimsFromRequest(r)
	if !ok {
		response.Unauthorized(w, "Invalid access token")
		return
	}
	id := chi.URLParam(r, "id")

	result, err := h.eventService.Get(r.Context(), id, claims.OrgID)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, result)
}

// List implements EventHandler.
func (h *eventHandlerImpl) List(w http.ResponseWriter, r *http.Request) {
	claims, ok := claimsFromRequest(r)
	if !ok {
		response.Unauthorized(w, "Invalid access token")
		return
	}

	var filter event.ListFilter
	if s := r.URL.Query().Get("team_id"); s != "" {
		filter.TeamID = &s
	}
	if s := r.URL.Query().Get("date_from"); s != "" {
		filter.DateFrom = &s
	}
	if s := r.URL.Query().Get("date_to"); s != "" {
		filter.DateTo = &s
	}
	filter.Page, _ = strconv.Atoi(r.URL.Query().Get("page"))
	filter.Limit, _ = strconv.Atoi(r.URL.Query().Get("limit"))

	events, total, err := h.eventService.List(r.Context(), claims.OrgID, filter)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.SuccessWithMeta(w, events, paginationMeta(filter.Page, filter.Limit, total))
}

// Delete implements EventHandler.
func (h *eventHandlerImpl) Delete(w http.ResponseWriter, r *http.Request) {
	claims, ok := claimsFromRequest(r)
	if !ok {
		response.Unauthorized(w, "Invalid access token")
		return
	}
	id := chi.URLParam(r, "id")

	if err := h.eventService.Delete(r.Context(), id, claims.OrgID); err != nil {
		response.HandleError(w, err)
		return
	}

	response.SuccessWithMessage(w, "Event deleted successfully", nil)
}
