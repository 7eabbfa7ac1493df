package http

import (
	"net/http"
	"strconv"

	"github.com/CodyMacMLE/athletiq-backend-go/internal/domain/notification"
	"github.com/CodyMacMLE/athletiq-backend-go/internal/handler/http/response"
	"github.com/go-chi/chi/v5"
)

type NotificationHandler interface {
	List(w http.ResponseWriter, r *http.Request)
	MarkAsRead(w http.ResponseWriter, r *http.Request)
}

type notificationHandlerImpl struct {
	notificationRepo notification.Repository
}

func NewNotificationHandler(repo notification.Repository) NotificationHandler {
	return &notificationHandlerImpl{
		notificationRepo: repo,
	}
}

// List implements NotificationHandler.
func (h *notificationHandlerImpl) List(w http.ResponseWriter, r *http.Request) {
	claims, ok := claimsFromRequest(r)
	if !ok {
		response.Unauthorized(w, "Invalid access token")
		return
	}

	page, _ := strconv.Atoi(r.URL.Query().Get("page"))
	limit, _ := strconv.Atoi(r.URL.Query().Get("limit"))
	unreadOnly := r.URL.Query().Get("unread_only") == "true"

	notifications, total, err := h.notificationRepo.GetByUserID(r.Context(), claims.UserID, page, limit, unreadOnly)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	results := make([]notification.NotificationResponse, 0, len(notifications))
	for _, n := range notifications {
		results = append(results, notification.ToResponse(n))
	}
	response.SuccessWithMeta(w, results, paginationMeta(page, limit, int64(total)))
}

// MarkAsRead implements NotificationHandler.
func (h *notificationHandlerImpl) MarkAsRead(w http.ResponseWriter, r *http.Request) {
	claims, ok := claimsFromRequest(r)
	if !ok {
		response.Unauthorized(w, "Invalid access token")
		return
	}
	id := chi.URLParam(r, "id")

	if err := h.notificationRepo.MarkAsRead(r.Context(), id, claims.UserID); err != nil {
		response.HandleError(w, err)
		return
	}

	response.SuccessWithMessage(w, "Notification marked as read", nil)
}
