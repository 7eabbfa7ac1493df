package notification

import (
	"time"
)

// NotificationType represents the type of notification
type NotificationType string

const (
	TypeAbsencesRecorded NotificationType = "absences_recorded"
	TypeAutoCheckedOut   NotificationType = "auto_checked_out"
	TypeAdHocPending     NotificationType = "ad_hoc_pending"
)

// Notification represents an in-app notification row. Delivery beyond
// the row (email, push) is handled outside this service.
type Notification struct {
	ID          string
	OrgID       string
	RecipientID string
	Type        NotificationType
	Title       string
	Message     string
	Data        map[string]interface{}
	IsRead      bool
	ReadAt      *time.Time
	CreatedAt   time.Time
}
