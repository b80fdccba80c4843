package domain

import "time"

// NotificationType tags what kind of event a notification reports.
type NotificationType string

const (
	NotifyWithdrawalRequested NotificationType = "WITHDRAWAL_REQUESTED"
	NotifyWithdrawalReviewed  NotificationType = "WITHDRAWAL_REVIEWED"
)

// Notification is one message for one user. Delivery into the store is
// best-effort from the workflow engine's perspective.
type Notification struct {
	NotificationID string           `json:"notificationID"` // Primary Key (UUID)
	UserID         string           `json:"userID"`
	Title          string           `json:"title"`
	Body           string           `json:"body"`
	Type           NotificationType `json:"type"`
	RelatedID      string           `json:"relatedID"`   // id of the related entity
	RelatedType    string           `json:"relatedType"` // e.g. "withdrawal_request"
	IsRead         bool             `json:"isRead"`
	CreatedAt      time.Time        `json:"createdAt"`
}
