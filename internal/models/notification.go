package models

import "time"

// Notification is the row shape of the notifications table.
type Notification struct {
	NotificationID string    `db:"notification_id"`
	UserID         string    `db:"user_id"`
	Title          string    `db:"title"`
	Body           string    `db:"body"`
	Type           string    `db:"type"`
	RelatedID      string    `db:"related_id"`
	RelatedType    string    `db:"related_type"`
	IsRead         bool      `db:"is_read"`
	CreatedAt      time.Time `db:"created_at"`
}
