package dto

import (
	"time"

	"github.com/fingov/fund_reporting_app/internal/core/domain"
)

// NotificationResponse is the API shape of one notification.
type NotificationResponse struct {
	NotificationID string    `json:"notificationID"`
	Title          string    `json:"title"`
	Body           string    `json:"body"`
	Type           string    `json:"type"`
	RelatedID      string    `json:"relatedID,omitempty"`
	RelatedType    string    `json:"relatedType,omitempty"`
	IsRead         bool      `json:"isRead"`
	CreatedAt      time.Time `json:"createdAt"`
}

// ToNotificationResponse converts a domain Notification to its API shape.
func ToNotificationResponse(n *domain.Notification) NotificationResponse {
	return NotificationResponse{
		NotificationID: n.NotificationID,
		Title:          n.Title,
		Body:           n.Body,
		Type:           string(n.Type),
		RelatedID:      n.RelatedID,
		RelatedType:    n.RelatedType,
		IsRead:         n.IsRead,
		CreatedAt:      n.CreatedAt,
	}
}

// ListNotificationsParams are the notification list filters.
type ListNotificationsParams struct {
	UnreadOnly bool `form:"unreadOnly"`
	Page       int  `form:"page,default=1" binding:"omitempty,min=1"`
	PageSize   int  `form:"pageSize,default=20" binding:"omitempty,min=1,max=100"`
}

// ListNotificationsResponse is a page of notifications.
type ListNotificationsResponse struct {
	Notifications []NotificationResponse `json:"notifications"`
	Total         int                    `json:"total"`
	Page          int                    `json:"page"`
	PageSize      int                    `json:"pageSize"`
}
