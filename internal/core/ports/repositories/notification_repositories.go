package repositories

import (
	"context"

	"github.com/fingov/fund_reporting_app/internal/core/domain"
)

// NotificationRepository defines storage for user notifications. Writes happen
// outside the engine's record transaction so a failed insert never rolls back a
// state transition.
type NotificationRepository interface {
	// SaveNotification inserts one notification row.
	SaveNotification(ctx context.Context, notification domain.Notification) error

	// ListNotificationsByUser retrieves a user's notifications, newest first,
	// along with the total count for pagination.
	ListNotificationsByUser(ctx context.Context, userID string, unreadOnly bool, limit, offset int) ([]domain.Notification, int, error)

	// MarkNotificationRead flags one of the user's notifications as read.
	MarkNotificationRead(ctx context.Context, userID string, notificationID string) error
}
