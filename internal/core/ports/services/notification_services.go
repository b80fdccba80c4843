package services

import (
	"context"

	"github.com/fingov/fund_reporting_app/internal/core/domain"
	"github.com/fingov/fund_reporting_app/internal/dto"
)

// NotificationDispatcher delivers notifications into the notification store.
// Dispatch is best-effort by contract: it runs after the triggering transaction
// has committed, and failures are logged rather than returned, because a lost
// notification is recoverable while a rolled-back state transition is not.
type NotificationDispatcher interface {
	Dispatch(ctx context.Context, notifications ...domain.Notification)
}

// NotificationSvcFacade combines dispatch with the user-facing read surface.
type NotificationSvcFacade interface {
	NotificationDispatcher

	// ListNotifications retrieves a page of the user's notifications, newest first.
	ListNotifications(ctx context.Context, userID string, params dto.ListNotificationsParams) (*dto.ListNotificationsResponse, error)

	// MarkRead flags one of the user's notifications as read.
	MarkRead(ctx context.Context, userID string, notificationID string) error
}
