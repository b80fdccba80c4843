package services

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/fingov/fund_reporting_app/internal/core/domain"
	portsrepo "github.com/fingov/fund_reporting_app/internal/core/ports/repositories"
	portssvc "github.com/fingov/fund_reporting_app/internal/core/ports/services"
	"github.com/fingov/fund_reporting_app/internal/dto"
	"github.com/fingov/fund_reporting_app/internal/middleware"
)

// notificationService stores and serves user notifications.
type notificationService struct {
	notificationRepo portsrepo.NotificationRepository
}

// NewNotificationService creates a new notification service.
func NewNotificationService(notificationRepo portsrepo.NotificationRepository) portssvc.NotificationSvcFacade {
	return &notificationService{notificationRepo: notificationRepo}
}

var _ portssvc.NotificationSvcFacade = (*notificationService)(nil)

// Dispatch inserts notifications best-effort. It is called after the
// triggering transaction has committed, so a failed insert is logged and
// skipped rather than failing the work that triggered it.
func (s *notificationService) Dispatch(ctx context.Context, notifications ...domain.Notification) {
	logger := middleware.GetLoggerFromCtx(ctx)
	for _, n := range notifications {
		if err := s.notificationRepo.SaveNotification(ctx, n); err != nil {
			logger.Error("failed to deliver notification",
				slog.String("notification_id", n.NotificationID),
				slog.String("user_id", n.UserID),
				slog.String("type", string(n.Type)),
				slog.String("error", err.Error()))
		}
	}
}

// ListNotifications retrieves a page of the user's notifications, newest first.
func (s *notificationService) ListNotifications(ctx context.Context, userID string, params dto.ListNotificationsParams) (*dto.ListNotificationsResponse, error) {
	offset := (params.Page - 1) * params.PageSize
	notifications, total, err := s.notificationRepo.ListNotificationsByUser(ctx, userID, params.UnreadOnly, params.PageSize, offset)
	if err != nil {
		return nil, fmt.Errorf("failed to list notifications: %w", err)
	}

	resp := dto.ListNotificationsResponse{
		Notifications: make([]dto.NotificationResponse, len(notifications)),
		Total:         total,
		Page:          params.Page,
		PageSize:      params.PageSize,
	}
	for i := range notifications {
		resp.Notifications[i] = dto.ToNotificationResponse(&notifications[i])
	}
	return &resp, nil
}

// MarkRead flags one of the user's notifications as read.
func (s *notificationService) MarkRead(ctx context.Context, userID string, notificationID string) error {
	return s.notificationRepo.MarkNotificationRead(ctx, userID, notificationID)
}
