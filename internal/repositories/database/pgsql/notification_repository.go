package pgsql

import (
	"context"

	"github.com/fingov/fund_reporting_app/internal/apperrors"
	"github.com/fingov/fund_reporting_app/internal/core/domain"
	portsrepo "github.com/fingov/fund_reporting_app/internal/core/ports/repositories"
	"github.com/fingov/fund_reporting_app/internal/models"
	"github.com/fingov/fund_reporting_app/internal/utils/mapping"
	"github.com/jackc/pgx/v5/pgxpool"
)

type PgxNotificationRepository struct {
	BaseRepository
}

// NewNotificationRepository creates a new repository for notification data.
func NewNotificationRepository(pool *pgxpool.Pool) portsrepo.NotificationRepository {
	return &PgxNotificationRepository{BaseRepository: BaseRepository{Pool: pool}}
}

// Ensure PgxNotificationRepository implements portsrepo.NotificationRepository
var _ portsrepo.NotificationRepository = (*PgxNotificationRepository)(nil)

// SaveNotification inserts one notification row.
func (r *PgxNotificationRepository) SaveNotification(ctx context.Context, notification domain.Notification) error {
	m := mapping.ToModelNotification(notification)
	query := `
		INSERT INTO notifications (
			notification_id, user_id, title, body, type, related_id, related_type, is_read, created_at
		)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9);
	`
	_, err := r.Pool.Exec(ctx, query,
		m.NotificationID,
		m.UserID,
		m.Title,
		m.Body,
		m.Type,
		m.RelatedID,
		m.RelatedType,
		m.IsRead,
		m.CreatedAt,
	)
	if err != nil {
		return apperrors.NewAppError(500, "failed to insert notification "+m.NotificationID, err)
	}
	return nil
}

// ListNotificationsByUser retrieves a page of the user's notifications, newest first.
func (r *PgxNotificationRepository) ListNotificationsByUser(ctx context.Context, userID string, unreadOnly bool, limit, offset int) ([]domain.Notification, int, error) {
	whereClause := `WHERE user_id = $1`
	if unreadOnly {
		whereClause += ` AND is_read = FALSE`
	}

	var total int
	countQuery := `SELECT COUNT(*) FROM notifications ` + whereClause + `;`
	if err := r.Pool.QueryRow(ctx, countQuery, userID).Scan(&total); err != nil {
		return nil, 0, apperrors.NewAppError(500, "failed to count notifications for user "+userID, err)
	}

	query := `
		SELECT notification_id, user_id, title, body, type, related_id, related_type, is_read, created_at
		FROM notifications ` + whereClause + `
		ORDER BY created_at DESC
		LIMIT $2 OFFSET $3;
	`
	rows, err := r.Pool.Query(ctx, query, userID, limit, offset)
	if err != nil {
		return nil, 0, apperrors.NewAppError(500, "failed to query notifications for user "+userID, err)
	}
	defer rows.Close()

	notifications := []models.Notification{}
	for rows.Next() {
		var m models.Notification
		err := rows.Scan(
			&m.NotificationID,
			&m.UserID,
			&m.Title,
			&m.Body,
			&m.Type,
			&m.RelatedID,
			&m.RelatedType,
			&m.IsRead,
			&m.CreatedAt,
		)
		if err != nil {
			return nil, 0, apperrors.NewAppError(500, "failed to scan notification row for user "+userID, err)
		}
		notifications = append(notifications, m)
	}
	if err := rows.Err(); err != nil {
		return nil, 0, apperrors.NewAppError(500, "error iterating notification rows for user "+userID, err)
	}

	return mapping.ToDomainNotificationSlice(notifications), total, nil
}

// MarkNotificationRead flags one of the user's notifications as read. The
// user_id predicate keeps users from marking each other's notifications.
func (r *PgxNotificationRepository) MarkNotificationRead(ctx context.Context, userID string, notificationID string) error {
	query := `UPDATE notifications SET is_read = TRUE WHERE notification_id = $1 AND user_id = $2;`
	cmdTag, err := r.Pool.Exec(ctx, query, notificationID, userID)
	if err != nil {
		return apperrors.NewAppError(500, "failed to mark notification "+notificationID+" read", err)
	}
	if cmdTag.RowsAffected() == 0 {
		return apperrors.NewNotFoundError("notification " + notificationID + " not found for user")
	}
	return nil
}
