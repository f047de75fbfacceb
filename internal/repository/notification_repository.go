package repository

import (
	"context"
	"database/sql"
	"errors"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"

	"citizen-portal/internal/domain"
)

type NotificationRepository interface {
	Create(ctx context.Context, notif *domain.Notification) error
	GetByID(ctx context.Context, id uuid.UUID) (*domain.Notification, error)

	// Delete exists only to unwind a creation whose dispatch
	// resolution failed; notifications are otherwise immutable.
	Delete(ctx context.Context, id uuid.UUID) error

	// CreateDashboardEntry makes the notification visible on the
	// owner's dashboard. Re-running it for the same notification is a
	// no-op; the bool reports whether a new entry was written.
	CreateDashboardEntry(ctx context.Context, notif *domain.Notification) (bool, error)
	ListDashboard(ctx context.Context, userID uuid.UUID, unreadOnly bool, params domain.PaginationParams) ([]domain.DashboardNotification, int64, error)
	MarkAsRead(ctx context.Context, userID, entryID uuid.UUID) error
	MarkAllAsRead(ctx context.Context, userID uuid.UUID) error
	CountUnread(ctx context.Context, userID uuid.UUID) (int64, error)
}

type notificationRepository struct {
	db *sqlx.DB
}

func NewNotificationRepository(db *sqlx.DB) NotificationRepository {
	return &notificationRepository{db: db}
}

func (r *notificationRepository) Create(ctx context.Context, notif *domain.Notification) error {
	query := `
		INSERT INTO notifications (notification_id, user_id, app_id, notification_type, subject, body, received_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
		RETURNING created_at`

	return r.db.QueryRowxContext(ctx, query,
		notif.ID, notif.UserID, notif.AppID, notif.NotificationType,
		notif.Subject, notif.Body, notif.ReceivedAt,
	).Scan(&notif.CreatedAt)
}

func (r *notificationRepository) GetByID(ctx context.Context, id uuid.UUID) (*domain.Notification, error) {
	var notif domain.Notification
	query := `SELECT * FROM notifications WHERE notification_id = $1`

	err := r.db.GetContext(ctx, &notif, query, id)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &notif, nil
}

func (r *notificationRepository) Delete(ctx context.Context, id uuid.UUID) error {
	query := `DELETE FROM notifications WHERE notification_id = $1`
	_, err := r.db.ExecContext(ctx, query, id)
	return err
}

func (r *notificationRepository) CreateDashboardEntry(ctx context.Context, notif *domain.Notification) (bool, error) {
	// The unique index on notification_id makes redelivery harmless.
	query := `
		INSERT INTO dashboard_entries (entry_id, notification_id, user_id)
		VALUES ($1, $2, $3)
		ON CONFLICT (notification_id) DO NOTHING`

	res, err := r.db.ExecContext(ctx, query, uuid.New(), notif.ID, notif.UserID)
	if err != nil {
		return false, err
	}
	rows, err := res.RowsAffected()
	if err != nil {
		return false, err
	}
	return rows > 0, nil
}

func (r *notificationRepository) ListDashboard(ctx context.Context, userID uuid.UUID, unreadOnly bool, params domain.PaginationParams) ([]domain.DashboardNotification, int64, error) {
	params.Validate()

	where := `WHERE de.user_id = $1`
	if unreadOnly {
		where += ` AND de.is_read = false`
	}

	var total int64
	countQuery := `SELECT COUNT(*) FROM dashboard_entries de ` + where
	if err := r.db.GetContext(ctx, &total, countQuery, userID); err != nil {
		return nil, 0, err
	}

	query := `
		SELECT
			de.entry_id,
			n.notification_id,
			n.app_id,
			a.name AS app_name,
			n.notification_type,
			n.subject,
			n.body,
			n.received_at,
			de.is_read,
			de.read_at
		FROM dashboard_entries de
		JOIN notifications n ON n.notification_id = de.notification_id
		LEFT JOIN apps a ON a.app_id = n.app_id
		` + where + `
		ORDER BY n.received_at DESC
		LIMIT $2 OFFSET $3`

	var entries []domain.DashboardNotification
	err := r.db.SelectContext(ctx, &entries, query, userID, params.PageSize, params.Offset())
	return entries, total, err
}

func (r *notificationRepository) MarkAsRead(ctx context.Context, userID, entryID uuid.UUID) error {
	query := `
		UPDATE dashboard_entries SET is_read = true, read_at = NOW()
		WHERE entry_id = $1 AND user_id = $2 AND is_read = false`
	_, err := r.db.ExecContext(ctx, query, entryID, userID)
	return err
}

func (r *notificationRepository) MarkAllAsRead(ctx context.Context, userID uuid.UUID) error {
	query := `
		UPDATE dashboard_entries SET is_read = true, read_at = NOW()
		WHERE user_id = $1 AND is_read = false`
	_, err := r.db.ExecContext(ctx, query, userID)
	return err
}

func (r *notificationRepository) CountUnread(ctx context.Context, userID uuid.UUID) (int64, error) {
	var count int64
	query := `SELECT COUNT(*) FROM dashboard_entries WHERE user_id = $1 AND is_read = false`
	err := r.db.GetContext(ctx, &count, query, userID)
	return count, err
}
