package repository

import (
	"context"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"

	"citizen-portal/internal/domain"
)

type NotificationSettingRepository interface {
	// ActiveDeliveryTypes resolves the active channel set for one
	// user and notification type in a single query. Duplicate setting
	// rows collapse; an empty result means no channel is active.
	ActiveDeliveryTypes(ctx context.Context, userID uuid.UUID, notificationType string) ([]domain.DeliveryType, error)

	ListByUser(ctx context.Context, userID uuid.UUID) ([]domain.NotificationSetting, error)
	Create(ctx context.Context, setting *domain.NotificationSetting) error
	Delete(ctx context.Context, userID, settingID uuid.UUID) error
	ReplaceForUser(ctx context.Context, userID uuid.UUID, settings []domain.NotificationSetting) error
}

type notificationSettingRepository struct {
	db *sqlx.DB
}

func NewNotificationSettingRepository(db *sqlx.DB) NotificationSettingRepository {
	return &notificationSettingRepository{db: db}
}

func (r *notificationSettingRepository) ActiveDeliveryTypes(ctx context.Context, userID uuid.UUID, notificationType string) ([]domain.DeliveryType, error) {
	var types []domain.DeliveryType
	query := `
		SELECT DISTINCT delivery_type FROM notification_settings
		WHERE user_id = $1 AND notification_type = $2`

	err := r.db.SelectContext(ctx, &types, query, userID, notificationType)
	if err != nil {
		return nil, err
	}
	return types, nil
}

func (r *notificationSettingRepository) ListByUser(ctx context.Context, userID uuid.UUID) ([]domain.NotificationSetting, error) {
	var settings []domain.NotificationSetting
	query := `
		SELECT * FROM notification_settings
		WHERE user_id = $1
		ORDER BY notification_type, delivery_type`

	err := r.db.SelectContext(ctx, &settings, query, userID)
	return settings, err
}

func (r *notificationSettingRepository) Create(ctx context.Context, setting *domain.NotificationSetting) error {
	query := `
		INSERT INTO notification_settings (setting_id, user_id, notification_type, delivery_type)
		VALUES ($1, $2, $3, $4)
		RETURNING created_at`

	return r.db.QueryRowxContext(ctx, query,
		setting.ID, setting.UserID, setting.NotificationType, setting.DeliveryType,
	).Scan(&setting.CreatedAt)
}

func (r *notificationSettingRepository) Delete(ctx context.Context, userID, settingID uuid.UUID) error {
	query := `DELETE FROM notification_settings WHERE setting_id = $1 AND user_id = $2`
	_, err := r.db.ExecContext(ctx, query, settingID, userID)
	return err
}

func (r *notificationSettingRepository) ReplaceForUser(ctx context.Context, userID uuid.UUID, settings []domain.NotificationSetting) error {
	tx, err := r.db.BeginTxx(ctx, nil)
	if err != nil {
		return err
	}
	defer tx.Rollback()

	if _, err := tx.ExecContext(ctx, `DELETE FROM notification_settings WHERE user_id = $1`, userID); err != nil {
		return err
	}

	insert := `
		INSERT INTO notification_settings (setting_id, user_id, notification_type, delivery_type)
		VALUES ($1, $2, $3, $4)`
	for _, s := range settings {
		if _, err := tx.ExecContext(ctx, insert, s.ID, userID, s.NotificationType, s.DeliveryType); err != nil {
			return err
		}
	}

	return tx.Commit()
}
