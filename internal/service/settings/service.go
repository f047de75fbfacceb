package settings

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"

	"citizen-portal/internal/domain"
	"citizen-portal/internal/repository"
)

var ErrInvalidDeliveryType = errors.New("invalid delivery type")

type Service interface {
	List(ctx context.Context, userID uuid.UUID) ([]domain.NotificationSetting, error)
	Add(ctx context.Context, userID uuid.UUID, input domain.NotificationSettingInput) (*domain.NotificationSetting, error)
	Remove(ctx context.Context, userID, settingID uuid.UUID) error

	// Replace swaps the user's whole preference set atomically.
	// Duplicate (type, delivery) pairs in the input collapse to one
	// row; the read path dedupes again regardless.
	Replace(ctx context.Context, userID uuid.UUID, inputs []domain.NotificationSettingInput) ([]domain.NotificationSetting, error)
}

type service struct {
	settingRepo repository.NotificationSettingRepository
}

func NewService(settingRepo repository.NotificationSettingRepository) Service {
	return &service{settingRepo: settingRepo}
}

func (s *service) List(ctx context.Context, userID uuid.UUID) ([]domain.NotificationSetting, error) {
	return s.settingRepo.ListByUser(ctx, userID)
}

func (s *service) Add(ctx context.Context, userID uuid.UUID, input domain.NotificationSettingInput) (*domain.NotificationSetting, error) {
	if !input.DeliveryType.IsValid() {
		return nil, fmt.Errorf("%w: %q", ErrInvalidDeliveryType, input.DeliveryType)
	}
	if input.NotificationType == "" {
		return nil, errors.New("notification_type can't be blank")
	}

	setting := &domain.NotificationSetting{
		ID:               uuid.New(),
		UserID:           userID,
		NotificationType: input.NotificationType,
		DeliveryType:     input.DeliveryType,
	}

	if err := s.settingRepo.Create(ctx, setting); err != nil {
		return nil, err
	}
	return setting, nil
}

func (s *service) Remove(ctx context.Context, userID, settingID uuid.UUID) error {
	return s.settingRepo.Delete(ctx, userID, settingID)
}

func (s *service) Replace(ctx context.Context, userID uuid.UUID, inputs []domain.NotificationSettingInput) ([]domain.NotificationSetting, error) {
	type key struct {
		notificationType string
		deliveryType     domain.DeliveryType
	}
	seen := make(map[key]bool, len(inputs))

	settings := make([]domain.NotificationSetting, 0, len(inputs))
	for _, in := range inputs {
		if !in.DeliveryType.IsValid() {
			return nil, fmt.Errorf("%w: %q", ErrInvalidDeliveryType, in.DeliveryType)
		}
		if in.NotificationType == "" {
			return nil, errors.New("notification_type can't be blank")
		}

		k := key{in.NotificationType, in.DeliveryType}
		if seen[k] {
			continue
		}
		seen[k] = true

		settings = append(settings, domain.NotificationSetting{
			ID:               uuid.New(),
			UserID:           userID,
			NotificationType: in.NotificationType,
			DeliveryType:     in.DeliveryType,
		})
	}

	if err := s.settingRepo.ReplaceForUser(ctx, userID, settings); err != nil {
		return nil, err
	}
	return settings, nil
}
