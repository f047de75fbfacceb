package mocks

import (
	"context"

	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"

	"citizen-portal/internal/domain"
)

type NotificationSettingRepository struct {
	mock.Mock
}

func (m *NotificationSettingRepository) ActiveDeliveryTypes(ctx context.Context, userID uuid.UUID, notificationType string) ([]domain.DeliveryType, error) {
	args := m.Called(ctx, userID, notificationType)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.DeliveryType), args.Error(1)
}

func (m *NotificationSettingRepository) ListByUser(ctx context.Context, userID uuid.UUID) ([]domain.NotificationSetting, error) {
	args := m.Called(ctx, userID)
	return args.Get(0).([]domain.NotificationSetting), args.Error(1)
}

func (m *NotificationSettingRepository) Create(ctx context.Context, setting *domain.NotificationSetting) error {
	args := m.Called(ctx, setting)
	return args.Error(0)
}

func (m *NotificationSettingRepository) Delete(ctx context.Context, userID, settingID uuid.UUID) error {
	args := m.Called(ctx, userID, settingID)
	return args.Error(0)
}

func (m *NotificationSettingRepository) ReplaceForUser(ctx context.Context, userID uuid.UUID, settings []domain.NotificationSetting) error {
	args := m.Called(ctx, userID, settings)
	return args.Error(0)
}
