package settings_test

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"

	"citizen-portal/internal/domain"
	"citizen-portal/internal/mocks"
	"citizen-portal/internal/service/settings"
)

func TestSettingsService_Add(t *testing.T) {
	ctx := context.Background()
	userID := uuid.New()

	t.Run("Success", func(t *testing.T) {
		mockRepo := new(mocks.NotificationSettingRepository)
		svc := settings.NewService(mockRepo)

		mockRepo.On("Create", ctx, mock.MatchedBy(func(s *domain.NotificationSetting) bool {
			return s.UserID == userID &&
				s.NotificationType == "benefits" &&
				s.DeliveryType == domain.DeliveryEmail
		})).Return(nil).Once()

		setting, err := svc.Add(ctx, userID, domain.NotificationSettingInput{
			NotificationType: "benefits",
			DeliveryType:     domain.DeliveryEmail,
		})

		assert.NoError(t, err)
		assert.NotNil(t, setting)
		mockRepo.AssertExpectations(t)
	})

	t.Run("Invalid Delivery Type", func(t *testing.T) {
		mockRepo := new(mocks.NotificationSettingRepository)
		svc := settings.NewService(mockRepo)

		setting, err := svc.Add(ctx, userID, domain.NotificationSettingInput{
			NotificationType: "benefits",
			DeliveryType:     "pigeon",
		})

		assert.ErrorIs(t, err, settings.ErrInvalidDeliveryType)
		assert.Nil(t, setting)
		mockRepo.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
	})
}

func TestSettingsService_Replace(t *testing.T) {
	ctx := context.Background()
	userID := uuid.New()

	t.Run("Collapses Duplicate Pairs", func(t *testing.T) {
		mockRepo := new(mocks.NotificationSettingRepository)
		svc := settings.NewService(mockRepo)

		mockRepo.On("ReplaceForUser", ctx, userID, mock.MatchedBy(func(list []domain.NotificationSetting) bool {
			return len(list) == 2
		})).Return(nil).Once()

		result, err := svc.Replace(ctx, userID, []domain.NotificationSettingInput{
			{NotificationType: "benefits", DeliveryType: domain.DeliveryEmail},
			{NotificationType: "benefits", DeliveryType: domain.DeliveryEmail},
			{NotificationType: "benefits", DeliveryType: domain.DeliveryDashboard},
		})

		assert.NoError(t, err)
		assert.Len(t, result, 2)
		mockRepo.AssertExpectations(t)
	})

	t.Run("Empty Input Clears All", func(t *testing.T) {
		mockRepo := new(mocks.NotificationSettingRepository)
		svc := settings.NewService(mockRepo)

		mockRepo.On("ReplaceForUser", ctx, userID, mock.MatchedBy(func(list []domain.NotificationSetting) bool {
			return len(list) == 0
		})).Return(nil).Once()

		result, err := svc.Replace(ctx, userID, nil)

		assert.NoError(t, err)
		assert.Empty(t, result)
		mockRepo.AssertExpectations(t)
	})

	t.Run("Invalid Entry Rejects Whole Set", func(t *testing.T) {
		mockRepo := new(mocks.NotificationSettingRepository)
		svc := settings.NewService(mockRepo)

		result, err := svc.Replace(ctx, userID, []domain.NotificationSettingInput{
			{NotificationType: "benefits", DeliveryType: "pigeon"},
		})

		assert.ErrorIs(t, err, settings.ErrInvalidDeliveryType)
		assert.Nil(t, result)
		mockRepo.AssertNotCalled(t, "ReplaceForUser", mock.Anything, mock.Anything, mock.Anything)
	})
}
