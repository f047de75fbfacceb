package delivery_test

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"

	"citizen-portal/internal/domain"
	"citizen-portal/internal/mocks"
	"citizen-portal/internal/service/delivery"
)

func testNotification(userID uuid.UUID) *domain.Notification {
	return &domain.Notification{
		ID:               uuid.New(),
		UserID:           userID,
		NotificationType: "benefits",
		Subject:          "Your claim was updated",
		Body:             "<p>Check your claim status.</p>",
		ReceivedAt:       time.Now(),
	}
}

func TestDashboardHandler_Deliver(t *testing.T) {
	ctx := context.Background()
	userID := uuid.New()

	t.Run("Creates Entry", func(t *testing.T) {
		mockNotifRepo := new(mocks.NotificationRepository)
		h := delivery.NewDashboardHandler(mockNotifRepo, nil)
		notif := testNotification(userID)

		mockNotifRepo.On("GetByID", ctx, notif.ID).Return(notif, nil).Once()
		mockNotifRepo.On("CreateDashboardEntry", ctx, notif).Return(true, nil).Once()

		err := h.Deliver(ctx, notif.ID)

		assert.NoError(t, err)
		mockNotifRepo.AssertExpectations(t)
	})

	t.Run("Redelivery Is Idempotent", func(t *testing.T) {
		mockNotifRepo := new(mocks.NotificationRepository)
		h := delivery.NewDashboardHandler(mockNotifRepo, nil)
		notif := testNotification(userID)

		mockNotifRepo.On("GetByID", ctx, notif.ID).Return(notif, nil).Twice()
		mockNotifRepo.On("CreateDashboardEntry", ctx, notif).Return(true, nil).Once()
		mockNotifRepo.On("CreateDashboardEntry", ctx, notif).Return(false, nil).Once()

		assert.NoError(t, h.Deliver(ctx, notif.ID))
		// At-least-once queues redeliver; the second pass must not
		// fail and must not write a second entry.
		assert.NoError(t, h.Deliver(ctx, notif.ID))

		mockNotifRepo.AssertExpectations(t)
	})

	t.Run("Missing Notification Fails", func(t *testing.T) {
		mockNotifRepo := new(mocks.NotificationRepository)
		h := delivery.NewDashboardHandler(mockNotifRepo, nil)
		notifID := uuid.New()

		mockNotifRepo.On("GetByID", ctx, notifID).Return(nil, nil).Once()

		err := h.Deliver(ctx, notifID)

		assert.ErrorIs(t, err, delivery.ErrNotificationNotFound)
	})
}

func TestEmailHandler_Deliver(t *testing.T) {
	ctx := context.Background()
	userID := uuid.New()
	user := &domain.User{ID: userID, Email: "casey@example.gov", FirstName: "Casey"}

	t.Run("Sends Mail", func(t *testing.T) {
		mockNotifRepo := new(mocks.NotificationRepository)
		mockUserRepo := new(mocks.UserRepository)
		mockAppRepo := new(mocks.AppRepository)
		mockEmail := new(mocks.EmailService)
		h := delivery.NewEmailHandler(mockNotifRepo, mockUserRepo, mockAppRepo, mockEmail)
		notif := testNotification(userID)

		mockNotifRepo.On("GetByID", ctx, notif.ID).Return(notif, nil).Once()
		mockUserRepo.On("GetByID", ctx, userID).Return(user, nil).Once()
		mockEmail.On("SendNotificationEmail", ctx, user.Email, user.FirstName, (*string)(nil), notif.Subject, notif.Body).
			Return(nil).Once()

		err := h.Deliver(ctx, notif.ID)

		assert.NoError(t, err)
		mockEmail.AssertExpectations(t)
	})

	t.Run("Send Failure Propagates For Retry", func(t *testing.T) {
		mockNotifRepo := new(mocks.NotificationRepository)
		mockUserRepo := new(mocks.UserRepository)
		mockAppRepo := new(mocks.AppRepository)
		mockEmail := new(mocks.EmailService)
		h := delivery.NewEmailHandler(mockNotifRepo, mockUserRepo, mockAppRepo, mockEmail)
		notif := testNotification(userID)

		mockNotifRepo.On("GetByID", ctx, notif.ID).Return(notif, nil).Once()
		mockUserRepo.On("GetByID", ctx, userID).Return(user, nil).Once()
		mockEmail.On("SendNotificationEmail", ctx, user.Email, user.FirstName, (*string)(nil), notif.Subject, notif.Body).
			Return(errors.New("smtp down")).Once()

		err := h.Deliver(ctx, notif.ID)

		assert.Error(t, err)
	})
}

func TestTextHandler_Deliver(t *testing.T) {
	ctx := context.Background()
	userID := uuid.New()
	mobile := "5035551234"

	t.Run("Sends Text", func(t *testing.T) {
		mockNotifRepo := new(mocks.NotificationRepository)
		mockUserRepo := new(mocks.UserRepository)
		mockSMS := new(mocks.SMSService)
		h := delivery.NewTextHandler(mockNotifRepo, mockUserRepo, mockSMS, "MyGov", nil)
		notif := testNotification(userID)
		user := &domain.User{ID: userID, FirstName: "Casey", Mobile: &mobile}

		mockNotifRepo.On("GetByID", ctx, notif.ID).Return(notif, nil).Once()
		mockUserRepo.On("GetByID", ctx, userID).Return(user, nil).Once()
		mockSMS.On("Send", ctx, mobile, "[MYGOV] Your claim was updated").Return(nil).Once()

		err := h.Deliver(ctx, notif.ID)

		assert.NoError(t, err)
		mockSMS.AssertExpectations(t)
	})

	t.Run("No Mobile Is Soft No-Op", func(t *testing.T) {
		mockNotifRepo := new(mocks.NotificationRepository)
		mockUserRepo := new(mocks.UserRepository)
		mockSMS := new(mocks.SMSService)
		h := delivery.NewTextHandler(mockNotifRepo, mockUserRepo, mockSMS, "MyGov", nil)
		notif := testNotification(userID)
		user := &domain.User{ID: userID, FirstName: "Casey"}

		mockNotifRepo.On("GetByID", ctx, notif.ID).Return(notif, nil).Once()
		mockUserRepo.On("GetByID", ctx, userID).Return(user, nil).Once()

		err := h.Deliver(ctx, notif.ID)

		assert.NoError(t, err)
		mockSMS.AssertNotCalled(t, "Send", mock.Anything, mock.Anything, mock.Anything)
	})

	t.Run("Long Subject Truncates", func(t *testing.T) {
		mockNotifRepo := new(mocks.NotificationRepository)
		mockUserRepo := new(mocks.UserRepository)
		mockSMS := new(mocks.SMSService)
		h := delivery.NewTextHandler(mockNotifRepo, mockUserRepo, mockSMS, "MyGov", nil)
		notif := testNotification(userID)
		notif.Subject = strings.Repeat("a", 200)
		user := &domain.User{ID: userID, FirstName: "Casey", Mobile: &mobile}

		mockNotifRepo.On("GetByID", ctx, notif.ID).Return(notif, nil).Once()
		mockUserRepo.On("GetByID", ctx, userID).Return(user, nil).Once()
		mockSMS.On("Send", ctx, mobile, mock.MatchedBy(func(msg string) bool {
			return len(msg) == 160 && strings.HasSuffix(msg, "...")
		})).Return(nil).Once()

		err := h.Deliver(ctx, notif.ID)

		assert.NoError(t, err)
		mockSMS.AssertExpectations(t)
	})
}
