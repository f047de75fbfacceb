package notification_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"

	"citizen-portal/internal/domain"
	"citizen-portal/internal/mocks"
	"citizen-portal/internal/service/notification"
)

func validInput(userID uuid.UUID) domain.CreateNotificationInput {
	return domain.CreateNotificationInput{
		UserID:           userID,
		NotificationType: "benefits",
		Subject:          "Your claim was updated",
		Body:             "<p>Check your claim status.</p>",
		ReceivedAt:       time.Now(),
	}
}

func TestNotificationService_Create(t *testing.T) {
	ctx := context.Background()
	creatorID := uuid.New()
	userID := uuid.New()
	user := &domain.User{ID: userID, Email: "casey@example.gov", FirstName: "Casey"}

	t.Run("Success Runs One Dispatch", func(t *testing.T) {
		mockNotifRepo := new(mocks.NotificationRepository)
		mockUserRepo := new(mocks.UserRepository)
		mockAppRepo := new(mocks.AppRepository)
		mockAuditRepo := new(mocks.AuditLogRepository)
		mockDispatch := new(mocks.DispatchService)

		svc := notification.NewService(mockNotifRepo, mockUserRepo, mockAppRepo, mockAuditRepo, mockDispatch, nil)
		input := validInput(userID)

		mockUserRepo.On("GetByID", ctx, userID).Return(user, nil).Once()
		mockNotifRepo.On("Create", ctx, mock.MatchedBy(func(n *domain.Notification) bool {
			return n.UserID == userID && n.Subject == input.Subject
		})).Return(nil).Once()
		mockDispatch.On("Dispatch", ctx, mock.Anything).Return(nil).Once()
		mockAuditRepo.On("Create", ctx, mock.MatchedBy(func(log *domain.AuditLog) bool {
			return log.Action == "CREATE" && log.EntityType == "NOTIFICATION" && log.UserID == creatorID
		})).Return(nil).Once()

		notif, err := svc.Create(ctx, creatorID, input)

		assert.NoError(t, err)
		assert.NotNil(t, notif)
		mockDispatch.AssertNumberOfCalls(t, "Dispatch", 1)
		mockNotifRepo.AssertExpectations(t)
	})

	t.Run("Validation Failure Skips Persist And Dispatch", func(t *testing.T) {
		mockNotifRepo := new(mocks.NotificationRepository)
		mockUserRepo := new(mocks.UserRepository)
		mockAppRepo := new(mocks.AppRepository)
		mockAuditRepo := new(mocks.AuditLogRepository)
		mockDispatch := new(mocks.DispatchService)

		svc := notification.NewService(mockNotifRepo, mockUserRepo, mockAppRepo, mockAuditRepo, mockDispatch, nil)
		input := validInput(userID)
		input.Subject = ""

		notif, err := svc.Create(ctx, creatorID, input)

		assert.ErrorIs(t, err, domain.ErrSubjectRequired)
		assert.Nil(t, notif)
		mockNotifRepo.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
		mockDispatch.AssertNotCalled(t, "Dispatch", mock.Anything, mock.Anything)
	})

	t.Run("Unknown User Rejected", func(t *testing.T) {
		mockNotifRepo := new(mocks.NotificationRepository)
		mockUserRepo := new(mocks.UserRepository)
		mockAppRepo := new(mocks.AppRepository)
		mockAuditRepo := new(mocks.AuditLogRepository)
		mockDispatch := new(mocks.DispatchService)

		svc := notification.NewService(mockNotifRepo, mockUserRepo, mockAppRepo, mockAuditRepo, mockDispatch, nil)

		mockUserRepo.On("GetByID", ctx, userID).Return(nil, nil).Once()

		notif, err := svc.Create(ctx, creatorID, validInput(userID))

		assert.ErrorIs(t, err, notification.ErrUserNotFound)
		assert.Nil(t, notif)
		mockDispatch.AssertNotCalled(t, "Dispatch", mock.Anything, mock.Anything)
	})

	t.Run("Unknown App Rejected", func(t *testing.T) {
		mockNotifRepo := new(mocks.NotificationRepository)
		mockUserRepo := new(mocks.UserRepository)
		mockAppRepo := new(mocks.AppRepository)
		mockAuditRepo := new(mocks.AuditLogRepository)
		mockDispatch := new(mocks.DispatchService)

		svc := notification.NewService(mockNotifRepo, mockUserRepo, mockAppRepo, mockAuditRepo, mockDispatch, nil)
		appID := uuid.New()
		input := validInput(userID)
		input.AppID = &appID

		mockUserRepo.On("GetByID", ctx, userID).Return(user, nil).Once()
		mockAppRepo.On("GetByID", ctx, appID).Return(nil, nil).Once()

		notif, err := svc.Create(ctx, creatorID, input)

		assert.ErrorIs(t, err, notification.ErrAppNotFound)
		assert.Nil(t, notif)
		mockNotifRepo.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
	})

	t.Run("Dispatch Failure Unwinds Creation", func(t *testing.T) {
		mockNotifRepo := new(mocks.NotificationRepository)
		mockUserRepo := new(mocks.UserRepository)
		mockAppRepo := new(mocks.AppRepository)
		mockAuditRepo := new(mocks.AuditLogRepository)
		mockDispatch := new(mocks.DispatchService)

		svc := notification.NewService(mockNotifRepo, mockUserRepo, mockAppRepo, mockAuditRepo, mockDispatch, nil)

		mockUserRepo.On("GetByID", ctx, userID).Return(user, nil).Once()
		mockNotifRepo.On("Create", ctx, mock.Anything).Return(nil).Once()
		mockDispatch.On("Dispatch", ctx, mock.Anything).
			Return(errors.New("preference store unavailable")).Once()
		mockNotifRepo.On("Delete", ctx, mock.Anything).Return(nil).Once()

		notif, err := svc.Create(ctx, creatorID, validInput(userID))

		assert.Error(t, err)
		assert.Nil(t, notif)
		mockNotifRepo.AssertExpectations(t)
		mockAuditRepo.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
	})
}

func TestNotificationService_Dashboard(t *testing.T) {
	ctx := context.Background()
	userID := uuid.New()

	t.Run("List Paginates", func(t *testing.T) {
		mockNotifRepo := new(mocks.NotificationRepository)
		mockUserRepo := new(mocks.UserRepository)
		mockAppRepo := new(mocks.AppRepository)
		mockAuditRepo := new(mocks.AuditLogRepository)
		mockDispatch := new(mocks.DispatchService)

		svc := notification.NewService(mockNotifRepo, mockUserRepo, mockAppRepo, mockAuditRepo, mockDispatch, nil)
		params := domain.PaginationParams{Page: 1, PageSize: 20}
		entries := []domain.DashboardNotification{
			{EntryID: uuid.New(), Subject: "Your claim was updated"},
		}

		mockNotifRepo.On("ListDashboard", ctx, userID, false, params).
			Return(entries, int64(1), nil).Once()

		result, err := svc.ListDashboard(ctx, userID, false, params)

		assert.NoError(t, err)
		assert.Len(t, result.Data, 1)
		assert.Equal(t, int64(1), result.TotalItems)
	})

	t.Run("Unread Count", func(t *testing.T) {
		mockNotifRepo := new(mocks.NotificationRepository)
		mockUserRepo := new(mocks.UserRepository)
		mockAppRepo := new(mocks.AppRepository)
		mockAuditRepo := new(mocks.AuditLogRepository)
		mockDispatch := new(mocks.DispatchService)

		svc := notification.NewService(mockNotifRepo, mockUserRepo, mockAppRepo, mockAuditRepo, mockDispatch, nil)

		mockNotifRepo.On("CountUnread", ctx, userID).Return(int64(4), nil).Once()

		count, err := svc.GetUnreadCount(ctx, userID)

		assert.NoError(t, err)
		assert.Equal(t, int64(4), count)
	})
}
