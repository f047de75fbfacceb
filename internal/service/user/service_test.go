package user_test

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"citizen-portal/internal/domain"
	"citizen-portal/internal/mocks"
	"citizen-portal/internal/service/user"
)

func strPtr(s string) *string { return &s }

func newUserService() (*mocks.UserRepository, *mocks.BetaSignupRepository, *mocks.AuditLogRepository, user.Service) {
	mockUserRepo := new(mocks.UserRepository)
	mockSignupRepo := new(mocks.BetaSignupRepository)
	mockAuditRepo := new(mocks.AuditLogRepository)
	svc := user.NewService(mockUserRepo, mockSignupRepo, mockAuditRepo, nil)
	return mockUserRepo, mockSignupRepo, mockAuditRepo, svc
}

func TestUserService_UpdateProfile(t *testing.T) {
	ctx := context.Background()
	userID := uuid.New()

	current := func() *domain.User {
		return &domain.User{
			ID:        userID,
			Email:     "casey@example.gov",
			FirstName: "Casey",
			LastName:  "Morgan",
		}
	}

	t.Run("Phone Numbers Stored As Digits", func(t *testing.T) {
		mockUserRepo, _, mockAuditRepo, svc := newUserService()

		mockUserRepo.On("GetByID", ctx, userID).Return(current(), nil).Once()
		mockUserRepo.On("Update", ctx, mock.MatchedBy(func(u *domain.User) bool {
			return u.Phone != nil && *u.Phone == "5035551234" &&
				u.Mobile != nil && *u.Mobile == "5035559876"
		})).Return(nil).Once()
		mockAuditRepo.On("Create", ctx, mock.Anything).Return(nil).Once()

		updated, err := svc.UpdateProfile(ctx, userID, domain.UpdateProfileInput{
			PhoneNumber:  strPtr("(503) 555-1234"),
			MobileNumber: strPtr("503.555.9876"),
		})

		assert.NoError(t, err)
		require.NotNil(t, updated)
		assert.Equal(t, "503-555-1234", *updated.PhoneNumber())
		mockUserRepo.AssertExpectations(t)
	})

	t.Run("Email Change Checks Allow-List", func(t *testing.T) {
		mockUserRepo, mockSignupRepo, _, svc := newUserService()

		mockUserRepo.On("GetByID", ctx, userID).Return(current(), nil).Once()
		mockSignupRepo.On("ExistsApproved", ctx, "new@example.gov").Return(false, nil).Once()

		updated, err := svc.UpdateProfile(ctx, userID, domain.UpdateProfileInput{
			Email: strPtr("new@example.gov"),
		})

		assert.ErrorIs(t, err, user.ErrEmailNotApproved)
		assert.Nil(t, updated)
		mockUserRepo.AssertNotCalled(t, "Update", mock.Anything, mock.Anything)
	})

	t.Run("Approved Email Change Applies", func(t *testing.T) {
		mockUserRepo, mockSignupRepo, mockAuditRepo, svc := newUserService()

		mockUserRepo.On("GetByID", ctx, userID).Return(current(), nil).Once()
		mockSignupRepo.On("ExistsApproved", ctx, "new@example.gov").Return(true, nil).Once()
		mockUserRepo.On("ExistsByEmail", ctx, "new@example.gov").Return(false, nil).Once()
		mockUserRepo.On("Update", ctx, mock.MatchedBy(func(u *domain.User) bool {
			return u.Email == "new@example.gov"
		})).Return(nil).Once()
		mockAuditRepo.On("Create", ctx, mock.Anything).Return(nil).Once()

		updated, err := svc.UpdateProfile(ctx, userID, domain.UpdateProfileInput{
			Email: strPtr("new@example.gov"),
		})

		assert.NoError(t, err)
		assert.Equal(t, "new@example.gov", updated.Email)
	})

	t.Run("Same Email Skips Allow-List", func(t *testing.T) {
		mockUserRepo, mockSignupRepo, mockAuditRepo, svc := newUserService()

		mockUserRepo.On("GetByID", ctx, userID).Return(current(), nil).Once()
		mockUserRepo.On("Update", ctx, mock.Anything).Return(nil).Once()
		mockAuditRepo.On("Create", ctx, mock.Anything).Return(nil).Once()

		_, err := svc.UpdateProfile(ctx, userID, domain.UpdateProfileInput{
			Email:     strPtr("casey@example.gov"),
			FirstName: strPtr("Cassandra"),
		})

		assert.NoError(t, err)
		mockSignupRepo.AssertNotCalled(t, "ExistsApproved", mock.Anything, mock.Anything)
	})
}

func TestUserService_DeleteAccount(t *testing.T) {
	ctx := context.Background()
	userID := uuid.New()

	t.Run("Deletes Existing User", func(t *testing.T) {
		mockUserRepo, _, _, svc := newUserService()

		mockUserRepo.On("GetByID", ctx, userID).
			Return(&domain.User{ID: userID}, nil).Once()
		mockUserRepo.On("Delete", ctx, userID).Return(nil).Once()

		assert.NoError(t, svc.DeleteAccount(ctx, userID))
		mockUserRepo.AssertExpectations(t)
	})

	t.Run("Unknown User", func(t *testing.T) {
		mockUserRepo, _, _, svc := newUserService()

		mockUserRepo.On("GetByID", ctx, userID).Return(nil, nil).Once()

		assert.ErrorIs(t, svc.DeleteAccount(ctx, userID), user.ErrUserNotFound)
		mockUserRepo.AssertNotCalled(t, "Delete", mock.Anything, mock.Anything)
	})
}
