package auth_test

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"citizen-portal/internal/config"
	"citizen-portal/internal/domain"
	"citizen-portal/internal/mocks"
	"citizen-portal/internal/repository"
	"citizen-portal/internal/service/auth"
)

func testConfig() *config.Config {
	return &config.Config{
		JWTSecret:        "test-secret",
		JWTAccessExpiry:  15 * time.Minute,
		JWTRefreshExpiry: 7 * 24 * time.Hour,
		ProductName:      "MyGov",
	}
}

func newAuthService() (*mocks.UserRepository, *mocks.BetaSignupRepository, *mocks.SessionRepository, *mocks.EmailService, auth.Service) {
	mockUserRepo := new(mocks.UserRepository)
	mockSignupRepo := new(mocks.BetaSignupRepository)
	mockSessionRepo := new(mocks.SessionRepository)
	mockEmail := new(mocks.EmailService)
	svc := auth.NewService(mockUserRepo, mockSignupRepo, mockSessionRepo, mockEmail, testConfig(), nil)
	return mockUserRepo, mockSignupRepo, mockSessionRepo, mockEmail, svc
}

func TestAuthService_Register(t *testing.T) {
	ctx := context.Background()
	input := domain.CreateUserInput{
		Email:     "casey@example.gov",
		Password:  "hunter2hunter2",
		FirstName: "Casey",
		LastName:  "Morgan",
	}

	t.Run("Approved Email Registers", func(t *testing.T) {
		mockUserRepo, mockSignupRepo, _, mockEmail, svc := newAuthService()

		mockSignupRepo.On("ExistsApproved", ctx, input.Email).Return(true, nil).Once()
		mockUserRepo.On("ExistsByEmail", ctx, input.Email).Return(false, nil).Once()
		mockUserRepo.On("Create", ctx, mock.MatchedBy(func(u *domain.User) bool {
			return u.Email == input.Email && u.Role == "citizen" && u.PasswordHash != input.Password
		})).Return(nil).Once()
		mockUserRepo.On("SetEmailVerificationToken", ctx, mock.Anything, mock.Anything, mock.Anything).
			Return(nil).Once()
		// Verification mail goes out asynchronously.
		mockEmail.On("SendEmailVerification", mock.Anything, input.Email, input.FirstName, mock.Anything).
			Return(nil).Maybe()

		user, err := svc.Register(ctx, input)

		assert.NoError(t, err)
		require.NotNil(t, user)
		assert.Equal(t, "citizen", user.Role)
		mockUserRepo.AssertExpectations(t)
	})

	t.Run("Unapproved Email Rejected", func(t *testing.T) {
		mockUserRepo, mockSignupRepo, _, _, svc := newAuthService()

		mockSignupRepo.On("ExistsApproved", ctx, input.Email).Return(false, nil).Once()

		user, err := svc.Register(ctx, input)

		assert.ErrorIs(t, err, auth.ErrEmailNotApproved)
		assert.Nil(t, user)
		mockUserRepo.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
	})

	t.Run("Duplicate Email Rejected", func(t *testing.T) {
		mockUserRepo, mockSignupRepo, _, _, svc := newAuthService()

		mockSignupRepo.On("ExistsApproved", ctx, input.Email).Return(true, nil).Once()
		mockUserRepo.On("ExistsByEmail", ctx, input.Email).Return(true, nil).Once()

		user, err := svc.Register(ctx, input)

		assert.ErrorIs(t, err, auth.ErrEmailExists)
		assert.Nil(t, user)
	})
}

func TestAuthService_Login(t *testing.T) {
	ctx := context.Background()
	password := "hunter2hunter2"
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.MinCost)
	require.NoError(t, err)

	verified := &domain.User{
		ID:              uuid.New(),
		Email:           "casey@example.gov",
		PasswordHash:    string(hash),
		FirstName:       "Casey",
		IsEmailVerified: true,
	}

	t.Run("Success Issues Token Pair", func(t *testing.T) {
		mockUserRepo, _, mockSessionRepo, _, svc := newAuthService()

		mockUserRepo.On("GetByEmail", ctx, verified.Email).Return(verified, nil).Once()
		mockSessionRepo.On("Create", ctx, mock.MatchedBy(func(s *repository.Session) bool {
			return s.UserID == verified.ID && s.TokenHash != ""
		})).Return(nil).Once()

		user, tokens, err := svc.Login(ctx, domain.LoginInput{Email: verified.Email, Password: password})

		assert.NoError(t, err)
		assert.Equal(t, verified.ID, user.ID)
		require.NotNil(t, tokens)
		assert.NotEmpty(t, tokens.AccessToken)
		assert.NotEmpty(t, tokens.RefreshToken)

		// The issued access token must round-trip validation.
		claims, err := svc.ValidateAccessToken(tokens.AccessToken)
		assert.NoError(t, err)
		assert.Equal(t, verified.ID, claims.UserID)
	})

	t.Run("Wrong Password", func(t *testing.T) {
		mockUserRepo, _, _, _, svc := newAuthService()

		mockUserRepo.On("GetByEmail", ctx, verified.Email).Return(verified, nil).Once()

		_, _, err := svc.Login(ctx, domain.LoginInput{Email: verified.Email, Password: "wrong"})

		assert.ErrorIs(t, err, auth.ErrInvalidCredentials)
	})

	t.Run("Unknown Email", func(t *testing.T) {
		mockUserRepo, _, _, _, svc := newAuthService()

		mockUserRepo.On("GetByEmail", ctx, "nobody@example.gov").Return(nil, nil).Once()

		_, _, err := svc.Login(ctx, domain.LoginInput{Email: "nobody@example.gov", Password: password})

		assert.ErrorIs(t, err, auth.ErrInvalidCredentials)
	})

	t.Run("Unverified Email Blocked", func(t *testing.T) {
		mockUserRepo, _, _, _, svc := newAuthService()
		unverified := *verified
		unverified.IsEmailVerified = false

		mockUserRepo.On("GetByEmail", ctx, verified.Email).Return(&unverified, nil).Once()

		_, _, err := svc.Login(ctx, domain.LoginInput{Email: verified.Email, Password: password})

		assert.ErrorIs(t, err, auth.ErrEmailNotVerified)
	})
}

func TestAuthService_ValidateAccessToken(t *testing.T) {
	_, _, _, _, svc := newAuthService()

	t.Run("Garbage Token", func(t *testing.T) {
		claims, err := svc.ValidateAccessToken("not-a-jwt")
		assert.ErrorIs(t, err, auth.ErrInvalidToken)
		assert.Nil(t, claims)
	})
}

func TestAuthService_ResetPassword(t *testing.T) {
	ctx := context.Background()

	t.Run("Expired Token", func(t *testing.T) {
		mockUserRepo, _, _, _, svc := newAuthService()
		expired := time.Now().Add(-time.Hour)
		user := &domain.User{ID: uuid.New(), PasswordResetExpiresAt: &expired}

		mockUserRepo.On("GetByResetToken", ctx, "stale").Return(user, nil).Once()

		err := svc.ResetPassword(ctx, "stale", "newpassword123")

		assert.ErrorIs(t, err, auth.ErrTokenExpired)
		mockUserRepo.AssertNotCalled(t, "Update", mock.Anything, mock.Anything)
	})

	t.Run("Success Revokes Sessions", func(t *testing.T) {
		mockUserRepo, _, mockSessionRepo, _, svc := newAuthService()
		expires := time.Now().Add(time.Hour)
		user := &domain.User{ID: uuid.New(), PasswordResetExpiresAt: &expires}

		mockUserRepo.On("GetByResetToken", ctx, "fresh").Return(user, nil).Once()
		mockUserRepo.On("Update", ctx, mock.Anything).Return(nil).Once()
		mockUserRepo.On("ClearPasswordResetToken", ctx, user.ID).Return(nil).Once()
		mockSessionRepo.On("RevokeAllForUser", ctx, user.ID).Return(nil).Once()

		err := svc.ResetPassword(ctx, "fresh", "newpassword123")

		assert.NoError(t, err)
		mockSessionRepo.AssertExpectations(t)
	})
}
