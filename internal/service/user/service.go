package user

import (
	"context"
	"errors"
	"log/slog"

	"github.com/google/uuid"

	"citizen-portal/internal/domain"
	"citizen-portal/internal/repository"
)

var (
	ErrUserNotFound     = errors.New("user not found")
	ErrEmailNotApproved = errors.New("I'm sorry, your account hasn't been approved yet")
	ErrEmailExists      = errors.New("email already registered")
)

type Service interface {
	GetProfile(ctx context.Context, userID uuid.UUID) (*domain.User, error)
	UpdateProfile(ctx context.Context, userID uuid.UUID, input domain.UpdateProfileInput) (*domain.User, error)
	SchemaOrgProfile(ctx context.Context, userID uuid.UUID) (map[string]any, error)

	// DeleteAccount removes the user and cascades to notifications,
	// settings, dashboard entries, tasks and sessions.
	DeleteAccount(ctx context.Context, userID uuid.UUID) error
}

type service struct {
	userRepo   repository.UserRepository
	signupRepo repository.BetaSignupRepository
	auditRepo  repository.AuditLogRepository
	logger     *slog.Logger
}

func NewService(
	userRepo repository.UserRepository,
	signupRepo repository.BetaSignupRepository,
	auditRepo repository.AuditLogRepository,
	logger *slog.Logger,
) Service {
	if logger == nil {
		logger = slog.Default()
	}
	return &service{
		userRepo:   userRepo,
		signupRepo: signupRepo,
		auditRepo:  auditRepo,
		logger:     logger,
	}
}

func (s *service) GetProfile(ctx context.Context, userID uuid.UUID) (*domain.User, error) {
	user, err := s.userRepo.GetByID(ctx, userID)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, ErrUserNotFound
	}
	return user, nil
}

func (s *service) UpdateProfile(ctx context.Context, userID uuid.UUID, input domain.UpdateProfileInput) (*domain.User, error) {
	user, err := s.userRepo.GetByID(ctx, userID)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, ErrUserNotFound
	}

	if input.Email != nil && *input.Email != user.Email {
		// The allow-list invariant holds on every save, not just at
		// registration.
		approved, err := s.signupRepo.ExistsApproved(ctx, *input.Email)
		if err != nil {
			return nil, err
		}
		if !approved {
			return nil, ErrEmailNotApproved
		}

		taken, err := s.userRepo.ExistsByEmail(ctx, *input.Email)
		if err != nil {
			return nil, err
		}
		if taken {
			return nil, ErrEmailExists
		}
		user.Email = *input.Email
	}

	applyProfileChanges(user, input)

	if err := s.userRepo.Update(ctx, user); err != nil {
		return nil, err
	}

	if err := repository.RecordAudit(ctx, s.auditRepo, domain.CreateAuditLogInput{
		UserID:     userID,
		Action:     "UPDATE",
		EntityType: "PROFILE",
		EntityID:   userID,
	}); err != nil {
		s.logger.Warn("failed to record audit log", slog.Any("error", err))
	}

	return user, nil
}

func (s *service) SchemaOrgProfile(ctx context.Context, userID uuid.UUID) (map[string]any, error) {
	user, err := s.GetProfile(ctx, userID)
	if err != nil {
		return nil, err
	}
	return user.SchemaOrgPerson(), nil
}

func (s *service) DeleteAccount(ctx context.Context, userID uuid.UUID) error {
	user, err := s.userRepo.GetByID(ctx, userID)
	if err != nil {
		return err
	}
	if user == nil {
		return ErrUserNotFound
	}
	return s.userRepo.Delete(ctx, userID)
}

func applyProfileChanges(user *domain.User, input domain.UpdateProfileInput) {
	if input.Title != nil {
		user.Title = input.Title
	}
	if input.FirstName != nil {
		user.FirstName = *input.FirstName
	}
	if input.MiddleName != nil {
		user.MiddleName = input.MiddleName
	}
	if input.LastName != nil {
		user.LastName = *input.LastName
	}
	if input.Suffix != nil {
		user.Suffix = input.Suffix
	}
	if input.Address != nil {
		user.Address = input.Address
	}
	if input.Address2 != nil {
		user.Address2 = input.Address2
	}
	if input.City != nil {
		user.City = input.City
	}
	if input.State != nil {
		user.State = input.State
	}
	if input.Zip != nil {
		user.Zip = input.Zip
	}
	if input.DateOfBirth != nil {
		user.DateOfBirth = input.DateOfBirth
	}
	if input.PhoneNumber != nil {
		normalized := domain.NormalizePhone(*input.PhoneNumber)
		user.Phone = &normalized
	}
	if input.MobileNumber != nil {
		normalized := domain.NormalizePhone(*input.MobileNumber)
		user.Mobile = &normalized
	}
	if input.Gender != nil {
		user.Gender = input.Gender
	}
	if input.MaritalStatus != nil {
		user.MaritalStatus = input.MaritalStatus
	}
	if input.IsParent != nil {
		user.IsParent = *input.IsParent
	}
	if input.IsVeteran != nil {
		user.IsVeteran = *input.IsVeteran
	}
	if input.IsStudent != nil {
		user.IsStudent = *input.IsStudent
	}
	if input.IsRetired != nil {
		user.IsRetired = *input.IsRetired
	}
}
