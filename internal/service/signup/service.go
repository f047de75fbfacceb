package signup

import (
	"context"
	"errors"
	"strings"

	"github.com/google/uuid"

	"citizen-portal/internal/domain"
	"citizen-portal/internal/repository"
)

var ErrEmailRequired = errors.New("email is required")

// Service manages the account allow-list. Anyone can request access;
// only admins approve.
type Service interface {
	Request(ctx context.Context, email string) error
	Approve(ctx context.Context, email string) error
	List(ctx context.Context, params domain.PaginationParams) (domain.PaginatedResponse[domain.BetaSignup], error)
}

type service struct {
	signupRepo repository.BetaSignupRepository
}

func NewService(signupRepo repository.BetaSignupRepository) Service {
	return &service{signupRepo: signupRepo}
}

func (s *service) Request(ctx context.Context, email string) error {
	email = strings.ToLower(strings.TrimSpace(email))
	if email == "" {
		return ErrEmailRequired
	}
	return s.signupRepo.Create(ctx, &domain.BetaSignup{
		ID:    uuid.New(),
		Email: email,
	})
}

func (s *service) Approve(ctx context.Context, email string) error {
	email = strings.ToLower(strings.TrimSpace(email))
	if email == "" {
		return ErrEmailRequired
	}
	return s.signupRepo.Approve(ctx, email)
}

func (s *service) List(ctx context.Context, params domain.PaginationParams) (domain.PaginatedResponse[domain.BetaSignup], error) {
	signups, total, err := s.signupRepo.List(ctx, params)
	if err != nil {
		return domain.PaginatedResponse[domain.BetaSignup]{}, err
	}
	return domain.NewPaginatedResponse(signups, params.Page, params.PageSize, total), nil
}
