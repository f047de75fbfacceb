package mocks

import (
	"context"

	"github.com/stretchr/testify/mock"

	"citizen-portal/internal/domain"
)

type BetaSignupRepository struct {
	mock.Mock
}

func (m *BetaSignupRepository) ExistsApproved(ctx context.Context, email string) (bool, error) {
	args := m.Called(ctx, email)
	return args.Bool(0), args.Error(1)
}

func (m *BetaSignupRepository) Create(ctx context.Context, signup *domain.BetaSignup) error {
	args := m.Called(ctx, signup)
	return args.Error(0)
}

func (m *BetaSignupRepository) Approve(ctx context.Context, email string) error {
	args := m.Called(ctx, email)
	return args.Error(0)
}

func (m *BetaSignupRepository) List(ctx context.Context, params domain.PaginationParams) ([]domain.BetaSignup, int64, error) {
	args := m.Called(ctx, params)
	return args.Get(0).([]domain.BetaSignup), args.Get(1).(int64), args.Error(2)
}
