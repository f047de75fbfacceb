package mocks

import (
	"context"

	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"

	"citizen-portal/internal/domain"
)

type AppRepository struct {
	mock.Mock
}

func (m *AppRepository) Create(ctx context.Context, app *domain.App) error {
	args := m.Called(ctx, app)
	return args.Error(0)
}

func (m *AppRepository) GetByID(ctx context.Context, id uuid.UUID) (*domain.App, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.App), args.Error(1)
}

func (m *AppRepository) List(ctx context.Context, params domain.PaginationParams) ([]domain.App, int64, error) {
	args := m.Called(ctx, params)
	return args.Get(0).([]domain.App), args.Get(1).(int64), args.Error(2)
}

func (m *AppRepository) Update(ctx context.Context, app *domain.App) error {
	args := m.Called(ctx, app)
	return args.Error(0)
}

func (m *AppRepository) Delete(ctx context.Context, id uuid.UUID) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}
