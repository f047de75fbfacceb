package mocks

import (
	"context"

	"github.com/stretchr/testify/mock"

	"citizen-portal/internal/domain"
)

type DispatchService struct {
	mock.Mock
}

func (m *DispatchService) Dispatch(ctx context.Context, notif *domain.Notification) error {
	args := m.Called(ctx, notif)
	return args.Error(0)
}
