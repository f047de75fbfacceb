package mocks

import (
	"context"

	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"
)

type Enqueuer struct {
	mock.Mock
}

func (m *Enqueuer) Enqueue(ctx context.Context, handler string, notificationID uuid.UUID) error {
	args := m.Called(ctx, handler, notificationID)
	return args.Error(0)
}
