package mocks

import (
	"context"

	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"

	"citizen-portal/internal/domain"
)

type TaskRepository struct {
	mock.Mock
}

func (m *TaskRepository) Create(ctx context.Context, task *domain.Task, items []domain.TaskItem) error {
	args := m.Called(ctx, task, items)
	return args.Error(0)
}

func (m *TaskRepository) GetByID(ctx context.Context, id uuid.UUID) (*domain.Task, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Task), args.Error(1)
}

func (m *TaskRepository) GetItems(ctx context.Context, taskID uuid.UUID) ([]domain.TaskItem, error) {
	args := m.Called(ctx, taskID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.TaskItem), args.Error(1)
}

func (m *TaskRepository) GetItem(ctx context.Context, taskID, itemID uuid.UUID) (*domain.TaskItem, error) {
	args := m.Called(ctx, taskID, itemID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.TaskItem), args.Error(1)
}

func (m *TaskRepository) ListByUser(ctx context.Context, userID uuid.UUID, params domain.PaginationParams) ([]domain.Task, int64, error) {
	args := m.Called(ctx, userID, params)
	return args.Get(0).([]domain.Task), args.Get(1).(int64), args.Error(2)
}

func (m *TaskRepository) CompleteItem(ctx context.Context, taskID, itemID uuid.UUID) error {
	args := m.Called(ctx, taskID, itemID)
	return args.Error(0)
}

func (m *TaskRepository) CompleteAllItems(ctx context.Context, taskID uuid.UUID) error {
	args := m.Called(ctx, taskID)
	return args.Error(0)
}

func (m *TaskRepository) RemoveItem(ctx context.Context, taskID, itemID uuid.UUID) error {
	args := m.Called(ctx, taskID, itemID)
	return args.Error(0)
}

func (m *TaskRepository) SetItemFormKey(ctx context.Context, taskID, itemID uuid.UUID, formKey string) error {
	args := m.Called(ctx, taskID, itemID, formKey)
	return args.Error(0)
}

func (m *TaskRepository) CompleteTask(ctx context.Context, taskID uuid.UUID) error {
	args := m.Called(ctx, taskID)
	return args.Error(0)
}

func (m *TaskRepository) OpenItemCount(ctx context.Context, taskID uuid.UUID) (int64, error) {
	args := m.Called(ctx, taskID)
	return args.Get(0).(int64), args.Error(1)
}
