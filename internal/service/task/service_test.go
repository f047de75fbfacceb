package task_test

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"

	"citizen-portal/internal/domain"
	"citizen-portal/internal/mocks"
	"citizen-portal/internal/service/task"
)

func newDeps() (*mocks.TaskRepository, *mocks.AppRepository, *mocks.AuditLogRepository, task.Service) {
	mockTaskRepo := new(mocks.TaskRepository)
	mockAppRepo := new(mocks.AppRepository)
	mockAuditRepo := new(mocks.AuditLogRepository)
	svc := task.NewService(mockTaskRepo, mockAppRepo, mockAuditRepo, nil)
	return mockTaskRepo, mockAppRepo, mockAuditRepo, svc
}

func TestTaskService_Create(t *testing.T) {
	ctx := context.Background()
	userID := uuid.New()

	t.Run("Creates Task With Items", func(t *testing.T) {
		mockTaskRepo, _, _, svc := newDeps()

		mockTaskRepo.On("Create", ctx, mock.MatchedBy(func(tk *domain.Task) bool {
			return tk.UserID == userID && tk.Name == "Renew passport"
		}), mock.MatchedBy(func(items []domain.TaskItem) bool {
			return len(items) == 2
		})).Return(nil).Once()
		mockTaskRepo.On("GetByID", ctx, mock.Anything).
			Return(&domain.Task{ID: uuid.New(), UserID: userID, Name: "Renew passport"}, nil).Once()
		mockTaskRepo.On("GetItems", ctx, mock.Anything).
			Return([]domain.TaskItem{{Name: "Fill form DS-82"}, {Name: "Pay fee"}}, nil).Once()

		detail, err := svc.Create(ctx, userID, domain.CreateTaskInput{
			Name: "Renew passport",
			Items: []domain.CreateTaskItemInput{
				{Name: "Fill form DS-82"},
				{Name: "Pay fee"},
			},
		})

		assert.NoError(t, err)
		assert.Len(t, detail.Items, 2)
		mockTaskRepo.AssertExpectations(t)
	})

	t.Run("Blank Name Rejected", func(t *testing.T) {
		mockTaskRepo, _, _, svc := newDeps()

		detail, err := svc.Create(ctx, userID, domain.CreateTaskInput{Name: ""})

		assert.ErrorIs(t, err, task.ErrNameRequired)
		assert.Nil(t, detail)
		mockTaskRepo.AssertNotCalled(t, "Create", mock.Anything, mock.Anything, mock.Anything)
	})

	t.Run("Unknown App Rejected", func(t *testing.T) {
		mockTaskRepo, mockAppRepo, _, svc := newDeps()
		appID := uuid.New()

		mockAppRepo.On("GetByID", ctx, appID).Return(nil, nil).Once()

		detail, err := svc.Create(ctx, userID, domain.CreateTaskInput{Name: "Renew passport", AppID: &appID})

		assert.ErrorIs(t, err, task.ErrAppNotFound)
		assert.Nil(t, detail)
		mockTaskRepo.AssertNotCalled(t, "Create", mock.Anything, mock.Anything, mock.Anything)
	})
}

func TestTaskService_CompleteItem(t *testing.T) {
	ctx := context.Background()
	userID := uuid.New()
	taskID := uuid.New()
	itemID := uuid.New()
	openTask := &domain.Task{ID: taskID, UserID: userID, Name: "Renew passport"}

	t.Run("Last Item Completes Task", func(t *testing.T) {
		mockTaskRepo, _, mockAuditRepo, svc := newDeps()

		mockTaskRepo.On("GetByID", ctx, taskID).Return(openTask, nil)
		mockTaskRepo.On("GetItem", ctx, taskID, itemID).
			Return(&domain.TaskItem{ID: itemID, TaskID: taskID, Name: "Pay fee"}, nil).Once()
		mockTaskRepo.On("CompleteItem", ctx, taskID, itemID).Return(nil).Once()
		mockTaskRepo.On("OpenItemCount", ctx, taskID).Return(int64(0), nil).Once()
		mockTaskRepo.On("CompleteTask", ctx, taskID).Return(nil).Once()
		mockAuditRepo.On("Create", ctx, mock.MatchedBy(func(log *domain.AuditLog) bool {
			return log.Action == "COMPLETE" && log.EntityType == "TASK"
		})).Return(nil).Once()
		mockTaskRepo.On("GetItems", ctx, taskID).
			Return([]domain.TaskItem{}, nil).Once()

		_, err := svc.CompleteItem(ctx, userID, taskID, itemID)

		assert.NoError(t, err)
		mockTaskRepo.AssertExpectations(t)
		mockAuditRepo.AssertExpectations(t)
	})

	t.Run("Open Items Remain", func(t *testing.T) {
		mockTaskRepo, _, _, svc := newDeps()

		mockTaskRepo.On("GetByID", ctx, taskID).Return(openTask, nil)
		mockTaskRepo.On("GetItem", ctx, taskID, itemID).
			Return(&domain.TaskItem{ID: itemID, TaskID: taskID, Name: "Pay fee"}, nil).Once()
		mockTaskRepo.On("CompleteItem", ctx, taskID, itemID).Return(nil).Once()
		mockTaskRepo.On("OpenItemCount", ctx, taskID).Return(int64(1), nil).Once()
		mockTaskRepo.On("GetItems", ctx, taskID).
			Return([]domain.TaskItem{{Name: "Fill form DS-82"}}, nil).Once()

		_, err := svc.CompleteItem(ctx, userID, taskID, itemID)

		assert.NoError(t, err)
		mockTaskRepo.AssertNotCalled(t, "CompleteTask", mock.Anything, mock.Anything)
	})

	t.Run("Completed Task Rejects Mutation", func(t *testing.T) {
		mockTaskRepo, _, _, svc := newDeps()
		now := openTask.CreatedAt
		done := &domain.Task{ID: taskID, UserID: userID, CompletedAt: &now}

		mockTaskRepo.On("GetByID", ctx, taskID).Return(done, nil).Once()

		_, err := svc.CompleteItem(ctx, userID, taskID, itemID)

		assert.ErrorIs(t, err, task.ErrTaskCompleted)
		mockTaskRepo.AssertNotCalled(t, "CompleteItem", mock.Anything, mock.Anything, mock.Anything)
	})

	t.Run("Foreign Task Hidden", func(t *testing.T) {
		mockTaskRepo, _, _, svc := newDeps()
		other := &domain.Task{ID: taskID, UserID: uuid.New()}

		mockTaskRepo.On("GetByID", ctx, taskID).Return(other, nil).Once()

		_, err := svc.CompleteItem(ctx, userID, taskID, itemID)

		assert.ErrorIs(t, err, task.ErrTaskNotFound)
	})
}

func TestTaskService_RemoveItem(t *testing.T) {
	ctx := context.Background()
	userID := uuid.New()
	taskID := uuid.New()
	itemID := uuid.New()
	openTask := &domain.Task{ID: taskID, UserID: userID, Name: "Renew passport"}

	t.Run("Removing Last Open Item Completes Task", func(t *testing.T) {
		mockTaskRepo, _, mockAuditRepo, svc := newDeps()

		mockTaskRepo.On("GetByID", ctx, taskID).Return(openTask, nil)
		mockTaskRepo.On("GetItem", ctx, taskID, itemID).
			Return(&domain.TaskItem{ID: itemID, TaskID: taskID, Name: "Pay fee"}, nil).Once()
		mockTaskRepo.On("RemoveItem", ctx, taskID, itemID).Return(nil).Once()
		mockTaskRepo.On("OpenItemCount", ctx, taskID).Return(int64(0), nil).Once()
		mockTaskRepo.On("CompleteTask", ctx, taskID).Return(nil).Once()
		mockAuditRepo.On("Create", ctx, mock.Anything).Return(nil).Once()
		mockTaskRepo.On("GetItems", ctx, taskID).Return([]domain.TaskItem{}, nil).Once()

		_, err := svc.RemoveItem(ctx, userID, taskID, itemID)

		assert.NoError(t, err)
		mockTaskRepo.AssertExpectations(t)
	})
}
