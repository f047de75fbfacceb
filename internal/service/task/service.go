package task

import (
	"context"
	"errors"
	"log/slog"

	"github.com/google/uuid"

	"citizen-portal/internal/domain"
	"citizen-portal/internal/repository"
)

var (
	ErrTaskNotFound     = errors.New("task not found")
	ErrTaskItemNotFound = errors.New("task item not found")
	ErrTaskCompleted    = errors.New("task is already completed")
	ErrNameRequired     = errors.New("name is required")
	ErrAppNotFound      = errors.New("app not found")
)

type Service interface {
	Create(ctx context.Context, userID uuid.UUID, input domain.CreateTaskInput) (*domain.TaskWithItems, error)
	Get(ctx context.Context, userID, taskID uuid.UUID) (*domain.TaskWithItems, error)
	List(ctx context.Context, userID uuid.UUID, params domain.PaginationParams) (domain.PaginatedResponse[domain.Task], error)
	CompleteItem(ctx context.Context, userID, taskID, itemID uuid.UUID) (*domain.TaskWithItems, error)
	CompleteAll(ctx context.Context, userID, taskID uuid.UUID) (*domain.TaskWithItems, error)
	RemoveItem(ctx context.Context, userID, taskID, itemID uuid.UUID) (*domain.TaskWithItems, error)
}

type service struct {
	taskRepo  repository.TaskRepository
	appRepo   repository.AppRepository
	auditRepo repository.AuditLogRepository
	logger    *slog.Logger
}

func NewService(
	taskRepo repository.TaskRepository,
	appRepo repository.AppRepository,
	auditRepo repository.AuditLogRepository,
	logger *slog.Logger,
) Service {
	if logger == nil {
		logger = slog.Default()
	}
	return &service{
		taskRepo:  taskRepo,
		appRepo:   appRepo,
		auditRepo: auditRepo,
		logger:    logger,
	}
}

func (s *service) Create(ctx context.Context, userID uuid.UUID, input domain.CreateTaskInput) (*domain.TaskWithItems, error) {
	if input.Name == "" {
		return nil, ErrNameRequired
	}
	for _, item := range input.Items {
		if item.Name == "" {
			return nil, ErrNameRequired
		}
	}

	if input.AppID != nil {
		app, err := s.appRepo.GetByID(ctx, *input.AppID)
		if err != nil {
			return nil, err
		}
		if app == nil {
			return nil, ErrAppNotFound
		}
	}

	task := &domain.Task{
		ID:     uuid.New(),
		UserID: userID,
		AppID:  input.AppID,
		Name:   input.Name,
	}
	items := make([]domain.TaskItem, 0, len(input.Items))
	for _, in := range input.Items {
		items = append(items, domain.TaskItem{
			ID:      uuid.New(),
			TaskID:  task.ID,
			Name:    in.Name,
			FormKey: in.FormKey,
		})
	}

	if err := s.taskRepo.Create(ctx, task, items); err != nil {
		return nil, err
	}

	return s.Get(ctx, userID, task.ID)
}

func (s *service) Get(ctx context.Context, userID, taskID uuid.UUID) (*domain.TaskWithItems, error) {
	task, err := s.loadOwned(ctx, userID, taskID)
	if err != nil {
		return nil, err
	}

	items, err := s.taskRepo.GetItems(ctx, taskID)
	if err != nil {
		return nil, err
	}

	detail := &domain.TaskWithItems{Task: *task, Items: items}
	if task.AppID != nil {
		app, err := s.appRepo.GetByID(ctx, *task.AppID)
		if err != nil {
			return nil, err
		}
		if app != nil {
			detail.AppName = &app.Name
		}
	}
	return detail, nil
}

func (s *service) List(ctx context.Context, userID uuid.UUID, params domain.PaginationParams) (domain.PaginatedResponse[domain.Task], error) {
	tasks, total, err := s.taskRepo.ListByUser(ctx, userID, params)
	if err != nil {
		return domain.PaginatedResponse[domain.Task]{}, err
	}
	return domain.NewPaginatedResponse(tasks, params.Page, params.PageSize, total), nil
}

func (s *service) CompleteItem(ctx context.Context, userID, taskID, itemID uuid.UUID) (*domain.TaskWithItems, error) {
	task, err := s.loadOwned(ctx, userID, taskID)
	if err != nil {
		return nil, err
	}
	if task.IsCompleted() {
		return nil, ErrTaskCompleted
	}

	item, err := s.taskRepo.GetItem(ctx, taskID, itemID)
	if err != nil {
		return nil, err
	}
	if item == nil {
		return nil, ErrTaskItemNotFound
	}

	if !item.IsCompleted() {
		if err := s.taskRepo.CompleteItem(ctx, taskID, itemID); err != nil {
			return nil, err
		}
	}

	if err := s.finishIfDone(ctx, userID, taskID); err != nil {
		return nil, err
	}
	return s.Get(ctx, userID, taskID)
}

func (s *service) CompleteAll(ctx context.Context, userID, taskID uuid.UUID) (*domain.TaskWithItems, error) {
	task, err := s.loadOwned(ctx, userID, taskID)
	if err != nil {
		return nil, err
	}
	if task.IsCompleted() {
		return nil, ErrTaskCompleted
	}

	if err := s.taskRepo.CompleteAllItems(ctx, taskID); err != nil {
		return nil, err
	}
	if err := s.completeTask(ctx, userID, taskID); err != nil {
		return nil, err
	}
	return s.Get(ctx, userID, taskID)
}

func (s *service) RemoveItem(ctx context.Context, userID, taskID, itemID uuid.UUID) (*domain.TaskWithItems, error) {
	task, err := s.loadOwned(ctx, userID, taskID)
	if err != nil {
		return nil, err
	}
	if task.IsCompleted() {
		return nil, ErrTaskCompleted
	}

	item, err := s.taskRepo.GetItem(ctx, taskID, itemID)
	if err != nil {
		return nil, err
	}
	if item == nil {
		return nil, ErrTaskItemNotFound
	}

	if err := s.taskRepo.RemoveItem(ctx, taskID, itemID); err != nil {
		return nil, err
	}

	// Dropping the last open item can finish the task.
	if err := s.finishIfDone(ctx, userID, taskID); err != nil {
		return nil, err
	}
	return s.Get(ctx, userID, taskID)
}

func (s *service) loadOwned(ctx context.Context, userID, taskID uuid.UUID) (*domain.Task, error) {
	task, err := s.taskRepo.GetByID(ctx, taskID)
	if err != nil {
		return nil, err
	}
	if task == nil || task.UserID != userID {
		return nil, ErrTaskNotFound
	}
	return task, nil
}

// finishIfDone marks the task completed once no open items remain. A
// task with no items at all counts as done.
func (s *service) finishIfDone(ctx context.Context, userID, taskID uuid.UUID) error {
	open, err := s.taskRepo.OpenItemCount(ctx, taskID)
	if err != nil {
		return err
	}
	if open > 0 {
		return nil
	}
	return s.completeTask(ctx, userID, taskID)
}

func (s *service) completeTask(ctx context.Context, userID, taskID uuid.UUID) error {
	if err := s.taskRepo.CompleteTask(ctx, taskID); err != nil {
		return err
	}
	if err := repository.RecordAudit(ctx, s.auditRepo, domain.CreateAuditLogInput{
		UserID:     userID,
		Action:     "COMPLETE",
		EntityType: "TASK",
		EntityID:   taskID,
	}); err != nil {
		s.logger.Warn("failed to record audit log", slog.Any("error", err))
	}
	return nil
}
