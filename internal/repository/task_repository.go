package repository

import (
	"context"
	"database/sql"
	"errors"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"

	"citizen-portal/internal/domain"
)

type TaskRepository interface {
	Create(ctx context.Context, task *domain.Task, items []domain.TaskItem) error
	GetByID(ctx context.Context, id uuid.UUID) (*domain.Task, error)
	GetItems(ctx context.Context, taskID uuid.UUID) ([]domain.TaskItem, error)
	GetItem(ctx context.Context, taskID, itemID uuid.UUID) (*domain.TaskItem, error)
	ListByUser(ctx context.Context, userID uuid.UUID, params domain.PaginationParams) ([]domain.Task, int64, error)
	CompleteItem(ctx context.Context, taskID, itemID uuid.UUID) error
	CompleteAllItems(ctx context.Context, taskID uuid.UUID) error
	RemoveItem(ctx context.Context, taskID, itemID uuid.UUID) error
	SetItemFormKey(ctx context.Context, taskID, itemID uuid.UUID, formKey string) error
	CompleteTask(ctx context.Context, taskID uuid.UUID) error
	OpenItemCount(ctx context.Context, taskID uuid.UUID) (int64, error)
}

type taskRepository struct {
	db *sqlx.DB
}

func NewTaskRepository(db *sqlx.DB) TaskRepository {
	return &taskRepository{db: db}
}

func (r *taskRepository) Create(ctx context.Context, task *domain.Task, items []domain.TaskItem) error {
	tx, err := r.db.BeginTxx(ctx, nil)
	if err != nil {
		return err
	}
	defer tx.Rollback()

	taskQuery := `
		INSERT INTO tasks (task_id, user_id, app_id, name)
		VALUES ($1, $2, $3, $4)
		RETURNING created_at, updated_at`

	if err := tx.QueryRowxContext(ctx, taskQuery,
		task.ID, task.UserID, task.AppID, task.Name,
	).Scan(&task.CreatedAt, &task.UpdatedAt); err != nil {
		return err
	}

	itemQuery := `
		INSERT INTO task_items (item_id, task_id, name, form_key)
		VALUES ($1, $2, $3, $4)
		RETURNING created_at`
	for i := range items {
		if err := tx.QueryRowxContext(ctx, itemQuery,
			items[i].ID, task.ID, items[i].Name, items[i].FormKey,
		).Scan(&items[i].CreatedAt); err != nil {
			return err
		}
	}

	return tx.Commit()
}

func (r *taskRepository) GetByID(ctx context.Context, id uuid.UUID) (*domain.Task, error) {
	var task domain.Task
	query := `SELECT * FROM tasks WHERE task_id = $1`

	err := r.db.GetContext(ctx, &task, query, id)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &task, nil
}

func (r *taskRepository) GetItems(ctx context.Context, taskID uuid.UUID) ([]domain.TaskItem, error) {
	var items []domain.TaskItem
	query := `SELECT * FROM task_items WHERE task_id = $1 ORDER BY created_at ASC`

	err := r.db.SelectContext(ctx, &items, query, taskID)
	return items, err
}

func (r *taskRepository) GetItem(ctx context.Context, taskID, itemID uuid.UUID) (*domain.TaskItem, error) {
	var item domain.TaskItem
	query := `SELECT * FROM task_items WHERE item_id = $1 AND task_id = $2`

	err := r.db.GetContext(ctx, &item, query, itemID, taskID)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &item, nil
}

func (r *taskRepository) ListByUser(ctx context.Context, userID uuid.UUID, params domain.PaginationParams) ([]domain.Task, int64, error) {
	params.Validate()

	var total int64
	countQuery := `SELECT COUNT(*) FROM tasks WHERE user_id = $1`
	if err := r.db.GetContext(ctx, &total, countQuery, userID); err != nil {
		return nil, 0, err
	}

	query := `
		SELECT * FROM tasks
		WHERE user_id = $1
		ORDER BY created_at DESC
		LIMIT $2 OFFSET $3`

	var tasks []domain.Task
	err := r.db.SelectContext(ctx, &tasks, query, userID, params.PageSize, params.Offset())
	return tasks, total, err
}

func (r *taskRepository) CompleteItem(ctx context.Context, taskID, itemID uuid.UUID) error {
	query := `
		UPDATE task_items SET completed_at = NOW()
		WHERE item_id = $1 AND task_id = $2 AND completed_at IS NULL`
	_, err := r.db.ExecContext(ctx, query, itemID, taskID)
	return err
}

func (r *taskRepository) CompleteAllItems(ctx context.Context, taskID uuid.UUID) error {
	query := `
		UPDATE task_items SET completed_at = NOW()
		WHERE task_id = $1 AND completed_at IS NULL`
	_, err := r.db.ExecContext(ctx, query, taskID)
	return err
}

func (r *taskRepository) RemoveItem(ctx context.Context, taskID, itemID uuid.UUID) error {
	query := `DELETE FROM task_items WHERE item_id = $1 AND task_id = $2`
	_, err := r.db.ExecContext(ctx, query, itemID, taskID)
	return err
}

func (r *taskRepository) SetItemFormKey(ctx context.Context, taskID, itemID uuid.UUID, formKey string) error {
	query := `
		UPDATE task_items SET form_key = $1
		WHERE item_id = $2 AND task_id = $3`
	_, err := r.db.ExecContext(ctx, query, formKey, itemID, taskID)
	return err
}

func (r *taskRepository) CompleteTask(ctx context.Context, taskID uuid.UUID) error {
	query := `
		UPDATE tasks SET completed_at = NOW(), updated_at = NOW()
		WHERE task_id = $1 AND completed_at IS NULL`
	_, err := r.db.ExecContext(ctx, query, taskID)
	return err
}

func (r *taskRepository) OpenItemCount(ctx context.Context, taskID uuid.UUID) (int64, error) {
	var count int64
	query := `SELECT COUNT(*) FROM task_items WHERE task_id = $1 AND completed_at IS NULL`
	err := r.db.GetContext(ctx, &count, query, taskID)
	return count, err
}
