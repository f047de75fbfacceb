package domain

import (
	"time"

	"github.com/google/uuid"
)

type Task struct {
	ID          uuid.UUID  `json:"id" db:"task_id"`
	UserID      uuid.UUID  `json:"user_id" db:"user_id"`
	AppID       *uuid.UUID `json:"app_id,omitempty" db:"app_id"`
	Name        string     `json:"name" db:"name"`
	CompletedAt *time.Time `json:"completed_at,omitempty" db:"completed_at"`
	CreatedAt   time.Time  `json:"created_at" db:"created_at"`
	UpdatedAt   time.Time  `json:"updated_at" db:"updated_at"`
}

type TaskItem struct {
	ID          uuid.UUID  `json:"id" db:"item_id"`
	TaskID      uuid.UUID  `json:"task_id" db:"task_id"`
	Name        string     `json:"name" db:"name"`
	FormKey     *string    `json:"form_key,omitempty" db:"form_key"`
	CompletedAt *time.Time `json:"completed_at,omitempty" db:"completed_at"`
	CreatedAt   time.Time  `json:"created_at" db:"created_at"`
}

// TaskWithItems is the detail view: the task plus its checklist.
type TaskWithItems struct {
	Task    Task       `json:"task"`
	AppName *string    `json:"app_name,omitempty"`
	Items   []TaskItem `json:"items"`
}

func (t *Task) IsCompleted() bool {
	return t.CompletedAt != nil
}

func (i *TaskItem) IsCompleted() bool {
	return i.CompletedAt != nil
}

// CompletedItemCount counts finished checklist items.
func (tw *TaskWithItems) CompletedItemCount() int {
	n := 0
	for _, item := range tw.Items {
		if item.IsCompleted() {
			n++
		}
	}
	return n
}

type CreateTaskInput struct {
	AppID *uuid.UUID            `json:"app_id,omitempty"`
	Name  string                `json:"name" validate:"required"`
	Items []CreateTaskItemInput `json:"items"`
}

type CreateTaskItemInput struct {
	Name    string  `json:"name" validate:"required"`
	FormKey *string `json:"form_key,omitempty"`
}
