package queue

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
)

// Enqueuer submits delivery jobs. Duplicate enqueues for the same
// (handler, notification) pair are accepted without error.
type Enqueuer interface {
	Enqueue(ctx context.Context, handler string, notificationID uuid.UUID) error
}

type enqueuer struct {
	storage Storage
}

func NewEnqueuer(storage Storage) (Enqueuer, error) {
	if storage == nil {
		return nil, ErrStorageNil
	}
	return &enqueuer{storage: storage}, nil
}

func (e *enqueuer) Enqueue(ctx context.Context, handler string, notificationID uuid.UUID) error {
	if handler == "" {
		return ErrHandlerNameEmpty
	}

	job := &Job{
		ID:             uuid.New(),
		Handler:        handler,
		NotificationID: notificationID,
		EnqueuedAt:     time.Now(),
	}

	if err := e.storage.Push(ctx, job); err != nil {
		return fmt.Errorf("enqueue %s job for notification %s: %w", handler, notificationID, err)
	}
	return nil
}
