// Package queue is a small at-least-once job runner for notification
// delivery. Jobs carry a handler name and a notification id; a worker
// pool executes them asynchronously and independently of the caller
// that enqueued them. Once enqueued a job cannot be cancelled: it runs
// to completion or exhausts its attempts.
package queue

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
)

var (
	ErrStorageNil       = errors.New("queue: storage is nil")
	ErrHandlerUnknown   = errors.New("queue: no handler registered for job")
	ErrHandlerNameEmpty = errors.New("queue: handler name is empty")
)

// Job is one unit of work: deliver one notification over one channel.
type Job struct {
	ID             uuid.UUID `json:"id"`
	Handler        string    `json:"handler"`
	NotificationID uuid.UUID `json:"notification_id"`
	Attempts       int       `json:"attempts"`
	EnqueuedAt     time.Time `json:"enqueued_at"`
}

// Handler executes one delivery channel. Implementations must tolerate
// repeated execution for the same notification id.
type Handler interface {
	Name() string
	Deliver(ctx context.Context, notificationID uuid.UUID) error
}

// Storage is the durable job list backing the runner.
type Storage interface {
	Push(ctx context.Context, job *Job) error
	// Pop blocks up to timeout for the next job; (nil, nil) on timeout.
	Pop(ctx context.Context, timeout time.Duration) (*Job, error)
}
