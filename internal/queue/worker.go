package queue

import (
	"context"
	"log/slog"
	"sync"
	"time"
)

const popTimeout = 5 * time.Second

// Worker pulls jobs from storage and runs them on a bounded pool.
// Failed jobs are requeued until MaxAttempts, then dropped with an
// error log; the enqueuing caller never sees execution failures.
type Worker struct {
	storage     Storage
	handlers    map[string]Handler
	concurrency int
	maxAttempts int
	logger      *slog.Logger

	wg sync.WaitGroup
}

func NewWorker(storage Storage, concurrency, maxAttempts int, logger *slog.Logger) (*Worker, error) {
	if storage == nil {
		return nil, ErrStorageNil
	}
	if concurrency < 1 {
		concurrency = 1
	}
	if maxAttempts < 1 {
		maxAttempts = 1
	}
	if logger == nil {
		logger = slog.Default()
	}

	return &Worker{
		storage:     storage,
		handlers:    make(map[string]Handler),
		concurrency: concurrency,
		maxAttempts: maxAttempts,
		logger:      logger,
	}, nil
}

func (w *Worker) Register(handlers ...Handler) error {
	for _, h := range handlers {
		if h.Name() == "" {
			return ErrHandlerNameEmpty
		}
		w.handlers[h.Name()] = h
	}
	return nil
}

// Run blocks until ctx is cancelled, then waits for in-flight jobs.
func (w *Worker) Run(ctx context.Context) error {
	sem := make(chan struct{}, w.concurrency)

	for {
		select {
		case <-ctx.Done():
			w.wg.Wait()
			return ctx.Err()
		default:
		}

		job, err := w.storage.Pop(ctx, popTimeout)
		if err != nil {
			if ctx.Err() != nil {
				w.wg.Wait()
				return ctx.Err()
			}
			w.logger.Error("failed to pop job", slog.Any("error", err))
			continue
		}
		if job == nil {
			continue
		}

		sem <- struct{}{}
		w.wg.Add(1)
		go func(job *Job) {
			defer func() {
				<-sem
				w.wg.Done()
			}()
			w.process(ctx, job)
		}(job)
	}
}

func (w *Worker) process(ctx context.Context, job *Job) {
	handler, ok := w.handlers[job.Handler]
	if !ok {
		w.logger.Error("dropping job with unknown handler",
			slog.String("handler", job.Handler),
			slog.String("job_id", job.ID.String()),
		)
		return
	}

	job.Attempts++
	if err := handler.Deliver(ctx, job.NotificationID); err != nil {
		if job.Attempts < w.maxAttempts {
			w.logger.Warn("job failed, requeueing",
				slog.String("handler", job.Handler),
				slog.String("notification_id", job.NotificationID.String()),
				slog.Int("attempts", job.Attempts),
				slog.Any("error", err),
			)
			if pushErr := w.storage.Push(ctx, job); pushErr != nil {
				w.logger.Error("failed to requeue job",
					slog.String("job_id", job.ID.String()),
					slog.Any("error", pushErr),
				)
			}
			return
		}

		w.logger.Error("job failed permanently",
			slog.String("handler", job.Handler),
			slog.String("notification_id", job.NotificationID.String()),
			slog.Int("attempts", job.Attempts),
			slog.Any("error", err),
		)
		return
	}

	w.logger.Info("job completed",
		slog.String("handler", job.Handler),
		slog.String("notification_id", job.NotificationID.String()),
	)
}
