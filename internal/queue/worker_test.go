package queue_test

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"citizen-portal/internal/queue"
)

// recordingHandler counts deliveries and fails the first failN calls.
type recordingHandler struct {
	mu    sync.Mutex
	name  string
	calls []uuid.UUID
	failN int
	done  chan struct{}
}

func newRecordingHandler(name string, failN int, expected int) *recordingHandler {
	h := &recordingHandler{name: name, failN: failN}
	if expected > 0 {
		h.done = make(chan struct{}, expected)
	}
	return h
}

func (h *recordingHandler) Name() string { return h.name }

func (h *recordingHandler) Deliver(ctx context.Context, notificationID uuid.UUID) error {
	h.mu.Lock()
	h.calls = append(h.calls, notificationID)
	n := len(h.calls)
	h.mu.Unlock()

	if h.done != nil {
		h.done <- struct{}{}
	}
	if n <= h.failN {
		return errors.New("transient failure")
	}
	return nil
}

func (h *recordingHandler) callCount() int {
	h.mu.Lock()
	defer h.mu.Unlock()
	return len(h.calls)
}

func waitFor(t *testing.T, done chan struct{}, n int) {
	t.Helper()
	for i := 0; i < n; i++ {
		select {
		case <-done:
		case <-time.After(2 * time.Second):
			t.Fatalf("timed out waiting for delivery %d of %d", i+1, n)
		}
	}
}

func TestWorker_ProcessesJobs(t *testing.T) {
	storage := queue.NewMemoryStorage()
	handler := newRecordingHandler("notification:dashboard", 0, 1)

	worker, err := queue.NewWorker(storage, 2, 3, nil)
	require.NoError(t, err)
	require.NoError(t, worker.Register(handler))

	enqueuer, err := queue.NewEnqueuer(storage)
	require.NoError(t, err)

	notifID := uuid.New()
	require.NoError(t, enqueuer.Enqueue(context.Background(), "notification:dashboard", notifID))

	ctx, cancel := context.WithCancel(context.Background())
	go worker.Run(ctx)

	waitFor(t, handler.done, 1)
	cancel()

	assert.Equal(t, 1, handler.callCount())
	assert.Equal(t, notifID, handler.calls[0])
}

func TestWorker_RetriesUntilMaxAttempts(t *testing.T) {
	storage := queue.NewMemoryStorage()
	// Fails every attempt; three attempts allowed.
	handler := newRecordingHandler("notification:email", 100, 3)

	worker, err := queue.NewWorker(storage, 1, 3, nil)
	require.NoError(t, err)
	require.NoError(t, worker.Register(handler))

	enqueuer, err := queue.NewEnqueuer(storage)
	require.NoError(t, err)
	require.NoError(t, enqueuer.Enqueue(context.Background(), "notification:email", uuid.New()))

	ctx, cancel := context.WithCancel(context.Background())
	go worker.Run(ctx)

	waitFor(t, handler.done, 3)
	// Give the worker a beat to prove there is no fourth attempt.
	time.Sleep(100 * time.Millisecond)
	cancel()

	assert.Equal(t, 3, handler.callCount())
	assert.Equal(t, 0, storage.Len())
}

func TestWorker_RecoversAfterTransientFailure(t *testing.T) {
	storage := queue.NewMemoryStorage()
	// Fails once, then succeeds on redelivery.
	handler := newRecordingHandler("notification:text", 1, 2)

	worker, err := queue.NewWorker(storage, 1, 3, nil)
	require.NoError(t, err)
	require.NoError(t, worker.Register(handler))

	enqueuer, err := queue.NewEnqueuer(storage)
	require.NoError(t, err)
	require.NoError(t, enqueuer.Enqueue(context.Background(), "notification:text", uuid.New()))

	ctx, cancel := context.WithCancel(context.Background())
	go worker.Run(ctx)

	waitFor(t, handler.done, 2)
	cancel()

	assert.Equal(t, 2, handler.callCount())
}

func TestWorker_DropsUnknownHandler(t *testing.T) {
	storage := queue.NewMemoryStorage()
	known := newRecordingHandler("notification:dashboard", 0, 1)

	worker, err := queue.NewWorker(storage, 1, 3, nil)
	require.NoError(t, err)
	require.NoError(t, worker.Register(known))

	enqueuer, err := queue.NewEnqueuer(storage)
	require.NoError(t, err)

	// The unknown job is consumed and dropped; the known one still runs.
	require.NoError(t, enqueuer.Enqueue(context.Background(), "notification:carrier-pigeon", uuid.New()))
	require.NoError(t, enqueuer.Enqueue(context.Background(), "notification:dashboard", uuid.New()))

	ctx, cancel := context.WithCancel(context.Background())
	go worker.Run(ctx)

	waitFor(t, known.done, 1)
	cancel()

	assert.Equal(t, 1, known.callCount())
	assert.Equal(t, 0, storage.Len())
}

func TestWorker_Validation(t *testing.T) {
	_, err := queue.NewWorker(nil, 1, 1, nil)
	assert.ErrorIs(t, err, queue.ErrStorageNil)

	_, err = queue.NewEnqueuer(nil)
	assert.ErrorIs(t, err, queue.ErrStorageNil)

	storage := queue.NewMemoryStorage()
	enqueuer, err := queue.NewEnqueuer(storage)
	require.NoError(t, err)
	assert.ErrorIs(t, enqueuer.Enqueue(context.Background(), "", uuid.New()), queue.ErrHandlerNameEmpty)
}

func TestMemoryStorage_FIFO(t *testing.T) {
	storage := queue.NewMemoryStorage()
	ctx := context.Background()

	first := &queue.Job{ID: uuid.New(), Handler: "notification:dashboard", NotificationID: uuid.New()}
	second := &queue.Job{ID: uuid.New(), Handler: "notification:email", NotificationID: uuid.New()}

	require.NoError(t, storage.Push(ctx, first))
	require.NoError(t, storage.Push(ctx, second))

	got, err := storage.Pop(ctx, time.Second)
	require.NoError(t, err)
	assert.Equal(t, first.ID, got.ID)

	got, err = storage.Pop(ctx, time.Second)
	require.NoError(t, err)
	assert.Equal(t, second.ID, got.ID)
}

func TestMemoryStorage_PopTimeout(t *testing.T) {
	storage := queue.NewMemoryStorage()

	start := time.Now()
	job, err := storage.Pop(context.Background(), 50*time.Millisecond)

	assert.NoError(t, err)
	assert.Nil(t, job)
	assert.GreaterOrEqual(t, time.Since(start), 50*time.Millisecond)
}
