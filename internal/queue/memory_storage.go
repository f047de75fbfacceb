package queue

import (
	"context"
	"sync"
	"time"
)

// MemoryStorage is an in-process Storage for tests and local runs
// without Redis. Jobs do not survive a restart.
type MemoryStorage struct {
	mu     sync.Mutex
	jobs   []*Job
	signal chan struct{}
}

func NewMemoryStorage() *MemoryStorage {
	return &MemoryStorage{
		signal: make(chan struct{}, 1),
	}
}

func (s *MemoryStorage) Push(ctx context.Context, job *Job) error {
	s.mu.Lock()
	s.jobs = append(s.jobs, job)
	s.mu.Unlock()

	select {
	case s.signal <- struct{}{}:
	default:
	}
	return nil
}

func (s *MemoryStorage) Pop(ctx context.Context, timeout time.Duration) (*Job, error) {
	deadline := time.NewTimer(timeout)
	defer deadline.Stop()

	for {
		if job := s.take(); job != nil {
			return job, nil
		}

		select {
		case <-ctx.Done():
			return nil, ctx.Err()
		case <-deadline.C:
			return nil, nil
		case <-s.signal:
		}
	}
}

// Len reports the number of queued jobs.
func (s *MemoryStorage) Len() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.jobs)
}

func (s *MemoryStorage) take() *Job {
	s.mu.Lock()
	defer s.mu.Unlock()

	if len(s.jobs) == 0 {
		return nil
	}
	job := s.jobs[0]
	s.jobs = s.jobs[1:]
	return job
}
