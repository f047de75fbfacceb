package queue

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

// RedisStorage keeps jobs in a Redis list. LPUSH/BRPOP gives FIFO
// order and lets any number of worker processes share one queue.
type RedisStorage struct {
	client *redis.Client
	key    string
}

func NewRedisStorage(client *redis.Client, queueName string) *RedisStorage {
	return &RedisStorage{
		client: client,
		key:    "queue:" + queueName,
	}
}

func (s *RedisStorage) Push(ctx context.Context, job *Job) error {
	payload, err := json.Marshal(job)
	if err != nil {
		return fmt.Errorf("marshal job: %w", err)
	}
	return s.client.LPush(ctx, s.key, payload).Err()
}

func (s *RedisStorage) Pop(ctx context.Context, timeout time.Duration) (*Job, error) {
	result, err := s.client.BRPop(ctx, timeout, s.key).Result()
	if errors.Is(err, redis.Nil) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	// BRPop returns [key, value].
	if len(result) != 2 {
		return nil, fmt.Errorf("unexpected BRPOP reply length %d", len(result))
	}

	var job Job
	if err := json.Unmarshal([]byte(result[1]), &job); err != nil {
		return nil, fmt.Errorf("unmarshal job: %w", err)
	}
	return &job, nil
}
