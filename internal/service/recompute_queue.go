package service

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/stemsi/portal-backend/internal/config"
)

// RecomputeQueue schedules a student's results snapshot to be rebuilt.
type RecomputeQueue interface {
	Enqueue(ctx context.Context, studentID int) error
}

// RecomputePayload is the queue message consumed by the snapshot worker.
type RecomputePayload struct {
	StudentID int `json:"student_id"`
}

// RedisRecomputeQueue pushes payloads onto a Redis list.
type RedisRecomputeQueue struct {
	rdb *redis.Client
}

// NewRedisRecomputeQueue creates a RedisRecomputeQueue.
func NewRedisRecomputeQueue(rdb *redis.Client) *RedisRecomputeQueue {
	return &RedisRecomputeQueue{rdb: rdb}
}

// Enqueue appends a rebuild request for studentID.
func (q *RedisRecomputeQueue) Enqueue(ctx context.Context, studentID int) error {
	raw, err := json.Marshal(RecomputePayload{StudentID: studentID})
	if err != nil {
		return err
	}
	return q.rdb.RPush(ctx, config.WorkerKey.RecomputeResultsQueue, raw).Err()
}

// Pop blocks up to timeout for the next student id. ok is false when the
// queue stayed empty.
func (q *RedisRecomputeQueue) Pop(ctx context.Context, timeout time.Duration) (studentID int, ok bool, err error) {
	item, err := q.rdb.BLPop(ctx, timeout, config.WorkerKey.RecomputeResultsQueue).Result()
	if errors.Is(err, redis.Nil) {
		return 0, false, nil
	}
	if err != nil {
		return 0, false, err
	}
	if len(item) < 2 {
		return 0, false, nil
	}

	var p RecomputePayload
	if err := json.Unmarshal([]byte(item[1]), &p); err != nil {
		return 0, false, fmt.Errorf("decode recompute payload: %w", err)
	}
	return p.StudentID, true, nil
}

// Len reports how many rebuilds are waiting.
func (q *RedisRecomputeQueue) Len(ctx context.Context) (int64, error) {
	return q.rdb.LLen(ctx, config.WorkerKey.RecomputeResultsQueue).Result()
}
