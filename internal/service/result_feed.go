package service

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/redis/go-redis/v9"
	"github.com/stemsi/portal-backend/internal/config"
	"github.com/stemsi/portal-backend/internal/model"
)

// ResultFeed delivers freshly computed result views to live clients.
type ResultFeed interface {
	Publish(ctx context.Context, view *model.ResultView) error
	// Subscribe yields JSON-encoded views until ctx is done, then closes
	// the channel.
	Subscribe(ctx context.Context, studentID int) (<-chan []byte, error)
}

// RedisResultFeed fans updates out over Redis PubSub, one channel per student.
type RedisResultFeed struct {
	rdb *redis.Client
}

// NewRedisResultFeed creates a RedisResultFeed.
func NewRedisResultFeed(rdb *redis.Client) *RedisResultFeed {
	return &RedisResultFeed{rdb: rdb}
}

func (f *RedisResultFeed) Publish(ctx context.Context, view *model.ResultView) error {
	raw, err := json.Marshal(view)
	if err != nil {
		return fmt.Errorf("encode results: %w", err)
	}
	return f.rdb.Publish(ctx, config.CacheKey.StudentResultsChannel(view.StudentID), raw).Err()
}

func (f *RedisResultFeed) Subscribe(ctx context.Context, studentID int) (<-chan []byte, error) {
	ps := f.rdb.Subscribe(ctx, config.CacheKey.StudentResultsChannel(studentID))
	if _, err := ps.Receive(ctx); err != nil {
		_ = ps.Close()
		return nil, fmt.Errorf("subscribe results: %w", err)
	}

	out := make(chan []byte)
	go func() {
		defer close(out)
		defer ps.Close()

		msgs := ps.Channel()
		for {
			select {
			case <-ctx.Done():
				return
			case msg, ok := <-msgs:
				if !ok {
					return
				}
				select {
				case out <- []byte(msg.Payload):
				case <-ctx.Done():
					return
				}
			}
		}
	}()
	return out, nil
}
