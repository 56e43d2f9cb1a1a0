package service

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/stemsi/portal-backend/internal/config"
	"github.com/stemsi/portal-backend/internal/model"
)

// RedisResultCache stores result views as JSON with a fixed TTL.
type RedisResultCache struct {
	rdb *redis.Client
	ttl time.Duration
}

// NewRedisResultCache creates a RedisResultCache.
func NewRedisResultCache(rdb *redis.Client, ttl time.Duration) *RedisResultCache {
	return &RedisResultCache{rdb: rdb, ttl: ttl}
}

func (c *RedisResultCache) Get(ctx context.Context, studentID int) (*model.ResultView, error) {
	raw, err := c.rdb.Get(ctx, config.CacheKey.StudentResultsKey(studentID)).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}

	var view model.ResultView
	if err := json.Unmarshal(raw, &view); err != nil {
		return nil, fmt.Errorf("decode cached results: %w", err)
	}
	return &view, nil
}

func (c *RedisResultCache) Set(ctx context.Context, view *model.ResultView) error {
	raw, err := json.Marshal(view)
	if err != nil {
		return fmt.Errorf("encode results: %w", err)
	}
	return c.rdb.Set(ctx, config.CacheKey.StudentResultsKey(view.StudentID), raw, c.ttl).Err()
}

func (c *RedisResultCache) Delete(ctx context.Context, studentID int) error {
	return c.rdb.Del(ctx, config.CacheKey.StudentResultsKey(studentID)).Err()
}
