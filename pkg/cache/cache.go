package cache

import (
	"context"
	"encoding/json"
	"errors"
	"time"
)

var (
	ErrCacheMiss = errors.New("cache: key not found")
)

// Service defines cache operations interface.
type Service interface {
	Set(ctx context.Context, key string, value interface{}, expiration time.Duration) error
	Get(ctx context.Context, key string, dest interface{}) error
	Delete(ctx context.Context, keys ...string) error
	DeleteByPattern(ctx context.Context, pattern string) error
	Exists(ctx context.Context, keys ...string) (bool, error)
}

// Remember returns the cached value for key, or fills the cache from fetch on
// a miss. Values are stored as JSON strings so every Service backend handles
// them. Fetch errors are returned as-is; cache write errors are swallowed so a
// broken cache degrades to pass-through.
func Remember[T any](ctx context.Context, c Service, key string, ttl time.Duration, fetch func(context.Context) (T, error)) (T, error) {
	var raw string
	if err := c.Get(ctx, key, &raw); err == nil {
		var cached T
		if err := json.Unmarshal([]byte(raw), &cached); err == nil {
			return cached, nil
		}
	}

	fresh, err := fetch(ctx)
	if err != nil {
		return fresh, err
	}
	if data, err := json.Marshal(fresh); err == nil {
		_ = c.Set(ctx, key, string(data), ttl)
	}
	return fresh, nil
}
