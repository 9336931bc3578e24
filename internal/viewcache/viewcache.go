// Package viewcache stores rendered page view models in Redis keyed by page
// path. Invalidating a path forces the next render to hit the database.
package viewcache

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/redis/go-redis/v9"
)

const keyPrefix = "view:"

type Cache struct {
	redis redis.Cmdable
	ttl   time.Duration
}

func New(client redis.Cmdable, ttl time.Duration) *Cache {
	return &Cache{redis: client, ttl: ttl}
}

func Key(path string) string {
	return keyPrefix + path
}

// Get decodes a cached view into dst. A miss or a Redis failure reports false;
// callers fall back to rendering from the database.
func (c *Cache) Get(ctx context.Context, path string, dst any) bool {
	if c == nil || c.redis == nil {
		return false
	}
	raw, err := c.redis.Get(ctx, Key(path)).Result()
	if err != nil {
		if !errors.Is(err, redis.Nil) {
			slog.Warn("view cache read failed", "path", path, "error", err)
		}
		return false
	}
	if err := json.Unmarshal([]byte(raw), dst); err != nil {
		slog.Warn("view cache entry corrupt", "path", path, "error", err)
		return false
	}
	return true
}

func (c *Cache) Set(ctx context.Context, path string, view any) error {
	if c == nil || c.redis == nil {
		return nil
	}
	data, err := json.Marshal(view)
	if err != nil {
		return fmt.Errorf("encode view %s: %w", path, err)
	}
	if err := c.redis.Set(ctx, Key(path), string(data), c.ttl).Err(); err != nil {
		return fmt.Errorf("cache view %s: %w", path, err)
	}
	return nil
}

// Invalidate drops the cached views for the given paths.
func (c *Cache) Invalidate(ctx context.Context, paths ...string) error {
	if c == nil || c.redis == nil || len(paths) == 0 {
		return nil
	}
	keys := make([]string, len(paths))
	for i, p := range paths {
		keys[i] = Key(p)
	}
	if err := c.redis.Del(ctx, keys...).Err(); err != nil {
		return fmt.Errorf("invalidate views: %w", err)
	}
	return nil
}
