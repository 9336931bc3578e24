package utils

import (
	"context"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

// NewRedisClient builds a pooled Redis client. url may be a redis:// URL or
// a bare host:port. No connection is made until the first command, so
// commands that never touch Redis run without it.
func NewRedisClient(url string, poolSize int) *redis.Client {
	opts, err := redis.ParseURL(url)
	if err != nil {
		// Fall back to simple connection
		opts = &redis.Options{
			Addr: url,
		}
	}

	if poolSize > 0 {
		opts.PoolSize = poolSize
	}
	opts.MaxRetries = 3

	return redis.NewClient(opts)
}

// RedisHealthCheck performs a health check on Redis connection
func RedisHealthCheck(ctx context.Context, client redis.Cmdable) error {
	ctx, cancel := context.WithTimeout(ctx, 2*time.Second)
	defer cancel()

	if err := client.Ping(ctx).Err(); err != nil {
		return fmt.Errorf("redis health check failed: %w", err)
	}

	return nil
}
