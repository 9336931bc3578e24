// Package kv persists small per-user JSON blobs such as saved message
// templates and export settings.
package kv

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/redis/go-redis/v9"
)

const (
	TemplatesKey   = "WA_TEMPLATES"
	PDFSettingsKey = "RIC_PDF_SETTINGS"
)

type Store interface {
	// Get decodes the stored value into dst. It reports false when nothing is stored.
	Get(ctx context.Context, userID, name string, dst any) (bool, error)
	Set(ctx context.Context, userID, name string, value any) error
	Clear(ctx context.Context, userID, name string) error
}

type RedisStore struct {
	redis redis.Cmdable
}

func NewRedisStore(client redis.Cmdable) *RedisStore {
	return &RedisStore{redis: client}
}

func UserKey(userID, name string) string {
	return fmt.Sprintf("prefs:%s:%s", userID, name)
}

func (s *RedisStore) Get(ctx context.Context, userID, name string, dst any) (bool, error) {
	raw, err := s.redis.Get(ctx, UserKey(userID, name)).Result()
	if errors.Is(err, redis.Nil) {
		return false, nil
	}
	if err != nil {
		return false, fmt.Errorf("kv get %s: %w", name, err)
	}
	if err := json.Unmarshal([]byte(raw), dst); err != nil {
		return false, fmt.Errorf("kv decode %s: %w", name, err)
	}
	return true, nil
}

func (s *RedisStore) Set(ctx context.Context, userID, name string, value any) error {
	data, err := json.Marshal(value)
	if err != nil {
		return fmt.Errorf("kv encode %s: %w", name, err)
	}
	if err := s.redis.Set(ctx, UserKey(userID, name), string(data), 0).Err(); err != nil {
		return fmt.Errorf("kv set %s: %w", name, err)
	}
	return nil
}

func (s *RedisStore) Clear(ctx context.Context, userID, name string) error {
	if err := s.redis.Del(ctx, UserKey(userID, name)).Err(); err != nil {
		return fmt.Errorf("kv clear %s: %w", name, err)
	}
	return nil
}
