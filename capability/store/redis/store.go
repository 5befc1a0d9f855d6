// Package redis implements vm.StoreCapability on top of a Redis connection,
// for deployments that need the store capability's state to survive a
// process restart (spec §4.5's default in-memory store is for local/test
// use only).
package redis

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/redis/go-redis/v9"
)

// Store is a Redis-backed vm.StoreCapability. It mirrors the thin-wrapper
// layering the teacher uses for its own Redis-backed client (callers build
// a *redis.Client and pass it to New, receiving an interface scoped to
// just the operations the caller needs) rather than owning connection
// lifecycle itself.
type Store struct {
	client *redis.Client
	prefix string
}

// Options configures a Store.
type Options struct {
	// Redis is the connection used to back the store. Required.
	Redis *redis.Client
	// KeyPrefix is prepended to every key, so one Redis instance can be
	// shared across unrelated TJS deployments without key collisions.
	KeyPrefix string
}

// New returns a Store backed by opts.Redis.
func New(opts Options) (*Store, error) {
	if opts.Redis == nil {
		return nil, errors.New("redis: Options.Redis is required")
	}
	return &Store{client: opts.Redis, prefix: opts.KeyPrefix}, nil
}

func (s *Store) key(k string) string {
	return s.prefix + k
}

// Get implements vm.StoreCapability.
func (s *Store) Get(ctx context.Context, key string) (any, bool, error) {
	raw, err := s.client.Get(ctx, s.key(key)).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, fmt.Errorf("redis get %q: %w", key, err)
	}
	var v any
	if err := json.Unmarshal(raw, &v); err != nil {
		return nil, false, fmt.Errorf("redis get %q: decode: %w", key, err)
	}
	return v, true, nil
}

// Set implements vm.StoreCapability.
func (s *Store) Set(ctx context.Context, key string, value any) error {
	raw, err := json.Marshal(value)
	if err != nil {
		return fmt.Errorf("redis set %q: encode: %w", key, err)
	}
	if err := s.client.Set(ctx, s.key(key), raw, 0).Err(); err != nil {
		return fmt.Errorf("redis set %q: %w", key, err)
	}
	return nil
}

// Delete implements vm.StoreCapability.
func (s *Store) Delete(ctx context.Context, key string) error {
	if err := s.client.Del(ctx, s.key(key)).Err(); err != nil {
		return fmt.Errorf("redis delete %q: %w", key, err)
	}
	return nil
}
