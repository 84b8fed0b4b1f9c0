package storage

import (
	"context"
	"fmt"
	"time"

	"github.com/angelmondragon/luxe-storefront/pkg/redis"
)

// RedisClient is the subset of pkg/redis.Client the store needs.
type RedisClient interface {
	Get(ctx context.Context, key string) (string, error)
	Set(ctx context.Context, key string, value any, ttl time.Duration) error
	Del(ctx context.Context, keys ...string) error
	Ping(ctx context.Context) error
	StorageKey(visitorID, key string) string
}

// RedisStore keeps each visitor entry under its own namespaced redis key.
type RedisStore struct {
	client RedisClient
	ttl    time.Duration
}

// NewRedisStore builds a store; ttl of zero keeps entries without expiry.
func NewRedisStore(client RedisClient, ttl time.Duration) *RedisStore {
	return &RedisStore{client: client, ttl: ttl}
}

func (s *RedisStore) Get(ctx context.Context, visitorID, key string) ([]byte, error) {
	if err := validateScope(visitorID, key); err != nil {
		return nil, err
	}
	value, err := s.client.Get(ctx, s.client.StorageKey(visitorID, key))
	if err != nil {
		if redis.IsNil(err) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("redis get %s: %w", key, err)
	}
	return []byte(value), nil
}

func (s *RedisStore) Set(ctx context.Context, visitorID, key string, value []byte) error {
	if err := validateScope(visitorID, key); err != nil {
		return err
	}
	if err := s.client.Set(ctx, s.client.StorageKey(visitorID, key), string(value), s.ttl); err != nil {
		return fmt.Errorf("redis set %s: %w", key, err)
	}
	return nil
}

func (s *RedisStore) Delete(ctx context.Context, visitorID, key string) error {
	if err := validateScope(visitorID, key); err != nil {
		return err
	}
	if err := s.client.Del(ctx, s.client.StorageKey(visitorID, key)); err != nil {
		return fmt.Errorf("redis del %s: %w", key, err)
	}
	return nil
}

func (s *RedisStore) Ping(ctx context.Context) error {
	return s.client.Ping(ctx)
}
