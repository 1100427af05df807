package storage

import (
	"context"
	"fmt"

	"github.com/redis/go-redis/v9"

	"github.com/clinicdesk/backend/internal/domain/providers"
	redisclient "github.com/clinicdesk/backend/internal/infrastructure/clients/redis"
)

// RedisStore implements the KeyValueStore interface using Redis
type RedisStore struct {
	client *redisclient.Client
}

// NewRedisStore creates a new Redis key-value adapter
func NewRedisStore(client *redisclient.Client) providers.KeyValueStore {
	return &RedisStore{
		client: client,
	}
}

// Get retrieves a value; a missing key is reported, not an error.
func (s *RedisStore) Get(ctx context.Context, key string) (string, bool, error) {
	result, err := s.client.Client().Get(ctx, key).Result()
	if err == redis.Nil {
		return "", false, nil
	}
	if err != nil {
		return "", false, fmt.Errorf("failed to get from redis: %w", err)
	}
	return result, true, nil
}

// Set stores a value, overwriting prior contents whole.
func (s *RedisStore) Set(ctx context.Context, key string, value string) error {
	if err := s.client.Client().Set(ctx, key, value, 0).Err(); err != nil {
		return fmt.Errorf("failed to set in redis: %w", err)
	}
	return nil
}

// Delete removes a key
func (s *RedisStore) Delete(ctx context.Context, key string) error {
	if err := s.client.Client().Del(ctx, key).Err(); err != nil {
		return fmt.Errorf("failed to delete from redis: %w", err)
	}
	return nil
}
