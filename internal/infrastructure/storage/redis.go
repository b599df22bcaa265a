package storage

import (
	"context"
	"errors"
	"fmt"

	"github.com/redis/go-redis/v9"
)

// RedisTokenStore keeps the token in Redis, keyed by terminal id. Used by
// point-of-sale deployments where several kiosk processes on one terminal
// share a single cashier session.
type RedisTokenStore struct {
	client     *redis.Client
	terminalID string
}

func NewRedisTokenStore(client *redis.Client, terminalID string) *RedisTokenStore {
	return &RedisTokenStore{client: client, terminalID: terminalID}
}

func (s *RedisTokenStore) Save(ctx context.Context, token string) error {
	// No TTL: the backend decides when a token expires, and a failed
	// profile refresh clears the key.
	return s.client.Set(ctx, s.key(), token, 0).Err()
}

func (s *RedisTokenStore) Load(ctx context.Context) (string, error) {
	token, err := s.client.Get(ctx, s.key()).Result()
	if errors.Is(err, redis.Nil) {
		return "", nil
	}
	if err != nil {
		return "", fmt.Errorf("load session token: %w", err)
	}
	return token, nil
}

func (s *RedisTokenStore) Clear(ctx context.Context) error {
	return s.client.Del(ctx, s.key()).Err()
}

func (s *RedisTokenStore) key() string {
	return fmt.Sprintf("session:token:%s", s.terminalID)
}
