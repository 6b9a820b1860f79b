// Copyright (c) 2026 Medialib. All rights reserved.
// Author: numaochi.dev@gmail.com

package auth

import (
	"context"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/numaochi/medialib/internal/platform/constants"
)

// RedisSessionRepository implements [SessionRepository] using Redis.
//
// Session records live under [constants.RedisPrefixSession] and expire with
// the same TTL as the access token they back, so Redis garbage-collects
// sessions that were never explicitly revoked.
type RedisSessionRepository struct {
	client *redis.Client
}

func NewRedisSessionRepository(client *redis.Client) *RedisSessionRepository {
	return &RedisSessionRepository{client: client}
}

func (repository *RedisSessionRepository) Set(ctx context.Context, tokenID string, userID int64, ttl time.Duration) error {
	key := constants.RedisPrefixSession + tokenID
	if err := repository.client.Set(ctx, key, userID, ttl).Err(); err != nil {
		return fmt.Errorf("redis_session_set_failed: %w", err)
	}
	return nil
}

func (repository *RedisSessionRepository) Exists(ctx context.Context, tokenID string) (bool, error) {
	key := constants.RedisPrefixSession + tokenID
	count, err := repository.client.Exists(ctx, key).Result()
	if err != nil {
		return false, fmt.Errorf("redis_session_exists_failed: %w", err)
	}
	return count > 0, nil
}

func (repository *RedisSessionRepository) Delete(ctx context.Context, tokenID string) error {
	key := constants.RedisPrefixSession + tokenID
	if err := repository.client.Del(ctx, key).Err(); err != nil {
		return fmt.Errorf("redis_session_delete_failed: %w", err)
	}
	return nil
}
