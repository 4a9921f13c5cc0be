package session

import (
	"context"
	"errors"
	"log"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
)

const redisKeyPrefix = "session:"

// RedisStore persists sessions in Redis with the TTL applied at write time, so
// expiry needs no sweeper. Resolve failures are treated as RoleNone: an
// unreachable store must never grant privileges.
type RedisStore struct {
	client *redis.Client
	ttl    time.Duration
}

// NewRedisStore wraps an existing Redis client. A non-positive ttl falls back
// to DefaultTTL.
func NewRedisStore(client *redis.Client, ttl time.Duration) *RedisStore {
	if ttl <= 0 {
		ttl = DefaultTTL
	}
	return &RedisStore{client: client, ttl: ttl}
}

// Create implements Store.
func (s *RedisStore) Create(ctx context.Context) (string, error) {
	id := uuid.NewString()
	if err := s.client.Set(ctx, redisKeyPrefix+id, string(RoleAdmin), s.ttl).Err(); err != nil {
		return "", err
	}
	return id, nil
}

// Resolve implements Store.
func (s *RedisStore) Resolve(ctx context.Context, id string) Role {
	val, err := s.client.Get(ctx, redisKeyPrefix+id).Result()
	if err != nil {
		if !errors.Is(err, redis.Nil) {
			log.Printf("[session] redis resolve failed, treating as unauthenticated: %v", err)
		}
		return RoleNone
	}
	if Role(val) == RoleAdmin {
		return RoleAdmin
	}
	return RoleNone
}

// Revoke implements Store.
func (s *RedisStore) Revoke(ctx context.Context, id string) error {
	return s.client.Del(ctx, redisKeyPrefix+id).Err()
}
