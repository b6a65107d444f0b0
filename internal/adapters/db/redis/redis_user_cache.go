package redis

import (
	"context"
	"encoding/json"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"

	"github.com/lumenchat/auth-service/internal/domain/auth/model"
)

// RedisUserCache keeps sanitized users for the authenticated request path.
// Sessions themselves stay stateless; only the user lookup is cached.
type RedisUserCache struct {
	client *redis.Client
	ttl    time.Duration
}

func NewRedisUserCache(client *redis.Client, ttl time.Duration) *RedisUserCache {
	return &RedisUserCache{client: client, ttl: ttl}
}

func (r *RedisUserCache) Get(ctx context.Context, id uuid.UUID) (model.User, bool, error) {
	b, err := r.client.Get(ctx, userKey(id)).Bytes()
	switch {
	case err == redis.Nil:
		return model.User{}, false, nil
	case err != nil:
		return model.User{}, false, err
	}

	var u model.User
	if err := json.Unmarshal(b, &u); err != nil {
		// Unreadable entry: drop it and fall back to the repository.
		_ = r.client.Del(ctx, userKey(id)).Err()
		return model.User{}, false, nil
	}
	return u, true, nil
}

func (r *RedisUserCache) Set(ctx context.Context, u model.User) error {
	b, err := json.Marshal(u.Sanitized())
	if err != nil {
		return err
	}
	return r.client.Set(ctx, userKey(u.ID), b, r.ttl).Err()
}

func (r *RedisUserCache) Invalidate(ctx context.Context, id uuid.UUID) error {
	return r.client.Del(ctx, userKey(id)).Err()
}

func userKey(id uuid.UUID) string {
	return "user:" + id.String()
}
