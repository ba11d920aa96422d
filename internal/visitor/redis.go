package visitor

import (
	"context"
	"errors"
	"time"

	"github.com/redis/go-redis/v9"
)

// visitorTTL bounds how long an abandoned session keeps its visitor id.
const visitorTTL = 24 * time.Hour

// RedisCache backs the visitor-id store with Redis so multiple API
// instances resolve the same id for a session.
type RedisCache struct {
	client *redis.Client
}

func NewRedisCache(client *redis.Client) *RedisCache {
	return &RedisCache{client: client}
}

func (c *RedisCache) Get(ctx context.Context, sessionID string) (string, error) {
	id, err := c.client.Get(ctx, key(sessionID)).Result()
	if errors.Is(err, redis.Nil) {
		return "", ErrNotFound
	}
	if err != nil {
		return "", err
	}
	return id, nil
}

func (c *RedisCache) Set(ctx context.Context, sessionID, visitorID string) error {
	return c.client.Set(ctx, key(sessionID), visitorID, visitorTTL).Err()
}

func key(sessionID string) string { return "visitor:" + sessionID }
