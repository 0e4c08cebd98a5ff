// internal/fallback/rediscache.go
package fallback

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"route-optimizer/internal/common/database"
	"route-optimizer/internal/common/errors"
	"route-optimizer/internal/models"
)

const redisKeyPrefix = "route:"

// RedisCache is the shared RouteCache backend for multi-instance
// deployments. Entries are JSON payloads with Redis-native expiry, so
// Cleanup is a no-op here.
type RedisCache struct {
	client *database.RedisClient
	ttl    time.Duration
}

func NewRedisCache(client *database.RedisClient, ttl time.Duration) *RedisCache {
	return &RedisCache{client: client, ttl: ttl}
}

func (c *RedisCache) Get(ctx context.Context, key string) (*models.OptimizationResult, error) {
	raw, err := c.client.Get(ctx, redisKeyPrefix+key)
	if err == redis.Nil {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("redis get: %w", err)
	}

	var payload models.OptimizationResult
	if err := json.Unmarshal([]byte(raw), &payload); err != nil {
		// A corrupt entry behaves like a miss after removal.
		_ = c.client.Del(ctx, redisKeyPrefix+key)
		return nil, nil
	}
	return &payload, nil
}

func (c *RedisCache) Put(ctx context.Context, key string, payload models.OptimizationResult) error {
	raw, err := json.Marshal(payload)
	if err != nil {
		return errors.NewCacheWriteFailedError(key, err)
	}
	if err := c.client.Set(ctx, redisKeyPrefix+key, raw, c.ttl); err != nil {
		return errors.NewCacheWriteFailedError(key, err)
	}
	return nil
}

// Cleanup is satisfied by Redis key expiry.
func (c *RedisCache) Cleanup(_ context.Context) (int, error) {
	return 0, nil
}

func (c *RedisCache) Size(ctx context.Context) (int, error) {
	var (
		cursor uint64
		total  int
	)
	for {
		keys, next, err := c.client.GetClient().Scan(ctx, cursor, redisKeyPrefix+"*", 100).Result()
		if err != nil {
			return 0, fmt.Errorf("redis scan: %w", err)
		}
		total += len(keys)
		if next == 0 {
			return total, nil
		}
		cursor = next
	}
}

func (c *RedisCache) Clear(ctx context.Context) error {
	var cursor uint64
	for {
		keys, next, err := c.client.GetClient().Scan(ctx, cursor, redisKeyPrefix+"*", 100).Result()
		if err != nil {
			return fmt.Errorf("redis scan: %w", err)
		}
		if len(keys) > 0 {
			if err := c.client.Del(ctx, keys...); err != nil {
				return fmt.Errorf("redis del: %w", err)
			}
		}
		if next == 0 {
			return nil
		}
		cursor = next
	}
}
