package redis

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/atlashaul/portal/pkg/logger"
)

// KeyPrefix namespaces all portal cache keys
const KeyPrefix = "portal:"

// Cache is a Redis-backed JSON read cache
type Cache struct {
	client *redis.Client
	logger *logger.Logger
}

// NewCache creates a new cache
func NewCache(client *redis.Client, log *logger.Logger) *Cache {
	return &Cache{
		client: client,
		logger: log.WithField("component", "cache"),
	}
}

// Get retrieves a cached value into dest. The second return is false on a miss.
func (c *Cache) Get(ctx context.Context, key string, dest any) (bool, error) {
	val, err := c.client.Get(ctx, KeyPrefix+key).Result()
	if err == redis.Nil {
		c.logger.Debug("cache miss", "key", key)
		return false, nil
	}
	if err != nil {
		c.logger.Error("cache error", "operation", "get", "key", key, "error", err)
		return false, fmt.Errorf("failed to get cached value: %w", err)
	}

	if err := json.Unmarshal([]byte(val), dest); err != nil {
		return false, fmt.Errorf("failed to unmarshal cached value: %w", err)
	}

	c.logger.Debug("cache hit", "key", key)
	return true, nil
}

// Set stores a value with the given TTL
func (c *Cache) Set(ctx context.Context, key string, value any, ttl time.Duration) error {
	data, err := json.Marshal(value)
	if err != nil {
		return fmt.Errorf("failed to marshal value: %w", err)
	}

	if err := c.client.Set(ctx, KeyPrefix+key, data, ttl).Err(); err != nil {
		c.logger.Error("cache error", "operation", "set", "key", key, "error", err)
		return fmt.Errorf("failed to set cached value: %w", err)
	}

	return nil
}

// Delete removes a cached value
func (c *Cache) Delete(ctx context.Context, key string) error {
	return c.client.Del(ctx, KeyPrefix+key).Err()
}
