// Package cache provides a thin Redis-backed key/value cache.
// This is part of the platform layer and contains no business logic.
package cache

import (
	"context"
	"crypto/tls"
	"errors"
	"time"

	"lookup_widget_backend/platform/config"

	"github.com/redis/go-redis/v9"
)

// Cache wraps a Redis client for read-through caching.
// A nil *Cache is valid and behaves as an always-miss cache, so callers can
// run without Redis configured.
type Cache struct {
	client *redis.Client
	ttl    time.Duration
}

// New connects to Redis using the configured URL.
// Returns (nil, nil) when no Redis URL is configured.
func New(cfg config.CacheConfig) (*Cache, error) {
	redisURL := cfg.GetRedisURL()
	if redisURL == "" {
		return nil, nil
	}

	opt, err := redis.ParseURL(redisURL)
	if err != nil {
		return nil, err
	}
	if opt.TLSConfig != nil && cfg.GetRedisTLSInsecure() {
		clone := opt.TLSConfig.Clone()
		clone.InsecureSkipVerify = true
		opt.TLSConfig = clone
	} else if opt.TLSConfig == nil && cfg.GetRedisTLSInsecure() {
		opt.TLSConfig = &tls.Config{InsecureSkipVerify: true}
	}

	return &Cache{client: redis.NewClient(opt), ttl: cfg.GetMetadataCacheTTL()}, nil
}

// NewWithClient wraps an existing Redis client. Used by tests (miniredis).
func NewWithClient(client *redis.Client, ttl time.Duration) *Cache {
	return &Cache{client: client, ttl: ttl}
}

// Get returns the cached value for key and whether it was present.
func (c *Cache) Get(ctx context.Context, key string) (string, bool, error) {
	if c == nil || c.client == nil {
		return "", false, nil
	}
	value, err := c.client.Get(ctx, key).Result()
	if errors.Is(err, redis.Nil) {
		return "", false, nil
	}
	if err != nil {
		return "", false, err
	}
	return value, true, nil
}

// Set stores value under key with the configured TTL.
func (c *Cache) Set(ctx context.Context, key, value string) error {
	if c == nil || c.client == nil {
		return nil
	}
	return c.client.Set(ctx, key, value, c.ttl).Err()
}

// DeletePrefix removes all keys matching prefix*.
func (c *Cache) DeletePrefix(ctx context.Context, prefix string) error {
	if c == nil || c.client == nil {
		return nil
	}

	iter := c.client.Scan(ctx, 0, prefix+"*", 0).Iterator()
	for iter.Next(ctx) {
		if err := c.client.Del(ctx, iter.Val()).Err(); err != nil {
			return err
		}
	}
	return iter.Err()
}

// Close releases the underlying Redis connection.
func (c *Cache) Close() error {
	if c == nil || c.client == nil {
		return nil
	}
	return c.client.Close()
}

// Ping verifies the Redis connection.
func (c *Cache) Ping(ctx context.Context) error {
	if c == nil || c.client == nil {
		return nil
	}
	return c.client.Ping(ctx).Err()
}
