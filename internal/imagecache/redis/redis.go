package redis

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/seokhojung/befunweb/internal/imagecache"
)

const keyPrefix = "imgprobe:"

// Cache implements imagecache.Cache on Redis. Values are "1" or "0".
type Cache struct {
	client *redis.Client
	ttl    time.Duration
}

// New creates a Redis-backed probe cache.
func New(client *redis.Client, ttl time.Duration) *Cache {
	if ttl <= 0 {
		ttl = imagecache.DefaultTTL
	}
	return &Cache{client: client, ttl: ttl}
}

// Get returns the cached existence of path.
func (c *Cache) Get(ctx context.Context, path string) (bool, bool, error) {
	v, err := c.client.Get(ctx, keyPrefix+path).Result()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return false, false, nil
		}
		return false, false, fmt.Errorf("redis get probe result: %w", err)
	}
	return v == "1", true, nil
}

// Set records the existence of path with the configured TTL.
func (c *Cache) Set(ctx context.Context, path string, exists bool) error {
	v := "0"
	if exists {
		v = "1"
	}
	if err := c.client.Set(ctx, keyPrefix+path, v, c.ttl).Err(); err != nil {
		return fmt.Errorf("redis set probe result: %w", err)
	}
	return nil
}
