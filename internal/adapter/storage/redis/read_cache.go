package redis

import (
	"context"
	"errors"
	"fmt"
	"time"

	goredis "github.com/redis/go-redis/v9"
)

// ReadCache implements ports.ReadCache using Redis.
type ReadCache struct {
	client *goredis.Client
	prefix string
}

// NewReadCache creates a Redis-backed cache for chain read results.
func NewReadCache(client *goredis.Client) *ReadCache {
	return &ReadCache{
		client: client,
		prefix: "xcd:read:",
	}
}

// Get returns the cached bytes for key, or nil, nil on a miss.
func (c *ReadCache) Get(ctx context.Context, key string) ([]byte, error) {
	val, err := c.client.Get(ctx, c.prefix+key).Bytes()
	if err != nil {
		if errors.Is(err, goredis.Nil) {
			return nil, nil
		}
		return nil, fmt.Errorf("redis read cache get: %w", err)
	}
	return val, nil
}

// Set stores value under key for ttl.
func (c *ReadCache) Set(ctx context.Context, key string, value []byte, ttl time.Duration) error {
	if err := c.client.Set(ctx, c.prefix+key, value, ttl).Err(); err != nil {
		return fmt.Errorf("redis read cache set: %w", err)
	}
	return nil
}
