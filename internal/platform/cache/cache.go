// Package cache provides the Dragonfly/Redis client used for the learner
// event stream.
package cache

import (
	"context"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/p-n-ai/freecourses/internal/platform/config"
)

// Cache wraps a Redis/Dragonfly client.
type Cache struct {
	Client *redis.Client
}

// ParseURL validates a Redis connection URL.
func ParseURL(url string) (*redis.Options, error) {
	if url == "" {
		return nil, fmt.Errorf("cache URL is empty")
	}
	opts, err := redis.ParseURL(url)
	if err != nil {
		return nil, fmt.Errorf("invalid cache URL: %w", err)
	}
	return opts, nil
}

// New creates a client from configuration and verifies it with a ping.
func New(ctx context.Context, c config.CacheConfig) (*Cache, error) {
	opts, err := ParseURL(c.URL)
	if err != nil {
		return nil, err
	}

	opts.DialTimeout = 5 * time.Second
	opts.ReadTimeout = 3 * time.Second
	opts.WriteTimeout = 3 * time.Second

	client := redis.NewClient(opts)

	if err := client.Ping(ctx).Err(); err != nil {
		client.Close()
		return nil, fmt.Errorf("pinging cache: %w", err)
	}

	return &Cache{Client: client}, nil
}

// Append adds an entry to a stream capped at roughly maxLen entries and
// returns the entry ID. A maxLen of zero leaves the stream uncapped.
func (c *Cache) Append(ctx context.Context, stream string, maxLen int64, values map[string]any) (string, error) {
	if c == nil || c.Client == nil {
		return "", fmt.Errorf("cache client is nil")
	}
	if stream == "" {
		return "", fmt.Errorf("stream name is empty")
	}

	id, err := c.Client.XAdd(ctx, &redis.XAddArgs{
		Stream: stream,
		MaxLen: maxLen,
		Approx: maxLen > 0,
		Values: values,
	}).Result()
	if err != nil {
		return "", fmt.Errorf("append to stream %s: %w", stream, err)
	}
	return id, nil
}

// Close shuts down the cache client.
func (c *Cache) Close() error {
	return c.Client.Close()
}

// HealthCheck verifies the cache connection is alive.
func (c *Cache) HealthCheck(ctx context.Context) error {
	return c.Client.Ping(ctx).Err()
}
