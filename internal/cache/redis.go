// Package cache provides the Redis client used by the redis itinerary store.
package cache

import (
	"context"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

// DefaultURL is used when no Redis URL is configured.
const DefaultURL = "redis://localhost:6379/0"

// Options builds client options from a redis:// or rediss:// URL.
func Options(rawURL string) (*redis.Options, error) {
	if rawURL == "" {
		rawURL = DefaultURL
	}
	opts, err := redis.ParseURL(rawURL)
	if err != nil {
		return nil, fmt.Errorf("parse redis url: %w", err)
	}
	if opts.DialTimeout == 0 {
		opts.DialTimeout = 5 * time.Second
	}
	return opts, nil
}

// Connect creates a client and verifies it with a PING.
func Connect(ctx context.Context, rawURL string) (*redis.Client, error) {
	opts, err := Options(rawURL)
	if err != nil {
		return nil, err
	}

	client := redis.NewClient(opts)
	if err := client.Ping(ctx).Err(); err != nil {
		_ = client.Close()
		return nil, fmt.Errorf("ping redis: %w", err)
	}
	return client, nil
}
