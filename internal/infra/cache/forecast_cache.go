// Package cache provides the Redis-backed forecast cache.
package cache

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/shopspring/decimal"

	"github.com/cashplan/backend/config"
	"github.com/cashplan/backend/internal/application/adapter"
)

const forecastKeyPrefix = "forecast:"

// forecastCache implements adapter.ForecastCache on top of Redis. Every
// cached balance shares the prefix so invalidation can drop them in one
// scan.
type forecastCache struct {
	client *redis.Client
	ttl    time.Duration
}

// NewForecastCache creates a Redis-backed forecast cache and verifies the
// connection.
func NewForecastCache(cfg *config.RedisConfig, ttl time.Duration) (adapter.ForecastCache, error) {
	client := redis.NewClient(&redis.Options{
		Addr:     cfg.Addr,
		Password: cfg.Password,
		DB:       cfg.DB,
	})

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := client.Ping(ctx).Err(); err != nil {
		return nil, fmt.Errorf("failed to connect to redis: %w", err)
	}

	slog.Info("Redis connection established", "addr", cfg.Addr)

	return &forecastCache{
		client: client,
		ttl:    ttl,
	}, nil
}

// NewForecastCacheWithClient wraps an existing client, used by tests.
func NewForecastCacheWithClient(client *redis.Client, ttl time.Duration) adapter.ForecastCache {
	return &forecastCache{
		client: client,
		ttl:    ttl,
	}
}

// Get returns the cached balance for the date, or nil on a miss.
func (c *forecastCache) Get(ctx context.Context, date time.Time) (*decimal.Decimal, error) {
	value, err := c.client.Get(ctx, forecastKey(date)).Result()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, nil
		}
		return nil, err
	}

	balance, err := decimal.NewFromString(value)
	if err != nil {
		// A corrupt entry is treated as a miss.
		return nil, nil
	}
	return &balance, nil
}

// Set stores the balance for the date with the configured TTL.
func (c *forecastCache) Set(ctx context.Context, date time.Time, balance decimal.Decimal) error {
	return c.client.Set(ctx, forecastKey(date), balance.String(), c.ttl).Err()
}

// Invalidate drops every cached forecast balance.
func (c *forecastCache) Invalidate(ctx context.Context) error {
	var cursor uint64
	for {
		keys, next, err := c.client.Scan(ctx, cursor, forecastKeyPrefix+"*", 100).Result()
		if err != nil {
			return err
		}
		if len(keys) > 0 {
			if err := c.client.Del(ctx, keys...).Err(); err != nil {
				return err
			}
		}
		if next == 0 {
			return nil
		}
		cursor = next
	}
}

func forecastKey(date time.Time) string {
	return forecastKeyPrefix + date.UTC().Format("2006-01-02")
}
