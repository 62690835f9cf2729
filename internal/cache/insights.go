package cache

import (
	"context"
	"errors"
	"time"

	"github.com/redis/go-redis/v9"
)

const insightsKey = "careerpilot:market_insights"

// Insights keeps the last generated market-insights text for a fixed TTL.
type Insights struct {
	rdb *redis.Client
	ttl time.Duration
}

func NewInsights(addr, password string, ttl time.Duration) *Insights {
	rdb := redis.NewClient(&redis.Options{
		Addr:     addr,
		Password: password,
	})
	return &Insights{rdb: rdb, ttl: ttl}
}

func (c *Insights) Ping(ctx context.Context) error { return c.rdb.Ping(ctx).Err() }

// Get reports false without an error when nothing is cached.
func (c *Insights) Get(ctx context.Context) (string, bool, error) {
	val, err := c.rdb.Get(ctx, insightsKey).Result()
	if errors.Is(err, redis.Nil) {
		return "", false, nil
	}
	if err != nil {
		return "", false, err
	}
	return val, true, nil
}

func (c *Insights) Set(ctx context.Context, text string) error {
	return c.rdb.Set(ctx, insightsKey, text, c.ttl).Err()
}

func (c *Insights) Close() error { return c.rdb.Close() }
