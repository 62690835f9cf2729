package main

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	_ "github.com/lib/pq"

	"github.com/muhammadolammi/careerpilot/internal/cache"
	"github.com/muhammadolammi/careerpilot/internal/events"
)

// retry retries a function up to `attempts` times with a linear backoff
func retry[T any](attempts int, fn func() (T, error)) (T, error) {
	var zero T
	var lastErr error

	for i := 0; i < attempts; i++ {
		result, err := fn()
		if err == nil {
			return result, nil
		}
		lastErr = err
		if i < attempts-1 {
			time.Sleep(time.Duration(500*(i+1)) * time.Millisecond)
		}
	}
	return zero, fmt.Errorf("after %d attempts: %w", attempts, lastErr)
}

func openDB(ctx context.Context, dbURL string) (*sql.DB, error) {
	db, err := sql.Open("postgres", dbURL)
	if err != nil {
		return nil, fmt.Errorf("error opening db: %w", err)
	}
	_, err = retry(3, func() (any, error) {
		return nil, db.PingContext(ctx)
	})
	if err != nil {
		db.Close()
		return nil, fmt.Errorf("error reaching db: %w", err)
	}
	return db, nil
}

func dialRabbit(url string) (*events.AMQPPublisher, error) {
	return retry(3, func() (*events.AMQPPublisher, error) {
		return events.Dial(url)
	})
}

func connectRedis(ctx context.Context, addr, password string, ttl time.Duration) (*cache.Insights, error) {
	c := cache.NewInsights(addr, password, ttl)
	_, err := retry(3, func() (any, error) {
		return nil, c.Ping(ctx)
	})
	if err != nil {
		c.Close()
		return nil, fmt.Errorf("error connecting to redis: %w", err)
	}
	return c, nil
}
