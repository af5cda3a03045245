// Package cache stores JSON-encoded values under string keys, in Redis when
// REDIS_ADDR is configured and in process memory otherwise.
package cache

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/shashiranjanraj/bookstore/config"
	"github.com/shashiranjanraj/bookstore/pkg/logger"
	"github.com/shashiranjanraj/bookstore/pkg/metrics"
)

// Store is the cache contract. Get reports a hit by returning true; any
// backend error is treated as a miss.
type Store interface {
	Get(ctx context.Context, key string, dest interface{}) bool
	Set(ctx context.Context, key string, value interface{}, ttl time.Duration) error
	Del(ctx context.Context, keys ...string) error
}

// Connect returns a Redis store when REDIS_ADDR is set and answers a ping,
// else an in-memory store.
func Connect(ctx context.Context) Store {
	addr := config.RedisAddr()
	if addr == "" {
		return NewMemory()
	}

	rdb := redis.NewClient(&redis.Options{
		Addr:     addr,
		Password: config.RedisPassword(),
	})
	if err := rdb.Ping(ctx).Err(); err != nil {
		logger.Warn("cache: redis unavailable, using memory", "addr", addr, "error", err)
		_ = rdb.Close()
		return NewMemory()
	}
	return NewRedis(rdb)
}

// Redis is a Store backed by go-redis.
type Redis struct {
	rdb *redis.Client
}

func NewRedis(rdb *redis.Client) *Redis {
	return &Redis{rdb: rdb}
}

func (c *Redis) Get(ctx context.Context, key string, dest interface{}) bool {
	val, err := c.rdb.Get(ctx, key).Bytes()
	if err != nil {
		if err != redis.Nil {
			logger.WithCtx(ctx).Warn("cache: redis get failed", "key", key, "error", err)
		}
		metrics.CacheMisses.WithLabelValues("redis").Inc()
		return false
	}
	if err := json.Unmarshal(val, dest); err != nil {
		metrics.CacheMisses.WithLabelValues("redis").Inc()
		return false
	}
	metrics.CacheHits.WithLabelValues("redis").Inc()
	return true
}

func (c *Redis) Set(ctx context.Context, key string, value interface{}, ttl time.Duration) error {
	data, err := json.Marshal(value)
	if err != nil {
		return fmt.Errorf("cache: encode %s: %w", key, err)
	}
	return c.rdb.Set(ctx, key, data, ttl).Err()
}

func (c *Redis) Del(ctx context.Context, keys ...string) error {
	if len(keys) == 0 {
		return nil
	}
	return c.rdb.Del(ctx, keys...).Err()
}

// Close releases the Redis connection pool.
func (c *Redis) Close() error { return c.rdb.Close() }

// Remember returns the cached value for key, or calls load, caches its
// result for ttl and returns it. A failed cache write is logged, not returned.
func Remember(ctx context.Context, s Store, key string, ttl time.Duration, dest interface{}, load func() error) error {
	if s.Get(ctx, key, dest) {
		return nil
	}
	if err := load(); err != nil {
		return err
	}
	if err := s.Set(ctx, key, dest, ttl); err != nil {
		logger.WithCtx(ctx).Warn("cache: set failed", "key", key, "error", err)
	}
	return nil
}
