// Package cache fronts the blocking table with redis. Lookups that miss are
// collapsed with singleflight so a burst of notices for one pair costs a
// single table read.
package cache

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/plaza-dev/plaza/shared/config"
	"github.com/plaza-dev/plaza/shared/domain"
	"github.com/plaza-dev/plaza/shared/logger"
	"github.com/redis/go-redis/v9"
	"golang.org/x/sync/singleflight"
)

// KV is the subset of the redis client the cache uses.
type KV interface {
	Get(ctx context.Context, key string) *redis.StringCmd
	Set(ctx context.Context, key string, value interface{}, expiration time.Duration) *redis.StatusCmd
	Del(ctx context.Context, keys ...string) *redis.IntCmd
}

type BlockingSource interface {
	IsBlocked(ctx context.Context, blocker, blocked domain.MemberId) (bool, error)
	SetBlocking(ctx context.Context, blocker, blocked domain.MemberId, active bool) error
}

type BlockingCache struct {
	source BlockingSource
	kv     KV
	ttl    time.Duration
	sf     singleflight.Group
	log    *slog.Logger
}

// NewBlockingCache wraps source. A nil kv disables caching.
func NewBlockingCache(source BlockingSource, kv KV, ttl time.Duration) *BlockingCache {
	return &BlockingCache{
		source: source,
		kv:     kv,
		ttl:    ttl,
		log:    logger.Component("blocking_cache"),
	}
}

// NewRedisClient returns nil when no address is configured.
func NewRedisClient(cfg *config.Config) *redis.Client {
	if cfg.Public.Redis.Addr == "" {
		return nil
	}
	return redis.NewClient(&redis.Options{
		Addr:     cfg.Public.Redis.Addr,
		Password: cfg.Private.RedisPassword,
		DB:       cfg.Public.Redis.DB,
	})
}

func blockingKey(blocker, blocked domain.MemberId) string {
	return fmt.Sprintf("blocking:%s:%s", blocker, blocked)
}

func (c *BlockingCache) IsBlocked(ctx context.Context, blocker, blocked domain.MemberId) (bool, error) {
	if c.kv == nil {
		return c.source.IsBlocked(ctx, blocker, blocked)
	}

	key := blockingKey(blocker, blocked)
	v, err := c.kv.Get(ctx, key).Result()
	switch {
	case err == nil:
		return v == "1", nil
	case !errors.Is(err, redis.Nil):
		c.log.Warn("blocking cache read failed", "key", key, "error", err)
	}

	res, err, _ := c.sf.Do(key, func() (interface{}, error) {
		isBlocked, err := c.source.IsBlocked(ctx, blocker, blocked)
		if err != nil {
			return false, err
		}
		value := "0"
		if isBlocked {
			value = "1"
		}
		if err := c.kv.Set(ctx, key, value, c.ttl).Err(); err != nil {
			c.log.Warn("blocking cache write failed", "key", key, "error", err)
		}
		return isBlocked, nil
	})
	if err != nil {
		return false, err
	}
	return res.(bool), nil
}

// SetBlocking writes through to the source and drops the cached entry.
func (c *BlockingCache) SetBlocking(ctx context.Context, blocker, blocked domain.MemberId, active bool) error {
	if err := c.source.SetBlocking(ctx, blocker, blocked, active); err != nil {
		return err
	}
	if c.kv == nil {
		return nil
	}
	if err := c.kv.Del(ctx, blockingKey(blocker, blocked)).Err(); err != nil {
		c.log.Warn("blocking cache invalidation failed", "blocker", blocker, "blocked", blocked, "error", err)
	}
	return nil
}
