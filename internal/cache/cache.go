// Package cache holds remote-service responses in Redis for at most one poll
// cycle. It exists to absorb dashboard fan-out (several clients paging the
// same jobs listing), not to persist anything: entries expire on their own
// and every miss or Redis outage falls through to a direct remote call.
package cache

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"scrapedash/internal/config"
	"scrapedash/internal/logging"
)

// SnapshotCache is a short-TTL JSON cache. A disabled cache is a valid
// instance on which every Get misses and every Set is a no-op.
type SnapshotCache struct {
	client *redis.Client
	ttl    time.Duration
	logger logging.Logger
}

// New creates a snapshot cache from configuration. When caching is disabled
// no Redis connection is made.
func New(cfg *config.Config, logger logging.Logger) *SnapshotCache {
	if !cfg.Cache.Enabled {
		return &SnapshotCache{logger: logger}
	}

	opts, err := redis.ParseURL(cfg.Redis.URL)
	if err != nil {
		opts = &redis.Options{Addr: "localhost:6379"}
	}
	if cfg.Redis.Password != "" {
		opts.Password = cfg.Redis.Password
	}
	opts.DB = cfg.Redis.DB
	opts.DialTimeout = cfg.Redis.Timeout
	opts.ReadTimeout = cfg.Redis.Timeout
	opts.WriteTimeout = cfg.Redis.Timeout

	return &SnapshotCache{
		client: redis.NewClient(opts),
		ttl:    cfg.Cache.TTL,
		logger: logger,
	}
}

// Enabled reports whether a Redis connection is configured.
func (c *SnapshotCache) Enabled() bool {
	return c.client != nil
}

// Ping tests the Redis connection
func (c *SnapshotCache) Ping(ctx context.Context) error {
	if c.client == nil {
		return nil
	}
	return c.client.Ping(ctx).Err()
}

// Get loads a cached value into out, reporting whether it was present.
// Redis errors count as misses.
func (c *SnapshotCache) Get(ctx context.Context, key string, out interface{}) bool {
	if c.client == nil {
		return false
	}

	data, err := c.client.Get(ctx, key).Bytes()
	if err != nil {
		if err != redis.Nil {
			c.logger.Warn("Snapshot cache read failed", map[string]interface{}{
				"key":   key,
				"error": err.Error(),
			})
		}
		return false
	}

	if err := json.Unmarshal(data, out); err != nil {
		c.logger.Warn("Snapshot cache entry corrupt", map[string]interface{}{"key": key})
		return false
	}
	return true
}

// Set stores a value under the cache TTL. Failures are logged and ignored.
func (c *SnapshotCache) Set(ctx context.Context, key string, value interface{}) {
	if c.client == nil {
		return
	}

	data, err := json.Marshal(value)
	if err != nil {
		return
	}

	if err := c.client.Set(ctx, key, data, c.ttl).Err(); err != nil {
		c.logger.Warn("Snapshot cache write failed", map[string]interface{}{
			"key":   key,
			"error": err.Error(),
		})
	}
}

// Close closes the Redis connection
func (c *SnapshotCache) Close() error {
	if c.client == nil {
		return nil
	}
	return c.client.Close()
}

// JobsKey builds the cache key for one jobs listing page.
func JobsKey(page, pageSize int, location, company string) string {
	return fmt.Sprintf("scrapedash:jobs:%d:%d:%s:%s", page, pageSize, location, company)
}

// StatsKey is the cache key for the job stats aggregate.
const StatsKey = "scrapedash:jobs:stats"
