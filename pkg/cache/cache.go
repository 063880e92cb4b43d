// Package cache provides a small Redis-backed cache for the hierarchy
// aggregation views. Entries are keyed per viewer scope and namespaced by a
// generation counter; any account or organization mutation bumps the
// generation, which invalidates every cached view at once. Redis being down
// degrades to cache misses, never to request failures.
package cache

import (
	"context"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
)

const generationKey = "hierarchy:generation"

// ViewCache caches serialized aggregation views.
type ViewCache struct {
	rdb    *redis.Client
	ttl    time.Duration
	logger *zap.Logger
}

// NewViewCache creates a view cache. A nil client disables caching.
func NewViewCache(rdb *redis.Client, ttl time.Duration, logger *zap.Logger) *ViewCache {
	return &ViewCache{rdb: rdb, ttl: ttl, logger: logger}
}

// Get returns the cached payload for the viewer-scoped key, or ok=false on
// miss or Redis error.
func (c *ViewCache) Get(ctx context.Context, key string) ([]byte, bool) {
	if c == nil || c.rdb == nil {
		return nil, false
	}
	full, err := c.versionedKey(ctx, key)
	if err != nil {
		return nil, false
	}
	b, err := c.rdb.Get(ctx, full).Bytes()
	if err != nil {
		if err != redis.Nil {
			c.logger.Warn("view cache get", zap.Error(err))
		}
		return nil, false
	}
	return b, true
}

// Set stores a payload under the viewer-scoped key for the configured TTL.
func (c *ViewCache) Set(ctx context.Context, key string, payload []byte) {
	if c == nil || c.rdb == nil {
		return
	}
	full, err := c.versionedKey(ctx, key)
	if err != nil {
		return
	}
	if err := c.rdb.Set(ctx, full, payload, c.ttl).Err(); err != nil {
		c.logger.Warn("view cache set", zap.Error(err))
	}
}

// Invalidate bumps the generation counter, orphaning every cached view.
// Orphaned entries expire via their TTL.
func (c *ViewCache) Invalidate(ctx context.Context) {
	if c == nil || c.rdb == nil {
		return
	}
	if err := c.rdb.Incr(ctx, generationKey).Err(); err != nil {
		c.logger.Warn("view cache invalidate", zap.Error(err))
	}
}

func (c *ViewCache) versionedKey(ctx context.Context, key string) (string, error) {
	gen, err := c.rdb.Get(ctx, generationKey).Int64()
	if err != nil && err != redis.Nil {
		return "", err
	}
	return fmt.Sprintf("hierarchy:v%d:%s", gen, key), nil
}
