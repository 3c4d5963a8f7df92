// AngelaMos | 2026
// cache.go

// Package cache stores serialized listing responses in Redis. A nil
// *Cache is valid and behaves as a permanent miss, so services run
// without Redis in tests.
package cache

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/carterperez-dev/recraft/internal/core"
)

const (
	PublishedProductsKey = "recraft:products:published"
	PublishedPostsKey    = "recraft:posts:published"
	ArtisansKey          = "recraft:users:artisans"
)

const DefaultTTL = 2 * time.Minute

type Cache struct {
	client *redis.Client
	ttl    time.Duration
}

func New(client *redis.Client, ttl time.Duration) *Cache {
	if ttl <= 0 {
		ttl = DefaultTTL
	}
	return &Cache{client: client, ttl: ttl}
}

// GetJSON decodes the cached value at key into dest and reports whether it
// was present. Redis failures are logged and reported as a miss.
func (c *Cache) GetJSON(ctx context.Context, key string, dest any) bool {
	if c == nil || c.client == nil {
		return false
	}

	raw, err := c.client.Get(ctx, key).Bytes()
	if err != nil {
		if !errors.Is(err, redis.Nil) {
			slog.WarnContext(ctx, "cache get failed", "key", key, "error", err)
		}
		core.CacheLookups.WithLabelValues(key, "miss").Inc()
		return false
	}

	if err := json.Unmarshal(raw, dest); err != nil {
		slog.WarnContext(ctx, "cache decode failed", "key", key, "error", err)
		c.Invalidate(ctx, key)
		core.CacheLookups.WithLabelValues(key, "miss").Inc()
		return false
	}

	core.CacheLookups.WithLabelValues(key, "hit").Inc()
	return true
}

func (c *Cache) SetJSON(ctx context.Context, key string, value any) error {
	if c == nil || c.client == nil {
		return nil
	}

	raw, err := json.Marshal(value)
	if err != nil {
		return fmt.Errorf("cache encode %s: %w", key, err)
	}

	if err := c.client.Set(ctx, key, raw, c.ttl).Err(); err != nil {
		return fmt.Errorf("cache set %s: %w", key, err)
	}

	return nil
}

func (c *Cache) Invalidate(ctx context.Context, keys ...string) {
	if c == nil || c.client == nil || len(keys) == 0 {
		return
	}

	if err := c.client.Del(ctx, keys...).Err(); err != nil {
		slog.WarnContext(ctx, "cache invalidate failed", "keys", keys, "error", err)
	}
}

// Remember returns the cached value at key, or calls load and caches its
// result. A failed cache write does not fail the call.
func Remember[T any](
	ctx context.Context,
	c *Cache,
	key string,
	load func(ctx context.Context) (T, error),
) (T, error) {
	var cached T
	if c.GetJSON(ctx, key, &cached) {
		return cached, nil
	}

	value, err := load(ctx)
	if err != nil {
		return value, err
	}

	if err := c.SetJSON(ctx, key, value); err != nil {
		slog.WarnContext(ctx, "cache fill failed", "key", key, "error", err)
	}

	return value, nil
}
