// Package cache wraps an optional Redis client used to memoize report
// snapshots. The cached value is a hint: every miss or Redis failure falls
// through to a live aggregation, so a stale or missing entry is never wrong,
// only slower.
package cache

import (
	"context"
	"encoding/json"
	"time"

	"github.com/redis/go-redis/v9"
)

// NewRedisClient connects to Redis with a short ping timeout.
// It returns nil when addr is empty or the server is unreachable; callers
// degrade gracefully by skipping the cache.
func NewRedisClient(addr, password string, db int) *redis.Client {
	if addr == "" {
		return nil
	}

	client := redis.NewClient(&redis.Options{
		Addr:     addr,
		Password: password,
		DB:       db,
	})

	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()

	if err := client.Ping(ctx).Err(); err != nil {
		_ = client.Close()
		return nil
	}
	return client
}

// Cache is a JSON get/set helper over an optional Redis client.
type Cache struct {
	client *redis.Client
	ttl    time.Duration
}

// New creates a Cache. A nil client yields a disabled cache whose GetJSON
// always misses and whose SetJSON is a no-op.
func New(client *redis.Client, ttl time.Duration) *Cache {
	return &Cache{client: client, ttl: ttl}
}

// Enabled reports whether a Redis client is attached.
func (c *Cache) Enabled() bool {
	return c != nil && c.client != nil
}

// GetJSON loads the value stored under key into dest.
// Returns false on a miss, a disabled cache, or any Redis/decode failure.
func (c *Cache) GetJSON(ctx context.Context, key string, dest any) bool {
	if !c.Enabled() {
		return false
	}
	raw, err := c.client.Get(ctx, key).Bytes()
	if err != nil {
		return false
	}
	if err := json.Unmarshal(raw, dest); err != nil {
		return false
	}
	return true
}

// SetJSON stores value under key with the configured TTL, best effort.
func (c *Cache) SetJSON(ctx context.Context, key string, value any) {
	if !c.Enabled() {
		return
	}
	raw, err := json.Marshal(value)
	if err != nil {
		return
	}
	_ = c.client.Set(ctx, key, raw, c.ttl).Err()
}

// Invalidate drops a key, best effort.
func (c *Cache) Invalidate(ctx context.Context, key string) {
	if !c.Enabled() {
		return
	}
	_ = c.client.Del(ctx, key).Err()
}
