// Package cache is a thin read-through cache for catalog endpoints. Redis
// being unreachable is never an error: readers fall through to the database
// and writers lose nothing but the cached copy.
package cache

import (
	"context"
	"encoding/json"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/quizlytics/quizlytics-api/internal/config"
)

const (
	KeySubjects      = "subjects"
	KeySubjectPrefix = "subject_"
	KeyChapterPrefix = "chapter_"
)

type Cache struct {
	rdb *redis.Client
	ttl time.Duration
}

// New connects to Redis at addr. An empty addr returns a disabled cache on
// which every operation is a no-op.
func New(addr string, ttl time.Duration) *Cache {
	if addr == "" {
		return &Cache{}
	}
	return &Cache{
		rdb: redis.NewClient(&redis.Options{Addr: addr}),
		ttl: ttl,
	}
}

func (c *Cache) Enabled() bool {
	return c != nil && c.rdb != nil
}

// GetJSON loads key into dest, reporting whether a cached value was found.
func (c *Cache) GetJSON(ctx context.Context, key string, dest interface{}) bool {
	if !c.Enabled() {
		return false
	}
	raw, err := c.rdb.Get(ctx, key).Bytes()
	if err != nil {
		if err != redis.Nil {
			config.WithContext(ctx).WithError(err).Debug("Cache read failed")
		}
		return false
	}
	if err := json.Unmarshal(raw, dest); err != nil {
		config.WithContext(ctx).WithError(err).Warn("Discarding undecodable cache entry")
		c.Delete(ctx, key)
		return false
	}
	return true
}

func (c *Cache) SetJSON(ctx context.Context, key string, v interface{}) {
	if !c.Enabled() {
		return
	}
	raw, err := json.Marshal(v)
	if err != nil {
		config.WithContext(ctx).WithError(err).Warn("Failed to marshal cache entry")
		return
	}
	if err := c.rdb.Set(ctx, key, raw, c.ttl).Err(); err != nil {
		config.WithContext(ctx).WithError(err).Debug("Cache write failed")
	}
}

// Delete drops keys after a catalog write so readers see fresh data.
func (c *Cache) Delete(ctx context.Context, keys ...string) {
	if !c.Enabled() || len(keys) == 0 {
		return
	}
	if err := c.rdb.Del(ctx, keys...).Err(); err != nil {
		config.WithContext(ctx).WithError(err).Debug("Cache invalidation failed")
	}
}
