package cache

import (
	"context"
	"encoding/json"
	"time"

	"cinema-scheduler/pkg/utils"

	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
)

// Cache is a small read-through JSON cache over redis. A nil Cache (or one
// whose redis is unreachable at startup) degrades to a no-op so the service
// keeps working without redis.
type Cache struct {
	client *redis.Client
	ttl    time.Duration
	log    *zap.Logger
}

// New connects to redis and returns nil when caching is disabled or the
// server cannot be reached.
func New(config utils.RedisConfig, log *zap.Logger) *Cache {
	if !config.Enabled {
		return nil
	}

	client := redis.NewClient(&redis.Options{
		Addr:     config.Addr,
		Password: config.Password,
		DB:       config.DB,
	})

	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()

	if err := client.Ping(ctx).Err(); err != nil {
		log.Warn("Redis unreachable, caching disabled", zap.Error(err), zap.String("addr", config.Addr))
		return nil
	}

	log.Info("Redis cache connected", zap.String("addr", config.Addr))

	return &Cache{
		client: client,
		ttl:    config.CacheTTL,
		log:    log.With(zap.String("component", "cache")),
	}
}

// Get unmarshals the cached value into dest and reports whether it was a hit.
func (c *Cache) Get(ctx context.Context, key string, dest any) bool {
	if c == nil {
		return false
	}

	raw, err := c.client.Get(ctx, key).Bytes()
	if err == redis.Nil {
		return false
	}
	if err != nil {
		c.log.Warn("Cache get failed", zap.Error(err), zap.String("key", key))
		return false
	}

	if err := json.Unmarshal(raw, dest); err != nil {
		c.log.Warn("Cache entry corrupt, dropping", zap.Error(err), zap.String("key", key))
		c.client.Del(ctx, key)
		return false
	}

	return true
}

// Set stores the value under key for the configured TTL. Failures are logged
// and swallowed; the cache is never load-bearing.
func (c *Cache) Set(ctx context.Context, key string, value any) {
	if c == nil {
		return
	}

	raw, err := json.Marshal(value)
	if err != nil {
		c.log.Warn("Cache marshal failed", zap.Error(err), zap.String("key", key))
		return
	}

	if err := c.client.Set(ctx, key, raw, c.ttl).Err(); err != nil {
		c.log.Warn("Cache set failed", zap.Error(err), zap.String("key", key))
	}
}

// Delete removes keys, typically on writes that invalidate cached reads.
func (c *Cache) Delete(ctx context.Context, keys ...string) {
	if c == nil || len(keys) == 0 {
		return
	}

	if err := c.client.Del(ctx, keys...).Err(); err != nil {
		c.log.Warn("Cache delete failed", zap.Error(err), zap.Strings("keys", keys))
	}
}

// Close releases the underlying client.
func (c *Cache) Close() {
	if c != nil {
		c.client.Close()
	}
}
