package cache

import (
	"context"
	"encoding/json"
	"log"
	"time"

	"github.com/redis/go-redis/v9"
)

// Cache wraps a redis client for JSON value caching. A nil *Cache is valid
// and behaves as a permanent miss, so the service keeps working when
// REDIS_URL is not configured.
type Cache struct {
	rdb *redis.Client
}

func New(redisURL string) (*Cache, error) {
	opt, err := redis.ParseURL(redisURL)
	if err != nil {
		return nil, err
	}

	rdb := redis.NewClient(opt)

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := rdb.Ping(ctx).Err(); err != nil {
		return nil, err
	}

	return &Cache{rdb: rdb}, nil
}

// GetJSON reports whether the key was present and decoded into dest.
func (c *Cache) GetJSON(ctx context.Context, key string, dest interface{}) bool {
	if c == nil {
		return false
	}

	raw, err := c.rdb.Get(ctx, key).Result()
	if err == redis.Nil {
		return false
	}
	if err != nil {
		log.Printf("[CACHE] get %s failed: %v", key, err)
		return false
	}

	if err := json.Unmarshal([]byte(raw), dest); err != nil {
		log.Printf("[CACHE] decode %s failed: %v", key, err)
		return false
	}
	return true
}

func (c *Cache) SetJSON(ctx context.Context, key string, value interface{}, ttl time.Duration) {
	if c == nil {
		return
	}

	raw, err := json.Marshal(value)
	if err != nil {
		log.Printf("[CACHE] encode %s failed: %v", key, err)
		return
	}

	if err := c.rdb.Set(ctx, key, raw, ttl).Err(); err != nil {
		log.Printf("[CACHE] set %s failed: %v", key, err)
	}
}

func (c *Cache) Delete(ctx context.Context, keys ...string) {
	if c == nil || len(keys) == 0 {
		return
	}

	if err := c.rdb.Del(ctx, keys...).Err(); err != nil {
		log.Printf("[CACHE] delete %v failed: %v", keys, err)
	}
}
