package cache

import (
	"context"
	"errors"
	"time"

	"github.com/go-redis/redis/v8"
)

type Cache struct {
	redis *redis.Client
}

func NewCache(url string) *Cache {
	return &Cache{
		redis: redis.NewClient(&redis.Options{
			Addr:     url,
			Password: "",
			DB:       0,
		}),
	}
}

// IsMiss reports whether err means the key does not exist.
func IsMiss(err error) bool {
	return errors.Is(err, redis.Nil)
}

func (c *Cache) Get(ctx context.Context, key string) (string, error) {
	return c.redis.Get(ctx, key).Result()
}

func (c *Cache) SetWithTtl(ctx context.Context, key string, value string, ttl time.Duration) error {
	return c.redis.Set(ctx, key, value, ttl).Err()
}

func (c *Cache) SetKeepTtl(ctx context.Context, key string, value string) error {
	return c.redis.Do(ctx, "set", key, value, "keepttl").Err()
}

// SetIfAbsent stores value only when key is missing and reports whether it did.
func (c *Cache) SetIfAbsent(ctx context.Context, key string, value string, ttl time.Duration) (bool, error) {
	return c.redis.SetNX(ctx, key, value, ttl).Result()
}

func (c *Cache) Delete(ctx context.Context, key string) error {
	return c.redis.Del(ctx, key).Err()
}

func (c *Cache) Close() error {
	return c.redis.Close()
}
