package history

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

// Cache holds serialized List results per identity. Fields are keyed by the
// list limit; Invalidate drops every field of an identity at once.
type Cache interface {
	Get(ctx context.Context, identity, field string) ([]byte, bool, error)
	Set(ctx context.Context, identity, field string, value []byte, ttl time.Duration) error
	Invalidate(ctx context.Context, identity string) error
}

// RedisCache stores each identity's lists in one hash so invalidation is a
// single DEL.
type RedisCache struct {
	rdb    *redis.Client
	prefix string
}

// NewRedisCache connects to url and verifies the connection.
func NewRedisCache(url string) (*RedisCache, error) {
	opts, err := redis.ParseURL(url)
	if err != nil {
		return nil, fmt.Errorf("invalid redis url: %w", err)
	}
	rdb := redis.NewClient(opts)

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := rdb.Ping(ctx).Err(); err != nil {
		rdb.Close()
		return nil, fmt.Errorf("failed to connect to redis: %w", err)
	}
	return &RedisCache{rdb: rdb, prefix: "terzaghi:history:"}, nil
}

func (c *RedisCache) key(identity string) string {
	return c.prefix + identity
}

func (c *RedisCache) Get(ctx context.Context, identity, field string) ([]byte, bool, error) {
	b, err := c.rdb.HGet(ctx, c.key(identity), field).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, err
	}
	return b, true, nil
}

func (c *RedisCache) Set(ctx context.Context, identity, field string, value []byte, ttl time.Duration) error {
	key := c.key(identity)
	_, err := c.rdb.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
		pipe.HSet(ctx, key, field, value)
		pipe.Expire(ctx, key, ttl)
		return nil
	})
	return err
}

func (c *RedisCache) Invalidate(ctx context.Context, identity string) error {
	return c.rdb.Del(ctx, c.key(identity)).Err()
}

func (c *RedisCache) Ping(ctx context.Context) error {
	return c.rdb.Ping(ctx).Err()
}

func (c *RedisCache) Close() error {
	return c.rdb.Close()
}
