package history

import (
	"context"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
)

func newRedisCache(t *testing.T) (*RedisCache, *miniredis.Miniredis) {
	t.Helper()
	mr := miniredis.RunT(t)
	c, err := NewRedisCache("redis://" + mr.Addr())
	if err != nil {
		t.Fatalf("NewRedisCache: %v", err)
	}
	t.Cleanup(func() { c.Close() })
	return c, mr
}

func TestRedisCacheRoundTrip(t *testing.T) {
	c, _ := newRedisCache(t)
	ctx := context.Background()

	if _, ok, err := c.Get(ctx, "u", "10"); err != nil || ok {
		t.Fatalf("empty cache: ok=%v err=%v", ok, err)
	}
	if err := c.Set(ctx, "u", "10", []byte(`[1]`), time.Minute); err != nil {
		t.Fatalf("Set: %v", err)
	}
	v, ok, err := c.Get(ctx, "u", "10")
	if err != nil || !ok || string(v) != `[1]` {
		t.Fatalf("Get = %q, %v, %v", v, ok, err)
	}
}

func TestRedisCacheInvalidateDropsAllLimits(t *testing.T) {
	c, _ := newRedisCache(t)
	ctx := context.Background()
	c.Set(ctx, "u", "10", []byte("a"), time.Minute)
	c.Set(ctx, "u", "100", []byte("b"), time.Minute)
	c.Set(ctx, "other", "10", []byte("c"), time.Minute)

	if err := c.Invalidate(ctx, "u"); err != nil {
		t.Fatalf("Invalidate: %v", err)
	}
	for _, field := range []string{"10", "100"} {
		if _, ok, _ := c.Get(ctx, "u", field); ok {
			t.Fatalf("field %s survived invalidation", field)
		}
	}
	if _, ok, _ := c.Get(ctx, "other", "10"); !ok {
		t.Fatalf("other identity was invalidated")
	}
}

func TestRedisCacheExpiry(t *testing.T) {
	c, mr := newRedisCache(t)
	ctx := context.Background()
	c.Set(ctx, "u", "10", []byte("a"), time.Minute)
	mr.FastForward(2 * time.Minute)
	if _, ok, _ := c.Get(ctx, "u", "10"); ok {
		t.Fatalf("entry did not expire")
	}
}

func TestStoreWithRedisCache(t *testing.T) {
	c, _ := newRedisCache(t)
	s, _ := newTestStore(t, c)
	ctx := context.Background()

	s.Append(ctx, "u", sample("", 1))
	if got, _ := s.List(ctx, "u", 5); len(got) != 1 {
		t.Fatalf("first list = %d entries", len(got))
	}
	if _, ok, _ := c.Get(ctx, "u", "5"); !ok {
		t.Fatalf("list result not cached")
	}
	s.Delete(ctx, "u", 2)
	if _, ok, _ := c.Get(ctx, "u", "5"); ok {
		t.Fatalf("cache not invalidated by delete")
	}
	if got, _ := s.List(ctx, "u", 5); len(got) != 0 {
		t.Fatalf("after delete = %d entries", len(got))
	}
}
