package fetch

import (
	"context"
	"testing"
	"time"

	"ewintr.nl/tubesum/model"
	"github.com/alicebob/miniredis/v2"
)

func newTestRedisCache(t *testing.T) (*miniredis.Miniredis, *RedisCache) {
	t.Helper()
	s := miniredis.RunT(t)
	rc, err := NewRedisCache(context.Background(), "redis://"+s.Addr(), time.Hour, testLogger())
	if err != nil {
		t.Fatalf("exp nil, got %v", err)
	}
	t.Cleanup(func() { rc.Close() })

	return s, rc
}

func TestRedisCache(t *testing.T) {
	const url = "https://www.youtube.com/watch?v=abc123"
	ctx := context.Background()
	exp := model.Transcript{VideoID: "abc123", Text: "Hello world"}

	t.Run("miss", func(t *testing.T) {
		_, rc := newTestRedisCache(t)
		if _, ok := rc.Get(ctx, url); ok {
			t.Error("exp miss")
		}
	})

	t.Run("hit", func(t *testing.T) {
		s, rc := newTestRedisCache(t)
		rc.Set(ctx, url, exp)

		act, ok := rc.Get(ctx, url)
		if !ok || act != exp {
			t.Errorf("exp %v, got %v (%v)", exp, act, ok)
		}
		if ttl := s.TTL(CacheKey(url)); ttl != time.Hour {
			t.Errorf("exp ttl of an hour, got %v", ttl)
		}
	})

	t.Run("expired", func(t *testing.T) {
		s, rc := newTestRedisCache(t)
		rc.Set(ctx, url, exp)
		s.FastForward(2 * time.Hour)

		if _, ok := rc.Get(ctx, url); ok {
			t.Error("exp miss after ttl")
		}
	})

	t.Run("corrupt value", func(t *testing.T) {
		s, rc := newTestRedisCache(t)
		if err := s.Set(CacheKey(url), "{not json"); err != nil {
			t.Fatalf("exp nil, got %v", err)
		}

		act, ok := rc.Get(ctx, url)
		if ok {
			t.Error("exp corrupt value to be a miss")
		}
		if act != (model.Transcript{}) {
			t.Errorf("exp empty transcript, got %v", act)
		}
	})
}

func TestNewRedisCacheUnreachable(t *testing.T) {
	s := miniredis.RunT(t)
	addr := s.Addr()
	s.Close()

	if _, err := NewRedisCache(context.Background(), "redis://"+addr, time.Hour, testLogger()); err == nil {
		t.Error("exp error for unreachable redis")
	}
	if _, err := NewRedisCache(context.Background(), "not a url", time.Hour, testLogger()); err == nil {
		t.Error("exp error for invalid url")
	}
}
