package fetch

import (
	"context"
	"strings"
	"testing"

	"ewintr.nl/tubesum/model"
)

func TestTieredCache(t *testing.T) {
	ctx := context.Background()
	l1, l2 := NewMemoryCache(), NewMemoryCache()
	c := NewTieredCache(l1, l2)
	exp := model.Transcript{VideoID: "abc", Text: "hi"}

	if _, ok := c.Get(ctx, "u"); ok {
		t.Fatal("exp miss on empty cache")
	}

	l2.Set(ctx, "u", exp)
	act, ok := c.Get(ctx, "u")
	if !ok || act != exp {
		t.Fatalf("exp %v, got %v (%v)", exp, act, ok)
	}
	if act, ok := l1.Get(ctx, "u"); !ok || act != exp {
		t.Errorf("exp l1 to be filled, got %v (%v)", act, ok)
	}

	c.Set(ctx, "v", exp)
	if _, ok := l2.Get(ctx, "v"); !ok {
		t.Error("exp set to reach l2")
	}
}

func TestCacheKey(t *testing.T) {
	a := CacheKey("https://www.youtube.com/watch?v=a")
	if a != CacheKey("https://www.youtube.com/watch?v=a") {
		t.Error("exp key to be deterministic")
	}
	if a == CacheKey("https://www.youtube.com/watch?v=b") {
		t.Error("exp different urls to give different keys")
	}
	if !strings.HasPrefix(a, "tubesum:transcript:") {
		t.Errorf("exp prefix, got %q", a)
	}
}
