package fetch

import (
	"context"
	"sync"

	"ewintr.nl/tubesum/model"
)

// MemoryCache never evicts. A session only asks for a handful of videos.
type MemoryCache struct {
	mu      sync.RWMutex
	entries map[string]model.Transcript
}

func NewMemoryCache() *MemoryCache {
	return &MemoryCache{
		entries: map[string]model.Transcript{},
	}
}

func (m *MemoryCache) Get(_ context.Context, url string) (model.Transcript, bool) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	t, ok := m.entries[url]
	return t, ok
}

func (m *MemoryCache) Set(_ context.Context, url string, transcript model.Transcript) {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.entries[url] = transcript
}

// TieredCache asks l1 first and fills it on an l2 hit.
type TieredCache struct {
	l1 TranscriptCache
	l2 TranscriptCache
}

func NewTieredCache(l1, l2 TranscriptCache) *TieredCache {
	return &TieredCache{l1: l1, l2: l2}
}

func (t *TieredCache) Get(ctx context.Context, url string) (model.Transcript, bool) {
	if tr, ok := t.l1.Get(ctx, url); ok {
		return tr, true
	}
	tr, ok := t.l2.Get(ctx, url)
	if ok {
		t.l1.Set(ctx, url, tr)
	}

	return tr, ok
}

func (t *TieredCache) Set(ctx context.Context, url string, transcript model.Transcript) {
	t.l1.Set(ctx, url, transcript)
	t.l2.Set(ctx, url, transcript)
}
