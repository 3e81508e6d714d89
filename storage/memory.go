package storage

import (
	"context"
	"sync"

	"ewintr.nl/tubesum/model"
)

// Memory keeps the summaries of the running process only.
type Memory struct {
	mu        sync.RWMutex
	summaries []*model.Summary
}

func NewMemory() *Memory {
	return &Memory{}
}

func (m *Memory) Save(_ context.Context, summary *model.Summary) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.summaries = append(m.summaries, summary)
	return nil
}

// List returns newest first.
func (m *Memory) List(_ context.Context, limit int) ([]*model.Summary, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	count := len(m.summaries)
	if limit > 0 && limit < count {
		count = limit
	}
	res := make([]*model.Summary, 0, count)
	for i := len(m.summaries) - 1; i >= 0 && len(res) < count; i-- {
		res = append(res, m.summaries[i])
	}

	return res, nil
}
