package store

import (
	"context"
	"sort"
	"sync"
	"time"
)

// Memory is an in-process Backend used for tests and ephemeral runs.
type Memory struct {
	mu    sync.Mutex
	saves map[string]Record
}

// NewMemory returns an empty in-memory backend.
func NewMemory() *Memory {
	return &Memory{saves: make(map[string]Record)}
}

func (m *Memory) Name() string { return "memory" }

func (m *Memory) List(ctx context.Context) ([]Entry, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	entries := make([]Entry, 0, len(m.saves))
	for _, rec := range m.saves {
		entries = append(entries, Entry{Key: rec.Key, Size: len(rec.Data), UpdatedAt: rec.UpdatedAt})
	}
	sort.Slice(entries, func(i, j int) bool { return entries[i].Key < entries[j].Key })
	return entries, nil
}

func (m *Memory) Get(ctx context.Context, key string) (Record, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	rec, ok := m.saves[key]
	if !ok {
		return Record{}, ErrNotFound
	}
	return rec, nil
}

func (m *Memory) Put(ctx context.Context, key, data string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.saves[key] = Record{Key: key, Data: data, UpdatedAt: time.Now().UTC()}
	return nil
}

func (m *Memory) Close() error { return nil }
