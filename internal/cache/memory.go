package cache

import (
	"context"
	"sync"
	"time"
)

type entry struct {
	value     []byte
	expiresAt time.Time
}

// Memory is a process-local Cache.
type Memory struct {
	mu       sync.RWMutex
	ttl      time.Duration
	now      func() time.Time
	entries  map[string]map[string]entry
	versions map[string]int64
}

func NewMemory(ttl time.Duration) *Memory {
	return &Memory{
		ttl:      ttl,
		now:      time.Now,
		entries:  make(map[string]map[string]entry),
		versions: make(map[string]int64),
	}
}

func (m *Memory) Version(_ context.Context, tag string) (int64, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	return m.versions[tag], nil
}

func (m *Memory) Get(_ context.Context, tag, key string) ([]byte, bool, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	e, ok := m.entries[tag][key]
	if !ok {
		return nil, false, nil
	}
	if m.ttl > 0 && !m.now().Before(e.expiresAt) {
		return nil, false, nil
	}
	return e.value, true, nil
}

func (m *Memory) Set(_ context.Context, tag string, version int64, key string, value []byte) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.versions[tag] != version {
		return nil
	}

	byKey, ok := m.entries[tag]
	if !ok {
		byKey = make(map[string]entry)
		m.entries[tag] = byKey
	}
	byKey[key] = entry{value: value, expiresAt: m.now().Add(m.ttl)}
	return nil
}

func (m *Memory) Invalidate(_ context.Context, tag string) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.versions[tag]++
	delete(m.entries, tag)
	return nil
}
