package cache

import (
	"context"
	"time"

	lru "github.com/hashicorp/golang-lru/v2"
)

const (
	defaultMemorySize = 64
	defaultTTL        = 5 * time.Minute
)

type memoryEntry struct {
	value    []byte
	storedAt time.Time
}

// Memory is an in-process LRU cache with a fixed entry lifetime
type Memory struct {
	cache *lru.Cache[string, memoryEntry]
	ttl   time.Duration
	now   func() time.Time
}

// NewMemory creates an LRU cache; non-positive arguments fall back to defaults
func NewMemory(size int, ttl time.Duration) (*Memory, error) {
	if size <= 0 {
		size = defaultMemorySize
	}
	if ttl <= 0 {
		ttl = defaultTTL
	}
	cache, err := lru.New[string, memoryEntry](size)
	if err != nil {
		return nil, err
	}
	return &Memory{cache: cache, ttl: ttl, now: time.Now}, nil
}

func (m *Memory) Get(ctx context.Context, key string) ([]byte, bool) {
	entry, ok := m.cache.Get(key)
	if !ok {
		return nil, false
	}
	if m.now().Sub(entry.storedAt) >= m.ttl {
		m.cache.Remove(key)
		return nil, false
	}
	return entry.value, true
}

func (m *Memory) Set(ctx context.Context, key string, value []byte) {
	m.cache.Add(key, memoryEntry{value: value, storedAt: m.now()})
}

func (m *Memory) Delete(ctx context.Context, keys ...string) {
	for _, key := range keys {
		m.cache.Remove(key)
	}
}
