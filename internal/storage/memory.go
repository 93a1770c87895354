package storage

import (
	"context"
	"sync"
)

type MemoryKV struct {
	mu   sync.RWMutex
	data map[string][]byte
}

func NewMemoryKV() *MemoryKV {
	return &MemoryKV{data: make(map[string][]byte)}
}

func (m *MemoryKV) Get(_ context.Context, key string) ([]byte, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	b, ok := m.data[key]
	if !ok {
		return nil, nil
	}
	out := make([]byte, len(b))
	copy(out, b)
	return out, nil
}

func (m *MemoryKV) Put(_ context.Context, key string, payload []byte) error {
	b := make([]byte, len(payload))
	copy(b, payload)

	m.mu.Lock()
	m.data[key] = b
	m.mu.Unlock()
	return nil
}
