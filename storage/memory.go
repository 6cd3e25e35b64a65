package storage

import (
    "context"
    "sync"
)

// MemoryKV is a map-backed KV used by tests and as a fallback when no
// Redis URL is configured. Carts stored here do not survive restarts.
type MemoryKV struct {
    mu   sync.RWMutex
    data map[string]string
}

func NewMemoryKV() *MemoryKV {
    return &MemoryKV{data: make(map[string]string)}
}

func (m *MemoryKV) Get(ctx context.Context, key string) (string, error) {
    m.mu.RLock()
    defer m.mu.RUnlock()
    val, ok := m.data[key]
    if !ok {
        return "", ErrNotFound
    }
    return val, nil
}

func (m *MemoryKV) Set(ctx context.Context, key, value string) error {
    m.mu.Lock()
    defer m.mu.Unlock()
    m.data[key] = value
    return nil
}

func (m *MemoryKV) Remove(ctx context.Context, key string) error {
    m.mu.Lock()
    defer m.mu.Unlock()
    delete(m.data, key)
    return nil
}
