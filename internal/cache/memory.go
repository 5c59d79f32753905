package cache

import (
	"context"
	"sync"
	"time"

	gocache "github.com/patrickmn/go-cache"
)

// Memory es el backend in-process sobre go-cache.
type Memory struct {
	c *gocache.Cache

	// go-cache no tiene un incr-or-create atómico; el mutex cubre ese gap
	mu sync.Mutex
}

func NewMemory(defaultTTL time.Duration) *Memory {
	return &Memory{c: gocache.New(defaultTTL, time.Minute)}
}

func (m *Memory) Get(_ context.Context, key string) (string, error) {
	v, ok := m.c.Get(key)
	if !ok {
		return "", ErrNotFound
	}
	s, _ := v.(string)
	return s, nil
}

func (m *Memory) Set(_ context.Context, key, value string, ttl time.Duration) error {
	if ttl == 0 {
		ttl = gocache.NoExpiration
	}
	m.c.Set(key, value, ttl)
	return nil
}

func (m *Memory) Delete(_ context.Context, key string) error {
	m.c.Delete(key)
	return nil
}

func (m *Memory) Incr(_ context.Context, key string, ttl time.Duration) (int64, time.Duration, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if err := m.c.Add(key, int64(1), ttl); err == nil {
		return 1, ttl, nil
	}
	n, err := m.c.IncrementInt64(key, 1)
	if err != nil {
		// la key expiró entre Add e Increment
		m.c.Set(key, int64(1), ttl)
		return 1, ttl, nil
	}
	remaining := ttl
	if _, exp, ok := m.c.GetWithExpiration(key); ok && !exp.IsZero() {
		remaining = time.Until(exp)
	}
	return n, remaining, nil
}

func (m *Memory) Ping(context.Context) error { return nil }

func (m *Memory) Close() error { return nil }
