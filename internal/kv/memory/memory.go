// Package memory is a process-local kv.Backend. Contents vanish when the
// process exits.
package memory

import (
	"context"
	"sync"
)

type Backend struct {
	mu   sync.RWMutex
	data map[string]string
}

func New() *Backend {
	return &Backend{data: make(map[string]string)}
}

func (b *Backend) Get(ctx context.Context, key string) (string, bool, error) {
	if err := ctx.Err(); err != nil {
		return "", false, err
	}
	b.mu.RLock()
	defer b.mu.RUnlock()
	v, ok := b.data[key]
	return v, ok, nil
}

func (b *Backend) Set(ctx context.Context, key, value string) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	b.mu.Lock()
	defer b.mu.Unlock()
	b.data[key] = value
	return nil
}

func (b *Backend) Remove(ctx context.Context, key string) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	b.mu.Lock()
	defer b.mu.Unlock()
	delete(b.data, key)
	return nil
}

// Keys returns the number of stored keys.
func (b *Backend) Keys() int {
	b.mu.RLock()
	defer b.mu.RUnlock()
	return len(b.data)
}
