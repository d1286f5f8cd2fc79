package kv

import (
	"context"
	"time"
)

type timeoutBackend struct {
	next Backend
	d    time.Duration
}

// WithTimeout bounds every call to b by d. A non-positive d returns b.
func WithTimeout(b Backend, d time.Duration) Backend {
	if d <= 0 {
		return b
	}
	return &timeoutBackend{next: b, d: d}
}

func (t *timeoutBackend) Get(ctx context.Context, key string) (string, bool, error) {
	ctx, cancel := context.WithTimeout(ctx, t.d)
	defer cancel()
	return t.next.Get(ctx, key)
}

func (t *timeoutBackend) Set(ctx context.Context, key, value string) error {
	ctx, cancel := context.WithTimeout(ctx, t.d)
	defer cancel()
	return t.next.Set(ctx, key, value)
}

func (t *timeoutBackend) Remove(ctx context.Context, key string) error {
	ctx, cancel := context.WithTimeout(ctx, t.d)
	defer cancel()
	return t.next.Remove(ctx, key)
}
