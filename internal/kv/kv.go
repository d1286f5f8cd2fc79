// Package kv defines the string key-value backend FleetCheck persists its
// state in, plus decorators shared by every driver.
//
// Drivers live in subpackages (memory, file, sqlite, postgres, redis, s3).
// A driver returns the error of the underlying medium as is; turning read
// failures into "absent" is up to the consumer.
package kv

import "context"

// Backend stores opaque string values by string key.
type Backend interface {
	// Get returns the value under key. found is false when the key is absent.
	Get(ctx context.Context, key string) (value string, found bool, err error)
	// Set creates or replaces the value under key.
	Set(ctx context.Context, key, value string) error
	// Remove deletes key. Removing an absent key is not an error.
	Remove(ctx context.Context, key string) error
}

type prefixed struct {
	next   Backend
	prefix string
}

// WithPrefix namespaces every key passed to b. An empty prefix returns b.
func WithPrefix(b Backend, prefix string) Backend {
	if prefix == "" {
		return b
	}
	return &prefixed{next: b, prefix: prefix}
}

func (p *prefixed) Get(ctx context.Context, key string) (string, bool, error) {
	return p.next.Get(ctx, p.prefix+key)
}

func (p *prefixed) Set(ctx context.Context, key, value string) error {
	return p.next.Set(ctx, p.prefix+key, value)
}

func (p *prefixed) Remove(ctx context.Context, key string) error {
	return p.next.Remove(ctx, p.prefix+key)
}
