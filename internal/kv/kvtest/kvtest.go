// Package kvtest provides helpers for testing kv.Backend drivers and their
// consumers.
package kvtest

import (
	"context"
	"strings"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dmitrijs2005/fleetcheck/internal/kv"
)

// Conformance checks the behavior every driver must share. Keys are
// namespaced with t.Name() so a shared server can be reused.
func Conformance(t *testing.T, b kv.Backend) {
	t.Helper()
	ctx := context.Background()
	ns := strings.ReplaceAll(t.Name(), "/", "_") + ":"

	t.Run("absent key", func(t *testing.T) {
		v, ok, err := b.Get(ctx, ns+"absent")
		require.NoError(t, err)
		assert.False(t, ok)
		assert.Empty(t, v)
	})

	t.Run("set then get", func(t *testing.T) {
		require.NoError(t, b.Set(ctx, ns+"k", `[{"id":"1"}]`))
		v, ok, err := b.Get(ctx, ns+"k")
		require.NoError(t, err)
		assert.True(t, ok)
		assert.Equal(t, `[{"id":"1"}]`, v)
	})

	t.Run("overwrite", func(t *testing.T) {
		require.NoError(t, b.Set(ctx, ns+"k", "old"))
		require.NoError(t, b.Set(ctx, ns+"k", "new"))
		v, _, err := b.Get(ctx, ns+"k")
		require.NoError(t, err)
		assert.Equal(t, "new", v)
	})

	t.Run("unicode value", func(t *testing.T) {
		val := "Motorista João ⚠️ ação"
		require.NoError(t, b.Set(ctx, ns+"u", val))
		v, _, err := b.Get(ctx, ns+"u")
		require.NoError(t, err)
		assert.Equal(t, val, v)
	})

	t.Run("remove is idempotent", func(t *testing.T) {
		require.NoError(t, b.Set(ctx, ns+"r", "x"))
		require.NoError(t, b.Remove(ctx, ns+"r"))
		require.NoError(t, b.Remove(ctx, ns+"r"))
		_, ok, err := b.Get(ctx, ns+"r")
		require.NoError(t, err)
		assert.False(t, ok)
	})

	t.Run("remove absent", func(t *testing.T) {
		require.NoError(t, b.Remove(ctx, ns+"never-set"))
	})
}

// Faulty wraps a backend and fails the operations whose error is set.
// When SetErrKey is non-empty SetErr only applies to that key. Faulty also
// counts calls so tests can assert that nothing was written.
type Faulty struct {
	kv.Backend

	mu        sync.Mutex
	GetErr    error
	SetErr    error
	SetErrKey string
	RemoveErr error
	Gets      int
	Sets      int
	Removes   int
}

func NewFaulty(b kv.Backend) *Faulty { return &Faulty{Backend: b} }

func (f *Faulty) Get(ctx context.Context, key string) (string, bool, error) {
	f.mu.Lock()
	f.Gets++
	err := f.GetErr
	f.mu.Unlock()
	if err != nil {
		return "", false, err
	}
	return f.Backend.Get(ctx, key)
}

func (f *Faulty) Set(ctx context.Context, key, value string) error {
	f.mu.Lock()
	f.Sets++
	err := f.SetErr
	if f.SetErrKey != "" && f.SetErrKey != key {
		err = nil
	}
	f.mu.Unlock()
	if err != nil {
		return err
	}
	return f.Backend.Set(ctx, key, value)
}

func (f *Faulty) Remove(ctx context.Context, key string) error {
	f.mu.Lock()
	f.Removes++
	err := f.RemoveErr
	f.mu.Unlock()
	if err != nil {
		return err
	}
	return f.Backend.Remove(ctx, key)
}
