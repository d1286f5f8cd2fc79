// Package file is a kv.Backend that keeps one file per key in a directory.
//
// Writes go through a temp file and rename. A lock file in the directory
// (via gofrs/flock) serializes writers across processes; readers take the
// shared lock, which is held while any reader in this process is active.
package file

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"net/url"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/gofrs/flock"

	"github.com/dmitrijs2005/fleetcheck/internal/filex"
)

const (
	lockName   = ".fleetcheck.lock"
	valueExt   = ".kv"
	retryDelay = 10 * time.Millisecond
)

type Backend struct {
	dir  string
	mu   sync.RWMutex
	lock *flock.Flock

	readersMu sync.Mutex
	readers   int
}

// Open creates dir if needed and returns a backend rooted at it.
func Open(dir string) (*Backend, error) {
	abs, err := filex.EnsureDir(dir)
	if err != nil {
		return nil, err
	}
	return &Backend{dir: abs, lock: flock.New(filepath.Join(abs, lockName))}, nil
}

// Dir is the absolute data directory.
func (b *Backend) Dir() string { return b.dir }

func (b *Backend) path(key string) string {
	return filepath.Join(b.dir, url.PathEscape(key)+valueExt)
}

func (b *Backend) Get(ctx context.Context, key string) (string, bool, error) {
	b.mu.RLock()
	defer b.mu.RUnlock()

	if err := b.rlock(ctx); err != nil {
		return "", false, err
	}
	defer b.runlock()

	data, err := os.ReadFile(b.path(key))
	if errors.Is(err, fs.ErrNotExist) {
		return "", false, nil
	}
	if err != nil {
		return "", false, fmt.Errorf("failed to read %s: %w", key, err)
	}
	return string(data), true, nil
}

func (b *Backend) Set(ctx context.Context, key, value string) error {
	b.mu.Lock()
	defer b.mu.Unlock()

	if err := b.acquire(ctx, true); err != nil {
		return err
	}
	defer b.release()

	if err := filex.WriteFileAtomic(b.path(key), []byte(value), 0o600); err != nil {
		return fmt.Errorf("failed to write %s: %w", key, err)
	}
	return nil
}

func (b *Backend) Remove(ctx context.Context, key string) error {
	b.mu.Lock()
	defer b.mu.Unlock()

	if err := b.acquire(ctx, true); err != nil {
		return err
	}
	defer b.release()

	err := os.Remove(b.path(key))
	if err != nil && !errors.Is(err, fs.ErrNotExist) {
		return fmt.Errorf("failed to remove %s: %w", key, err)
	}
	return nil
}

func (b *Backend) acquire(ctx context.Context, exclusive bool) error {
	var (
		ok  bool
		err error
	)
	if exclusive {
		ok, err = b.lock.TryLockContext(ctx, retryDelay)
	} else {
		ok, err = b.lock.TryRLockContext(ctx, retryDelay)
	}
	if err != nil {
		return fmt.Errorf("lock %s: %w", b.dir, err)
	}
	if !ok {
		return fmt.Errorf("lock %s: not acquired", b.dir)
	}
	return nil
}

// rlock takes the shared file lock for the first concurrent reader only.
func (b *Backend) rlock(ctx context.Context) error {
	b.readersMu.Lock()
	defer b.readersMu.Unlock()
	if b.readers == 0 {
		if err := b.acquire(ctx, false); err != nil {
			return err
		}
	}
	b.readers++
	return nil
}

// runlock drops the shared file lock once the last reader is done.
func (b *Backend) runlock() {
	b.readersMu.Lock()
	defer b.readersMu.Unlock()
	b.readers--
	if b.readers == 0 {
		b.release()
	}
}

func (b *Backend) release() {
	_ = b.lock.Unlock()
}

// Close releases the lock file handle.
func (b *Backend) Close() error {
	return b.lock.Close()
}
