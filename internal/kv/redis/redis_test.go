package redis

import (
	"context"
	"os"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dmitrijs2005/fleetcheck/internal/kv"
	"github.com/dmitrijs2005/fleetcheck/internal/kv/kvtest"
)

var _ kv.Backend = (*Backend)(nil)

func TestConnect_ParsesURLAndAddr(t *testing.T) {
	ctx := context.Background()

	c, err := Connect(ctx, "redis://:secret@cache.internal:6380/2")
	require.NoError(t, err)
	defer c.Close()
	assert.Equal(t, "cache.internal:6380", c.Options().Addr)
	assert.Equal(t, 2, c.Options().DB)
	assert.Equal(t, "secret", c.Options().Password)

	c2, err := Connect(ctx, "localhost:6379")
	require.NoError(t, err)
	defer c2.Close()
	assert.Equal(t, "localhost:6379", c2.Options().Addr)

	_, err = Connect(ctx, "redis://host:6379/notadb")
	require.Error(t, err)
}

func TestOpen_Unreachable(t *testing.T) {
	ctx, cancel := context.WithTimeout(context.Background(), 200*time.Millisecond)
	defer cancel()

	_, err := Open(ctx, "127.0.0.1:1")
	require.Error(t, err)
}

func TestBackend_Conformance(t *testing.T) {
	url := os.Getenv("FLEETCHECK_TEST_REDIS_URL")
	if url == "" {
		t.Skip("FLEETCHECK_TEST_REDIS_URL not set")
	}

	b, err := Open(context.Background(), url)
	require.NoError(t, err)
	defer b.Close()

	kvtest.Conformance(t, kv.WithPrefix(b, "fleetcheck-test:"))
}
