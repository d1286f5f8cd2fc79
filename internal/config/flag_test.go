package config

import (
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseFlags(t *testing.T) {
	tests := []struct {
		expected    *Config
		name        string
		args        []string
		expectPanic bool
	}{
		{
			name: "driver and timeout",
			args: []string{"-b", "redis", "-redis", "redis://localhost:6379/0", "-t", "10"},
			expected: &Config{
				Driver:         DriverRedis,
				RedisURL:       "redis://localhost:6379/0",
				BackendTimeout: 10 * time.Second,
			},
		},
		{
			name: "s3 flags and unrelated args",
			args: []string{"-c", "cfg.json", "-b=s3", "-bucket", "inspections", "-endpoint", "http://minio:9000", "-x", "-out", "/tmp/docs"},
			expected: &Config{
				Driver:     DriverS3,
				S3Bucket:   "inspections",
				S3Endpoint: "http://minio:9000",
				ExportDir:  "/tmp/docs",
			},
		},
		{
			name:        "incorrect timeout",
			args:        []string{"-t", "abc"},
			expectPanic: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := &Config{}

			if tt.expectPanic {
				require.Panics(t, func() { parseFlags(cfg, tt.args) })
				return
			}

			require.NotPanics(t, func() { parseFlags(cfg, tt.args) })
			assert.Empty(t, cmp.Diff(tt.expected, cfg))
		})
	}
}

func TestParseFlags_TimeoutUntouchedWithoutFlag(t *testing.T) {
	cfg := &Config{BackendTimeout: 250 * time.Millisecond}
	parseFlags(cfg, []string{"-l", "debug"})

	assert.Equal(t, 250*time.Millisecond, cfg.BackendTimeout)
	assert.Equal(t, "debug", cfg.LogLevel)
}
