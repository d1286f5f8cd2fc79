package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeTempFile(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))
	return path
}

func Test_parseFile(t *testing.T) {
	jsonPath := writeTempFile(t, "fleet.json", `{
		"driver": "postgres",
		"postgres_dsn": "postgres://fleet@db/fleet",
		"log": {"level": "debug"},
		"backend_timeout": "3s"
	}`)
	yamlPath := writeTempFile(t, "fleet.yaml", `
driver: s3
key_prefix: fleet/
s3:
  bucket: inspections
  region: eu-west-1
  access_key: AKIA
  secret_key: SECRET
  path_style: true
session_secret: s3cr3t
backend_timeout: 1500000000
`)

	t.Run("json overlays only present keys", func(t *testing.T) {
		cfg := &Config{}
		cfg.LoadDefaults()
		parseFile(cfg, []string{"-config", jsonPath})

		want := &Config{}
		want.LoadDefaults()
		want.Driver = DriverPostgres
		want.PostgresDSN = "postgres://fleet@db/fleet"
		want.LogLevel = "debug"
		want.BackendTimeout = 3 * time.Second

		assert.Empty(t, cmp.Diff(want, cfg))
	})

	t.Run("yaml by extension", func(t *testing.T) {
		cfg := &Config{}
		cfg.LoadDefaults()
		parseFile(cfg, []string{"-c", yamlPath})

		assert.Equal(t, DriverS3, cfg.Driver)
		assert.Equal(t, "fleet/", cfg.KeyPrefix)
		assert.Equal(t, "inspections", cfg.S3Bucket)
		assert.Equal(t, "eu-west-1", cfg.S3Region)
		assert.Equal(t, "AKIA", cfg.S3AccessKey)
		assert.Equal(t, "SECRET", cfg.S3SecretKey)
		assert.True(t, cfg.S3PathStyle)
		assert.Equal(t, "s3cr3t", cfg.SessionSecret)
		assert.Equal(t, 1500*time.Millisecond, cfg.BackendTimeout)
		assert.Equal(t, "text", cfg.LogFormat)
	})

	t.Run("no flag leaves config alone", func(t *testing.T) {
		cfg := &Config{Driver: DriverMemory, BackendTimeout: 42 * time.Second}
		parseFile(cfg, []string{"-b", "file"})

		assert.Equal(t, DriverMemory, cfg.Driver)
		assert.Equal(t, 42*time.Second, cfg.BackendTimeout)
	})

	t.Run("invalid json panics", func(t *testing.T) {
		bad := writeTempFile(t, "bad.json", `{ this is not valid json`)
		require.Panics(t, func() { parseFile(&Config{}, []string{"-config", bad}) })
	})

	t.Run("missing file panics", func(t *testing.T) {
		missing := filepath.Join(t.TempDir(), "nope.yaml")
		require.Panics(t, func() { parseFile(&Config{}, []string{"-c", missing}) })
	})
}

func TestLoad_FlagsOverrideFile(t *testing.T) {
	path := writeTempFile(t, "fleet.yml", "driver: redis\nredis_url: localhost:6379\n")

	cfg := load([]string{"-c", path, "-b", "memory"})

	assert.Equal(t, DriverMemory, cfg.Driver)
	assert.Equal(t, "localhost:6379", cfg.RedisURL)
}
