package config

import (
	"flag"
	"io"
	"time"

	"github.com/dmitrijs2005/fleetcheck/internal/flagx"
)

var knownFlags = []string{
	"-b", "-prefix", "-dir", "-db", "-dsn", "-redis", "-bucket", "-endpoint", "-out", "-l", "-t",
}

// parseFlags populates selected Config fields from command-line flags.
//
// args are filtered with flagx.FilterArgs first, so flags owned by other
// components (like -c) pass through untouched. Panics on malformed values.
func parseFlags(cfg *Config, args []string) {
	filtered := flagx.FilterArgs(args, knownFlags)

	fs := flag.NewFlagSet("fleetcheck", flag.ContinueOnError)
	fs.SetOutput(io.Discard)

	fs.StringVar(&cfg.Driver, "b", cfg.Driver, "backend driver")
	fs.StringVar(&cfg.KeyPrefix, "prefix", cfg.KeyPrefix, "backend key prefix")
	fs.StringVar(&cfg.FileDir, "dir", cfg.FileDir, "data directory (file driver)")
	fs.StringVar(&cfg.SQLitePath, "db", cfg.SQLitePath, "database path (sqlite driver)")
	fs.StringVar(&cfg.PostgresDSN, "dsn", cfg.PostgresDSN, "connection string (postgres driver)")
	fs.StringVar(&cfg.RedisURL, "redis", cfg.RedisURL, "redis URL (redis driver)")
	fs.StringVar(&cfg.S3Bucket, "bucket", cfg.S3Bucket, "bucket (s3 driver)")
	fs.StringVar(&cfg.S3Endpoint, "endpoint", cfg.S3Endpoint, "custom endpoint (s3 driver)")
	fs.StringVar(&cfg.ExportDir, "out", cfg.ExportDir, "directory for exported documents")
	fs.StringVar(&cfg.LogLevel, "l", cfg.LogLevel, "log level")
	timeout := fs.Int("t", int(cfg.BackendTimeout.Seconds()), "backend timeout (in seconds)")

	if err := fs.Parse(filtered); err != nil {
		panic(err)
	}

	fs.Visit(func(f *flag.Flag) {
		if f.Name == "t" {
			cfg.BackendTimeout = time.Duration(*timeout) * time.Second
		}
	})
}
