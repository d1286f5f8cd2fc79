// Package config loads runtime configuration for the FleetCheck CLI.
//
// Sources & precedence
//
//  1. Built-in defaults (see (*Config).LoadDefaults).
//  2. Optional config file (see parseFile) selected via -c or -config.
//     Files ending in .yaml or .yml are decoded as YAML, anything else as JSON.
//  3. Command-line flags (see parseFlags), which override earlier values.
//
// Supported flags
//
//	-b string        backend driver: memory, file, sqlite, postgres, redis, s3
//	-prefix string   namespace prefix prepended to every backend key
//	-dir string      data directory for the file driver
//	-db string       database path for the sqlite driver
//	-dsn string      connection string for the postgres driver
//	-redis string    redis:// URL or host:port for the redis driver
//	-bucket string   bucket for the s3 driver
//	-endpoint string custom S3 endpoint (MinIO and similar)
//	-l string        log level: debug, info, warn, error
//	-t int           backend timeout in seconds
//
// # File schema
//
// Intervals use timex.Duration, so values can be either strings like "5s"
// or integer nanoseconds:
//
//	{
//	  "driver": "s3",
//	  "key_prefix": "fleet/",
//	  "s3": {"bucket": "inspections", "region": "eu-west-1", "path_style": true},
//	  "session_secret": "change-me",
//	  "log": {"level": "debug", "format": "json"},
//	  "backend_timeout": "3s"
//	}
//
// Keys absent from the file keep their previous value.
//
// S3 credentials given in the file take priority; when empty the AWS default
// credential chain applies.
package config
