package config

import (
	"fmt"
	"os"
	"time"
)

// Supported key-value backend drivers.
const (
	DriverMemory   = "memory"
	DriverFile     = "file"
	DriverSQLite   = "sqlite"
	DriverPostgres = "postgres"
	DriverRedis    = "redis"
	DriverS3       = "s3"
)

// Config holds runtime settings for the FleetCheck CLI.
//
// Driver selects the key-value backend; only the fields of the selected
// driver are consulted. SessionSecret switches credentials from the plain
// encoding to signed tokens when non-empty.
type Config struct {
	Driver    string
	KeyPrefix string

	FileDir     string
	SQLitePath  string
	PostgresDSN string
	RedisURL    string

	S3Bucket    string
	S3Region    string
	S3Endpoint  string
	S3AccessKey string
	S3SecretKey string
	S3PathStyle bool

	SessionSecret string

	ExportDir string

	LogLevel  string
	LogFormat string

	BackendTimeout time.Duration
}

// LoadDefaults populates c with sensible defaults.
func (c *Config) LoadDefaults() {
	c.Driver = DriverSQLite
	c.KeyPrefix = ""
	c.FileDir = "fleetcheck-data"
	c.SQLitePath = "fleetcheck.db"
	c.S3Region = "us-east-1"
	c.ExportDir = "."
	c.LogLevel = "info"
	c.LogFormat = "text"
	c.BackendTimeout = 5 * time.Second
}

// Validate reports settings the selected driver cannot work with.
func (c *Config) Validate() error {
	switch c.Driver {
	case DriverMemory:
	case DriverFile:
		if c.FileDir == "" {
			return fmt.Errorf("file driver requires a data directory")
		}
	case DriverSQLite:
		if c.SQLitePath == "" {
			return fmt.Errorf("sqlite driver requires a database path")
		}
	case DriverPostgres:
		if c.PostgresDSN == "" {
			return fmt.Errorf("postgres driver requires a DSN")
		}
	case DriverRedis:
		if c.RedisURL == "" {
			return fmt.Errorf("redis driver requires a URL")
		}
	case DriverS3:
		if c.S3Bucket == "" {
			return fmt.Errorf("s3 driver requires a bucket")
		}
	default:
		return fmt.Errorf("unknown backend driver %q", c.Driver)
	}
	if c.BackendTimeout < 0 {
		return fmt.Errorf("backend timeout must not be negative")
	}
	return nil
}

// LoadConfig constructs a Config from os.Args, applying defaults, then the
// optional config file, then command-line flags. Later sources take
// precedence over earlier ones.
func LoadConfig() *Config {
	return load(os.Args[1:])
}

func load(args []string) *Config {
	cfg := &Config{}
	cfg.LoadDefaults()
	parseFile(cfg, args)
	parseFlags(cfg, args)
	return cfg
}
