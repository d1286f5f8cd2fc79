package config

import (
	"encoding/json"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/dmitrijs2005/fleetcheck/internal/flagx"
	"github.com/dmitrijs2005/fleetcheck/internal/timex"
)

// FileConfig is a DTO used exclusively for config file decoding. The same
// tags serve JSON and YAML.
type FileConfig struct {
	Driver         string         `json:"driver" yaml:"driver"`
	KeyPrefix      string         `json:"key_prefix" yaml:"key_prefix"`
	FileDir        string         `json:"file_dir" yaml:"file_dir"`
	SQLitePath     string         `json:"sqlite_path" yaml:"sqlite_path"`
	PostgresDSN    string         `json:"postgres_dsn" yaml:"postgres_dsn"`
	RedisURL       string         `json:"redis_url" yaml:"redis_url"`
	S3             S3FileConfig   `json:"s3" yaml:"s3"`
	SessionSecret  string         `json:"session_secret" yaml:"session_secret"`
	ExportDir      string         `json:"export_dir" yaml:"export_dir"`
	Log            LogFileConfig  `json:"log" yaml:"log"`
	BackendTimeout timex.Duration `json:"backend_timeout" yaml:"backend_timeout"`
}

type S3FileConfig struct {
	Bucket    string `json:"bucket" yaml:"bucket"`
	Region    string `json:"region" yaml:"region"`
	Endpoint  string `json:"endpoint" yaml:"endpoint"`
	AccessKey string `json:"access_key" yaml:"access_key"`
	SecretKey string `json:"secret_key" yaml:"secret_key"`
	PathStyle bool   `json:"path_style" yaml:"path_style"`
}

type LogFileConfig struct {
	Level  string `json:"level" yaml:"level"`
	Format string `json:"format" yaml:"format"`
}

func fileConfigFrom(cfg *Config) FileConfig {
	return FileConfig{
		Driver:      cfg.Driver,
		KeyPrefix:   cfg.KeyPrefix,
		FileDir:     cfg.FileDir,
		SQLitePath:  cfg.SQLitePath,
		PostgresDSN: cfg.PostgresDSN,
		RedisURL:    cfg.RedisURL,
		S3: S3FileConfig{
			Bucket:    cfg.S3Bucket,
			Region:    cfg.S3Region,
			Endpoint:  cfg.S3Endpoint,
			AccessKey: cfg.S3AccessKey,
			SecretKey: cfg.S3SecretKey,
			PathStyle: cfg.S3PathStyle,
		},
		SessionSecret:  cfg.SessionSecret,
		ExportDir:      cfg.ExportDir,
		Log:            LogFileConfig{Level: cfg.LogLevel, Format: cfg.LogFormat},
		BackendTimeout: timex.Duration{Duration: cfg.BackendTimeout},
	}
}

func (fc FileConfig) apply(cfg *Config) {
	cfg.Driver = fc.Driver
	cfg.KeyPrefix = fc.KeyPrefix
	cfg.FileDir = fc.FileDir
	cfg.SQLitePath = fc.SQLitePath
	cfg.PostgresDSN = fc.PostgresDSN
	cfg.RedisURL = fc.RedisURL
	cfg.S3Bucket = fc.S3.Bucket
	cfg.S3Region = fc.S3.Region
	cfg.S3Endpoint = fc.S3.Endpoint
	cfg.S3AccessKey = fc.S3.AccessKey
	cfg.S3SecretKey = fc.S3.SecretKey
	cfg.S3PathStyle = fc.S3.PathStyle
	cfg.SessionSecret = fc.SessionSecret
	cfg.ExportDir = fc.ExportDir
	cfg.LogLevel = fc.Log.Level
	cfg.LogFormat = fc.Log.Format
	cfg.BackendTimeout = fc.BackendTimeout.Duration
}

// parseFile overlays Config with values loaded from the file named by -c or
// -config. Without either flag it does nothing.
//
// The DTO is pre-filled from cfg, so keys missing from the file leave the
// current values alone. Panics on read or decode errors.
func parseFile(cfg *Config, args []string) {
	path := flagx.ConfigFileFlag(args)
	if path == "" {
		return
	}

	data, err := os.ReadFile(path)
	if err != nil {
		panic(err)
	}

	fc := fileConfigFrom(cfg)

	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		err = yaml.Unmarshal(data, &fc)
	default:
		err = json.Unmarshal(data, &fc)
	}
	if err != nil {
		panic(err)
	}

	fc.apply(cfg)
}
