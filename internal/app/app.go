// Package app wires configuration into the FleetCheck object graph: the
// key-value backend and its decorators, the session manager and the
// checklist service.
package app

import (
	"context"
	"errors"
	"fmt"

	"github.com/prometheus/client_golang/prometheus"

	"github.com/dmitrijs2005/fleetcheck/internal/config"
	"github.com/dmitrijs2005/fleetcheck/internal/cryptox"
	"github.com/dmitrijs2005/fleetcheck/internal/kv"
	"github.com/dmitrijs2005/fleetcheck/internal/kv/file"
	"github.com/dmitrijs2005/fleetcheck/internal/kv/memory"
	"github.com/dmitrijs2005/fleetcheck/internal/kv/postgres"
	"github.com/dmitrijs2005/fleetcheck/internal/kv/redis"
	"github.com/dmitrijs2005/fleetcheck/internal/kv/s3"
	"github.com/dmitrijs2005/fleetcheck/internal/kv/sqlite"
	"github.com/dmitrijs2005/fleetcheck/internal/logging"
	"github.com/dmitrijs2005/fleetcheck/internal/repositories/checklists"
	"github.com/dmitrijs2005/fleetcheck/internal/services"
	"github.com/dmitrijs2005/fleetcheck/internal/session"
)

// App is the assembled object graph. Close releases the backend.
type App struct {
	Backend    kv.Backend
	Sessions   *session.Manager
	Checklists services.ChecklistService
	Registry   *prometheus.Registry

	closers []func() error
}

// New opens the configured backend, wraps it with the key prefix, the
// per-call timeout and metrics, and builds the services on top.
func New(ctx context.Context, cfg *config.Config, log logging.Logger) (*App, error) {
	if log == nil {
		log = logging.NewNop()
	}

	raw, closer, err := OpenBackend(ctx, cfg)
	if err != nil {
		return nil, err
	}
	a := &App{Registry: prometheus.NewRegistry()}
	if closer != nil {
		a.closers = append(a.closers, closer)
	}

	metrics, err := kv.NewMetrics(a.Registry)
	if err != nil {
		_ = a.Close()
		return nil, fmt.Errorf("register metrics: %w", err)
	}

	b := kv.WithPrefix(raw, cfg.KeyPrefix)
	b = kv.WithTimeout(b, cfg.BackendTimeout)
	a.Backend = kv.Instrument(b, cfg.Driver, metrics)

	codec, err := codecFor(ctx, cfg, log)
	if err != nil {
		_ = a.Close()
		return nil, err
	}

	a.Sessions = session.NewManager(a.Backend, session.WithCodec(codec), session.WithLogger(log))
	a.Checklists = services.NewChecklistService(
		checklists.NewStore(a.Backend, checklists.WithLogger(log)),
		services.WithLogger(log),
	)

	log.Info(ctx, "backend ready", "driver", cfg.Driver, "prefix", cfg.KeyPrefix)
	return a, nil
}

// codecFor signs credentials with a key derived from the session secret,
// or falls back to the plain encoding when no secret is configured.
func codecFor(ctx context.Context, cfg *config.Config, log logging.Logger) (session.Codec, error) {
	if cfg.SessionSecret == "" {
		return session.PlainCodec{}, nil
	}
	key := cryptox.DeriveSigningKey([]byte(cfg.SessionSecret), cryptox.SessionKeySalt)
	log.Info(ctx, "signed session credentials enabled", "key_id", cryptox.KeyID(key))
	codec, err := session.NewSignedCodec(key)
	if err != nil {
		return nil, fmt.Errorf("session codec: %w", err)
	}
	return codec, nil
}

// OpenBackend opens the driver named by cfg.Driver. The returned closer may
// be nil.
func OpenBackend(ctx context.Context, cfg *config.Config) (kv.Backend, func() error, error) {
	switch cfg.Driver {
	case config.DriverMemory:
		return memory.New(), nil, nil

	case config.DriverFile:
		b, err := file.Open(cfg.FileDir)
		if err != nil {
			return nil, nil, fmt.Errorf("open file backend: %w", err)
		}
		return b, b.Close, nil

	case config.DriverSQLite:
		b, db, err := sqlite.Open(ctx, cfg.SQLitePath)
		if err != nil {
			return nil, nil, fmt.Errorf("open sqlite backend: %w", err)
		}
		return b, db.Close, nil

	case config.DriverPostgres:
		b, db, err := postgres.Open(ctx, cfg.PostgresDSN)
		if err != nil {
			return nil, nil, fmt.Errorf("open postgres backend: %w", err)
		}
		return b, db.Close, nil

	case config.DriverRedis:
		b, err := redis.Open(ctx, cfg.RedisURL)
		if err != nil {
			return nil, nil, fmt.Errorf("open redis backend: %w", err)
		}
		return b, b.Close, nil

	case config.DriverS3:
		b, err := s3.New(ctx, s3.Config{
			Bucket:          cfg.S3Bucket,
			Region:          cfg.S3Region,
			Endpoint:        cfg.S3Endpoint,
			AccessKeyID:     cfg.S3AccessKey,
			SecretAccessKey: cfg.S3SecretKey,
			PathStyle:       cfg.S3PathStyle,
		})
		if err != nil {
			return nil, nil, fmt.Errorf("open s3 backend: %w", err)
		}
		return b, nil, nil
	}
	return nil, nil, fmt.Errorf("unknown backend driver %q", cfg.Driver)
}

// Close releases backend resources. Safe to call more than once.
func (a *App) Close() error {
	var errs []error
	for _, c := range a.closers {
		if err := c(); err != nil {
			errs = append(errs, err)
		}
	}
	a.closers = nil
	return errors.Join(errs...)
}
