package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"

	"github.com/dmitrijs2005/fleetcheck/internal/app"
	"github.com/dmitrijs2005/fleetcheck/internal/buildinfo"
	"github.com/dmitrijs2005/fleetcheck/internal/cli"
	"github.com/dmitrijs2005/fleetcheck/internal/config"
	"github.com/dmitrijs2005/fleetcheck/internal/logging"
)

func main() {

	buildinfo.PrintBuildData(os.Stdout)

	cfg := config.LoadConfig()
	if err := cfg.Validate(); err != nil {
		log.Fatalf("invalid configuration: %v", err)
	}

	logger, err := logging.New(os.Stderr, cfg.LogLevel, cfg.LogFormat)
	if err != nil {
		log.Fatalf("%v", err)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	a, err := app.New(ctx, cfg, logger)
	if err != nil {
		log.Fatalf("%v", err)
	}
	defer func() {
		if err := a.Close(); err != nil {
			logger.Error(ctx, "close backend", "err", err)
		}
	}()

	repl := cli.NewApp(a.Sessions, a.Checklists,
		cli.WithGatherer(a.Registry),
		cli.WithLogger(logger),
		cli.WithExportDir(cfg.ExportDir),
	)
	if err := repl.Run(ctx); err != nil {
		logger.Error(ctx, "fleetcheck stopped", "err", err)
	}

}
