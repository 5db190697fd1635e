// Package main runs the match API: the HTTP server, the match request queue
// consumers, and the embedded database migrations.
package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/foodbridge/match-api/internal/config"
	"github.com/foodbridge/match-api/internal/platform/logger"
	"github.com/foodbridge/match-api/internal/platform/postgres"
)

type options struct {
	migrate string
}

func parseFlags(args []string) (options, error) {
	var opts options
	fs := flag.NewFlagSet("server", flag.ContinueOnError)
	fs.StringVar(&opts.migrate, "migrate", "", "run a migration command (up, down, status, version) and exit")
	if err := fs.Parse(args); err != nil {
		return opts, err
	}
	switch opts.migrate {
	case "", "up", "down", "status", "version":
	default:
		return opts, fmt.Errorf("unknown migrate command %q", opts.migrate)
	}
	return opts, nil
}

func main() {
	if err := run(os.Args[1:]); err != nil {
		slog.Error("server exited with error", "error", err)
		os.Exit(1)
	}
}

func run(args []string) error {
	opts, err := parseFlags(args)
	if err != nil {
		if errors.Is(err, flag.ErrHelp) {
			return nil
		}
		return err
	}

	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("failed to load configuration: %w", err)
	}

	log, err := logger.Setup(cfg.Server)
	if err != nil {
		return fmt.Errorf("failed to set up logger: %w", err)
	}
	log.Info("server configuration loaded",
		"port", cfg.Server.Port,
		"log_level", cfg.Server.LogLevel,
		"queue_backend", cfg.Queue.Backend,
		"worker_count", cfg.Task.WorkerCount)

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	db, err := setupAppDatabase(ctx, cfg, log)
	if err != nil {
		return err
	}

	if opts.migrate != "" {
		defer func() {
			if err := db.Close(); err != nil {
				log.Error("error closing database connection", "error", err)
			}
		}()
		return postgres.Migrate(ctx, db, opts.migrate, log)
	}

	app, err := newApplication(ctx, cfg, log, db)
	if err != nil {
		if closeErr := db.Close(); closeErr != nil {
			log.Error("error closing database connection", "error", closeErr)
		}
		return fmt.Errorf("failed to initialize application: %w", err)
	}
	return app.Run(ctx)
}
