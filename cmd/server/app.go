package main

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"
	"time"

	"github.com/foodbridge/match-api/internal/config"
	"github.com/foodbridge/match-api/internal/domain"
	"github.com/foodbridge/match-api/internal/platform/gemini"
	"github.com/foodbridge/match-api/internal/platform/postgres"
	"github.com/foodbridge/match-api/internal/platform/redisqueue"
	"github.com/foodbridge/match-api/internal/ranking"
	"github.com/foodbridge/match-api/internal/service"
	"github.com/foodbridge/match-api/internal/service/auth"
	"github.com/foodbridge/match-api/internal/store"
	"github.com/foodbridge/match-api/internal/task"
)

// application holds all the shared application dependencies to simplify management
// and ensure proper cleanup on shutdown.
type application struct {
	config *config.Config
	logger *slog.Logger
	db     *sql.DB

	// Stores
	donorStore          store.DonorStore
	recipientStore      store.RecipientStore
	volunteerStore      store.VolunteerStore
	donationStore       store.DonationStore
	matchTaskStore      store.MatchTaskStore
	confirmedMatchStore store.ConfirmedMatchStore

	// Services
	jwtService      auth.JWTService
	oracle          ranking.Oracle
	matchService    service.MatchService
	donationService service.DonationService
	profileService  service.ProfileService

	// Queue and consumers
	queue      task.Queue
	taskRunner *task.TaskRunner
}

// newApplication wires every dependency and starts the queue consumers. On
// success the application owns db; on failure the caller still does.
func newApplication(ctx context.Context, cfg *config.Config, logger *slog.Logger, db *sql.DB) (*application, error) {
	app := &application{
		config: cfg,
		logger: logger,
		db:     db,
	}

	var err error
	app.jwtService, err = auth.NewJWTService(cfg.Auth)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize JWT service: %w", err)
	}

	app.donorStore = postgres.NewPostgresDonorStore(db, logger)
	app.recipientStore = postgres.NewPostgresRecipientStore(db, logger)
	app.volunteerStore = postgres.NewPostgresVolunteerStore(db, logger)
	app.donationStore = postgres.NewPostgresDonationStore(db, logger)
	app.matchTaskStore = postgres.NewPostgresMatchTaskStore(db, logger)
	app.confirmedMatchStore = postgres.NewPostgresConfirmedMatchStore(db, logger)

	app.oracle, err = gemini.NewRanker(ctx, logger, cfg.LLM)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize ranking oracle: %w", err)
	}

	app.queue, err = newQueue(ctx, cfg.Queue, logger)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize queue: %w", err)
	}

	if err := app.setupServices(); err != nil {
		app.closeQueue()
		return nil, err
	}

	app.taskRunner, err = setupTaskRunner(app)
	if err != nil {
		app.closeQueue()
		return nil, fmt.Errorf("failed to setup task runner: %w", err)
	}

	logger.Info("application initialized")
	return app, nil
}

func (app *application) setupServices() error {
	var err error
	app.matchService, err = service.NewMatchService(
		app.db,
		app.matchTaskStore,
		app.donationStore,
		app.recipientStore,
		app.confirmedMatchStore,
		app.queue,
		app.logger,
	)
	if err != nil {
		return fmt.Errorf("failed to create match service: %w", err)
	}

	loc, err := time.LoadLocation(app.config.Matching.PickupTimezone)
	if err != nil {
		return fmt.Errorf("failed to load pickup timezone: %w", err)
	}
	app.donationService, err = service.NewDonationService(
		app.donationStore,
		app.donorStore,
		domain.NewPickupSchedule(app.config.Matching.PickupHours, loc),
		app.logger,
	)
	if err != nil {
		return fmt.Errorf("failed to create donation service: %w", err)
	}

	app.profileService, err = service.NewProfileService(
		app.donorStore,
		app.recipientStore,
		app.volunteerStore,
		app.logger,
	)
	if err != nil {
		return fmt.Errorf("failed to create profile service: %w", err)
	}
	return nil
}

// newQueue opens the configured queue backend.
func newQueue(ctx context.Context, cfg config.QueueConfig, logger *slog.Logger) (task.Queue, error) {
	switch cfg.Backend {
	case "memory":
		q := task.NewTaskQueue(cfg.BufferSize, logger)
		q.SetPollTimeout(cfg.BlockTimeout)
		logger.Warn("using in-memory queue; pending match requests are lost on restart")
		return q, nil
	case "redis":
		client, err := redisqueue.NewClient(cfg.RedisAddr)
		if err != nil {
			return nil, err
		}
		q, err := redisqueue.New(ctx, client, redisqueue.Config{
			Stream:       cfg.Stream,
			Group:        cfg.Group,
			Consumer:     cfg.Consumer,
			BlockTimeout: cfg.BlockTimeout,
		}, logger)
		if err != nil {
			client.Close()
			return nil, err
		}
		return q, nil
	default:
		return nil, fmt.Errorf("unknown queue backend %q", cfg.Backend)
	}
}

// setupTaskRunner starts the queue consumers that run the matching engine.
func setupTaskRunner(app *application) (*task.TaskRunner, error) {
	engine := task.NewMatchEngine(
		app.matchTaskStore,
		app.recipientStore,
		app.oracle,
		task.MatchEngineConfig{
			CandidateLimit:     app.config.Matching.CandidateLimit,
			MaxRecommendations: app.config.Matching.MaxRecommendations,
			OracleTimeout:      app.config.Matching.OracleTimeout,
		},
		app.logger,
	)

	runner := task.NewTaskRunner(app.queue, engine, task.TaskRunnerConfig{
		WorkerCount:       app.config.Task.WorkerCount,
		BatchSize:         app.config.Queue.BatchSize,
		VisibilityTimeout: app.config.Queue.VisibilityTimeout,
		ReclaimInterval:   app.config.Task.ReclaimInterval,
	}, app.logger)

	if err := runner.Start(); err != nil {
		return nil, fmt.Errorf("failed to start task runner: %w", err)
	}
	return runner, nil
}

// Run serves HTTP until ctx is cancelled, then releases every resource.
func (app *application) Run(ctx context.Context) error {
	defer app.cleanup()
	return app.startHTTPServer(ctx, app.setupRouter())
}

// cleanup handles graceful shutdown of application resources. Consumers stop
// before the queue and database they use are closed.
func (app *application) cleanup() {
	if app.taskRunner != nil {
		app.taskRunner.Stop()
	}

	app.closeQueue()

	if app.db != nil {
		if err := app.db.Close(); err != nil {
			app.logger.Error("error closing database connection", "error", err)
		}
	}

	app.logger.Info("application shutdown completed")
}

func (app *application) closeQueue() {
	if app.queue == nil {
		return
	}
	if err := app.queue.Close(); err != nil {
		app.logger.Error("error closing queue", "error", err)
	}
}
