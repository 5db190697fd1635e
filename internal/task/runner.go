package task

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sync"
	"time"
)

// TaskRunnerConfig holds configuration for the task runner
type TaskRunnerConfig struct {
	// WorkerCount determines how many concurrent workers process deliveries
	WorkerCount int

	// BatchSize caps how many deliveries one Receive or Reclaim call returns
	BatchSize int

	// VisibilityTimeout is how long a delivery may stay unacknowledged before
	// it is reclaimed and handed to another worker. It must exceed the
	// longest expected handler run.
	VisibilityTimeout time.Duration

	// ReclaimInterval defines how often to look for idle deliveries
	// If zero, defaults to 30 seconds
	ReclaimInterval time.Duration

	// ErrorBackoff is the pause after a failed Receive
	// If zero, defaults to 1 second
	ErrorBackoff time.Duration
}

// DefaultTaskRunnerConfig returns a TaskRunnerConfig with reasonable defaults
func DefaultTaskRunnerConfig() TaskRunnerConfig {
	return TaskRunnerConfig{
		WorkerCount:       2,
		BatchSize:         10,
		VisibilityTimeout: time.Minute,
		ReclaimInterval:   30 * time.Second,
		ErrorBackoff:      time.Second,
	}
}

// TaskRunner pulls deliveries from a Consumer and feeds them to a WorkerPool.
// A second loop periodically reclaims deliveries whose worker stalled, which
// is the only retry path for a failed handler.
type TaskRunner struct {
	consumer   Consumer
	pool       *WorkerPool
	ctx        context.Context
	cancelFunc context.CancelFunc
	wg         sync.WaitGroup
	config     TaskRunnerConfig
	logger     *slog.Logger
	stopOnce   sync.Once
}

// NewTaskRunner creates a new TaskRunner
func NewTaskRunner(consumer Consumer, handler Handler, config TaskRunnerConfig, logger *slog.Logger) *TaskRunner {
	if logger == nil {
		logger = slog.Default()
	}
	defaults := DefaultTaskRunnerConfig()
	if config.BatchSize <= 0 {
		config.BatchSize = defaults.BatchSize
	}
	if config.VisibilityTimeout <= 0 {
		config.VisibilityTimeout = defaults.VisibilityTimeout
	}
	if config.ReclaimInterval <= 0 {
		config.ReclaimInterval = defaults.ReclaimInterval
	}
	if config.ErrorBackoff <= 0 {
		config.ErrorBackoff = defaults.ErrorBackoff
	}

	logger = logger.With("component", "task_runner")
	ctx, cancel := context.WithCancel(context.Background())

	return &TaskRunner{
		consumer:   consumer,
		pool:       NewWorkerPool(consumer, handler, WorkerPoolConfig{WorkerCount: config.WorkerCount}, logger),
		ctx:        ctx,
		cancelFunc: cancel,
		config:     config,
		logger:     logger,
	}
}

// SetErrorHandler allows setting a custom error handler function
func (r *TaskRunner) SetErrorHandler(handler func(d Delivery, err error)) {
	r.pool.SetErrorHandler(handler)
}

// Start begins processing. Deliveries left idle by a previous process are
// recovered first.
func (r *TaskRunner) Start() error {
	r.pool.Start()

	if err := r.Recover(r.ctx); err != nil {
		r.pool.Stop()
		return fmt.Errorf("failed to recover deliveries: %w", err)
	}

	r.wg.Add(2)
	go r.fetchLoop()
	go r.reclaimLoop()

	r.logger.Info("task runner started",
		"worker_count", r.pool.workerCount,
		"batch_size", r.config.BatchSize,
		"visibility_timeout", r.config.VisibilityTimeout)
	return nil
}

// Stop gracefully shuts down the task runner. In-flight deliveries finish;
// received but unstarted ones stay pending for redelivery.
func (r *TaskRunner) Stop() {
	r.stopOnce.Do(func() {
		r.cancelFunc()
		r.wg.Wait()
		r.pool.Stop()
		r.logger.Info("task runner stopped")
	})
}

// Recover reclaims deliveries that have been idle past the visibility
// timeout and dispatches them.
func (r *TaskRunner) Recover(ctx context.Context) error {
	deliveries, err := r.consumer.Reclaim(ctx, r.config.VisibilityTimeout, r.config.BatchSize)
	if err != nil {
		return err
	}
	if len(deliveries) > 0 {
		r.logger.Info("recovering idle deliveries", "count", len(deliveries))
	}
	r.dispatch(deliveries)
	return nil
}

func (r *TaskRunner) fetchLoop() {
	defer r.wg.Done()

	for {
		if r.ctx.Err() != nil {
			return
		}

		deliveries, err := r.consumer.Receive(r.ctx, r.config.BatchSize)
		if err != nil {
			if r.ctx.Err() != nil {
				return
			}
			if errors.Is(err, ErrQueueClosed) {
				r.logger.Info("queue closed, fetch loop exiting")
				return
			}
			r.logger.Error("failed to receive deliveries", "error", err)
			select {
			case <-r.ctx.Done():
				return
			case <-time.After(r.config.ErrorBackoff):
			}
			continue
		}

		if !r.dispatch(deliveries) {
			return
		}
	}
}

// reclaimLoop periodically hands idle deliveries to the pool again.
func (r *TaskRunner) reclaimLoop() {
	defer r.wg.Done()

	ticker := time.NewTicker(r.config.ReclaimInterval)
	defer ticker.Stop()

	for {
		select {
		case <-r.ctx.Done():
			return
		case <-ticker.C:
			if err := r.Recover(r.ctx); err != nil && r.ctx.Err() == nil {
				if errors.Is(err, ErrQueueClosed) {
					return
				}
				r.logger.Error("failed to reclaim idle deliveries", "error", err)
			}
		}
	}
}

// dispatch reports false when the runner is shutting down.
func (r *TaskRunner) dispatch(deliveries []Delivery) bool {
	for _, d := range deliveries {
		if !r.pool.Submit(r.ctx, d) {
			return false
		}
	}
	return true
}
