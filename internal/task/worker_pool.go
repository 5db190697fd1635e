package task

import (
	"context"
	"fmt"
	"log/slog"
	"sync"

	"github.com/foodbridge/match-api/internal/platform/logger"
)

// WorkerPool manages a pool of worker goroutines that run a Handler over
// deliveries and acknowledge the ones it accepts. It handles graceful
// shutdown and worker lifecycle.
type WorkerPool struct {
	// consumer acknowledges handled deliveries
	consumer Consumer

	// handler processes each delivery
	handler Handler

	// deliveries feeds the workers
	deliveries chan Delivery

	// workerCount is the number of concurrent workers to start
	workerCount int

	// wg tracks active worker goroutines for clean shutdown
	wg sync.WaitGroup

	// ctx is used for cancellation and shutdown signaling
	ctx context.Context

	// cancel is the function to call to cancel the context
	cancel context.CancelFunc

	// logger for structured logging
	logger *slog.Logger

	// errorHandler is called when a handler fails
	// If nil, errors are only logged
	errorHandler func(d Delivery, err error)
}

// WorkerPoolConfig holds configuration options for the worker pool
type WorkerPoolConfig struct {
	// WorkerCount determines how many concurrent worker goroutines to start
	// If zero or negative, defaults to 1
	WorkerCount int
}

// DefaultWorkerPoolConfig returns a WorkerPoolConfig with reasonable defaults
func DefaultWorkerPoolConfig() WorkerPoolConfig {
	return WorkerPoolConfig{
		WorkerCount: 2,
	}
}

// NewWorkerPool creates a new worker pool with the specified configuration
func NewWorkerPool(consumer Consumer, handler Handler, config WorkerPoolConfig, logger *slog.Logger) *WorkerPool {
	if logger == nil {
		logger = slog.Default()
	}

	workerCount := config.WorkerCount
	if workerCount <= 0 {
		workerCount = 1
		logger.Warn("invalid worker count specified, using default",
			"specified_count", config.WorkerCount,
			"default_count", 1)
	}

	ctx, cancel := context.WithCancel(context.Background())

	return &WorkerPool{
		consumer:    consumer,
		handler:     handler,
		deliveries:  make(chan Delivery),
		workerCount: workerCount,
		ctx:         ctx,
		cancel:      cancel,
		logger:      logger,
	}
}

// SetErrorHandler allows setting a custom error handler for handler failures
func (p *WorkerPool) SetErrorHandler(handler func(d Delivery, err error)) {
	p.errorHandler = handler
}

// Start launches the workers.
func (p *WorkerPool) Start() {
	for i := 0; i < p.workerCount; i++ {
		p.wg.Add(1)
		go p.worker(i)
	}
	p.logger.Info("worker pool started", "worker_count", p.workerCount)
}

// Submit hands a delivery to the next idle worker. It blocks until a worker
// takes it and reports false if ctx ends or the pool stops first.
func (p *WorkerPool) Submit(ctx context.Context, d Delivery) bool {
	select {
	case p.deliveries <- d:
		return true
	case <-ctx.Done():
		return false
	case <-p.ctx.Done():
		return false
	}
}

// Stop signals the workers to exit and waits for in-flight deliveries to
// finish.
func (p *WorkerPool) Stop() {
	p.cancel()
	p.wg.Wait()
	p.logger.Info("worker pool stopped")
}

func (p *WorkerPool) worker(id int) {
	defer p.wg.Done()

	p.logger.Debug("starting worker", "worker_id", id)

	for {
		select {
		case <-p.ctx.Done():
			p.logger.Debug("stopping worker", "worker_id", id)
			return
		case d := <-p.deliveries:
			p.process(d, id)
		}
	}
}

// process runs the handler outside the pool's lifecycle context so a
// shutdown never interrupts a delivery halfway through its writes.
func (p *WorkerPool) process(d Delivery, workerID int) {
	log := p.logger.With(
		"delivery_id", d.ID,
		"attempt", d.Attempts,
		"worker_id", workerID,
	)
	ctx := logger.WithLogger(context.Background(), log)

	err := p.safeHandle(ctx, d)
	if err != nil {
		log.Error("delivery handling failed, leaving it for redelivery", "error", err)
		if p.errorHandler != nil {
			p.errorHandler(d, err)
		}
		return
	}

	if err := p.consumer.Ack(ctx, d.ID); err != nil {
		log.Error("failed to acknowledge delivery", "error", err)
		return
	}
	log.Debug("delivery acknowledged")
}

func (p *WorkerPool) safeHandle(ctx context.Context, d Delivery) (err error) {
	defer func() {
		if r := recover(); r != nil {
			err = &PanicError{Value: r}
		}
	}()
	return p.handler.Handle(ctx, d)
}

// PanicError is returned in place of a panic raised by a Handler.
type PanicError struct {
	Value any
}

func (e *PanicError) Error() string {
	return fmt.Sprintf("handler panicked: %v", e.Value)
}
