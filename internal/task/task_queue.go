package task

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strconv"
	"sync"
	"time"
)

// Common errors returned by the TaskQueue
var (
	ErrQueueClosed     = errors.New("task queue is closed")
	ErrQueueFull       = errors.New("task queue is full")
	ErrUnknownDelivery = errors.New("unknown delivery")
)

// DefaultPollTimeout bounds how long Receive waits for a message.
const DefaultPollTimeout = time.Second

type pendingDelivery struct {
	delivery    Delivery
	deliveredAt time.Time
}

// TaskQueue is a buffered in-process Queue with at-least-once semantics.
// Received messages stay pending until acknowledged and can be reclaimed once
// idle. It does not survive a restart; use it for single-instance deployments
// and tests.
type TaskQueue struct {
	messages    chan Delivery
	logger      *slog.Logger
	pollTimeout time.Duration

	mu      sync.Mutex
	closed  bool
	nextID  uint64
	pending map[string]*pendingDelivery

	// now is replaced in tests
	now func() time.Time
}

var _ Queue = (*TaskQueue)(nil)

// NewTaskQueue creates a new task queue with the specified buffer size
func NewTaskQueue(size int, logger *slog.Logger) *TaskQueue {
	if size <= 0 {
		size = 1
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &TaskQueue{
		messages:    make(chan Delivery, size),
		logger:      logger.With("component", "task_queue"),
		pollTimeout: DefaultPollTimeout,
		pending:     make(map[string]*pendingDelivery),
		now:         time.Now,
	}
}

// SetPollTimeout changes how long Receive blocks on an empty queue.
func (q *TaskQueue) SetPollTimeout(d time.Duration) {
	if d > 0 {
		q.pollTimeout = d
	}
}

// Publish adds a message to the queue.
// Returns an error if the queue is full or closed
func (q *TaskQueue) Publish(ctx context.Context, body []byte) (string, error) {
	q.mu.Lock()
	defer q.mu.Unlock()

	if q.closed {
		return "", ErrQueueClosed
	}

	q.nextID++
	id := strconv.FormatUint(q.nextID, 10)
	msg := Delivery{ID: id, Body: append([]byte(nil), body...)}

	select {
	case q.messages <- msg:
		q.logger.Debug("message enqueued",
			"delivery_id", id,
			"queue_len", len(q.messages),
			"queue_cap", cap(q.messages))
		return id, nil
	default:
		return "", fmt.Errorf("%w: queue capacity %d reached", ErrQueueFull, cap(q.messages))
	}
}

// Receive implements Consumer.Receive
func (q *TaskQueue) Receive(ctx context.Context, max int) ([]Delivery, error) {
	if max <= 0 {
		max = 1
	}

	timer := time.NewTimer(q.pollTimeout)
	defer timer.Stop()

	var first Delivery
	select {
	case <-ctx.Done():
		return nil, ctx.Err()
	case <-timer.C:
		return []Delivery{}, nil
	case msg, ok := <-q.messages:
		if !ok {
			return nil, ErrQueueClosed
		}
		first = msg
	}

	batch := []Delivery{first}
drain:
	for len(batch) < max {
		select {
		case msg, ok := <-q.messages:
			if !ok {
				break drain
			}
			batch = append(batch, msg)
		default:
			break drain
		}
	}

	q.mu.Lock()
	defer q.mu.Unlock()
	now := q.now()
	for i := range batch {
		batch[i].Attempts = 1
		q.pending[batch[i].ID] = &pendingDelivery{delivery: batch[i], deliveredAt: now}
	}
	return batch, nil
}

// Ack implements Consumer.Ack
func (q *TaskQueue) Ack(ctx context.Context, id string) error {
	q.mu.Lock()
	defer q.mu.Unlock()

	if _, ok := q.pending[id]; !ok {
		return fmt.Errorf("%w: %s", ErrUnknownDelivery, id)
	}
	delete(q.pending, id)
	return nil
}

// Reclaim implements Consumer.Reclaim
// Reclaimed deliveries restart their idle clock and carry an incremented
// attempt count.
func (q *TaskQueue) Reclaim(ctx context.Context, minIdle time.Duration, max int) ([]Delivery, error) {
	q.mu.Lock()
	defer q.mu.Unlock()

	if q.closed {
		return nil, ErrQueueClosed
	}

	now := q.now()
	reclaimed := []Delivery{}
	for _, p := range q.pending {
		if max > 0 && len(reclaimed) >= max {
			break
		}
		if now.Sub(p.deliveredAt) < minIdle {
			continue
		}
		p.deliveredAt = now
		p.delivery.Attempts++
		reclaimed = append(reclaimed, p.delivery)
	}

	if len(reclaimed) > 0 {
		q.logger.Info("reclaimed idle deliveries", "count", len(reclaimed))
	}
	return reclaimed, nil
}

// Pending returns the number of delivered but unacknowledged messages.
func (q *TaskQueue) Pending() int {
	q.mu.Lock()
	defer q.mu.Unlock()
	return len(q.pending)
}

// Close closes the task queue, preventing further submission
func (q *TaskQueue) Close() error {
	q.mu.Lock()
	defer q.mu.Unlock()

	if !q.closed {
		q.closed = true
		close(q.messages)
		q.logger.Info("task queue closed")
	}
	return nil
}
