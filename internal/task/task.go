package task

import (
	"context"
	"time"
)

// Delivery is a single message handed to a consumer. It stays pending on its
// queue until acknowledged; an unacknowledged delivery is handed out again
// once it has been idle for longer than the visibility timeout.
type Delivery struct {
	// ID identifies the delivery for Ack. It is assigned by the queue.
	ID string

	// Body is the raw message payload
	Body []byte

	// Attempts counts how many times this message has been handed out,
	// starting at 1 for the first delivery
	Attempts int
}

// Publisher enqueues messages for asynchronous processing.
type Publisher interface {
	// Publish appends body to the queue and returns the delivery ID it was
	// assigned. It never blocks waiting for a consumer.
	Publish(ctx context.Context, body []byte) (string, error)
}

// Consumer reads messages with at-least-once semantics.
type Consumer interface {
	// Receive returns up to max new deliveries. It blocks until at least one
	// message is available, the backend's poll timeout expires (returning an
	// empty slice), or ctx is done.
	Receive(ctx context.Context, max int) ([]Delivery, error)

	// Ack marks a delivery as processed so it is never handed out again.
	Ack(ctx context.Context, id string) error

	// Reclaim takes over up to max deliveries that have been pending for at
	// least minIdle, typically because the worker holding them stalled or died.
	Reclaim(ctx context.Context, minIdle time.Duration, max int) ([]Delivery, error)
}

// Queue is a message queue usable from both sides.
type Queue interface {
	Publisher
	Consumer

	// Close releases the queue's resources. Further calls fail with ErrQueueClosed.
	Close() error
}

// Handler processes one delivery.
//
// Returning nil acknowledges the delivery. Returning an error leaves it
// pending, so the queue redelivers it after the visibility timeout; handlers
// must therefore be idempotent.
type Handler interface {
	Handle(ctx context.Context, d Delivery) error
}

// HandlerFunc adapts an ordinary function to the Handler interface.
type HandlerFunc func(ctx context.Context, d Delivery) error

// Handle calls f(ctx, d).
func (f HandlerFunc) Handle(ctx context.Context, d Delivery) error {
	return f(ctx, d)
}
