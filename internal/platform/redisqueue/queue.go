package redisqueue

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strconv"
	"sync/atomic"
	"time"

	"github.com/foodbridge/match-api/internal/task"
	"github.com/redis/rueidis"
)

// bodyField is the stream entry field holding the message payload.
const bodyField = "payload"

// Config describes the stream and consumer group a Queue works on.
type Config struct {
	Stream   string
	Group    string
	Consumer string

	// BlockTimeout bounds how long Receive waits on an empty stream.
	BlockTimeout time.Duration
}

// Queue is a task.Queue backed by a Redis stream and consumer group.
// Entries stay in the group's pending list until acknowledged, so a crashed
// consumer's messages are picked up again through Reclaim.
type Queue struct {
	client rueidis.Client
	config Config
	logger *slog.Logger
	closed atomic.Bool
}

var _ task.Queue = (*Queue)(nil)

// NewClient connects to the Redis server at addr.
func NewClient(addr string) (rueidis.Client, error) {
	client, err := rueidis.NewClient(rueidis.ClientOption{
		InitAddress: []string{addr},
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create redis client: %w", err)
	}
	return client, nil
}

// New creates a Queue over client and makes sure the consumer group exists.
// The Queue owns client and closes it on Close.
func New(ctx context.Context, client rueidis.Client, cfg Config, logger *slog.Logger) (*Queue, error) {
	if client == nil {
		return nil, errors.New("redis client cannot be nil")
	}
	if cfg.Stream == "" || cfg.Group == "" {
		return nil, errors.New("stream and group are required")
	}
	if cfg.Consumer == "" {
		cfg.Consumer = defaultConsumerName()
	}
	if cfg.BlockTimeout <= 0 {
		cfg.BlockTimeout = task.DefaultPollTimeout
	}
	if logger == nil {
		logger = slog.Default()
	}

	q := &Queue{
		client: client,
		config: cfg,
		logger: logger.With(
			"component", "redis_queue",
			"stream", cfg.Stream,
			"group", cfg.Group,
			"consumer", cfg.Consumer,
		),
	}
	if err := q.ensureGroup(ctx); err != nil {
		return nil, err
	}
	return q, nil
}

func (q *Queue) ensureGroup(ctx context.Context) error {
	cmd := q.client.B().XgroupCreate().
		Key(q.config.Stream).
		Group(q.config.Group).
		Id("0").
		Mkstream().
		Build()
	err := q.client.Do(ctx, cmd).Error()
	if err != nil && !rueidis.IsRedisBusyGroup(err) {
		return fmt.Errorf("failed to create consumer group: %w", err)
	}
	return nil
}

// Publish appends body to the stream and returns the entry ID.
func (q *Queue) Publish(ctx context.Context, body []byte) (string, error) {
	if q.closed.Load() {
		return "", task.ErrQueueClosed
	}

	cmd := q.client.B().Xadd().
		Key(q.config.Stream).
		Id("*").
		FieldValue().
		FieldValue(bodyField, string(body)).
		Build()
	id, err := q.client.Do(ctx, cmd).ToString()
	if err != nil {
		return "", fmt.Errorf("failed to publish message: %w", err)
	}

	q.logger.DebugContext(ctx, "Message published", "delivery_id", id, "size", len(body))
	return id, nil
}

// Receive reads up to max entries never delivered to the group before.
func (q *Queue) Receive(ctx context.Context, max int) ([]task.Delivery, error) {
	if q.closed.Load() {
		return nil, task.ErrQueueClosed
	}
	if max <= 0 {
		max = 1
	}

	cmd := q.client.B().Xreadgroup().
		Group(q.config.Group, q.config.Consumer).
		Count(int64(max)).
		Block(q.config.BlockTimeout.Milliseconds()).
		Streams().
		Key(q.config.Stream).
		Id(">").
		Build()
	streams, err := q.client.Do(ctx, cmd).AsXRead()
	if err != nil {
		if rueidis.IsRedisNil(err) {
			return []task.Delivery{}, nil
		}
		if q.closed.Load() {
			return nil, task.ErrQueueClosed
		}
		return nil, fmt.Errorf("failed to read from stream: %w", err)
	}

	entries := streams[q.config.Stream]
	deliveries := make([]task.Delivery, 0, len(entries))
	for _, entry := range entries {
		deliveries = append(deliveries, toDelivery(entry, 1))
	}
	return deliveries, nil
}

// Ack removes a delivery from the group's pending list.
func (q *Queue) Ack(ctx context.Context, id string) error {
	if q.closed.Load() {
		return task.ErrQueueClosed
	}

	cmd := q.client.B().Xack().Key(q.config.Stream).Group(q.config.Group).Id(id).Build()
	n, err := q.client.Do(ctx, cmd).AsInt64()
	if err != nil {
		return fmt.Errorf("failed to acknowledge %s: %w", id, err)
	}
	if n == 0 {
		return fmt.Errorf("%w: %s", task.ErrUnknownDelivery, id)
	}
	return nil
}

// Reclaim transfers up to max entries idle for at least minIdle to this
// consumer using XAUTOCLAIM.
func (q *Queue) Reclaim(ctx context.Context, minIdle time.Duration, max int) ([]task.Delivery, error) {
	if q.closed.Load() {
		return nil, task.ErrQueueClosed
	}
	if max <= 0 {
		max = 1
	}

	cmd := q.client.B().Xautoclaim().
		Key(q.config.Stream).
		Group(q.config.Group).
		Consumer(q.config.Consumer).
		MinIdleTime(strconv.FormatInt(minIdle.Milliseconds(), 10)).
		Start("0-0").
		Count(int64(max)).
		Build()
	reply, err := q.client.Do(ctx, cmd).ToArray()
	if err != nil {
		return nil, fmt.Errorf("failed to reclaim stale messages: %w", err)
	}
	if len(reply) < 2 {
		return []task.Delivery{}, nil
	}

	raw, err := reply[1].ToArray()
	if err != nil {
		return nil, fmt.Errorf("unexpected XAUTOCLAIM reply: %w", err)
	}

	entries := make([]rueidis.XRangeEntry, 0, len(raw))
	for i := range raw {
		entry, err := raw[i].AsXRangeEntry()
		if err != nil || entry.FieldValues == nil {
			// Trimmed while pending.
			continue
		}
		entries = append(entries, entry)
	}
	if len(entries) == 0 {
		return []task.Delivery{}, nil
	}

	counts := q.deliveryCounts(ctx, entries)
	deliveries := make([]task.Delivery, 0, len(entries))
	for _, entry := range entries {
		deliveries = append(deliveries, toDelivery(entry, counts[entry.ID]))
	}

	q.logger.InfoContext(ctx, "Reclaimed stale messages", "count", len(deliveries))
	return deliveries, nil
}

// deliveryCounts looks up how often each entry has been delivered. Lookup
// failures leave the entry out of the map.
func (q *Queue) deliveryCounts(ctx context.Context, entries []rueidis.XRangeEntry) map[string]int {
	cmds := make(rueidis.Commands, 0, len(entries))
	for _, entry := range entries {
		cmds = append(cmds, q.client.B().Xpending().
			Key(q.config.Stream).
			Group(q.config.Group).
			Start(entry.ID).
			End(entry.ID).
			Count(1).
			Build())
	}

	counts := make(map[string]int, len(entries))
	for i, result := range q.client.DoMulti(ctx, cmds...) {
		rows, err := result.ToArray()
		if err != nil || len(rows) == 0 {
			continue
		}
		fields, err := rows[0].ToArray()
		if err != nil || len(fields) < 4 {
			continue
		}
		n, err := fields[3].AsInt64()
		if err != nil {
			continue
		}
		counts[entries[i].ID] = int(n)
	}
	return counts
}

// Close closes the underlying client. It is safe to call more than once.
func (q *Queue) Close() error {
	if q.closed.Swap(true) {
		return nil
	}
	q.client.Close()
	return nil
}

func toDelivery(entry rueidis.XRangeEntry, attempts int) task.Delivery {
	if attempts < 1 {
		attempts = 1
	}
	return task.Delivery{
		ID:       entry.ID,
		Body:     []byte(entry.FieldValues[bodyField]),
		Attempts: attempts,
	}
}
