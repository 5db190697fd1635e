package task

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/foodbridge/match-api/internal/domain"
	"github.com/foodbridge/match-api/internal/domain/geo"
	"github.com/foodbridge/match-api/internal/platform/logger"
	"github.com/foodbridge/match-api/internal/ranking"
	"github.com/foodbridge/match-api/internal/redact"
	"github.com/foodbridge/match-api/internal/store"
)

// DefaultCandidateLimit is how many nearest recipients are offered to the oracle.
const DefaultCandidateLimit = 5

// MatchEngineConfig tunes the matching engine.
type MatchEngineConfig struct {
	// CandidateLimit is the number of nearest recipients passed to the oracle
	CandidateLimit int

	// MaxRecommendations caps the stored recommendation list
	MaxRecommendations int

	// OracleTimeout bounds a single oracle call. Zero means no bound beyond
	// the caller's context.
	OracleTimeout time.Duration
}

// MatchEngine consumes match request messages. For each one it records the
// task as PROCESSING, selects the nearest recipients, asks the oracle to rank
// them, and records the task as COMPLETED or FAILED.
//
// Every write is a full overwrite keyed by task ID, so a redelivered message
// is processed again without corrupting the record.
type MatchEngine struct {
	tasks      store.MatchTaskStore
	recipients store.RecipientStore
	oracle     ranking.Oracle
	config     MatchEngineConfig
	logger     *slog.Logger
}

var _ Handler = (*MatchEngine)(nil)

// NewMatchEngine creates a MatchEngine.
func NewMatchEngine(
	tasks store.MatchTaskStore,
	recipients store.RecipientStore,
	oracle ranking.Oracle,
	config MatchEngineConfig,
	logger *slog.Logger,
) *MatchEngine {
	if logger == nil {
		logger = slog.Default()
	}
	if config.CandidateLimit <= 0 {
		config.CandidateLimit = DefaultCandidateLimit
	}
	if config.MaxRecommendations <= 0 || config.MaxRecommendations > ranking.MaxRecommendations {
		config.MaxRecommendations = ranking.MaxRecommendations
	}
	return &MatchEngine{
		tasks:      tasks,
		recipients: recipients,
		oracle:     oracle,
		config:     config,
		logger:     logger.With("component", "match_engine"),
	}
}

// Handle implements Handler.
//
// Messages without a usable task ID cannot be recorded anywhere; they are
// logged and acknowledged. Any other failure ends in a FAILED record. An error
// is returned only when the terminal write itself fails, which leaves the
// delivery for redelivery.
func (e *MatchEngine) Handle(ctx context.Context, d Delivery) error {
	log := logger.FromContextOrDefault(ctx, e.logger)

	req, err := DecodeMatchRequest(d.Body)
	if err != nil {
		log.Error("discarding unreadable match request",
			"delivery_id", d.ID,
			"error", err)
		return nil
	}

	taskID, err := req.TaskUUID()
	if err != nil {
		log.Error("discarding match request without task id",
			"delivery_id", d.ID,
			"donation_id", req.DonationID,
			"volunteer_id", req.VolunteerID,
			"error", err)
		return nil
	}

	log = log.With("task_id", taskID.String())
	ctx = logger.WithLogger(ctx, log)

	job, jobErr := req.Job()
	task := domain.NewProcessingTask(taskID, job.VolunteerID, job.DonationID)

	start := time.Now()
	recs, err := e.process(ctx, task, job, jobErr)
	if err != nil {
		task.Fail(err)
		task.ErrorMessage = redact.Error(err)
		log.Warn("match task failed", "error", err, "duration_ms", time.Since(start).Milliseconds())
	} else {
		task.Complete(recs)
		log.Info("match task completed",
			"recommendations", len(recs),
			"duration_ms", time.Since(start).Milliseconds())
	}

	if err := e.tasks.SaveResult(ctx, task); err != nil {
		log.Error("failed to record match task result",
			"status", string(task.Status),
			"error", err)
		return fmt.Errorf("failed to record result for task %s: %w", taskID, err)
	}
	return nil
}

// process runs the steps whose failure is recorded against the task.
func (e *MatchEngine) process(
	ctx context.Context,
	task *domain.MatchTask,
	job MatchJob,
	jobErr error,
) ([]domain.Recommendation, error) {
	if err := e.tasks.MarkProcessing(ctx, task); err != nil {
		return nil, fmt.Errorf("failed to mark task processing: %w", err)
	}
	if jobErr != nil {
		return nil, jobErr
	}

	candidates, err := e.SelectCandidates(ctx, job.Origin)
	if err != nil {
		return nil, err
	}
	if len(candidates) == 0 {
		logger.FromContextOrDefault(ctx, e.logger).Info("no locatable recipients, completing with no recommendations")
		return []domain.Recommendation{}, nil
	}

	oracleCtx := ctx
	if e.config.OracleTimeout > 0 {
		var cancel context.CancelFunc
		oracleCtx, cancel = context.WithTimeout(ctx, e.config.OracleTimeout)
		defer cancel()
	}

	recs, err := e.oracle.Rank(oracleCtx, ranking.Request{
		DonationName: job.DonationName,
		Candidates:   candidates,
	})
	if err != nil {
		if errors.Is(oracleCtx.Err(), context.DeadlineExceeded) {
			return nil, fmt.Errorf("ranking oracle timed out after %s: %w", e.config.OracleTimeout, err)
		}
		return nil, fmt.Errorf("ranking failed: %w", err)
	}
	return ranking.Restrict(recs, candidates, e.config.MaxRecommendations), nil
}

// SelectCandidates returns the nearest locatable recipients to origin as
// oracle candidates, closest first.
func (e *MatchEngine) SelectCandidates(ctx context.Context, origin geo.Point) ([]ranking.Candidate, error) {
	pool, err := e.recipients.ListLocatable(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to load recipients: %w", err)
	}

	nearest := geo.SelectNearest(origin, pool, func(r *domain.Recipient) (geo.Point, bool) {
		if r == nil {
			return geo.Point{}, false
		}
		return r.Location()
	}, e.config.CandidateLimit)

	candidates := make([]ranking.Candidate, len(nearest))
	for i, n := range nearest {
		candidates[i] = ranking.CandidateFromRecipient(n.Item, n.Distance)
	}
	return candidates, nil
}
