package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log/slog"

	"github.com/foodbridge/match-api/internal/domain"
	"github.com/foodbridge/match-api/internal/platform/logger"
	"github.com/foodbridge/match-api/internal/store"
	"github.com/google/uuid"
)

// PostgresMatchTaskStore implements the store.MatchTaskStore interface
// using a PostgreSQL database as the storage backend. Recommendations live in
// match_task_recommendations, one row per recipient with its list position.
type PostgresMatchTaskStore struct {
	db     store.DBTX
	logger *slog.Logger
}

// NewPostgresMatchTaskStore creates a new PostgreSQL implementation of the MatchTaskStore interface.
// If logger is nil, a default logger will be used.
func NewPostgresMatchTaskStore(db store.DBTX, logger *slog.Logger) *PostgresMatchTaskStore {
	if db == nil {
		panic("db cannot be nil")
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &PostgresMatchTaskStore{
		db:     db,
		logger: logger.With(slog.String("component", "match_task_store")),
	}
}

// Ensure PostgresMatchTaskStore implements store.MatchTaskStore interface
var _ store.MatchTaskStore = (*PostgresMatchTaskStore)(nil)

const markProcessingQuery = `
	INSERT INTO match_tasks (id, volunteer_id, donation_id, status, error_message, created_at, updated_at, completed_at)
	VALUES ($1, $2, $3, $4, '', $5, $6, NULL)
	ON CONFLICT (id) DO UPDATE
	SET volunteer_id = EXCLUDED.volunteer_id,
	    donation_id = EXCLUDED.donation_id,
	    status = EXCLUDED.status,
	    updated_at = EXCLUDED.updated_at
	WHERE match_tasks.status NOT IN ('COMPLETED', 'FAILED')
`

// MarkProcessing implements store.MatchTaskStore.MarkProcessing
func (s *PostgresMatchTaskStore) MarkProcessing(ctx context.Context, task *domain.MatchTask) error {
	log := logger.FromContextOrDefault(ctx, s.logger)

	if task.Status != domain.MatchTaskStatusProcessing {
		return fmt.Errorf("%w: expected status %s, got %s",
			store.ErrInvalidEntity, domain.MatchTaskStatusProcessing, task.Status)
	}
	if err := task.Validate(); err != nil {
		return fmt.Errorf("%w: %v", store.ErrInvalidEntity, err)
	}

	result, err := s.db.ExecContext(ctx, markProcessingQuery,
		task.ID,
		task.VolunteerID,
		task.DonationID,
		task.Status,
		task.CreatedAt,
		task.UpdatedAt,
	)
	if err != nil {
		log.Error("failed to mark match task processing",
			slog.String("task_id", task.ID.String()),
			slog.String("error", err.Error()))
		return MapError(err)
	}

	if n, err := result.RowsAffected(); err == nil && n == 0 {
		log.Info("match task already terminal, processing mark skipped",
			slog.String("task_id", task.ID.String()))
	}
	return nil
}

const saveResultQuery = `
	INSERT INTO match_tasks (id, volunteer_id, donation_id, status, error_message, created_at, updated_at, completed_at)
	VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
	ON CONFLICT (id) DO UPDATE
	SET volunteer_id = EXCLUDED.volunteer_id,
	    donation_id = EXCLUDED.donation_id,
	    status = EXCLUDED.status,
	    error_message = EXCLUDED.error_message,
	    updated_at = EXCLUDED.updated_at,
	    completed_at = EXCLUDED.completed_at
`

// SaveResult implements store.MatchTaskStore.SaveResult
// The overwrite runs in its own transaction unless the store is already bound
// to one through WithTx.
func (s *PostgresMatchTaskStore) SaveResult(ctx context.Context, task *domain.MatchTask) error {
	if !task.IsTerminal() {
		return fmt.Errorf("%w: status %s is not terminal", store.ErrInvalidEntity, task.Status)
	}
	if err := task.Validate(); err != nil {
		return fmt.Errorf("%w: %v", store.ErrInvalidEntity, err)
	}

	if db, ok := s.db.(*sql.DB); ok {
		return store.RunInTransaction(ctx, db, func(ctx context.Context, tx *sql.Tx) error {
			return s.saveResult(ctx, tx, task)
		})
	}
	return s.saveResult(ctx, s.db, task)
}

func (s *PostgresMatchTaskStore) saveResult(ctx context.Context, db store.DBTX, task *domain.MatchTask) error {
	log := logger.FromContextOrDefault(ctx, s.logger)

	_, err := db.ExecContext(ctx, saveResultQuery,
		task.ID,
		task.VolunteerID,
		task.DonationID,
		task.Status,
		task.ErrorMessage,
		task.CreatedAt,
		task.UpdatedAt,
		task.CompletedAt,
	)
	if err != nil {
		log.Error("failed to save match task result",
			slog.String("task_id", task.ID.String()),
			slog.String("status", string(task.Status)),
			slog.String("error", err.Error()))
		return MapError(err)
	}

	if _, err := db.ExecContext(ctx,
		`DELETE FROM match_task_recommendations WHERE task_id = $1`, task.ID); err != nil {
		return MapError(err)
	}

	for i, rec := range task.Recommendations {
		_, err := db.ExecContext(ctx, `
			INSERT INTO match_task_recommendations (task_id, position, recipient_id, reason)
			VALUES ($1, $2, $3, $4)
		`, task.ID, i, rec.RecipientID, rec.Reason)
		if err != nil {
			log.Error("failed to save recommendation",
				slog.String("task_id", task.ID.String()),
				slog.String("recipient_id", rec.RecipientID.String()),
				slog.String("error", err.Error()))
			return MapError(err)
		}
	}

	log.Debug("match task result saved",
		slog.String("task_id", task.ID.String()),
		slog.String("status", string(task.Status)),
		slog.Int("recommendations", len(task.Recommendations)))
	return nil
}

// GetByID implements store.MatchTaskStore.GetByID
func (s *PostgresMatchTaskStore) GetByID(ctx context.Context, id uuid.UUID) (*domain.MatchTask, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	var (
		task   domain.MatchTask
		status string
	)
	err := s.db.QueryRowContext(ctx, `
		SELECT id, volunteer_id, donation_id, status, error_message, created_at, updated_at, completed_at
		FROM match_tasks
		WHERE id = $1
	`, id).Scan(
		&task.ID,
		&task.VolunteerID,
		&task.DonationID,
		&status,
		&task.ErrorMessage,
		&task.CreatedAt,
		&task.UpdatedAt,
		&task.CompletedAt,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			log.Debug("match task not found", slog.String("task_id", id.String()))
			return nil, store.ErrMatchTaskNotFound
		}
		log.Error("failed to get match task",
			slog.String("task_id", id.String()),
			slog.String("error", err.Error()))
		return nil, MapError(err)
	}
	task.Status = domain.MatchTaskStatus(status)

	recs, err := s.recommendations(ctx, id)
	if err != nil {
		return nil, err
	}
	task.Recommendations = recs
	return &task, nil
}

func (s *PostgresMatchTaskStore) recommendations(ctx context.Context, taskID uuid.UUID) ([]domain.Recommendation, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT recipient_id, reason
		FROM match_task_recommendations
		WHERE task_id = $1
		ORDER BY position
	`, taskID)
	if err != nil {
		return nil, MapError(err)
	}
	defer func() { _ = rows.Close() }()

	recs := []domain.Recommendation{}
	for rows.Next() {
		var r domain.Recommendation
		if err := rows.Scan(&r.RecipientID, &r.Reason); err != nil {
			return nil, MapError(err)
		}
		recs = append(recs, r)
	}
	if err := rows.Err(); err != nil {
		return nil, MapError(err)
	}
	return recs, nil
}

// WithTx implements store.MatchTaskStore.WithTx
func (s *PostgresMatchTaskStore) WithTx(tx *sql.Tx) store.MatchTaskStore {
	return &PostgresMatchTaskStore{db: tx, logger: s.logger}
}
