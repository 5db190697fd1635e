package store

import (
	"context"
	"database/sql"

	"github.com/foodbridge/match-api/internal/domain"
	"github.com/google/uuid"
)

// MatchTaskStore defines the interface for match task persistence.
// Every write is an overwrite keyed by task ID, so repeating a write leaves
// the store unchanged.
// Version: 1.0
type MatchTaskStore interface {
	// MarkProcessing inserts the task in PROCESSING, or moves an existing
	// non-terminal task to PROCESSING. A task that is already COMPLETED or
	// FAILED is left untouched so readers never observe it going backwards.
	MarkProcessing(ctx context.Context, task *domain.MatchTask) error

	// SaveResult overwrites the task, including its recommendation list, with
	// a terminal state. The row and its recommendations are replaced together.
	// Returns validation errors if the task is not terminal or is invalid.
	SaveResult(ctx context.Context, task *domain.MatchTask) error

	// GetByID retrieves a task with its recommendations in order.
	// Returns ErrMatchTaskNotFound if the task does not exist.
	GetByID(ctx context.Context, id uuid.UUID) (*domain.MatchTask, error)

	// WithTx returns a new MatchTaskStore instance that uses the provided transaction.
	WithTx(tx *sql.Tx) MatchTaskStore
}
