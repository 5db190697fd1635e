package store

import (
	"context"
	"database/sql"

	"github.com/foodbridge/match-api/internal/domain"
	"github.com/google/uuid"
)

// ConfirmedMatchStore defines the interface for confirmed match persistence.
// Version: 1.0
type ConfirmedMatchStore interface {
	// Create saves a new confirmed match.
	// Returns ErrTaskAlreadyConfirmed if the task already has one.
	Create(ctx context.Context, match *domain.ConfirmedMatch) error

	// GetByTaskID retrieves the confirmed match of a task.
	// Returns ErrConfirmedMatchNotFound if the task has none.
	GetByTaskID(ctx context.Context, taskID uuid.UUID) (*domain.ConfirmedMatch, error)

	// ListByVolunteer returns the volunteer's confirmed matches, newest first.
	ListByVolunteer(ctx context.Context, volunteerID uuid.UUID) ([]*domain.ConfirmedMatch, error)

	// MarkDelivered persists the delivered status and timestamp of match.
	// Returns ErrConfirmedMatchNotFound if the match does not exist.
	MarkDelivered(ctx context.Context, match *domain.ConfirmedMatch) error

	// WithTx returns a new ConfirmedMatchStore instance that uses the provided transaction.
	WithTx(tx *sql.Tx) ConfirmedMatchStore
}
