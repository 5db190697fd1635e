package postgres

import (
	"context"
	"database/sql"
	"errors"
	"log/slog"

	"github.com/foodbridge/match-api/internal/domain"
	"github.com/foodbridge/match-api/internal/platform/logger"
	"github.com/foodbridge/match-api/internal/store"
	"github.com/google/uuid"
)

// PostgresConfirmedMatchStore implements the store.ConfirmedMatchStore interface.
// confirmed_matches.task_id is UNIQUE, which is what rejects a second
// confirmation of the same task.
type PostgresConfirmedMatchStore struct {
	db     store.DBTX
	logger *slog.Logger
}

// NewPostgresConfirmedMatchStore creates a new PostgreSQL implementation of the ConfirmedMatchStore interface.
func NewPostgresConfirmedMatchStore(db store.DBTX, logger *slog.Logger) *PostgresConfirmedMatchStore {
	if db == nil {
		panic("db cannot be nil")
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &PostgresConfirmedMatchStore{
		db:     db,
		logger: logger.With(slog.String("component", "confirmed_match_store")),
	}
}

var _ store.ConfirmedMatchStore = (*PostgresConfirmedMatchStore)(nil)

const confirmedMatchColumns = `id, task_id, donation_id, volunteer_id, recipient_id, status, confirmed_at, delivered_at`

// Create implements store.ConfirmedMatchStore.Create
func (s *PostgresConfirmedMatchStore) Create(ctx context.Context, m *domain.ConfirmedMatch) error {
	log := logger.FromContextOrDefault(ctx, s.logger)

	_, err := s.db.ExecContext(ctx, `
		INSERT INTO confirmed_matches (`+confirmedMatchColumns+`)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
	`, m.ID, m.TaskID, m.DonationID, m.VolunteerID, m.RecipientID, m.Status, m.ConfirmedAt, m.DeliveredAt)
	if err != nil {
		if IsUniqueViolation(err) {
			log.Info("task already confirmed", slog.String("task_id", m.TaskID.String()))
		} else {
			log.Error("failed to create confirmed match",
				slog.String("task_id", m.TaskID.String()),
				slog.String("error", err.Error()))
		}
		return MapUniqueViolation(err, store.ErrTaskAlreadyConfirmed)
	}

	log.Info("match confirmed",
		slog.String("match_id", m.ID.String()),
		slog.String("task_id", m.TaskID.String()),
		slog.String("recipient_id", m.RecipientID.String()))
	return nil
}

// GetByTaskID implements store.ConfirmedMatchStore.GetByTaskID
func (s *PostgresConfirmedMatchStore) GetByTaskID(ctx context.Context, taskID uuid.UUID) (*domain.ConfirmedMatch, error) {
	row := s.db.QueryRowContext(ctx,
		`SELECT `+confirmedMatchColumns+` FROM confirmed_matches WHERE task_id = $1`, taskID)
	m, err := scanConfirmedMatch(row)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, store.ErrConfirmedMatchNotFound
		}
		return nil, MapError(err)
	}
	return m, nil
}

// ListByVolunteer implements store.ConfirmedMatchStore.ListByVolunteer
func (s *PostgresConfirmedMatchStore) ListByVolunteer(ctx context.Context, volunteerID uuid.UUID) ([]*domain.ConfirmedMatch, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	rows, err := s.db.QueryContext(ctx, `SELECT `+confirmedMatchColumns+` FROM confirmed_matches
		WHERE volunteer_id = $1
		ORDER BY confirmed_at DESC, id`, volunteerID)
	if err != nil {
		log.Error("failed to list confirmed matches",
			slog.String("volunteer_id", volunteerID.String()),
			slog.String("error", err.Error()))
		return nil, MapError(err)
	}
	defer func() { _ = rows.Close() }()

	matches := []*domain.ConfirmedMatch{}
	for rows.Next() {
		m, err := scanConfirmedMatch(rows)
		if err != nil {
			return nil, MapError(err)
		}
		matches = append(matches, m)
	}
	if err := rows.Err(); err != nil {
		return nil, MapError(err)
	}
	return matches, nil
}

// MarkDelivered implements store.ConfirmedMatchStore.MarkDelivered
func (s *PostgresConfirmedMatchStore) MarkDelivered(ctx context.Context, m *domain.ConfirmedMatch) error {
	result, err := s.db.ExecContext(ctx,
		`UPDATE confirmed_matches SET status = $1, delivered_at = $2 WHERE id = $3`,
		m.Status, m.DeliveredAt, m.ID)
	if err != nil {
		return MapError(err)
	}
	return CheckRowsAffected(result, store.ErrConfirmedMatchNotFound)
}

// WithTx implements store.ConfirmedMatchStore.WithTx
func (s *PostgresConfirmedMatchStore) WithTx(tx *sql.Tx) store.ConfirmedMatchStore {
	return &PostgresConfirmedMatchStore{db: tx, logger: s.logger}
}

func scanConfirmedMatch(row rowScanner) (*domain.ConfirmedMatch, error) {
	var (
		m      domain.ConfirmedMatch
		status string
	)
	if err := row.Scan(
		&m.ID, &m.TaskID, &m.DonationID, &m.VolunteerID, &m.RecipientID,
		&status, &m.ConfirmedAt, &m.DeliveredAt,
	); err != nil {
		return nil, err
	}
	m.Status = domain.ConfirmedMatchStatus(status)
	return &m, nil
}
