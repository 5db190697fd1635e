package postgres

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/foodbridge/match-api/internal/domain"
	"github.com/foodbridge/match-api/internal/platform/logger"
	"github.com/foodbridge/match-api/internal/store"
	"github.com/google/uuid"
)

// PostgresDonationStore implements the store.DonationStore interface
// using a PostgreSQL database as the storage backend.
type PostgresDonationStore struct {
	db     store.DBTX
	logger *slog.Logger
}

// NewPostgresDonationStore creates a new PostgreSQL implementation of the DonationStore interface.
// If logger is nil, a default logger will be used.
func NewPostgresDonationStore(db store.DBTX, logger *slog.Logger) *PostgresDonationStore {
	if db == nil {
		panic("db cannot be nil")
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &PostgresDonationStore{
		db:     db,
		logger: logger.With(slog.String("component", "donation_store")),
	}
}

// Ensure PostgresDonationStore implements store.DonationStore interface
var _ store.DonationStore = (*PostgresDonationStore)(nil)

const donationColumns = `id, donor_id, category, item_name, quantity, expiration_date, status,
	latitude, longitude, pickup_times, created_at, updated_at`

// Create implements store.DonationStore.Create
// Returns store.ErrInvalidEntity if the donor does not exist (foreign key violation).
func (s *PostgresDonationStore) Create(ctx context.Context, donation *domain.Donation) error {
	log := logger.FromContextOrDefault(ctx, s.logger)

	if err := donation.Validate(); err != nil {
		log.Warn("donation validation failed during create",
			slog.String("error", err.Error()),
			slog.String("donation_id", donation.ID.String()))
		return err
	}

	pickupTimes := donation.PickupTimes
	if pickupTimes == nil {
		pickupTimes = []time.Time{}
	}
	pickupJSON, err := json.Marshal(pickupTimes)
	if err != nil {
		return fmt.Errorf("failed to encode pickup times: %w", err)
	}

	_, err = s.db.ExecContext(ctx, `
		INSERT INTO donations (`+donationColumns+`)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12)
	`,
		donation.ID,
		donation.DonorID,
		donation.Category,
		donation.ItemName,
		donation.Quantity,
		donation.ExpirationDate,
		donation.Status,
		nullFloat(donation.Latitude),
		nullFloat(donation.Longitude),
		pickupJSON,
		donation.CreatedAt,
		donation.UpdatedAt,
	)
	if err != nil {
		log.Error("failed to create donation",
			slog.String("error", err.Error()),
			slog.String("donation_id", donation.ID.String()),
			slog.String("donor_id", donation.DonorID.String()))
		return MapError(err)
	}

	log.Info("donation created",
		slog.String("donation_id", donation.ID.String()),
		slog.String("donor_id", donation.DonorID.String()))
	return nil
}

// GetByID implements store.DonationStore.GetByID
func (s *PostgresDonationStore) GetByID(ctx context.Context, id uuid.UUID) (*domain.Donation, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	row := s.db.QueryRowContext(ctx, `SELECT `+donationColumns+` FROM donations WHERE id = $1`, id)
	donation, err := scanDonation(row)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			log.Debug("donation not found", slog.String("donation_id", id.String()))
			return nil, store.ErrDonationNotFound
		}
		log.Error("failed to get donation",
			slog.String("donation_id", id.String()),
			slog.String("error", err.Error()))
		return nil, MapError(err)
	}
	return donation, nil
}

// ListByDonor implements store.DonationStore.ListByDonor
func (s *PostgresDonationStore) ListByDonor(ctx context.Context, donorID uuid.UUID) ([]*domain.Donation, error) {
	return s.list(ctx, `SELECT `+donationColumns+` FROM donations
		WHERE donor_id = $1
		ORDER BY created_at DESC, id`, donorID)
}

// ListByStatus implements store.DonationStore.ListByStatus
func (s *PostgresDonationStore) ListByStatus(ctx context.Context, status domain.DonationStatus) ([]*domain.Donation, error) {
	return s.list(ctx, `SELECT `+donationColumns+` FROM donations
		WHERE status = $1
		ORDER BY created_at, id`, status)
}

func (s *PostgresDonationStore) list(ctx context.Context, query string, args ...any) ([]*domain.Donation, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		log.Error("failed to list donations", slog.String("error", err.Error()))
		return nil, MapError(err)
	}
	defer func() { _ = rows.Close() }()

	donations := []*domain.Donation{}
	for rows.Next() {
		d, err := scanDonation(rows)
		if err != nil {
			return nil, MapError(err)
		}
		donations = append(donations, d)
	}
	if err := rows.Err(); err != nil {
		return nil, MapError(err)
	}
	return donations, nil
}

// UpdateStatus implements store.DonationStore.UpdateStatus
func (s *PostgresDonationStore) UpdateStatus(ctx context.Context, id uuid.UUID, status domain.DonationStatus) error {
	log := logger.FromContextOrDefault(ctx, s.logger)

	result, err := s.db.ExecContext(ctx,
		`UPDATE donations SET status = $1, updated_at = $2 WHERE id = $3`,
		status, time.Now().UTC(), id)
	if err != nil {
		log.Error("failed to update donation status",
			slog.String("donation_id", id.String()),
			slog.String("status", string(status)),
			slog.String("error", err.Error()))
		return MapError(err)
	}
	return CheckRowsAffected(result, store.ErrDonationNotFound)
}

// WithTx implements store.DonationStore.WithTx
func (s *PostgresDonationStore) WithTx(tx *sql.Tx) store.DonationStore {
	return &PostgresDonationStore{db: tx, logger: s.logger}
}

func scanDonation(row rowScanner) (*domain.Donation, error) {
	var (
		d           domain.Donation
		status      string
		lat, lon    sql.NullFloat64
		pickupTimes []byte
	)
	if err := row.Scan(
		&d.ID,
		&d.DonorID,
		&d.Category,
		&d.ItemName,
		&d.Quantity,
		&d.ExpirationDate,
		&status,
		&lat,
		&lon,
		&pickupTimes,
		&d.CreatedAt,
		&d.UpdatedAt,
	); err != nil {
		return nil, err
	}

	d.Status = domain.DonationStatus(status)
	d.Latitude = floatPtr(lat)
	d.Longitude = floatPtr(lon)
	d.PickupTimes = []time.Time{}
	if len(pickupTimes) > 0 {
		if err := json.Unmarshal(pickupTimes, &d.PickupTimes); err != nil {
			return nil, fmt.Errorf("failed to decode pickup times for donation %s: %w", d.ID, err)
		}
	}
	return &d, nil
}
