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

// PostgresRecipientStore implements the store.RecipientStore interface.
type PostgresRecipientStore struct {
	db     store.DBTX
	logger *slog.Logger
}

// NewPostgresRecipientStore creates a new PostgreSQL implementation of the RecipientStore interface.
func NewPostgresRecipientStore(db store.DBTX, logger *slog.Logger) *PostgresRecipientStore {
	if db == nil {
		panic("db cannot be nil")
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &PostgresRecipientStore{
		db:     db,
		logger: logger.With(slog.String("component", "recipient_store")),
	}
}

var _ store.RecipientStore = (*PostgresRecipientStore)(nil)

const recipientColumns = `id, name, phone_number, address, post_number, email, notes, latitude, longitude, created_at`

// Create implements store.RecipientStore.Create
func (s *PostgresRecipientStore) Create(ctx context.Context, r *domain.Recipient) error {
	log := logger.FromContextOrDefault(ctx, s.logger)

	if err := r.Validate(); err != nil {
		return err
	}

	_, err := s.db.ExecContext(ctx, `
		INSERT INTO recipients (`+recipientColumns+`)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)
	`,
		r.ID, r.Name, r.PhoneNumber, r.Address, r.PostNumber, r.Email, r.Notes,
		nullFloat(r.Latitude), nullFloat(r.Longitude), r.CreatedAt,
	)
	if err != nil {
		log.Error("failed to create recipient",
			slog.String("recipient_id", r.ID.String()),
			slog.String("error", err.Error()))
		return MapUniqueViolation(err, store.ErrProfileExists)
	}
	return nil
}

// ListLocatable implements store.RecipientStore.ListLocatable
func (s *PostgresRecipientStore) ListLocatable(ctx context.Context) ([]*domain.Recipient, error) {
	return s.query(ctx, `SELECT `+recipientColumns+` FROM recipients
		WHERE latitude IS NOT NULL AND longitude IS NOT NULL
		ORDER BY created_at, id`)
}

// GetByIDs implements store.RecipientStore.GetByIDs
func (s *PostgresRecipientStore) GetByIDs(ctx context.Context, ids []uuid.UUID) (map[uuid.UUID]*domain.Recipient, error) {
	out := make(map[uuid.UUID]*domain.Recipient, len(ids))
	ids = uniqueIDs(ids)
	if len(ids) == 0 {
		return out, nil
	}

	placeholders, args := inPlaceholders(ids, 1)
	recipients, err := s.query(ctx,
		`SELECT `+recipientColumns+` FROM recipients WHERE id IN (`+placeholders+`)`, args...)
	if err != nil {
		return nil, err
	}
	for _, r := range recipients {
		out[r.ID] = r
	}
	return out, nil
}

func (s *PostgresRecipientStore) query(ctx context.Context, query string, args ...any) ([]*domain.Recipient, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		log.Error("failed to query recipients", slog.String("error", err.Error()))
		return nil, MapError(err)
	}
	defer func() { _ = rows.Close() }()

	recipients := []*domain.Recipient{}
	for rows.Next() {
		var (
			r        domain.Recipient
			lat, lon sql.NullFloat64
		)
		if err := rows.Scan(
			&r.ID, &r.Name, &r.PhoneNumber, &r.Address, &r.PostNumber, &r.Email, &r.Notes,
			&lat, &lon, &r.CreatedAt,
		); err != nil {
			return nil, MapError(err)
		}
		r.Latitude = floatPtr(lat)
		r.Longitude = floatPtr(lon)
		recipients = append(recipients, &r)
	}
	if err := rows.Err(); err != nil {
		return nil, MapError(err)
	}
	return recipients, nil
}

// PostgresDonorStore implements the store.DonorStore interface.
type PostgresDonorStore struct {
	db     store.DBTX
	logger *slog.Logger
}

// NewPostgresDonorStore creates a new PostgreSQL implementation of the DonorStore interface.
func NewPostgresDonorStore(db store.DBTX, logger *slog.Logger) *PostgresDonorStore {
	if db == nil {
		panic("db cannot be nil")
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &PostgresDonorStore{
		db:     db,
		logger: logger.With(slog.String("component", "donor_store")),
	}
}

var _ store.DonorStore = (*PostgresDonorStore)(nil)

const donorColumns = `id, email, name, address, post_number, phone_number, latitude, longitude, created_at`

// Create implements store.DonorStore.Create
func (s *PostgresDonorStore) Create(ctx context.Context, d *domain.Donor) error {
	log := logger.FromContextOrDefault(ctx, s.logger)

	if err := d.Validate(); err != nil {
		return err
	}

	_, err := s.db.ExecContext(ctx, `
		INSERT INTO donors (`+donorColumns+`)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
	`,
		d.ID, d.Email, d.Name, d.Address, d.PostNumber, d.PhoneNumber,
		nullFloat(d.Latitude), nullFloat(d.Longitude), d.CreatedAt,
	)
	if err != nil {
		log.Error("failed to create donor",
			slog.String("donor_id", d.ID.String()),
			slog.String("error", err.Error()))
		return MapUniqueViolation(err, store.ErrProfileExists)
	}
	return nil
}

// GetByID implements store.DonorStore.GetByID
func (s *PostgresDonorStore) GetByID(ctx context.Context, id uuid.UUID) (*domain.Donor, error) {
	donors, err := s.query(ctx, `SELECT `+donorColumns+` FROM donors WHERE id = $1`, id)
	if err != nil {
		return nil, err
	}
	if len(donors) == 0 {
		return nil, store.ErrDonorNotFound
	}
	return donors[0], nil
}

// GetByIDs implements store.DonorStore.GetByIDs
func (s *PostgresDonorStore) GetByIDs(ctx context.Context, ids []uuid.UUID) (map[uuid.UUID]*domain.Donor, error) {
	out := make(map[uuid.UUID]*domain.Donor, len(ids))
	ids = uniqueIDs(ids)
	if len(ids) == 0 {
		return out, nil
	}

	placeholders, args := inPlaceholders(ids, 1)
	donors, err := s.query(ctx, `SELECT `+donorColumns+` FROM donors WHERE id IN (`+placeholders+`)`, args...)
	if err != nil {
		return nil, err
	}
	for _, d := range donors {
		out[d.ID] = d
	}
	return out, nil
}

func (s *PostgresDonorStore) query(ctx context.Context, query string, args ...any) ([]*domain.Donor, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		log.Error("failed to query donors", slog.String("error", err.Error()))
		return nil, MapError(err)
	}
	defer func() { _ = rows.Close() }()

	donors := []*domain.Donor{}
	for rows.Next() {
		var (
			d        domain.Donor
			lat, lon sql.NullFloat64
		)
		if err := rows.Scan(
			&d.ID, &d.Email, &d.Name, &d.Address, &d.PostNumber, &d.PhoneNumber,
			&lat, &lon, &d.CreatedAt,
		); err != nil {
			return nil, MapError(err)
		}
		d.Latitude = floatPtr(lat)
		d.Longitude = floatPtr(lon)
		donors = append(donors, &d)
	}
	if err := rows.Err(); err != nil {
		return nil, MapError(err)
	}
	return donors, nil
}

// PostgresVolunteerStore implements the store.VolunteerStore interface.
type PostgresVolunteerStore struct {
	db     store.DBTX
	logger *slog.Logger
}

// NewPostgresVolunteerStore creates a new PostgreSQL implementation of the VolunteerStore interface.
func NewPostgresVolunteerStore(db store.DBTX, logger *slog.Logger) *PostgresVolunteerStore {
	if db == nil {
		panic("db cannot be nil")
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &PostgresVolunteerStore{
		db:     db,
		logger: logger.With(slog.String("component", "volunteer_store")),
	}
}

var _ store.VolunteerStore = (*PostgresVolunteerStore)(nil)

// Create implements store.VolunteerStore.Create
func (s *PostgresVolunteerStore) Create(ctx context.Context, v *domain.Volunteer) error {
	log := logger.FromContextOrDefault(ctx, s.logger)

	if err := v.Validate(); err != nil {
		return err
	}

	_, err := s.db.ExecContext(ctx, `
		INSERT INTO volunteers (id, name, phone_number, status, created_at)
		VALUES ($1, $2, $3, $4, $5)
	`, v.ID, v.Name, v.PhoneNumber, v.Status, v.CreatedAt)
	if err != nil {
		log.Warn("failed to create volunteer",
			slog.String("volunteer_id", v.ID.String()),
			slog.String("error", err.Error()))
		return MapUniqueViolation(err, store.ErrProfileExists)
	}
	return nil
}

// GetByID implements store.VolunteerStore.GetByID
func (s *PostgresVolunteerStore) GetByID(ctx context.Context, id uuid.UUID) (*domain.Volunteer, error) {
	var (
		v      domain.Volunteer
		status string
	)
	err := s.db.QueryRowContext(ctx, `
		SELECT id, name, phone_number, status, created_at
		FROM volunteers
		WHERE id = $1
	`, id).Scan(&v.ID, &v.Name, &v.PhoneNumber, &status, &v.CreatedAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, store.ErrVolunteerNotFound
		}
		return nil, MapError(err)
	}
	v.Status = domain.VolunteerStatus(status)
	return &v, nil
}
