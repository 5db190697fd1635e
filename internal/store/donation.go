package store

import (
	"context"
	"database/sql"

	"github.com/foodbridge/match-api/internal/domain"
	"github.com/google/uuid"
)

// DonationStore defines the interface for donation persistence.
// Version: 1.0
type DonationStore interface {
	// Create saves a new donation.
	// Returns validation errors from the domain Donation if data is invalid.
	Create(ctx context.Context, donation *domain.Donation) error

	// GetByID retrieves a donation by its unique ID.
	// Returns ErrDonationNotFound if the donation does not exist.
	GetByID(ctx context.Context, id uuid.UUID) (*domain.Donation, error)

	// ListByDonor returns the donor's donations, newest first.
	ListByDonor(ctx context.Context, donorID uuid.UUID) ([]*domain.Donation, error)

	// ListByStatus returns donations in the given status, oldest first.
	ListByStatus(ctx context.Context, status domain.DonationStatus) ([]*domain.Donation, error)

	// UpdateStatus changes the status of a donation.
	// Returns ErrDonationNotFound if the donation does not exist.
	UpdateStatus(ctx context.Context, id uuid.UUID, status domain.DonationStatus) error

	// WithTx returns a new DonationStore instance that uses the provided transaction.
	WithTx(tx *sql.Tx) DonationStore
}
