package store

import (
	"context"

	"github.com/foodbridge/match-api/internal/domain"
	"github.com/google/uuid"
)

// RecipientStore defines the interface for recipient persistence.
// Version: 1.0
type RecipientStore interface {
	// Create saves a new recipient profile.
	// Returns ErrProfileExists if the recipient already exists.
	Create(ctx context.Context, recipient *domain.Recipient) error

	// ListLocatable returns every recipient that has both coordinates set,
	// in a stable order (creation time, then ID).
	ListLocatable(ctx context.Context) ([]*domain.Recipient, error)

	// GetByIDs looks up recipients in one round trip. Unknown IDs are simply
	// absent from the returned map.
	GetByIDs(ctx context.Context, ids []uuid.UUID) (map[uuid.UUID]*domain.Recipient, error)
}

// DonorStore defines the interface for donor profile persistence.
// Version: 1.0
type DonorStore interface {
	// Create saves a new donor profile.
	// Returns ErrProfileExists if the donor already exists.
	Create(ctx context.Context, donor *domain.Donor) error

	// GetByID retrieves a donor profile.
	// Returns ErrDonorNotFound if the donor does not exist.
	GetByID(ctx context.Context, id uuid.UUID) (*domain.Donor, error)

	// GetByIDs looks up donor profiles in one round trip.
	GetByIDs(ctx context.Context, ids []uuid.UUID) (map[uuid.UUID]*domain.Donor, error)
}

// VolunteerStore defines the interface for volunteer profile persistence.
// Version: 1.0
type VolunteerStore interface {
	// Create saves a new volunteer profile.
	// Returns ErrProfileExists if the volunteer already exists.
	Create(ctx context.Context, volunteer *domain.Volunteer) error

	// GetByID retrieves a volunteer profile.
	// Returns ErrVolunteerNotFound if the volunteer does not exist.
	GetByID(ctx context.Context, id uuid.UUID) (*domain.Volunteer, error)
}
