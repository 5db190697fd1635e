package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/foodbridge/match-api/internal/domain"
	"github.com/foodbridge/match-api/internal/platform/logger"
	"github.com/foodbridge/match-api/internal/store"
)

// ProfileService creates the donor, recipient, and volunteer profiles keyed
// by the caller's identity.
type ProfileService interface {
	CreateDonor(ctx context.Context, donor *domain.Donor) error
	CreateRecipient(ctx context.Context, recipient *domain.Recipient) error
	CreateVolunteer(ctx context.Context, volunteer *domain.Volunteer) error
}

// ProfileServiceImpl implements the ProfileService interface
type ProfileServiceImpl struct {
	donors     store.DonorStore
	recipients store.RecipientStore
	volunteers store.VolunteerStore
	logger     *slog.Logger
}

var _ ProfileService = (*ProfileServiceImpl)(nil)

// NewProfileService creates a ProfileService.
func NewProfileService(
	donors store.DonorStore,
	recipients store.RecipientStore,
	volunteers store.VolunteerStore,
	logger *slog.Logger,
) (*ProfileServiceImpl, error) {
	if donors == nil || recipients == nil || volunteers == nil {
		return nil, errors.New("profile stores cannot be nil")
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &ProfileServiceImpl{
		donors:     donors,
		recipients: recipients,
		volunteers: volunteers,
		logger:     logger.With(slog.String("component", "profile_service")),
	}, nil
}

// CreateDonor implements ProfileService.CreateDonor
func (s *ProfileServiceImpl) CreateDonor(ctx context.Context, donor *domain.Donor) error {
	donor.CreatedAt = time.Now().UTC()
	if err := donor.Validate(); err != nil {
		return fmt.Errorf("%w: %v", domain.ErrValidation, err)
	}
	return s.created(ctx, "donor", donor.ID.String(), s.donors.Create(ctx, donor))
}

// CreateRecipient implements ProfileService.CreateRecipient
func (s *ProfileServiceImpl) CreateRecipient(ctx context.Context, recipient *domain.Recipient) error {
	recipient.CreatedAt = time.Now().UTC()
	if err := recipient.Validate(); err != nil {
		return fmt.Errorf("%w: %v", domain.ErrValidation, err)
	}
	return s.created(ctx, "recipient", recipient.ID.String(), s.recipients.Create(ctx, recipient))
}

// CreateVolunteer implements ProfileService.CreateVolunteer
func (s *ProfileServiceImpl) CreateVolunteer(ctx context.Context, volunteer *domain.Volunteer) error {
	volunteer.Status = domain.VolunteerStatusActive
	volunteer.CreatedAt = time.Now().UTC()
	if err := volunteer.Validate(); err != nil {
		return fmt.Errorf("%w: %v", domain.ErrValidation, err)
	}
	return s.created(ctx, "volunteer", volunteer.ID.String(), s.volunteers.Create(ctx, volunteer))
}

func (s *ProfileServiceImpl) created(ctx context.Context, kind, id string, err error) error {
	log := logger.FromContextOrDefault(ctx, s.logger)
	if err != nil {
		if errors.Is(err, store.ErrProfileExists) {
			log.Debug("profile already exists", slog.String("kind", kind), slog.String("id", id))
			return ErrProfileExists
		}
		return NewProfileServiceError("create "+kind, "failed to store profile", err)
	}
	log.Info("profile created", slog.String("kind", kind), slog.String("id", id))
	return nil
}
