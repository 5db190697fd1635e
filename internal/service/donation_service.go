package service

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"github.com/foodbridge/match-api/internal/domain"
	"github.com/foodbridge/match-api/internal/platform/logger"
	"github.com/foodbridge/match-api/internal/store"
	"github.com/google/uuid"
)

// pickupSlotsPerDonation is how many upcoming pickup times a donation offers.
const pickupSlotsPerDonation = 2

// DonationInput holds the donor-supplied fields of a new donation.
type DonationInput struct {
	Category       string
	ItemName       string
	Quantity       int
	ExpirationDate string
}

// AvailableDonation is a pending donation together with where to collect it.
type AvailableDonation struct {
	Donation     *domain.Donation
	DonorName    string
	DonorAddress string
}

// DonationService manages donations on behalf of donors and volunteers.
type DonationService interface {
	// CreateDonation registers a donation at the donor's location with the
	// next pickup times.
	CreateDonation(ctx context.Context, donorID uuid.UUID, input DonationInput) (*domain.Donation, error)

	// ListAvailable returns pending donations collectable in the current
	// pickup slot.
	ListAvailable(ctx context.Context) ([]AvailableDonation, error)

	// ListByDonor returns the donor's own donations, newest first.
	ListByDonor(ctx context.Context, donorID uuid.UUID) ([]*domain.Donation, error)
}

// DonationServiceImpl implements the DonationService interface
type DonationServiceImpl struct {
	donations store.DonationStore
	donors    store.DonorStore
	schedule  domain.PickupSchedule
	logger    *slog.Logger

	// now is replaced in tests
	now func() time.Time
}

var _ DonationService = (*DonationServiceImpl)(nil)

// NewDonationService creates a DonationService.
func NewDonationService(
	donations store.DonationStore,
	donors store.DonorStore,
	schedule domain.PickupSchedule,
	logger *slog.Logger,
) (*DonationServiceImpl, error) {
	if donations == nil {
		return nil, errors.New("donation store cannot be nil")
	}
	if donors == nil {
		return nil, errors.New("donor store cannot be nil")
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &DonationServiceImpl{
		donations: donations,
		donors:    donors,
		schedule:  schedule,
		logger:    logger.With(slog.String("component", "donation_service")),
		now:       time.Now,
	}, nil
}

// CreateDonation implements DonationService.CreateDonation
func (s *DonationServiceImpl) CreateDonation(
	ctx context.Context,
	donorID uuid.UUID,
	input DonationInput,
) (*domain.Donation, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	donor, err := s.donors.GetByID(ctx, donorID)
	if err != nil {
		if store.IsNotFoundError(err) {
			return nil, ErrProfileNotFound
		}
		return nil, NewDonationServiceError("create donation", "failed to load donor", err)
	}

	slots := s.schedule.NextSlots(s.now(), pickupSlotsPerDonation)
	donation, err := domain.NewDonation(
		donor,
		input.Category,
		input.ItemName,
		input.Quantity,
		input.ExpirationDate,
		slots,
	)
	if err != nil {
		return nil, err
	}

	if err := s.donations.Create(ctx, donation); err != nil {
		return nil, NewDonationServiceError("create donation", "failed to store donation", err)
	}

	log.Info("donation created",
		slog.String("donation_id", donation.ID.String()),
		slog.String("donor_id", donorID.String()),
		slog.Int("pickup_slots", len(slots)))
	return donation, nil
}

// ListAvailable implements DonationService.ListAvailable
func (s *DonationServiceImpl) ListAvailable(ctx context.Context) ([]AvailableDonation, error) {
	slot, ok := s.schedule.CurrentSlot(s.now())
	if !ok {
		return []AvailableDonation{}, nil
	}

	pending, err := s.donations.ListByStatus(ctx, domain.DonationStatusPending)
	if err != nil {
		return nil, NewDonationServiceError("list available", "failed to list donations", err)
	}

	var (
		collectable []*domain.Donation
		donorIDs    []uuid.UUID
	)
	for _, d := range pending {
		if d.HasPickupTime(slot) {
			collectable = append(collectable, d)
			donorIDs = append(donorIDs, d.DonorID)
		}
	}
	if len(collectable) == 0 {
		return []AvailableDonation{}, nil
	}

	donors, err := s.donors.GetByIDs(ctx, donorIDs)
	if err != nil {
		return nil, NewDonationServiceError("list available", "failed to load donors", err)
	}

	out := make([]AvailableDonation, len(collectable))
	for i, d := range collectable {
		out[i] = AvailableDonation{Donation: d, DonorName: NotAvailable, DonorAddress: NotAvailable}
		if donor, ok := donors[d.DonorID]; ok && donor != nil {
			out[i].DonorName = donor.Name
			out[i].DonorAddress = donor.Address
		}
	}
	return out, nil
}

// ListByDonor implements DonationService.ListByDonor
func (s *DonationServiceImpl) ListByDonor(ctx context.Context, donorID uuid.UUID) ([]*domain.Donation, error) {
	donations, err := s.donations.ListByDonor(ctx, donorID)
	if err != nil {
		return nil, NewDonationServiceError("list by donor", "failed to list donations", err)
	}
	if donations == nil {
		donations = []*domain.Donation{}
	}
	return donations, nil
}
