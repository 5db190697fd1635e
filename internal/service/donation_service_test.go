package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/foodbridge/match-api/internal/domain"
	"github.com/foodbridge/match-api/internal/mocks"
	"github.com/foodbridge/match-api/internal/store"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

type donationFixture struct {
	svc       *DonationServiceImpl
	donations *mocks.TestifyMockDonationStore
	donors    *mocks.TestifyMockDonorStore
}

// 2026-03-01 10:30 UTC: the 09:00 slot has passed, 13:00 is next.
var fixedNow = time.Date(2026, 3, 1, 10, 30, 0, 0, time.UTC)

func newDonationFixture(t *testing.T) *donationFixture {
	t.Helper()
	f := &donationFixture{
		donations: &mocks.TestifyMockDonationStore{},
		donors:    &mocks.TestifyMockDonorStore{},
	}
	var err error
	f.svc, err = NewDonationService(f.donations, f.donors, domain.NewPickupSchedule(nil, time.UTC), discardLogger())
	require.NoError(t, err)
	f.svc.now = func() time.Time { return fixedNow }
	return f
}

func TestCreateDonation(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	input := DonationInput{Category: "produce", ItemName: " Apples ", Quantity: 12, ExpirationDate: "2026-03-05"}

	t.Run("copies donor location and schedules two pickups", func(t *testing.T) {
		t.Parallel()
		f := newDonationFixture(t)
		donor := &domain.Donor{ID: uuid.New(), Name: "Bakery", Latitude: floatPtr(37.5), Longitude: floatPtr(127.0)}
		f.donors.On("GetByID", ctx, donor.ID).Return(donor, nil)
		f.donations.On("Create", ctx, mock.AnythingOfType("*domain.Donation")).Return(nil)

		donation, err := f.svc.CreateDonation(ctx, donor.ID, input)
		require.NoError(t, err)
		assert.Equal(t, "Apples", donation.ItemName)
		assert.Equal(t, domain.DonationStatusPending, donation.Status)
		assert.Equal(t, 37.5, *donation.Latitude)
		assert.Equal(t, []time.Time{
			time.Date(2026, 3, 1, 13, 0, 0, 0, time.UTC),
			time.Date(2026, 3, 2, 9, 0, 0, 0, time.UTC),
		}, donation.PickupTimes)
		f.donations.AssertExpectations(t)
	})

	t.Run("unknown donor", func(t *testing.T) {
		t.Parallel()
		f := newDonationFixture(t)
		id := uuid.New()
		f.donors.On("GetByID", ctx, id).Return(nil, store.ErrDonorNotFound)

		_, err := f.svc.CreateDonation(ctx, id, input)
		assert.ErrorIs(t, err, ErrProfileNotFound)
	})

	t.Run("donor without location", func(t *testing.T) {
		t.Parallel()
		f := newDonationFixture(t)
		donor := &domain.Donor{ID: uuid.New(), Name: "Bakery"}
		f.donors.On("GetByID", ctx, donor.ID).Return(donor, nil)

		_, err := f.svc.CreateDonation(ctx, donor.ID, input)
		assert.ErrorIs(t, err, domain.ErrMissingLocation)
		f.donations.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
	})

	t.Run("invalid quantity", func(t *testing.T) {
		t.Parallel()
		f := newDonationFixture(t)
		donor := &domain.Donor{ID: uuid.New(), Name: "Bakery", Latitude: floatPtr(1), Longitude: floatPtr(2)}
		f.donors.On("GetByID", ctx, donor.ID).Return(donor, nil)

		bad := input
		bad.Quantity = 0
		_, err := f.svc.CreateDonation(ctx, donor.ID, bad)
		assert.ErrorIs(t, err, domain.ErrInvalidQuantity)
	})
}

func TestListAvailable(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	f := newDonationFixture(t)

	current := time.Date(2026, 3, 1, 13, 0, 0, 0, time.UTC)
	known, unknown := uuid.New(), uuid.New()
	inSlot := &domain.Donation{ID: uuid.New(), DonorID: known, PickupTimes: []time.Time{current}}
	orphan := &domain.Donation{ID: uuid.New(), DonorID: unknown, PickupTimes: []time.Time{current.Add(20 * time.Hour), current}}
	later := &domain.Donation{ID: uuid.New(), DonorID: known, PickupTimes: []time.Time{current.Add(20 * time.Hour)}}

	f.donations.On("ListByStatus", ctx, domain.DonationStatusPending).
		Return([]*domain.Donation{inSlot, later, orphan}, nil)
	f.donors.On("GetByIDs", ctx, []uuid.UUID{known, unknown}).Return(map[uuid.UUID]*domain.Donor{
		known: {ID: known, Name: "Bakery", Address: "1 Main St"},
	}, nil)

	available, err := f.svc.ListAvailable(ctx)
	require.NoError(t, err)
	assert.Equal(t, []AvailableDonation{
		{Donation: inSlot, DonorName: "Bakery", DonorAddress: "1 Main St"},
		{Donation: orphan, DonorName: NotAvailable, DonorAddress: NotAvailable},
	}, available)
}

func TestListAvailable_NothingInSlot(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	f := newDonationFixture(t)
	f.donations.On("ListByStatus", ctx, domain.DonationStatusPending).Return([]*domain.Donation{}, nil)

	available, err := f.svc.ListAvailable(ctx)
	require.NoError(t, err)
	assert.Empty(t, available)
	f.donors.AssertNotCalled(t, "GetByIDs", mock.Anything, mock.Anything)
}

func TestListByDonor(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	f := newDonationFixture(t)
	donorID := uuid.New()
	f.donations.On("ListByDonor", ctx, donorID).Return(nil, nil).Once()

	donations, err := f.svc.ListByDonor(ctx, donorID)
	require.NoError(t, err)
	assert.NotNil(t, donations)

	f.donations.On("ListByDonor", ctx, donorID).Return(nil, errors.New("timeout")).Once()
	_, err = f.svc.ListByDonor(ctx, donorID)
	assert.Error(t, err)
}
