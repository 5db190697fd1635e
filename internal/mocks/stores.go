package mocks

import (
	"context"
	"database/sql"

	"github.com/foodbridge/match-api/internal/domain"
	"github.com/foodbridge/match-api/internal/store"
	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"
)

// TestifyMockRecipientStore is a mock of store.RecipientStore for use with testify/mock
type TestifyMockRecipientStore struct {
	mock.Mock
}

var _ store.RecipientStore = (*TestifyMockRecipientStore)(nil)

// Create is a mock implementation of store.RecipientStore.Create
func (m *TestifyMockRecipientStore) Create(ctx context.Context, r *domain.Recipient) error {
	return m.Called(ctx, r).Error(0)
}

// ListLocatable is a mock implementation of store.RecipientStore.ListLocatable
func (m *TestifyMockRecipientStore) ListLocatable(ctx context.Context) ([]*domain.Recipient, error) {
	args := m.Called(ctx)
	if rs, ok := args.Get(0).([]*domain.Recipient); ok {
		return rs, args.Error(1)
	}
	return nil, args.Error(1)
}

// GetByIDs is a mock implementation of store.RecipientStore.GetByIDs
func (m *TestifyMockRecipientStore) GetByIDs(ctx context.Context, ids []uuid.UUID) (map[uuid.UUID]*domain.Recipient, error) {
	args := m.Called(ctx, ids)
	if rs, ok := args.Get(0).(map[uuid.UUID]*domain.Recipient); ok {
		return rs, args.Error(1)
	}
	return nil, args.Error(1)
}

// TestifyMockDonorStore is a mock of store.DonorStore for use with testify/mock
type TestifyMockDonorStore struct {
	mock.Mock
}

var _ store.DonorStore = (*TestifyMockDonorStore)(nil)

// Create is a mock implementation of store.DonorStore.Create
func (m *TestifyMockDonorStore) Create(ctx context.Context, d *domain.Donor) error {
	return m.Called(ctx, d).Error(0)
}

// GetByID is a mock implementation of store.DonorStore.GetByID
func (m *TestifyMockDonorStore) GetByID(ctx context.Context, id uuid.UUID) (*domain.Donor, error) {
	args := m.Called(ctx, id)
	if d, ok := args.Get(0).(*domain.Donor); ok {
		return d, args.Error(1)
	}
	return nil, args.Error(1)
}

// GetByIDs is a mock implementation of store.DonorStore.GetByIDs
func (m *TestifyMockDonorStore) GetByIDs(ctx context.Context, ids []uuid.UUID) (map[uuid.UUID]*domain.Donor, error) {
	args := m.Called(ctx, ids)
	if ds, ok := args.Get(0).(map[uuid.UUID]*domain.Donor); ok {
		return ds, args.Error(1)
	}
	return nil, args.Error(1)
}

// TestifyMockVolunteerStore is a mock of store.VolunteerStore for use with testify/mock
type TestifyMockVolunteerStore struct {
	mock.Mock
}

var _ store.VolunteerStore = (*TestifyMockVolunteerStore)(nil)

// Create is a mock implementation of store.VolunteerStore.Create
func (m *TestifyMockVolunteerStore) Create(ctx context.Context, v *domain.Volunteer) error {
	return m.Called(ctx, v).Error(0)
}

// GetByID is a mock implementation of store.VolunteerStore.GetByID
func (m *TestifyMockVolunteerStore) GetByID(ctx context.Context, id uuid.UUID) (*domain.Volunteer, error) {
	args := m.Called(ctx, id)
	if v, ok := args.Get(0).(*domain.Volunteer); ok {
		return v, args.Error(1)
	}
	return nil, args.Error(1)
}

// TestifyMockDonationStore is a mock of store.DonationStore for use with testify/mock
type TestifyMockDonationStore struct {
	mock.Mock
}

var _ store.DonationStore = (*TestifyMockDonationStore)(nil)

// Create is a mock implementation of store.DonationStore.Create
func (m *TestifyMockDonationStore) Create(ctx context.Context, d *domain.Donation) error {
	return m.Called(ctx, d).Error(0)
}

// GetByID is a mock implementation of store.DonationStore.GetByID
func (m *TestifyMockDonationStore) GetByID(ctx context.Context, id uuid.UUID) (*domain.Donation, error) {
	args := m.Called(ctx, id)
	if d, ok := args.Get(0).(*domain.Donation); ok {
		return d, args.Error(1)
	}
	return nil, args.Error(1)
}

// ListByDonor is a mock implementation of store.DonationStore.ListByDonor
func (m *TestifyMockDonationStore) ListByDonor(ctx context.Context, donorID uuid.UUID) ([]*domain.Donation, error) {
	args := m.Called(ctx, donorID)
	if ds, ok := args.Get(0).([]*domain.Donation); ok {
		return ds, args.Error(1)
	}
	return nil, args.Error(1)
}

// ListByStatus is a mock implementation of store.DonationStore.ListByStatus
func (m *TestifyMockDonationStore) ListByStatus(ctx context.Context, status domain.DonationStatus) ([]*domain.Donation, error) {
	args := m.Called(ctx, status)
	if ds, ok := args.Get(0).([]*domain.Donation); ok {
		return ds, args.Error(1)
	}
	return nil, args.Error(1)
}

// UpdateStatus is a mock implementation of store.DonationStore.UpdateStatus
func (m *TestifyMockDonationStore) UpdateStatus(ctx context.Context, id uuid.UUID, status domain.DonationStatus) error {
	return m.Called(ctx, id, status).Error(0)
}

// WithTx is a mock implementation of store.DonationStore.WithTx
func (m *TestifyMockDonationStore) WithTx(tx *sql.Tx) store.DonationStore {
	return m
}

// TestifyMockConfirmedMatchStore is a mock of store.ConfirmedMatchStore for use with testify/mock
type TestifyMockConfirmedMatchStore struct {
	mock.Mock
}

var _ store.ConfirmedMatchStore = (*TestifyMockConfirmedMatchStore)(nil)

// Create is a mock implementation of store.ConfirmedMatchStore.Create
func (m *TestifyMockConfirmedMatchStore) Create(ctx context.Context, cm *domain.ConfirmedMatch) error {
	return m.Called(ctx, cm).Error(0)
}

// GetByTaskID is a mock implementation of store.ConfirmedMatchStore.GetByTaskID
func (m *TestifyMockConfirmedMatchStore) GetByTaskID(ctx context.Context, taskID uuid.UUID) (*domain.ConfirmedMatch, error) {
	args := m.Called(ctx, taskID)
	if cm, ok := args.Get(0).(*domain.ConfirmedMatch); ok {
		return cm, args.Error(1)
	}
	return nil, args.Error(1)
}

// ListByVolunteer is a mock implementation of store.ConfirmedMatchStore.ListByVolunteer
func (m *TestifyMockConfirmedMatchStore) ListByVolunteer(ctx context.Context, volunteerID uuid.UUID) ([]*domain.ConfirmedMatch, error) {
	args := m.Called(ctx, volunteerID)
	if cms, ok := args.Get(0).([]*domain.ConfirmedMatch); ok {
		return cms, args.Error(1)
	}
	return nil, args.Error(1)
}

// MarkDelivered is a mock implementation of store.ConfirmedMatchStore.MarkDelivered
func (m *TestifyMockConfirmedMatchStore) MarkDelivered(ctx context.Context, cm *domain.ConfirmedMatch) error {
	return m.Called(ctx, cm).Error(0)
}

// WithTx is a mock implementation of store.ConfirmedMatchStore.WithTx
func (m *TestifyMockConfirmedMatchStore) WithTx(tx *sql.Tx) store.ConfirmedMatchStore {
	return m
}
