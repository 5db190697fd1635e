package domain

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/foodbridge/match-api/internal/domain/geo"
	"github.com/google/uuid"
)

// DonationStatus represents the lifecycle state of a donation.
type DonationStatus string

// Possible donation status values
const (
	DonationStatusPending   DonationStatus = "PENDING"
	DonationStatusMatched   DonationStatus = "MATCHED"
	DonationStatusCancelled DonationStatus = "CANCELLED"
)

// Common validation errors for Donation
var (
	ErrEmptyDonationID       = errors.New("donation ID cannot be empty")
	ErrEmptyDonationDonorID  = errors.New("donation donor ID cannot be empty")
	ErrEmptyDonationItemName = errors.New("donation item name cannot be empty")
	ErrInvalidDonationStatus = errors.New("invalid donation status")
	ErrInvalidQuantity       = errors.New("donation quantity must be positive")
)

// Donation is a food offer registered by a donor. Its coordinates are copied
// from the donor profile at creation and never re-derived; only the status
// changes afterwards.
type Donation struct {
	ID             uuid.UUID      `json:"donation_id"`
	DonorID        uuid.UUID      `json:"donor_id"`
	Category       string         `json:"category"`
	ItemName       string         `json:"item_name"`
	Quantity       int            `json:"quantity"`
	ExpirationDate string         `json:"expiration_date"`
	Status         DonationStatus `json:"status"`
	Latitude       *float64       `json:"latitude,omitempty"`
	Longitude      *float64       `json:"longitude,omitempty"`
	PickupTimes    []time.Time    `json:"pickup_times"`
	CreatedAt      time.Time      `json:"created_at"`
	UpdatedAt      time.Time      `json:"updated_at"`
}

// NewDonation creates a pending donation at the donor's location.
// Returns ErrMissingLocation when the donor has no usable coordinates.
func NewDonation(
	donor *Donor,
	category, itemName string,
	quantity int,
	expirationDate string,
	pickupTimes []time.Time,
) (*Donation, error) {
	if donor == nil {
		return nil, ErrEmptyDonationDonorID
	}
	loc, ok := donor.Location()
	if !ok {
		return nil, ErrMissingLocation
	}

	now := time.Now().UTC()
	lat, lon := loc.Lat, loc.Lon
	d := &Donation{
		ID:             uuid.New(),
		DonorID:        donor.ID,
		Category:       strings.TrimSpace(category),
		ItemName:       strings.TrimSpace(itemName),
		Quantity:       quantity,
		ExpirationDate: expirationDate,
		Status:         DonationStatusPending,
		Latitude:       &lat,
		Longitude:      &lon,
		PickupTimes:    pickupTimes,
		CreatedAt:      now,
		UpdatedAt:      now,
	}

	if err := d.Validate(); err != nil {
		return nil, err
	}
	return d, nil
}

// Validate checks if the Donation has valid data.
func (d *Donation) Validate() error {
	if d.ID == uuid.Nil {
		return ErrEmptyDonationID
	}
	if d.DonorID == uuid.Nil {
		return ErrEmptyDonationDonorID
	}
	if d.ItemName == "" {
		return ErrEmptyDonationItemName
	}
	if d.Quantity <= 0 {
		return ErrInvalidQuantity
	}
	if !isValidDonationStatus(d.Status) {
		return fmt.Errorf("%w: %q", ErrInvalidDonationStatus, d.Status)
	}
	return nil
}

// Location returns the donation's pickup point and whether it is usable.
func (d *Donation) Location() (geo.Point, bool) {
	return geo.PointFrom(d.Latitude, d.Longitude)
}

// HasPickupTime reports whether slot is one of the donation's pickup times.
func (d *Donation) HasPickupTime(slot time.Time) bool {
	for _, t := range d.PickupTimes {
		if t.Equal(slot) {
			return true
		}
	}
	return false
}

func isValidDonationStatus(status DonationStatus) bool {
	switch status {
	case DonationStatusPending, DonationStatusMatched, DonationStatusCancelled:
		return true
	default:
		return false
	}
}
