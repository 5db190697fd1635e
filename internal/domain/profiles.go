package domain

import (
	"errors"
	"strings"
	"time"

	"github.com/foodbridge/match-api/internal/domain/geo"
	"github.com/google/uuid"
)

// Common validation errors for profiles
var (
	ErrEmptyProfileID   = errors.New("profile ID cannot be empty")
	ErrEmptyProfileName = errors.New("profile name cannot be empty")
)

// Donor is the profile of a food donor, keyed by the caller's identity subject.
type Donor struct {
	ID          uuid.UUID `json:"donor_id"`
	Email       string    `json:"email,omitempty"`
	Name        string    `json:"name"`
	Address     string    `json:"address,omitempty"`
	PostNumber  string    `json:"post_number,omitempty"`
	PhoneNumber string    `json:"phone_number,omitempty"`
	Latitude    *float64  `json:"latitude,omitempty"`
	Longitude   *float64  `json:"longitude,omitempty"`
	CreatedAt   time.Time `json:"created_at"`
}

// Validate checks if the Donor has valid data.
func (d *Donor) Validate() error {
	if d.ID == uuid.Nil {
		return ErrEmptyProfileID
	}
	if strings.TrimSpace(d.Name) == "" {
		return ErrEmptyProfileName
	}
	return nil
}

// Location returns the donor's position and whether it is usable.
func (d *Donor) Location() (geo.Point, bool) {
	return geo.PointFrom(d.Latitude, d.Longitude)
}

// Recipient is a party that can receive donations. Coordinates are supplied
// directly and may be absent, in which case the recipient is never a match
// candidate.
type Recipient struct {
	ID          uuid.UUID `json:"recipient_id"`
	Name        string    `json:"name"`
	PhoneNumber string    `json:"phone_number,omitempty"`
	Address     string    `json:"address,omitempty"`
	PostNumber  string    `json:"post_number,omitempty"`
	Email       string    `json:"email,omitempty"`
	Notes       string    `json:"notes,omitempty"`
	Latitude    *float64  `json:"latitude,omitempty"`
	Longitude   *float64  `json:"longitude,omitempty"`
	CreatedAt   time.Time `json:"created_at"`
}

// Validate checks if the Recipient has valid data.
func (r *Recipient) Validate() error {
	if r.ID == uuid.Nil {
		return ErrEmptyProfileID
	}
	if strings.TrimSpace(r.Name) == "" {
		return ErrEmptyProfileName
	}
	return nil
}

// Location returns the recipient's position and whether it is usable.
func (r *Recipient) Location() (geo.Point, bool) {
	return geo.PointFrom(r.Latitude, r.Longitude)
}

// VolunteerStatus is the standing of a volunteer profile.
type VolunteerStatus string

// VolunteerStatusActive is assigned to newly created volunteers.
const VolunteerStatusActive VolunteerStatus = "ACTIVE"

// Volunteer is the profile of a person who brokers donations.
type Volunteer struct {
	ID          uuid.UUID       `json:"volunteer_id"`
	Name        string          `json:"name"`
	PhoneNumber string          `json:"phone_number,omitempty"`
	Status      VolunteerStatus `json:"status"`
	CreatedAt   time.Time       `json:"created_at"`
}

// Validate checks if the Volunteer has valid data.
func (v *Volunteer) Validate() error {
	if v.ID == uuid.Nil {
		return ErrEmptyProfileID
	}
	if strings.TrimSpace(v.Name) == "" {
		return ErrEmptyProfileName
	}
	if v.Status != VolunteerStatusActive {
		return ErrInvalidStatus
	}
	return nil
}
