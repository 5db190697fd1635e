package domain

import (
	"errors"
	"time"

	"github.com/google/uuid"
)

// ConfirmedMatchStatus tracks a confirmed match after the volunteer's choice.
type ConfirmedMatchStatus string

// Possible confirmed match status values
const (
	ConfirmedMatchStatusConfirmed ConfirmedMatchStatus = "CONFIRMED"
	ConfirmedMatchStatusDelivered ConfirmedMatchStatus = "DELIVERED"
)

// ErrMatchAlreadyDelivered is returned when a delivered match is delivered again.
var ErrMatchAlreadyDelivered = errors.New("match already delivered")

// ConfirmedMatch records a volunteer's choice of one recommended recipient
// for a completed match task.
type ConfirmedMatch struct {
	ID          uuid.UUID            `json:"match_id"`
	TaskID      uuid.UUID            `json:"task_id"`
	DonationID  uuid.UUID            `json:"donation_id"`
	VolunteerID uuid.UUID            `json:"volunteer_id"`
	RecipientID uuid.UUID            `json:"recipient_id"`
	Status      ConfirmedMatchStatus `json:"status"`
	ConfirmedAt time.Time            `json:"confirmed_at"`
	DeliveredAt *time.Time           `json:"delivered_at,omitempty"`
}

// NewConfirmedMatch creates a confirmation for task choosing recipientID.
// Callers are expected to have checked ownership, status, and membership.
func NewConfirmedMatch(task *MatchTask, recipientID uuid.UUID) *ConfirmedMatch {
	return &ConfirmedMatch{
		ID:          uuid.New(),
		TaskID:      task.ID,
		DonationID:  task.DonationID,
		VolunteerID: task.VolunteerID,
		RecipientID: recipientID,
		Status:      ConfirmedMatchStatusConfirmed,
		ConfirmedAt: time.Now().UTC(),
	}
}

// MarkDelivered records that the volunteer handed the donation over.
func (m *ConfirmedMatch) MarkDelivered() error {
	if m.Status == ConfirmedMatchStatusDelivered {
		return ErrMatchAlreadyDelivered
	}
	now := time.Now().UTC()
	m.Status = ConfirmedMatchStatusDelivered
	m.DeliveredAt = &now
	return nil
}
