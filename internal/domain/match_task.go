package domain

import (
	"errors"
	"time"

	"github.com/google/uuid"
)

// MatchTaskStatus represents the processing state of a match task
type MatchTaskStatus string

// Possible match task status values
const (
	MatchTaskStatusPending    MatchTaskStatus = "PENDING"
	MatchTaskStatusProcessing MatchTaskStatus = "PROCESSING"
	MatchTaskStatusCompleted  MatchTaskStatus = "COMPLETED"
	MatchTaskStatusFailed     MatchTaskStatus = "FAILED"
)

// Common validation errors for MatchTask
var (
	ErrEmptyMatchTaskID        = errors.New("match task ID cannot be empty")
	ErrInvalidMatchTaskStatus  = errors.New("invalid match task status")
	ErrDuplicateRecommendation = errors.New("recipient recommended more than once")
)

// Recommendation is one recipient chosen by the ranking oracle together with
// the justification it gave.
type Recommendation struct {
	RecipientID uuid.UUID `json:"recipient_id"`
	Reason      string    `json:"reason"`
}

// MatchTask tracks one matching request from the moment a worker picks it up
// until a terminal result is stored. Recommendations keep the oracle's order.
type MatchTask struct {
	ID              uuid.UUID        `json:"task_id"`
	VolunteerID     uuid.UUID        `json:"volunteer_id"`
	DonationID      uuid.UUID        `json:"donation_id"`
	Status          MatchTaskStatus  `json:"status"`
	Recommendations []Recommendation `json:"recommendations"`
	ErrorMessage    string           `json:"error_message,omitempty"`
	CreatedAt       time.Time        `json:"created_at"`
	UpdatedAt       time.Time        `json:"updated_at"`
	CompletedAt     *time.Time       `json:"completed_at,omitempty"`
}

// NewProcessingTask returns the record a worker writes before it calls the
// ranking oracle.
func NewProcessingTask(id, volunteerID, donationID uuid.UUID) *MatchTask {
	now := time.Now().UTC()
	return &MatchTask{
		ID:              id,
		VolunteerID:     volunteerID,
		DonationID:      donationID,
		Status:          MatchTaskStatusProcessing,
		Recommendations: []Recommendation{},
		CreatedAt:       now,
		UpdatedAt:       now,
	}
}

// Complete moves the task to COMPLETED with the given recommendations.
// A nil or empty list is a valid outcome.
func (t *MatchTask) Complete(recs []Recommendation) {
	if recs == nil {
		recs = []Recommendation{}
	}
	now := time.Now().UTC()
	t.Status = MatchTaskStatusCompleted
	t.Recommendations = recs
	t.ErrorMessage = ""
	t.UpdatedAt = now
	t.CompletedAt = &now
}

// Fail moves the task to FAILED and records the error text.
func (t *MatchTask) Fail(cause error) {
	now := time.Now().UTC()
	t.Status = MatchTaskStatusFailed
	t.Recommendations = []Recommendation{}
	if cause != nil {
		t.ErrorMessage = cause.Error()
	}
	t.UpdatedAt = now
	t.CompletedAt = &now
}

// IsTerminal reports whether the task has reached COMPLETED or FAILED.
func (t *MatchTask) IsTerminal() bool {
	return t.Status.IsTerminal()
}

// IsOwnedBy reports whether volunteerID requested this task.
func (t *MatchTask) IsOwnedBy(volunteerID uuid.UUID) bool {
	return t.VolunteerID == volunteerID
}

// Recommends reports whether recipientID is among the recommendations.
func (t *MatchTask) Recommends(recipientID uuid.UUID) bool {
	for _, r := range t.Recommendations {
		if r.RecipientID == recipientID {
			return true
		}
	}
	return false
}

// RecipientIDs returns the recommended recipient IDs in order.
func (t *MatchTask) RecipientIDs() []uuid.UUID {
	ids := make([]uuid.UUID, len(t.Recommendations))
	for i, r := range t.Recommendations {
		ids[i] = r.RecipientID
	}
	return ids
}

// Validate checks if the MatchTask has valid data.
func (t *MatchTask) Validate() error {
	if t.ID == uuid.Nil {
		return ErrEmptyMatchTaskID
	}
	if !t.Status.IsValid() {
		return ErrInvalidMatchTaskStatus
	}
	seen := make(map[uuid.UUID]struct{}, len(t.Recommendations))
	for _, r := range t.Recommendations {
		if r.RecipientID == uuid.Nil {
			return ErrInvalidID
		}
		if _, dup := seen[r.RecipientID]; dup {
			return ErrDuplicateRecommendation
		}
		seen[r.RecipientID] = struct{}{}
	}
	return nil
}

// IsValid reports whether s is a known status.
func (s MatchTaskStatus) IsValid() bool {
	switch s {
	case MatchTaskStatusPending, MatchTaskStatusProcessing,
		MatchTaskStatusCompleted, MatchTaskStatusFailed:
		return true
	default:
		return false
	}
}

// IsTerminal reports whether s is COMPLETED or FAILED.
func (s MatchTaskStatus) IsTerminal() bool {
	return s == MatchTaskStatusCompleted || s == MatchTaskStatusFailed
}
