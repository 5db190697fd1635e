package api

import (
	"time"

	"github.com/foodbridge/match-api/internal/domain"
	"github.com/foodbridge/match-api/internal/service"
	"github.com/google/uuid"
)

// CreateTaskRequest asks for recipient recommendations for a donation.
type CreateTaskRequest struct {
	DonationID string `json:"donation_id" validate:"required,uuid"`
}

// CreateTaskResponse acknowledges a queued match request.
type CreateTaskResponse struct {
	TaskID  uuid.UUID `json:"task_id"`
	Status  string    `json:"status"`
	Message string    `json:"message"`
	PollURL string    `json:"poll_url"`
}

// RecipientResponse is one recommended recipient in a task result.
// Contact carries the phone number; phone_number is kept for older clients.
type RecipientResponse struct {
	RecipientID uuid.UUID `json:"recipient_id"`
	Name        string    `json:"name"`
	Contact     string    `json:"contact"`
	PhoneNumber string    `json:"phone_number"`
	PostNumber  string    `json:"post_number"`
	Address     string    `json:"address"`
	Reason      string    `json:"reason"`
}

// TaskResultResponse is the polling view of a match task.
type TaskResultResponse struct {
	TaskID                uuid.UUID           `json:"task_id"`
	Status                string              `json:"status"`
	Message               string              `json:"message,omitempty"`
	RecommendedRecipients []RecipientResponse `json:"recommended_recipients"`
	Error                 string              `json:"error,omitempty"`
}

// ConfirmMatchRequest names the recipient the volunteer chose.
type ConfirmMatchRequest struct {
	RecipientID string `json:"recipient_id" validate:"required,uuid"`
}

// MatchResponse describes a confirmed match.
type MatchResponse struct {
	MatchID     uuid.UUID  `json:"match_id"`
	TaskID      uuid.UUID  `json:"task_id"`
	DonationID  uuid.UUID  `json:"donation_id"`
	RecipientID uuid.UUID  `json:"recipient_id"`
	Status      string     `json:"status"`
	ConfirmedAt time.Time  `json:"confirmed_at"`
	DeliveredAt *time.Time `json:"delivered_at,omitempty"`
}

// HistoryEntryResponse is one entry in a volunteer's task history.
type HistoryEntryResponse struct {
	MatchID        uuid.UUID  `json:"match_id"`
	TaskID         uuid.UUID  `json:"task_id"`
	DonationID     uuid.UUID  `json:"donation_id"`
	RecipientID    uuid.UUID  `json:"recipient_id"`
	Status         string     `json:"status"`
	TaskStatus     string     `json:"task_status,omitempty"`
	ItemName       string     `json:"item_name"`
	Category       string     `json:"category"`
	Quantity       int        `json:"quantity"`
	ExpirationDate string     `json:"expiration_date"`
	ConfirmedAt    time.Time  `json:"confirmed_at"`
	DeliveredAt    *time.Time `json:"delivered_at,omitempty"`
}

// CreateDonationRequest describes a donated item. Coordinates come from the
// donor's profile.
type CreateDonationRequest struct {
	Category       string `json:"category"        validate:"required,max=100"`
	ItemName       string `json:"item_name"       validate:"required,max=200"`
	Quantity       int    `json:"quantity"        validate:"gt=0"`
	ExpirationDate string `json:"expiration_date" validate:"required,datetime=2006-01-02"`
}

// DonationResponse describes a donation.
type DonationResponse struct {
	DonationID     uuid.UUID   `json:"donation_id"`
	DonorID        uuid.UUID   `json:"donor_id"`
	Category       string      `json:"category"`
	ItemName       string      `json:"item_name"`
	Quantity       int         `json:"quantity"`
	ExpirationDate string      `json:"expiration_date"`
	Status         string      `json:"status"`
	Latitude       *float64    `json:"latitude,omitempty"`
	Longitude      *float64    `json:"longitude,omitempty"`
	PickupTimes    []time.Time `json:"pickup_times"`
	CreatedAt      time.Time   `json:"created_at"`
}

// AvailableDonationResponse is a donation offered to volunteers along with
// its donor's contact details.
type AvailableDonationResponse struct {
	DonationResponse
	DonorName    string `json:"donor_name"`
	DonorAddress string `json:"donor_address"`
}

// DonorProfileRequest creates the caller's donor profile.
type DonorProfileRequest struct {
	Name        string   `json:"name"         validate:"required,max=200"`
	Email       string   `json:"email"        validate:"omitempty,email"`
	Address     string   `json:"address"      validate:"max=500"`
	PostNumber  string   `json:"post_number"  validate:"max=20"`
	PhoneNumber string   `json:"phone_number" validate:"max=40"`
	Latitude    *float64 `json:"latitude"     validate:"required_with=Longitude,omitempty,latitude"`
	Longitude   *float64 `json:"longitude"    validate:"required_with=Latitude,omitempty,longitude"`
}

// RecipientProfileRequest creates the caller's recipient profile.
type RecipientProfileRequest struct {
	Name        string   `json:"name"         validate:"required,max=200"`
	Email       string   `json:"email"        validate:"omitempty,email"`
	Address     string   `json:"address"      validate:"max=500"`
	PostNumber  string   `json:"post_number"  validate:"max=20"`
	PhoneNumber string   `json:"phone_number" validate:"max=40"`
	Notes       string   `json:"notes"        validate:"max=2000"`
	Latitude    *float64 `json:"latitude"     validate:"required_with=Longitude,omitempty,latitude"`
	Longitude   *float64 `json:"longitude"    validate:"required_with=Latitude,omitempty,longitude"`
}

// VolunteerProfileRequest creates the caller's volunteer profile.
type VolunteerProfileRequest struct {
	Name        string `json:"name"         validate:"required,max=200"`
	PhoneNumber string `json:"phone_number" validate:"max=40"`
}

// ProfileResponse acknowledges a created profile.
type ProfileResponse struct {
	ID        uuid.UUID `json:"id"`
	Kind      string    `json:"kind"`
	Name      string    `json:"name"`
	Status    string    `json:"status,omitempty"`
	CreatedAt time.Time `json:"created_at"`
}

func taskResultToResponse(result *service.TaskResult) TaskResultResponse {
	recipients := make([]RecipientResponse, 0, len(result.Recipients))
	for _, r := range result.Recipients {
		recipients = append(recipients, RecipientResponse{
			RecipientID: r.RecipientID,
			Name:        r.Name,
			Contact:     r.PhoneNumber,
			PhoneNumber: r.PhoneNumber,
			PostNumber:  r.PostNumber,
			Address:     r.Address,
			Reason:      r.Reason,
		})
	}
	return TaskResultResponse{
		TaskID:                result.TaskID,
		Status:                string(result.Status),
		Message:               result.Message,
		RecommendedRecipients: recipients,
		Error:                 result.Error,
	}
}

func matchToResponse(m *domain.ConfirmedMatch) MatchResponse {
	return MatchResponse{
		MatchID:     m.ID,
		TaskID:      m.TaskID,
		DonationID:  m.DonationID,
		RecipientID: m.RecipientID,
		Status:      string(m.Status),
		ConfirmedAt: m.ConfirmedAt,
		DeliveredAt: m.DeliveredAt,
	}
}

func donationToResponse(d *domain.Donation) DonationResponse {
	pickups := d.PickupTimes
	if pickups == nil {
		pickups = []time.Time{}
	}
	return DonationResponse{
		DonationID:     d.ID,
		DonorID:        d.DonorID,
		Category:       d.Category,
		ItemName:       d.ItemName,
		Quantity:       d.Quantity,
		ExpirationDate: d.ExpirationDate,
		Status:         string(d.Status),
		Latitude:       d.Latitude,
		Longitude:      d.Longitude,
		PickupTimes:    pickups,
		CreatedAt:      d.CreatedAt,
	}
}

func historyToResponse(entries []service.HistoryEntry) []HistoryEntryResponse {
	out := make([]HistoryEntryResponse, 0, len(entries))
	for _, e := range entries {
		out = append(out, HistoryEntryResponse{
			MatchID:        e.MatchID,
			TaskID:         e.TaskID,
			DonationID:     e.DonationID,
			RecipientID:    e.RecipientID,
			Status:         string(e.Status),
			TaskStatus:     string(e.TaskStatus),
			ItemName:       e.ItemName,
			Category:       e.Category,
			Quantity:       e.Quantity,
			ExpirationDate: e.ExpirationDate,
			ConfirmedAt:    e.ConfirmedAt,
			DeliveredAt:    e.DeliveredAt,
		})
	}
	return out
}
