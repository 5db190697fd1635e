package ranking

import (
	"context"

	"github.com/foodbridge/match-api/internal/domain"
	"github.com/google/uuid"
)

// MaxRecommendations is the largest number of recipients an oracle may return.
const MaxRecommendations = 2

// Candidate is the view of a recipient the oracle is allowed to read.
type Candidate struct {
	ID             uuid.UUID `json:"id"`
	Name           string    `json:"name"`
	Contact        string    `json:"contact,omitempty"`
	Address        string    `json:"address,omitempty"`
	PostNumber     string    `json:"post_number,omitempty"`
	Notes          string    `json:"notes,omitempty"`
	DistanceMeters int       `json:"distance_m"`
}

// CandidateFromRecipient projects a recipient and its distance into a Candidate.
func CandidateFromRecipient(r *domain.Recipient, distanceMeters float64) Candidate {
	return Candidate{
		ID:             r.ID,
		Name:           r.Name,
		Contact:        r.PhoneNumber,
		Address:        r.Address,
		PostNumber:     r.PostNumber,
		Notes:          r.Notes,
		DistanceMeters: int(distanceMeters + 0.5),
	}
}

// Request is one ranking question: which of Candidates suit DonationName.
type Request struct {
	DonationName string
	Candidates   []Candidate
}

// Oracle ranks candidates for a donation.
//
// Implementations must not retry internally. Transport failures are returned
// wrapped in ErrOracleUnavailable; an answer that cannot be understood is not
// an error and yields an empty list.
type Oracle interface {
	Rank(ctx context.Context, req Request) ([]domain.Recommendation, error)
}
