package ranking

import (
	"encoding/json"
	"strings"

	"github.com/foodbridge/match-api/internal/domain"
	"github.com/google/uuid"
)

type rawRecommendation struct {
	ID     string `json:"id"`
	Reason string `json:"reason"`
}

// ParseRecommendations converts the oracle's raw answer into recommendations.
//
// The text must be a JSON array; anything else (invalid JSON, an object, null)
// yields an empty list rather than an error. Entries whose id is not one of
// the candidates, is malformed, or repeats an earlier entry are dropped, and
// the result is cut to limit entries. The returned slice is never nil.
func ParseRecommendations(raw string, candidates []Candidate, limit int) []domain.Recommendation {
	var entries []json.RawMessage
	if err := json.Unmarshal([]byte(strings.TrimSpace(raw)), &entries); err != nil {
		return []domain.Recommendation{}
	}

	parsed := make([]domain.Recommendation, 0, len(entries))
	for _, entry := range entries {
		var r rawRecommendation
		if err := json.Unmarshal(entry, &r); err != nil {
			continue
		}
		id, err := uuid.Parse(strings.TrimSpace(r.ID))
		if err != nil {
			continue
		}
		parsed = append(parsed, domain.Recommendation{RecipientID: id, Reason: strings.TrimSpace(r.Reason)})
	}
	return Restrict(parsed, candidates, limit)
}

// Restrict keeps the recommendations that name one of the candidates, drops
// repeats, and cuts the list to limit entries. The returned slice is never nil.
func Restrict(recs []domain.Recommendation, candidates []Candidate, limit int) []domain.Recommendation {
	out := []domain.Recommendation{}
	if limit <= 0 {
		return out
	}

	allowed := make(map[uuid.UUID]struct{}, len(candidates))
	for _, c := range candidates {
		allowed[c.ID] = struct{}{}
	}
	seen := make(map[uuid.UUID]struct{}, limit)

	for _, r := range recs {
		if _, ok := allowed[r.RecipientID]; !ok {
			continue
		}
		if _, dup := seen[r.RecipientID]; dup {
			continue
		}
		seen[r.RecipientID] = struct{}{}
		out = append(out, r)
		if len(out) == limit {
			break
		}
	}
	return out
}
