package mocks

import (
	"context"
	"sync"

	"github.com/foodbridge/match-api/internal/domain"
	"github.com/foodbridge/match-api/internal/ranking"
)

// MockOracle implements ranking.Oracle for testing
type MockOracle struct {
	// RankFn allows test cases to mock the Rank behavior
	RankFn func(ctx context.Context, req ranking.Request) ([]domain.Recommendation, error)

	// Default response values
	Recommendations []domain.Recommendation
	Err             error

	// Call tracking for verification
	RankCalls struct {
		// mu protects the call tracking state for concurrent test cases
		mu sync.Mutex

		// Count tracks how many times Rank was called
		Count int

		// Requests contains all requests passed to Rank calls
		Requests []ranking.Request
	}
}

var _ ranking.Oracle = (*MockOracle)(nil)

// Rank implements the ranking.Oracle interface
func (m *MockOracle) Rank(ctx context.Context, req ranking.Request) ([]domain.Recommendation, error) {
	m.RankCalls.mu.Lock()
	m.RankCalls.Count++
	m.RankCalls.Requests = append(m.RankCalls.Requests, req)
	m.RankCalls.mu.Unlock()

	if m.RankFn != nil {
		return m.RankFn(ctx, req)
	}
	return m.Recommendations, m.Err
}

// CallCount returns how many times Rank was called
func (m *MockOracle) CallCount() int {
	m.RankCalls.mu.Lock()
	defer m.RankCalls.mu.Unlock()
	return m.RankCalls.Count
}

// LastRequest returns the most recent request, or the zero Request
func (m *MockOracle) LastRequest() ranking.Request {
	m.RankCalls.mu.Lock()
	defer m.RankCalls.mu.Unlock()
	if len(m.RankCalls.Requests) == 0 {
		return ranking.Request{}
	}
	return m.RankCalls.Requests[len(m.RankCalls.Requests)-1]
}

// NewMockOracleRecommendingFirst creates a MockOracle that recommends the
// first n candidates it is offered, in order.
func NewMockOracleRecommendingFirst(n int) *MockOracle {
	return &MockOracle{
		RankFn: func(ctx context.Context, req ranking.Request) ([]domain.Recommendation, error) {
			recs := []domain.Recommendation{}
			for i, c := range req.Candidates {
				if i == n {
					break
				}
				recs = append(recs, domain.Recommendation{RecipientID: c.ID, Reason: "nearby"})
			}
			return recs, nil
		},
	}
}

// NewMockOracleWithError creates a MockOracle that always fails with err
func NewMockOracleWithError(err error) *MockOracle {
	return &MockOracle{Err: err}
}

// Reset resets the call tracking state
func (m *MockOracle) Reset() {
	m.RankCalls.mu.Lock()
	defer m.RankCalls.mu.Unlock()

	m.RankCalls.Count = 0
	m.RankCalls.Requests = nil
}
