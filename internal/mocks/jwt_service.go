package mocks

import (
	"context"
	"sync"

	"github.com/foodbridge/match-api/internal/service/auth"
	"github.com/google/uuid"
)

// MockJWTService implements auth.JWTService for testing. Without custom
// functions it issues opaque tokens and validates only the tokens it issued.
type MockJWTService struct {
	// GenerateTokenFn allows test cases to mock the GenerateToken behavior
	GenerateTokenFn func(ctx context.Context, userID uuid.UUID) (string, error)

	// ValidateTokenFn allows test cases to mock the ValidateToken behavior
	ValidateTokenFn func(ctx context.Context, tokenString string) (*auth.Claims, error)

	mu     sync.Mutex
	issued map[string]uuid.UUID
}

var _ auth.JWTService = (*MockJWTService)(nil)

// GenerateToken implements the auth.JWTService interface
func (m *MockJWTService) GenerateToken(ctx context.Context, userID uuid.UUID) (string, error) {
	if m.GenerateTokenFn != nil {
		return m.GenerateTokenFn(ctx, userID)
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.issued == nil {
		m.issued = make(map[string]uuid.UUID)
	}
	token := "token-" + userID.String()
	m.issued[token] = userID
	return token, nil
}

// ValidateToken implements the auth.JWTService interface
func (m *MockJWTService) ValidateToken(ctx context.Context, tokenString string) (*auth.Claims, error) {
	if m.ValidateTokenFn != nil {
		return m.ValidateTokenFn(ctx, tokenString)
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	userID, ok := m.issued[tokenString]
	if !ok {
		return nil, auth.ErrInvalidToken
	}
	return &auth.Claims{UserID: userID, Subject: userID.String(), TokenType: "access"}, nil
}

// BearerFor issues a token for userID and returns it as an Authorization
// header value.
func (m *MockJWTService) BearerFor(userID uuid.UUID) string {
	token, _ := m.GenerateToken(context.Background(), userID)
	return "Bearer " + token
}
