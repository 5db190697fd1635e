package auth

import (
	"context"
	"time"

	"github.com/google/uuid"
)

// JWTService issues and verifies bearer tokens. The token subject is the
// caller's identity and keys every donor, recipient, and volunteer profile.
type JWTService interface {
	// GenerateToken creates a signed access token for userID.
	GenerateToken(ctx context.Context, userID uuid.UUID) (string, error)

	// ValidateToken checks the token's signature and lifetime and returns its
	// claims, or an error if validation fails (expired, invalid signature, etc.).
	ValidateToken(ctx context.Context, tokenString string) (*Claims, error)
}

// Claims is the verified content of an access token.
type Claims struct {
	// UserID is the identity the token was issued for.
	UserID uuid.UUID `json:"uid,omitempty"`

	// TokenType is always "access"; other types are rejected.
	TokenType string `json:"type,omitempty"`

	Subject   string    `json:"sub,omitempty"`
	IssuedAt  time.Time `json:"iat,omitempty"`
	ExpiresAt time.Time `json:"exp,omitempty"`
	ID        string    `json:"jti,omitempty"`
}
