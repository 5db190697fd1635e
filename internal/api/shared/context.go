package shared

import (
	"context"
	"crypto/rand"
	"encoding/hex"

	"github.com/go-chi/chi/v5/middleware"
	"github.com/google/uuid"
)

// ContextKey is the type of request-scoped values set by the API layer.
type ContextKey string

const (
	// UserIDContextKey holds the authenticated caller's UUID. Donors,
	// recipients, and volunteers are all identified by this value.
	UserIDContextKey ContextKey = "userID"

	// TraceIDKey holds the trace ID echoed in error responses.
	TraceIDKey ContextKey = "traceID"

	// TraceIDLength is the number of random bytes in a generated trace ID.
	TraceIDLength = 16
)

// SetTraceID adds a trace ID to the context. The chi request ID is reused
// when one has been assigned so logs and error bodies correlate.
func SetTraceID(ctx context.Context) context.Context {
	traceID := middleware.GetReqID(ctx)
	if traceID == "" {
		traceID = generateTraceID()
	}
	return context.WithValue(ctx, TraceIDKey, traceID)
}

// GetTraceID retrieves the trace ID from the context, or "" if none is set.
func GetTraceID(ctx context.Context) string {
	traceID, _ := ctx.Value(TraceIDKey).(string)
	return traceID
}

// WithUserID stores the authenticated caller in ctx.
func WithUserID(ctx context.Context, userID uuid.UUID) context.Context {
	return context.WithValue(ctx, UserIDContextKey, userID)
}

// UserIDFromContext returns the authenticated caller and whether one is set.
func UserIDFromContext(ctx context.Context) (uuid.UUID, bool) {
	userID, ok := ctx.Value(UserIDContextKey).(uuid.UUID)
	if !ok || userID == uuid.Nil {
		return uuid.Nil, false
	}
	return userID, true
}

func generateTraceID() string {
	b := make([]byte, TraceIDLength)
	if _, err := rand.Read(b); err != nil {
		// crypto/rand only fails on a broken platform; a UUID is still unique.
		return uuid.NewString()
	}
	return hex.EncodeToString(b)
}
