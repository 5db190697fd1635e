package api

import (
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/foodbridge/match-api/internal/domain"
	"github.com/foodbridge/match-api/internal/service"
	"github.com/foodbridge/match-api/internal/service/auth"
	"github.com/foodbridge/match-api/internal/store"
	"github.com/stretchr/testify/assert"
)

func TestMapErrorToStatusCode(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name           string
		err            error
		expectedStatus int
	}{
		{name: "nil error", err: nil, expectedStatus: http.StatusInternalServerError},
		{name: "invalid token", err: auth.ErrInvalidToken, expectedStatus: http.StatusUnauthorized},
		{name: "wrapped expired token", err: fmt.Errorf("authenticate: %w", auth.ErrExpiredToken), expectedStatus: http.StatusUnauthorized},
		{name: "not owner", err: service.ErrTaskNotOwned, expectedStatus: http.StatusForbidden},
		{name: "task not found", err: service.ErrTaskNotFound, expectedStatus: http.StatusNotFound},
		{
			name:           "donation without location",
			err:            fmt.Errorf("%w: %v", service.ErrDonationNotFound, domain.ErrMissingLocation),
			expectedStatus: http.StatusNotFound,
		},
		{name: "store not found", err: store.ErrRecipientNotFound, expectedStatus: http.StatusNotFound},
		{name: "not completed", err: service.ErrTaskNotCompleted, expectedStatus: http.StatusConflict},
		{name: "already confirmed", err: service.ErrAlreadyConfirmed, expectedStatus: http.StatusConflict},
		{name: "profile exists", err: service.ErrProfileExists, expectedStatus: http.StatusConflict},
		{name: "not recommended", err: service.ErrRecipientNotRecommended, expectedStatus: http.StatusUnprocessableEntity},
		{name: "missing location", err: domain.ErrMissingLocation, expectedStatus: http.StatusUnprocessableEntity},
		{name: "validation", err: fmt.Errorf("%w: name", domain.ErrValidation), expectedStatus: http.StatusBadRequest},
		{name: "invalid quantity", err: domain.ErrInvalidQuantity, expectedStatus: http.StatusBadRequest},
		{name: "unknown", err: errors.New("connection reset"), expectedStatus: http.StatusInternalServerError},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			assert.Equal(t, tt.expectedStatus, MapErrorToStatusCode(tt.err))
		})
	}
}

func TestGetSafeErrorMessage(t *testing.T) {
	t.Parallel()

	assert.Equal(t, "An unexpected error occurred", GetSafeErrorMessage(nil))
	assert.Equal(t, "Task not found", GetSafeErrorMessage(fmt.Errorf("poll: %w", service.ErrTaskNotFound)))
	assert.Equal(t, "Recipient was not recommended for this task",
		GetSafeErrorMessage(service.ErrRecipientNotRecommended))

	leaky := errors.New("dial tcp 10.0.0.7:5432: password=hunter22")
	assert.Equal(t, "An unexpected error occurred", GetSafeErrorMessage(leaky))
}

func TestHandleAPIError(t *testing.T) {
	t.Parallel()

	req := httptest.NewRequest(http.MethodGet, "/api/tasks", nil)

	w := httptest.NewRecorder()
	HandleAPIError(w, req, errors.New("postgres://app:hunter22@db/match unreachable"), "Failed to load task")
	assert.Equal(t, http.StatusInternalServerError, w.Code)
	assert.Contains(t, w.Body.String(), "Failed to load task")
	assert.NotContains(t, w.Body.String(), "hunter22")

	w = httptest.NewRecorder()
	HandleAPIError(w, req, service.ErrTaskNotOwned, "Failed to load task")
	assert.Equal(t, http.StatusForbidden, w.Code)
	assert.Contains(t, w.Body.String(), "Task belongs to another volunteer")
}

func TestSanitizeValidationError(t *testing.T) {
	t.Parallel()

	err := errors.New("Key: 'CreateTaskRequest.DonationID' Error:Field validation for 'DonationID' failed on the 'uuid' tag")
	assert.Equal(t, "Invalid DonationID: must be a UUID", SanitizeValidationError(err))
	assert.Equal(t, "Validation error", SanitizeValidationError(errors.New("something else")))
}
