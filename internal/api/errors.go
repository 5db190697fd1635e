package api

import (
	"errors"
	"fmt"
	"net/http"
	"strings"

	"github.com/foodbridge/match-api/internal/api/shared"
	"github.com/foodbridge/match-api/internal/domain"
	"github.com/foodbridge/match-api/internal/service"
	"github.com/foodbridge/match-api/internal/service/auth"
	"github.com/foodbridge/match-api/internal/store"
)

var errUnauthenticated = errors.New("no authenticated user in request context")

// MapErrorToStatusCode maps internal errors to appropriate HTTP status codes
// based on the error type. This prevents leaking internal error types or
// messages to clients.
func MapErrorToStatusCode(err error) int {
	switch {
	// Authentication errors
	case errors.Is(err, auth.ErrInvalidToken),
		errors.Is(err, auth.ErrExpiredToken),
		errors.Is(err, auth.ErrTokenNotYetValid),
		errors.Is(err, auth.ErrMissingToken),
		errors.Is(err, auth.ErrWrongTokenType),
		errors.Is(err, errUnauthenticated):
		return http.StatusUnauthorized

	// Authorization errors
	case errors.Is(err, service.ErrTaskNotOwned):
		return http.StatusForbidden

	// Not found errors
	case errors.Is(err, service.ErrTaskNotFound),
		errors.Is(err, service.ErrDonationNotFound),
		errors.Is(err, service.ErrProfileNotFound),
		errors.Is(err, store.ErrNotFound):
		return http.StatusNotFound

	// Conflict errors
	case errors.Is(err, service.ErrTaskNotCompleted),
		errors.Is(err, service.ErrAlreadyConfirmed),
		errors.Is(err, service.ErrMatchNotConfirmed),
		errors.Is(err, service.ErrAlreadyDelivered),
		errors.Is(err, service.ErrProfileExists),
		errors.Is(err, store.ErrDuplicate):
		return http.StatusConflict

	// Business rule violations
	case errors.Is(err, service.ErrRecipientNotRecommended),
		errors.Is(err, domain.ErrMissingLocation):
		return http.StatusUnprocessableEntity

	// Bad request errors
	case errors.Is(err, domain.ErrValidation),
		errors.Is(err, domain.ErrInvalidID),
		errors.Is(err, domain.ErrEmptyDonationItemName),
		errors.Is(err, domain.ErrInvalidQuantity),
		errors.Is(err, domain.ErrEmptyProfileID),
		errors.Is(err, domain.ErrEmptyProfileName),
		errors.Is(err, store.ErrInvalidEntity):
		return http.StatusBadRequest

	default:
		return http.StatusInternalServerError
	}
}

// GetSafeErrorMessage returns a sanitized, user-friendly error message
// based on the error type. This prevents leaking sensitive internal details.
func GetSafeErrorMessage(err error) string {
	if err == nil {
		return "An unexpected error occurred"
	}

	switch {
	case errors.Is(err, auth.ErrExpiredToken):
		return "Token expired"

	case errors.Is(err, auth.ErrInvalidToken),
		errors.Is(err, auth.ErrTokenNotYetValid),
		errors.Is(err, auth.ErrWrongTokenType):
		return "Invalid token"

	case errors.Is(err, auth.ErrMissingToken),
		errors.Is(err, errUnauthenticated):
		return "Authentication required"

	case errors.Is(err, service.ErrTaskNotOwned):
		return "Task belongs to another volunteer"

	case errors.Is(err, service.ErrTaskNotFound):
		return "Task not found"

	case errors.Is(err, service.ErrDonationNotFound):
		return "Donation not found or has no location"

	case errors.Is(err, service.ErrProfileNotFound):
		return "Profile not found"

	case errors.Is(err, service.ErrTaskNotCompleted):
		return "Task has not completed"

	case errors.Is(err, service.ErrAlreadyConfirmed):
		return "Task already has a confirmed match"

	case errors.Is(err, service.ErrMatchNotConfirmed):
		return "Task has no confirmed match"

	case errors.Is(err, service.ErrAlreadyDelivered):
		return "Match already delivered"

	case errors.Is(err, service.ErrProfileExists):
		return "Profile already exists"

	case errors.Is(err, service.ErrRecipientNotRecommended):
		return "Recipient was not recommended for this task"

	case errors.Is(err, domain.ErrMissingLocation):
		return "Location coordinates missing or invalid"

	case errors.Is(err, domain.ErrInvalidQuantity):
		return "Quantity must be positive"

	case errors.Is(err, domain.ErrEmptyDonationItemName):
		return "Item name is required"

	case errors.Is(err, domain.ErrEmptyProfileName):
		return "Name is required"

	case errors.Is(err, domain.ErrInvalidID),
		errors.Is(err, domain.ErrEmptyProfileID):
		return "Invalid ID"

	case errors.Is(err, domain.ErrValidation),
		errors.Is(err, store.ErrInvalidEntity):
		return "Invalid request data"

	default:
		return "An unexpected error occurred"
	}
}

// HandleAPIError maps err to a status code and safe message, logs the
// redacted details, and writes the error response. defaultMessage replaces
// the generic message for server errors.
func HandleAPIError(w http.ResponseWriter, r *http.Request, err error, defaultMessage string) {
	status := MapErrorToStatusCode(err)
	message := GetSafeErrorMessage(err)
	if status == http.StatusInternalServerError && defaultMessage != "" {
		message = defaultMessage
	}
	shared.RespondWithErrorAndLog(w, r, status, message, err)
}

// HandleValidationError writes a 400 response for a request that failed
// struct validation.
func HandleValidationError(w http.ResponseWriter, r *http.Request, err error) {
	shared.RespondWithErrorAndLog(w, r, http.StatusBadRequest, SanitizeValidationError(err), err)
}

// SanitizeValidationError removes sensitive details from validation errors
// and returns a user-friendly message.
func SanitizeValidationError(err error) string {
	errMsg := err.Error()

	// Check if this is likely a validation error message
	if strings.Contains(errMsg, "Field validation") {
		// Extract the field name and validation tag
		// Example format: "Key: 'LoginRequest.Email' Error:Field validation for 'Email' failed on the 'required' tag"
		parts := strings.Split(errMsg, "Error:")
		if len(parts) >= 2 {
			// Further split to get just the field validation part
			fieldParts := strings.Split(parts[1], "'")
			if len(fieldParts) >= 3 {
				field := fieldParts[1]
				var tag string
				if len(fieldParts) >= 5 {
					tag = fieldParts[3]
				}

				// Create a cleaner error message
				if tag != "" {
					return fmt.Sprintf("Invalid %s: %s", field, getValidationTagMessage(tag))
				}
				return fmt.Sprintf("Invalid %s", field)
			}
		}
	}

	// Fall back to a generic validation error message
	return "Validation error"
}

// getValidationTagMessage maps validation tags to user-friendly error messages
func getValidationTagMessage(tag string) string {
	switch tag {
	case "required":
		return "required field"
	case "email":
		return "invalid email format"
	case "min":
		return "too short"
	case "max":
		return "too long"
	case "oneof":
		return "invalid value"
	case "uuid":
		return "must be a UUID"
	case "gt", "gte":
		return "must be positive"
	case "latitude", "longitude":
		return "out of range"
	default:
		return "validation failed"
	}
}
