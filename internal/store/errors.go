package store

import (
	"errors"
	"fmt"
)

// Common store errors used across all store implementations.
var (
	// ErrNotFound is returned when a requested entity does not exist in the store.
	// Entity-specific variants wrap it, so errors.Is(err, ErrNotFound) matches all of them.
	ErrNotFound = errors.New("entity not found")

	// ErrDuplicate is returned when an operation would create a duplicate
	// of a unique entity.
	ErrDuplicate = errors.New("entity already exists")

	// ErrInvalidEntity is returned when an entity fails validation before
	// being stored. Check the wrapped error for specific validation details.
	ErrInvalidEntity = errors.New("invalid entity")

	// ErrUpdateFailed is returned when an update operation fails, for example
	// because the entity does not exist or the update violates constraints.
	ErrUpdateFailed = errors.New("update failed")

	// ErrTransactionFailed is returned when a database transaction fails
	// to commit or when an operation within a transaction fails.
	ErrTransactionFailed = errors.New("transaction failed")

	// Entity-specific "not found" errors

	ErrDonationNotFound       = fmt.Errorf("%w: donation", ErrNotFound)
	ErrDonorNotFound          = fmt.Errorf("%w: donor", ErrNotFound)
	ErrRecipientNotFound      = fmt.Errorf("%w: recipient", ErrNotFound)
	ErrVolunteerNotFound      = fmt.Errorf("%w: volunteer", ErrNotFound)
	ErrMatchTaskNotFound      = fmt.Errorf("%w: match task", ErrNotFound)
	ErrConfirmedMatchNotFound = fmt.Errorf("%w: confirmed match", ErrNotFound)

	// Entity-specific "duplicate" errors

	// ErrProfileExists indicates that a profile already exists for the identity.
	ErrProfileExists = fmt.Errorf("%w: profile", ErrDuplicate)

	// ErrTaskAlreadyConfirmed indicates that a match task already has a confirmed match.
	ErrTaskAlreadyConfirmed = fmt.Errorf("%w: confirmed match for task", ErrDuplicate)
)

// IsNotFoundError checks if the error is any kind of "not found" error.
func IsNotFoundError(err error) bool {
	return errors.Is(err, ErrNotFound)
}

// IsDuplicateError checks if the error is any kind of "duplicate" error.
func IsDuplicateError(err error) bool {
	return errors.Is(err, ErrDuplicate)
}

// StoreError is a custom error type for store-specific errors with additional context.
type StoreError struct {
	Entity    string // The entity type (e.g., "donation", "match task")
	Operation string // The operation that failed (e.g., "create", "save result")
	Message   string // Error message
	Err       error  // Original error
}

// Error implements the error interface for StoreError.
func (e *StoreError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf(
			"%s operation on %s failed: %s: %v",
			e.Operation,
			e.Entity,
			e.Message,
			e.Err,
		)
	}
	return fmt.Sprintf("%s operation on %s failed: %s", e.Operation, e.Entity, e.Message)
}

// Unwrap returns the wrapped error to support errors.Is/errors.As.
func (e *StoreError) Unwrap() error {
	return e.Err
}

// NewStoreError creates a new StoreError with the given entity, operation, message, and wrapped error.
func NewStoreError(entity, operation, message string, err error) *StoreError {
	return &StoreError{
		Entity:    entity,
		Operation: operation,
		Message:   message,
		Err:       err,
	}
}
