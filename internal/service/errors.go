package service

import (
	"errors"
	"fmt"
)

// Service errors are sentinel values checked with errors.Is. The API layer
// maps each of them to an HTTP status code.
var (
	// ErrTaskNotFound indicates that no match task exists for the given ID.
	// API layer should map this to HTTP 404 Not Found.
	ErrTaskNotFound = errors.New("match task not found")

	// ErrTaskNotOwned indicates the caller did not request the task.
	// It is checked before any task state so a stranger learns nothing about
	// the task. API layer should map this to HTTP 403 Forbidden.
	ErrTaskNotOwned = errors.New("match task is owned by another volunteer")

	// ErrTaskNotCompleted indicates the task has no final recommendations yet
	// or has failed. API layer should map this to HTTP 409 Conflict.
	ErrTaskNotCompleted = errors.New("match task is not completed")

	// ErrRecipientNotRecommended indicates the chosen recipient is not on the
	// task's recommendation list. API layer should map this to HTTP 422.
	ErrRecipientNotRecommended = errors.New("recipient was not recommended for this task")

	// ErrAlreadyConfirmed indicates a match was already confirmed for the task.
	ErrAlreadyConfirmed = errors.New("match already confirmed for this task")

	// ErrMatchNotConfirmed indicates delivery was reported for a task without
	// a confirmed match.
	ErrMatchNotConfirmed = errors.New("no confirmed match for this task")

	// ErrAlreadyDelivered indicates the confirmed match was already delivered.
	ErrAlreadyDelivered = errors.New("match already delivered")

	// ErrDonationNotFound indicates the donation does not exist or cannot be
	// located, so it cannot be matched.
	ErrDonationNotFound = errors.New("donation not found")

	// ErrProfileNotFound indicates the caller has no profile of the required kind.
	ErrProfileNotFound = errors.New("profile not found")

	// ErrProfileExists indicates the caller already created this kind of profile.
	ErrProfileExists = errors.New("profile already exists")
)

// ServiceError wraps unexpected failures with the operation that hit them.
type ServiceError struct {
	Service   string
	Operation string
	Message   string
	Err       error
}

// Error implements the error interface for ServiceError.
func (e *ServiceError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s service %s failed: %s: %v", e.Service, e.Operation, e.Message, e.Err)
	}
	return fmt.Sprintf("%s service %s failed: %s", e.Service, e.Operation, e.Message)
}

// Unwrap returns the wrapped error to support errors.Is/errors.As.
func (e *ServiceError) Unwrap() error {
	return e.Err
}

// NewMatchServiceError creates a ServiceError for the match service.
func NewMatchServiceError(operation, message string, err error) *ServiceError {
	return &ServiceError{Service: "match", Operation: operation, Message: message, Err: err}
}

// NewDonationServiceError creates a ServiceError for the donation service.
func NewDonationServiceError(operation, message string, err error) *ServiceError {
	return &ServiceError{Service: "donation", Operation: operation, Message: message, Err: err}
}

// NewProfileServiceError creates a ServiceError for the profile service.
func NewProfileServiceError(operation, message string, err error) *ServiceError {
	return &ServiceError{Service: "profile", Operation: operation, Message: message, Err: err}
}
