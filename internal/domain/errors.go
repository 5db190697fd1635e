package domain

import "errors"

// Common domain errors used across the application.
var (
	// ErrValidation is returned when a domain entity fails validation.
	// This is often wrapped with a more specific error message.
	ErrValidation = errors.New("validation failed")

	// ErrInvalidID is returned when an ID is malformed or invalid.
	ErrInvalidID = errors.New("invalid ID")

	// ErrMissingLocation is returned when an entity that must be located has
	// no usable coordinates.
	ErrMissingLocation = errors.New("location coordinates missing or invalid")

	// ErrInvalidStatus is returned when a status value is not recognised for
	// the entity it is assigned to.
	ErrInvalidStatus = errors.New("invalid status")

	// ErrEmptyContent is returned when required content is empty.
	ErrEmptyContent = errors.New("content cannot be empty")
)
