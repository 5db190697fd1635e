package ranking

import "errors"

// Common errors returned by the ranking package
var (
	// ErrOracleUnavailable wraps transport and provider failures. The engine
	// records these as a failed task; they are never retried in-process.
	ErrOracleUnavailable = errors.New("ranking oracle unavailable")

	// ErrInvalidConfig is returned when an oracle client is misconfigured
	ErrInvalidConfig = errors.New("invalid ranking oracle configuration")

	// ErrEmptyDonationName is returned when a request has no item name to rank for
	ErrEmptyDonationName = errors.New("donation name cannot be empty")
)
