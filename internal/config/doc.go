// Package config handles configuration loading, parsing, and validation
// from various sources (a .env file, an optional config.yaml, environment
// variables prefixed with FOODBRIDGE_). It provides type-safe access to the
// settings of the HTTP server, the database, the match queue, the consumer
// worker pool, and the ranking oracle.
package config
