// Package api holds the HTTP handlers of the match API. Handlers decode and
// validate requests, call the services in internal/service, and map service
// errors to status codes and sanitized messages.
package api
