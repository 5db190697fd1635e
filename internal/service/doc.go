// Package service contains the application use cases behind the HTTP API.
// It orchestrates domain objects and the store interfaces defined in
// internal/store, and hands match requests to the task queue.
//
// Key components:
//
// 1. MatchService:
//   - Queues match requests for a donation (the task producer)
//   - Reports task results to polling clients, joining recommendations with
//     current recipient profiles
//   - Confirms a volunteer's choice and records delivery
//
// 2. DonationService:
//   - Creates donations at the donor's location with upcoming pickup times
//   - Lists donations collectable in the current pickup slot
//
// 3. ProfileService:
//   - Creates donor, recipient, and volunteer profiles keyed by identity
//
// Expected conditions are reported with the sentinel errors in errors.go so
// the API layer can map them to status codes; unexpected failures are
// wrapped in a ServiceError naming the operation.
package service
