// Package store defines interfaces for data persistence operations.
// These interfaces abstract the underlying data storage mechanism from
// the application's core logic, allowing the matching engine and the API
// services to remain independent of the database that backs them.
package store
