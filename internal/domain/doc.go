// Package domain contains the core business entities of the donation matching
// service: donors and their donations, recipients, volunteers, the match tasks
// that carry a ranking request through its lifecycle, and the matches that
// volunteers confirm from a task's recommendations.
//
// Entities validate themselves and are independent of storage, transport, and
// the ranking oracle.
package domain
