package store

import (
	"errors"
)

// ErrConcurrencyConflict is returned when a conditional write affected no
// rows because another writer got there first. Handlers retry it with
// backoff and re-evaluate the business rules against the fresh state -
// it never reaches the caller of a feature handler.
var ErrConcurrencyConflict = errors.New("concurrency conflict, no rows were affected")

// ErrDuplicateKey is returned when a unique constraint rejected a write, for
// example two racing auto-registrations of the same national ID.
var ErrDuplicateKey = errors.New("duplicate key, a conflicting row already exists")

// ErrNilDatabaseConnection is returned when an engine constructor receives a
// nil connection (pool).
var ErrNilDatabaseConnection = errors.New("database connection must not be nil")
