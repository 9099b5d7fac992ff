// Package store holds the storage contract shared by every storage
// implementation of the engine: the conditional-write semantics and the
// sentinel errors storage adapters must surface.
//
// The engine requires durable storage with per-asset atomic conditional
// writes. Any implementation - the Postgres engine in postgresengine, the
// in-memory double in testutil/memstore - must guarantee that a conditional
// write either applies completely or reports ErrConcurrencyConflict, and that
// no partial state is ever observable.
package store
