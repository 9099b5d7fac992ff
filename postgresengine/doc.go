// Package postgresengine implements the storage contract of the loan and
// audit engine on PostgreSQL.
//
// All SQL is built with goqu and executed through a thin database adapter, so
// the engine works with a pgxpool.Pool, a sqlx.DB, or a plain sql.DB (lib/pq).
//
// Per-asset serialization is enforced with atomic conditional writes instead
// of locks: asset mutations compare-and-swap the asset's current_version while
// appending the version record in the same transaction, and loan opens are
// conditional inserts guarded by the absence of an ACTIVE loan row (with a
// partial unique index as the database-level backstop). A conditional write
// that affects no rows surfaces store.ErrConcurrencyConflict.
package postgresengine
