// Package adapters contains thin database adapters that decouple the engine
// from the concrete driver: pgxpool.Pool, sqlx.DB, and database/sql are
// supported. Adapters also normalize unique-constraint violations so the
// engine can classify them without importing driver packages.
package adapters
