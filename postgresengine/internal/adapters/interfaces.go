package adapters

import (
	"context"
	"errors"
)

// ErrUniqueViolation is returned by adapters when the database rejected a
// write because of a unique constraint. The engine decides whether that means
// a concurrency conflict (versions, active loans) or a duplicate business key
// (student national ID, asset code).
var ErrUniqueViolation = errors.New("unique constraint violation")

// DBAdapter defines the interface for database operations needed by the engine.
// Queries arrive fully interpolated - adapters never receive separate args.
type DBAdapter interface {
	Query(ctx context.Context, query string) (DBRows, error)
	Exec(ctx context.Context, query string) (DBResult, error)
	Begin(ctx context.Context) (DBTx, error)
}

// DBTx defines the interface for operations inside a database transaction.
type DBTx interface {
	Query(ctx context.Context, query string) (DBRows, error)
	Exec(ctx context.Context, query string) (DBResult, error)
	Commit(ctx context.Context) error
	Rollback(ctx context.Context) error
}

// DBRows defines the interface for query result rows.
type DBRows interface {
	Next() bool
	Scan(dest ...any) error
	Close() error
}

// DBResult defines the interface for execution results.
type DBResult interface {
	RowsAffected() (int64, error)
}
