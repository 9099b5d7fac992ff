package postgresengine

import (
	"context"
	"database/sql"
	"errors"
	"math"
	"time"

	"github.com/doug-martin/goqu/v9"
	_ "github.com/doug-martin/goqu/v9/dialect/postgres" // driver import
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/jmoiron/sqlx"

	"github.com/campuslib/loanledger-go/core"
	"github.com/campuslib/loanledger-go/postgresengine/internal/adapters"
	"github.com/campuslib/loanledger-go/store"
)

const (
	tableAssets        = "assets"
	tableStudents      = "students"
	tableLoans         = "loans"
	tableAssetVersions = "asset_versions"

	logMsgBuildQueryFailed   = "failed to build query"
	logMsgDBQueryFailed      = "database query execution failed"
	logMsgDBExecFailed       = "database execution failed"
	logMsgCloseRowsFailed    = "failed to close database rows"
	logMsgScanRowFailed      = "failed to scan database row"
	logMsgRowsAffectedFailed = "failed to get rows affected count"
	logMsgBeginTxFailed      = "failed to begin transaction"
	logMsgCommitTxFailed     = "failed to commit transaction"
	logMsgRollbackTxFailed   = "failed to roll back transaction"
	logMsgConditionNotMet    = "conditional write affected no rows"
	logMsgSQLExecuted        = "executed sql for: "
	logMsgOperation          = "loanledger operation: "

	logAttrError        = "error"
	logAttrQuery        = "query"
	logAttrDurationMS   = "duration_ms"
	logAttrRowsAffected = "rows_affected"
	logAttrAssetID      = "asset_id"
	logAttrLoanID       = "loan_id"
	logAttrStudentID    = "student_id"
	logAttrSequence     = "sequence"
	logAttrRowCount     = "row_count"

	dialectPostgres = "postgres"
)

type (
	sqlQueryString    = string
	rowsAffectedInt64 = int64
	queryDuration     = time.Duration
)

// Logger interface for SQL query logging, operational metrics, warnings, and error reporting.
type Logger interface {
	Debug(msg string, args ...any)
	Info(msg string, args ...any)
	Warn(msg string, args ...any)
	Error(msg string, args ...any)
}

// Engine persists assets, students, loans, and the per-asset version trail in
// PostgreSQL. It leverages a database adapter and supports customizable logging.
type Engine struct {
	db     adapters.DBAdapter
	logger Logger
}

// Option defines a functional option for configuring Engine.
type Option func(*Engine) error

// WithLogger sets the logger for the Engine.
// The logger will receive messages at different levels based on the logger's configured level:
//
// Debug level: SQL queries with execution timing (development use)
// Info level: Row counts, durations, concurrency conflicts (production-safe)
// Warn level: Non-critical issues like cleanup failures
// Error level: Critical failures that cause operation failures.
func WithLogger(logger Logger) Option {
	return func(e *Engine) error {
		e.logger = logger
		return nil
	}
}

// NewEngineFromPGXPool creates a new Engine using a pgx Pool with optional configuration.
func NewEngineFromPGXPool(db *pgxpool.Pool, options ...Option) (Engine, error) {
	if db == nil {
		return Engine{}, store.ErrNilDatabaseConnection
	}

	e := Engine{
		db: adapters.NewPGXAdapter(db),
	}

	for _, option := range options {
		if err := option(&e); err != nil {
			return Engine{}, err
		}
	}

	return e, nil
}

// NewEngineFromSQLDB creates a new Engine using a sql.DB with optional configuration.
func NewEngineFromSQLDB(db *sql.DB, options ...Option) (Engine, error) {
	if db == nil {
		return Engine{}, store.ErrNilDatabaseConnection
	}

	e := Engine{
		db: adapters.NewSQLAdapter(db),
	}

	for _, option := range options {
		if err := option(&e); err != nil {
			return Engine{}, err
		}
	}

	return e, nil
}

// NewEngineFromSQLX creates a new Engine using a sqlx.DB with optional configuration.
func NewEngineFromSQLX(db *sqlx.DB, options ...Option) (Engine, error) {
	if db == nil {
		return Engine{}, store.ErrNilDatabaseConnection
	}

	e := Engine{
		db: adapters.NewSQLXAdapter(db),
	}

	for _, option := range options {
		if err := option(&e); err != nil {
			return Engine{}, err
		}
	}

	return e, nil
}

func (e Engine) builder() goqu.DialectWrapper {
	return goqu.Dialect(dialectPostgres)
}

// executeQuery executes the SQL query and returns rows with timing information.
func (e Engine) executeQuery(ctx context.Context, action string, sqlQuery string) (
	adapters.DBRows,
	queryDuration,
	error,
) {

	start := time.Now()
	rows, queryErr := e.db.Query(ctx, sqlQuery)
	duration := time.Since(start)
	e.logQueryWithDuration(sqlQuery, action, duration)

	if queryErr != nil {
		if e.logger != nil {
			e.logger.Error(logMsgDBQueryFailed, logAttrError, queryErr.Error(), logAttrQuery, sqlQuery)
		}

		return nil, duration, e.storageError(queryErr)
	}

	return rows, duration, nil
}

// executeExec executes a SQL statement outside a transaction and returns rows
// affected and duration.
func (e Engine) executeExec(ctx context.Context, action string, sqlQuery string) (
	rowsAffectedInt64,
	queryDuration,
	error,
) {

	start := time.Now()
	result, execErr := e.db.Exec(ctx, sqlQuery)
	duration := time.Since(start)
	e.logQueryWithDuration(sqlQuery, action, duration)

	if execErr != nil {
		if e.logger != nil {
			e.logger.Error(logMsgDBExecFailed, logAttrError, execErr.Error(), logAttrQuery, sqlQuery)
		}

		return 0, duration, execErr
	}

	rowsAffected, rowsAffectedErr := result.RowsAffected()
	if rowsAffectedErr != nil {
		if e.logger != nil {
			e.logger.Error(logMsgRowsAffectedFailed, logAttrError, rowsAffectedErr.Error())
		}

		return 0, duration, e.storageError(rowsAffectedErr)
	}

	return rowsAffected, duration, nil
}

// executeExecInTx executes a SQL statement on an open transaction and returns
// rows affected.
func (e Engine) executeExecInTx(ctx context.Context, tx adapters.DBTx, action string, sqlQuery string) (
	rowsAffectedInt64,
	error,
) {

	start := time.Now()
	result, execErr := tx.Exec(ctx, sqlQuery)
	duration := time.Since(start)
	e.logQueryWithDuration(sqlQuery, action, duration)

	if execErr != nil {
		if e.logger != nil {
			e.logger.Error(logMsgDBExecFailed, logAttrError, execErr.Error(), logAttrQuery, sqlQuery)
		}

		return 0, execErr
	}

	rowsAffected, rowsAffectedErr := result.RowsAffected()
	if rowsAffectedErr != nil {
		if e.logger != nil {
			e.logger.Error(logMsgRowsAffectedFailed, logAttrError, rowsAffectedErr.Error())
		}

		return 0, e.storageError(rowsAffectedErr)
	}

	return rowsAffected, nil
}

// inTx runs fn inside a transaction, committing on nil and rolling back on
// error. The error returned by fn passes through unchanged so callers keep
// their classification.
func (e Engine) inTx(ctx context.Context, fn func(tx adapters.DBTx) error) error {
	tx, beginErr := e.db.Begin(ctx)
	if beginErr != nil {
		if e.logger != nil {
			e.logger.Error(logMsgBeginTxFailed, logAttrError, beginErr.Error())
		}

		return e.storageError(beginErr)
	}

	if fnErr := fn(tx); fnErr != nil {
		if rollbackErr := tx.Rollback(ctx); rollbackErr != nil {
			if e.logger != nil {
				e.logger.Warn(logMsgRollbackTxFailed, logAttrError, rollbackErr.Error())
			}
		}

		return fnErr
	}

	if commitErr := tx.Commit(ctx); commitErr != nil {
		if e.logger != nil {
			e.logger.Error(logMsgCommitTxFailed, logAttrError, commitErr.Error())
		}

		return e.classifyConflict(commitErr)
	}

	return nil
}

// closeRows safely closes database rows and logs any errors.
func (e Engine) closeRows(rows adapters.DBRows) {
	if closeErr := rows.Close(); closeErr != nil {
		if e.logger != nil {
			e.logger.Warn(logMsgCloseRowsFailed, logAttrError, closeErr.Error())
		}
	}
}

// storageError wraps an infrastructure failure so callers can detect it with
// errors.Is(err, core.ErrStorageUnavailable). Context cancellation passes
// through unwrapped.
func (e Engine) storageError(err error) error {
	if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
		return err
	}

	return errors.Join(core.ErrStorageUnavailable, err)
}

// classifyConflict maps a write error in a concurrency-guarded statement:
// unique violations mean another writer won the race.
func (e Engine) classifyConflict(err error) error {
	if errors.Is(err, adapters.ErrUniqueViolation) {
		return store.ErrConcurrencyConflict
	}

	return e.storageError(err)
}

// classifyDuplicate maps a write error in a business-key-guarded statement:
// unique violations mean the key is already taken.
func (e Engine) classifyDuplicate(err error) error {
	if errors.Is(err, adapters.ErrUniqueViolation) {
		return store.ErrDuplicateKey
	}

	return e.storageError(err)
}

func (e Engine) scanError(err error) error {
	if e.logger != nil {
		e.logger.Error(logMsgScanRowFailed, logAttrError, err.Error())
	}

	return e.storageError(err)
}

func (e Engine) buildError(err error) error {
	if e.logger != nil {
		e.logger.Error(logMsgBuildQueryFailed, logAttrError, err.Error())
	}

	return e.storageError(err)
}

// logQueryWithDuration logs SQL queries with execution time at debug level if the logger is configured.
func (e Engine) logQueryWithDuration(
	sqlQuery string,
	action string,
	duration time.Duration,
) {

	if e.logger != nil {
		e.logger.Debug(logMsgSQLExecuted+action, logAttrDurationMS, e.durationToMilliseconds(duration), logAttrQuery, sqlQuery)
	}
}

// logOperation logs operational information at info level if the logger is configured.
func (e Engine) logOperation(action string, args ...any) {
	if e.logger != nil {
		e.logger.Info(logMsgOperation+action, args...)
	}
}

// logConditionNotMet logs a conditional write that affected no rows at info level.
func (e Engine) logConditionNotMet(action string, args ...any) {
	if e.logger != nil {
		e.logger.Info(logMsgConditionNotMet+": "+action, args...)
	}
}

// durationToMilliseconds converts a time.Duration to float64 milliseconds with 3 decimal places.
func (e Engine) durationToMilliseconds(d time.Duration) float64 {
	return math.Round(float64(d.Nanoseconds())/1e6*1000) / 1000
}
