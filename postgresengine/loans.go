package postgresengine

import (
	"context"
	"database/sql"
	"time"

	"github.com/doug-martin/goqu/v9"
	"github.com/google/uuid"

	"github.com/campuslib/loanledger-go/core"
	"github.com/campuslib/loanledger-go/postgresengine/internal/adapters"
	"github.com/campuslib/loanledger-go/store"
)

const (
	colLoanID         = "id"
	colLoanAssetID    = "asset_id"
	colLoanStudentID  = "student_id"
	colLoanModality   = "modality"
	colLoanState      = "state"
	colLoanCreatedAt  = "created_at"
	colLoanDueAt      = "due_at"
	colLoanReturnedAt = "returned_at"
	colLoanNote       = "note"

	cteGuard         = "guard"
	aliasActiveCount = "active_count"

	logActionGetLoan      = "get loan"
	logActionFindActive   = "find active loan for asset"
	logActionOpenLoan     = "open loan"
	logActionCloseLoan    = "close loan"
	logActionUpgradeLoan  = "upgrade loan"
	logActionActiveLoans  = "active loans"
	logActionStudentLoans = "loans for student"

	logMsgLoanOpened   = "loan opened"
	logMsgLoanClosed   = "loan closed"
	logMsgLoanUpgraded = "loan upgraded"
)

// GetLoan loads one loan by ID. An unknown ID yields core.ErrNotFound.
func (e Engine) GetLoan(ctx context.Context, loanID uuid.UUID) (core.Loan, error) {
	selectStmt := e.buildLoanSelect().
		Where(goqu.Ex{colLoanID: loanID})

	return e.queryOneLoan(ctx, logActionGetLoan, selectStmt)
}

// FindActiveLoanForAsset loads the single ACTIVE loan of an asset. An asset
// without an active loan yields core.ErrNotFound.
func (e Engine) FindActiveLoanForAsset(ctx context.Context, assetID uuid.UUID) (core.Loan, error) {
	selectStmt := e.buildLoanSelect().
		Where(goqu.Ex{
			colLoanAssetID: assetID,
			colLoanState:   string(core.LoanStateActive),
		})

	return e.queryOneLoan(ctx, logActionFindActive, selectStmt)
}

// OpenLoan appends an ACTIVE loan row, guarded by the absence of any other
// ACTIVE loan for the same asset. The guard is evaluated inside the insert
// statement itself; if another writer opened a loan first, no row is inserted
// and store.ErrConcurrencyConflict is returned so the handler can re-evaluate
// against fresh state.
func (e Engine) OpenLoan(ctx context.Context, loan core.Loan) error {
	sqlQuery, buildErr := e.buildOpenLoanQuery(loan)
	if buildErr != nil {
		return e.buildError(buildErr)
	}

	rowsAffected, duration, execErr := e.executeExec(ctx, logActionOpenLoan, sqlQuery)
	if execErr != nil {
		return e.classifyConflict(execErr)
	}

	if rowsAffected == 0 {
		e.logConditionNotMet(logActionOpenLoan, logAttrAssetID, loan.AssetID.String())

		return store.ErrConcurrencyConflict
	}

	e.logOperation(
		logMsgLoanOpened,
		logAttrLoanID, loan.ID.String(),
		logAttrAssetID, loan.AssetID.String(),
		logAttrDurationMS, e.durationToMilliseconds(duration),
	)

	return nil
}

// CloseLoan flips one ACTIVE loan to RETURNED, stamping returnedAt and, when
// non-empty, a note. The update is conditional on the loan still being
// ACTIVE; a loan that is gone or already returned yields
// store.ErrConcurrencyConflict and the handler re-reads to find out which.
func (e Engine) CloseLoan(ctx context.Context, loanID uuid.UUID, note string, returnedAt time.Time) error {
	sqlQuery, buildErr := e.buildCloseLoanQuery(loanID, note, returnedAt)
	if buildErr != nil {
		return e.buildError(buildErr)
	}

	rowsAffected, duration, execErr := e.executeExec(ctx, logActionCloseLoan, sqlQuery)
	if execErr != nil {
		return e.classifyConflict(execErr)
	}

	if rowsAffected == 0 {
		e.logConditionNotMet(logActionCloseLoan, logAttrLoanID, loanID.String())

		return store.ErrConcurrencyConflict
	}

	e.logOperation(
		logMsgLoanClosed,
		logAttrLoanID, loanID.String(),
		logAttrDurationMS, e.durationToMilliseconds(duration),
	)

	return nil
}

// UpgradeLoan closes an in-library loan and opens its replacement home loan
// in one transaction, so no observer ever sees the asset with zero or two
// active loans. Both statements are conditional; if either affects no rows
// the transaction rolls back with store.ErrConcurrencyConflict.
func (e Engine) UpgradeLoan(
	ctx context.Context,
	closeID uuid.UUID,
	closeNote string,
	returnedAt time.Time,
	replacement core.Loan,
) error {

	closeQuery, buildCloseErr := e.buildCloseLoanQuery(closeID, closeNote, returnedAt)
	if buildCloseErr != nil {
		return e.buildError(buildCloseErr)
	}

	openQuery, buildOpenErr := e.buildOpenLoanQuery(replacement)
	if buildOpenErr != nil {
		return e.buildError(buildOpenErr)
	}

	txErr := e.inTx(ctx, func(tx adapters.DBTx) error {
		closedRows, closeErr := e.executeExecInTx(ctx, tx, logActionUpgradeLoan, closeQuery)
		if closeErr != nil {
			return e.classifyConflict(closeErr)
		}

		if closedRows == 0 {
			e.logConditionNotMet(logActionUpgradeLoan, logAttrLoanID, closeID.String())

			return store.ErrConcurrencyConflict
		}

		openedRows, openErr := e.executeExecInTx(ctx, tx, logActionUpgradeLoan, openQuery)
		if openErr != nil {
			return e.classifyConflict(openErr)
		}

		if openedRows == 0 {
			e.logConditionNotMet(logActionUpgradeLoan, logAttrAssetID, replacement.AssetID.String())

			return store.ErrConcurrencyConflict
		}

		return nil
	})
	if txErr != nil {
		return txErr
	}

	e.logOperation(
		logMsgLoanUpgraded,
		logAttrLoanID, replacement.ID.String(),
		logAttrAssetID, replacement.AssetID.String(),
	)

	return nil
}

// ActiveLoans returns all loans currently in state ACTIVE, soonest due first.
func (e Engine) ActiveLoans(ctx context.Context) ([]core.Loan, error) {
	selectStmt := e.buildLoanSelect().
		Where(goqu.Ex{colLoanState: string(core.LoanStateActive)}).
		Order(goqu.I(colLoanDueAt).Asc())

	return e.queryLoans(ctx, logActionActiveLoans, selectStmt)
}

// LoansForStudent returns all loans of one student, newest first.
func (e Engine) LoansForStudent(ctx context.Context, studentID uuid.UUID) ([]core.Loan, error) {
	selectStmt := e.buildLoanSelect().
		Where(goqu.Ex{colLoanStudentID: studentID}).
		Order(goqu.I(colLoanCreatedAt).Desc())

	return e.queryLoans(ctx, logActionStudentLoans, selectStmt)
}

func (e Engine) buildOpenLoanQuery(loan core.Loan) (sqlQueryString, error) {
	builder := e.builder()

	// Count of ACTIVE loans for the asset, computed in the same statement the
	// insert is guarded by.
	cteStmt := builder.
		From(tableLoans).
		Select(goqu.COUNT(goqu.Star()).As(aliasActiveCount)).
		Where(goqu.Ex{
			colLoanAssetID: loan.AssetID,
			colLoanState:   string(core.LoanStateActive),
		})

	selectStmt := builder.
		From(cteGuard).
		Select(
			goqu.V(loan.ID),
			goqu.V(loan.AssetID),
			goqu.V(loan.StudentID),
			goqu.V(string(loan.Modality)),
			goqu.V(string(loan.State)),
			goqu.V(loan.CreatedAt),
			goqu.V(loan.DueAt),
			goqu.V(loan.Note),
		).
		Where(goqu.C(aliasActiveCount).Eq(goqu.V(0)))

	insertStmt := builder.
		Insert(tableLoans).
		Cols(colLoanID, colLoanAssetID, colLoanStudentID, colLoanModality, colLoanState, colLoanCreatedAt, colLoanDueAt, colLoanNote).
		FromQuery(selectStmt).
		With(cteGuard, cteStmt)

	sqlQuery, _, toSQLErr := insertStmt.ToSQL()
	if toSQLErr != nil {
		return "", toSQLErr
	}

	return sqlQuery, nil
}

func (e Engine) buildCloseLoanQuery(loanID uuid.UUID, note string, returnedAt time.Time) (sqlQueryString, error) {
	record := goqu.Record{
		colLoanState:      string(core.LoanStateReturned),
		colLoanReturnedAt: returnedAt,
	}

	if note != "" {
		record[colLoanNote] = note
	}

	updateStmt := e.builder().
		Update(tableLoans).
		Set(record).
		Where(goqu.Ex{
			colLoanID:    loanID,
			colLoanState: string(core.LoanStateActive),
		})

	sqlQuery, _, toSQLErr := updateStmt.ToSQL()
	if toSQLErr != nil {
		return "", toSQLErr
	}

	return sqlQuery, nil
}

func (e Engine) buildLoanSelect() *goqu.SelectDataset {
	return e.builder().
		From(tableLoans).
		Select(
			colLoanID,
			colLoanAssetID,
			colLoanStudentID,
			colLoanModality,
			colLoanState,
			colLoanCreatedAt,
			colLoanDueAt,
			colLoanReturnedAt,
			colLoanNote,
		)
}

func (e Engine) queryOneLoan(ctx context.Context, action string, selectStmt *goqu.SelectDataset) (core.Loan, error) {
	var empty core.Loan

	sqlQuery, _, toSQLErr := selectStmt.ToSQL()
	if toSQLErr != nil {
		return empty, e.buildError(toSQLErr)
	}

	rows, _, queryErr := e.executeQuery(ctx, action, sqlQuery)
	if queryErr != nil {
		return empty, queryErr
	}
	defer e.closeRows(rows)

	if !rows.Next() {
		return empty, core.ErrNotFound
	}

	return e.scanLoanRow(rows)
}

func (e Engine) queryLoans(ctx context.Context, action string, selectStmt *goqu.SelectDataset) ([]core.Loan, error) {
	sqlQuery, _, toSQLErr := selectStmt.ToSQL()
	if toSQLErr != nil {
		return nil, e.buildError(toSQLErr)
	}

	rows, duration, queryErr := e.executeQuery(ctx, action, sqlQuery)
	if queryErr != nil {
		return nil, queryErr
	}
	defer e.closeRows(rows)

	loans := make([]core.Loan, 0)

	for rows.Next() {
		loan, scanErr := e.scanLoanRow(rows)
		if scanErr != nil {
			return nil, scanErr
		}

		loans = append(loans, loan)
	}

	e.logOperation(
		action,
		logAttrRowCount, len(loans),
		logAttrDurationMS, e.durationToMilliseconds(duration),
	)

	return loans, nil
}

func (e Engine) scanLoanRow(rows adapters.DBRows) (core.Loan, error) {
	var (
		loan       core.Loan
		modality   string
		state      string
		returnedAt sql.NullTime
	)

	scanErr := rows.Scan(
		&loan.ID,
		&loan.AssetID,
		&loan.StudentID,
		&modality,
		&state,
		&loan.CreatedAt,
		&loan.DueAt,
		&returnedAt,
		&loan.Note,
	)
	if scanErr != nil {
		return core.Loan{}, e.scanError(scanErr)
	}

	loan.Modality = core.Modality(modality)
	loan.State = core.LoanState(state)

	if returnedAt.Valid {
		loan.ReturnedAt = &returnedAt.Time
	}

	return loan, nil
}
