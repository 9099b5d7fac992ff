package postgresengine

import (
	"context"
	"database/sql"

	"github.com/doug-martin/goqu/v9"
	"github.com/google/uuid"

	"github.com/campuslib/loanledger-go/core"
	"github.com/campuslib/loanledger-go/postgresengine/internal/adapters"
	"github.com/campuslib/loanledger-go/store"
)

const (
	colAssetID             = "id"
	colAssetKind           = "kind"
	colAssetCode           = "code"
	colAssetSnapshot       = "snapshot"
	colAssetCurrentVersion = "current_version"
	colAssetDeletedAt      = "deleted_at"

	logActionGetAsset    = "get asset"
	logActionCreateAsset = "create asset"
	logActionUpdateAsset = "update asset"

	logMsgAssetCreated = "asset created"
	logMsgAssetUpdated = "asset updated"
)

// GetAsset loads one asset row by ID, soft-deleted rows included. An unknown
// ID yields core.ErrNotFound.
func (e Engine) GetAsset(ctx context.Context, assetID uuid.UUID) (store.AssetRow, error) {
	var empty store.AssetRow

	selectStmt := e.builder().
		From(tableAssets).
		Select(colAssetID, colAssetKind, colAssetCode, colAssetSnapshot, colAssetCurrentVersion, colAssetDeletedAt).
		Where(goqu.Ex{colAssetID: assetID})

	sqlQuery, _, toSQLErr := selectStmt.ToSQL()
	if toSQLErr != nil {
		return empty, e.buildError(toSQLErr)
	}

	rows, _, queryErr := e.executeQuery(ctx, logActionGetAsset, sqlQuery)
	if queryErr != nil {
		return empty, queryErr
	}
	defer e.closeRows(rows)

	if !rows.Next() {
		return empty, core.ErrNotFound
	}

	var (
		row            store.AssetRow
		code           sql.NullString
		currentVersion int64
		deletedAt      sql.NullTime
	)

	if scanErr := rows.Scan(&row.ID, &row.Kind, &code, &row.Snapshot, &currentVersion, &deletedAt); scanErr != nil {
		return empty, e.scanError(scanErr)
	}

	if code.Valid {
		row.Code = &code.String
	}

	if deletedAt.Valid {
		row.DeletedAt = &deletedAt.Time
	}

	row.CurrentVersion = uint(currentVersion)

	return row, nil
}

// InsertAssetWithVersion registers a new asset and appends its CREATE version
// record in one transaction. A duplicate asset ID or asset code yields
// store.ErrDuplicateKey.
func (e Engine) InsertAssetWithVersion(ctx context.Context, row store.AssetRow, version store.VersionRow) error {
	versionQuery, buildVersionErr := e.buildInsertVersionQuery(version)
	if buildVersionErr != nil {
		return e.buildError(buildVersionErr)
	}

	insertStmt := e.builder().
		Insert(tableAssets).
		Rows(goqu.Record{
			colAssetID:             row.ID,
			colAssetKind:           row.Kind,
			colAssetCode:           row.Code,
			colAssetSnapshot:       string(row.Snapshot),
			colAssetCurrentVersion: int64(row.CurrentVersion),
			colAssetDeletedAt:      row.DeletedAt,
		})

	assetQuery, _, toSQLErr := insertStmt.ToSQL()
	if toSQLErr != nil {
		return e.buildError(toSQLErr)
	}

	txErr := e.inTx(ctx, func(tx adapters.DBTx) error {
		if _, execErr := e.executeExecInTx(ctx, tx, logActionCreateAsset, versionQuery); execErr != nil {
			return e.classifyDuplicate(execErr)
		}

		if _, execErr := e.executeExecInTx(ctx, tx, logActionCreateAsset, assetQuery); execErr != nil {
			return e.classifyDuplicate(execErr)
		}

		return nil
	})
	if txErr != nil {
		return txErr
	}

	e.logOperation(logMsgAssetCreated, logAttrAssetID, row.ID.String())

	return nil
}

// UpdateAssetWithVersion appends the next version record and swaps the live
// asset row in one transaction. The asset update is guarded by
// expectedVersion; if another writer advanced the asset in the meantime the
// transaction rolls back with store.ErrConcurrencyConflict, the version
// record included.
func (e Engine) UpdateAssetWithVersion(
	ctx context.Context,
	row store.AssetRow,
	version store.VersionRow,
	expectedVersion uint,
) error {

	versionQuery, buildVersionErr := e.buildInsertVersionQuery(version)
	if buildVersionErr != nil {
		return e.buildError(buildVersionErr)
	}

	updateStmt := e.builder().
		Update(tableAssets).
		Set(goqu.Record{
			colAssetCode:           row.Code,
			colAssetSnapshot:       string(row.Snapshot),
			colAssetCurrentVersion: int64(row.CurrentVersion),
			colAssetDeletedAt:      row.DeletedAt,
		}).
		Where(goqu.Ex{
			colAssetID:             row.ID,
			colAssetCurrentVersion: int64(expectedVersion),
		})

	updateQuery, _, toSQLErr := updateStmt.ToSQL()
	if toSQLErr != nil {
		return e.buildError(toSQLErr)
	}

	txErr := e.inTx(ctx, func(tx adapters.DBTx) error {
		if _, execErr := e.executeExecInTx(ctx, tx, logActionUpdateAsset, versionQuery); execErr != nil {
			return e.classifyConflict(execErr)
		}

		rowsAffected, execErr := e.executeExecInTx(ctx, tx, logActionUpdateAsset, updateQuery)
		if execErr != nil {
			return e.classifyConflict(execErr)
		}

		if rowsAffected == 0 {
			e.logConditionNotMet(
				logActionUpdateAsset,
				logAttrAssetID, row.ID.String(),
				logAttrSequence, version.Sequence,
			)

			return store.ErrConcurrencyConflict
		}

		return nil
	})
	if txErr != nil {
		return txErr
	}

	e.logOperation(logMsgAssetUpdated, logAttrAssetID, row.ID.String(), logAttrSequence, version.Sequence)

	return nil
}
