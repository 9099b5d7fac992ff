package postgresengine

import (
	"context"

	"github.com/doug-martin/goqu/v9"
	"github.com/google/uuid"

	"github.com/campuslib/loanledger-go/core"
	"github.com/campuslib/loanledger-go/postgresengine/internal/adapters"
	"github.com/campuslib/loanledger-go/store"
)

const (
	colVersionAssetID    = "asset_id"
	colVersionSequence   = "sequence"
	colVersionKind       = "kind"
	colVersionSnapshot   = "snapshot"
	colVersionActor      = "actor"
	colVersionOccurredAt = "occurred_at"

	logActionAssetHistory = "asset history"
	logActionGetVersion   = "get version"

	logMsgHistoryLoaded = "asset history loaded"
)

func (e Engine) buildInsertVersionQuery(version store.VersionRow) (sqlQueryString, error) {
	insertStmt := e.builder().
		Insert(tableAssetVersions).
		Rows(goqu.Record{
			colVersionAssetID:    version.AssetID,
			colVersionSequence:   int64(version.Sequence),
			colVersionKind:       version.Kind,
			colVersionSnapshot:   string(version.Snapshot),
			colVersionActor:      version.Actor,
			colVersionOccurredAt: version.OccurredAt,
		})

	sqlQuery, _, toSQLErr := insertStmt.ToSQL()
	if toSQLErr != nil {
		return "", toSQLErr
	}

	return sqlQuery, nil
}

// AssetHistory returns the version trail of one asset, newest first. A limit
// of 0 means no limit. An asset without version rows yields an empty slice;
// callers decide whether that means the asset is unknown.
func (e Engine) AssetHistory(ctx context.Context, assetID uuid.UUID, limit uint) ([]store.VersionRow, error) {
	selectStmt := e.builder().
		From(tableAssetVersions).
		Select(colVersionAssetID, colVersionSequence, colVersionKind, colVersionSnapshot, colVersionActor, colVersionOccurredAt).
		Where(goqu.Ex{colVersionAssetID: assetID}).
		Order(goqu.I(colVersionSequence).Desc())

	if limit > 0 {
		selectStmt = selectStmt.Limit(limit)
	}

	sqlQuery, _, toSQLErr := selectStmt.ToSQL()
	if toSQLErr != nil {
		return nil, e.buildError(toSQLErr)
	}

	rows, duration, queryErr := e.executeQuery(ctx, logActionAssetHistory, sqlQuery)
	if queryErr != nil {
		return nil, queryErr
	}
	defer e.closeRows(rows)

	history := make([]store.VersionRow, 0)

	for rows.Next() {
		row, scanErr := e.scanVersionRow(rows)
		if scanErr != nil {
			return nil, scanErr
		}

		history = append(history, row)
	}

	e.logOperation(
		logMsgHistoryLoaded,
		logAttrAssetID, assetID.String(),
		logAttrRowCount, len(history),
		logAttrDurationMS, e.durationToMilliseconds(duration),
	)

	return history, nil
}

// GetVersion loads one version record by its (asset, sequence) identity. An
// unknown identity yields core.ErrNotFound.
func (e Engine) GetVersion(ctx context.Context, assetID uuid.UUID, sequence uint) (store.VersionRow, error) {
	var empty store.VersionRow

	selectStmt := e.builder().
		From(tableAssetVersions).
		Select(colVersionAssetID, colVersionSequence, colVersionKind, colVersionSnapshot, colVersionActor, colVersionOccurredAt).
		Where(goqu.Ex{
			colVersionAssetID:  assetID,
			colVersionSequence: int64(sequence),
		})

	sqlQuery, _, toSQLErr := selectStmt.ToSQL()
	if toSQLErr != nil {
		return empty, e.buildError(toSQLErr)
	}

	rows, _, queryErr := e.executeQuery(ctx, logActionGetVersion, sqlQuery)
	if queryErr != nil {
		return empty, queryErr
	}
	defer e.closeRows(rows)

	if !rows.Next() {
		return empty, core.ErrNotFound
	}

	return e.scanVersionRow(rows)
}

func (e Engine) scanVersionRow(rows adapters.DBRows) (store.VersionRow, error) {
	var (
		row      store.VersionRow
		sequence int64
	)

	scanErr := rows.Scan(&row.AssetID, &sequence, &row.Kind, &row.Snapshot, &row.Actor, &row.OccurredAt)
	if scanErr != nil {
		return store.VersionRow{}, e.scanError(scanErr)
	}

	row.Sequence = uint(sequence)

	return row, nil
}
