package shell

import (
	"errors"
	"fmt"

	"github.com/campuslib/loanledger-go/core"
	"github.com/campuslib/loanledger-go/store"
)

// ErrUnknownChangeKind is returned when a stored version row carries a change
// kind the domain does not know.
var ErrUnknownChangeKind = errors.New("unknown change kind in version row")

// AssetRowFrom maps a domain asset and its current version number to the row
// the storage engine persists, serializing the snapshot.
func AssetRowFrom(asset core.Asset, currentVersion uint) (store.AssetRow, error) {
	snapshot, err := SnapshotFromAsset(asset)
	if err != nil {
		return store.AssetRow{}, err
	}

	return store.AssetRow{
		ID:             asset.ID,
		Kind:           string(asset.Kind),
		Code:           asset.Code,
		Snapshot:       snapshot,
		CurrentVersion: currentVersion,
		DeletedAt:      asset.DeletedAt,
	}, nil
}

// AssetFromRow maps a stored asset row back to the domain asset and its
// current version number.
func AssetFromRow(row store.AssetRow) (core.Asset, uint, error) {
	asset, err := AssetFromSnapshot(row.Snapshot)
	if err != nil {
		return core.Asset{}, 0, err
	}

	return asset, row.CurrentVersion, nil
}

// VersionRowFrom maps a domain version record to the row the storage engine
// persists, serializing the snapshot.
func VersionRowFrom(record core.VersionRecord) (store.VersionRow, error) {
	snapshot, err := SnapshotFromAsset(record.Snapshot)
	if err != nil {
		return store.VersionRow{}, err
	}

	return store.VersionRow{
		AssetID:    record.AssetID,
		Sequence:   record.Sequence,
		Kind:       string(record.Kind),
		Snapshot:   snapshot,
		Actor:      record.Actor,
		OccurredAt: record.OccurredAt,
	}, nil
}

// VersionRecordFrom maps a stored version row back to the domain record.
func VersionRecordFrom(row store.VersionRow) (core.VersionRecord, error) {
	kind := core.ChangeKind(row.Kind)

	switch kind {
	case core.ChangeKindCreate, core.ChangeKindUpdate, core.ChangeKindDelete:
	default:
		return core.VersionRecord{}, fmt.Errorf("%w: %q", ErrUnknownChangeKind, row.Kind)
	}

	snapshot, err := AssetFromSnapshot(row.Snapshot)
	if err != nil {
		return core.VersionRecord{}, err
	}

	return core.BuildVersionRecord(row.AssetID, row.Sequence, kind, snapshot, row.Actor, row.OccurredAt), nil
}
