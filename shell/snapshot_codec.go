package shell

import (
	"encoding/json"
	"errors"

	jsoniter "github.com/json-iterator/go"

	"github.com/campuslib/loanledger-go/core"
)

var (
	// ErrMarshalingSnapshotFailed is returned when an asset cannot be
	// serialized into its version snapshot.
	ErrMarshalingSnapshotFailed = errors.New("marshaling asset snapshot failed")

	// ErrUnmarshalingSnapshotFailed is returned when a stored snapshot cannot
	// be deserialized back into an asset.
	ErrUnmarshalingSnapshotFailed = errors.New("unmarshaling asset snapshot failed")
)

// SnapshotFromAsset serializes the full asset field-set into the immutable
// snapshot stored with a version record.
func SnapshotFromAsset(asset core.Asset) ([]byte, error) {
	payload, err := json.Marshal(asset)
	if err != nil {
		return nil, errors.Join(ErrMarshalingSnapshotFailed, err)
	}

	return payload, nil
}

// AssetFromSnapshot deserializes a stored snapshot and verifies the
// closed-variant invariant still holds.
func AssetFromSnapshot(snapshot []byte) (core.Asset, error) {
	asset := new(core.Asset)

	if err := jsoniter.ConfigFastest.Unmarshal(snapshot, asset); err != nil {
		return core.Asset{}, errors.Join(ErrUnmarshalingSnapshotFailed, err)
	}

	if err := asset.ValidateVariant(); err != nil {
		return core.Asset{}, errors.Join(ErrUnmarshalingSnapshotFailed, err)
	}

	return *asset, nil
}
