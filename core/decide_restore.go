package core

// DecideRestoreAsset implements the data-integrity rules for restoring an
// asset to a prior version. Restore never rewrites history: the caller
// re-applies the returned snapshot as a new UPDATE mutation, so versions after
// the restored one stay in the trail untouched.
//
// Returns ErrTypeMismatch when the snapshot's variant differs from the asset's
// current variant - a Book snapshot cannot be restored onto an ID now
// classified as Thesis, and vice versa.
//
// Restoring is also the undelete path: the returned snapshot always has a
// cleared DeletedAt, regardless of the current soft-deletion state.
func DecideRestoreAsset(current Asset, record VersionRecord) (Asset, error) {
	if record.Snapshot.Kind != current.Kind {
		return Asset{}, ErrTypeMismatch
	}

	restored := record.Snapshot
	restored.ID = current.ID
	restored.DeletedAt = nil

	return restored, nil
}
