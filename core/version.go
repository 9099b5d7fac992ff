package core

import (
	"github.com/google/uuid"
)

// ChangeKind classifies the mutation captured by a version record.
type ChangeKind string

const (
	ChangeKindCreate ChangeKind = "CREATE"
	ChangeKindUpdate ChangeKind = "UPDATE"
	ChangeKindDelete ChangeKind = "DELETE"
)

// VersionRecord is one immutable snapshot in an asset's audit trail,
// identified by (AssetID, Sequence). Sequence numbers per asset are strictly
// increasing and contiguous, starting at 1 with the CREATE record. The current
// asset state is always the snapshot at the highest sequence number.
type VersionRecord struct {
	AssetID    uuid.UUID
	Sequence   uint
	Kind       ChangeKind
	Snapshot   Asset
	Actor      ActorString
	OccurredAt OccurredAtTS
}

// BuildVersionRecord creates a version record for the given mutation.
func BuildVersionRecord(
	assetID uuid.UUID,
	sequence uint,
	kind ChangeKind,
	snapshot Asset,
	actor ActorString,
	occurredAt OccurredAtTS,
) VersionRecord {

	return VersionRecord{
		AssetID:    assetID,
		Sequence:   sequence,
		Kind:       kind,
		Snapshot:   snapshot,
		Actor:      actor,
		OccurredAt: ToOccurredAt(occurredAt),
	}
}
