package store

import (
	"time"

	"github.com/google/uuid"
)

// AssetRow is the persisted shape of an asset: the full state as a JSON
// snapshot plus the columns the engine needs for lookups and for the
// compare-and-swap on CurrentVersion. Mapping between AssetRow and the domain
// asset lives in the shell package.
type AssetRow struct {
	ID             uuid.UUID
	Kind           string
	Code           *string
	Snapshot       []byte
	CurrentVersion uint
	DeletedAt      *time.Time
}

// VersionRow is the persisted shape of one version record. Snapshot is the
// raw JSON document; (AssetID, Sequence) is the identity.
type VersionRow struct {
	AssetID    uuid.UUID
	Sequence   uint
	Kind       string
	Snapshot   []byte
	Actor      string
	OccurredAt time.Time
}
