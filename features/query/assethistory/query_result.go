package assethistory

import (
	"github.com/google/uuid"

	"github.com/campuslib/loanledger-go/core"
)

// History is the result of the Asset History query: the version records of
// one asset, most recent first.
type History struct {
	AssetID uuid.UUID
	Records []core.VersionRecord
	Count   int
}
