package assetavailability

import (
	"github.com/google/uuid"

	"github.com/campuslib/loanledger-go/core"
)

// Availability is the result of the Asset Availability query. ActiveLoan is
// nil when the asset is available.
type Availability struct {
	AssetID    uuid.UUID
	Kind       core.AssetKind
	Available  bool
	ActiveLoan *core.Loan
}
