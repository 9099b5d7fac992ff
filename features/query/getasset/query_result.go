package getasset

import (
	"github.com/campuslib/loanledger-go/core"
)

// AssetDetails is the result of the Get Asset query: the live state plus the
// sequence number of the version record it corresponds to.
type AssetDetails struct {
	Asset          core.Asset
	CurrentVersion uint
}
