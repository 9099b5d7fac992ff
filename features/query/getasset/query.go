package getasset

import (
	"github.com/google/uuid"
)

const (
	queryType = "GetAsset"
)

// Query represents the intent to read one asset's live state.
type Query struct {
	AssetID uuid.UUID
}

// BuildQuery creates a new Query with the provided asset ID.
func BuildQuery(assetID uuid.UUID) Query {
	return Query{
		AssetID: assetID,
	}
}

// QueryType returns the query type.
func (q Query) QueryType() string {
	return queryType
}
