package assethistory

import (
	"github.com/google/uuid"
)

const (
	queryType = "AssetHistory"
)

// Query represents the intent to read an asset's version trail.
// A Limit of 0 means the full trail.
type Query struct {
	AssetID uuid.UUID
	Limit   uint
}

// BuildQuery creates a new Query with the provided asset ID and limit.
func BuildQuery(assetID uuid.UUID, limit uint) Query {
	return Query{
		AssetID: assetID,
		Limit:   limit,
	}
}

// QueryType returns the query type.
func (q Query) QueryType() string {
	return queryType
}
