package assetavailability

import (
	"github.com/google/uuid"
)

const (
	queryType = "AssetAvailability"
)

// Query represents the intent to check whether an asset can be lent.
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
