package getasset

import (
	"context"

	"github.com/google/uuid"

	"github.com/campuslib/loanledger-go/core"
	"github.com/campuslib/loanledger-go/shell"
	"github.com/campuslib/loanledger-go/store"
)

// Storage defines the interface needed by the QueryHandler for persistence.
type Storage interface {
	GetAsset(ctx context.Context, assetID uuid.UUID) (store.AssetRow, error)
}

// QueryHandler orchestrates the query processing workflow: Get -> Unmarshal.
type QueryHandler struct {
	storage Storage
}

// NewQueryHandler creates a new QueryHandler with the provided Storage dependency.
func NewQueryHandler(storage Storage) QueryHandler {
	return QueryHandler{
		storage: storage,
	}
}

// Handle returns the asset's live state. An unknown or soft-deleted asset
// yields core.ErrNotFound.
func (h QueryHandler) Handle(ctx context.Context, query Query) (AssetDetails, error) {
	row, getErr := h.storage.GetAsset(ctx, query.AssetID)
	if getErr != nil {
		return AssetDetails{}, getErr
	}

	asset, currentVersion, unmarshalErr := shell.AssetFromRow(row)
	if unmarshalErr != nil {
		return AssetDetails{}, unmarshalErr
	}

	if asset.IsDeleted() {
		return AssetDetails{}, core.ErrNotFound
	}

	return AssetDetails{
		Asset:          asset,
		CurrentVersion: currentVersion,
	}, nil
}
