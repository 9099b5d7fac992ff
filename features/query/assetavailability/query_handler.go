package assetavailability

import (
	"context"
	"errors"

	"github.com/google/uuid"

	"github.com/campuslib/loanledger-go/core"
	"github.com/campuslib/loanledger-go/shell"
	"github.com/campuslib/loanledger-go/store"
)

// Storage defines the interface needed by the QueryHandler for persistence.
type Storage interface {
	GetAsset(ctx context.Context, assetID uuid.UUID) (store.AssetRow, error)
	FindActiveLoanForAsset(ctx context.Context, assetID uuid.UUID) (core.Loan, error)
}

// QueryHandler orchestrates the query processing workflow: Get -> FindActive.
type QueryHandler struct {
	storage Storage
}

// NewQueryHandler creates a new QueryHandler with the provided Storage dependency.
func NewQueryHandler(storage Storage) QueryHandler {
	return QueryHandler{
		storage: storage,
	}
}

// Handle returns the asset's availability. An unknown or soft-deleted asset
// yields core.ErrNotFound.
func (h QueryHandler) Handle(ctx context.Context, query Query) (Availability, error) {
	row, getErr := h.storage.GetAsset(ctx, query.AssetID)
	if getErr != nil {
		return Availability{}, getErr
	}

	asset, _, unmarshalErr := shell.AssetFromRow(row)
	if unmarshalErr != nil {
		return Availability{}, unmarshalErr
	}

	if asset.IsDeleted() {
		return Availability{}, core.ErrNotFound
	}

	result := Availability{
		AssetID:   asset.ID,
		Kind:      asset.Kind,
		Available: true,
	}

	activeLoan, findErr := h.storage.FindActiveLoanForAsset(ctx, query.AssetID)
	switch {
	case findErr == nil:
		result.Available = false
		result.ActiveLoan = &activeLoan
	case errors.Is(findErr, core.ErrNotFound):
		// no active loan, the asset is free
	default:
		return Availability{}, findErr
	}

	return result, nil
}
