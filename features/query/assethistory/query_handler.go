package assethistory

import (
	"context"

	"github.com/google/uuid"

	"github.com/campuslib/loanledger-go/core"
	"github.com/campuslib/loanledger-go/shell"
	"github.com/campuslib/loanledger-go/store"
)

// Storage defines the interface needed by the QueryHandler for persistence.
type Storage interface {
	AssetHistory(ctx context.Context, assetID uuid.UUID, limit uint) ([]store.VersionRow, error)
}

// QueryHandler orchestrates the query processing workflow: Query -> Unmarshal.
type QueryHandler struct {
	storage Storage
}

// NewQueryHandler creates a new QueryHandler with the provided Storage dependency.
func NewQueryHandler(storage Storage) QueryHandler {
	return QueryHandler{
		storage: storage,
	}
}

// Handle returns the asset's version trail, newest first. An asset that never
// existed has no version rows and yields core.ErrNotFound - every real asset
// has at least its CREATE record.
func (h QueryHandler) Handle(ctx context.Context, query Query) (History, error) {
	rows, queryErr := h.storage.AssetHistory(ctx, query.AssetID, query.Limit)
	if queryErr != nil {
		return History{}, queryErr
	}

	if len(rows) == 0 {
		return History{}, core.ErrNotFound
	}

	records := make([]core.VersionRecord, 0, len(rows))

	for _, row := range rows {
		record, unmarshalErr := shell.VersionRecordFrom(row)
		if unmarshalErr != nil {
			return History{}, unmarshalErr
		}

		records = append(records, record)
	}

	return History{
		AssetID: query.AssetID,
		Records: records,
		Count:   len(records),
	}, nil
}
