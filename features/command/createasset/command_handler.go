package createasset

import (
	"context"

	"github.com/campuslib/loanledger-go/core"
	"github.com/campuslib/loanledger-go/shell"
	"github.com/campuslib/loanledger-go/store"
)

// Storage defines the interface needed by the CommandHandler for persistence.
type Storage interface {
	InsertAssetWithVersion(ctx context.Context, row store.AssetRow, version store.VersionRow) error
}

// CommandHandler orchestrates the Create Asset workflow: Build -> Marshal -> Insert.
// The insert is guarded by the asset ID and code uniqueness only; no retry is
// needed because there is no prior state to race against.
type CommandHandler struct {
	storage Storage
}

// NewCommandHandler creates a new CommandHandler.
func NewCommandHandler(storage Storage) CommandHandler {
	return CommandHandler{
		storage: storage,
	}
}

// Handle catalogues the asset and writes its CREATE version record
// atomically. A taken asset ID or human code surfaces as
// store.ErrDuplicateKey.
func (h CommandHandler) Handle(ctx context.Context, command Command) error {
	asset, buildErr := h.buildAsset(command)
	if buildErr != nil {
		return buildErr
	}

	record := core.BuildVersionRecord(
		asset.ID,
		1,
		core.ChangeKindCreate,
		asset,
		command.Actor,
		command.OccurredAt,
	)

	assetRow, marshalAssetErr := shell.AssetRowFrom(asset, record.Sequence)
	if marshalAssetErr != nil {
		return marshalAssetErr
	}

	versionRow, marshalVersionErr := shell.VersionRowFrom(record)
	if marshalVersionErr != nil {
		return marshalVersionErr
	}

	return h.storage.InsertAssetWithVersion(ctx, assetRow, versionRow)
}

func (h CommandHandler) buildAsset(command Command) (core.Asset, error) {
	switch command.Kind {
	case core.AssetKindThesis:
		var details core.ThesisDetails
		if command.Thesis != nil {
			details = *command.Thesis
		}

		return core.BuildThesis(
			command.AssetID,
			command.Code,
			command.Title,
			command.Author,
			command.Year,
			command.Condition,
			command.Location,
			details,
			command.OccurredAt,
		)

	default:
		var details core.BookDetails
		if command.Book != nil {
			details = *command.Book
		}

		return core.BuildBook(
			command.AssetID,
			command.Code,
			command.Title,
			command.Author,
			command.Year,
			command.Condition,
			command.Location,
			details,
			command.OccurredAt,
		)
	}
}
