package removeasset

import (
	"context"

	"github.com/google/uuid"

	"github.com/campuslib/loanledger-go/core"
	"github.com/campuslib/loanledger-go/shell"
	"github.com/campuslib/loanledger-go/store"
)

// Storage defines the interface needed by the CommandHandler for persistence.
type Storage interface {
	GetAsset(ctx context.Context, assetID uuid.UUID) (store.AssetRow, error)
	UpdateAssetWithVersion(
		ctx context.Context,
		row store.AssetRow,
		version store.VersionRow,
		expectedVersion uint,
	) error
}

// CommandHandler orchestrates the Remove Asset workflow:
// Get -> Unmarshal -> Decide -> Update.
type CommandHandler struct {
	storage      Storage
	retryOptions []shell.RetryOption
}

// Option configures a CommandHandler.
type Option func(*CommandHandler)

// WithRetryOptions sets a custom retry configuration for the handler.
func WithRetryOptions(opts ...shell.RetryOption) Option {
	return func(h *CommandHandler) {
		h.retryOptions = opts
	}
}

// NewCommandHandler creates a new CommandHandler with optional configuration.
func NewCommandHandler(storage Storage, opts ...Option) CommandHandler {
	handler := CommandHandler{
		storage: storage,
	}

	for _, opt := range opts {
		opt(&handler)
	}

	return handler
}

// Handle executes the complete command processing workflow with retry logic.
func (h CommandHandler) Handle(ctx context.Context, command Command) error {
	return shell.RetryWithExponentialBackoff(ctx, func(retryCtx context.Context) error {
		return h.executeCommand(retryCtx, command)
	}, h.retryOptions...)
}

// executeCommand contains the core command processing logic that can be retried.
func (h CommandHandler) executeCommand(ctx context.Context, command Command) error {
	row, getErr := h.storage.GetAsset(ctx, command.AssetID)
	if getErr != nil {
		return getErr
	}

	current, currentVersion, unmarshalErr := shell.AssetFromRow(row)
	if unmarshalErr != nil {
		return unmarshalErr
	}

	deleted, decideErr := Decide(current, command)
	if decideErr != nil {
		return decideErr
	}

	record := core.BuildVersionRecord(
		deleted.ID,
		currentVersion+1,
		core.ChangeKindDelete,
		deleted,
		command.Actor,
		command.OccurredAt,
	)

	assetRow, marshalAssetErr := shell.AssetRowFrom(deleted, record.Sequence)
	if marshalAssetErr != nil {
		return marshalAssetErr
	}

	versionRow, marshalVersionErr := shell.VersionRowFrom(record)
	if marshalVersionErr != nil {
		return marshalVersionErr
	}

	return h.storage.UpdateAssetWithVersion(ctx, assetRow, versionRow, currentVersion)
}
