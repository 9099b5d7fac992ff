package restoreasset

import (
	"time"

	"github.com/google/uuid"

	"github.com/campuslib/loanledger-go/core"
)

const (
	commandType = "RestoreAsset"
)

// Command represents the intent to restore an asset to the snapshot of one of
// its past versions.
type Command struct {
	AssetID    uuid.UUID
	Sequence   uint
	Actor      core.ActorString
	OccurredAt core.OccurredAtTS
}

// CommandType returns the type identifier for this command, used for observability and routing.
func (c Command) CommandType() string {
	return commandType
}

// BuildCommand creates a new Command with the provided parameters.
func BuildCommand(assetID uuid.UUID, sequence uint, actor core.ActorString, occurredAt time.Time) Command {
	return Command{
		AssetID:    assetID,
		Sequence:   sequence,
		Actor:      actor,
		OccurredAt: core.ToOccurredAt(occurredAt),
	}
}
