package removeasset

import (
	"time"

	"github.com/google/uuid"

	"github.com/campuslib/loanledger-go/core"
)

const (
	commandType = "RemoveAsset"
)

// Command represents the intent to soft-delete a catalogued asset.
type Command struct {
	AssetID    uuid.UUID
	Actor      core.ActorString
	OccurredAt core.OccurredAtTS
}

// CommandType returns the type identifier for this command, used for observability and routing.
func (c Command) CommandType() string {
	return commandType
}

// BuildCommand creates a new Command with the provided parameters.
func BuildCommand(assetID uuid.UUID, actor core.ActorString, occurredAt time.Time) Command {
	return Command{
		AssetID:    assetID,
		Actor:      actor,
		OccurredAt: core.ToOccurredAt(occurredAt),
	}
}
