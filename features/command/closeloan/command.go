package closeloan

import (
	"time"

	"github.com/google/uuid"

	"github.com/campuslib/loanledger-go/core"
)

const (
	commandType = "CloseLoan"
)

// Command represents the intent to return a lent asset.
type Command struct {
	LoanID     uuid.UUID
	Note       string
	Actor      core.ActorString
	OccurredAt core.OccurredAtTS
}

// CommandType returns the type identifier for this command, used for observability and routing.
func (c Command) CommandType() string {
	return commandType
}

// BuildCommand creates a new Command with the provided parameters.
func BuildCommand(loanID uuid.UUID, note string, actor core.ActorString, occurredAt time.Time) Command {
	return Command{
		LoanID:     loanID,
		Note:       note,
		Actor:      actor,
		OccurredAt: core.ToOccurredAt(occurredAt),
	}
}
