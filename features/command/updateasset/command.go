package updateasset

import (
	"time"

	"github.com/google/uuid"

	"github.com/campuslib/loanledger-go/core"
)

const (
	commandType = "UpdateAsset"
)

// Command represents the intent to edit a catalogued asset. All mutable
// fields are replaced wholesale; Book/Thesis details are replaced when set
// and kept when nil. The asset's kind cannot be changed.
type Command struct {
	AssetID    uuid.UUID
	Code       *string
	Title      string
	Author     string
	Year       *int
	Condition  core.Condition
	Location   core.ShelfLocation
	Notes      string
	Book       *core.BookDetails
	Thesis     *core.ThesisDetails
	Actor      core.ActorString
	OccurredAt core.OccurredAtTS
}

// CommandType returns the type identifier for this command, used for observability and routing.
func (c Command) CommandType() string {
	return commandType
}

// BuildCommand creates a new Command with the provided parameters.
func BuildCommand(
	assetID uuid.UUID,
	code *string,
	title string,
	author string,
	year *int,
	condition core.Condition,
	location core.ShelfLocation,
	notes string,
	actor core.ActorString,
	occurredAt time.Time,
) Command {

	return Command{
		AssetID:    assetID,
		Code:       code,
		Title:      title,
		Author:     author,
		Year:       year,
		Condition:  condition,
		Location:   location,
		Notes:      notes,
		Actor:      actor,
		OccurredAt: core.ToOccurredAt(occurredAt),
	}
}

// WithBookDetails returns a copy of the command that also replaces the book
// details.
func (c Command) WithBookDetails(details core.BookDetails) Command {
	c.Book = &details
	return c
}

// WithThesisDetails returns a copy of the command that also replaces the
// thesis details.
func (c Command) WithThesisDetails(details core.ThesisDetails) Command {
	c.Thesis = &details
	return c
}
