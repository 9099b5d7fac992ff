package createasset

import (
	"time"

	"github.com/google/uuid"

	"github.com/campuslib/loanledger-go/core"
)

const (
	commandType = "CreateAsset"
)

// Command represents the intent to catalogue a new Book or Thesis.
// Exactly one of Book/Thesis is set, matching Kind.
type Command struct {
	AssetID    uuid.UUID
	Kind       core.AssetKind
	Code       *string
	Title      string
	Author     string
	Year       *int
	Condition  core.Condition
	Location   core.ShelfLocation
	Book       *core.BookDetails
	Thesis     *core.ThesisDetails
	Actor      core.ActorString
	OccurredAt core.OccurredAtTS
}

// CommandType returns the type identifier for this command, used for observability and routing.
func (c Command) CommandType() string {
	return commandType
}

// BuildBookCommand creates a Command to catalogue a book.
func BuildBookCommand(
	assetID uuid.UUID,
	code *string,
	title string,
	author string,
	year *int,
	condition core.Condition,
	location core.ShelfLocation,
	details core.BookDetails,
	actor core.ActorString,
	occurredAt time.Time,
) Command {

	return Command{
		AssetID:    assetID,
		Kind:       core.AssetKindBook,
		Code:       code,
		Title:      title,
		Author:     author,
		Year:       year,
		Condition:  condition,
		Location:   location,
		Book:       &details,
		Actor:      actor,
		OccurredAt: core.ToOccurredAt(occurredAt),
	}
}

// BuildThesisCommand creates a Command to catalogue a thesis.
func BuildThesisCommand(
	assetID uuid.UUID,
	code *string,
	title string,
	author string,
	year *int,
	condition core.Condition,
	location core.ShelfLocation,
	details core.ThesisDetails,
	actor core.ActorString,
	occurredAt time.Time,
) Command {

	return Command{
		AssetID:    assetID,
		Kind:       core.AssetKindThesis,
		Code:       code,
		Title:      title,
		Author:     author,
		Year:       year,
		Condition:  condition,
		Location:   location,
		Thesis:     &details,
		Actor:      actor,
		OccurredAt: core.ToOccurredAt(occurredAt),
	}
}
