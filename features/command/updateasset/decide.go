package updateasset

import (
	"github.com/campuslib/loanledger-go/core"
)

// Decide applies a catalog edit to the current asset state.
// This is a pure function with no side effects.
//
// Business rules:
//
//	GIVEN: the current asset state
//	WHEN: an UpdateAsset command arrives
//	THEN: the mutable fields are replaced and the kind is preserved
//	ERROR: NotFound when the asset is soft-deleted
//	ERROR: TypeMismatch when details of the other variant are supplied
func Decide(current core.Asset, command Command) (core.Asset, error) {
	if current.IsDeleted() {
		return core.Asset{}, core.ErrNotFound
	}

	if command.Title == "" {
		return core.Asset{}, core.ErrEmptyAssetTitle
	}

	if command.Book != nil && current.Kind != core.AssetKindBook {
		return core.Asset{}, core.ErrTypeMismatch
	}

	if command.Thesis != nil && current.Kind != core.AssetKindThesis {
		return core.Asset{}, core.ErrTypeMismatch
	}

	updated := current
	updated.Code = command.Code
	updated.Title = command.Title
	updated.Author = command.Author
	updated.Year = command.Year
	updated.Condition = command.Condition
	updated.Location = command.Location
	updated.Notes = command.Notes

	if command.Book != nil {
		details := *command.Book
		updated.Book = &details
	}

	if command.Thesis != nil {
		details := *command.Thesis
		updated.Thesis = &details
	}

	if err := updated.ValidateVariant(); err != nil {
		return core.Asset{}, err
	}

	return updated, nil
}
