package removeasset

import (
	"github.com/campuslib/loanledger-go/core"
)

// Decide marks the current asset state as deleted.
// This is a pure function with no side effects.
//
// Business rules:
//
//	GIVEN: the current asset state
//	WHEN: a RemoveAsset command arrives
//	THEN: DeletedAt is stamped with the command time
//	ERROR: NotFound when the asset is already soft-deleted
func Decide(current core.Asset, command Command) (core.Asset, error) {
	if current.IsDeleted() {
		return core.Asset{}, core.ErrNotFound
	}

	deleted := current
	deletedAt := command.OccurredAt
	deleted.DeletedAt = &deletedAt

	return deleted, nil
}
