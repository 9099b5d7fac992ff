package core

import (
	"errors"
)

// The error taxonomy of the engine. Business-rule violations are legitimate
// outcomes and must never be retried; ErrStorageUnavailable is the only kind
// eligible for caller-directed retry. Callers discover the kind with
// errors.Is, never by parsing messages.
var (
	// ErrNotFound is returned for an unknown or soft-deleted asset, an unknown
	// student, loan, or version.
	ErrNotFound = errors.New("not found")

	// ErrAssetUnavailable is returned when an active loan for the asset
	// already exists and the request does not qualify for the same-student
	// home upgrade.
	ErrAssetUnavailable = errors.New("asset unavailable, an active loan exists")

	// ErrModalityForbidden is returned when a thesis is requested for home
	// use. Theses may only be consulted in the library.
	ErrModalityForbidden = errors.New("modality forbidden, theses are lent in-library only")

	// ErrAlreadyReturned is returned when closing a loan that is already in
	// state RETURNED.
	ErrAlreadyReturned = errors.New("loan already returned")

	// ErrTypeMismatch is returned when restoring a version whose snapshot
	// variant differs from the asset's current variant.
	ErrTypeMismatch = errors.New("type mismatch, snapshot variant differs from current asset variant")

	// ErrStorageUnavailable wraps infrastructure failures of the persistence
	// layer.
	ErrStorageUnavailable = errors.New("storage unavailable")
)
