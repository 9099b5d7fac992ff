package core

import (
	"time"
)

// Instead of implementing full value objects, a few alias types and helper
// methods keep signatures readable.

// ActorString identifies the user performing a mutation. It is opaque to the
// engine; authentication happens in the excluded API layer.
type ActorString = string

// OccurredAtTS represents when a command was issued or an event happened.
type OccurredAtTS = time.Time

// ToOccurredAt truncates a timestamp to microsecond precision, matching the
// resolution of the persisted columns. The location is preserved because the
// in-library due date is computed against the caller's calendar day.
func ToOccurredAt(t time.Time) OccurredAtTS {
	return t.Truncate(time.Microsecond)
}
