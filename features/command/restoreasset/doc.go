// Package restoreasset implements the Restore Asset use case.
//
// Restoring version N never rewinds the trail: it appends a new version whose
// snapshot equals version N's content and swaps the live state to it. The
// restore itself is audited, and restoring a DELETE-era snapshot brings a
// soft-deleted asset back.
package restoreasset
