// Package getasset implements the Get Asset query use case.
//
// It returns the live state of one catalogued asset together with its
// current version number. Soft-deleted assets are not visible here; they can
// only be reached through their version history.
package getasset
