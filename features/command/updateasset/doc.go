// Package updateasset implements the Update Asset use case.
//
// Catalog edits replace the mutable fields of a Book or Thesis. The variant
// tag is immutable; the edit and its UPDATE version record are committed as
// one unit, guarded by the version number read before deciding.
package updateasset
