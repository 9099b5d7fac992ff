// Package createasset implements the Create Asset use case.
//
// A new Book or Thesis is catalogued and its CREATE version record is written
// in the same transaction, so the audit trail starts at sequence 1 before the
// asset is visible to readers.
package createasset
