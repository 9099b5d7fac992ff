// Package closeloan implements the Close Loan use case.
//
// Returning an asset flips its loan from ACTIVE to RETURNED. Loan rows are
// never deleted; the closed row stays in the ledger as history.
package closeloan
