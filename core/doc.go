// Package core contains the pure domain of the loan lifecycle and versioned
// audit engine: the closed Book/Thesis asset variant, students, loans with
// their due-date rules, immutable version records, and the Decide functions
// that implement the business rules.
//
// Nothing in this package performs I/O or reads the clock - timestamps always
// arrive with the command. This keeps every business decision a pure function
// that can be tested exhaustively without infrastructure.
package core
