// Package studentloans implements the Student Loans query use case.
//
// It lists the full loan ledger of one student, newest first, returned loans
// included.
package studentloans
