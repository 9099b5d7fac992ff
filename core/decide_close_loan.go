package core

import (
	"time"
)

// DecideCloseLoan implements the business rules for returning a loan.
// Returns the closed loan, or ErrAlreadyReturned when the loan is not active.
func DecideCloseLoan(loan Loan, occurredAt time.Time) (Loan, error) {
	if loan.State == LoanStateReturned {
		return Loan{}, ErrAlreadyReturned
	}

	returnedAt := ToOccurredAt(occurredAt)
	loan.State = LoanStateReturned
	loan.ReturnedAt = &returnedAt

	return loan, nil
}
