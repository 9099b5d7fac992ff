package activeloans

import (
	"github.com/campuslib/loanledger-go/core"
)

// LoanInfo is one active loan with its overdue flag.
type LoanInfo struct {
	Loan    core.Loan
	Overdue bool
}

// ActiveLoans is the result of the Active Loans query, soonest due first.
type ActiveLoans struct {
	Loans []LoanInfo
	Count int
}
