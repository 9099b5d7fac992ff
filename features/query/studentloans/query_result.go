package studentloans

import (
	"github.com/campuslib/loanledger-go/core"
)

// StudentLoans is the result of the Student Loans query: the student and
// their loans, newest first.
type StudentLoans struct {
	Student core.Student
	Loans   []core.Loan
	Count   int
}
