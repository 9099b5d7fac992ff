package studentloans

import (
	"context"

	"github.com/google/uuid"

	"github.com/campuslib/loanledger-go/core"
)

// Storage defines the interface needed by the QueryHandler for persistence.
type Storage interface {
	GetStudent(ctx context.Context, studentID uuid.UUID) (core.Student, error)
	LoansForStudent(ctx context.Context, studentID uuid.UUID) ([]core.Loan, error)
}

// QueryHandler orchestrates the query processing workflow: Get -> Query.
type QueryHandler struct {
	storage Storage
}

// NewQueryHandler creates a new QueryHandler with the provided Storage dependency.
func NewQueryHandler(storage Storage) QueryHandler {
	return QueryHandler{
		storage: storage,
	}
}

// Handle returns one student's loans, newest first. An unknown student yields
// core.ErrNotFound.
func (h QueryHandler) Handle(ctx context.Context, query Query) (StudentLoans, error) {
	student, getErr := h.storage.GetStudent(ctx, query.StudentID)
	if getErr != nil {
		return StudentLoans{}, getErr
	}

	loans, queryErr := h.storage.LoansForStudent(ctx, query.StudentID)
	if queryErr != nil {
		return StudentLoans{}, queryErr
	}

	return StudentLoans{
		Student: student,
		Loans:   loans,
		Count:   len(loans),
	}, nil
}
