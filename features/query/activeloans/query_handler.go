package activeloans

import (
	"context"

	"github.com/campuslib/loanledger-go/core"
)

// Storage defines the interface needed by the QueryHandler for persistence.
type Storage interface {
	ActiveLoans(ctx context.Context) ([]core.Loan, error)
}

// QueryHandler orchestrates the query processing workflow: Query -> Project.
type QueryHandler struct {
	storage Storage
}

// NewQueryHandler creates a new QueryHandler with the provided Storage dependency.
func NewQueryHandler(storage Storage) QueryHandler {
	return QueryHandler{
		storage: storage,
	}
}

// Handle returns all loans currently out, soonest due first.
func (h QueryHandler) Handle(ctx context.Context, query Query) (ActiveLoans, error) {
	loans, queryErr := h.storage.ActiveLoans(ctx)
	if queryErr != nil {
		return ActiveLoans{}, queryErr
	}

	infos := make([]LoanInfo, 0, len(loans))

	for _, loan := range loans {
		infos = append(infos, LoanInfo{
			Loan:    loan,
			Overdue: loan.IsOverdue(query.AsOf),
		})
	}

	return ActiveLoans{
		Loans: infos,
		Count: len(infos),
	}, nil
}
