package activeloans

import (
	"time"

	"github.com/campuslib/loanledger-go/core"
)

const (
	queryType = "ActiveLoans"
)

// Query represents the intent to list all loans currently out. AsOf is the
// reference time for the overdue flag.
type Query struct {
	AsOf core.OccurredAtTS
}

// BuildQuery creates a new Query with the provided reference time.
func BuildQuery(asOf time.Time) Query {
	return Query{
		AsOf: core.ToOccurredAt(asOf),
	}
}

// QueryType returns the query type.
func (q Query) QueryType() string {
	return queryType
}
