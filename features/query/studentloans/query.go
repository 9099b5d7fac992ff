package studentloans

import (
	"github.com/google/uuid"
)

const (
	queryType = "StudentLoans"
)

// Query represents the intent to list one student's loans.
type Query struct {
	StudentID uuid.UUID
}

// BuildQuery creates a new Query with the provided student ID.
func BuildQuery(studentID uuid.UUID) Query {
	return Query{
		StudentID: studentID,
	}
}

// QueryType returns the query type.
func (q Query) QueryType() string {
	return queryType
}
