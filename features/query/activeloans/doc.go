// Package activeloans implements the Active Loans query use case.
//
// It lists every loan currently out, soonest due first, with an overdue flag
// computed against the query time.
package activeloans
