// Package requestloan implements the Request Loan use case.
//
// The handler is the loan request coordinator: it resolves the student,
// auto-registering an unknown national ID first, and then opens the loan
// under the per-asset concurrency guard. Student registration is durable on
// its own - a loan rejection never rolls it back.
package requestloan
