package core

import (
	"time"

	"github.com/google/uuid"
)

// Modality is the loan type: in-room consultation or take-away.
type Modality string

const (
	ModalityInLibrary Modality = "IN_LIBRARY"
	ModalityHome      Modality = "HOME"
)

// LoanState is the lifecycle state of a loan. NONE is implicit - an asset
// without an active loan simply has no ACTIVE row.
type LoanState string

const (
	LoanStateActive   LoanState = "ACTIVE"
	LoanStateReturned LoanState = "RETURNED"
)

// UpgradeNote is stamped on a loan that was closed automatically because the
// same student upgraded an in-library loan to a home loan.
const UpgradeNote = "returned automatically: upgraded to home loan"

// HomeLoanDuration is how long a take-away loan may run.
const HomeLoanDuration = 48 * time.Hour

// Loan references exactly one asset and one student. DueAt is computed at
// creation time and immutable thereafter. Loans are never deleted - closing
// mutates state and timestamps, prior rows remain as history.
type Loan struct {
	ID         uuid.UUID    `json:"id"`
	AssetID    uuid.UUID    `json:"assetId"`
	StudentID  uuid.UUID    `json:"studentId"`
	Modality   Modality     `json:"modality"`
	State      LoanState    `json:"state"`
	CreatedAt  OccurredAtTS `json:"createdAt"`
	DueAt      OccurredAtTS `json:"dueAt"`
	ReturnedAt *time.Time   `json:"returnedAt,omitempty"`
	Note       string       `json:"note,omitempty"`
}

// BuildLoan creates an ACTIVE loan with its due date computed from the
// modality and creation time.
func BuildLoan(
	id uuid.UUID,
	assetID uuid.UUID,
	studentID uuid.UUID,
	modality Modality,
	createdAt time.Time,
) Loan {

	created := ToOccurredAt(createdAt)

	return Loan{
		ID:        id,
		AssetID:   assetID,
		StudentID: studentID,
		Modality:  modality,
		State:     LoanStateActive,
		CreatedAt: created,
		DueAt:     DueDate(modality, created),
	}
}

// DueDate computes when a loan opened at createdAt falls due.
// HOME loans run for exactly 48 hours. IN_LIBRARY loans end the same calendar
// day at 23:59 in the caller's local time.
func DueDate(modality Modality, createdAt time.Time) time.Time {
	if modality == ModalityHome {
		return createdAt.Add(HomeLoanDuration)
	}

	year, month, day := createdAt.Date()

	return time.Date(year, month, day, 23, 59, 0, 0, createdAt.Location())
}

// IsActive reports whether the loan has not been returned yet.
func (l Loan) IsActive() bool {
	return l.State == LoanStateActive
}

// IsOverdue reports whether an active loan has passed its due date.
func (l Loan) IsOverdue(now time.Time) bool {
	return l.IsActive() && now.After(l.DueAt)
}
