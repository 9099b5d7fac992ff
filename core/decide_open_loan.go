package core

import (
	"time"

	"github.com/google/uuid"
)

// OpenDecision represents the outcome of deciding a loan request.
//
// IMPORTANT: OpenDecision should only be constructed with the factory
// functions OpenedDecision, UpgradedDecision, or RejectedDecision.
type OpenDecision struct {
	Outcome   string // "open", "upgrade", or "rejected"
	Loan      Loan   // the new loan for open/upgrade outcomes
	CloseID   uuid.UUID
	CloseNote string
	Err       error
}

const (
	openOutcome     = "open"
	upgradeOutcome  = "upgrade"
	rejectedOutcome = "rejected"
)

// OpenedDecision creates an OpenDecision that opens a fresh loan.
func OpenedDecision(loan Loan) OpenDecision {
	return OpenDecision{Outcome: openOutcome, Loan: loan}
}

// UpgradedDecision creates an OpenDecision that atomically closes the existing
// in-library loan and opens a home loan for the same student.
func UpgradedDecision(closeID uuid.UUID, closeNote string, loan Loan) OpenDecision {
	return OpenDecision{Outcome: upgradeOutcome, Loan: loan, CloseID: closeID, CloseNote: closeNote}
}

// RejectedDecision creates an OpenDecision carrying a business-rule violation.
func RejectedDecision(err error) OpenDecision {
	return OpenDecision{Outcome: rejectedOutcome, Err: err}
}

// IsUpgrade reports whether the existing loan must be closed first.
func (d OpenDecision) IsUpgrade() bool {
	return d.Outcome == upgradeOutcome
}

// HasError returns the rejection error, or nil for open/upgrade outcomes.
func (d OpenDecision) HasError() error {
	if d.Outcome == rejectedOutcome {
		return d.Err
	}

	return nil
}

// DecideOpenLoan implements the business rules for opening a loan.
// It is a pure function: it takes the asset, the currently active loan for
// that asset (nil when there is none), and the request, and returns the
// decision.
//
// Business rules:
//
//	GIVEN: an asset and an optional active loan
//	WHEN: a student requests the asset under a modality
//	THEN: a new ACTIVE loan with a computed due date
//	ERROR: ErrNotFound if the asset is soft-deleted
//	ERROR: ErrModalityForbidden if the asset is a thesis and modality is HOME
//	       (this rule dominates the same-student upgrade)
//	ERROR: ErrAssetUnavailable if another active loan exists, unless the
//	       existing loan is IN_LIBRARY for the same student and the request is
//	       HOME - then the old loan is closed with UpgradeNote and a new HOME
//	       loan is opened in the same operation
func DecideOpenLoan(
	asset Asset,
	active *Loan,
	loanID uuid.UUID,
	studentID uuid.UUID,
	modality Modality,
	occurredAt time.Time,
) OpenDecision {

	if asset.IsDeleted() {
		return RejectedDecision(ErrNotFound)
	}

	if asset.Kind == AssetKindThesis && modality == ModalityHome {
		return RejectedDecision(ErrModalityForbidden)
	}

	if active == nil {
		return OpenedDecision(BuildLoan(loanID, asset.ID, studentID, modality, occurredAt))
	}

	sameStudent := active.StudentID == studentID
	if sameStudent && active.Modality == ModalityInLibrary && modality == ModalityHome {
		return UpgradedDecision(
			active.ID,
			UpgradeNote,
			BuildLoan(loanID, asset.ID, studentID, modality, occurredAt))
	}

	return RejectedDecision(ErrAssetUnavailable)
}
