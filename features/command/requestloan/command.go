package requestloan

import (
	"time"

	"github.com/google/uuid"

	"github.com/campuslib/loanledger-go/core"
)

const (
	commandType = "RequestLoan"
)

// StudentLookup identifies the borrower: either an existing student ID, or
// registration data keyed by national ID for auto-registration.
type StudentLookup struct {
	StudentID  uuid.UUID // uuid.Nil means lookup/register by national ID
	NationalID string
	CardNumber string
	FullName   string
	Program    string
	Contact    string
}

// ByStudentID creates a lookup for an already registered student.
func ByStudentID(studentID uuid.UUID) StudentLookup {
	return StudentLookup{
		StudentID: studentID,
	}
}

// ByNationalID creates a lookup that auto-registers the student on first use.
func ByNationalID(nationalID string, cardNumber string, fullName string, program string, contact string) StudentLookup {
	return StudentLookup{
		NationalID: nationalID,
		CardNumber: cardNumber,
		FullName:   fullName,
		Program:    program,
		Contact:    contact,
	}
}

// Command represents the intent to lend an asset to a student.
type Command struct {
	LoanID     uuid.UUID
	AssetID    uuid.UUID
	Student    StudentLookup
	Modality   core.Modality
	Actor      core.ActorString
	OccurredAt core.OccurredAtTS
}

// CommandType returns the type identifier for this command, used for observability and routing.
func (c Command) CommandType() string {
	return commandType
}

// BuildCommand creates a new Command with the provided parameters.
func BuildCommand(
	loanID uuid.UUID,
	assetID uuid.UUID,
	student StudentLookup,
	modality core.Modality,
	actor core.ActorString,
	occurredAt time.Time,
) Command {

	return Command{
		LoanID:     loanID,
		AssetID:    assetID,
		Student:    student,
		Modality:   modality,
		Actor:      actor,
		OccurredAt: core.ToOccurredAt(occurredAt),
	}
}
