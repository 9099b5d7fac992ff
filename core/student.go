package core

import (
	"errors"

	"github.com/google/uuid"
)

// Student is a registered borrower. CardNumber (university ID card) and
// NationalID are both unique. Students are created explicitly or auto-registered
// on the first loan request referencing an unknown national ID, and are never
// deleted while loan history references them.
type Student struct {
	ID           uuid.UUID    `json:"id"`
	NationalID   string       `json:"nationalId"`
	CardNumber   string       `json:"cardNumber"`
	FullName     string       `json:"fullName"`
	Program      string       `json:"program,omitempty"`
	Contact      string       `json:"contact,omitempty"`
	RegisteredAt OccurredAtTS `json:"registeredAt"`
}

var (
	// ErrEmptyStudentName is returned when registering a student without a name.
	ErrEmptyStudentName = errors.New("student full name must not be empty")

	// ErrEmptyNationalID is returned when registering a student without a
	// national ID.
	ErrEmptyNationalID = errors.New("student national ID must not be empty")
)

// BuildStudent creates a Student.
func BuildStudent(
	id uuid.UUID,
	nationalID string,
	cardNumber string,
	fullName string,
	program string,
	contact string,
	registeredAt OccurredAtTS,
) (Student, error) {

	if fullName == "" {
		return Student{}, ErrEmptyStudentName
	}

	if nationalID == "" {
		return Student{}, ErrEmptyNationalID
	}

	return Student{
		ID:           id,
		NationalID:   nationalID,
		CardNumber:   cardNumber,
		FullName:     fullName,
		Program:      program,
		Contact:      contact,
		RegisteredAt: ToOccurredAt(registeredAt),
	}, nil
}
