package postgresengine

import (
	"context"

	"github.com/doug-martin/goqu/v9"
	"github.com/google/uuid"

	"github.com/campuslib/loanledger-go/core"
	"github.com/campuslib/loanledger-go/postgresengine/internal/adapters"
)

const (
	colStudentID           = "id"
	colStudentNationalID   = "national_id"
	colStudentCardNumber   = "card_number"
	colStudentFullName     = "full_name"
	colStudentProgram      = "program"
	colStudentContact      = "contact"
	colStudentRegisteredAt = "registered_at"

	logActionGetStudent     = "get student"
	logActionFindStudent    = "find student by national id"
	logActionInsertStudent  = "insert student"
	logMsgStudentRegistered = "student registered"
)

// GetStudent loads one student by ID. An unknown ID yields core.ErrNotFound.
func (e Engine) GetStudent(ctx context.Context, studentID uuid.UUID) (core.Student, error) {
	selectStmt := e.buildStudentSelect().
		Where(goqu.Ex{colStudentID: studentID})

	return e.queryOneStudent(ctx, logActionGetStudent, selectStmt)
}

// FindStudentByNationalID loads one student by their national ID. An unknown
// national ID yields core.ErrNotFound; the loan request coordinator takes
// that as the signal to auto-register.
func (e Engine) FindStudentByNationalID(ctx context.Context, nationalID string) (core.Student, error) {
	selectStmt := e.buildStudentSelect().
		Where(goqu.Ex{colStudentNationalID: nationalID})

	return e.queryOneStudent(ctx, logActionFindStudent, selectStmt)
}

// InsertStudent registers a student. A national ID or card number that is
// already taken yields store.ErrDuplicateKey.
func (e Engine) InsertStudent(ctx context.Context, student core.Student) error {
	insertStmt := e.builder().
		Insert(tableStudents).
		Rows(goqu.Record{
			colStudentID:           student.ID,
			colStudentNationalID:   student.NationalID,
			colStudentCardNumber:   student.CardNumber,
			colStudentFullName:     student.FullName,
			colStudentProgram:      student.Program,
			colStudentContact:      student.Contact,
			colStudentRegisteredAt: student.RegisteredAt,
		})

	sqlQuery, _, toSQLErr := insertStmt.ToSQL()
	if toSQLErr != nil {
		return e.buildError(toSQLErr)
	}

	if _, _, execErr := e.executeExec(ctx, logActionInsertStudent, sqlQuery); execErr != nil {
		return e.classifyDuplicate(execErr)
	}

	e.logOperation(logMsgStudentRegistered, logAttrStudentID, student.ID.String())

	return nil
}

func (e Engine) buildStudentSelect() *goqu.SelectDataset {
	return e.builder().
		From(tableStudents).
		Select(
			colStudentID,
			colStudentNationalID,
			colStudentCardNumber,
			colStudentFullName,
			colStudentProgram,
			colStudentContact,
			colStudentRegisteredAt,
		)
}

func (e Engine) queryOneStudent(ctx context.Context, action string, selectStmt *goqu.SelectDataset) (core.Student, error) {
	var empty core.Student

	sqlQuery, _, toSQLErr := selectStmt.ToSQL()
	if toSQLErr != nil {
		return empty, e.buildError(toSQLErr)
	}

	rows, _, queryErr := e.executeQuery(ctx, action, sqlQuery)
	if queryErr != nil {
		return empty, queryErr
	}
	defer e.closeRows(rows)

	if !rows.Next() {
		return empty, core.ErrNotFound
	}

	return e.scanStudentRow(rows)
}

func (e Engine) scanStudentRow(rows adapters.DBRows) (core.Student, error) {
	var student core.Student

	scanErr := rows.Scan(
		&student.ID,
		&student.NationalID,
		&student.CardNumber,
		&student.FullName,
		&student.Program,
		&student.Contact,
		&student.RegisteredAt,
	)
	if scanErr != nil {
		return core.Student{}, e.scanError(scanErr)
	}

	return student, nil
}
