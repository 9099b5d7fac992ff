package core_test

import (
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"

	"github.com/campuslib/loanledger-go/core"
)

func Test_DecideRestoreAsset_ReturnsSnapshotContent(t *testing.T) {
	// arrange
	now := time.Now()
	book := givenBook(t, now.Add(-48*time.Hour))

	original := book
	record := core.BuildVersionRecord(book.ID, 1, core.ChangeKindCreate, original, "admin", now.Add(-48*time.Hour))

	book.Title = "Edited Title"
	book.Condition = core.ConditionPoor

	// act
	restored, err := core.DecideRestoreAsset(book, record)

	// assert
	assert.NoError(t, err)
	assert.Equal(t, original.Title, restored.Title)
	assert.Equal(t, original.Condition, restored.Condition)
	assert.Equal(t, book.ID, restored.ID)
}

func Test_DecideRestoreAsset_Error_AcrossVariants(t *testing.T) {
	now := time.Now()
	book := givenBook(t, now.Add(-48*time.Hour))
	thesis := givenThesis(t, now.Add(-48*time.Hour))

	bookRecord := core.BuildVersionRecord(book.ID, 1, core.ChangeKindCreate, book, "admin", now)

	_, err := core.DecideRestoreAsset(thesis, bookRecord)

	assert.ErrorIs(t, err, core.ErrTypeMismatch)
}

func Test_DecideRestoreAsset_ClearsSoftDeletion(t *testing.T) {
	now := time.Now()
	book := givenBook(t, now.Add(-48*time.Hour))
	record := core.BuildVersionRecord(book.ID, 1, core.ChangeKindCreate, book, "admin", now.Add(-48*time.Hour))

	deletedAt := now.Add(-time.Hour)
	book.DeletedAt = &deletedAt

	restored, err := core.DecideRestoreAsset(book, record)

	assert.NoError(t, err)
	assert.Nil(t, restored.DeletedAt)
}

func Test_DecideCloseLoan_SetsReturnedState(t *testing.T) {
	now := time.Now()
	loan := core.BuildLoan(uuid.New(), uuid.New(), uuid.New(), core.ModalityInLibrary, now.Add(-time.Hour))

	closed, err := core.DecideCloseLoan(loan, now)

	assert.NoError(t, err)
	assert.Equal(t, core.LoanStateReturned, closed.State)
	assert.NotNil(t, closed.ReturnedAt)
}

func Test_DecideCloseLoan_Error_WhenAlreadyReturned(t *testing.T) {
	now := time.Now()
	loan := core.BuildLoan(uuid.New(), uuid.New(), uuid.New(), core.ModalityInLibrary, now.Add(-2*time.Hour))

	closed, err := core.DecideCloseLoan(loan, now.Add(-time.Hour))
	assert.NoError(t, err)

	_, err = core.DecideCloseLoan(closed, now)

	assert.ErrorIs(t, err, core.ErrAlreadyReturned)
}

func Test_Asset_ValidateVariant(t *testing.T) {
	now := time.Now()
	book := givenBook(t, now)
	thesis := givenThesis(t, now)

	assert.NoError(t, book.ValidateVariant())
	assert.NoError(t, thesis.ValidateVariant())

	broken := book
	broken.Thesis = thesis.Thesis
	assert.ErrorIs(t, broken.ValidateVariant(), core.ErrInvalidAssetVariant)

	broken = book
	broken.Book = nil
	assert.ErrorIs(t, broken.ValidateVariant(), core.ErrInvalidAssetVariant)
}
