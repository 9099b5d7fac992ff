package updateasset_test

import (
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/campuslib/loanledger-go/core"
	"github.com/campuslib/loanledger-go/features/command/updateasset"
)

func Test_Decide_Success_ReplacesMutableFieldsAndKeepsKind(t *testing.T) {
	// setup
	current := givenBook(t)

	year := 2015
	code := "CPU-0099"
	command := updateasset.BuildCommand(
		current.ID, &code, "Algoritmos, Edición Revisada", "Cormen et al.", &year,
		core.ConditionFair, core.ShelfLocation{Section: "B", Shelf: "1"}, "reencuadernado",
		"staff:catalog", time.Now())

	// act
	updated, err := updateasset.Decide(current, command)

	// assert
	require.NoError(t, err)
	assert.Equal(t, current.ID, updated.ID)
	assert.Equal(t, core.AssetKindBook, updated.Kind)
	assert.Equal(t, "Algoritmos, Edición Revisada", updated.Title)
	assert.Equal(t, core.ConditionFair, updated.Condition)
	assert.Equal(t, "reencuadernado", updated.Notes)
	assert.Equal(t, current.Book, updated.Book, "Details stay when the command carries none")
	assert.Equal(t, current.RegisteredAt, updated.RegisteredAt)
}

func Test_Decide_Success_ReplacesBookDetailsWhenProvided(t *testing.T) {
	// setup
	current := givenBook(t)

	command := updateasset.BuildCommand(
		current.ID, nil, current.Title, current.Author, current.Year,
		current.Condition, current.Location, "",
		"staff:catalog", time.Now()).
		WithBookDetails(core.BookDetails{Publisher: "Pearson", Edition: "4th", Subject: "Algorithms"})

	// act
	updated, err := updateasset.Decide(current, command)

	// assert
	require.NoError(t, err)
	assert.Equal(t, "Pearson", updated.Book.Publisher)
	assert.Equal(t, "4th", updated.Book.Edition)
}

func Test_Decide_Error_TypeMismatch_When_ThesisDetailsOnBook(t *testing.T) {
	// setup
	current := givenBook(t)

	command := updateasset.BuildCommand(
		current.ID, nil, current.Title, current.Author, nil,
		current.Condition, current.Location, "",
		"staff:catalog", time.Now()).
		WithThesisDetails(core.ThesisDetails{Advisor: "Dr. Rojas"})

	// act
	_, err := updateasset.Decide(current, command)

	// assert
	assert.ErrorIs(t, err, core.ErrTypeMismatch)
}

func Test_Decide_Error_NotFound_When_AssetSoftDeleted(t *testing.T) {
	// setup
	current := givenBook(t)
	deletedAt := time.Now()
	current.DeletedAt = &deletedAt

	command := updateasset.BuildCommand(
		current.ID, nil, current.Title, current.Author, nil,
		current.Condition, current.Location, "",
		"staff:catalog", time.Now())

	// act
	_, err := updateasset.Decide(current, command)

	// assert
	assert.ErrorIs(t, err, core.ErrNotFound)
}

func givenBook(t *testing.T) core.Asset {
	t.Helper()

	year := 2009
	asset, err := core.BuildBook(
		uuid.New(), nil, "Introducción a los Algoritmos", "Cormen", &year,
		core.ConditionGood, core.ShelfLocation{Section: "A", Shelf: "3"},
		core.BookDetails{Publisher: "MIT Press", Edition: "3rd", Subject: "Algorithms"},
		time.Date(2024, time.March, 4, 10, 0, 0, 0, time.UTC))
	require.NoError(t, err)

	return asset
}
