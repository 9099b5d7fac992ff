package restoreasset_test

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/campuslib/loanledger-go/core"
	"github.com/campuslib/loanledger-go/features/command/createasset"
	"github.com/campuslib/loanledger-go/features/command/removeasset"
	"github.com/campuslib/loanledger-go/features/command/restoreasset"
	"github.com/campuslib/loanledger-go/features/command/updateasset"
	"github.com/campuslib/loanledger-go/features/query/assethistory"
	"github.com/campuslib/loanledger-go/features/query/getasset"
	"github.com/campuslib/loanledger-go/testutil/memstore"
)

func Test_CommandHandler_Handle_RoundTrip_RestoreToVersionOne(t *testing.T) {
	// setup
	ctx := context.Background()
	storage := memstore.New()

	fakeClock := time.Date(2024, time.March, 4, 10, 0, 0, 0, time.UTC)
	assetID := givenBook(ctx, t, storage, fakeClock)

	updateHandler := updateasset.NewCommandHandler(storage)
	for i, title := range []string{"Primera Edición Corregida", "Segunda Edición Corregida"} {
		command := updateasset.BuildCommand(
			assetID, nil, title, "Cormen", nil,
			core.ConditionFair, core.ShelfLocation{Section: "A", Shelf: "4"}, "",
			"staff:catalog", fakeClock.Add(time.Duration(i+1)*time.Hour))
		require.NoError(t, updateHandler.Handle(ctx, command))
	}

	// act: restore to the CREATE snapshot
	restoreCommand := restoreasset.BuildCommand(assetID, 1, "staff:catalog", fakeClock.Add(5*time.Hour))
	err := restoreasset.NewCommandHandler(storage).Handle(ctx, restoreCommand)

	// assert
	require.NoError(t, err, "Should restore to version 1")

	history, historyErr := assethistory.NewQueryHandler(storage).Handle(ctx, assethistory.BuildQuery(assetID, 0))
	require.NoError(t, historyErr)
	require.Equal(t, 4, history.Count, "create, update, update, restore")

	restoredVersion := history.Records[0]
	originalVersion := history.Records[3]
	assert.Equal(t, uint(4), restoredVersion.Sequence)
	assert.Equal(t, uint(1), originalVersion.Sequence)
	assert.Equal(t, core.ChangeKindCreate, originalVersion.Kind, "Prior versions stay untouched")
	assert.Equal(t, originalVersion.Snapshot.Title, restoredVersion.Snapshot.Title)
	assert.Equal(t, originalVersion.Snapshot.Condition, restoredVersion.Snapshot.Condition)

	details, getErr := getasset.NewQueryHandler(storage).Handle(ctx, getasset.BuildQuery(assetID))
	require.NoError(t, getErr)
	assert.Equal(t, originalVersion.Snapshot.Title, details.Asset.Title, "Live state equals the version-1 snapshot")
	assert.Equal(t, uint(4), details.CurrentVersion)
}

func Test_CommandHandler_Handle_RestoreUndeletesSoftDeletedAsset(t *testing.T) {
	// setup
	ctx := context.Background()
	storage := memstore.New()

	fakeClock := time.Date(2024, time.March, 4, 10, 0, 0, 0, time.UTC)
	assetID := givenBook(ctx, t, storage, fakeClock)

	removeCommand := removeasset.BuildCommand(assetID, "staff:catalog", fakeClock.Add(time.Hour))
	require.NoError(t, removeasset.NewCommandHandler(storage).Handle(ctx, removeCommand))

	_, getErr := getasset.NewQueryHandler(storage).Handle(ctx, getasset.BuildQuery(assetID))
	require.ErrorIs(t, getErr, core.ErrNotFound, "Soft-deleted asset is invisible to reads")

	// act
	restoreCommand := restoreasset.BuildCommand(assetID, 1, "staff:catalog", fakeClock.Add(2*time.Hour))
	err := restoreasset.NewCommandHandler(storage).Handle(ctx, restoreCommand)

	// assert
	require.NoError(t, err, "Restore is the undelete path")

	details, getErr := getasset.NewQueryHandler(storage).Handle(ctx, getasset.BuildQuery(assetID))
	require.NoError(t, getErr)
	assert.False(t, details.Asset.IsDeleted())
	assert.Equal(t, uint(3), details.CurrentVersion, "create, delete, restore")
}

func Test_CommandHandler_Handle_Error_UnknownVersion(t *testing.T) {
	// setup
	ctx := context.Background()
	storage := memstore.New()

	fakeClock := time.Date(2024, time.March, 4, 10, 0, 0, 0, time.UTC)
	assetID := givenBook(ctx, t, storage, fakeClock)

	// act
	command := restoreasset.BuildCommand(assetID, 42, "staff:catalog", fakeClock.Add(time.Hour))
	err := restoreasset.NewCommandHandler(storage).Handle(ctx, command)

	// assert
	assert.ErrorIs(t, err, core.ErrNotFound)
}

func givenBook(ctx context.Context, t *testing.T, storage *memstore.MemStore, at time.Time) uuid.UUID {
	t.Helper()

	assetID := uuid.New()
	year := 2009

	command := createasset.BuildBookCommand(
		assetID,
		nil,
		"Introducción a los Algoritmos",
		"Cormen",
		&year,
		core.ConditionGood,
		core.ShelfLocation{Section: "A", Shelf: "3"},
		core.BookDetails{Publisher: "MIT Press", Edition: "3rd", Subject: "Algorithms"},
		"staff:catalog",
		at,
	)

	require.NoError(t, createasset.NewCommandHandler(storage).Handle(ctx, command))

	return assetID
}
