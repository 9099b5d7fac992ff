package removeasset_test

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
	"github.com/campuslib/loanledger-go/features/query/assethistory"
	"github.com/campuslib/loanledger-go/features/query/getasset"
	"github.com/campuslib/loanledger-go/testutil/memstore"
)

func Test_CommandHandler_Handle_Success_AssetIsSoftDeleted(t *testing.T) {
	// setup
	ctx := context.Background()
	storage := memstore.New()

	fakeClock := time.Date(2024, time.March, 4, 10, 0, 0, 0, time.UTC)
	assetID := givenThesis(ctx, t, storage, fakeClock)

	// act
	command := removeasset.BuildCommand(assetID, "staff:catalog", fakeClock.Add(time.Hour))
	err := removeasset.NewCommandHandler(storage).Handle(ctx, command)

	// assert
	require.NoError(t, err)

	_, getErr := getasset.NewQueryHandler(storage).Handle(ctx, getasset.BuildQuery(assetID))
	assert.ErrorIs(t, getErr, core.ErrNotFound, "Soft-deleted asset is invisible to reads")

	history, historyErr := assethistory.NewQueryHandler(storage).Handle(ctx, assethistory.BuildQuery(assetID, 0))
	require.NoError(t, historyErr, "History stays readable after deletion")
	require.Equal(t, 2, history.Count)
	assert.Equal(t, core.ChangeKindDelete, history.Records[0].Kind)
	assert.True(t, history.Records[0].Snapshot.IsDeleted())
	assert.Equal(t, core.ChangeKindCreate, history.Records[1].Kind)
}

func Test_CommandHandler_Handle_Error_AlreadyDeleted(t *testing.T) {
	// setup
	ctx := context.Background()
	storage := memstore.New()

	fakeClock := time.Date(2024, time.March, 4, 10, 0, 0, 0, time.UTC)
	assetID := givenThesis(ctx, t, storage, fakeClock)

	command := removeasset.BuildCommand(assetID, "staff:catalog", fakeClock.Add(time.Hour))
	require.NoError(t, removeasset.NewCommandHandler(storage).Handle(ctx, command))

	// act
	err := removeasset.NewCommandHandler(storage).Handle(ctx, command)

	// assert
	assert.ErrorIs(t, err, core.ErrNotFound)
}

func Test_CommandHandler_Handle_Error_UnknownAsset(t *testing.T) {
	// setup
	ctx := context.Background()
	storage := memstore.New()

	// act
	command := removeasset.BuildCommand(uuid.New(), "staff:catalog", time.Now())
	err := removeasset.NewCommandHandler(storage).Handle(ctx, command)

	// assert
	assert.ErrorIs(t, err, core.ErrNotFound)
}

func givenThesis(ctx context.Context, t *testing.T, storage *memstore.MemStore, at time.Time) uuid.UUID {
	t.Helper()

	assetID := uuid.New()
	year := 2022

	command := createasset.BuildThesisCommand(
		assetID,
		nil,
		"Modelos de Predicción de Demanda Bibliotecaria",
		"M. Fernández",
		&year,
		core.ConditionGood,
		core.ShelfLocation{Section: "T", Shelf: "1"},
		core.ThesisDetails{Advisor: "Dr. Ruiz", Program: "Ingeniería", DegreeType: "Licenciatura"},
		"staff:catalog",
		at,
	)

	require.NoError(t, createasset.NewCommandHandler(storage).Handle(ctx, command))

	return assetID
}
