package postgresengine_test

import (
	"context"
	"database/sql"
	"fmt"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/campuslib/loanledger-go/config"
	"github.com/campuslib/loanledger-go/core"
	"github.com/campuslib/loanledger-go/migrations"
	"github.com/campuslib/loanledger-go/postgresengine"
	"github.com/campuslib/loanledger-go/shell"
	"github.com/campuslib/loanledger-go/store"
)

func Test_Engine_AssetRoundTrip_WithVersionTrail(t *testing.T) {
	// setup
	ctx := context.Background()
	engine := newTestEngine(t, ctx)
	assetID := givenUniqueID(t)
	book := givenBookAsset(t, assetID)

	row, err := shell.AssetRowFrom(book, 1)
	require.NoError(t, err)

	versionRow, err := shell.VersionRowFrom(
		core.BuildVersionRecord(assetID, 1, core.ChangeKindCreate, book, "librarian", time.Now()),
	)
	require.NoError(t, err)

	// act
	insertErr := engine.InsertAssetWithVersion(ctx, row, versionRow)

	// assert
	require.NoError(t, insertErr)

	stored, getErr := engine.GetAsset(ctx, assetID)
	require.NoError(t, getErr)
	assert.Equal(t, assetID, stored.ID)
	assert.Equal(t, uint(1), stored.CurrentVersion)
	assert.Nil(t, stored.DeletedAt)

	restored, currentVersion, codecErr := shell.AssetFromRow(stored)
	require.NoError(t, codecErr)
	assert.Equal(t, uint(1), currentVersion)
	assert.Equal(t, book.Title, restored.Title)

	trail, historyErr := engine.AssetHistory(ctx, assetID, 0)
	require.NoError(t, historyErr)
	require.Len(t, trail, 1)
	assert.Equal(t, uint(1), trail[0].Sequence)
	assert.Equal(t, string(core.ChangeKindCreate), trail[0].Kind)
}

func Test_Engine_UpdateAssetWithVersion_StaleExpectedVersionConflicts(t *testing.T) {
	// setup
	ctx := context.Background()
	engine := newTestEngine(t, ctx)
	assetID := givenUniqueID(t)
	book := givenBookAsset(t, assetID)
	givenAssetWasInserted(t, ctx, engine, book)

	updated := book
	updated.Title = "Learning Domain-Driven Design, 2nd"

	secondRow, err := shell.VersionRowFrom(
		core.BuildVersionRecord(assetID, 2, core.ChangeKindUpdate, updated, "librarian", time.Now()),
	)
	require.NoError(t, err)

	assetRow, err := shell.AssetRowFrom(updated, 2)
	require.NoError(t, err)

	// act
	firstErr := engine.UpdateAssetWithVersion(ctx, assetRow, secondRow, 1)
	staleErr := engine.UpdateAssetWithVersion(ctx, assetRow, secondRow, 1)

	// assert
	require.NoError(t, firstErr)
	assert.ErrorIs(t, staleErr, store.ErrConcurrencyConflict)
}

func Test_Engine_OpenLoan_SecondOpenForSameAssetConflicts(t *testing.T) {
	// setup
	ctx := context.Background()
	engine := newTestEngine(t, ctx)
	assetID := givenUniqueID(t)
	book := givenBookAsset(t, assetID)
	givenAssetWasInserted(t, ctx, engine, book)
	student := givenStudentWasInserted(t, ctx, engine)
	otherStudent := givenStudentWasInserted(t, ctx, engine)

	firstLoan := core.BuildLoan(givenUniqueID(t), assetID, student.ID, core.ModalityHome, time.Now())
	secondLoan := core.BuildLoan(givenUniqueID(t), assetID, otherStudent.ID, core.ModalityHome, time.Now())

	// act
	firstErr := engine.OpenLoan(ctx, firstLoan)
	secondErr := engine.OpenLoan(ctx, secondLoan)

	// assert
	require.NoError(t, firstErr)
	assert.ErrorIs(t, secondErr, store.ErrConcurrencyConflict)

	active, findErr := engine.FindActiveLoanForAsset(ctx, assetID)
	require.NoError(t, findErr)
	assert.Equal(t, firstLoan.ID, active.ID)
}

func Test_Engine_CloseLoan_FreesTheAssetForTheNextOpen(t *testing.T) {
	// setup
	ctx := context.Background()
	engine := newTestEngine(t, ctx)
	assetID := givenUniqueID(t)
	book := givenBookAsset(t, assetID)
	givenAssetWasInserted(t, ctx, engine, book)
	student := givenStudentWasInserted(t, ctx, engine)

	loan := core.BuildLoan(givenUniqueID(t), assetID, student.ID, core.ModalityInLibrary, time.Now())
	require.NoError(t, engine.OpenLoan(ctx, loan))

	// act
	closeErr := engine.CloseLoan(ctx, loan.ID, "returned at the desk", time.Now())
	nextLoan := core.BuildLoan(givenUniqueID(t), assetID, student.ID, core.ModalityHome, time.Now())
	reopenErr := engine.OpenLoan(ctx, nextLoan)

	// assert
	require.NoError(t, closeErr)
	require.NoError(t, reopenErr)

	closed, getErr := engine.GetLoan(ctx, loan.ID)
	require.NoError(t, getErr)
	assert.Equal(t, core.LoanStateReturned, closed.State)
	require.NotNil(t, closed.ReturnedAt)
	assert.Equal(t, "returned at the desk", closed.Note)
}

func Test_Engine_InsertStudent_DuplicateNationalIDIsRejected(t *testing.T) {
	// setup
	ctx := context.Background()
	engine := newTestEngine(t, ctx)
	student := givenStudentWasInserted(t, ctx, engine)

	duplicate, err := core.BuildStudent(
		givenUniqueID(t), student.NationalID, "", "Walter Sobchak", "", "", time.Now())
	require.NoError(t, err)

	// act
	insertErr := engine.InsertStudent(ctx, duplicate)

	// assert
	assert.ErrorIs(t, insertErr, store.ErrDuplicateKey)
}

/*** test helpers ***/

func newTestEngine(t testing.TB, ctx context.Context) postgresengine.Engine {
	t.Helper()

	dsn := config.PostgresTestDSN()

	pingCtx, cancel := context.WithTimeout(ctx, 2*time.Second)
	defer cancel()

	pool, err := pgxpool.New(pingCtx, dsn)
	if err != nil {
		t.Skipf("test database not configured: %v", err)
	}

	if err := pool.Ping(pingCtx); err != nil {
		pool.Close()
		t.Skipf("test database not reachable: %v", err)
	}

	t.Cleanup(pool.Close)

	migrateTestDatabase(t, ctx, dsn)

	engine, err := postgresengine.NewEngineFromPGXPool(pool)
	require.NoError(t, err, "error in arranging test database")

	return engine
}

func migrateTestDatabase(t testing.TB, ctx context.Context, dsn string) {
	t.Helper()

	db, err := sql.Open("postgres", dsn)
	require.NoError(t, err, "error in arranging test database")

	defer func() { _ = db.Close() }()

	require.NoError(t, migrations.Up(ctx, db), "error in arranging test database")
}

func givenUniqueID(t testing.TB) uuid.UUID {
	id, err := uuid.NewV7()
	require.NoError(t, err, "error in arranging test data")

	return id
}

func givenBookAsset(t testing.TB, assetID uuid.UUID) core.Asset {
	t.Helper()

	code := "IT-" + assetID.String()[:13]
	year := 2021

	book, err := core.BuildBook(
		assetID,
		&code,
		"Learning Domain-Driven Design",
		"Vlad Khononov",
		&year,
		core.ConditionGood,
		core.ShelfLocation{},
		core.BookDetails{Publisher: "O'Reilly Media, Inc.", Edition: "First Edition"},
		time.Now(),
	)
	require.NoError(t, err, "error in arranging test data")

	return book
}

func givenAssetWasInserted(t testing.TB, ctx context.Context, engine postgresengine.Engine, asset core.Asset) {
	t.Helper()

	row, err := shell.AssetRowFrom(asset, 1)
	require.NoError(t, err, "error in arranging test data")

	versionRow, err := shell.VersionRowFrom(
		core.BuildVersionRecord(asset.ID, 1, core.ChangeKindCreate, asset, "librarian", time.Now()),
	)
	require.NoError(t, err, "error in arranging test data")

	require.NoError(t, engine.InsertAssetWithVersion(ctx, row, versionRow), "error in arranging test data")
}

func givenStudentWasInserted(t testing.TB, ctx context.Context, engine postgresengine.Engine) core.Student {
	t.Helper()

	id := givenUniqueID(t)

	student, err := core.BuildStudent(
		id,
		fmt.Sprintf("NID-%s", id),
		fmt.Sprintf("CARD-%s", id),
		"Jeffrey Lebowski",
		"Philosophy",
		"dude@example.edu",
		time.Now(),
	)
	require.NoError(t, err, "error in arranging test data")

	require.NoError(t, engine.InsertStudent(ctx, student), "error in arranging test data")

	return student
}
