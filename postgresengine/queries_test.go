package postgresengine

import (
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/campuslib/loanledger-go/core"
	"github.com/campuslib/loanledger-go/store"
)

func Test_BuildOpenLoanQuery_GuardsOnActiveCount(t *testing.T) {
	engine := Engine{}

	loan := core.BuildLoan(
		uuid.New(), uuid.New(), uuid.New(),
		core.ModalityHome,
		time.Date(2024, time.March, 4, 10, 0, 0, 0, time.UTC))

	sqlQuery, err := engine.buildOpenLoanQuery(loan)
	require.NoError(t, err)

	assert.Contains(t, sqlQuery, `WITH "guard" AS`)
	assert.Contains(t, sqlQuery, `INSERT INTO "loans"`)
	assert.Contains(t, sqlQuery, `COUNT(*) AS "active_count"`)
	assert.Contains(t, sqlQuery, `"active_count" = 0`)
	assert.Contains(t, sqlQuery, loan.ID.String())
	assert.Contains(t, sqlQuery, loan.AssetID.String())
	assert.Contains(t, sqlQuery, string(core.ModalityHome))
	assert.Contains(t, sqlQuery, string(core.LoanStateActive))
	assert.NotContains(t, sqlQuery, "$1", "queries are fully interpolated, adapters receive no args")
}

func Test_BuildCloseLoanQuery_ConditionalOnActiveState(t *testing.T) {
	engine := Engine{}

	loanID := uuid.New()
	returnedAt := time.Date(2024, time.March, 4, 13, 0, 0, 0, time.UTC)

	sqlQuery, err := engine.buildCloseLoanQuery(loanID, "returned at counter", returnedAt)
	require.NoError(t, err)

	assert.Contains(t, sqlQuery, `UPDATE "loans"`)
	assert.Contains(t, sqlQuery, `'RETURNED'`)
	assert.Contains(t, sqlQuery, `"state" = 'ACTIVE'`)
	assert.Contains(t, sqlQuery, loanID.String())
	assert.Contains(t, sqlQuery, "returned at counter")
}

func Test_BuildCloseLoanQuery_OmitsNoteWhenEmpty(t *testing.T) {
	engine := Engine{}

	sqlQuery, err := engine.buildCloseLoanQuery(uuid.New(), "", time.Now())
	require.NoError(t, err)

	assert.NotContains(t, sqlQuery, `"note"`, "an empty note must not wipe the stored one")
}

func Test_BuildInsertVersionQuery_CarriesIdentityAndSnapshot(t *testing.T) {
	engine := Engine{}

	assetID := uuid.New()
	row := store.VersionRow{
		AssetID:    assetID,
		Sequence:   3,
		Kind:       string(core.ChangeKindUpdate),
		Snapshot:   []byte(`{"id":"x","kind":"BOOK"}`),
		Actor:      "staff:catalog",
		OccurredAt: time.Date(2024, time.March, 4, 10, 0, 0, 0, time.UTC),
	}

	sqlQuery, err := engine.buildInsertVersionQuery(row)
	require.NoError(t, err)

	assert.Contains(t, sqlQuery, `INSERT INTO "asset_versions"`)
	assert.Contains(t, sqlQuery, assetID.String())
	assert.Contains(t, sqlQuery, "3")
	assert.Contains(t, sqlQuery, "UPDATE")
	assert.Contains(t, sqlQuery, "staff:catalog")
}
