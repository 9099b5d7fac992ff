package activeloans_test

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/campuslib/loanledger-go/core"
	"github.com/campuslib/loanledger-go/features/query/activeloans"
	"github.com/campuslib/loanledger-go/testutil/memstore"
)

func Test_QueryHandler_Handle_ListsActiveLoansSoonestDueFirst(t *testing.T) {
	// setup
	ctx := context.Background()
	storage := memstore.New()
	handler := activeloans.NewQueryHandler(storage)

	fakeClock := time.Date(2024, time.March, 4, 10, 0, 0, 0, time.UTC)

	homeLoan := core.BuildLoan(uuid.New(), uuid.New(), uuid.New(), core.ModalityHome, fakeClock)
	inLibraryLoan := core.BuildLoan(uuid.New(), uuid.New(), uuid.New(), core.ModalityInLibrary, fakeClock)
	returnedLoan := core.BuildLoan(uuid.New(), uuid.New(), uuid.New(), core.ModalityHome, fakeClock)

	require.NoError(t, storage.OpenLoan(ctx, homeLoan))
	require.NoError(t, storage.OpenLoan(ctx, inLibraryLoan))
	require.NoError(t, storage.OpenLoan(ctx, returnedLoan))
	require.NoError(t, storage.CloseLoan(ctx, returnedLoan.ID, "", fakeClock.Add(time.Hour)))

	// act: query the evening of the same day, the in-library loan is not yet due
	result, err := handler.Handle(ctx, activeloans.BuildQuery(fakeClock.Add(8*time.Hour)))

	// assert
	require.NoError(t, err)
	require.Equal(t, 2, result.Count, "Returned loans are not listed")
	assert.Equal(t, inLibraryLoan.ID, result.Loans[0].Loan.ID, "In-library due 23:59 today comes before home due in 48h")
	assert.False(t, result.Loans[0].Overdue)
	assert.False(t, result.Loans[1].Overdue)

	// act: query two days later, both would be overdue but only active ones are listed
	result, err = handler.Handle(ctx, activeloans.BuildQuery(fakeClock.Add(72*time.Hour)))

	// assert
	require.NoError(t, err)
	assert.True(t, result.Loans[0].Overdue)
	assert.True(t, result.Loans[1].Overdue)
}
