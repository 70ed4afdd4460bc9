package ledger

import (
	"context"
	"testing"
	"time"

	"github.com/centavo/centavo/internal/test_utils"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func setupTestRepository(t *testing.T) (context.Context, LedgerRepo) {
	return context.Background(), NewLedgerRepo(test_utils.SetupTestDB(t))
}

func TestLedgerRepoImpl_StoreAndGetAll(t *testing.T) {
	// given
	ctx, repo := setupTestRepository(t)
	transaction := ManualTransaction{
		Amount:      3.25,
		OccurredAt:  time.Date(2024, 3, 7, 0, 0, 0, 0, time.UTC),
		Description: "tacos",
	}

	// when
	id, err := repo.Store(ctx, transaction)
	require.NoError(t, err)

	// then
	stored, err := repo.GetAll(ctx)
	require.NoError(t, err)
	require.Len(t, stored, 1)
	assert.Equal(t, id, stored[0].ID)
	assert.Equal(t, 3.25, stored[0].Amount)
	assert.True(t, transaction.OccurredAt.Equal(stored[0].OccurredAt))
	assert.Equal(t, "tacos", stored[0].Description)
}

func TestLedgerRepoImpl_IdsAreMonotonic(t *testing.T) {
	// given
	ctx, repo := setupTestRepository(t)

	// when
	firstId, err := repo.Store(ctx, ManualTransaction{Amount: 1, OccurredAt: time.Now().UTC(), Description: "first"})
	require.NoError(t, err)
	secondId, err := repo.Store(ctx, ManualTransaction{Amount: 2, OccurredAt: time.Now().UTC(), Description: "second"})
	require.NoError(t, err)

	// then
	assert.Greater(t, secondId, firstId)
}

func TestLedgerRepoImpl_Delete(t *testing.T) {
	// given
	ctx, repo := setupTestRepository(t)
	id, err := repo.Store(ctx, ManualTransaction{Amount: 1, OccurredAt: time.Now().UTC(), Description: "first"})
	require.NoError(t, err)

	// when
	ok, err := repo.Delete(ctx, id)

	// then
	require.NoError(t, err)
	assert.True(t, ok)

	// and deleting again reports false
	ok, err = repo.Delete(ctx, id)
	require.NoError(t, err)
	assert.False(t, ok)
}
