package budget

import (
	"context"
	"testing"
	"time"

	"github.com/centavo/centavo/internal/event_bus"
	"github.com/centavo/centavo/internal/utils"
	"github.com/centavo/centavo/pkg/period"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var budgetRepoStub = NewStubBudgetRepo()

var service BudgetService

// Wednesday
var testNow = time.Date(2024, 3, 6, 15, 0, 0, 0, time.UTC)

func setup(t *testing.T) func() {
	clock := &utils.MockClock{FixedNow: testNow}
	service = NewBudgetService(budgetRepoStub, clock, time.UTC, event_bus.NewEventBus())
	return func() {
		t.Log("Teardown after test")
		budgetRepoStub.Cleanup()
	}
}

func TestBudgetService_Create(t *testing.T) {
	t.Run("should create a budget with the current weekly window", func(t *testing.T) {
		teardown := setup(t)
		defer teardown()

		// when
		created, err := service.Create(context.Background(), "Groceries", 1500, period.Weekly)

		// then
		require.NoError(t, err)
		assert.Equal(t, "Groceries", created.Name)
		assert.Equal(t, 1500.0, created.TargetAmount)
		assert.True(t, created.WindowStart.Equal(time.Date(2024, 3, 4, 0, 0, 0, 0, time.UTC)))
		assert.True(t, created.WindowEnd.Equal(time.Date(2024, 3, 10, 23, 59, 59, 999999000, time.UTC)))
		assert.NotZero(t, created.ID)
	})

	t.Run("should reject a non-positive target amount", func(t *testing.T) {
		teardown := setup(t)
		defer teardown()

		// when
		_, err := service.Create(context.Background(), "Groceries", 0, period.Weekly)

		// then
		assert.ErrorIs(t, err, ErrInvalidTargetAmount)
	})

	t.Run("should reject an empty name", func(t *testing.T) {
		teardown := setup(t)
		defer teardown()

		// when
		_, err := service.Create(context.Background(), "   ", 100, period.Daily)

		// then
		assert.ErrorIs(t, err, ErrEmptyName)
	})

	t.Run("should reject an unknown period kind", func(t *testing.T) {
		teardown := setup(t)
		defer teardown()

		// when
		_, err := service.Create(context.Background(), "Groceries", 100, period.Kind("yearly"))

		// then
		assert.ErrorIs(t, err, period.ErrInvalidPeriod)
	})

	t.Run("should reject a duplicate budget for the same name and window", func(t *testing.T) {
		teardown := setup(t)
		defer teardown()

		// given
		_, err := service.Create(context.Background(), "Groceries", 1500, period.Daily)
		require.NoError(t, err)

		// when
		_, err = service.Create(context.Background(), "Groceries", 2000, period.Daily)

		// then
		assert.ErrorIs(t, err, ErrDuplicateBudget)
	})

	t.Run("should allow the same name for a different window", func(t *testing.T) {
		teardown := setup(t)
		defer teardown()

		// given
		_, err := service.Create(context.Background(), "Groceries", 1500, period.Daily)
		require.NoError(t, err)

		// when: same name, weekly window instead of daily
		_, err = service.Create(context.Background(), "Groceries", 1500, period.Weekly)

		// then
		assert.NoError(t, err)
	})
}

func TestBudgetService_EnsureCurrentPeriods(t *testing.T) {
	t.Run("should provision one skeleton budget per period kind", func(t *testing.T) {
		teardown := setup(t)
		defer teardown()

		// when
		err := service.EnsureCurrentPeriods(context.Background())

		// then
		require.NoError(t, err)
		budgets, err := service.GetAll(context.Background())
		require.NoError(t, err)
		require.Len(t, budgets, 3)
		for _, b := range budgets {
			assert.Equal(t, string(b.Period), b.Name)
			assert.Zero(t, b.TargetAmount)
			assert.True(t, b.WindowEnd.After(b.WindowStart))
		}
	})

	t.Run("should be idempotent for windows that already have a budget", func(t *testing.T) {
		teardown := setup(t)
		defer teardown()

		// given
		require.NoError(t, service.EnsureCurrentPeriods(context.Background()))

		// when
		require.NoError(t, service.EnsureCurrentPeriods(context.Background()))

		// then
		budgets, err := service.GetAll(context.Background())
		require.NoError(t, err)
		assert.Len(t, budgets, 3)
	})
}

func TestBudgetService_Delete(t *testing.T) {
	t.Run("should delete an existing budget", func(t *testing.T) {
		teardown := setup(t)
		defer teardown()

		// given
		created, err := service.Create(context.Background(), "Groceries", 1500, period.Weekly)
		require.NoError(t, err)

		// when
		ok, err := service.Delete(context.Background(), created.ID)

		// then
		assert.NoError(t, err)
		assert.True(t, ok)
	})

	t.Run("should report false for an unknown budget", func(t *testing.T) {
		teardown := setup(t)
		defer teardown()

		// when
		ok, err := service.Delete(context.Background(), 42)

		// then
		assert.NoError(t, err)
		assert.False(t, ok)
	})
}
