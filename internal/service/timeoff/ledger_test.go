package timeoff

import (
	"context"
	"sync"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/worklane/timekeep-backend-go/internal/domain/timeoff"
)

func TestLedger_ReserveReleaseRoundTrip(t *testing.T) {
	allocations := newMemAllocationRepo()
	allocations.seed(testEmployeeID, testTypeID, 2026, 10)
	ledger := NewLedger(allocations)
	ctx := context.Background()

	require.NoError(t, ledger.Reserve(ctx, testEmployeeID, testTypeID, 2026, decimal.NewFromInt(4)))

	available, err := ledger.Available(ctx, testEmployeeID, testTypeID, 2026)
	require.NoError(t, err)
	assert.Equal(t, "6", available.String())

	require.NoError(t, ledger.Release(ctx, testEmployeeID, testTypeID, 2026, decimal.NewFromInt(4)))

	available, err = ledger.Available(ctx, testEmployeeID, testTypeID, 2026)
	require.NoError(t, err)
	assert.Equal(t, "10", available.String())
}

func TestLedger_ReserveInsufficientBalance(t *testing.T) {
	allocations := newMemAllocationRepo()
	allocations.seed(testEmployeeID, testTypeID, 2026, 3)
	ledger := NewLedger(allocations)

	err := ledger.Reserve(context.Background(), testEmployeeID, testTypeID, 2026, decimal.NewFromInt(4))
	assert.ErrorIs(t, err, timeoff.ErrInsufficientBalance)
}

func TestLedger_ConsumeMovesHeldToUsed(t *testing.T) {
	allocations := newMemAllocationRepo()
	allocations.seed(testEmployeeID, testTypeID, 2026, 10)
	ledger := NewLedger(allocations)
	ctx := context.Background()

	require.NoError(t, ledger.Reserve(ctx, testEmployeeID, testTypeID, 2026, decimal.NewFromInt(4)))
	require.NoError(t, ledger.Consume(ctx, testEmployeeID, testTypeID, 2026, decimal.NewFromInt(4)))

	alloc, err := allocations.GetByEmployeeTypeYear(ctx, testEmployeeID, testTypeID, 2026)
	require.NoError(t, err)
	assert.Equal(t, "4", alloc.UsedDays.String())
	assert.Equal(t, "0", alloc.HeldDays.String())
	// Consuming a hold does not change availability.
	assert.Equal(t, "6", alloc.AvailableDays().String())
}

func TestLedger_ConsumeWithoutHold(t *testing.T) {
	allocations := newMemAllocationRepo()
	allocations.seed(testEmployeeID, testTypeID, 2026, 10)
	ledger := NewLedger(allocations)

	err := ledger.Consume(context.Background(), testEmployeeID, testTypeID, 2026, decimal.NewFromInt(1))
	assert.ErrorIs(t, err, timeoff.ErrInvariantViolation)
}

func TestLedger_NonPositiveDaysRejected(t *testing.T) {
	allocations := newMemAllocationRepo()
	allocations.seed(testEmployeeID, testTypeID, 2026, 10)
	ledger := NewLedger(allocations)
	ctx := context.Background()

	assert.ErrorIs(t, ledger.Reserve(ctx, testEmployeeID, testTypeID, 2026, decimal.Zero), timeoff.ErrInvariantViolation)
	assert.ErrorIs(t, ledger.Release(ctx, testEmployeeID, testTypeID, 2026, decimal.NewFromInt(-1)), timeoff.ErrInvariantViolation)
	assert.ErrorIs(t, ledger.Consume(ctx, testEmployeeID, testTypeID, 2026, decimal.Zero), timeoff.ErrInvariantViolation)
}

// Two concurrent reservations against the same remaining balance: the
// guard admits exactly one of them.
func TestLedger_ConcurrentReservesAdmitOne(t *testing.T) {
	allocations := newMemAllocationRepo()
	allocations.seed(testEmployeeID, testTypeID, 2026, 5)
	ledger := NewLedger(allocations)
	ctx := context.Background()

	var wg sync.WaitGroup
	errs := make([]error, 2)
	for i := 0; i < 2; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			errs[i] = ledger.Reserve(ctx, testEmployeeID, testTypeID, 2026, decimal.NewFromInt(5))
		}(i)
	}
	wg.Wait()

	succeeded := 0
	for _, err := range errs {
		if err == nil {
			succeeded++
		} else {
			assert.ErrorIs(t, err, timeoff.ErrInsufficientBalance)
		}
	}
	assert.Equal(t, 1, succeeded)

	alloc, err := allocations.GetByEmployeeTypeYear(ctx, testEmployeeID, testTypeID, 2026)
	require.NoError(t, err)
	assert.Equal(t, "5", alloc.HeldDays.String())
	assert.True(t, alloc.AvailableDays().GreaterThanOrEqual(decimal.Zero))
}
