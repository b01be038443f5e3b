package timeoff

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/shopspring/decimal"

	"github.com/worklane/timekeep-backend-go/internal/domain/timeoff"
)

// Ledger fronts the allocation repository's atomic balance primitives.
// Nothing else in the codebase mutates used or held days.
type Ledger struct {
	allocations timeoff.AllocationRepository
}

func NewLedger(allocationRepo timeoff.AllocationRepository) *Ledger {
	return &Ledger{allocations: allocationRepo}
}

// Available implements timeoff.BalanceLedger.
// Read-only; callers must not treat the answer as a reservation. The
// admission check lives inside Reserve itself.
func (l *Ledger) Available(ctx context.Context, employeeID, typeID string, year int) (decimal.Decimal, error) {
	alloc, err := l.allocations.GetByEmployeeTypeYear(ctx, employeeID, typeID, year)
	if err != nil {
		return decimal.Zero, err
	}
	return alloc.AvailableDays(), nil
}

// Reserve implements timeoff.BalanceLedger.
func (l *Ledger) Reserve(ctx context.Context, employeeID, typeID string, year int, days decimal.Decimal) error {
	if !days.IsPositive() {
		return fmt.Errorf("reserve of %s days: %w", days, timeoff.ErrInvariantViolation)
	}
	return l.allocations.Reserve(ctx, employeeID, typeID, year, days)
}

// Release implements timeoff.BalanceLedger.
func (l *Ledger) Release(ctx context.Context, employeeID, typeID string, year int, days decimal.Decimal) error {
	if !days.IsPositive() {
		return fmt.Errorf("release of %s days: %w", days, timeoff.ErrInvariantViolation)
	}
	return l.allocations.Release(ctx, employeeID, typeID, year, days)
}

// Consume implements timeoff.BalanceLedger.
func (l *Ledger) Consume(ctx context.Context, employeeID, typeID string, year int, days decimal.Decimal) error {
	if !days.IsPositive() {
		return fmt.Errorf("consume of %s days: %w", days, timeoff.ErrInvariantViolation)
	}
	err := l.allocations.Consume(ctx, employeeID, typeID, year, days)
	if errors.Is(err, timeoff.ErrInvariantViolation) {
		// A hold went missing before consumption. This is a bug, not a
		// user error; make it loud instead of clamping the balance.
		slog.Error("allocation hold does not cover consumption",
			"employee_id", employeeID,
			"time_off_type_id", typeID,
			"year", year,
			"days", days.String(),
		)
	}
	return err
}
