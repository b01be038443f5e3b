package postgresql

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"
	"github.com/shopspring/decimal"

	"github.com/worklane/timekeep-backend-go/internal/domain/timeoff"
	"github.com/worklane/timekeep-backend-go/internal/pkg/database"
)

// The reserve/release/consume statements below are the linearization
// point for balance accounting: the availability guard and the write are
// one UPDATE, so two racing reservations against the same allocation can
// never both be admitted.
type allocationRepositoryImpl struct {
	db *database.DB
}

func NewAllocationRepository(db *database.DB) timeoff.AllocationRepository {
	return &allocationRepositoryImpl{db: db}
}

// Upsert implements timeoff.AllocationRepository.
// Yearly initialization re-runs are no-ops for existing rows so balances
// already in motion are never reset.
func (r *allocationRepositoryImpl) Upsert(ctx context.Context, alloc timeoff.Allocation) (timeoff.Allocation, error) {
	q := GetQuerier(ctx, r.db)
	query := `
		INSERT INTO time_off_allocations (
			id, employee_id, time_off_type_id, year,
			allocated_days, used_days, held_days,
			created_at, updated_at
		) VALUES (
			uuidv7(), $1, $2, $3,
			$4, 0, 0,
			NOW(), NOW()
		)
		ON CONFLICT (employee_id, time_off_type_id, year) DO UPDATE
			SET updated_at = time_off_allocations.updated_at
		RETURNING id, allocated_days, used_days, held_days, created_at, updated_at
	`

	err := q.QueryRow(ctx, query,
		alloc.EmployeeID, alloc.TimeOffTypeID, alloc.Year, alloc.AllocatedDays,
	).Scan(
		&alloc.ID, &alloc.AllocatedDays, &alloc.UsedDays, &alloc.HeldDays,
		&alloc.CreatedAt, &alloc.UpdatedAt,
	)
	if err != nil {
		return timeoff.Allocation{}, err
	}
	return alloc, nil
}

// GetByEmployeeTypeYear implements timeoff.AllocationRepository.
func (r *allocationRepositoryImpl) GetByEmployeeTypeYear(ctx context.Context, employeeID, typeID string, year int) (timeoff.Allocation, error) {
	q := GetQuerier(ctx, r.db)
	query := `
		SELECT id, employee_id, time_off_type_id, year,
		       allocated_days, used_days, held_days,
		       created_at, updated_at
		FROM time_off_allocations
		WHERE employee_id = $1 AND time_off_type_id = $2 AND year = $3
	`

	var alloc timeoff.Allocation
	err := q.QueryRow(ctx, query, employeeID, typeID, year).Scan(
		&alloc.ID, &alloc.EmployeeID, &alloc.TimeOffTypeID, &alloc.Year,
		&alloc.AllocatedDays, &alloc.UsedDays, &alloc.HeldDays,
		&alloc.CreatedAt, &alloc.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return timeoff.Allocation{}, timeoff.ErrAllocationNotFound
		}
		return timeoff.Allocation{}, err
	}
	return alloc, nil
}

// ListByEmployeeYear implements timeoff.AllocationRepository.
func (r *allocationRepositoryImpl) ListByEmployeeYear(ctx context.Context, employeeID string, year int) ([]timeoff.Allocation, error) {
	q := GetQuerier(ctx, r.db)
	query := `
		SELECT a.id, a.employee_id, a.time_off_type_id, a.year,
		       a.allocated_days, a.used_days, a.held_days,
		       a.created_at, a.updated_at,
		       t.name AS time_off_type_name
		FROM time_off_allocations a
		JOIN time_off_types t ON a.time_off_type_id = t.id
		WHERE a.employee_id = $1 AND a.year = $2
		ORDER BY t.name
	`

	rows, err := q.Query(ctx, query, employeeID, year)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	allocations := make([]timeoff.Allocation, 0)
	for rows.Next() {
		var alloc timeoff.Allocation
		if err := rows.Scan(
			&alloc.ID, &alloc.EmployeeID, &alloc.TimeOffTypeID, &alloc.Year,
			&alloc.AllocatedDays, &alloc.UsedDays, &alloc.HeldDays,
			&alloc.CreatedAt, &alloc.UpdatedAt,
			&alloc.TimeOffTypeName,
		); err != nil {
			return nil, err
		}
		allocations = append(allocations, alloc)
	}

	return allocations, rows.Err()
}

// Reserve implements timeoff.AllocationRepository.
func (r *allocationRepositoryImpl) Reserve(ctx context.Context, employeeID, typeID string, year int, days decimal.Decimal) error {
	q := GetQuerier(ctx, r.db)
	query := `
		UPDATE time_off_allocations
		SET held_days = held_days + $4, updated_at = NOW()
		WHERE employee_id = $1 AND time_off_type_id = $2 AND year = $3
		AND allocated_days - used_days - held_days - $4 >= 0
	`

	result, err := q.Exec(ctx, query, employeeID, typeID, year, days)
	if err != nil {
		return err
	}
	if result.RowsAffected() == 0 {
		// Either the allocation is missing or the balance does not cover
		// the reservation; tell the two apart for the caller.
		if _, err := r.GetByEmployeeTypeYear(ctx, employeeID, typeID, year); err != nil {
			return err
		}
		return timeoff.ErrInsufficientBalance
	}
	return nil
}

// Release implements timeoff.AllocationRepository.
func (r *allocationRepositoryImpl) Release(ctx context.Context, employeeID, typeID string, year int, days decimal.Decimal) error {
	q := GetQuerier(ctx, r.db)
	query := `
		UPDATE time_off_allocations
		SET held_days = GREATEST(held_days - $4, 0), updated_at = NOW()
		WHERE employee_id = $1 AND time_off_type_id = $2 AND year = $3
	`

	result, err := q.Exec(ctx, query, employeeID, typeID, year, days)
	if err != nil {
		return err
	}
	if result.RowsAffected() == 0 {
		return timeoff.ErrAllocationNotFound
	}
	return nil
}

// Consume implements timeoff.AllocationRepository.
// Consuming more than is held means a reservation went missing; that is
// an invariant violation, not a balance shortage.
func (r *allocationRepositoryImpl) Consume(ctx context.Context, employeeID, typeID string, year int, days decimal.Decimal) error {
	q := GetQuerier(ctx, r.db)
	query := `
		UPDATE time_off_allocations
		SET held_days = held_days - $4, used_days = used_days + $4, updated_at = NOW()
		WHERE employee_id = $1 AND time_off_type_id = $2 AND year = $3
		AND held_days - $4 >= 0
	`

	result, err := q.Exec(ctx, query, employeeID, typeID, year, days)
	if err != nil {
		return err
	}
	if result.RowsAffected() == 0 {
		if _, err := r.GetByEmployeeTypeYear(ctx, employeeID, typeID, year); err != nil {
			return err
		}
		return timeoff.ErrInvariantViolation
	}
	return nil
}
