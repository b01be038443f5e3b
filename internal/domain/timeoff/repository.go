package timeoff

import (
	"context"
	"time"

	"github.com/shopspring/decimal"
)

// TimeOffTypeRepository - interface for the time_off_types table
type TimeOffTypeRepository interface {
	Create(ctx context.Context, t TimeOffType) (TimeOffType, error)
	GetByID(ctx context.Context, id string) (TimeOffType, error)
	List(ctx context.Context) ([]TimeOffType, error)
}

// AllocationRepository - interface for the time_off_allocations table.
//
// Reserve, Release and Consume are each a single atomic conditional
// read-modify-write on the allocation row. There is deliberately no
// separate "check availability then write" pair: the guard and the
// increment happen in one statement so concurrent callers linearize.
type AllocationRepository interface {
	Upsert(ctx context.Context, alloc Allocation) (Allocation, error)
	GetByEmployeeTypeYear(ctx context.Context, employeeID, typeID string, year int) (Allocation, error)
	ListByEmployeeYear(ctx context.Context, employeeID string, year int) ([]Allocation, error)

	// Reserve increments held days iff available balance covers days.
	Reserve(ctx context.Context, employeeID, typeID string, year int, days decimal.Decimal) error
	// Release returns held days, flooring at zero.
	Release(ctx context.Context, employeeID, typeID string, year int, days decimal.Decimal) error
	// Consume converts held days into used days; the hold must cover days.
	Consume(ctx context.Context, employeeID, typeID string, year int, days decimal.Decimal) error
}

// RequestRepository - interface for the time_off_requests table
type RequestRepository interface {
	Create(ctx context.Context, req Request) (Request, error)
	GetByID(ctx context.Context, id string) (Request, error)
	ListByEmployee(ctx context.Context, employeeID string, status *RequestStatus) ([]Request, error)
	List(ctx context.Context, status *RequestStatus) ([]Request, error)
	UpdateStatus(ctx context.Context, id string, status RequestStatus, approverID string, approvedAt time.Time) error
}
