package timeoff

import (
	"time"

	"github.com/shopspring/decimal"
)

// TimeOffType entity. Reference data; immutable while requests cite it.
type TimeOffType struct {
	ID             string
	Name           string
	IsPaid         bool
	MaxDaysPerYear *decimal.Decimal
	CreatedAt      time.Time
	UpdatedAt      time.Time
}

// Allocation is the per-(employee, type, year) budget of leave days.
// HeldDays are reserved by PENDING requests; UsedDays are consumed by
// approved ones. AllocatedDays >= UsedDays + HeldDays holds at all times.
type Allocation struct {
	ID            string
	EmployeeID    string
	TimeOffTypeID string
	Year          int
	AllocatedDays decimal.Decimal
	UsedDays      decimal.Decimal
	HeldDays      decimal.Decimal
	CreatedAt     time.Time
	UpdatedAt     time.Time

	// Joined for responses
	TimeOffTypeName *string
}

// AvailableDays is derived, never stored.
func (a Allocation) AvailableDays() decimal.Decimal {
	return a.AllocatedDays.Sub(a.UsedDays).Sub(a.HeldDays)
}

type RequestStatus string

const (
	RequestStatusPending  RequestStatus = "PENDING"
	RequestStatusApproved RequestStatus = "APPROVED"
	RequestStatusRejected RequestStatus = "REJECTED"
)

// Terminal reports whether no further transitions are allowed.
func (s RequestStatus) Terminal() bool {
	return s == RequestStatusApproved || s == RequestStatusRejected
}

// Request entity. RequestedDays is computed once at submission
// (inclusive day count) and never changes afterwards. While PENDING the
// request owns exactly one hold of RequestedDays against one allocation.
type Request struct {
	ID            string
	EmployeeID    string
	TimeOffTypeID string
	StartDate     time.Time
	EndDate       time.Time
	RequestedDays decimal.Decimal
	Status        RequestStatus
	Reason        *string
	ApproverID    *string
	ApprovedAt    *time.Time
	CreatedAt     time.Time
	UpdatedAt     time.Time

	// Joined for responses
	EmployeeName    *string
	TimeOffTypeName *string
	ApproverName    *string
}

// AllocationYear attributes a request to its start date's calendar year.
func (r Request) AllocationYear() int {
	return r.StartDate.Year()
}
