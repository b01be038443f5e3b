package timeoff

import (
	"context"
	"time"

	"github.com/shopspring/decimal"
)

// BalanceLedger is the only component permitted to mutate used and held
// days on an allocation. Every mutation is atomic with respect to
// concurrent callers on the same (employee, type, year) key.
type BalanceLedger interface {
	Available(ctx context.Context, employeeID, typeID string, year int) (decimal.Decimal, error)
	Reserve(ctx context.Context, employeeID, typeID string, year int, days decimal.Decimal) error
	Release(ctx context.Context, employeeID, typeID string, year int, days decimal.Decimal) error
	Consume(ctx context.Context, employeeID, typeID string, year int, days decimal.Decimal) error
}

// TimeOffService is the request workflow over the ledger:
// submit reserves, approve consumes, reject releases.
type TimeOffService interface {
	Submit(ctx context.Context, employeeID string, req SubmitRequestRequest, now time.Time) (RequestResponse, error)
	Approve(ctx context.Context, requestID, approverID string, now time.Time) (RequestResponse, error)
	Reject(ctx context.Context, requestID, approverID string, now time.Time) (RequestResponse, error)
	GetRequest(ctx context.Context, requestID string) (RequestResponse, error)
	ListRequests(ctx context.Context, filter RequestFilter) ([]RequestResponse, error)
	ListTypes(ctx context.Context) ([]TimeOffTypeResponse, error)
	ListAllocations(ctx context.Context, employeeID string, year int) ([]AllocationResponse, error)
	InitializeAllocations(ctx context.Context, employeeID string, year int) error
}
