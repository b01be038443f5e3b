package attendance

import (
	"context"
	"time"
)

// AttendanceService derives worked and overtime hours from the two
// per-day timestamps. Callers supply now explicitly; the service never
// reads an ambient clock.
type AttendanceService interface {
	CheckIn(ctx context.Context, employeeID string, now time.Time) (AttendanceResponse, error)
	CheckOut(ctx context.Context, employeeID string, now time.Time, req CheckOutRequest) (AttendanceResponse, error)
	ListByMonth(ctx context.Context, employeeID string, month time.Month, year int) ([]AttendanceResponse, error)
	Summary(ctx context.Context, employeeID string, month time.Month, year int) (MonthlySummary, error)
}
