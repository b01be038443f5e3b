package attendance

import (
	"context"
	"time"

	"github.com/shopspring/decimal"
)

// AttendanceRepository - interface for the attendances table.
//
// SetCheckIn and CompleteCheckOut are conditional writes: they only
// apply when the corresponding timestamp is still unset, so two
// concurrent callers on the same row cannot both win.
type AttendanceRepository interface {
	Create(ctx context.Context, att Attendance) (Attendance, error)
	GetByEmployeeAndDate(ctx context.Context, employeeID string, date time.Time) (Attendance, error)
	SetCheckIn(ctx context.Context, id string, checkIn time.Time) (Attendance, error)
	CompleteCheckOut(ctx context.Context, id string, checkOut time.Time, breakHours, workedHours, overtimeHours decimal.Decimal) (Attendance, error)
	ListByRange(ctx context.Context, employeeID string, from, to time.Time) ([]Attendance, error)
	EnsureOnLeave(ctx context.Context, employeeID string, date time.Time) error
}
