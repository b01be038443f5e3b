package attendance

import (
	"time"

	"github.com/shopspring/decimal"
)

type Status string

const (
	StatusPresent Status = "PRESENT"
	StatusOnLeave Status = "ON_LEAVE"
	StatusAbsent  Status = "ABSENT"
)

// State is the explicit per-day check-in progression. It is derived from
// the stored timestamps so transitions are validated in one place instead
// of scattered nil checks.
type State string

const (
	StateNotStarted State = "NOT_STARTED"
	StateCheckedIn  State = "CHECKED_IN"
	StateCheckedOut State = "CHECKED_OUT"
)

// Attendance is one row per (employee, calendar day). CheckOut is only
// ever set after CheckIn, and never precedes it.
type Attendance struct {
	ID            string
	EmployeeID    string
	Date          time.Time // day precision, UTC midnight
	CheckIn       *time.Time
	CheckOut      *time.Time
	BreakHours    decimal.Decimal
	WorkedHours   decimal.Decimal
	OvertimeHours decimal.Decimal
	Status        Status
	CreatedAt     time.Time
	UpdatedAt     time.Time

	// Joined for responses
	EmployeeName *string
}

func (a Attendance) State() State {
	switch {
	case a.CheckOut != nil:
		return StateCheckedOut
	case a.CheckIn != nil:
		return StateCheckedIn
	default:
		return StateNotStarted
	}
}

// Day truncates t to UTC midnight, the canonical attendance date key.
func Day(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}
