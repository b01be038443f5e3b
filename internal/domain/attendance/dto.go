package attendance

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/worklane/timekeep-backend-go/internal/pkg/validator"
)

type CheckOutRequest struct {
	// BreakHours overrides any break previously stored on the record.
	// When nil the stored value applies, defaulting to zero.
	BreakHours *decimal.Decimal `json:"break_hours"`
}

func (r CheckOutRequest) Validate() error {
	var errs validator.ValidationErrors
	if r.BreakHours != nil && r.BreakHours.IsNegative() {
		errs = append(errs, validator.ValidationError{
			Field:   "break_hours",
			Message: "must not be negative",
		})
	}
	if len(errs) > 0 {
		return errs
	}
	return nil
}

type AttendanceResponse struct {
	ID            string  `json:"id"`
	EmployeeID    string  `json:"employee_id"`
	EmployeeName  *string `json:"employee_name,omitempty"`
	Date          string  `json:"date"`
	CheckIn       *string `json:"check_in"`
	CheckOut      *string `json:"check_out"`
	BreakHours    string  `json:"break_hours"`
	WorkedHours   string  `json:"worked_hours"`
	OvertimeHours string  `json:"overtime_hours"`
	Status        string  `json:"status"`
}

type MonthlySummary struct {
	Month         int    `json:"month"`
	Year          int    `json:"year"`
	PresentDays   int    `json:"present_days"`
	OnLeaveDays   int    `json:"on_leave_days"`
	AbsentDays    int    `json:"absent_days"`
	WorkedHours   string `json:"worked_hours"`
	OvertimeHours string `json:"overtime_hours"`
}

func timePtrToString(t *time.Time) *string {
	if t == nil {
		return nil
	}
	formatted := t.Format("2006-01-02 15:04:05")
	return &formatted
}

// ToResponse maps an Attendance entity to its API shape.
func (a Attendance) ToResponse() AttendanceResponse {
	return AttendanceResponse{
		ID:            a.ID,
		EmployeeID:    a.EmployeeID,
		EmployeeName:  a.EmployeeName,
		Date:          a.Date.Format("2006-01-02"),
		CheckIn:       timePtrToString(a.CheckIn),
		CheckOut:      timePtrToString(a.CheckOut),
		BreakHours:    a.BreakHours.StringFixed(2),
		WorkedHours:   a.WorkedHours.StringFixed(2),
		OvertimeHours: a.OvertimeHours.StringFixed(2),
		Status:        string(a.Status),
	}
}
