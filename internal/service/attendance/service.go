package attendance

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/shopspring/decimal"

	"github.com/worklane/timekeep-backend-go/internal/config"
	"github.com/worklane/timekeep-backend-go/internal/domain/attendance"
	"github.com/worklane/timekeep-backend-go/internal/pkg/timemath"
)

type AttendanceServiceImpl struct {
	attendance.AttendanceRepository
	standardDayHours decimal.Decimal
}

func NewAttendanceService(attendanceRepo attendance.AttendanceRepository, cfg config.AttendanceConfig) attendance.AttendanceService {
	return &AttendanceServiceImpl{
		AttendanceRepository: attendanceRepo,
		standardDayHours:     decimal.NewFromFloat(cfg.StandardDayHours),
	}
}

// CheckIn implements attendance.AttendanceService.
// A second check-in on the same day is rejected rather than overwritten:
// the first timestamp is the audit-accurate one.
func (a *AttendanceServiceImpl) CheckIn(ctx context.Context, employeeID string, now time.Time) (attendance.AttendanceResponse, error) {
	date := attendance.Day(now)

	existing, err := a.AttendanceRepository.GetByEmployeeAndDate(ctx, employeeID, date)
	if err != nil {
		if !errors.Is(err, attendance.ErrAttendanceNotFound) {
			return attendance.AttendanceResponse{}, fmt.Errorf("failed to get attendance for today: %w", err)
		}

		created, err := a.AttendanceRepository.Create(ctx, attendance.Attendance{
			EmployeeID: employeeID,
			Date:       date,
			CheckIn:    &now,
			BreakHours: decimal.Zero,
			Status:     attendance.StatusPresent,
		})
		if err != nil {
			return attendance.AttendanceResponse{}, err
		}
		return created.ToResponse(), nil
	}

	if existing.State() != attendance.StateNotStarted {
		return attendance.AttendanceResponse{}, attendance.ErrAlreadyCheckedIn
	}

	// Placeholder row (e.g. created ON_LEAVE by the time-off workflow):
	// fill in the check-in and flip the status to PRESENT.
	updated, err := a.AttendanceRepository.SetCheckIn(ctx, existing.ID, now)
	if err != nil {
		return attendance.AttendanceResponse{}, err
	}
	return updated.ToResponse(), nil
}

// CheckOut implements attendance.AttendanceService.
func (a *AttendanceServiceImpl) CheckOut(ctx context.Context, employeeID string, now time.Time, req attendance.CheckOutRequest) (attendance.AttendanceResponse, error) {
	if err := req.Validate(); err != nil {
		return attendance.AttendanceResponse{}, err
	}

	date := attendance.Day(now)

	existing, err := a.AttendanceRepository.GetByEmployeeAndDate(ctx, employeeID, date)
	if err != nil {
		if errors.Is(err, attendance.ErrAttendanceNotFound) {
			return attendance.AttendanceResponse{}, attendance.ErrNoCheckIn
		}
		return attendance.AttendanceResponse{}, fmt.Errorf("failed to get attendance for today: %w", err)
	}

	switch existing.State() {
	case attendance.StateNotStarted:
		return attendance.AttendanceResponse{}, attendance.ErrNoCheckIn
	case attendance.StateCheckedOut:
		return attendance.AttendanceResponse{}, attendance.ErrAlreadyCheckedOut
	}

	// Break resolution: explicit argument wins over the stored value,
	// which defaults to zero. The check-out value is authoritative.
	breakHours := existing.BreakHours
	if req.BreakHours != nil {
		breakHours = *req.BreakHours
	}

	hours, err := timemath.HoursBetween(*existing.CheckIn, now)
	if err != nil {
		return attendance.AttendanceResponse{}, err
	}

	workedHours := timemath.ClampNonNegative(hours.Sub(breakHours))
	overtimeHours := timemath.ClampNonNegative(workedHours.Sub(a.standardDayHours))

	updated, err := a.AttendanceRepository.CompleteCheckOut(ctx, existing.ID, now, breakHours, workedHours, overtimeHours)
	if err != nil {
		return attendance.AttendanceResponse{}, err
	}
	return updated.ToResponse(), nil
}

// ListByMonth implements attendance.AttendanceService.
func (a *AttendanceServiceImpl) ListByMonth(ctx context.Context, employeeID string, month time.Month, year int) ([]attendance.AttendanceResponse, error) {
	from := time.Date(year, month, 1, 0, 0, 0, 0, time.UTC)
	to := from.AddDate(0, 1, -1)

	attendances, err := a.AttendanceRepository.ListByRange(ctx, employeeID, from, to)
	if err != nil {
		return nil, fmt.Errorf("failed to list attendances: %w", err)
	}

	responses := make([]attendance.AttendanceResponse, 0, len(attendances))
	for _, att := range attendances {
		responses = append(responses, att.ToResponse())
	}
	return responses, nil
}

// Summary implements attendance.AttendanceService.
func (a *AttendanceServiceImpl) Summary(ctx context.Context, employeeID string, month time.Month, year int) (attendance.MonthlySummary, error) {
	from := time.Date(year, month, 1, 0, 0, 0, 0, time.UTC)
	to := from.AddDate(0, 1, -1)

	attendances, err := a.AttendanceRepository.ListByRange(ctx, employeeID, from, to)
	if err != nil {
		return attendance.MonthlySummary{}, fmt.Errorf("failed to list attendances: %w", err)
	}

	summary := attendance.MonthlySummary{Month: int(month), Year: year}
	workedTotal := decimal.Zero
	overtimeTotal := decimal.Zero
	for _, att := range attendances {
		switch att.Status {
		case attendance.StatusPresent:
			summary.PresentDays++
		case attendance.StatusOnLeave:
			summary.OnLeaveDays++
		case attendance.StatusAbsent:
			summary.AbsentDays++
		}
		workedTotal = workedTotal.Add(att.WorkedHours)
		overtimeTotal = overtimeTotal.Add(att.OvertimeHours)
	}
	summary.WorkedHours = workedTotal.StringFixed(2)
	summary.OvertimeHours = overtimeTotal.StringFixed(2)

	return summary, nil
}
