package attendance

import (
	"context"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/worklane/timekeep-backend-go/internal/config"
	"github.com/worklane/timekeep-backend-go/internal/domain/attendance"
)

type fakeAttendanceRepo struct {
	CreateFunc               func(ctx context.Context, att attendance.Attendance) (attendance.Attendance, error)
	GetByEmployeeAndDateFunc func(ctx context.Context, employeeID string, date time.Time) (attendance.Attendance, error)
	SetCheckInFunc           func(ctx context.Context, id string, checkIn time.Time) (attendance.Attendance, error)
	CompleteCheckOutFunc     func(ctx context.Context, id string, checkOut time.Time, breakHours, workedHours, overtimeHours decimal.Decimal) (attendance.Attendance, error)
	ListByRangeFunc          func(ctx context.Context, employeeID string, from, to time.Time) ([]attendance.Attendance, error)
	EnsureOnLeaveFunc        func(ctx context.Context, employeeID string, date time.Time) error
}

func (f *fakeAttendanceRepo) Create(ctx context.Context, att attendance.Attendance) (attendance.Attendance, error) {
	return f.CreateFunc(ctx, att)
}

func (f *fakeAttendanceRepo) GetByEmployeeAndDate(ctx context.Context, employeeID string, date time.Time) (attendance.Attendance, error) {
	return f.GetByEmployeeAndDateFunc(ctx, employeeID, date)
}

func (f *fakeAttendanceRepo) SetCheckIn(ctx context.Context, id string, checkIn time.Time) (attendance.Attendance, error) {
	return f.SetCheckInFunc(ctx, id, checkIn)
}

func (f *fakeAttendanceRepo) CompleteCheckOut(ctx context.Context, id string, checkOut time.Time, breakHours, workedHours, overtimeHours decimal.Decimal) (attendance.Attendance, error) {
	return f.CompleteCheckOutFunc(ctx, id, checkOut, breakHours, workedHours, overtimeHours)
}

func (f *fakeAttendanceRepo) ListByRange(ctx context.Context, employeeID string, from, to time.Time) ([]attendance.Attendance, error) {
	return f.ListByRangeFunc(ctx, employeeID, from, to)
}

func (f *fakeAttendanceRepo) EnsureOnLeave(ctx context.Context, employeeID string, date time.Time) error {
	return f.EnsureOnLeaveFunc(ctx, employeeID, date)
}

func newTestService(repo *fakeAttendanceRepo) attendance.AttendanceService {
	return NewAttendanceService(repo, config.AttendanceConfig{StandardDayHours: 8})
}

const testEmployeeID = "b2a9c6c4-5cb3-4d2f-93ba-5777e78f8f46"

func TestCheckIn_CreatesRecordForToday(t *testing.T) {
	now := time.Date(2026, 3, 2, 9, 0, 0, 0, time.UTC)

	var created attendance.Attendance
	repo := &fakeAttendanceRepo{
		GetByEmployeeAndDateFunc: func(ctx context.Context, employeeID string, date time.Time) (attendance.Attendance, error) {
			return attendance.Attendance{}, attendance.ErrAttendanceNotFound
		},
		CreateFunc: func(ctx context.Context, att attendance.Attendance) (attendance.Attendance, error) {
			created = att
			created.ID = "att-1"
			return created, nil
		},
	}

	result, err := newTestService(repo).CheckIn(context.Background(), testEmployeeID, now)
	require.NoError(t, err)

	assert.Equal(t, testEmployeeID, created.EmployeeID)
	assert.Equal(t, time.Date(2026, 3, 2, 0, 0, 0, 0, time.UTC), created.Date)
	require.NotNil(t, created.CheckIn)
	assert.Equal(t, now, *created.CheckIn)
	assert.Equal(t, attendance.StatusPresent, created.Status)

	require.NotNil(t, result.CheckIn)
	assert.Equal(t, string(attendance.StatusPresent), result.Status)
}

func TestCheckIn_SecondCheckInSameDayRejected(t *testing.T) {
	firstCheckIn := time.Date(2026, 3, 2, 8, 30, 0, 0, time.UTC)
	now := time.Date(2026, 3, 2, 11, 0, 0, 0, time.UTC)

	repo := &fakeAttendanceRepo{
		GetByEmployeeAndDateFunc: func(ctx context.Context, employeeID string, date time.Time) (attendance.Attendance, error) {
			return attendance.Attendance{
				ID:         "att-1",
				EmployeeID: testEmployeeID,
				Date:       attendance.Day(firstCheckIn),
				CheckIn:    &firstCheckIn,
				Status:     attendance.StatusPresent,
			}, nil
		},
		SetCheckInFunc: func(ctx context.Context, id string, checkIn time.Time) (attendance.Attendance, error) {
			t.Fatal("SetCheckIn must not be called for an already checked-in day")
			return attendance.Attendance{}, nil
		},
	}

	_, err := newTestService(repo).CheckIn(context.Background(), testEmployeeID, now)
	assert.ErrorIs(t, err, attendance.ErrAlreadyCheckedIn)
}

func TestCheckIn_FillsOnLeavePlaceholder(t *testing.T) {
	now := time.Date(2026, 3, 2, 9, 0, 0, 0, time.UTC)

	setCheckInCalled := false
	repo := &fakeAttendanceRepo{
		GetByEmployeeAndDateFunc: func(ctx context.Context, employeeID string, date time.Time) (attendance.Attendance, error) {
			// Placeholder created by an approved time off request.
			return attendance.Attendance{
				ID:         "att-1",
				EmployeeID: testEmployeeID,
				Date:       attendance.Day(now),
				Status:     attendance.StatusOnLeave,
			}, nil
		},
		SetCheckInFunc: func(ctx context.Context, id string, checkIn time.Time) (attendance.Attendance, error) {
			setCheckInCalled = true
			assert.Equal(t, "att-1", id)
			assert.Equal(t, now, checkIn)
			return attendance.Attendance{
				ID:      id,
				CheckIn: &checkIn,
				Status:  attendance.StatusPresent,
			}, nil
		},
	}

	result, err := newTestService(repo).CheckIn(context.Background(), testEmployeeID, now)
	require.NoError(t, err)
	assert.True(t, setCheckInCalled)
	assert.Equal(t, string(attendance.StatusPresent), result.Status)
}

func TestCheckOut_RegularDay(t *testing.T) {
	checkIn := time.Date(2026, 3, 2, 9, 0, 0, 0, time.UTC)
	now := time.Date(2026, 3, 2, 18, 0, 0, 0, time.UTC)

	repo := &fakeAttendanceRepo{
		GetByEmployeeAndDateFunc: func(ctx context.Context, employeeID string, date time.Time) (attendance.Attendance, error) {
			return attendance.Attendance{
				ID:         "att-1",
				EmployeeID: testEmployeeID,
				Date:       attendance.Day(checkIn),
				CheckIn:    &checkIn,
				BreakHours: decimal.Zero,
				Status:     attendance.StatusPresent,
			}, nil
		},
		CompleteCheckOutFunc: func(ctx context.Context, id string, checkOut time.Time, breakHours, workedHours, overtimeHours decimal.Decimal) (attendance.Attendance, error) {
			assert.Equal(t, "8", workedHours.String())
			assert.Equal(t, "0", overtimeHours.String())
			return attendance.Attendance{
				ID:            id,
				CheckIn:       &checkIn,
				CheckOut:      &checkOut,
				BreakHours:    breakHours,
				WorkedHours:   workedHours,
				OvertimeHours: overtimeHours,
				Status:        attendance.StatusPresent,
			}, nil
		},
	}

	breakHours := decimal.NewFromInt(1)
	result, err := newTestService(repo).CheckOut(context.Background(), testEmployeeID, now, attendance.CheckOutRequest{
		BreakHours: &breakHours,
	})
	require.NoError(t, err)
	assert.Equal(t, "8.00", result.WorkedHours)
	assert.Equal(t, "0.00", result.OvertimeHours)
}

func TestCheckOut_OvertimeDay(t *testing.T) {
	checkIn := time.Date(2026, 3, 2, 9, 0, 0, 0, time.UTC)
	now := time.Date(2026, 3, 2, 19, 30, 0, 0, time.UTC)

	repo := &fakeAttendanceRepo{
		GetByEmployeeAndDateFunc: func(ctx context.Context, employeeID string, date time.Time) (attendance.Attendance, error) {
			return attendance.Attendance{
				ID:         "att-1",
				EmployeeID: testEmployeeID,
				Date:       attendance.Day(checkIn),
				CheckIn:    &checkIn,
				BreakHours: decimal.Zero,
				Status:     attendance.StatusPresent,
			}, nil
		},
		CompleteCheckOutFunc: func(ctx context.Context, id string, checkOut time.Time, breakHours, workedHours, overtimeHours decimal.Decimal) (attendance.Attendance, error) {
			return attendance.Attendance{
				ID:            id,
				CheckIn:       &checkIn,
				CheckOut:      &checkOut,
				BreakHours:    breakHours,
				WorkedHours:   workedHours,
				OvertimeHours: overtimeHours,
				Status:        attendance.StatusPresent,
			}, nil
		},
	}

	breakHours := decimal.NewFromFloat(0.5)
	result, err := newTestService(repo).CheckOut(context.Background(), testEmployeeID, now, attendance.CheckOutRequest{
		BreakHours: &breakHours,
	})
	require.NoError(t, err)
	assert.Equal(t, "10.00", result.WorkedHours)
	assert.Equal(t, "2.00", result.OvertimeHours)
}

func TestCheckOut_ShortDayClampsToZero(t *testing.T) {
	checkIn := time.Date(2026, 3, 2, 9, 0, 0, 0, time.UTC)
	now := time.Date(2026, 3, 2, 9, 15, 0, 0, time.UTC)

	repo := &fakeAttendanceRepo{
		GetByEmployeeAndDateFunc: func(ctx context.Context, employeeID string, date time.Time) (attendance.Attendance, error) {
			return attendance.Attendance{
				ID:         "att-1",
				EmployeeID: testEmployeeID,
				Date:       attendance.Day(checkIn),
				CheckIn:    &checkIn,
				BreakHours: decimal.Zero,
				Status:     attendance.StatusPresent,
			}, nil
		},
		CompleteCheckOutFunc: func(ctx context.Context, id string, checkOut time.Time, breakHours, workedHours, overtimeHours decimal.Decimal) (attendance.Attendance, error) {
			return attendance.Attendance{
				ID:            id,
				CheckIn:       &checkIn,
				CheckOut:      &checkOut,
				BreakHours:    breakHours,
				WorkedHours:   workedHours,
				OvertimeHours: overtimeHours,
				Status:        attendance.StatusPresent,
			}, nil
		},
	}

	// A one hour break over a 15 minute stint must not go negative.
	breakHours := decimal.NewFromInt(1)
	result, err := newTestService(repo).CheckOut(context.Background(), testEmployeeID, now, attendance.CheckOutRequest{
		BreakHours: &breakHours,
	})
	require.NoError(t, err)
	assert.Equal(t, "0.00", result.WorkedHours)
	assert.Equal(t, "0.00", result.OvertimeHours)
}

func TestCheckOut_WithoutCheckIn(t *testing.T) {
	now := time.Date(2026, 3, 2, 18, 0, 0, 0, time.UTC)

	repo := &fakeAttendanceRepo{
		GetByEmployeeAndDateFunc: func(ctx context.Context, employeeID string, date time.Time) (attendance.Attendance, error) {
			return attendance.Attendance{}, attendance.ErrAttendanceNotFound
		},
	}

	_, err := newTestService(repo).CheckOut(context.Background(), testEmployeeID, now, attendance.CheckOutRequest{})
	assert.ErrorIs(t, err, attendance.ErrNoCheckIn)
}

func TestCheckOut_AlreadyCheckedOut(t *testing.T) {
	checkIn := time.Date(2026, 3, 2, 9, 0, 0, 0, time.UTC)
	checkOut := time.Date(2026, 3, 2, 17, 0, 0, 0, time.UTC)
	now := time.Date(2026, 3, 2, 18, 0, 0, 0, time.UTC)

	repo := &fakeAttendanceRepo{
		GetByEmployeeAndDateFunc: func(ctx context.Context, employeeID string, date time.Time) (attendance.Attendance, error) {
			return attendance.Attendance{
				ID:       "att-1",
				CheckIn:  &checkIn,
				CheckOut: &checkOut,
				Status:   attendance.StatusPresent,
			}, nil
		},
	}

	_, err := newTestService(repo).CheckOut(context.Background(), testEmployeeID, now, attendance.CheckOutRequest{})
	assert.ErrorIs(t, err, attendance.ErrAlreadyCheckedOut)
}

func TestCheckOut_NegativeBreakRejected(t *testing.T) {
	now := time.Date(2026, 3, 2, 18, 0, 0, 0, time.UTC)
	breakHours := decimal.NewFromInt(-1)

	_, err := newTestService(&fakeAttendanceRepo{}).CheckOut(context.Background(), testEmployeeID, now, attendance.CheckOutRequest{
		BreakHours: &breakHours,
	})
	assert.Error(t, err)
}

func TestSummary_AggregatesMonth(t *testing.T) {
	repo := &fakeAttendanceRepo{
		ListByRangeFunc: func(ctx context.Context, employeeID string, from, to time.Time) ([]attendance.Attendance, error) {
			assert.Equal(t, time.Date(2026, 3, 1, 0, 0, 0, 0, time.UTC), from)
			assert.Equal(t, time.Date(2026, 3, 31, 0, 0, 0, 0, time.UTC), to)
			return []attendance.Attendance{
				{Status: attendance.StatusPresent, WorkedHours: decimal.NewFromInt(8), OvertimeHours: decimal.Zero},
				{Status: attendance.StatusPresent, WorkedHours: decimal.NewFromFloat(10.5), OvertimeHours: decimal.NewFromFloat(2.5)},
				{Status: attendance.StatusOnLeave, WorkedHours: decimal.Zero, OvertimeHours: decimal.Zero},
				{Status: attendance.StatusAbsent, WorkedHours: decimal.Zero, OvertimeHours: decimal.Zero},
			}, nil
		},
	}

	summary, err := newTestService(repo).Summary(context.Background(), testEmployeeID, time.March, 2026)
	require.NoError(t, err)
	assert.Equal(t, 2, summary.PresentDays)
	assert.Equal(t, 1, summary.OnLeaveDays)
	assert.Equal(t, 1, summary.AbsentDays)
	assert.Equal(t, "18.50", summary.WorkedHours)
	assert.Equal(t, "2.50", summary.OvertimeHours)
}
