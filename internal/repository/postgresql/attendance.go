package postgresql

import (
	"context"
	"errors"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/shopspring/decimal"

	"github.com/worklane/timekeep-backend-go/internal/domain/attendance"
	"github.com/worklane/timekeep-backend-go/internal/pkg/database"
)

type attendanceRepositoryImpl struct {
	db *database.DB
}

func NewAttendanceRepository(db *database.DB) attendance.AttendanceRepository {
	return &attendanceRepositoryImpl{db: db}
}

const attendanceColumns = `
	a.id, a.employee_id, a.date, a.check_in, a.check_out,
	a.break_hours, a.worked_hours, a.overtime_hours, a.status,
	a.created_at, a.updated_at
`

func scanAttendance(row pgx.Row) (attendance.Attendance, error) {
	var att attendance.Attendance
	err := row.Scan(
		&att.ID, &att.EmployeeID, &att.Date, &att.CheckIn, &att.CheckOut,
		&att.BreakHours, &att.WorkedHours, &att.OvertimeHours, &att.Status,
		&att.CreatedAt, &att.UpdatedAt,
	)
	return att, err
}

// Create implements attendance.AttendanceRepository.
// The (employee_id, date) unique index makes a duplicate first check-in
// a conflict rather than a second row.
func (r *attendanceRepositoryImpl) Create(ctx context.Context, att attendance.Attendance) (attendance.Attendance, error) {
	q := GetQuerier(ctx, r.db)
	query := `
		INSERT INTO attendances (
			id, employee_id, date, check_in, check_out,
			break_hours, worked_hours, overtime_hours, status,
			created_at, updated_at
		) VALUES (
			uuidv7(), $1, $2, $3, NULL,
			$4, 0, 0, $5,
			NOW(), NOW()
		)
		ON CONFLICT (employee_id, date) DO NOTHING
		RETURNING id, created_at, updated_at
	`

	err := q.QueryRow(ctx, query,
		att.EmployeeID, att.Date, att.CheckIn, att.BreakHours, att.Status,
	).Scan(&att.ID, &att.CreatedAt, &att.UpdatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			// Row already exists for this day; the caller decides what
			// that means for its transition.
			return attendance.Attendance{}, attendance.ErrAlreadyCheckedIn
		}
		return attendance.Attendance{}, err
	}

	return att, nil
}

// GetByEmployeeAndDate implements attendance.AttendanceRepository.
func (r *attendanceRepositoryImpl) GetByEmployeeAndDate(ctx context.Context, employeeID string, date time.Time) (attendance.Attendance, error) {
	q := GetQuerier(ctx, r.db)
	query := `
		SELECT ` + attendanceColumns + `
		FROM attendances a
		WHERE a.employee_id = $1 AND a.date = $2
	`

	att, err := scanAttendance(q.QueryRow(ctx, query, employeeID, date))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return attendance.Attendance{}, attendance.ErrAttendanceNotFound
		}
		return attendance.Attendance{}, err
	}
	return att, nil
}

// SetCheckIn implements attendance.AttendanceRepository.
// Fills a placeholder row (e.g. pre-created ON_LEAVE) whose check_in is
// still unset; the guard keeps the first check-in time authoritative.
func (r *attendanceRepositoryImpl) SetCheckIn(ctx context.Context, id string, checkIn time.Time) (attendance.Attendance, error) {
	q := GetQuerier(ctx, r.db)
	query := `
		UPDATE attendances a
		SET check_in = $2, status = $3, updated_at = NOW()
		WHERE a.id = $1 AND a.check_in IS NULL
		RETURNING ` + attendanceColumns

	att, err := scanAttendance(q.QueryRow(ctx, query, id, checkIn, attendance.StatusPresent))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return attendance.Attendance{}, attendance.ErrAlreadyCheckedIn
		}
		return attendance.Attendance{}, err
	}
	return att, nil
}

// CompleteCheckOut implements attendance.AttendanceRepository.
// The check_out IS NULL guard makes concurrent check-outs lose cleanly
// instead of overwriting each other.
func (r *attendanceRepositoryImpl) CompleteCheckOut(ctx context.Context, id string, checkOut time.Time, breakHours, workedHours, overtimeHours decimal.Decimal) (attendance.Attendance, error) {
	q := GetQuerier(ctx, r.db)
	query := `
		UPDATE attendances a
		SET check_out = $2, break_hours = $3, worked_hours = $4,
		    overtime_hours = $5, updated_at = NOW()
		WHERE a.id = $1 AND a.check_in IS NOT NULL AND a.check_out IS NULL
		RETURNING ` + attendanceColumns

	att, err := scanAttendance(q.QueryRow(ctx, query, id, checkOut, breakHours, workedHours, overtimeHours))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return attendance.Attendance{}, attendance.ErrAlreadyCheckedOut
		}
		return attendance.Attendance{}, err
	}
	return att, nil
}

// ListByRange implements attendance.AttendanceRepository.
func (r *attendanceRepositoryImpl) ListByRange(ctx context.Context, employeeID string, from, to time.Time) ([]attendance.Attendance, error) {
	q := GetQuerier(ctx, r.db)
	query := `
		SELECT ` + attendanceColumns + `, e.full_name AS employee_name
		FROM attendances a
		JOIN employees e ON a.employee_id = e.id
		WHERE a.employee_id = $1 AND a.date >= $2 AND a.date <= $3
		ORDER BY a.date DESC
	`

	rows, err := q.Query(ctx, query, employeeID, from, to)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	attendances := make([]attendance.Attendance, 0)
	for rows.Next() {
		var att attendance.Attendance
		if err := rows.Scan(
			&att.ID, &att.EmployeeID, &att.Date, &att.CheckIn, &att.CheckOut,
			&att.BreakHours, &att.WorkedHours, &att.OvertimeHours, &att.Status,
			&att.CreatedAt, &att.UpdatedAt,
			&att.EmployeeName,
		); err != nil {
			return nil, err
		}
		attendances = append(attendances, att)
	}

	return attendances, rows.Err()
}

// EnsureOnLeave implements attendance.AttendanceRepository.
// Placeholder rows never overwrite an existing attendance day.
func (r *attendanceRepositoryImpl) EnsureOnLeave(ctx context.Context, employeeID string, date time.Time) error {
	q := GetQuerier(ctx, r.db)
	query := `
		INSERT INTO attendances (
			id, employee_id, date, check_in, check_out,
			break_hours, worked_hours, overtime_hours, status,
			created_at, updated_at
		) VALUES (
			uuidv7(), $1, $2, NULL, NULL,
			0, 0, 0, $3,
			NOW(), NOW()
		)
		ON CONFLICT (employee_id, date) DO NOTHING
	`

	_, err := q.Exec(ctx, query, employeeID, date, attendance.StatusOnLeave)
	return err
}
