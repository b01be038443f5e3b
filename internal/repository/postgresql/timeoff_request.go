package postgresql

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	"github.com/worklane/timekeep-backend-go/internal/domain/timeoff"
	"github.com/worklane/timekeep-backend-go/internal/pkg/database"
)

type requestRepositoryImpl struct {
	db *database.DB
}

func NewRequestRepository(db *database.DB) timeoff.RequestRepository {
	return &requestRepositoryImpl{db: db}
}

const requestColumns = `
	r.id, r.employee_id, r.time_off_type_id, r.start_date, r.end_date,
	r.requested_days, r.status, r.reason, r.approver_id, r.approved_at,
	r.created_at, r.updated_at,
	e.full_name AS employee_name,
	t.name AS time_off_type_name,
	ap.full_name AS approver_name
`

const requestJoins = `
	FROM time_off_requests r
	JOIN employees e ON r.employee_id = e.id
	JOIN time_off_types t ON r.time_off_type_id = t.id
	LEFT JOIN employees ap ON r.approver_id = ap.id
`

func scanRequest(row pgx.Row) (timeoff.Request, error) {
	var req timeoff.Request
	err := row.Scan(
		&req.ID, &req.EmployeeID, &req.TimeOffTypeID, &req.StartDate, &req.EndDate,
		&req.RequestedDays, &req.Status, &req.Reason, &req.ApproverID, &req.ApprovedAt,
		&req.CreatedAt, &req.UpdatedAt,
		&req.EmployeeName, &req.TimeOffTypeName, &req.ApproverName,
	)
	return req, err
}

// Create implements timeoff.RequestRepository.
func (r *requestRepositoryImpl) Create(ctx context.Context, req timeoff.Request) (timeoff.Request, error) {
	q := GetQuerier(ctx, r.db)
	if req.ID == "" {
		req.ID = uuid.New().String()
	}
	query := `
		INSERT INTO time_off_requests (
			id, employee_id, time_off_type_id, start_date, end_date,
			requested_days, status, reason,
			created_at, updated_at
		) VALUES (
			$1, $2, $3, $4, $5,
			$6, $7, $8,
			NOW(), NOW()
		) RETURNING created_at, updated_at
	`

	err := q.QueryRow(ctx, query,
		req.ID, req.EmployeeID, req.TimeOffTypeID, req.StartDate, req.EndDate,
		req.RequestedDays, req.Status, req.Reason,
	).Scan(&req.CreatedAt, &req.UpdatedAt)
	if err != nil {
		return timeoff.Request{}, err
	}
	return req, nil
}

// GetByID implements timeoff.RequestRepository.
func (r *requestRepositoryImpl) GetByID(ctx context.Context, id string) (timeoff.Request, error) {
	q := GetQuerier(ctx, r.db)
	query := `SELECT ` + requestColumns + requestJoins + ` WHERE r.id = $1`

	req, err := scanRequest(q.QueryRow(ctx, query, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return timeoff.Request{}, timeoff.ErrRequestNotFound
		}
		return timeoff.Request{}, err
	}
	return req, nil
}

func (r *requestRepositoryImpl) list(ctx context.Context, where string, args ...interface{}) ([]timeoff.Request, error) {
	q := GetQuerier(ctx, r.db)
	query := `SELECT ` + requestColumns + requestJoins + where + ` ORDER BY r.created_at DESC`

	rows, err := q.Query(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	requests := make([]timeoff.Request, 0)
	for rows.Next() {
		req, err := scanRequest(rows)
		if err != nil {
			return nil, err
		}
		requests = append(requests, req)
	}

	return requests, rows.Err()
}

// ListByEmployee implements timeoff.RequestRepository.
func (r *requestRepositoryImpl) ListByEmployee(ctx context.Context, employeeID string, status *timeoff.RequestStatus) ([]timeoff.Request, error) {
	if status != nil {
		return r.list(ctx, ` WHERE r.employee_id = $1 AND r.status = $2`, employeeID, *status)
	}
	return r.list(ctx, ` WHERE r.employee_id = $1`, employeeID)
}

// List implements timeoff.RequestRepository.
func (r *requestRepositoryImpl) List(ctx context.Context, status *timeoff.RequestStatus) ([]timeoff.Request, error) {
	if status != nil {
		return r.list(ctx, ` WHERE r.status = $1`, *status)
	}
	return r.list(ctx, ``)
}

// UpdateStatus implements timeoff.RequestRepository.
// The status = PENDING guard makes the transition terminal: a request
// already approved or rejected cannot be processed a second time.
func (r *requestRepositoryImpl) UpdateStatus(ctx context.Context, id string, status timeoff.RequestStatus, approverID string, approvedAt time.Time) error {
	q := GetQuerier(ctx, r.db)
	query := `
		UPDATE time_off_requests
		SET status = $2, approver_id = $3, approved_at = $4, updated_at = NOW()
		WHERE id = $1 AND status = $5
	`

	result, err := q.Exec(ctx, query, id, status, approverID, approvedAt, timeoff.RequestStatusPending)
	if err != nil {
		return fmt.Errorf("failed to update request status: %w", err)
	}
	if result.RowsAffected() == 0 {
		return timeoff.ErrAlreadyProcessed
	}
	return nil
}
