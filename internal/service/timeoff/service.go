package timeoff

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/shopspring/decimal"

	"github.com/worklane/timekeep-backend-go/internal/domain/attendance"
	"github.com/worklane/timekeep-backend-go/internal/domain/employee"
	"github.com/worklane/timekeep-backend-go/internal/domain/timeoff"
	"github.com/worklane/timekeep-backend-go/internal/pkg/database"
	"github.com/worklane/timekeep-backend-go/internal/pkg/timemath"
	"github.com/worklane/timekeep-backend-go/internal/repository/postgresql"
)

type TimeOffServiceImpl struct {
	db *database.DB
	timeoff.TimeOffTypeRepository
	timeoff.RequestRepository
	ledger         timeoff.BalanceLedger
	attendanceRepo attendance.AttendanceRepository
	allocationRepo timeoff.AllocationRepository
	employeeRepo   employee.EmployeeRepository
}

func NewTimeOffService(
	db *database.DB,
	typeRepo timeoff.TimeOffTypeRepository,
	allocationRepo timeoff.AllocationRepository,
	requestRepo timeoff.RequestRepository,
	ledger timeoff.BalanceLedger,
	attendanceRepo attendance.AttendanceRepository,
	employeeRepo employee.EmployeeRepository,
) timeoff.TimeOffService {
	return &TimeOffServiceImpl{
		db:                    db,
		TimeOffTypeRepository: typeRepo,
		RequestRepository:     requestRepo,
		ledger:                ledger,
		attendanceRepo:        attendanceRepo,
		allocationRepo:        allocationRepo,
		employeeRepo:          employeeRepo,
	}
}

// Submit implements timeoff.TimeOffService.
// The reservation happens before the request row exists; if the insert
// then fails, the hold is released again so no days stay stranded.
func (s *TimeOffServiceImpl) Submit(ctx context.Context, employeeID string, req timeoff.SubmitRequestRequest, now time.Time) (timeoff.RequestResponse, error) {
	if err := req.Validate(); err != nil {
		return timeoff.RequestResponse{}, err
	}

	startDate, err := time.Parse("2006-01-02", req.StartDate)
	if err != nil {
		return timeoff.RequestResponse{}, fmt.Errorf("failed to parse start date: %w", err)
	}
	endDate, err := time.Parse("2006-01-02", req.EndDate)
	if err != nil {
		return timeoff.RequestResponse{}, fmt.Errorf("failed to parse end date: %w", err)
	}

	// A single request reserves against a single year's allocation.
	// Spanning requests would need a split reservation, so they are
	// rejected; the caller submits one request per year instead.
	if startDate.Year() != endDate.Year() {
		return timeoff.RequestResponse{}, timeoff.ErrCrossYearRequest
	}

	if _, err := s.TimeOffTypeRepository.GetByID(ctx, req.TimeOffTypeID); err != nil {
		return timeoff.RequestResponse{}, err
	}

	requestedDays, err := timemath.InclusiveDayCount(startDate, endDate)
	if err != nil {
		return timeoff.RequestResponse{}, err
	}

	year := startDate.Year()
	if err := s.ledger.Reserve(ctx, employeeID, req.TimeOffTypeID, year, requestedDays); err != nil {
		return timeoff.RequestResponse{}, err
	}

	created, err := s.RequestRepository.Create(ctx, timeoff.Request{
		EmployeeID:    employeeID,
		TimeOffTypeID: req.TimeOffTypeID,
		StartDate:     startDate,
		EndDate:       endDate,
		RequestedDays: requestedDays,
		Status:        timeoff.RequestStatusPending,
		Reason:        req.Reason,
	})
	if err != nil {
		// Compensating release for the reservation made above.
		if relErr := s.ledger.Release(ctx, employeeID, req.TimeOffTypeID, year, requestedDays); relErr != nil {
			slog.Error("failed to release reservation after request insert failure",
				"employee_id", employeeID,
				"time_off_type_id", req.TimeOffTypeID,
				"year", year,
				"error", relErr,
			)
		}
		return timeoff.RequestResponse{}, fmt.Errorf("failed to create time off request: %w", err)
	}

	return created.ToResponse(), nil
}

// withTx runs fn inside a database transaction whose handle rides on
// the context, so every repository call inside joins it.
func (s *TimeOffServiceImpl) withTx(ctx context.Context, fn func(ctx context.Context) error) error {
	if s.db == nil {
		return fn(ctx)
	}
	return postgresql.WithTransaction(ctx, s.db, func(tx pgx.Tx) error {
		return fn(postgresql.ContextWithTx(ctx, tx))
	})
}

// Approve implements timeoff.TimeOffService.
func (s *TimeOffServiceImpl) Approve(ctx context.Context, requestID, approverID string, now time.Time) (timeoff.RequestResponse, error) {
	var approved timeoff.Request

	err := s.withTx(ctx, func(txCtx context.Context) error {
		request, err := s.RequestRepository.GetByID(txCtx, requestID)
		if err != nil {
			return err
		}
		if request.Status.Terminal() {
			return timeoff.ErrAlreadyProcessed
		}

		// The guarded status transition and the consume commit together
		// or not at all.
		if err := s.RequestRepository.UpdateStatus(txCtx, requestID, timeoff.RequestStatusApproved, approverID, now); err != nil {
			return err
		}
		if err := s.ledger.Consume(txCtx, request.EmployeeID, request.TimeOffTypeID, request.AllocationYear(), request.RequestedDays); err != nil {
			return fmt.Errorf("failed to consume reservation: %w", err)
		}

		// Pre-create ON_LEAVE placeholders so attendance reflects the
		// approved absence.
		for d := attendance.Day(request.StartDate); !d.After(request.EndDate); d = d.AddDate(0, 0, 1) {
			if err := s.attendanceRepo.EnsureOnLeave(txCtx, request.EmployeeID, d); err != nil {
				return fmt.Errorf("failed to mark attendance on leave: %w", err)
			}
		}

		approved = request
		return nil
	})
	if err != nil {
		return timeoff.RequestResponse{}, err
	}

	approved.Status = timeoff.RequestStatusApproved
	approved.ApproverID = &approverID
	approved.ApprovedAt = &now
	return approved.ToResponse(), nil
}

// Reject implements timeoff.TimeOffService.
func (s *TimeOffServiceImpl) Reject(ctx context.Context, requestID, approverID string, now time.Time) (timeoff.RequestResponse, error) {
	var rejected timeoff.Request

	err := s.withTx(ctx, func(txCtx context.Context) error {
		request, err := s.RequestRepository.GetByID(txCtx, requestID)
		if err != nil {
			return err
		}
		if request.Status.Terminal() {
			return timeoff.ErrAlreadyProcessed
		}

		if err := s.RequestRepository.UpdateStatus(txCtx, requestID, timeoff.RequestStatusRejected, approverID, now); err != nil {
			return err
		}
		if err := s.ledger.Release(txCtx, request.EmployeeID, request.TimeOffTypeID, request.AllocationYear(), request.RequestedDays); err != nil {
			return fmt.Errorf("failed to release reservation: %w", err)
		}

		rejected = request
		return nil
	})
	if err != nil {
		return timeoff.RequestResponse{}, err
	}

	rejected.Status = timeoff.RequestStatusRejected
	rejected.ApproverID = &approverID
	rejected.ApprovedAt = &now
	return rejected.ToResponse(), nil
}

// GetRequest implements timeoff.TimeOffService.
func (s *TimeOffServiceImpl) GetRequest(ctx context.Context, requestID string) (timeoff.RequestResponse, error) {
	request, err := s.RequestRepository.GetByID(ctx, requestID)
	if err != nil {
		return timeoff.RequestResponse{}, err
	}
	return request.ToResponse(), nil
}

// ListRequests implements timeoff.TimeOffService.
func (s *TimeOffServiceImpl) ListRequests(ctx context.Context, filter timeoff.RequestFilter) ([]timeoff.RequestResponse, error) {
	var (
		requests []timeoff.Request
		err      error
	)
	if filter.EmployeeID != nil {
		requests, err = s.RequestRepository.ListByEmployee(ctx, *filter.EmployeeID, filter.Status)
	} else {
		requests, err = s.RequestRepository.List(ctx, filter.Status)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to list time off requests: %w", err)
	}

	responses := make([]timeoff.RequestResponse, 0, len(requests))
	for _, request := range requests {
		responses = append(responses, request.ToResponse())
	}
	return responses, nil
}

// ListTypes implements timeoff.TimeOffService.
func (s *TimeOffServiceImpl) ListTypes(ctx context.Context) ([]timeoff.TimeOffTypeResponse, error) {
	types, err := s.TimeOffTypeRepository.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list time off types: %w", err)
	}

	responses := make([]timeoff.TimeOffTypeResponse, 0, len(types))
	for _, t := range types {
		responses = append(responses, t.ToResponse())
	}
	return responses, nil
}

// ListAllocations implements timeoff.TimeOffService.
func (s *TimeOffServiceImpl) ListAllocations(ctx context.Context, employeeID string, year int) ([]timeoff.AllocationResponse, error) {
	allocations, err := s.allocationRepo.ListByEmployeeYear(ctx, employeeID, year)
	if err != nil {
		return nil, fmt.Errorf("failed to list allocations: %w", err)
	}

	responses := make([]timeoff.AllocationResponse, 0, len(allocations))
	for _, alloc := range allocations {
		responses = append(responses, alloc.ToResponse())
	}
	return responses, nil
}

// InitializeAllocations implements timeoff.TimeOffService.
// Creates one allocation per type for the year; existing rows are left
// untouched so re-running is safe. An empty employeeID initializes
// every employee.
func (s *TimeOffServiceImpl) InitializeAllocations(ctx context.Context, employeeID string, year int) error {
	types, err := s.TimeOffTypeRepository.List(ctx)
	if err != nil {
		return fmt.Errorf("failed to list time off types: %w", err)
	}

	var employeeIDs []string
	if employeeID != "" {
		if _, err := s.employeeRepo.GetByID(ctx, employeeID); err != nil {
			return err
		}
		employeeIDs = []string{employeeID}
	} else {
		employees, err := s.employeeRepo.List(ctx)
		if err != nil {
			return fmt.Errorf("failed to list employees: %w", err)
		}
		for _, e := range employees {
			employeeIDs = append(employeeIDs, e.ID)
		}
	}

	for _, id := range employeeIDs {
		for _, t := range types {
			allocatedDays := decimal.Zero
			if t.MaxDaysPerYear != nil {
				allocatedDays = *t.MaxDaysPerYear
			}
			if _, err := s.allocationRepo.Upsert(ctx, timeoff.Allocation{
				EmployeeID:    id,
				TimeOffTypeID: t.ID,
				Year:          year,
				AllocatedDays: allocatedDays,
			}); err != nil {
				return fmt.Errorf("failed to initialize allocation for type %s: %w", t.ID, err)
			}
		}
	}

	return nil
}
