package timeoff

import (
	"time"

	"github.com/worklane/timekeep-backend-go/internal/pkg/validator"
)

type SubmitRequestRequest struct {
	TimeOffTypeID string  `json:"time_off_type_id"`
	StartDate     string  `json:"start_date"`
	EndDate       string  `json:"end_date"`
	Reason        *string `json:"reason"`
}

func (r SubmitRequestRequest) Validate() error {
	var errs validator.ValidationErrors

	if validator.IsEmpty(r.TimeOffTypeID) {
		errs = append(errs, validator.ValidationError{Field: "time_off_type_id", Message: "is required"})
	}

	start, startOK := validator.IsValidDate(r.StartDate)
	if !startOK {
		errs = append(errs, validator.ValidationError{Field: "start_date", Message: "must be a valid date (YYYY-MM-DD)"})
	}
	end, endOK := validator.IsValidDate(r.EndDate)
	if !endOK {
		errs = append(errs, validator.ValidationError{Field: "end_date", Message: "must be a valid date (YYYY-MM-DD)"})
	}
	if startOK && endOK && end.Before(start) {
		errs = append(errs, validator.ValidationError{Field: "end_date", Message: "must not be before start_date"})
	}

	if len(errs) > 0 {
		return errs
	}
	return nil
}

type RequestFilter struct {
	EmployeeID *string
	Status     *RequestStatus
}

type TimeOffTypeResponse struct {
	ID             string  `json:"id"`
	Name           string  `json:"name"`
	IsPaid         bool    `json:"is_paid"`
	MaxDaysPerYear *string `json:"max_days_per_year"`
}

type AllocationResponse struct {
	ID              string  `json:"id"`
	EmployeeID      string  `json:"employee_id"`
	TimeOffTypeID   string  `json:"time_off_type_id"`
	TimeOffTypeName *string `json:"time_off_type_name,omitempty"`
	Year            int     `json:"year"`
	AllocatedDays   string  `json:"allocated_days"`
	UsedDays        string  `json:"used_days"`
	HeldDays        string  `json:"held_days"`
	AvailableDays   string  `json:"available_days"`
}

type RequestResponse struct {
	ID              string  `json:"id"`
	EmployeeID      string  `json:"employee_id"`
	EmployeeName    *string `json:"employee_name,omitempty"`
	TimeOffTypeID   string  `json:"time_off_type_id"`
	TimeOffTypeName *string `json:"time_off_type_name,omitempty"`
	StartDate       string  `json:"start_date"`
	EndDate         string  `json:"end_date"`
	RequestedDays   string  `json:"requested_days"`
	Status          string  `json:"status"`
	Reason          *string `json:"reason"`
	ApproverID      *string `json:"approver_id,omitempty"`
	ApproverName    *string `json:"approver_name,omitempty"`
	ApprovedAt      *string `json:"approved_at,omitempty"`
}

func (t TimeOffType) ToResponse() TimeOffTypeResponse {
	var maxDays *string
	if t.MaxDaysPerYear != nil {
		s := t.MaxDaysPerYear.StringFixed(2)
		maxDays = &s
	}
	return TimeOffTypeResponse{
		ID:             t.ID,
		Name:           t.Name,
		IsPaid:         t.IsPaid,
		MaxDaysPerYear: maxDays,
	}
}

func (a Allocation) ToResponse() AllocationResponse {
	return AllocationResponse{
		ID:              a.ID,
		EmployeeID:      a.EmployeeID,
		TimeOffTypeID:   a.TimeOffTypeID,
		TimeOffTypeName: a.TimeOffTypeName,
		Year:            a.Year,
		AllocatedDays:   a.AllocatedDays.StringFixed(2),
		UsedDays:        a.UsedDays.StringFixed(2),
		HeldDays:        a.HeldDays.StringFixed(2),
		AvailableDays:   a.AvailableDays().StringFixed(2),
	}
}

func (r Request) ToResponse() RequestResponse {
	var approvedAt *string
	if r.ApprovedAt != nil {
		s := r.ApprovedAt.Format(time.RFC3339)
		approvedAt = &s
	}
	return RequestResponse{
		ID:              r.ID,
		EmployeeID:      r.EmployeeID,
		EmployeeName:    r.EmployeeName,
		TimeOffTypeID:   r.TimeOffTypeID,
		TimeOffTypeName: r.TimeOffTypeName,
		StartDate:       r.StartDate.Format("2006-01-02"),
		EndDate:         r.EndDate.Format("2006-01-02"),
		RequestedDays:   r.RequestedDays.StringFixed(2),
		Status:          string(r.Status),
		Reason:          r.Reason,
		ApproverID:      r.ApproverID,
		ApproverName:    r.ApproverName,
		ApprovedAt:      approvedAt,
	}
}
