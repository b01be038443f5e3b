package response

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/worklane/timekeep-backend-go/internal/domain/attendance"
	"github.com/worklane/timekeep-backend-go/internal/domain/employee"
	"github.com/worklane/timekeep-backend-go/internal/domain/timeoff"
	"github.com/worklane/timekeep-backend-go/internal/domain/user"
	"github.com/worklane/timekeep-backend-go/internal/pkg/timemath"
	"github.com/worklane/timekeep-backend-go/internal/pkg/validator"
)

// HandleError maps domain errors to HTTP responses
func HandleError(w http.ResponseWriter, err error) {
	// Check if it's a validation error
	var validationErrs validator.ValidationErrors
	if errors.As(err, &validationErrs) {
		ValidationError(w, validationErrs.ToMap())
		return
	}

	switch {
	// Identity errors
	case errors.Is(err, user.ErrInvalidToken):
		Unauthorized(w, "Invalid or missing access token")
	case errors.Is(err, user.ErrApproverRoleRequired),
		errors.Is(err, user.ErrForbidden):
		Forbidden(w, "Access denied")

	// Attendance domain errors
	case errors.Is(err, attendance.ErrAlreadyCheckedIn):
		Conflict(w, "Already checked in today")
	case errors.Is(err, attendance.ErrAlreadyCheckedOut):
		Conflict(w, "Already checked out today")
	case errors.Is(err, attendance.ErrNoCheckIn):
		BadRequest(w, "No check-in found for today", nil)
	case errors.Is(err, attendance.ErrAttendanceNotFound):
		NotFound(w, "Attendance record not found")

	// Time off domain errors
	case errors.Is(err, timemath.ErrInvalidRange):
		BadRequest(w, "End must not be before start", nil)
	case errors.Is(err, timeoff.ErrInsufficientBalance):
		BadRequest(w, "Insufficient time off allocation", nil)
	case errors.Is(err, timeoff.ErrCrossYearRequest):
		BadRequest(w, "Request must not span a year boundary", nil)
	case errors.Is(err, timeoff.ErrAlreadyProcessed):
		Conflict(w, "Request has already been processed")
	case errors.Is(err, timeoff.ErrRequestNotFound):
		NotFound(w, "Time off request not found")
	case errors.Is(err, timeoff.ErrTypeNotFound):
		NotFound(w, "Time off type not found")
	case errors.Is(err, timeoff.ErrAllocationNotFound):
		NotFound(w, "Time off allocation not found for this year")

	// Employee collaborator errors
	case errors.Is(err, employee.ErrEmployeeNotFound):
		NotFound(w, "Employee not found")

	// A violated balance invariant is a bug, not a user error; it must
	// surface loudly and never be presented as recoverable.
	case errors.Is(err, timeoff.ErrInvariantViolation):
		slog.Error("balance invariant violated", "error", err)
		InternalServerError(w, "Internal accounting error")

	// Default
	default:
		slog.Error("unexpected error", "error", err)
		InternalServerError(w, "An unexpected error occurred")
	}
}
