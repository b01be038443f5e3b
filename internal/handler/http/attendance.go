package http

import (
	"encoding/json"
	"io"
	"net/http"
	"strconv"
	"time"

	"github.com/worklane/timekeep-backend-go/internal/domain/attendance"
	"github.com/worklane/timekeep-backend-go/internal/domain/user"
	"github.com/worklane/timekeep-backend-go/internal/handler/http/middleware"
	"github.com/worklane/timekeep-backend-go/internal/handler/http/response"
)

type AttendanceHandler interface {
	CheckIn(w http.ResponseWriter, r *http.Request)
	CheckOut(w http.ResponseWriter, r *http.Request)
	List(w http.ResponseWriter, r *http.Request)
	Summary(w http.ResponseWriter, r *http.Request)
}

type attendanceHandlerImpl struct {
	attendanceService attendance.AttendanceService
}

func NewAttendanceHandler(attendanceService attendance.AttendanceService) AttendanceHandler {
	return &attendanceHandlerImpl{
		attendanceService: attendanceService,
	}
}

// CheckIn implements AttendanceHandler.
func (h *attendanceHandlerImpl) CheckIn(w http.ResponseWriter, r *http.Request) {
	employeeID, err := middleware.ClaimsEmployeeID(r)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	result, err := h.attendanceService.CheckIn(r.Context(), employeeID, time.Now().UTC())
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.SuccessWithMessage(w, "Checked in successfully", result)
}

// CheckOut implements AttendanceHandler.
func (h *attendanceHandlerImpl) CheckOut(w http.ResponseWriter, r *http.Request) {
	employeeID, err := middleware.ClaimsEmployeeID(r)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	// Body is optional; an empty one means "use the stored break".
	var req attendance.CheckOutRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil && err != io.EOF {
		response.BadRequest(w, "Invalid request format", nil)
		return
	}

	result, err := h.attendanceService.CheckOut(r.Context(), employeeID, time.Now().UTC(), req)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.SuccessWithMessage(w, "Checked out successfully", result)
}

// monthYearParams resolves the month/year query parameters, defaulting
// to the current month.
func monthYearParams(r *http.Request) (time.Month, int) {
	now := time.Now().UTC()
	month := now.Month()
	year := now.Year()

	if m, err := strconv.Atoi(r.URL.Query().Get("month")); err == nil && m >= 1 && m <= 12 {
		month = time.Month(m)
	}
	if y, err := strconv.Atoi(r.URL.Query().Get("year")); err == nil && y > 0 {
		year = y
	}
	return month, year
}

// targetEmployeeID resolves which employee a read applies to. Only
// admin/HR may read someone else's records.
func targetEmployeeID(r *http.Request) (string, error) {
	employeeID, err := middleware.ClaimsEmployeeID(r)
	if err != nil {
		return "", err
	}

	queried := r.URL.Query().Get("employee_id")
	if queried == "" || queried == employeeID {
		return employeeID, nil
	}
	if !middleware.ClaimsRole(r).CanActForOthers() {
		return "", user.ErrForbidden
	}
	return queried, nil
}

// List implements AttendanceHandler.
func (h *attendanceHandlerImpl) List(w http.ResponseWriter, r *http.Request) {
	employeeID, err := targetEmployeeID(r)
	if err != nil {
		response.HandleError(w, err)
		return
	}
	month, year := monthYearParams(r)

	result, err := h.attendanceService.ListByMonth(r.Context(), employeeID, month, year)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, result)
}

// Summary implements AttendanceHandler.
func (h *attendanceHandlerImpl) Summary(w http.ResponseWriter, r *http.Request) {
	employeeID, err := targetEmployeeID(r)
	if err != nil {
		response.HandleError(w, err)
		return
	}
	month, year := monthYearParams(r)

	result, err := h.attendanceService.Summary(r.Context(), employeeID, month, year)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, result)
}
