package http

import (
	"encoding/json"
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/worklane/timekeep-backend-go/internal/domain/timeoff"
	"github.com/worklane/timekeep-backend-go/internal/domain/user"
	"github.com/worklane/timekeep-backend-go/internal/handler/http/middleware"
	"github.com/worklane/timekeep-backend-go/internal/handler/http/response"
	"github.com/worklane/timekeep-backend-go/internal/pkg/validator"
)

type TimeOffHandler interface {
	ListTypes(w http.ResponseWriter, r *http.Request)
	ListAllocations(w http.ResponseWriter, r *http.Request)
	InitializeAllocations(w http.ResponseWriter, r *http.Request)
	Submit(w http.ResponseWriter, r *http.Request)
	ListRequests(w http.ResponseWriter, r *http.Request)
	GetRequest(w http.ResponseWriter, r *http.Request)
	Approve(w http.ResponseWriter, r *http.Request)
	Reject(w http.ResponseWriter, r *http.Request)
}

type timeOffHandlerImpl struct {
	timeOffService timeoff.TimeOffService
}

func NewTimeOffHandler(timeOffService timeoff.TimeOffService) TimeOffHandler {
	return &timeOffHandlerImpl{
		timeOffService: timeOffService,
	}
}

// ListTypes implements TimeOffHandler.
func (h *timeOffHandlerImpl) ListTypes(w http.ResponseWriter, r *http.Request) {
	result, err := h.timeOffService.ListTypes(r.Context())
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, result)
}

// ListAllocations implements TimeOffHandler.
func (h *timeOffHandlerImpl) ListAllocations(w http.ResponseWriter, r *http.Request) {
	employeeID, err := targetEmployeeID(r)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	year := time.Now().UTC().Year()
	if y, err := strconv.Atoi(r.URL.Query().Get("year")); err == nil && y > 0 {
		year = y
	}

	result, err := h.timeOffService.ListAllocations(r.Context(), employeeID, year)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, result)
}

type initializeAllocationsRequest struct {
	EmployeeID string `json:"employee_id"`
	Year       int    `json:"year"`
}

// InitializeAllocations implements TimeOffHandler.
func (h *timeOffHandlerImpl) InitializeAllocations(w http.ResponseWriter, r *http.Request) {
	var req initializeAllocationsRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.BadRequest(w, "Invalid request format", nil)
		return
	}
	// Empty employee_id initializes every employee.
	if req.EmployeeID != "" && !validator.IsValidUUID(req.EmployeeID) {
		response.BadRequest(w, "employee_id must be a valid UUID", nil)
		return
	}
	if req.Year == 0 {
		req.Year = time.Now().UTC().Year()
	}

	if err := h.timeOffService.InitializeAllocations(r.Context(), req.EmployeeID, req.Year); err != nil {
		response.HandleError(w, err)
		return
	}

	response.SuccessWithMessage(w, "Allocations initialized", nil)
}

// Submit implements TimeOffHandler.
func (h *timeOffHandlerImpl) Submit(w http.ResponseWriter, r *http.Request) {
	employeeID, err := middleware.ClaimsEmployeeID(r)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	var req timeoff.SubmitRequestRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.BadRequest(w, "Invalid request format", nil)
		return
	}

	result, err := h.timeOffService.Submit(r.Context(), employeeID, req, time.Now().UTC())
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Created(w, "Time off request submitted", result)
}

// ListRequests implements TimeOffHandler.
func (h *timeOffHandlerImpl) ListRequests(w http.ResponseWriter, r *http.Request) {
	employeeID, err := middleware.ClaimsEmployeeID(r)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	var filter timeoff.RequestFilter
	if s := r.URL.Query().Get("status"); s != "" {
		status := timeoff.RequestStatus(s)
		filter.Status = &status
	}

	// Regular employees only see their own requests. Admin/HR see the
	// whole company unless they filter on a specific employee.
	if middleware.ClaimsRole(r).CanActForOthers() {
		if queried := r.URL.Query().Get("employee_id"); queried != "" {
			filter.EmployeeID = &queried
		}
	} else {
		filter.EmployeeID = &employeeID
	}

	result, err := h.timeOffService.ListRequests(r.Context(), filter)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, result)
}

// GetRequest implements TimeOffHandler.
func (h *timeOffHandlerImpl) GetRequest(w http.ResponseWriter, r *http.Request) {
	employeeID, err := middleware.ClaimsEmployeeID(r)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	requestID := chi.URLParam(r, "requestID")
	if !validator.IsValidUUID(requestID) {
		response.BadRequest(w, "Invalid request ID", nil)
		return
	}

	result, err := h.timeOffService.GetRequest(r.Context(), requestID)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	if result.EmployeeID != employeeID && !middleware.ClaimsRole(r).CanActForOthers() {
		response.HandleError(w, user.ErrForbidden)
		return
	}

	response.Success(w, result)
}

// Approve implements TimeOffHandler.
func (h *timeOffHandlerImpl) Approve(w http.ResponseWriter, r *http.Request) {
	approverID, err := middleware.ClaimsEmployeeID(r)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	requestID := chi.URLParam(r, "requestID")
	if !validator.IsValidUUID(requestID) {
		response.BadRequest(w, "Invalid request ID", nil)
		return
	}

	result, err := h.timeOffService.Approve(r.Context(), requestID, approverID, time.Now().UTC())
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.SuccessWithMessage(w, "Time off request approved", result)
}

// Reject implements TimeOffHandler.
func (h *timeOffHandlerImpl) Reject(w http.ResponseWriter, r *http.Request) {
	approverID, err := middleware.ClaimsEmployeeID(r)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	requestID := chi.URLParam(r, "requestID")
	if !validator.IsValidUUID(requestID) {
		response.BadRequest(w, "Invalid request ID", nil)
		return
	}

	result, err := h.timeOffService.Reject(r.Context(), requestID, approverID, time.Now().UTC())
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.SuccessWithMessage(w, "Time off request rejected", result)
}
