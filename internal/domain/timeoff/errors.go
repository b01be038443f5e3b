package timeoff

import "errors"

var (
	ErrTypeNotFound        = errors.New("time off type not found")
	ErrAllocationNotFound  = errors.New("time off allocation not found for this year")
	ErrRequestNotFound     = errors.New("time off request not found")
	ErrInsufficientBalance = errors.New("insufficient time off allocation")
	ErrAlreadyProcessed    = errors.New("request has already been processed")
	ErrCrossYearRequest    = errors.New("request must not span a year boundary")

	// ErrInvariantViolation means a balance mutation would have driven
	// held or used days negative. It indicates a reservation/consumption
	// mismatch and is surfaced as an internal error, never clamped away.
	ErrInvariantViolation = errors.New("allocation balance invariant violated")
)
