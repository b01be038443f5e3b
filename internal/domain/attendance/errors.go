package attendance

import "errors"

// Attendance domain errors
var (
	// Check-in / check-out errors
	ErrAlreadyCheckedIn  = errors.New("you have already checked in today")
	ErrAlreadyCheckedOut = errors.New("you have already checked out today")
	ErrNoCheckIn         = errors.New("no check-in found for today")

	// General errors
	ErrAttendanceNotFound = errors.New("attendance record not found")
)
