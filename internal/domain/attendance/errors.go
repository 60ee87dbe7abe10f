package attendance

import "errors"

// Attendance domain errors
var (
	ErrAlreadyLoggedIn      = errors.New("already logged in today")
	ErrBreakBudgetExhausted = errors.New("the 60-minute daily break limit has been reached")
	ErrNoBreakInProgress    = errors.New("no break is in progress")
	ErrAttendanceNotFound   = errors.New("attendance record not found")
)
