package response

import (
	"errors"
	"net/http"

	"github.com/zeai-hr/timecore-backend-go/internal/domain/attendance"
	"github.com/zeai-hr/timecore-backend-go/internal/domain/employee"
	"github.com/zeai-hr/timecore-backend-go/internal/domain/leave"
	"github.com/zeai-hr/timecore-backend-go/internal/pkg/datetime"
	"github.com/zeai-hr/timecore-backend-go/internal/pkg/validator"
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
	// Parsing errors
	case errors.Is(err, datetime.ErrInvalidDate):
		BadRequest(w, "Invalid date format", nil)
	case errors.Is(err, datetime.ErrInvalidTime):
		BadRequest(w, "Invalid time format", nil)

	// Employee domain errors
	case errors.Is(err, employee.ErrInvalidCredentials):
		Unauthorized(w, "Invalid credentials")
	case errors.Is(err, employee.ErrEmployeeNotFound):
		NotFound(w, "Employee not found")

	// Attendance domain errors
	case errors.Is(err, attendance.ErrAlreadyLoggedIn):
		Conflict(w, "Already logged in today")
	case errors.Is(err, attendance.ErrBreakBudgetExhausted):
		BadRequest(w, "The 60-minute daily break limit has been reached", nil)
	case errors.Is(err, attendance.ErrNoBreakInProgress):
		BadRequest(w, "No break is in progress", nil)
	case errors.Is(err, attendance.ErrAttendanceNotFound):
		NotFound(w, "Attendance record not found")

	// Leave domain errors
	case errors.Is(err, leave.ErrLeaveNotFound):
		NotFound(w, "Leave request not found")
	case errors.Is(err, leave.ErrAlreadyResolved):
		Conflict(w, "Leave request already processed")
	case errors.Is(err, leave.ErrPastDate):
		BadRequest(w, "Cannot apply leave for past dates", nil)
	case errors.Is(err, leave.ErrInvertedRange):
		BadRequest(w, "to_date must be the same or after from_date", nil)
	case errors.Is(err, leave.ErrUnknownType):
		BadRequest(w, "Unknown leave type", nil)

	// Default
	default:
		InternalServerError(w, "An unexpected error occurred")
	}
}
