package attendance

import (
	"github.com/zeai-hr/timecore-backend-go/internal/pkg/validator"
)

// ========================================
// ATTENDANCE DTOs
// ========================================

type MarkLoginRequest struct {
	EmployeeID  string  `json:"employee_id"`
	Date        string  `json:"date,omitempty"`
	LoginTime   string  `json:"login_time"`
	LoginReason *string `json:"login_reason,omitempty"`
}

func (r *MarkLoginRequest) Validate() error {
	var errs validator.ValidationErrors

	if validator.IsEmpty(r.EmployeeID) {
		errs = append(errs, validator.ValidationError{
			Field:   "employee_id",
			Message: "employee_id is required",
		})
	}

	if validator.IsEmpty(r.LoginTime) {
		errs = append(errs, validator.ValidationError{
			Field:   "login_time",
			Message: "login_time is required",
		})
	} else if !validator.IsValidClockTime(r.LoginTime) {
		errs = append(errs, validator.ValidationError{
			Field:   "login_time",
			Message: "login_time must be in H:MM AM/PM format",
		})
	}

	if len(errs) > 0 {
		return errs
	}

	return nil
}

type BeginBreakRequest struct {
	EmployeeID string `json:"employee_id"`
	Date       string `json:"date,omitempty"`
	StartTime  string `json:"start_time"`
}

func (r *BeginBreakRequest) Validate() error {
	var errs validator.ValidationErrors

	if validator.IsEmpty(r.EmployeeID) {
		errs = append(errs, validator.ValidationError{
			Field:   "employee_id",
			Message: "employee_id is required",
		})
	}

	if validator.IsEmpty(r.StartTime) {
		errs = append(errs, validator.ValidationError{
			Field:   "start_time",
			Message: "start_time is required",
		})
	} else if !validator.IsValidClockTime(r.StartTime) {
		errs = append(errs, validator.ValidationError{
			Field:   "start_time",
			Message: "start_time must be in H:MM AM/PM format",
		})
	}

	if len(errs) > 0 {
		return errs
	}

	return nil
}

type EndBreakRequest struct {
	EmployeeID string `json:"employee_id"`
	Date       string `json:"date,omitempty"`
	EndTime    string `json:"end_time"`
}

func (r *EndBreakRequest) Validate() error {
	var errs validator.ValidationErrors

	if validator.IsEmpty(r.EmployeeID) {
		errs = append(errs, validator.ValidationError{
			Field:   "employee_id",
			Message: "employee_id is required",
		})
	}

	if validator.IsEmpty(r.EndTime) {
		errs = append(errs, validator.ValidationError{
			Field:   "end_time",
			Message: "end_time is required",
		})
	} else if !validator.IsValidClockTime(r.EndTime) {
		errs = append(errs, validator.ValidationError{
			Field:   "end_time",
			Message: "end_time must be in H:MM AM/PM format",
		})
	}

	if len(errs) > 0 {
		return errs
	}

	return nil
}

type MarkLogoutRequest struct {
	EmployeeID   string  `json:"employee_id"`
	Date         string  `json:"date,omitempty"`
	LogoutTime   string  `json:"logout_time"`
	LogoutReason *string `json:"logout_reason,omitempty"`
}

func (r *MarkLogoutRequest) Validate() error {
	var errs validator.ValidationErrors

	if validator.IsEmpty(r.EmployeeID) {
		errs = append(errs, validator.ValidationError{
			Field:   "employee_id",
			Message: "employee_id is required",
		})
	}

	if validator.IsEmpty(r.LogoutTime) {
		errs = append(errs, validator.ValidationError{
			Field:   "logout_time",
			Message: "logout_time is required",
		})
	} else if !validator.IsValidClockTime(r.LogoutTime) {
		errs = append(errs, validator.ValidationError{
			Field:   "logout_time",
			Message: "logout_time must be in H:MM AM/PM format",
		})
	}

	if len(errs) > 0 {
		return errs
	}

	return nil
}

type AttendanceResponse struct {
	ID               string         `json:"id,omitempty"`
	EmployeeID       string         `json:"employee_id"`
	Date             string         `json:"date"`
	Status           Status         `json:"status"`
	LoginTime        string         `json:"login_time,omitempty"`
	LogoutTime       string         `json:"logout_time,omitempty"`
	BreakSegments    []BreakSegment `json:"break_segments,omitempty"`
	BreakInProgress  *string        `json:"break_in_progress,omitempty"`
	BreakMinutesUsed int            `json:"break_minutes_used"`
	LoginReason      *string        `json:"login_reason,omitempty"`
	LogoutReason     *string        `json:"logout_reason,omitempty"`
}

type BreakStatusResponse struct {
	EmployeeID       string         `json:"employee_id"`
	Date             string         `json:"date"`
	BreakInProgress  *string        `json:"break_in_progress,omitempty"`
	BreakSegments    []BreakSegment `json:"break_segments,omitempty"`
	BreakMinutesUsed int            `json:"break_minutes_used"`
	LimitReached     bool           `json:"limit_reached"`
}
