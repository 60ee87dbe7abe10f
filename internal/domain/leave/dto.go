package leave

import (
	"github.com/zeai-hr/timecore-backend-go/internal/pkg/validator"
)

// ========================================
// LEAVE DTOs
// ========================================

type ApplyLeaveRequest struct {
	EmployeeID   string `json:"employee_id"`
	LeaveType    string `json:"leave_type"`
	FromDate     string `json:"from_date"`
	ToDate       string `json:"to_date"`
	Reason       string `json:"reason"`
	NumberOfDays *int   `json:"number_of_days,omitempty"`
}

func (r *ApplyLeaveRequest) Validate() error {
	var errs validator.ValidationErrors

	if validator.IsEmpty(r.EmployeeID) {
		errs = append(errs, validator.ValidationError{
			Field:   "employee_id",
			Message: "employee_id is required",
		})
	}

	if validator.IsEmpty(r.LeaveType) {
		errs = append(errs, validator.ValidationError{
			Field:   "leave_type",
			Message: "leave_type is required",
		})
	} else if !IsKnownType(NormalizeRole(r.LeaveType)) {
		errs = append(errs, validator.ValidationError{
			Field:   "leave_type",
			Message: "leave_type must be one of casual, sick, sad",
		})
	}

	if validator.IsEmpty(r.FromDate) {
		errs = append(errs, validator.ValidationError{
			Field:   "from_date",
			Message: "from_date is required",
		})
	}

	if validator.IsEmpty(r.ToDate) {
		errs = append(errs, validator.ValidationError{
			Field:   "to_date",
			Message: "to_date is required",
		})
	}

	if validator.IsEmpty(r.Reason) {
		errs = append(errs, validator.ValidationError{
			Field:   "reason",
			Message: "reason is required",
		})
	}

	if r.NumberOfDays != nil && *r.NumberOfDays <= 0 {
		errs = append(errs, validator.ValidationError{
			Field:   "number_of_days",
			Message: "number_of_days must be positive",
		})
	}

	if len(errs) > 0 {
		return errs
	}

	return nil
}

type UpdateLeaveRequest struct {
	LeaveType *string `json:"leave_type,omitempty"`
	FromDate  *string `json:"from_date,omitempty"`
	ToDate    *string `json:"to_date,omitempty"`
	Reason    *string `json:"reason,omitempty"`
	Position  *string `json:"position,omitempty"`
}

func (r *UpdateLeaveRequest) Validate() error {
	var errs validator.ValidationErrors

	if r.LeaveType != nil && !IsKnownType(NormalizeRole(*r.LeaveType)) {
		errs = append(errs, validator.ValidationError{
			Field:   "leave_type",
			Message: "leave_type must be one of casual, sick, sad",
		})
	}

	if r.Reason != nil && validator.IsEmpty(*r.Reason) {
		errs = append(errs, validator.ValidationError{
			Field:   "reason",
			Message: "reason cannot be empty",
		})
	}

	if len(errs) > 0 {
		return errs
	}

	return nil
}

type SetStatusRequest struct {
	Status string `json:"status"`
}

func (r *SetStatusRequest) Validate() error {
	var errs validator.ValidationErrors

	if r.Status != string(StatusApproved) && r.Status != string(StatusRejected) {
		errs = append(errs, validator.ValidationError{
			Field:   "status",
			Message: "status must be Approved or Rejected",
		})
	}

	if len(errs) > 0 {
		return errs
	}

	return nil
}

type LeaveResponse struct {
	ID            string `json:"id"`
	EmployeeID    string `json:"employee_id"`
	EmployeeName  string `json:"employee_name"`
	Position      string `json:"position"`
	ApplicantRole string `json:"applicant_role"`
	LeaveType     string `json:"leave_type"`
	Approver      string `json:"approver"`
	FromDate      string `json:"from_date"`
	ToDate        string `json:"to_date"`
	Reason        string `json:"reason"`
	NumberOfDays  int    `json:"number_of_days"`
	Status        Status `json:"status"`
	CancelledAt   string `json:"cancelled_at,omitempty"`
	CreatedAt     string `json:"created_at,omitempty"`
}

// BalanceEntry reports the derived usage for one leave type in one year.
type BalanceEntry struct {
	Used      int `json:"used"`
	Total     int `json:"total"`
	Remaining int `json:"remaining"`
}

type BalanceResponse struct {
	EmployeeID string                  `json:"employee_id"`
	Year       int                     `json:"year"`
	Balances   map[string]BalanceEntry `json:"balances"`
}
