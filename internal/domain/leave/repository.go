package leave

import (
	"context"
	"time"
)

// HistoryFilter narrows per-employee history queries.
type HistoryFilter struct {
	// Status restricts to one status; empty means every non-Cancelled.
	Status string
	Limit  int
}

// RangeFilter selects requests overlapping [From, To], optionally scoped to
// an approver role or a single employee.
type RangeFilter struct {
	EmployeeID        string
	ApproverRole      string
	ExcludeEmployeeID string
	Status            string
	From              *time.Time
	To                *time.Time
}

// LeaveRequestRepository - interface for leave_requests table. Status
// transitions are guarded writes: the expected pre-condition is part of the
// UPDATE so concurrent transitions produce exactly one winner.
type LeaveRequestRepository interface {
	Create(ctx context.Context, request LeaveRequest) (LeaveRequest, error)
	GetByID(ctx context.Context, id string) (LeaveRequest, error)

	// Update rewrites the mutable fields of a Pending-bound edit.
	Update(ctx context.Context, request LeaveRequest) (LeaveRequest, error)

	// UpdateStatus flips status from -> to. When the row exists but is no
	// longer in the from state it fails with ErrAlreadyResolved.
	UpdateStatus(ctx context.Context, id string, from, to Status) (LeaveRequest, error)

	// Cancel marks the request Cancelled, keeping the first cancellation
	// timestamp on repeat calls.
	Cancel(ctx context.Context, id, employeeID string, at time.Time) (LeaveRequest, error)

	ListByEmployee(ctx context.Context, employeeID string, filter HistoryFilter) ([]LeaveRequest, error)
	ListCancelledByEmployee(ctx context.Context, employeeID string) ([]LeaveRequest, error)
	ListApprovedByEmployee(ctx context.Context, employeeID string) ([]LeaveRequest, error)
	ListPendingByApprover(ctx context.Context, approverRole string, excludeEmployeeID string) ([]LeaveRequest, error)
	CountPendingByApprover(ctx context.Context, approverRole string) (int64, error)
	Filter(ctx context.Context, filter RangeFilter) ([]LeaveRequest, error)
}
