package leave

import (
	"context"
)

// LeaveService owns the per-request lifecycle
// Pending -> {Approved, Rejected, Cancelled}, plus Pending -> Pending via
// edit-resubmission, and the derived per-year balance ledger.
type LeaveService interface {
	// Apply validates and files a new request. The only path that creates
	// one; founder and superadmin applicants are approved immediately.
	Apply(ctx context.Context, req ApplyLeaveRequest) (LeaveResponse, error)

	// SetStatus approves or rejects a Pending request. Anything already
	// resolved fails with ErrAlreadyResolved.
	SetStatus(ctx context.Context, id string, target Status) (LeaveResponse, error)

	// Cancel marks a request Cancelled from any state. An Approved leave can
	// be cancelled; its balance effect disappears because balances are
	// recomputed, never decremented.
	Cancel(ctx context.Context, employeeID, id string) (LeaveResponse, error)

	// Update edits a request and resubmits it as Pending, re-validating the
	// date range and recomputing the day count when either date changed.
	Update(ctx context.Context, employeeID, id string, req UpdateLeaveRequest) (LeaveResponse, error)

	// Balance derives used/remaining per leave type for the given year from
	// the Approved requests whose from date falls in that year.
	Balance(ctx context.Context, employeeID string, year int) (BalanceResponse, error)

	// PendingForApprover lists requests waiting on the given employee's
	// role, excluding the approver's own requests.
	PendingForApprover(ctx context.Context, approverEmployeeID string) ([]LeaveResponse, error)

	// PendingCount counts requests waiting on a role.
	PendingCount(ctx context.Context, approverRole string) (int64, error)

	// History lists an employee's requests, newest first. Cancelled requests
	// appear only when asked for explicitly.
	History(ctx context.Context, employeeID string, status string) ([]LeaveResponse, error)

	// CancelledHistory lists an employee's cancelled requests.
	CancelledHistory(ctx context.Context, employeeID string) ([]LeaveResponse, error)

	// Filter lists requests overlapping a date range, scoped by role or
	// employee.
	Filter(ctx context.Context, filter FilterQuery) ([]LeaveResponse, error)
}

// FilterQuery is the external shape of a range/role filter.
type FilterQuery struct {
	EmployeeID string
	Role       string
	Status     string
	FromDate   string
	ToDate     string
}
