package attendance

import (
	"context"
)

// AttendanceService defines the daily attendance state machine:
// None -> Login <-> Break -> Logout, one record per employee per day.
type AttendanceService interface {
	// MarkLogin starts the day, or re-logs an employee back in after a
	// logout. A second login without an intervening logout is rejected.
	MarkLogin(ctx context.Context, req MarkLoginRequest) (AttendanceResponse, error)

	// BeginBreak opens a break, rejected once the daily budget is spent.
	BeginBreak(ctx context.Context, req BeginBreakRequest) (BreakStatusResponse, error)

	// EndBreak finalizes the open break, crediting at most the remaining
	// daily allowance.
	EndBreak(ctx context.Context, req EndBreakRequest) (BreakStatusResponse, error)

	// MarkLogout closes the day. Idempotent: repeat calls overwrite the time.
	MarkLogout(ctx context.Context, req MarkLogoutRequest) (AttendanceResponse, error)

	// CurrentStatus reports today's record, or a synthetic None status when
	// the employee has not logged in yet.
	CurrentStatus(ctx context.Context, employeeID string) (AttendanceResponse, error)

	// History returns the most recent attendance records.
	History(ctx context.Context, employeeID string) ([]AttendanceResponse, error)
}
