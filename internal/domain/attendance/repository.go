package attendance

import (
	"context"
	"time"
)

// AttendanceRepository persists daily attendance records. The transition
// methods carry their state pre-condition into the write itself so that two
// concurrent calls on the same record produce exactly one winner.
type AttendanceRepository interface {
	// Create inserts the first record of the day. A duplicate
	// (employee_id, date) pair fails with ErrAlreadyLoggedIn.
	Create(ctx context.Context, att Attendance) (Attendance, error)

	// GetByEmployeeAndDate returns nil without error when no record exists.
	GetByEmployeeAndDate(ctx context.Context, employeeID string, date time.Time) (*Attendance, error)

	// Relogin transitions a non-Login record back to Login and clears the
	// logout time. Fails with ErrAlreadyLoggedIn when the record is already
	// in Login state.
	Relogin(ctx context.Context, id string, loginTime string, reason *string) (Attendance, error)

	// StartBreak records the open break start time and moves the record to
	// Break. Guarded on break_minutes_used < BreakBudgetMinutes; fails with
	// ErrBreakBudgetExhausted otherwise.
	StartBreak(ctx context.Context, id string, startTime string) (Attendance, error)

	// FinishBreak writes the finalized segment list, the new cumulative
	// minutes and the Login status, clearing the open break. Guarded on an
	// open break being present; fails with ErrNoBreakInProgress otherwise.
	FinishBreak(ctx context.Context, att Attendance) (Attendance, error)

	// Logout is unconditional: repeated calls overwrite the logout time.
	Logout(ctx context.Context, id string, logoutTime string, reason *string) (Attendance, error)

	// History returns the most recent records, newest first.
	History(ctx context.Context, employeeID string, limit int) ([]Attendance, error)
}
