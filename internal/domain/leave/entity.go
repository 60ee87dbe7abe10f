package leave

import (
	"strings"
	"time"
)

type Status string

const (
	StatusPending   Status = "Pending"
	StatusApproved  Status = "Approved"
	StatusRejected  Status = "Rejected"
	StatusCancelled Status = "Cancelled"
)

// Leave types share a fixed annual allowance.
const (
	TypeCasual = "casual"
	TypeSick   = "sick"
	TypeSad    = "sad"
)

// AnnualAllowance is the per-type, per-year day allowance.
const AnnualAllowance = 12

// ApproverAutoApproved marks requests that bypass the Pending state because
// the applicant's role has no higher approver.
const ApproverAutoApproved = "auto-approved"

// LeaveRequest entity
type LeaveRequest struct {
	ID            string
	EmployeeID    string
	EmployeeName  string
	Position      string
	ApplicantRole string
	LeaveType     string
	Approver      string
	FromDate      time.Time
	ToDate        time.Time
	Reason        string
	NumberOfDays  int
	Status        Status
	CancelledAt   *time.Time
	CreatedAt     time.Time
	UpdatedAt     time.Time
}

// ApproverForRole resolves the organizational role required to act on a
// request filed by the given position. The lookup is closed:
// employee -> admin, admin -> founder, founder and superadmin are
// auto-approved, anything else falls back to admin.
func ApproverForRole(position string) string {
	switch NormalizeRole(position) {
	case "employee":
		return "admin"
	case "admin":
		return "founder"
	case "founder", "superadmin":
		return ApproverAutoApproved
	default:
		return "admin"
	}
}

// NormalizeRole lower-cases and trims a position string.
func NormalizeRole(position string) string {
	return strings.ToLower(strings.TrimSpace(position))
}

// IsKnownType reports whether leaveType (already normalized) is one of the
// fixed leave types.
func IsKnownType(leaveType string) bool {
	switch leaveType {
	case TypeCasual, TypeSick, TypeSad:
		return true
	default:
		return false
	}
}
