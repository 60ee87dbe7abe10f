package attendance

import (
	"database/sql/driver"
	"encoding/json"
	"errors"
	"time"
)

// BreakBudgetMinutes is the daily allowance of paid break time.
const BreakBudgetMinutes = 60

type Status string

const (
	StatusNone   Status = "None"
	StatusLogin  Status = "Login"
	StatusBreak  Status = "Break"
	StatusLogout Status = "Logout"
)

// BreakSegment is one finalized break. Start and End keep the raw clock
// strings the employee submitted; Minutes is the credited duration, which
// can be less than End-Start when the segment crossed the daily budget.
type BreakSegment struct {
	Start   string `json:"start"`
	End     string `json:"end"`
	Minutes int    `json:"minutes"`
}

// BreakSegments maps to a JSONB column.
type BreakSegments []BreakSegment

// Value implements driver.Valuer for database storage
func (bs BreakSegments) Value() (driver.Value, error) {
	if len(bs) == 0 {
		return nil, nil
	}
	return json.Marshal(bs)
}

// Scan implements sql.Scanner for database retrieval
func (bs *BreakSegments) Scan(value interface{}) error {
	if value == nil {
		return nil
	}

	bytes, ok := value.([]byte)
	if !ok {
		return errors.New("failed to scan BreakSegments: invalid type")
	}

	return json.Unmarshal(bytes, bs)
}

// Attendance is the per-employee-per-day record. At most one row exists per
// (EmployeeID, Date); BreakInProgress set implies Status is Break;
// BreakMinutesUsed never exceeds BreakBudgetMinutes.
type Attendance struct {
	ID               string
	EmployeeID       string
	Date             time.Time
	Status           Status
	LoginTime        string
	LogoutTime       string
	BreakSegments    BreakSegments
	BreakInProgress  *string
	BreakMinutesUsed int
	LoginReason      *string
	LogoutReason     *string
	CreatedAt        time.Time
	UpdatedAt        time.Time
}
