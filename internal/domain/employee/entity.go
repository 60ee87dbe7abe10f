package employee

import (
	"time"
)

// Employee is the directory entry consumed by the attendance and leave
// engines. EmployeeID is the natural key employees log in with.
type Employee struct {
	EmployeeID   string
	EmployeeName string
	Position     string
	Role         string
	PasswordHash string
	CreatedAt    time.Time
	UpdatedAt    time.Time
}
