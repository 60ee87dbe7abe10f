package employee

import "context"

type EmployeeRepository interface {
	GetByEmployeeID(ctx context.Context, employeeID string) (Employee, error)
}
