package employee

import "context"

// EmployeeService is the thin directory surface the engines depend on.
type EmployeeService interface {
	// Login checks directory credentials and issues an access token.
	Login(ctx context.Context, req LoginRequest) (LoginResponse, error)

	// Resolve looks up the name and position used to stamp leave requests.
	Resolve(ctx context.Context, employeeID string) (ResolvedEmployee, error)
}
