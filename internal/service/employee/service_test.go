package employee

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/zeai-hr/timecore-backend-go/internal/domain/employee"
	"github.com/zeai-hr/timecore-backend-go/internal/pkg/jwt"
	"golang.org/x/crypto/bcrypt"
)

type fakeEmployeeRepo struct {
	employees map[string]employee.Employee
}

func (f *fakeEmployeeRepo) GetByEmployeeID(ctx context.Context, employeeID string) (employee.Employee, error) {
	emp, ok := f.employees[employeeID]
	if !ok {
		return employee.Employee{}, employee.ErrEmployeeNotFound
	}
	return emp, nil
}

func newLoginTestService(t *testing.T) employee.EmployeeService {
	t.Helper()

	hashed, err := bcrypt.GenerateFromPassword([]byte("secret123"), bcrypt.DefaultCost)
	require.NoError(t, err)

	repo := &fakeEmployeeRepo{employees: map[string]employee.Employee{
		"EMP-1": {
			EmployeeID:   "EMP-1",
			EmployeeName: "Ayu Lestari",
			Position:     "Employee",
			PasswordHash: string(hashed),
		},
	}}

	return NewEmployeeService(repo, jwt.NewJWTService("test-secret-key", "1h"))
}

func TestLogin(t *testing.T) {
	ctx := context.Background()

	t.Run("valid credentials issue a token", func(t *testing.T) {
		svc := newLoginTestService(t)

		result, err := svc.Login(ctx, employee.LoginRequest{EmployeeID: "EMP-1", Password: "secret123"})
		require.NoError(t, err)
		assert.Equal(t, "EMP-1", result.EmployeeID)
		assert.Equal(t, "employee", result.Role)
		assert.NotEmpty(t, result.AccessToken)
		assert.NotZero(t, result.ExpiresAt)
	})

	t.Run("wrong password is rejected", func(t *testing.T) {
		svc := newLoginTestService(t)

		_, err := svc.Login(ctx, employee.LoginRequest{EmployeeID: "EMP-1", Password: "nope"})
		assert.ErrorIs(t, err, employee.ErrInvalidCredentials)
	})

	t.Run("unknown employee is masked as invalid credentials", func(t *testing.T) {
		svc := newLoginTestService(t)

		_, err := svc.Login(ctx, employee.LoginRequest{EmployeeID: "EMP-404", Password: "secret123"})
		assert.ErrorIs(t, err, employee.ErrInvalidCredentials)
	})

	t.Run("missing fields fail validation", func(t *testing.T) {
		svc := newLoginTestService(t)

		_, err := svc.Login(ctx, employee.LoginRequest{})
		assert.Error(t, err)
	})
}

func TestResolve(t *testing.T) {
	ctx := context.Background()
	svc := newLoginTestService(t)

	resolved, err := svc.Resolve(ctx, "EMP-1")
	require.NoError(t, err)
	assert.Equal(t, "Ayu Lestari", resolved.EmployeeName)
	assert.Equal(t, "Employee", resolved.Position)

	_, err = svc.Resolve(ctx, "EMP-404")
	assert.ErrorIs(t, err, employee.ErrEmployeeNotFound)
}
