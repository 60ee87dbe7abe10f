package postgresql

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/zeai-hr/timecore-backend-go/internal/domain/employee"
	"github.com/zeai-hr/timecore-backend-go/internal/pkg/database"
)

type employeeRepository struct {
	db *database.DB
}

func NewEmployeeRepository(db *database.DB) employee.EmployeeRepository {
	return &employeeRepository{db: db}
}

// GetByEmployeeID implements employee.EmployeeRepository.
func (e *employeeRepository) GetByEmployeeID(ctx context.Context, employeeID string) (employee.Employee, error) {
	q := GetQuerier(ctx, e.db)

	query := `
		SELECT employee_id, employee_name, position, role, password_hash, created_at, updated_at
		FROM employees
		WHERE employee_id = $1
	`

	var emp employee.Employee
	err := q.QueryRow(ctx, query, employeeID).Scan(
		&emp.EmployeeID,
		&emp.EmployeeName,
		&emp.Position,
		&emp.Role,
		&emp.PasswordHash,
		&emp.CreatedAt,
		&emp.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return employee.Employee{}, employee.ErrEmployeeNotFound
		}
		return employee.Employee{}, fmt.Errorf("failed to get employee by employee ID: %w", err)
	}

	return emp, nil
}
