package employee

import (
	"context"
	"errors"
	"fmt"

	"github.com/zeai-hr/timecore-backend-go/internal/domain/employee"
	"github.com/zeai-hr/timecore-backend-go/internal/pkg/jwt"
	"golang.org/x/crypto/bcrypt"
)

type EmployeeServiceImpl struct {
	employee.EmployeeRepository
	jwtService jwt.Service
}

func NewEmployeeService(employeeRepo employee.EmployeeRepository, jwtService jwt.Service) employee.EmployeeService {
	return &EmployeeServiceImpl{
		EmployeeRepository: employeeRepo,
		jwtService:         jwtService,
	}
}

// Login implements employee.EmployeeService.
func (e *EmployeeServiceImpl) Login(ctx context.Context, req employee.LoginRequest) (employee.LoginResponse, error) {
	if err := req.Validate(); err != nil {
		return employee.LoginResponse{}, err
	}

	emp, err := e.EmployeeRepository.GetByEmployeeID(ctx, req.EmployeeID)
	if err != nil {
		if errors.Is(err, employee.ErrEmployeeNotFound) {
			// Do not reveal whether the employee exists.
			return employee.LoginResponse{}, employee.ErrInvalidCredentials
		}
		return employee.LoginResponse{}, fmt.Errorf("failed to get employee: %w", err)
	}

	if err := bcrypt.CompareHashAndPassword([]byte(emp.PasswordHash), []byte(req.Password)); err != nil {
		return employee.LoginResponse{}, employee.ErrInvalidCredentials
	}

	token, expiresAt, err := e.jwtService.GenerateAccessToken(emp.EmployeeID, emp.EmployeeName, emp.Position)
	if err != nil {
		return employee.LoginResponse{}, fmt.Errorf("failed to generate access token: %w", err)
	}

	role := emp.Role
	if role == "" {
		role = "employee"
	}

	return employee.LoginResponse{
		EmployeeID:   emp.EmployeeID,
		EmployeeName: emp.EmployeeName,
		Position:     emp.Position,
		Role:         role,
		AccessToken:  token,
		ExpiresAt:    expiresAt,
	}, nil
}

// Resolve implements employee.EmployeeService.
func (e *EmployeeServiceImpl) Resolve(ctx context.Context, employeeID string) (employee.ResolvedEmployee, error) {
	emp, err := e.EmployeeRepository.GetByEmployeeID(ctx, employeeID)
	if err != nil {
		return employee.ResolvedEmployee{}, err
	}

	return employee.ResolvedEmployee{
		EmployeeName: emp.EmployeeName,
		Position:     emp.Position,
	}, nil
}
