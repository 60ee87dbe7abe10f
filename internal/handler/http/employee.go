package http

import (
	"encoding/json"
	"log/slog"
	"net/http"

	"github.com/zeai-hr/timecore-backend-go/internal/domain/employee"
	"github.com/zeai-hr/timecore-backend-go/internal/handler/http/response"
)

type EmployeeHandler interface {
	Login(w http.ResponseWriter, r *http.Request)
	Me(w http.ResponseWriter, r *http.Request)
}

type EmployeeHandlerImpl struct {
	employeeService employee.EmployeeService
}

func NewEmployeeHandler(employeeService employee.EmployeeService) EmployeeHandler {
	return &EmployeeHandlerImpl{
		employeeService: employeeService,
	}
}

// Login implements EmployeeHandler.
func (e *EmployeeHandlerImpl) Login(w http.ResponseWriter, r *http.Request) {
	var req employee.LoginRequest

	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		slog.Error("employee Login decode error", "error", err)
		response.BadRequest(w, "Invalid request format", nil)
		return
	}

	if err := req.Validate(); err != nil {
		response.HandleError(w, err)
		return
	}

	result, err := e.employeeService.Login(r.Context(), req)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.SuccessWithMessage(w, "Logged in successfully", result)
}

// Me implements EmployeeHandler.
func (e *EmployeeHandlerImpl) Me(w http.ResponseWriter, r *http.Request) {
	employeeID, ok := employeeIDFromClaims(r)
	if !ok {
		response.Unauthorized(w, "employee_id claim is missing or invalid")
		return
	}

	resolved, err := e.employeeService.Resolve(r.Context(), employeeID)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, resolved)
}
