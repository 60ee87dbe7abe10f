package http

import (
	"encoding/json"
	"log/slog"
	"net/http"

	"github.com/go-chi/jwtauth/v5"
	"github.com/zeai-hr/timecore-backend-go/internal/domain/attendance"
	"github.com/zeai-hr/timecore-backend-go/internal/handler/http/response"
)

type AttendanceHandler interface {
	Login(w http.ResponseWriter, r *http.Request)
	StartBreak(w http.ResponseWriter, r *http.Request)
	EndBreak(w http.ResponseWriter, r *http.Request)
	Logout(w http.ResponseWriter, r *http.Request)
	Status(w http.ResponseWriter, r *http.Request)
	History(w http.ResponseWriter, r *http.Request)
}

type AttendanceHandlerImpl struct {
	attendanceService attendance.AttendanceService
}

func NewAttendanceHandler(attendanceService attendance.AttendanceService) AttendanceHandler {
	return &AttendanceHandlerImpl{
		attendanceService: attendanceService,
	}
}

// employeeIDFromClaims pulls the authenticated employee out of the JWT.
func employeeIDFromClaims(r *http.Request) (string, bool) {
	_, claims, err := jwtauth.FromContext(r.Context())
	if err != nil {
		return "", false
	}
	employeeID, ok := claims["employee_id"].(string)
	return employeeID, ok && employeeID != ""
}

// Login implements AttendanceHandler.
func (a *AttendanceHandlerImpl) Login(w http.ResponseWriter, r *http.Request) {
	var req attendance.MarkLoginRequest

	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		slog.Error("attendance Login decode error", "error", err)
		response.BadRequest(w, "Invalid request format", nil)
		return
	}

	employeeID, ok := employeeIDFromClaims(r)
	if !ok {
		response.Unauthorized(w, "employee_id claim is missing or invalid")
		return
	}
	req.EmployeeID = employeeID

	if err := req.Validate(); err != nil {
		response.HandleError(w, err)
		return
	}

	record, err := a.attendanceService.MarkLogin(r.Context(), req)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Created(w, "Logged in successfully", record)
}

// StartBreak implements AttendanceHandler.
func (a *AttendanceHandlerImpl) StartBreak(w http.ResponseWriter, r *http.Request) {
	var req attendance.BeginBreakRequest

	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		slog.Error("attendance StartBreak decode error", "error", err)
		response.BadRequest(w, "Invalid request format", nil)
		return
	}

	employeeID, ok := employeeIDFromClaims(r)
	if !ok {
		response.Unauthorized(w, "employee_id claim is missing or invalid")
		return
	}
	req.EmployeeID = employeeID

	if err := req.Validate(); err != nil {
		response.HandleError(w, err)
		return
	}

	status, err := a.attendanceService.BeginBreak(r.Context(), req)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.SuccessWithMessage(w, "Break started", status)
}

// EndBreak implements AttendanceHandler.
func (a *AttendanceHandlerImpl) EndBreak(w http.ResponseWriter, r *http.Request) {
	var req attendance.EndBreakRequest

	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		slog.Error("attendance EndBreak decode error", "error", err)
		response.BadRequest(w, "Invalid request format", nil)
		return
	}

	employeeID, ok := employeeIDFromClaims(r)
	if !ok {
		response.Unauthorized(w, "employee_id claim is missing or invalid")
		return
	}
	req.EmployeeID = employeeID

	if err := req.Validate(); err != nil {
		response.HandleError(w, err)
		return
	}

	status, err := a.attendanceService.EndBreak(r.Context(), req)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.SuccessWithMessage(w, "Break ended", status)
}

// Logout implements AttendanceHandler.
func (a *AttendanceHandlerImpl) Logout(w http.ResponseWriter, r *http.Request) {
	var req attendance.MarkLogoutRequest

	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		slog.Error("attendance Logout decode error", "error", err)
		response.BadRequest(w, "Invalid request format", nil)
		return
	}

	employeeID, ok := employeeIDFromClaims(r)
	if !ok {
		response.Unauthorized(w, "employee_id claim is missing or invalid")
		return
	}
	req.EmployeeID = employeeID

	if err := req.Validate(); err != nil {
		response.HandleError(w, err)
		return
	}

	record, err := a.attendanceService.MarkLogout(r.Context(), req)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.SuccessWithMessage(w, "Logged out successfully", record)
}

// Status implements AttendanceHandler.
func (a *AttendanceHandlerImpl) Status(w http.ResponseWriter, r *http.Request) {
	employeeID, ok := employeeIDFromClaims(r)
	if !ok {
		response.Unauthorized(w, "employee_id claim is missing or invalid")
		return
	}

	record, err := a.attendanceService.CurrentStatus(r.Context(), employeeID)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, record)
}

// History implements AttendanceHandler.
func (a *AttendanceHandlerImpl) History(w http.ResponseWriter, r *http.Request) {
	employeeID, ok := employeeIDFromClaims(r)
	if !ok {
		response.Unauthorized(w, "employee_id claim is missing or invalid")
		return
	}

	records, err := a.attendanceService.History(r.Context(), employeeID)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, records)
}
