package attendance

import (
	"context"
	"fmt"
	"time"

	"github.com/zeai-hr/timecore-backend-go/internal/domain/attendance"
	"github.com/zeai-hr/timecore-backend-go/internal/pkg/datetime"
)

const historyLimit = 5

type AttendanceServiceImpl struct {
	attendance.AttendanceRepository

	// now is swappable for tests
	now func() time.Time
}

func NewAttendanceService(attendanceRepo attendance.AttendanceRepository) attendance.AttendanceService {
	return &AttendanceServiceImpl{
		AttendanceRepository: attendanceRepo,
		now:                  func() time.Time { return time.Now().UTC() },
	}
}

// resolveDay normalizes an optional request date to the calendar day the
// operation targets, defaulting to today.
func (a *AttendanceServiceImpl) resolveDay(input string) (time.Time, error) {
	if input == "" {
		return datetime.StartOfDay(a.now()), nil
	}
	return datetime.ParseCalendarDate(input, false)
}

// MarkLogin implements attendance.AttendanceService.
func (a *AttendanceServiceImpl) MarkLogin(ctx context.Context, req attendance.MarkLoginRequest) (attendance.AttendanceResponse, error) {
	if err := req.Validate(); err != nil {
		return attendance.AttendanceResponse{}, err
	}

	day, err := a.resolveDay(req.Date)
	if err != nil {
		return attendance.AttendanceResponse{}, err
	}

	existing, err := a.AttendanceRepository.GetByEmployeeAndDate(ctx, req.EmployeeID, day)
	if err != nil {
		return attendance.AttendanceResponse{}, fmt.Errorf("failed to get attendance by employee and date: %w", err)
	}

	if existing == nil {
		created, err := a.AttendanceRepository.Create(ctx, attendance.Attendance{
			EmployeeID:  req.EmployeeID,
			Date:        day,
			Status:      attendance.StatusLogin,
			LoginTime:   req.LoginTime,
			LoginReason: req.LoginReason,
		})
		if err != nil {
			return attendance.AttendanceResponse{}, err
		}
		return mapAttendanceToResponse(created), nil
	}

	if existing.Status == attendance.StatusLogin {
		return attendance.AttendanceResponse{}, attendance.ErrAlreadyLoggedIn
	}

	// Re-login after a logout or break: back to Login, logout time reset
	// until the day actually ends.
	updated, err := a.AttendanceRepository.Relogin(ctx, existing.ID, req.LoginTime, req.LoginReason)
	if err != nil {
		return attendance.AttendanceResponse{}, err
	}

	return mapAttendanceToResponse(updated), nil
}

// BeginBreak implements attendance.AttendanceService.
func (a *AttendanceServiceImpl) BeginBreak(ctx context.Context, req attendance.BeginBreakRequest) (attendance.BreakStatusResponse, error) {
	if err := req.Validate(); err != nil {
		return attendance.BreakStatusResponse{}, err
	}

	if _, err := datetime.ParseClockMinutes(req.StartTime); err != nil {
		return attendance.BreakStatusResponse{}, err
	}

	day, err := a.resolveDay(req.Date)
	if err != nil {
		return attendance.BreakStatusResponse{}, err
	}

	record, err := a.AttendanceRepository.GetByEmployeeAndDate(ctx, req.EmployeeID, day)
	if err != nil {
		return attendance.BreakStatusResponse{}, fmt.Errorf("failed to get attendance by employee and date: %w", err)
	}
	if record == nil {
		return attendance.BreakStatusResponse{}, attendance.ErrAttendanceNotFound
	}

	if record.BreakMinutesUsed >= attendance.BreakBudgetMinutes {
		return attendance.BreakStatusResponse{}, attendance.ErrBreakBudgetExhausted
	}

	// The repository re-checks the budget inside the write, so a concurrent
	// EndBreak that spends the last minutes still loses exactly one of the
	// two calls.
	updated, err := a.AttendanceRepository.StartBreak(ctx, record.ID, req.StartTime)
	if err != nil {
		return attendance.BreakStatusResponse{}, err
	}

	return mapBreakStatus(updated), nil
}

// EndBreak implements attendance.AttendanceService.
func (a *AttendanceServiceImpl) EndBreak(ctx context.Context, req attendance.EndBreakRequest) (attendance.BreakStatusResponse, error) {
	if err := req.Validate(); err != nil {
		return attendance.BreakStatusResponse{}, err
	}

	day, err := a.resolveDay(req.Date)
	if err != nil {
		return attendance.BreakStatusResponse{}, err
	}

	record, err := a.AttendanceRepository.GetByEmployeeAndDate(ctx, req.EmployeeID, day)
	if err != nil {
		return attendance.BreakStatusResponse{}, fmt.Errorf("failed to get attendance by employee and date: %w", err)
	}
	if record == nil {
		return attendance.BreakStatusResponse{}, attendance.ErrAttendanceNotFound
	}
	if record.BreakInProgress == nil {
		return attendance.BreakStatusResponse{}, attendance.ErrNoBreakInProgress
	}

	startMinutes, err := datetime.ParseClockMinutes(*record.BreakInProgress)
	if err != nil {
		return attendance.BreakStatusResponse{}, err
	}
	endMinutes, err := datetime.ParseClockMinutes(req.EndTime)
	if err != nil {
		return attendance.BreakStatusResponse{}, err
	}

	// Out-of-order clock strings floor at zero rather than erroring.
	duration := endMinutes - startMinutes
	if duration < 0 {
		duration = 0
	}

	// Segment truncation: credit only the remaining allowance, but keep the
	// raw start/end strings on the record for audit.
	credited := duration
	if remaining := attendance.BreakBudgetMinutes - record.BreakMinutesUsed; credited > remaining {
		credited = remaining
	}

	record.BreakSegments = append(record.BreakSegments, attendance.BreakSegment{
		Start:   *record.BreakInProgress,
		End:     req.EndTime,
		Minutes: credited,
	})
	record.BreakMinutesUsed += credited
	record.BreakInProgress = nil
	record.Status = attendance.StatusLogin

	updated, err := a.AttendanceRepository.FinishBreak(ctx, *record)
	if err != nil {
		return attendance.BreakStatusResponse{}, err
	}

	return mapBreakStatus(updated), nil
}

// MarkLogout implements attendance.AttendanceService.
func (a *AttendanceServiceImpl) MarkLogout(ctx context.Context, req attendance.MarkLogoutRequest) (attendance.AttendanceResponse, error) {
	if err := req.Validate(); err != nil {
		return attendance.AttendanceResponse{}, err
	}

	day, err := a.resolveDay(req.Date)
	if err != nil {
		return attendance.AttendanceResponse{}, err
	}

	record, err := a.AttendanceRepository.GetByEmployeeAndDate(ctx, req.EmployeeID, day)
	if err != nil {
		return attendance.AttendanceResponse{}, fmt.Errorf("failed to get attendance by employee and date: %w", err)
	}
	if record == nil {
		return attendance.AttendanceResponse{}, attendance.ErrAttendanceNotFound
	}

	updated, err := a.AttendanceRepository.Logout(ctx, record.ID, req.LogoutTime, req.LogoutReason)
	if err != nil {
		return attendance.AttendanceResponse{}, err
	}

	return mapAttendanceToResponse(updated), nil
}

// CurrentStatus implements attendance.AttendanceService.
func (a *AttendanceServiceImpl) CurrentStatus(ctx context.Context, employeeID string) (attendance.AttendanceResponse, error) {
	today := datetime.StartOfDay(a.now())

	record, err := a.AttendanceRepository.GetByEmployeeAndDate(ctx, employeeID, today)
	if err != nil {
		return attendance.AttendanceResponse{}, fmt.Errorf("failed to get attendance by employee and date: %w", err)
	}

	if record == nil {
		return attendance.AttendanceResponse{
			EmployeeID: employeeID,
			Date:       datetime.FormatCalendarDate(today),
			Status:     attendance.StatusNone,
		}, nil
	}

	return mapAttendanceToResponse(*record), nil
}

// History implements attendance.AttendanceService.
func (a *AttendanceServiceImpl) History(ctx context.Context, employeeID string) ([]attendance.AttendanceResponse, error) {
	records, err := a.AttendanceRepository.History(ctx, employeeID, historyLimit)
	if err != nil {
		return nil, fmt.Errorf("failed to get attendance history: %w", err)
	}

	responses := make([]attendance.AttendanceResponse, 0, len(records))
	for _, record := range records {
		responses = append(responses, mapAttendanceToResponse(record))
	}
	return responses, nil
}

// mapAttendanceToResponse converts an Attendance entity to AttendanceResponse
func mapAttendanceToResponse(att attendance.Attendance) attendance.AttendanceResponse {
	return attendance.AttendanceResponse{
		ID:               att.ID,
		EmployeeID:       att.EmployeeID,
		Date:             datetime.FormatCalendarDate(att.Date),
		Status:           att.Status,
		LoginTime:        att.LoginTime,
		LogoutTime:       att.LogoutTime,
		BreakSegments:    att.BreakSegments,
		BreakInProgress:  att.BreakInProgress,
		BreakMinutesUsed: att.BreakMinutesUsed,
		LoginReason:      att.LoginReason,
		LogoutReason:     att.LogoutReason,
	}
}

func mapBreakStatus(att attendance.Attendance) attendance.BreakStatusResponse {
	return attendance.BreakStatusResponse{
		EmployeeID:       att.EmployeeID,
		Date:             datetime.FormatCalendarDate(att.Date),
		BreakInProgress:  att.BreakInProgress,
		BreakSegments:    att.BreakSegments,
		BreakMinutesUsed: att.BreakMinutesUsed,
		LimitReached:     att.BreakMinutesUsed >= attendance.BreakBudgetMinutes,
	}
}
