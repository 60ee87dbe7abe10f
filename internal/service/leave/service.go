package leave

import (
	"context"
	"fmt"
	"time"

	"github.com/zeai-hr/timecore-backend-go/internal/domain/employee"
	"github.com/zeai-hr/timecore-backend-go/internal/domain/leave"
	"github.com/zeai-hr/timecore-backend-go/internal/pkg/datetime"
)

const historyLimit = 5

type LeaveServiceImpl struct {
	leave.LeaveRequestRepository
	employee.EmployeeRepository

	// now is swappable for tests
	now func() time.Time
}

func NewLeaveService(leaveRequestRepo leave.LeaveRequestRepository, employeeRepo employee.EmployeeRepository) leave.LeaveService {
	return &LeaveServiceImpl{
		LeaveRequestRepository: leaveRequestRepo,
		EmployeeRepository:     employeeRepo,
		now:                    func() time.Time { return time.Now().UTC() },
	}
}

// Apply implements leave.LeaveService.
func (l *LeaveServiceImpl) Apply(ctx context.Context, req leave.ApplyLeaveRequest) (leave.LeaveResponse, error) {
	if err := req.Validate(); err != nil {
		return leave.LeaveResponse{}, err
	}

	// Name and position are stamped from the directory, not trusted from
	// the request body.
	emp, err := l.EmployeeRepository.GetByEmployeeID(ctx, req.EmployeeID)
	if err != nil {
		return leave.LeaveResponse{}, err
	}

	from, err := datetime.ParseCalendarDate(req.FromDate, false)
	if err != nil {
		return leave.LeaveResponse{}, err
	}
	to, err := datetime.ParseCalendarDate(req.ToDate, true)
	if err != nil {
		return leave.LeaveResponse{}, err
	}

	today := datetime.StartOfDay(l.now())
	if from.Before(today) {
		return leave.LeaveResponse{}, leave.ErrPastDate
	}
	if to.Before(from) {
		return leave.LeaveResponse{}, leave.ErrInvertedRange
	}

	days := 0
	if req.NumberOfDays != nil && *req.NumberOfDays > 0 {
		days = *req.NumberOfDays
	} else {
		days = datetime.InclusiveDayCount(from, to)
	}

	approver := leave.ApproverForRole(emp.Position)
	status := leave.StatusPending
	if approver == leave.ApproverAutoApproved {
		status = leave.StatusApproved
	}

	request := leave.LeaveRequest{
		EmployeeID:    emp.EmployeeID,
		EmployeeName:  emp.EmployeeName,
		Position:      emp.Position,
		ApplicantRole: leave.NormalizeRole(emp.Position),
		LeaveType:     leave.NormalizeRole(req.LeaveType),
		Approver:      approver,
		FromDate:      from,
		ToDate:        to,
		Reason:        req.Reason,
		NumberOfDays:  days,
		Status:        status,
	}

	created, err := l.LeaveRequestRepository.Create(ctx, request)
	if err != nil {
		return leave.LeaveResponse{}, fmt.Errorf("failed to create leave request: %w", err)
	}

	return mapLeaveToResponse(created), nil
}

// SetStatus implements leave.LeaveService.
func (l *LeaveServiceImpl) SetStatus(ctx context.Context, id string, target leave.Status) (leave.LeaveResponse, error) {
	req := leave.SetStatusRequest{Status: string(target)}
	if err := req.Validate(); err != nil {
		return leave.LeaveResponse{}, err
	}

	// The Pending pre-condition rides inside the update itself: of two
	// concurrent approvals exactly one wins, the other sees AlreadyResolved.
	updated, err := l.LeaveRequestRepository.UpdateStatus(ctx, id, leave.StatusPending, target)
	if err != nil {
		return leave.LeaveResponse{}, err
	}

	return mapLeaveToResponse(updated), nil
}

// Cancel implements leave.LeaveService.
func (l *LeaveServiceImpl) Cancel(ctx context.Context, employeeID, id string) (leave.LeaveResponse, error) {
	cancelled, err := l.LeaveRequestRepository.Cancel(ctx, id, employeeID, l.now())
	if err != nil {
		return leave.LeaveResponse{}, err
	}

	return mapLeaveToResponse(cancelled), nil
}

// Update implements leave.LeaveService. Editing a request re-validates the
// date range, recomputes the day count when either date changed, and always
// resubmits the request as Pending.
func (l *LeaveServiceImpl) Update(ctx context.Context, employeeID, id string, req leave.UpdateLeaveRequest) (leave.LeaveResponse, error) {
	if err := req.Validate(); err != nil {
		return leave.LeaveResponse{}, err
	}

	request, err := l.LeaveRequestRepository.GetByID(ctx, id)
	if err != nil {
		return leave.LeaveResponse{}, err
	}
	if request.EmployeeID != employeeID {
		return leave.LeaveResponse{}, leave.ErrLeaveNotFound
	}

	datesChanged := false
	if req.FromDate != nil {
		from, err := datetime.ParseCalendarDate(*req.FromDate, false)
		if err != nil {
			return leave.LeaveResponse{}, err
		}
		request.FromDate = from
		datesChanged = true
	}
	if req.ToDate != nil {
		to, err := datetime.ParseCalendarDate(*req.ToDate, true)
		if err != nil {
			return leave.LeaveResponse{}, err
		}
		request.ToDate = to
		datesChanged = true
	}

	if request.ToDate.Before(request.FromDate) {
		return leave.LeaveResponse{}, leave.ErrInvertedRange
	}

	if datesChanged || request.NumberOfDays <= 0 {
		request.NumberOfDays = datetime.InclusiveDayCount(request.FromDate, request.ToDate)
	}

	if req.LeaveType != nil {
		request.LeaveType = leave.NormalizeRole(*req.LeaveType)
	}
	if req.Reason != nil {
		request.Reason = *req.Reason
	}
	if req.Position != nil {
		request.Position = *req.Position
		request.ApplicantRole = leave.NormalizeRole(*req.Position)
		request.Approver = leave.ApproverForRole(*req.Position)
	}

	// Edits always resubmit, even when the request had drifted out of
	// Pending.
	request.Status = leave.StatusPending

	updated, err := l.LeaveRequestRepository.Update(ctx, request)
	if err != nil {
		return leave.LeaveResponse{}, fmt.Errorf("failed to update leave request: %w", err)
	}

	return mapLeaveToResponse(updated), nil
}

// Balance implements leave.LeaveService. Balances are a projection over the
// Approved requests of the year, never a stored counter, so cancelling an
// Approved leave releases its days without a compensating write.
func (l *LeaveServiceImpl) Balance(ctx context.Context, employeeID string, year int) (leave.BalanceResponse, error) {
	approved, err := l.LeaveRequestRepository.ListApprovedByEmployee(ctx, employeeID)
	if err != nil {
		return leave.BalanceResponse{}, fmt.Errorf("failed to list approved leave requests: %w", err)
	}

	used := map[string]int{
		leave.TypeCasual: 0,
		leave.TypeSick:   0,
		leave.TypeSad:    0,
	}
	for _, request := range approved {
		if request.FromDate.Year() != year {
			continue
		}
		if _, ok := used[request.LeaveType]; ok {
			used[request.LeaveType] += request.NumberOfDays
		}
	}

	balances := make(map[string]leave.BalanceEntry, len(used))
	for leaveType, days := range used {
		remaining := leave.AnnualAllowance - days
		if remaining < 0 {
			remaining = 0
		}
		balances[leaveType] = leave.BalanceEntry{
			Used:      days,
			Total:     leave.AnnualAllowance,
			Remaining: remaining,
		}
	}

	return leave.BalanceResponse{
		EmployeeID: employeeID,
		Year:       year,
		Balances:   balances,
	}, nil
}

// PendingForApprover implements leave.LeaveService.
func (l *LeaveServiceImpl) PendingForApprover(ctx context.Context, approverEmployeeID string) ([]leave.LeaveResponse, error) {
	approver, err := l.EmployeeRepository.GetByEmployeeID(ctx, approverEmployeeID)
	if err != nil {
		return nil, err
	}

	role := leave.NormalizeRole(approver.Position)
	requests, err := l.LeaveRequestRepository.ListPendingByApprover(ctx, role, approver.EmployeeID)
	if err != nil {
		return nil, fmt.Errorf("failed to list pending leave requests: %w", err)
	}

	return mapLeavesToResponses(requests), nil
}

// PendingCount implements leave.LeaveService.
func (l *LeaveServiceImpl) PendingCount(ctx context.Context, approverRole string) (int64, error) {
	count, err := l.LeaveRequestRepository.CountPendingByApprover(ctx, leave.NormalizeRole(approverRole))
	if err != nil {
		return 0, fmt.Errorf("failed to count pending leave requests: %w", err)
	}
	return count, nil
}

// History implements leave.LeaveService.
func (l *LeaveServiceImpl) History(ctx context.Context, employeeID string, status string) ([]leave.LeaveResponse, error) {
	requests, err := l.LeaveRequestRepository.ListByEmployee(ctx, employeeID, leave.HistoryFilter{
		Status: status,
		Limit:  historyLimit,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to list leave requests: %w", err)
	}

	return mapLeavesToResponses(requests), nil
}

// CancelledHistory implements leave.LeaveService.
func (l *LeaveServiceImpl) CancelledHistory(ctx context.Context, employeeID string) ([]leave.LeaveResponse, error) {
	requests, err := l.LeaveRequestRepository.ListCancelledByEmployee(ctx, employeeID)
	if err != nil {
		return nil, fmt.Errorf("failed to list cancelled leave requests: %w", err)
	}

	return mapLeavesToResponses(requests), nil
}

// Filter implements leave.LeaveService.
func (l *LeaveServiceImpl) Filter(ctx context.Context, query leave.FilterQuery) ([]leave.LeaveResponse, error) {
	filter := leave.RangeFilter{
		Status: query.Status,
	}

	if query.Role != "" {
		filter.ApproverRole = leave.NormalizeRole(query.Role)
		filter.ExcludeEmployeeID = query.EmployeeID
	} else {
		filter.EmployeeID = query.EmployeeID
	}

	if query.FromDate != "" && query.ToDate != "" {
		from, err := datetime.ParseCalendarDate(query.FromDate, false)
		if err != nil {
			return nil, err
		}
		to, err := datetime.ParseCalendarDate(query.ToDate, true)
		if err != nil {
			return nil, err
		}
		filter.From = &from
		filter.To = &to
	}

	requests, err := l.LeaveRequestRepository.Filter(ctx, filter)
	if err != nil {
		return nil, fmt.Errorf("failed to filter leave requests: %w", err)
	}

	return mapLeavesToResponses(requests), nil
}

// mapLeaveToResponse converts a LeaveRequest entity to LeaveResponse
func mapLeaveToResponse(request leave.LeaveRequest) leave.LeaveResponse {
	resp := leave.LeaveResponse{
		ID:            request.ID,
		EmployeeID:    request.EmployeeID,
		EmployeeName:  request.EmployeeName,
		Position:      request.Position,
		ApplicantRole: request.ApplicantRole,
		LeaveType:     request.LeaveType,
		Approver:      request.Approver,
		FromDate:      datetime.FormatCalendarDate(request.FromDate),
		ToDate:        datetime.FormatCalendarDate(request.ToDate),
		Reason:        request.Reason,
		NumberOfDays:  request.NumberOfDays,
		Status:        request.Status,
	}
	if request.CancelledAt != nil {
		resp.CancelledAt = datetime.FormatCalendarDate(*request.CancelledAt)
	}
	if !request.CreatedAt.IsZero() {
		resp.CreatedAt = datetime.FormatCalendarDate(request.CreatedAt)
	}
	return resp
}

func mapLeavesToResponses(requests []leave.LeaveRequest) []leave.LeaveResponse {
	responses := make([]leave.LeaveResponse, 0, len(requests))
	for _, request := range requests {
		responses = append(responses, mapLeaveToResponse(request))
	}
	return responses
}
