package postgresql

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/zeai-hr/timecore-backend-go/internal/domain/leave"
	"github.com/zeai-hr/timecore-backend-go/internal/pkg/database"
)

const leaveColumns = `
	id, employee_id, employee_name, position, applicant_role, leave_type,
	approver, from_date, to_date, reason, number_of_days, status,
	cancelled_at, created_at, updated_at
`

type leaveRequestRepository struct {
	db *database.DB
}

func NewLeaveRequestRepository(db *database.DB) leave.LeaveRequestRepository {
	return &leaveRequestRepository{db: db}
}

func scanLeaveRequest(row pgx.Row) (leave.LeaveRequest, error) {
	var req leave.LeaveRequest
	err := row.Scan(
		&req.ID, &req.EmployeeID, &req.EmployeeName, &req.Position, &req.ApplicantRole, &req.LeaveType,
		&req.Approver, &req.FromDate, &req.ToDate, &req.Reason, &req.NumberOfDays, &req.Status,
		&req.CancelledAt, &req.CreatedAt, &req.UpdatedAt,
	)
	return req, err
}

func collectLeaveRequests(rows pgx.Rows) ([]leave.LeaveRequest, error) {
	defer rows.Close()

	var requests []leave.LeaveRequest
	for rows.Next() {
		req, err := scanLeaveRequest(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan leave request: %w", err)
		}
		requests = append(requests, req)
	}
	return requests, rows.Err()
}

// Create implements leave.LeaveRequestRepository.
func (l *leaveRequestRepository) Create(ctx context.Context, request leave.LeaveRequest) (leave.LeaveRequest, error) {
	q := GetQuerier(ctx, l.db)

	query := `
		INSERT INTO leave_requests (
			id, employee_id, employee_name, position, applicant_role, leave_type,
			approver, from_date, to_date, reason, number_of_days, status
		) VALUES (
			$1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12
		) RETURNING created_at, updated_at
	`

	request.ID = uuid.NewString()
	err := q.QueryRow(ctx, query,
		request.ID,
		request.EmployeeID,
		request.EmployeeName,
		request.Position,
		request.ApplicantRole,
		request.LeaveType,
		request.Approver,
		request.FromDate,
		request.ToDate,
		request.Reason,
		request.NumberOfDays,
		string(request.Status),
	).Scan(&request.CreatedAt, &request.UpdatedAt)

	if err != nil {
		return leave.LeaveRequest{}, fmt.Errorf("failed to create leave request: %w", err)
	}

	return request, nil
}

// GetByID implements leave.LeaveRequestRepository.
func (l *leaveRequestRepository) GetByID(ctx context.Context, id string) (leave.LeaveRequest, error) {
	q := GetQuerier(ctx, l.db)

	query := `SELECT ` + leaveColumns + ` FROM leave_requests WHERE id = $1`

	req, err := scanLeaveRequest(q.QueryRow(ctx, query, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return leave.LeaveRequest{}, leave.ErrLeaveNotFound
		}
		return leave.LeaveRequest{}, fmt.Errorf("failed to get leave request by ID: %w", err)
	}

	return req, nil
}

// Update implements leave.LeaveRequestRepository.
func (l *leaveRequestRepository) Update(ctx context.Context, request leave.LeaveRequest) (leave.LeaveRequest, error) {
	q := GetQuerier(ctx, l.db)

	query := `
		UPDATE leave_requests
		SET position = $2,
		    applicant_role = $3,
		    leave_type = $4,
		    approver = $5,
		    from_date = $6,
		    to_date = $7,
		    reason = $8,
		    number_of_days = $9,
		    status = $10,
		    updated_at = NOW()
		WHERE id = $1
		RETURNING ` + leaveColumns

	updated, err := scanLeaveRequest(q.QueryRow(ctx, query,
		request.ID,
		request.Position,
		request.ApplicantRole,
		request.LeaveType,
		request.Approver,
		request.FromDate,
		request.ToDate,
		request.Reason,
		request.NumberOfDays,
		string(request.Status),
	))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return leave.LeaveRequest{}, leave.ErrLeaveNotFound
		}
		return leave.LeaveRequest{}, fmt.Errorf("failed to update leave request: %w", err)
	}

	return updated, nil
}

// UpdateStatus implements leave.LeaveRequestRepository. The expected
// pre-state is part of the WHERE clause so concurrent transitions on the
// same request produce exactly one winner.
func (l *leaveRequestRepository) UpdateStatus(ctx context.Context, id string, from, to leave.Status) (leave.LeaveRequest, error) {
	q := GetQuerier(ctx, l.db)

	query := `
		UPDATE leave_requests
		SET status = $3,
		    updated_at = NOW()
		WHERE id = $1
		  AND status = $2
		RETURNING ` + leaveColumns

	updated, err := scanLeaveRequest(q.QueryRow(ctx, query, id, string(from), string(to)))
	if err == nil {
		return updated, nil
	}
	if !errors.Is(err, pgx.ErrNoRows) {
		return leave.LeaveRequest{}, fmt.Errorf("failed to update leave request status: %w", err)
	}

	// Nothing matched: distinguish a missing request from one already
	// resolved past the expected state.
	if _, getErr := l.GetByID(ctx, id); getErr != nil {
		return leave.LeaveRequest{}, getErr
	}
	return leave.LeaveRequest{}, leave.ErrAlreadyResolved
}

// Cancel implements leave.LeaveRequestRepository. Idempotent: a second
// cancel keeps the original cancellation timestamp.
func (l *leaveRequestRepository) Cancel(ctx context.Context, id, employeeID string, at time.Time) (leave.LeaveRequest, error) {
	q := GetQuerier(ctx, l.db)

	query := `
		UPDATE leave_requests
		SET status = 'Cancelled',
		    cancelled_at = COALESCE(cancelled_at, $3),
		    updated_at = NOW()
		WHERE id = $1
		  AND employee_id = $2
		RETURNING ` + leaveColumns

	cancelled, err := scanLeaveRequest(q.QueryRow(ctx, query, id, employeeID, at))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return leave.LeaveRequest{}, leave.ErrLeaveNotFound
		}
		return leave.LeaveRequest{}, fmt.Errorf("failed to cancel leave request: %w", err)
	}

	return cancelled, nil
}

// ListByEmployee implements leave.LeaveRequestRepository.
func (l *leaveRequestRepository) ListByEmployee(ctx context.Context, employeeID string, filter leave.HistoryFilter) ([]leave.LeaveRequest, error) {
	q := GetQuerier(ctx, l.db)

	query := `
		SELECT ` + leaveColumns + `
		FROM leave_requests
		WHERE employee_id = $1
	`
	args := []interface{}{employeeID}

	if filter.Status != "" {
		query += ` AND status = $2`
		args = append(args, filter.Status)
	} else {
		query += ` AND status <> 'Cancelled'`
	}

	query += fmt.Sprintf(` ORDER BY created_at DESC LIMIT %d`, filter.Limit)

	rows, err := q.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to list leave requests: %w", err)
	}

	return collectLeaveRequests(rows)
}

// ListCancelledByEmployee implements leave.LeaveRequestRepository.
func (l *leaveRequestRepository) ListCancelledByEmployee(ctx context.Context, employeeID string) ([]leave.LeaveRequest, error) {
	q := GetQuerier(ctx, l.db)

	query := `
		SELECT ` + leaveColumns + `
		FROM leave_requests
		WHERE employee_id = $1
		  AND status = 'Cancelled'
		ORDER BY cancelled_at DESC
	`

	rows, err := q.Query(ctx, query, employeeID)
	if err != nil {
		return nil, fmt.Errorf("failed to list cancelled leave requests: %w", err)
	}

	return collectLeaveRequests(rows)
}

// ListApprovedByEmployee implements leave.LeaveRequestRepository.
func (l *leaveRequestRepository) ListApprovedByEmployee(ctx context.Context, employeeID string) ([]leave.LeaveRequest, error) {
	q := GetQuerier(ctx, l.db)

	query := `
		SELECT ` + leaveColumns + `
		FROM leave_requests
		WHERE employee_id = $1
		  AND status = 'Approved'
	`

	rows, err := q.Query(ctx, query, employeeID)
	if err != nil {
		return nil, fmt.Errorf("failed to list approved leave requests: %w", err)
	}

	return collectLeaveRequests(rows)
}

// ListPendingByApprover implements leave.LeaveRequestRepository. Approvers
// never see their own requests in the approval queue.
func (l *leaveRequestRepository) ListPendingByApprover(ctx context.Context, approverRole string, excludeEmployeeID string) ([]leave.LeaveRequest, error) {
	q := GetQuerier(ctx, l.db)

	query := `
		SELECT ` + leaveColumns + `
		FROM leave_requests
		WHERE approver = $1
		  AND status = 'Pending'
		  AND employee_id <> $2
		ORDER BY created_at DESC
	`

	rows, err := q.Query(ctx, query, approverRole, excludeEmployeeID)
	if err != nil {
		return nil, fmt.Errorf("failed to list pending leave requests: %w", err)
	}

	return collectLeaveRequests(rows)
}

// CountPendingByApprover implements leave.LeaveRequestRepository.
func (l *leaveRequestRepository) CountPendingByApprover(ctx context.Context, approverRole string) (int64, error) {
	q := GetQuerier(ctx, l.db)

	query := `
		SELECT COUNT(*)
		FROM leave_requests
		WHERE approver = $1
		  AND status = 'Pending'
	`

	var count int64
	if err := q.QueryRow(ctx, query, approverRole).Scan(&count); err != nil {
		return 0, fmt.Errorf("failed to count pending leave requests: %w", err)
	}

	return count, nil
}

// Filter implements leave.LeaveRequestRepository.
func (l *leaveRequestRepository) Filter(ctx context.Context, filter leave.RangeFilter) ([]leave.LeaveRequest, error) {
	q := GetQuerier(ctx, l.db)

	query := `SELECT ` + leaveColumns + ` FROM leave_requests WHERE 1=1`
	var args []interface{}
	arg := func(v interface{}) string {
		args = append(args, v)
		return fmt.Sprintf("$%d", len(args))
	}

	if filter.ApproverRole != "" {
		query += ` AND approver = ` + arg(filter.ApproverRole)
		if filter.ExcludeEmployeeID != "" {
			query += ` AND employee_id <> ` + arg(filter.ExcludeEmployeeID)
		}
	} else if filter.EmployeeID != "" {
		query += ` AND employee_id = ` + arg(filter.EmployeeID)
	}

	switch filter.Status {
	case "":
		query += ` AND status <> 'Cancelled'`
	case "All":
		query += ` AND status IN ('Approved', 'Rejected')`
	default:
		query += ` AND status = ` + arg(filter.Status)
	}

	// Range overlap: the request touches [From, To].
	if filter.From != nil && filter.To != nil {
		query += ` AND from_date <= ` + arg(*filter.To)
		query += ` AND to_date >= ` + arg(*filter.From)
	}

	query += ` ORDER BY from_date DESC`

	rows, err := q.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to filter leave requests: %w", err)
	}

	return collectLeaveRequests(rows)
}
