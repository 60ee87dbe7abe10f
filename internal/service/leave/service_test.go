package leave

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/zeai-hr/timecore-backend-go/internal/domain/employee"
	"github.com/zeai-hr/timecore-backend-go/internal/domain/leave"
)

// fakeLeaveRepo keeps requests in memory and mirrors the guarded transition
// semantics of the SQL repository.
type fakeLeaveRepo struct {
	requests map[string]*leave.LeaveRequest
	nextID   int
}

func newFakeLeaveRepo() *fakeLeaveRepo {
	return &fakeLeaveRepo{requests: make(map[string]*leave.LeaveRequest)}
}

func (f *fakeLeaveRepo) Create(ctx context.Context, request leave.LeaveRequest) (leave.LeaveRequest, error) {
	f.nextID++
	request.ID = fmt.Sprintf("leave-%d", f.nextID)
	stored := request
	f.requests[request.ID] = &stored
	return request, nil
}

func (f *fakeLeaveRepo) GetByID(ctx context.Context, id string) (leave.LeaveRequest, error) {
	request, ok := f.requests[id]
	if !ok {
		return leave.LeaveRequest{}, leave.ErrLeaveNotFound
	}
	return *request, nil
}

func (f *fakeLeaveRepo) Update(ctx context.Context, request leave.LeaveRequest) (leave.LeaveRequest, error) {
	stored, ok := f.requests[request.ID]
	if !ok {
		return leave.LeaveRequest{}, leave.ErrLeaveNotFound
	}
	*stored = request
	return request, nil
}

func (f *fakeLeaveRepo) UpdateStatus(ctx context.Context, id string, from, to leave.Status) (leave.LeaveRequest, error) {
	request, ok := f.requests[id]
	if !ok {
		return leave.LeaveRequest{}, leave.ErrLeaveNotFound
	}
	if request.Status != from {
		return leave.LeaveRequest{}, leave.ErrAlreadyResolved
	}
	request.Status = to
	return *request, nil
}

func (f *fakeLeaveRepo) Cancel(ctx context.Context, id, employeeID string, at time.Time) (leave.LeaveRequest, error) {
	request, ok := f.requests[id]
	if !ok || request.EmployeeID != employeeID {
		return leave.LeaveRequest{}, leave.ErrLeaveNotFound
	}
	request.Status = leave.StatusCancelled
	if request.CancelledAt == nil {
		request.CancelledAt = &at
	}
	return *request, nil
}

func (f *fakeLeaveRepo) ListByEmployee(ctx context.Context, employeeID string, filter leave.HistoryFilter) ([]leave.LeaveRequest, error) {
	var out []leave.LeaveRequest
	for _, request := range f.requests {
		if request.EmployeeID != employeeID {
			continue
		}
		if filter.Status != "" {
			if string(request.Status) != filter.Status {
				continue
			}
		} else if request.Status == leave.StatusCancelled {
			continue
		}
		out = append(out, *request)
		if len(out) == filter.Limit {
			break
		}
	}
	return out, nil
}

func (f *fakeLeaveRepo) ListCancelledByEmployee(ctx context.Context, employeeID string) ([]leave.LeaveRequest, error) {
	var out []leave.LeaveRequest
	for _, request := range f.requests {
		if request.EmployeeID == employeeID && request.Status == leave.StatusCancelled {
			out = append(out, *request)
		}
	}
	return out, nil
}

func (f *fakeLeaveRepo) ListApprovedByEmployee(ctx context.Context, employeeID string) ([]leave.LeaveRequest, error) {
	var out []leave.LeaveRequest
	for _, request := range f.requests {
		if request.EmployeeID == employeeID && request.Status == leave.StatusApproved {
			out = append(out, *request)
		}
	}
	return out, nil
}

func (f *fakeLeaveRepo) ListPendingByApprover(ctx context.Context, approverRole string, excludeEmployeeID string) ([]leave.LeaveRequest, error) {
	var out []leave.LeaveRequest
	for _, request := range f.requests {
		if request.Approver == approverRole && request.Status == leave.StatusPending && request.EmployeeID != excludeEmployeeID {
			out = append(out, *request)
		}
	}
	return out, nil
}

func (f *fakeLeaveRepo) CountPendingByApprover(ctx context.Context, approverRole string) (int64, error) {
	var count int64
	for _, request := range f.requests {
		if request.Approver == approverRole && request.Status == leave.StatusPending {
			count++
		}
	}
	return count, nil
}

func (f *fakeLeaveRepo) Filter(ctx context.Context, filter leave.RangeFilter) ([]leave.LeaveRequest, error) {
	var out []leave.LeaveRequest
	for _, request := range f.requests {
		if filter.ApproverRole != "" {
			if request.Approver != filter.ApproverRole || request.EmployeeID == filter.ExcludeEmployeeID {
				continue
			}
		} else if filter.EmployeeID != "" && request.EmployeeID != filter.EmployeeID {
			continue
		}
		if filter.Status == "" {
			if request.Status == leave.StatusCancelled {
				continue
			}
		} else if string(request.Status) != filter.Status {
			continue
		}
		if filter.From != nil && filter.To != nil {
			if request.FromDate.After(*filter.To) || request.ToDate.Before(*filter.From) {
				continue
			}
		}
		out = append(out, *request)
	}
	return out, nil
}

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

func newTestService(leaveRepo leave.LeaveRequestRepository) *LeaveServiceImpl {
	return &LeaveServiceImpl{
		LeaveRequestRepository: leaveRepo,
		EmployeeRepository: &fakeEmployeeRepo{employees: map[string]employee.Employee{
			"EMP-1": {EmployeeID: "EMP-1", EmployeeName: "Ayu Lestari", Position: "Employee"},
			"ADM-1": {EmployeeID: "ADM-1", EmployeeName: "Budi Santoso", Position: "Admin"},
			"FND-1": {EmployeeID: "FND-1", EmployeeName: "Citra Dewi", Position: "Founder"},
		}},
		now: func() time.Time {
			return time.Date(2025, 6, 1, 9, 0, 0, 0, time.UTC)
		},
	}
}

func TestApply(t *testing.T) {
	ctx := context.Background()

	t.Run("computes inclusive day count", func(t *testing.T) {
		svc := newTestService(newFakeLeaveRepo())

		created, err := svc.Apply(ctx, leave.ApplyLeaveRequest{
			EmployeeID: "EMP-1",
			LeaveType:  "casual",
			FromDate:   "10-06-2025",
			ToDate:     "12-06-2025",
			Reason:     "family event",
		})
		require.NoError(t, err)
		assert.Equal(t, 3, created.NumberOfDays)
		assert.Equal(t, leave.StatusPending, created.Status)
		assert.Equal(t, "admin", created.Approver)
		assert.Equal(t, "Ayu Lestari", created.EmployeeName)
	})

	t.Run("admin requests route to founder", func(t *testing.T) {
		svc := newTestService(newFakeLeaveRepo())

		created, err := svc.Apply(ctx, leave.ApplyLeaveRequest{
			EmployeeID: "ADM-1",
			LeaveType:  "sick",
			FromDate:   "10-06-2025",
			ToDate:     "10-06-2025",
			Reason:     "flu",
		})
		require.NoError(t, err)
		assert.Equal(t, "founder", created.Approver)
		assert.Equal(t, leave.StatusPending, created.Status)
	})

	t.Run("founder requests are auto-approved", func(t *testing.T) {
		svc := newTestService(newFakeLeaveRepo())

		created, err := svc.Apply(ctx, leave.ApplyLeaveRequest{
			EmployeeID: "FND-1",
			LeaveType:  "casual",
			FromDate:   "10-06-2025",
			ToDate:     "11-06-2025",
			Reason:     "offsite",
		})
		require.NoError(t, err)
		assert.Equal(t, leave.StatusApproved, created.Status)
		assert.Equal(t, leave.ApproverAutoApproved, created.Approver)
	})

	t.Run("past from date is rejected", func(t *testing.T) {
		svc := newTestService(newFakeLeaveRepo())

		_, err := svc.Apply(ctx, leave.ApplyLeaveRequest{
			EmployeeID: "EMP-1",
			LeaveType:  "casual",
			FromDate:   "31-05-2025",
			ToDate:     "02-06-2025",
			Reason:     "late filing",
		})
		assert.ErrorIs(t, err, leave.ErrPastDate)
	})

	t.Run("inverted range is rejected", func(t *testing.T) {
		svc := newTestService(newFakeLeaveRepo())

		_, err := svc.Apply(ctx, leave.ApplyLeaveRequest{
			EmployeeID: "EMP-1",
			LeaveType:  "casual",
			FromDate:   "12-06-2025",
			ToDate:     "10-06-2025",
			Reason:     "typo",
		})
		assert.ErrorIs(t, err, leave.ErrInvertedRange)
	})

	t.Run("unknown leave type fails validation", func(t *testing.T) {
		svc := newTestService(newFakeLeaveRepo())

		_, err := svc.Apply(ctx, leave.ApplyLeaveRequest{
			EmployeeID: "EMP-1",
			LeaveType:  "sabbatical",
			FromDate:   "10-06-2025",
			ToDate:     "12-06-2025",
			Reason:     "long trip",
		})
		assert.Error(t, err)
	})

	t.Run("explicit day count overrides the computed one", func(t *testing.T) {
		svc := newTestService(newFakeLeaveRepo())

		days := 2
		created, err := svc.Apply(ctx, leave.ApplyLeaveRequest{
			EmployeeID:   "EMP-1",
			LeaveType:    "casual",
			FromDate:     "10-06-2025",
			ToDate:       "12-06-2025",
			Reason:       "half days",
			NumberOfDays: &days,
		})
		require.NoError(t, err)
		assert.Equal(t, 2, created.NumberOfDays)
	})
}

func TestSetStatus(t *testing.T) {
	ctx := context.Background()

	apply := func(t *testing.T, svc leave.LeaveService) leave.LeaveResponse {
		t.Helper()
		created, err := svc.Apply(ctx, leave.ApplyLeaveRequest{
			EmployeeID: "EMP-1",
			LeaveType:  "casual",
			FromDate:   "10-06-2025",
			ToDate:     "12-06-2025",
			Reason:     "family event",
		})
		require.NoError(t, err)
		return created
	}

	t.Run("approves a pending request", func(t *testing.T) {
		svc := newTestService(newFakeLeaveRepo())
		created := apply(t, svc)

		updated, err := svc.SetStatus(ctx, created.ID, leave.StatusApproved)
		require.NoError(t, err)
		assert.Equal(t, leave.StatusApproved, updated.Status)
	})

	t.Run("second resolution fails", func(t *testing.T) {
		svc := newTestService(newFakeLeaveRepo())
		created := apply(t, svc)

		_, err := svc.SetStatus(ctx, created.ID, leave.StatusApproved)
		require.NoError(t, err)

		_, err = svc.SetStatus(ctx, created.ID, leave.StatusRejected)
		assert.ErrorIs(t, err, leave.ErrAlreadyResolved)
	})

	t.Run("only Approved or Rejected are accepted", func(t *testing.T) {
		svc := newTestService(newFakeLeaveRepo())
		created := apply(t, svc)

		_, err := svc.SetStatus(ctx, created.ID, leave.StatusCancelled)
		assert.Error(t, err)
	})

	t.Run("missing request fails", func(t *testing.T) {
		svc := newTestService(newFakeLeaveRepo())

		_, err := svc.SetStatus(ctx, "nope", leave.StatusApproved)
		assert.ErrorIs(t, err, leave.ErrLeaveNotFound)
	})
}

func TestCancel(t *testing.T) {
	ctx := context.Background()
	svc := newTestService(newFakeLeaveRepo())

	created, err := svc.Apply(ctx, leave.ApplyLeaveRequest{
		EmployeeID: "EMP-1",
		LeaveType:  "casual",
		FromDate:   "10-06-2025",
		ToDate:     "12-06-2025",
		Reason:     "family event",
	})
	require.NoError(t, err)

	cancelled, err := svc.Cancel(ctx, "EMP-1", created.ID)
	require.NoError(t, err)
	assert.Equal(t, leave.StatusCancelled, cancelled.Status)
	assert.NotEmpty(t, cancelled.CancelledAt)

	// Another employee cannot cancel it.
	_, err = svc.Cancel(ctx, "ADM-1", created.ID)
	assert.ErrorIs(t, err, leave.ErrLeaveNotFound)
}

func TestUpdate(t *testing.T) {
	ctx := context.Background()

	apply := func(t *testing.T, svc leave.LeaveService) leave.LeaveResponse {
		t.Helper()
		created, err := svc.Apply(ctx, leave.ApplyLeaveRequest{
			EmployeeID: "EMP-1",
			LeaveType:  "casual",
			FromDate:   "10-06-2025",
			ToDate:     "12-06-2025",
			Reason:     "family event",
		})
		require.NoError(t, err)
		return created
	}

	t.Run("changing dates recomputes the day count", func(t *testing.T) {
		svc := newTestService(newFakeLeaveRepo())
		created := apply(t, svc)

		to := "15-06-2025"
		updated, err := svc.Update(ctx, "EMP-1", created.ID, leave.UpdateLeaveRequest{ToDate: &to})
		require.NoError(t, err)
		assert.Equal(t, 6, updated.NumberOfDays)
		assert.Equal(t, leave.StatusPending, updated.Status)
	})

	t.Run("edit resets a resolved request to Pending", func(t *testing.T) {
		svc := newTestService(newFakeLeaveRepo())
		created := apply(t, svc)

		_, err := svc.SetStatus(ctx, created.ID, leave.StatusRejected)
		require.NoError(t, err)

		reason := "corrected reason"
		updated, err := svc.Update(ctx, "EMP-1", created.ID, leave.UpdateLeaveRequest{Reason: &reason})
		require.NoError(t, err)
		assert.Equal(t, leave.StatusPending, updated.Status)
		assert.Equal(t, "corrected reason", updated.Reason)
	})

	t.Run("someone else's request is invisible", func(t *testing.T) {
		svc := newTestService(newFakeLeaveRepo())
		created := apply(t, svc)

		reason := "hijack"
		_, err := svc.Update(ctx, "ADM-1", created.ID, leave.UpdateLeaveRequest{Reason: &reason})
		assert.ErrorIs(t, err, leave.ErrLeaveNotFound)
	})

	t.Run("inverted edited range is rejected", func(t *testing.T) {
		svc := newTestService(newFakeLeaveRepo())
		created := apply(t, svc)

		from := "20-06-2025"
		_, err := svc.Update(ctx, "EMP-1", created.ID, leave.UpdateLeaveRequest{FromDate: &from})
		assert.ErrorIs(t, err, leave.ErrInvertedRange)
	})
}

func TestBalance(t *testing.T) {
	ctx := context.Background()

	applyAndApprove := func(t *testing.T, svc leave.LeaveService, leaveType, from, to string) leave.LeaveResponse {
		t.Helper()
		created, err := svc.Apply(ctx, leave.ApplyLeaveRequest{
			EmployeeID: "EMP-1",
			LeaveType:  leaveType,
			FromDate:   from,
			ToDate:     to,
			Reason:     "time off",
		})
		require.NoError(t, err)
		_, err = svc.SetStatus(ctx, created.ID, leave.StatusApproved)
		require.NoError(t, err)
		return created
	}

	t.Run("approved days accumulate per type", func(t *testing.T) {
		svc := newTestService(newFakeLeaveRepo())

		applyAndApprove(t, svc, "casual", "10-06-2025", "11-06-2025") // 2 days
		applyAndApprove(t, svc, "casual", "20-06-2025", "22-06-2025") // 3 days

		balance, err := svc.Balance(ctx, "EMP-1", 2025)
		require.NoError(t, err)
		assert.Equal(t, 5, balance.Balances["casual"].Used)
		assert.Equal(t, 7, balance.Balances["casual"].Remaining)
		assert.Equal(t, 12, balance.Balances["casual"].Total)
		assert.Equal(t, 0, balance.Balances["sick"].Used)
		assert.Equal(t, 12, balance.Balances["sick"].Remaining)
	})

	t.Run("pending and cancelled requests contribute nothing", func(t *testing.T) {
		svc := newTestService(newFakeLeaveRepo())

		// Pending.
		_, err := svc.Apply(ctx, leave.ApplyLeaveRequest{
			EmployeeID: "EMP-1",
			LeaveType:  "sick",
			FromDate:   "10-06-2025",
			ToDate:     "12-06-2025",
			Reason:     "flu",
		})
		require.NoError(t, err)

		// Approved then cancelled: its days come back.
		approved := applyAndApprove(t, svc, "sick", "20-06-2025", "21-06-2025")
		_, err = svc.Cancel(ctx, "EMP-1", approved.ID)
		require.NoError(t, err)

		balance, err := svc.Balance(ctx, "EMP-1", 2025)
		require.NoError(t, err)
		assert.Equal(t, 0, balance.Balances["sick"].Used)
		assert.Equal(t, 12, balance.Balances["sick"].Remaining)
	})

	t.Run("other years are excluded and remaining floors at zero", func(t *testing.T) {
		svc := newTestService(newFakeLeaveRepo())

		days := 15
		created, err := svc.Apply(ctx, leave.ApplyLeaveRequest{
			EmployeeID:   "EMP-1",
			LeaveType:    "casual",
			FromDate:     "10-06-2025",
			ToDate:       "24-06-2025",
			Reason:       "long leave",
			NumberOfDays: &days,
		})
		require.NoError(t, err)
		_, err = svc.SetStatus(ctx, created.ID, leave.StatusApproved)
		require.NoError(t, err)

		balance, err := svc.Balance(ctx, "EMP-1", 2025)
		require.NoError(t, err)
		assert.Equal(t, 15, balance.Balances["casual"].Used)
		assert.Equal(t, 0, balance.Balances["casual"].Remaining)

		other, err := svc.Balance(ctx, "EMP-1", 2024)
		require.NoError(t, err)
		assert.Equal(t, 0, other.Balances["casual"].Used)
	})
}

func TestApprovalQueue(t *testing.T) {
	ctx := context.Background()
	svc := newTestService(newFakeLeaveRepo())

	// An employee files: lands on admin's queue.
	_, err := svc.Apply(ctx, leave.ApplyLeaveRequest{
		EmployeeID: "EMP-1",
		LeaveType:  "casual",
		FromDate:   "10-06-2025",
		ToDate:     "12-06-2025",
		Reason:     "family event",
	})
	require.NoError(t, err)

	// The admin files too: lands on founder's queue, not their own.
	_, err = svc.Apply(ctx, leave.ApplyLeaveRequest{
		EmployeeID: "ADM-1",
		LeaveType:  "sick",
		FromDate:   "10-06-2025",
		ToDate:     "10-06-2025",
		Reason:     "flu",
	})
	require.NoError(t, err)

	pending, err := svc.PendingForApprover(ctx, "ADM-1")
	require.NoError(t, err)
	require.Len(t, pending, 1)
	assert.Equal(t, "EMP-1", pending[0].EmployeeID)

	count, err := svc.PendingCount(ctx, "admin")
	require.NoError(t, err)
	assert.Equal(t, int64(1), count)

	founderQueue, err := svc.PendingForApprover(ctx, "FND-1")
	require.NoError(t, err)
	require.Len(t, founderQueue, 1)
	assert.Equal(t, "ADM-1", founderQueue[0].EmployeeID)
}

func TestHistory(t *testing.T) {
	ctx := context.Background()
	svc := newTestService(newFakeLeaveRepo())

	created, err := svc.Apply(ctx, leave.ApplyLeaveRequest{
		EmployeeID: "EMP-1",
		LeaveType:  "casual",
		FromDate:   "10-06-2025",
		ToDate:     "12-06-2025",
		Reason:     "family event",
	})
	require.NoError(t, err)

	second, err := svc.Apply(ctx, leave.ApplyLeaveRequest{
		EmployeeID: "EMP-1",
		LeaveType:  "sick",
		FromDate:   "20-06-2025",
		ToDate:     "20-06-2025",
		Reason:     "flu",
	})
	require.NoError(t, err)

	_, err = svc.Cancel(ctx, "EMP-1", second.ID)
	require.NoError(t, err)

	// Default history hides cancelled requests.
	history, err := svc.History(ctx, "EMP-1", "")
	require.NoError(t, err)
	require.Len(t, history, 1)
	assert.Equal(t, created.ID, history[0].ID)

	cancelled, err := svc.CancelledHistory(ctx, "EMP-1")
	require.NoError(t, err)
	require.Len(t, cancelled, 1)
	assert.Equal(t, second.ID, cancelled[0].ID)
}
