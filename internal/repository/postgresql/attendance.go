package postgresql

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/zeai-hr/timecore-backend-go/internal/domain/attendance"
	"github.com/zeai-hr/timecore-backend-go/internal/pkg/database"
)

const attendanceColumns = `
	id, employee_id, date, status, login_time, logout_time,
	break_segments, break_in_progress, break_minutes_used,
	login_reason, logout_reason, created_at, updated_at
`

type attendanceRepository struct {
	db *database.DB
}

func NewAttendanceRepository(db *database.DB) attendance.AttendanceRepository {
	return &attendanceRepository{db: db}
}

func scanAttendance(row pgx.Row) (attendance.Attendance, error) {
	var att attendance.Attendance
	err := row.Scan(
		&att.ID, &att.EmployeeID, &att.Date, &att.Status, &att.LoginTime, &att.LogoutTime,
		&att.BreakSegments, &att.BreakInProgress, &att.BreakMinutesUsed,
		&att.LoginReason, &att.LogoutReason, &att.CreatedAt, &att.UpdatedAt,
	)
	return att, err
}

// Create implements attendance.AttendanceRepository.
func (a *attendanceRepository) Create(ctx context.Context, newAttendance attendance.Attendance) (attendance.Attendance, error) {
	q := GetQuerier(ctx, a.db)

	query := `
		INSERT INTO attendances (
			id, employee_id, date, status, login_time, logout_time,
			break_segments, break_in_progress, break_minutes_used,
			login_reason, logout_reason
		) VALUES (
			$1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11
		) RETURNING created_at, updated_at
	`

	newAttendance.ID = uuid.NewString()
	err := q.QueryRow(ctx, query,
		newAttendance.ID,
		newAttendance.EmployeeID,
		newAttendance.Date,
		string(newAttendance.Status),
		newAttendance.LoginTime,
		newAttendance.LogoutTime,
		newAttendance.BreakSegments,
		newAttendance.BreakInProgress,
		newAttendance.BreakMinutesUsed,
		newAttendance.LoginReason,
		newAttendance.LogoutReason,
	).Scan(&newAttendance.CreatedAt, &newAttendance.UpdatedAt)

	if err != nil {
		var pgErr *pgconn.PgError
		// 23505: the (employee_id, date) unique index caught a concurrent
		// first login of the day.
		if errors.As(err, &pgErr) && pgErr.Code == "23505" {
			return attendance.Attendance{}, attendance.ErrAlreadyLoggedIn
		}
		return attendance.Attendance{}, fmt.Errorf("failed to create attendance: %w", err)
	}

	return newAttendance, nil
}

// GetByEmployeeAndDate implements attendance.AttendanceRepository.
func (a *attendanceRepository) GetByEmployeeAndDate(ctx context.Context, employeeID string, date time.Time) (*attendance.Attendance, error) {
	q := GetQuerier(ctx, a.db)

	query := `
		SELECT ` + attendanceColumns + `
		FROM attendances
		WHERE employee_id = $1
		  AND date = $2
		LIMIT 1
	`

	att, err := scanAttendance(q.QueryRow(ctx, query, employeeID, date))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil // No record for this day yet
		}
		return nil, fmt.Errorf("failed to get attendance by employee and date: %w", err)
	}

	return &att, nil
}

// Relogin implements attendance.AttendanceRepository.
func (a *attendanceRepository) Relogin(ctx context.Context, id string, loginTime string, reason *string) (attendance.Attendance, error) {
	q := GetQuerier(ctx, a.db)

	query := `
		UPDATE attendances
		SET status = 'Login',
		    login_time = $2,
		    logout_time = '',
		    login_reason = COALESCE($3, login_reason),
		    updated_at = NOW()
		WHERE id = $1
		  AND status <> 'Login'
		RETURNING ` + attendanceColumns

	att, err := scanAttendance(q.QueryRow(ctx, query, id, loginTime, reason))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return attendance.Attendance{}, attendance.ErrAlreadyLoggedIn
		}
		return attendance.Attendance{}, fmt.Errorf("failed to re-login attendance: %w", err)
	}

	return att, nil
}

// StartBreak implements attendance.AttendanceRepository.
func (a *attendanceRepository) StartBreak(ctx context.Context, id string, startTime string) (attendance.Attendance, error) {
	q := GetQuerier(ctx, a.db)

	query := `
		UPDATE attendances
		SET status = 'Break',
		    break_in_progress = $2,
		    updated_at = NOW()
		WHERE id = $1
		  AND break_minutes_used < $3
		RETURNING ` + attendanceColumns

	att, err := scanAttendance(q.QueryRow(ctx, query, id, startTime, attendance.BreakBudgetMinutes))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return attendance.Attendance{}, attendance.ErrBreakBudgetExhausted
		}
		return attendance.Attendance{}, fmt.Errorf("failed to start break: %w", err)
	}

	return att, nil
}

// FinishBreak implements attendance.AttendanceRepository.
func (a *attendanceRepository) FinishBreak(ctx context.Context, att attendance.Attendance) (attendance.Attendance, error) {
	q := GetQuerier(ctx, a.db)

	query := `
		UPDATE attendances
		SET status = $2,
		    break_segments = $3,
		    break_in_progress = NULL,
		    break_minutes_used = $4,
		    updated_at = NOW()
		WHERE id = $1
		  AND break_in_progress IS NOT NULL
		RETURNING ` + attendanceColumns

	updated, err := scanAttendance(q.QueryRow(ctx, query, att.ID, string(att.Status), att.BreakSegments, att.BreakMinutesUsed))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return attendance.Attendance{}, attendance.ErrNoBreakInProgress
		}
		return attendance.Attendance{}, fmt.Errorf("failed to finish break: %w", err)
	}

	return updated, nil
}

// Logout implements attendance.AttendanceRepository.
func (a *attendanceRepository) Logout(ctx context.Context, id string, logoutTime string, reason *string) (attendance.Attendance, error) {
	q := GetQuerier(ctx, a.db)

	query := `
		UPDATE attendances
		SET status = 'Logout',
		    logout_time = $2,
		    break_in_progress = NULL,
		    logout_reason = COALESCE($3, logout_reason),
		    updated_at = NOW()
		WHERE id = $1
		RETURNING ` + attendanceColumns

	att, err := scanAttendance(q.QueryRow(ctx, query, id, logoutTime, reason))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return attendance.Attendance{}, attendance.ErrAttendanceNotFound
		}
		return attendance.Attendance{}, fmt.Errorf("failed to logout attendance: %w", err)
	}

	return att, nil
}

// History implements attendance.AttendanceRepository.
func (a *attendanceRepository) History(ctx context.Context, employeeID string, limit int) ([]attendance.Attendance, error) {
	q := GetQuerier(ctx, a.db)

	query := `
		SELECT ` + attendanceColumns + `
		FROM attendances
		WHERE employee_id = $1
		ORDER BY created_at DESC
		LIMIT $2
	`

	rows, err := q.Query(ctx, query, employeeID, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to get attendance history: %w", err)
	}
	defer rows.Close()

	var records []attendance.Attendance
	for rows.Next() {
		att, err := scanAttendance(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan attendance: %w", err)
		}
		records = append(records, att)
	}

	return records, rows.Err()
}
