package postgresql

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/JuanAlonzo/control-asistencia-backend/internal/domain/attendance"
	"github.com/JuanAlonzo/control-asistencia-backend/internal/pkg/database"
	"github.com/jackc/pgx/v5"
)

type attendanceRepository struct {
	db *database.DB
}

func NewAttendanceRepository(db *database.DB) attendance.AttendanceRepository {
	return &attendanceRepository{db: db}
}

const attendanceColumns = `
	a.id, a.employee_id, a.date, a.check_in, a.check_out,
	a.day_type, a.state, a.description, a.expected_hours,
	a.created_at, a.updated_at,
	e.full_name, e.username
`

const insertAttendanceQuery = `
	INSERT INTO attendances (
		id, employee_id, date, check_in, check_out,
		day_type, state, description, expected_hours
	) VALUES (
		$1, $2, $3, $4, $5, $6, $7, $8, $9
	) RETURNING created_at, updated_at
`

func scanAttendance(row pgx.Row) (attendance.Attendance, error) {
	var att attendance.Attendance
	err := row.Scan(
		&att.ID, &att.EmployeeID, &att.Date, &att.CheckIn, &att.CheckOut,
		&att.DayType, &att.State, &att.Description, &att.ExpectedHours,
		&att.CreatedAt, &att.UpdatedAt,
		&att.EmployeeName, &att.EmployeeUsername,
	)
	return att, err
}

func insertAttendance(ctx context.Context, q database.Querier, att *attendance.Attendance) error {
	err := q.QueryRow(ctx, insertAttendanceQuery,
		att.ID,
		att.EmployeeID,
		att.Date,
		att.CheckIn,
		att.CheckOut,
		att.DayType,
		att.State,
		att.Description,
		att.ExpectedHours,
	).Scan(&att.CreatedAt, &att.UpdatedAt)
	if err != nil {
		if isUniqueViolation(err) {
			return attendance.ErrDuplicateRecord
		}
		return err
	}
	return nil
}

// Create implements attendance.AttendanceRepository.
func (a *attendanceRepository) Create(ctx context.Context, newAttendance attendance.Attendance) (attendance.Attendance, error) {
	q := GetQuerier(ctx, a.db)

	if err := insertAttendance(ctx, q, &newAttendance); err != nil {
		if errors.Is(err, attendance.ErrDuplicateRecord) {
			return attendance.Attendance{}, err
		}
		return attendance.Attendance{}, fmt.Errorf("failed to create attendance: %w", err)
	}

	return newAttendance, nil
}

// CreateBatch implements attendance.AttendanceRepository.
func (a *attendanceRepository) CreateBatch(ctx context.Context, attendances []attendance.Attendance) (int, error) {
	if len(attendances) == 0 {
		return 0, nil
	}

	inserted := 0
	err := WithTransaction(ctx, a.db, func(ctx context.Context, tx pgx.Tx) error {
		for i := range attendances {
			if err := insertAttendance(ctx, tx, &attendances[i]); err != nil {
				if errors.Is(err, attendance.ErrDuplicateRecord) {
					return err
				}
				return fmt.Errorf("failed to insert attendance for employee %s: %w", attendances[i].EmployeeID, err)
			}
			inserted++
		}
		return nil
	})
	if err != nil {
		return 0, err
	}

	return inserted, nil
}

// GetByID implements attendance.AttendanceRepository.
func (a *attendanceRepository) GetByID(ctx context.Context, id string) (attendance.Attendance, error) {
	q := GetQuerier(ctx, a.db)

	query := `
		SELECT ` + attendanceColumns + `
		FROM attendances a
		LEFT JOIN employees e ON e.id = a.employee_id
		WHERE a.id = $1
	`

	att, err := scanAttendance(q.QueryRow(ctx, query, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return attendance.Attendance{}, attendance.ErrAttendanceNotFound
		}
		return attendance.Attendance{}, fmt.Errorf("failed to get attendance by id: %w", err)
	}

	return att, nil
}

// GetByEmployeeAndDate implements attendance.AttendanceRepository.
func (a *attendanceRepository) GetByEmployeeAndDate(ctx context.Context, employeeID string, date time.Time) (*attendance.Attendance, error) {
	q := GetQuerier(ctx, a.db)

	query := `
		SELECT ` + attendanceColumns + `
		FROM attendances a
		LEFT JOIN employees e ON e.id = a.employee_id
		WHERE a.employee_id = $1
		  AND a.date = $2
		LIMIT 1
	`

	att, err := scanAttendance(q.QueryRow(ctx, query, employeeID, date))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil // No existing attendance found
		}
		return nil, fmt.Errorf("failed to get attendance by employee and date: %w", err)
	}

	return &att, nil
}

// CloseCheckOut implements attendance.AttendanceRepository.
func (a *attendanceRepository) CloseCheckOut(ctx context.Context, id string, checkOut time.Time) (attendance.Attendance, error) {
	q := GetQuerier(ctx, a.db)

	query := `
		UPDATE attendances
		SET check_out = $1, state = $2, updated_at = NOW()
		WHERE id = $3 AND state = $4 AND check_out IS NULL
	`

	result, err := q.Exec(ctx, query, checkOut, attendance.StateClosed, id, attendance.StateOpen)
	if err != nil {
		return attendance.Attendance{}, fmt.Errorf("failed to check out attendance: %w", err)
	}

	if result.RowsAffected() == 0 {
		if _, err := a.GetByID(ctx, id); err != nil {
			return attendance.Attendance{}, err
		}
		return attendance.Attendance{}, attendance.ErrAlreadyClosed
	}

	return a.GetByID(ctx, id)
}

// Update implements attendance.AttendanceRepository.
func (a *attendanceRepository) Update(ctx context.Context, att attendance.Attendance) error {
	q := GetQuerier(ctx, a.db)

	query := `
		UPDATE attendances
		SET check_in = $1, check_out = $2, state = $3, description = $4, updated_at = NOW()
		WHERE id = $5
	`

	result, err := q.Exec(ctx, query, att.CheckIn, att.CheckOut, att.State, att.Description, att.ID)
	if err != nil {
		return fmt.Errorf("failed to update attendance: %w", err)
	}

	if result.RowsAffected() == 0 {
		return attendance.ErrAttendanceNotFound
	}

	return nil
}

// DeleteHolidaysByDate implements attendance.AttendanceRepository.
func (a *attendanceRepository) DeleteHolidaysByDate(ctx context.Context, date time.Time) (int64, error) {
	q := GetQuerier(ctx, a.db)

	result, err := q.Exec(ctx, `DELETE FROM attendances WHERE date = $1 AND day_type = $2`, date, attendance.DayTypeHoliday)
	if err != nil {
		return 0, fmt.Errorf("failed to delete holidays: %w", err)
	}

	return result.RowsAffected(), nil
}

// List implements attendance.AttendanceRepository.
func (a *attendanceRepository) List(ctx context.Context, filter attendance.AttendanceFilter) ([]attendance.Attendance, int64, error) {
	q := GetQuerier(ctx, a.db)

	// Build WHERE clause
	baseWhere := "1=1"
	args := []any{}
	argIdx := 1

	if filter.EmployeeID != nil && *filter.EmployeeID != "" {
		baseWhere += fmt.Sprintf(" AND a.employee_id = $%d", argIdx)
		args = append(args, *filter.EmployeeID)
		argIdx++
	}

	if filter.Date != nil && *filter.Date != "" {
		baseWhere += fmt.Sprintf(" AND a.date = $%d", argIdx)
		args = append(args, *filter.Date)
		argIdx++
	}

	if filter.StartDate != nil && *filter.StartDate != "" {
		baseWhere += fmt.Sprintf(" AND a.date >= $%d", argIdx)
		args = append(args, *filter.StartDate)
		argIdx++
	}
	if filter.EndDate != nil && *filter.EndDate != "" {
		baseWhere += fmt.Sprintf(" AND a.date <= $%d", argIdx)
		args = append(args, *filter.EndDate)
		argIdx++
	}

	if filter.DayType != nil && *filter.DayType != "" {
		baseWhere += fmt.Sprintf(" AND a.day_type = $%d", argIdx)
		args = append(args, *filter.DayType)
		argIdx++
	}

	countQuery := `SELECT COUNT(*) FROM attendances a WHERE ` + baseWhere
	var total int64
	if err := q.QueryRow(ctx, countQuery, args...).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("failed to count attendances: %w", err)
	}

	orderByField := "a.date"
	switch filter.SortBy {
	case "employee_name":
		orderByField = "e.full_name"
	case "check_in":
		orderByField = "a.check_in"
	case "check_out":
		orderByField = "a.check_out"
	case "day_type":
		orderByField = "a.day_type"
	}
	sortOrder := "DESC"
	if strings.ToLower(filter.SortOrder) == "asc" {
		sortOrder = "ASC"
	}

	selectQuery := fmt.Sprintf(`
		SELECT %s
		FROM attendances a
		LEFT JOIN employees e ON e.id = a.employee_id
		WHERE %s
		ORDER BY %s %s, a.check_in DESC NULLS LAST, a.id
		LIMIT $%d OFFSET $%d
	`, attendanceColumns, baseWhere, orderByField, sortOrder, argIdx, argIdx+1)

	limit := filter.Limit
	if limit == 0 {
		limit = 20
	}
	page := filter.Page
	if page == 0 {
		page = 1
	}
	args = append(args, limit, (page-1)*limit)

	rows, err := q.Query(ctx, selectQuery, args...)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to query attendances: %w", err)
	}
	defer rows.Close()

	var attendances []attendance.Attendance
	for rows.Next() {
		att, err := scanAttendance(rows)
		if err != nil {
			return nil, 0, fmt.Errorf("failed to scan attendance: %w", err)
		}
		attendances = append(attendances, att)
	}
	if err := rows.Err(); err != nil {
		return nil, 0, fmt.Errorf("failed to iterate attendances: %w", err)
	}

	return attendances, total, nil
}

// ListByDateRange implements attendance.AttendanceRepository.
func (a *attendanceRepository) ListByDateRange(ctx context.Context, start, end time.Time) ([]attendance.Attendance, error) {
	q := GetQuerier(ctx, a.db)

	query := `
		SELECT ` + attendanceColumns + `
		FROM attendances a
		LEFT JOIN employees e ON e.id = a.employee_id
		WHERE a.date BETWEEN $1 AND $2
		ORDER BY e.full_name ASC, a.date DESC
	`

	rows, err := q.Query(ctx, query, start, end)
	if err != nil {
		return nil, fmt.Errorf("failed to query attendances by range: %w", err)
	}
	defer rows.Close()

	var attendances []attendance.Attendance
	for rows.Next() {
		att, err := scanAttendance(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan attendance: %w", err)
		}
		attendances = append(attendances, att)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate attendances: %w", err)
	}

	return attendances, nil
}
