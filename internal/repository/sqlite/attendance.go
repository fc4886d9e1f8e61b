package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/JuanAlonzo/control-asistencia-backend/internal/domain/attendance"
	"github.com/JuanAlonzo/control-asistencia-backend/internal/pkg/database"
)

type attendanceRepository struct {
	db *database.SQLiteDB
}

func NewAttendanceRepository(db *database.SQLiteDB) attendance.AttendanceRepository {
	return &attendanceRepository{db: db}
}

const attendanceColumns = `
	a.id, a.employee_id, a.date, a.check_in, a.check_out,
	a.day_type, a.state, a.description, a.expected_hours,
	a.created_at, a.updated_at,
	e.full_name, e.username
`

type rowScanner interface {
	Scan(dest ...any) error
}

func scanAttendance(row rowScanner) (attendance.Attendance, error) {
	var (
		att                  attendance.Attendance
		date                 string
		checkIn, checkOut    sql.NullInt64
		description          sql.NullString
		createdAt, updatedAt int64
		name, username       sql.NullString
	)
	err := row.Scan(
		&att.ID, &att.EmployeeID, &date, &checkIn, &checkOut,
		&att.DayType, &att.State, &description, &att.ExpectedHours,
		&createdAt, &updatedAt,
		&name, &username,
	)
	if err != nil {
		return attendance.Attendance{}, err
	}

	att.Date, err = parseDate(date)
	if err != nil {
		return attendance.Attendance{}, fmt.Errorf("parse date %q: %w", date, err)
	}
	att.CheckIn = timeFromNull(checkIn)
	att.CheckOut = timeFromNull(checkOut)
	att.Description = stringFromNull(description)
	att.CreatedAt = fromMillis(createdAt)
	att.UpdatedAt = fromMillis(updatedAt)
	att.EmployeeName = stringFromNull(name)
	att.EmployeeUsername = stringFromNull(username)

	return att, nil
}

func insertAttendance(ctx context.Context, q database.SQLQuerier, att *attendance.Attendance) error {
	now := time.Now().UTC()

	_, err := q.ExecContext(ctx, `
		INSERT INTO attendances (
			id, employee_id, date, check_in, check_out,
			day_type, state, description, expected_hours,
			created_at, updated_at
		) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		att.ID,
		att.EmployeeID,
		formatDate(att.Date),
		nullMillis(att.CheckIn),
		nullMillis(att.CheckOut),
		string(att.DayType),
		string(att.State),
		att.Description,
		att.ExpectedHours,
		toMillis(now),
		toMillis(now),
	)
	if err != nil {
		if isUniqueViolation(err) {
			return attendance.ErrDuplicateRecord
		}
		return err
	}

	att.CreatedAt = fromMillis(toMillis(now))
	att.UpdatedAt = att.CreatedAt
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
	err := WithTransaction(ctx, a.db, func(ctx context.Context, tx *sql.Tx) error {
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
		WHERE a.id = ?
	`

	att, err := scanAttendance(q.QueryRowContext(ctx, query, id))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
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
		WHERE a.employee_id = ? AND a.date = ?
		LIMIT 1
	`

	att, err := scanAttendance(q.QueryRowContext(ctx, query, employeeID, formatDate(date)))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get attendance by employee and date: %w", err)
	}

	return &att, nil
}

// CloseCheckOut implements attendance.AttendanceRepository.
func (a *attendanceRepository) CloseCheckOut(ctx context.Context, id string, checkOut time.Time) (attendance.Attendance, error) {
	q := GetQuerier(ctx, a.db)

	result, err := q.ExecContext(ctx, `
		UPDATE attendances
		SET check_out = ?, state = ?, updated_at = ?
		WHERE id = ? AND state = ? AND check_out IS NULL`,
		toMillis(checkOut), string(attendance.StateClosed), toMillis(time.Now()), id, string(attendance.StateOpen),
	)
	if err != nil {
		return attendance.Attendance{}, fmt.Errorf("failed to check out attendance: %w", err)
	}

	affected, err := result.RowsAffected()
	if err != nil {
		return attendance.Attendance{}, fmt.Errorf("failed to read affected rows: %w", err)
	}
	if affected == 0 {
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

	result, err := q.ExecContext(ctx, `
		UPDATE attendances
		SET check_in = ?, check_out = ?, state = ?, description = ?, updated_at = ?
		WHERE id = ?`,
		nullMillis(att.CheckIn), nullMillis(att.CheckOut), string(att.State), att.Description, toMillis(time.Now()), att.ID,
	)
	if err != nil {
		return fmt.Errorf("failed to update attendance: %w", err)
	}

	affected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to read affected rows: %w", err)
	}
	if affected == 0 {
		return attendance.ErrAttendanceNotFound
	}

	return nil
}

// DeleteHolidaysByDate implements attendance.AttendanceRepository.
func (a *attendanceRepository) DeleteHolidaysByDate(ctx context.Context, date time.Time) (int64, error) {
	q := GetQuerier(ctx, a.db)

	result, err := q.ExecContext(ctx, `DELETE FROM attendances WHERE date = ? AND day_type = ?`,
		formatDate(date), string(attendance.DayTypeHoliday))
	if err != nil {
		return 0, fmt.Errorf("failed to delete holidays: %w", err)
	}

	affected, err := result.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("failed to read affected rows: %w", err)
	}

	return affected, nil
}

// List implements attendance.AttendanceRepository.
func (a *attendanceRepository) List(ctx context.Context, filter attendance.AttendanceFilter) ([]attendance.Attendance, int64, error) {
	q := GetQuerier(ctx, a.db)

	baseWhere := "1=1"
	args := []any{}

	if filter.EmployeeID != nil && *filter.EmployeeID != "" {
		baseWhere += " AND a.employee_id = ?"
		args = append(args, *filter.EmployeeID)
	}
	if filter.Date != nil && *filter.Date != "" {
		baseWhere += " AND a.date = ?"
		args = append(args, *filter.Date)
	}
	if filter.StartDate != nil && *filter.StartDate != "" {
		baseWhere += " AND a.date >= ?"
		args = append(args, *filter.StartDate)
	}
	if filter.EndDate != nil && *filter.EndDate != "" {
		baseWhere += " AND a.date <= ?"
		args = append(args, *filter.EndDate)
	}
	if filter.DayType != nil && *filter.DayType != "" {
		baseWhere += " AND a.day_type = ?"
		args = append(args, *filter.DayType)
	}

	var total int64
	if err := q.QueryRowContext(ctx, `SELECT COUNT(*) FROM attendances a WHERE `+baseWhere, args...).Scan(&total); err != nil {
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

	limit := filter.Limit
	if limit == 0 {
		limit = 20
	}
	page := filter.Page
	if page == 0 {
		page = 1
	}

	selectQuery := fmt.Sprintf(`
		SELECT %s
		FROM attendances a
		LEFT JOIN employees e ON e.id = a.employee_id
		WHERE %s
		ORDER BY %s %s, a.check_in DESC NULLS LAST, a.id
		LIMIT ? OFFSET ?
	`, attendanceColumns, baseWhere, orderByField, sortOrder)
	args = append(args, limit, (page-1)*limit)

	rows, err := q.QueryContext(ctx, selectQuery, args...)
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
		WHERE a.date BETWEEN ? AND ?
		ORDER BY e.full_name ASC, a.date DESC
	`

	rows, err := q.QueryContext(ctx, query, formatDate(start), formatDate(end))
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
