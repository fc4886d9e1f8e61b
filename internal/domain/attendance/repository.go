package attendance

import (
	"context"
	"time"
)

// AttendanceRepository defines data access methods for attendance records.
// Uniqueness of (employee_id, date) is enforced by the store; Create and
// CreateBatch surface a violation as ErrDuplicateRecord.
type AttendanceRepository interface {
	// Create inserts a single record
	Create(ctx context.Context, attendance Attendance) (Attendance, error)

	// CreateBatch inserts all records in one transaction. Either every record
	// is stored or none is.
	CreateBatch(ctx context.Context, attendances []Attendance) (int, error)

	// GetByID retrieves a record joined with its employee
	GetByID(ctx context.Context, id string) (Attendance, error)

	// GetByEmployeeAndDate returns nil when the employee has no record on date
	GetByEmployeeAndDate(ctx context.Context, employeeID string, date time.Time) (*Attendance, error)

	// CloseCheckOut sets check_out and closes the record only while it is
	// still open. Returns ErrAlreadyClosed otherwise.
	CloseCheckOut(ctx context.Context, id string, checkOut time.Time) (Attendance, error)

	// Update persists check_in, check_out, state and description
	Update(ctx context.Context, attendance Attendance) error

	// DeleteHolidaysByDate removes holiday records of date and returns the count
	DeleteHolidaysByDate(ctx context.Context, date time.Time) (int64, error)

	// List retrieves records with filters and pagination
	List(ctx context.Context, filter AttendanceFilter) ([]Attendance, int64, error)

	// ListByDateRange returns every record with date in [start, end],
	// ordered by employee name then date descending
	ListByDateRange(ctx context.Context, start, end time.Time) ([]Attendance, error)
}
