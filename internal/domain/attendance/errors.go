package attendance

import (
	"errors"
	"time"

	"github.com/JuanAlonzo/control-asistencia-backend/internal/pkg/validator"
)

// Attendance domain errors
var (
	// Lifecycle errors
	ErrNonWorkDay       = errors.New("sunday is not a work day")
	ErrDuplicateRecord  = errors.New("attendance already registered for this date")
	ErrAlreadyClosed    = errors.New("you have already checked out")
	ErrHolidayConflict  = errors.New("one or more employees already have a record for this date")
	ErrInvalidLeaveKind = errors.New("invalid leave kind")

	// Correction errors
	ErrDayTypeImmutable     = errors.New("day type cannot be changed after creation")
	ErrTimestampsNotAllowed = errors.New("check-in and check-out only apply to present records")
	ErrInvalidTimeRange     = errors.New("check-in and check-out must fall on the record date, check-out after check-in")

	// General errors
	ErrAttendanceNotFound = errors.New("attendance record not found")
)

// ConflictError names the (employee, date) slot a write collided with.
// It unwraps to ErrDuplicateRecord or ErrHolidayConflict.
type ConflictError struct {
	Err        error
	EmployeeID string // empty for holiday batches
	Date       time.Time
}

func NewConflictError(err error, employeeID string, date time.Time) *ConflictError {
	return &ConflictError{Err: err, EmployeeID: employeeID, Date: date}
}

func (e *ConflictError) Error() string {
	return e.Err.Error()
}

func (e *ConflictError) Unwrap() error {
	return e.Err
}

// Details is the clash as reported to the client.
func (e *ConflictError) Details() map[string]string {
	details := map[string]string{"date": e.Date.Format(validator.DateLayout)}
	if e.EmployeeID != "" {
		details["employee_id"] = e.EmployeeID
	}
	return details
}
