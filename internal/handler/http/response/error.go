package response

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/JuanAlonzo/control-asistencia-backend/internal/domain/attendance"
	"github.com/JuanAlonzo/control-asistencia-backend/internal/domain/auth"
	"github.com/JuanAlonzo/control-asistencia-backend/internal/domain/employee"
	"github.com/JuanAlonzo/control-asistencia-backend/internal/pkg/validator"
)

// HandleError maps domain errors to HTTP responses
func HandleError(w http.ResponseWriter, err error) {
	// Check if it's a validation error
	var validationErrs validator.ValidationErrors
	if errors.As(err, &validationErrs) {
		ValidationError(w, validationErrs.ToMap())
		return
	}

	// Record clashes name the (employee, date) slot
	var conflict *attendance.ConflictError
	if errors.As(err, &conflict) {
		Conflict(w, conflictMessage(conflict), conflict.Details())
		return
	}

	switch {
	// Auth domain errors
	case errors.Is(err, auth.ErrInvalidToken):
		Unauthorized(w, err.Error())
	case errors.Is(err, auth.ErrEmployeeClaimMissing):
		Unauthorized(w, err.Error())
	case errors.Is(err, auth.ErrAdminPrivilegeRequired):
		Forbidden(w, "Admin privilege required")

	// Employee domain errors
	case errors.Is(err, employee.ErrEmployeeNotFound):
		NotFound(w, "Employee not found")
	case errors.Is(err, employee.ErrEmployeeInactive):
		Forbidden(w, "Employee is inactive")
	case errors.Is(err, employee.ErrUsernameExists):
		Conflict(w, "Username already registered", nil)

	// Attendance domain errors
	case errors.Is(err, attendance.ErrAttendanceNotFound):
		NotFound(w, "Attendance record not found")
	case errors.Is(err, attendance.ErrNonWorkDay):
		BadRequest(w, "Sunday is not a work day", nil)
	case errors.Is(err, attendance.ErrDuplicateRecord):
		Conflict(w, "Attendance already registered for this date", nil)
	case errors.Is(err, attendance.ErrAlreadyClosed):
		Conflict(w, "Check-out already registered", nil)
	case errors.Is(err, attendance.ErrHolidayConflict):
		Conflict(w, "One or more employees already have a record for this date", nil)
	case errors.Is(err, attendance.ErrInvalidLeaveKind),
		errors.Is(err, attendance.ErrDayTypeImmutable),
		errors.Is(err, attendance.ErrTimestampsNotAllowed),
		errors.Is(err, attendance.ErrInvalidTimeRange):
		BadRequest(w, err.Error(), nil)

	// Default
	default:
		slog.Error("Unhandled error", "error", err)
		InternalServerError(w, "An unexpected error occurred")
	}
}

func conflictMessage(conflict *attendance.ConflictError) string {
	if errors.Is(conflict, attendance.ErrHolidayConflict) {
		return "One or more employees already have a record for this date"
	}
	return "Attendance already registered for this date"
}
