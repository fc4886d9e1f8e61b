package attendance

import (
	"context"
)

// AttendanceService defines business logic for attendance operations
type AttendanceService interface {
	// CheckIn opens today's present record for the employee
	CheckIn(ctx context.Context, req CheckInRequest) (AttendanceResponse, error)

	// CheckOut closes today's open present record
	CheckOut(ctx context.Context, req CheckOutRequest) (AttendanceResponse, error)

	// LogHomeOffice registers a closed home office day (today by default)
	LogHomeOffice(ctx context.Context, req HomeOfficeRequest) (AttendanceResponse, error)

	// LogLeave registers a closed medical leave, vacation or other leave day
	LogLeave(ctx context.Context, req LeaveRequest) (AttendanceResponse, error)

	// RegisterHoliday stamps every active employee with a holiday record, atomically
	RegisterHoliday(ctx context.Context, req RegisterHolidayRequest) (HolidayResponse, error)

	// DeleteHoliday removes the holiday records of a date
	DeleteHoliday(ctx context.Context, date string) (DeleteHolidayResponse, error)

	// GetAttendance retrieves a single computed record by ID
	GetAttendance(ctx context.Context, id string) (AttendanceResponse, error)

	// ListAttendance retrieves computed records with filters (admin)
	ListAttendance(ctx context.Context, filter AttendanceFilter) (ListAttendanceResponse, error)

	// GetMyAttendance retrieves computed records of the authenticated employee
	GetMyAttendance(ctx context.Context, filter MyAttendanceFilter) (ListAttendanceResponse, error)

	// UpdateAttendance corrects timestamps or description of a record (admin)
	UpdateAttendance(ctx context.Context, req UpdateAttendanceRequest) (AttendanceResponse, error)

	// ExportAttendance returns the report rows of a date range
	ExportAttendance(ctx context.Context, req ExportRequest) (ExportResponse, error)
}
