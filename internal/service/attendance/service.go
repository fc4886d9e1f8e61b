package attendance

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"math"
	"strings"
	"time"

	"github.com/JuanAlonzo/control-asistencia-backend/internal/domain/attendance"
	"github.com/JuanAlonzo/control-asistencia-backend/internal/domain/employee"
	"github.com/JuanAlonzo/control-asistencia-backend/internal/pkg/clock"
	"github.com/JuanAlonzo/control-asistencia-backend/internal/pkg/validator"
	"github.com/google/uuid"
)

const (
	homeOfficeDescription = "HOME_OFFICE"
	holidayDescription    = "HOLIDAY"
)

var leaveLabels = map[attendance.DayType]string{
	attendance.DayTypeMedicalLeave: string(attendance.ObservationMedicalLeave),
	attendance.DayTypeVacation:     string(attendance.ObservationVacation),
	attendance.DayTypeOtherLeave:   string(attendance.ObservationLeave),
}

type AttendanceServiceImpl struct {
	attendance.AttendanceRepository
	employee.EmployeeRepository
	clock              clock.Clock
	loc                *time.Location
	holidayAllowSunday bool
}

// NewAttendanceService wires the lifecycle manager. loc is the zone in which
// calendar dates and the 08:00 boundary are evaluated.
func NewAttendanceService(
	attendanceRepo attendance.AttendanceRepository,
	employeeRepo employee.EmployeeRepository,
	clk clock.Clock,
	loc *time.Location,
	holidayAllowSunday bool,
) attendance.AttendanceService {
	if loc == nil {
		loc = time.UTC
	}
	return &AttendanceServiceImpl{
		AttendanceRepository: attendanceRepo,
		EmployeeRepository:   employeeRepo,
		clock:                clk,
		loc:                  loc,
		holidayAllowSunday:   holidayAllowSunday,
	}
}

func newID() (string, error) {
	id, err := uuid.NewV7()
	if err != nil {
		return "", fmt.Errorf("failed to generate id: %w", err)
	}
	return id.String(), nil
}

func (a *AttendanceServiceImpl) today() (time.Time, time.Time) {
	now := a.clock.Now()
	return now, attendance.DateOf(now, a.loc)
}

func withEmployee(att attendance.Attendance, emp employee.Employee) attendance.Attendance {
	att.EmployeeName = &emp.FullName
	att.EmployeeUsername = &emp.Username
	return att
}

func trimmedOr(value *string, fallback string) *string {
	if value == nil || strings.TrimSpace(*value) == "" {
		return &fallback
	}
	trimmed := strings.TrimSpace(*value)
	return &trimmed
}

// CheckIn implements attendance.AttendanceService.
func (a *AttendanceServiceImpl) CheckIn(ctx context.Context, req attendance.CheckInRequest) (attendance.AttendanceResponse, error) {
	if err := req.Validate(); err != nil {
		return attendance.AttendanceResponse{}, err
	}

	emp, err := employee.RequireActive(ctx, a.EmployeeRepository, req.EmployeeID)
	if err != nil {
		return attendance.AttendanceResponse{}, err
	}

	now, date := a.today()
	expected, err := attendance.ExpectedHours(date)
	if err != nil {
		return attendance.AttendanceResponse{}, err
	}

	id, err := newID()
	if err != nil {
		return attendance.AttendanceResponse{}, err
	}
	checkIn := now.UTC()

	created, err := a.AttendanceRepository.Create(ctx, attendance.Attendance{
		ID:            id,
		EmployeeID:    emp.ID,
		Date:          date,
		CheckIn:       &checkIn,
		DayType:       attendance.DayTypePresent,
		State:         attendance.StateOpen,
		ExpectedHours: expected,
	})
	if err != nil {
		if errors.Is(err, attendance.ErrDuplicateRecord) {
			return attendance.AttendanceResponse{}, attendance.NewConflictError(err, emp.ID, date)
		}
		return attendance.AttendanceResponse{}, fmt.Errorf("failed to create attendance record: %w", err)
	}

	return a.toResponse(withEmployee(created, emp)), nil
}

// CheckOut implements attendance.AttendanceService.
func (a *AttendanceServiceImpl) CheckOut(ctx context.Context, req attendance.CheckOutRequest) (attendance.AttendanceResponse, error) {
	if err := req.Validate(); err != nil {
		return attendance.AttendanceResponse{}, err
	}

	now, date := a.today()

	existing, err := a.AttendanceRepository.GetByEmployeeAndDate(ctx, req.EmployeeID, date)
	if err != nil {
		return attendance.AttendanceResponse{}, fmt.Errorf("failed to get today's attendance: %w", err)
	}
	if existing == nil || existing.DayType != attendance.DayTypePresent {
		return attendance.AttendanceResponse{}, attendance.ErrAttendanceNotFound
	}
	if existing.CheckOut != nil || existing.State == attendance.StateClosed {
		return attendance.AttendanceResponse{}, attendance.ErrAlreadyClosed
	}

	closed, err := a.AttendanceRepository.CloseCheckOut(ctx, existing.ID, now.UTC())
	if err != nil {
		if errors.Is(err, attendance.ErrAlreadyClosed) || errors.Is(err, attendance.ErrAttendanceNotFound) {
			return attendance.AttendanceResponse{}, err
		}
		return attendance.AttendanceResponse{}, fmt.Errorf("failed to close attendance record: %w", err)
	}

	return a.toResponse(closed), nil
}

// LogHomeOffice implements attendance.AttendanceService.
func (a *AttendanceServiceImpl) LogHomeOffice(ctx context.Context, req attendance.HomeOfficeRequest) (attendance.AttendanceResponse, error) {
	if err := req.Validate(); err != nil {
		return attendance.AttendanceResponse{}, err
	}

	_, date := a.today()
	if req.Date != nil && *req.Date != "" {
		date, _ = validator.IsValidDate(*req.Date)
	}

	return a.createClosedDay(ctx, req.EmployeeID, date, attendance.DayTypeHomeOffice, homeOfficeDescription)
}

// LogLeave implements attendance.AttendanceService.
func (a *AttendanceServiceImpl) LogLeave(ctx context.Context, req attendance.LeaveRequest) (attendance.AttendanceResponse, error) {
	if err := req.Validate(); err != nil {
		return attendance.AttendanceResponse{}, err
	}

	kind, err := attendance.ParseLeaveKind(req.Kind)
	if err != nil {
		return attendance.AttendanceResponse{}, err
	}
	date, _ := validator.IsValidDate(req.Date)

	return a.createClosedDay(ctx, req.EmployeeID, date, kind, *trimmedOr(req.Description, leaveLabels[kind]))
}

// createClosedDay stores a day that is closed on creation and carries no timestamps.
func (a *AttendanceServiceImpl) createClosedDay(ctx context.Context, employeeID string, date time.Time, dayType attendance.DayType, description string) (attendance.AttendanceResponse, error) {
	emp, err := employee.RequireActive(ctx, a.EmployeeRepository, employeeID)
	if err != nil {
		return attendance.AttendanceResponse{}, err
	}

	expected, err := attendance.ExpectedHours(date)
	if err != nil {
		return attendance.AttendanceResponse{}, err
	}

	id, err := newID()
	if err != nil {
		return attendance.AttendanceResponse{}, err
	}

	created, err := a.AttendanceRepository.Create(ctx, attendance.Attendance{
		ID:            id,
		EmployeeID:    emp.ID,
		Date:          date,
		DayType:       dayType,
		State:         attendance.StateClosed,
		Description:   &description,
		ExpectedHours: expected,
	})
	if err != nil {
		if errors.Is(err, attendance.ErrDuplicateRecord) {
			return attendance.AttendanceResponse{}, attendance.NewConflictError(err, emp.ID, date)
		}
		return attendance.AttendanceResponse{}, fmt.Errorf("failed to create %s record: %w", dayType, err)
	}

	return a.toResponse(withEmployee(created, emp)), nil
}

// RegisterHoliday implements attendance.AttendanceService.
func (a *AttendanceServiceImpl) RegisterHoliday(ctx context.Context, req attendance.RegisterHolidayRequest) (attendance.HolidayResponse, error) {
	if err := req.Validate(); err != nil {
		return attendance.HolidayResponse{}, err
	}

	date, _ := validator.IsValidDate(req.Date)
	expected, err := attendance.HolidayExpectedHours(date, a.holidayAllowSunday)
	if err != nil {
		return attendance.HolidayResponse{}, err
	}
	description := trimmedOr(req.Description, holidayDescription)

	employees, err := a.EmployeeRepository.ListActive(ctx)
	if err != nil {
		return attendance.HolidayResponse{}, fmt.Errorf("failed to list active employees: %w", err)
	}

	records := make([]attendance.Attendance, 0, len(employees))
	for _, emp := range employees {
		id, err := newID()
		if err != nil {
			return attendance.HolidayResponse{}, err
		}
		records = append(records, attendance.Attendance{
			ID:            id,
			EmployeeID:    emp.ID,
			Date:          date,
			DayType:       attendance.DayTypeHoliday,
			State:         attendance.StateClosed,
			Description:   description,
			ExpectedHours: expected,
		})
	}

	inserted, err := a.AttendanceRepository.CreateBatch(ctx, records)
	if err != nil {
		if errors.Is(err, attendance.ErrDuplicateRecord) {
			return attendance.HolidayResponse{}, attendance.NewConflictError(attendance.ErrHolidayConflict, "", date)
		}
		return attendance.HolidayResponse{}, fmt.Errorf("failed to register holiday: %w", err)
	}

	slog.Info("Registered holiday", "date", req.Date, "inserted", inserted)

	return attendance.HolidayResponse{
		Date:          req.Date,
		Description:   *description,
		InsertedCount: inserted,
	}, nil
}

// DeleteHoliday implements attendance.AttendanceService.
func (a *AttendanceServiceImpl) DeleteHoliday(ctx context.Context, date string) (attendance.DeleteHolidayResponse, error) {
	parsed, ok := validator.IsValidDate(date)
	if !ok {
		return attendance.DeleteHolidayResponse{}, validator.ValidationErrors{
			{Field: "date", Message: "date must be in YYYY-MM-DD format"},
		}
	}

	deleted, err := a.AttendanceRepository.DeleteHolidaysByDate(ctx, parsed)
	if err != nil {
		return attendance.DeleteHolidayResponse{}, fmt.Errorf("failed to delete holiday: %w", err)
	}

	slog.Info("Deleted holiday", "date", date, "deleted", deleted)

	return attendance.DeleteHolidayResponse{
		Date:         date,
		DeletedCount: deleted,
	}, nil
}

// GetAttendance implements attendance.AttendanceService.
func (a *AttendanceServiceImpl) GetAttendance(ctx context.Context, id string) (attendance.AttendanceResponse, error) {
	if !validator.IsValidUUID(id) {
		return attendance.AttendanceResponse{}, validator.ValidationErrors{
			{Field: "id", Message: "id must be a valid UUID"},
		}
	}

	att, err := a.AttendanceRepository.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, attendance.ErrAttendanceNotFound) {
			return attendance.AttendanceResponse{}, err
		}
		return attendance.AttendanceResponse{}, fmt.Errorf("failed to get attendance: %w", err)
	}

	return a.toResponse(att), nil
}

// ListAttendance implements attendance.AttendanceService.
func (a *AttendanceServiceImpl) ListAttendance(ctx context.Context, filter attendance.AttendanceFilter) (attendance.ListAttendanceResponse, error) {
	if err := filter.Validate(); err != nil {
		return attendance.ListAttendanceResponse{}, err
	}

	attendances, total, err := a.AttendanceRepository.List(ctx, filter)
	if err != nil {
		return attendance.ListAttendanceResponse{}, fmt.Errorf("failed to list attendances: %w", err)
	}

	return a.toListResponse(attendances, total, filter.Page, filter.Limit), nil
}

// GetMyAttendance implements attendance.AttendanceService.
func (a *AttendanceServiceImpl) GetMyAttendance(ctx context.Context, filter attendance.MyAttendanceFilter) (attendance.ListAttendanceResponse, error) {
	if err := filter.Validate(); err != nil {
		return attendance.ListAttendanceResponse{}, err
	}

	attendances, total, err := a.AttendanceRepository.List(ctx, attendance.AttendanceFilter{
		EmployeeID: &filter.EmployeeID,
		StartDate:  filter.StartDate,
		EndDate:    filter.EndDate,
		Page:       filter.Page,
		Limit:      filter.Limit,
		SortBy:     "date",
		SortOrder:  "desc",
	})
	if err != nil {
		return attendance.ListAttendanceResponse{}, fmt.Errorf("failed to get my attendance: %w", err)
	}

	return a.toListResponse(attendances, total, filter.Page, filter.Limit), nil
}

// UpdateAttendance implements attendance.AttendanceService.
// Allows an admin to fix wrong check-in/check-out times or the description.
func (a *AttendanceServiceImpl) UpdateAttendance(ctx context.Context, req attendance.UpdateAttendanceRequest) (attendance.AttendanceResponse, error) {
	if err := req.Validate(); err != nil {
		return attendance.AttendanceResponse{}, err
	}

	existing, err := a.AttendanceRepository.GetByID(ctx, req.ID)
	if err != nil {
		if errors.Is(err, attendance.ErrAttendanceNotFound) {
			return attendance.AttendanceResponse{}, err
		}
		return attendance.AttendanceResponse{}, fmt.Errorf("failed to get attendance: %w", err)
	}

	if req.DayType != nil && attendance.DayType(*req.DayType) != existing.DayType {
		return attendance.AttendanceResponse{}, attendance.ErrDayTypeImmutable
	}
	if (req.CheckIn != nil || req.CheckOut != nil) && existing.DayType != attendance.DayTypePresent {
		return attendance.AttendanceResponse{}, attendance.ErrTimestampsNotAllowed
	}

	updated := existing
	if req.CheckIn != nil {
		checkIn, err := attendance.ParseTimestampInput(*req.CheckIn, existing.Date, a.loc)
		if err != nil {
			return attendance.AttendanceResponse{}, err
		}
		checkIn = checkIn.UTC()
		updated.CheckIn = &checkIn
	}
	if req.CheckOut != nil {
		checkOut, err := attendance.ParseTimestampInput(*req.CheckOut, existing.Date, a.loc)
		if err != nil {
			return attendance.AttendanceResponse{}, err
		}
		checkOut = checkOut.UTC()
		updated.CheckOut = &checkOut
	}
	// Both timestamps must belong to the record's calendar date.
	if updated.CheckIn != nil && !attendance.DateOf(*updated.CheckIn, a.loc).Equal(existing.Date) {
		return attendance.AttendanceResponse{}, attendance.ErrInvalidTimeRange
	}
	if updated.CheckOut != nil {
		if updated.CheckIn == nil || !updated.CheckOut.After(*updated.CheckIn) {
			return attendance.AttendanceResponse{}, attendance.ErrInvalidTimeRange
		}
		if !attendance.DateOf(*updated.CheckOut, a.loc).Equal(existing.Date) {
			return attendance.AttendanceResponse{}, attendance.ErrInvalidTimeRange
		}
		updated.State = attendance.StateClosed
	}
	if req.Description != nil {
		updated.Description = trimmedOr(req.Description, "")
	}

	if err := a.AttendanceRepository.Update(ctx, updated); err != nil {
		if errors.Is(err, attendance.ErrAttendanceNotFound) {
			return attendance.AttendanceResponse{}, err
		}
		return attendance.AttendanceResponse{}, fmt.Errorf("failed to update attendance: %w", err)
	}

	slog.Info("Corrected attendance", "attendance_id", updated.ID, "employee_id", updated.EmployeeID)

	reloaded, err := a.AttendanceRepository.GetByID(ctx, updated.ID)
	if err != nil {
		return attendance.AttendanceResponse{}, fmt.Errorf("failed to reload attendance: %w", err)
	}

	return a.toResponse(reloaded), nil
}

// ExportAttendance implements attendance.AttendanceService.
func (a *AttendanceServiceImpl) ExportAttendance(ctx context.Context, req attendance.ExportRequest) (attendance.ExportResponse, error) {
	if err := req.Validate(); err != nil {
		return attendance.ExportResponse{}, err
	}

	start, _ := validator.IsValidDate(req.StartDate)
	end, _ := validator.IsValidDate(req.EndDate)

	records, err := a.AttendanceRepository.ListByDateRange(ctx, start, end)
	if err != nil {
		return attendance.ExportResponse{}, fmt.Errorf("failed to export attendances: %w", err)
	}

	rows := make([]attendance.AttendanceResponse, 0, len(records))
	for _, att := range records {
		rows = append(rows, a.toResponse(att))
	}

	return attendance.ExportResponse{
		StartDate: req.StartDate,
		EndDate:   req.EndDate,
		TotalRows: len(rows),
		Rows:      rows,
	}, nil
}

func (a *AttendanceServiceImpl) toListResponse(attendances []attendance.Attendance, total int64, page, limit int) attendance.ListAttendanceResponse {
	responses := make([]attendance.AttendanceResponse, 0, len(attendances))
	for _, att := range attendances {
		responses = append(responses, a.toResponse(att))
	}

	totalPages := int(math.Ceil(float64(total) / float64(limit)))
	offset := (page - 1) * limit
	showing := fmt.Sprintf("%d-%d of %d", offset+1, min(page*limit, int(total)), total)
	if int64(offset) >= total {
		showing = fmt.Sprintf("0 of %d", total)
	}

	return attendance.ListAttendanceResponse{
		TotalCount:  total,
		Page:        page,
		Limit:       limit,
		TotalPages:  totalPages,
		Showing:     showing,
		Attendances: responses,
	}
}

func (a *AttendanceServiceImpl) toResponse(att attendance.Attendance) attendance.AttendanceResponse {
	return mapAttendanceToResponse(attendance.Compute(att, a.loc), a.loc)
}

// timePtrToString formats t as RFC3339 in loc.
func timePtrToString(t *time.Time, loc *time.Location) *string {
	if t == nil {
		return nil
	}
	format := t.In(loc).Format(time.RFC3339)
	return &format
}

// mapAttendanceToResponse converts a computed record to AttendanceResponse
func mapAttendanceToResponse(c attendance.Computed, loc *time.Location) attendance.AttendanceResponse {
	var employeeName, employeeUsername string
	if c.EmployeeName != nil {
		employeeName = *c.EmployeeName
	}
	if c.EmployeeUsername != nil {
		employeeUsername = *c.EmployeeUsername
	}

	return attendance.AttendanceResponse{
		ID:               c.ID,
		EmployeeID:       c.EmployeeID,
		EmployeeName:     employeeName,
		EmployeeUsername: employeeUsername,
		Date:             c.Date.Format(validator.DateLayout),
		DayType:          string(c.DayType),
		State:            string(c.State),
		Description:      c.Description,
		CheckIn:          timePtrToString(c.CheckIn, loc),
		CheckOut:         timePtrToString(c.CheckOut, loc),
		EffectiveCheckIn: timePtrToString(c.EffectiveCheckIn, loc),
		ExpectedHours:    c.ExpectedHours,
		WorkedHours:      c.WorkedHours,
		OvertimeHours:    c.OvertimeHours,
		Observation:      string(c.Observation),
		CreatedAt:        c.CreatedAt.In(loc).Format(time.RFC3339),
		UpdatedAt:        c.UpdatedAt.In(loc).Format(time.RFC3339),
	}
}
