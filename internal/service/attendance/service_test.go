package attendance

import (
	"context"
	"errors"
	"path/filepath"
	"sync"
	"testing"
	"time"

	"github.com/JuanAlonzo/control-asistencia-backend/internal/domain/attendance"
	"github.com/JuanAlonzo/control-asistencia-backend/internal/domain/employee"
	"github.com/JuanAlonzo/control-asistencia-backend/internal/pkg/clock"
	"github.com/JuanAlonzo/control-asistencia-backend/internal/pkg/database"
	"github.com/JuanAlonzo/control-asistencia-backend/internal/pkg/validator"
	"github.com/JuanAlonzo/control-asistencia-backend/internal/repository/sqlite"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var lima = time.FixedZone("America/Lima", -5*60*60)

type testEnv struct {
	attendances attendance.AttendanceRepository
	employees   employee.EmployeeRepository
}

func newTestEnv(t *testing.T) *testEnv {
	t.Helper()
	db, err := database.NewSQLiteDB(context.Background(), filepath.Join(t.TempDir(), "attendance.db"))
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })

	return &testEnv{
		attendances: sqlite.NewAttendanceRepository(db),
		employees:   sqlite.NewEmployeeRepository(db),
	}
}

// at returns a service whose clock is frozen at the given local time.
func (e *testEnv) at(year int, month time.Month, day, hour, minute int) attendance.AttendanceService {
	now := time.Date(year, month, day, hour, minute, 0, 0, lima)
	return NewAttendanceService(e.attendances, e.employees, clock.Fixed(now), lima, true)
}

func (e *testEnv) hire(t *testing.T, name string) employee.Employee {
	t.Helper()
	emp, err := e.employees.Create(context.Background(), employee.Employee{
		ID:       uuid.Must(uuid.NewV7()).String(),
		FullName: name,
		Username: name,
		IsActive: true,
	})
	require.NoError(t, err)
	return emp
}

func ptr[T any](v T) *T {
	return &v
}

func TestAttendanceService_CheckInCheckOut(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	emp := env.hire(t, "ana")

	checkedIn, err := env.at(2025, time.January, 13, 8, 10).CheckIn(ctx, attendance.CheckInRequest{EmployeeID: emp.ID})
	require.NoError(t, err)
	assert.Equal(t, "2025-01-13", checkedIn.Date)
	assert.Equal(t, string(attendance.StateOpen), checkedIn.State)
	assert.Equal(t, 8.0, checkedIn.ExpectedHours)
	assert.Equal(t, string(attendance.ObservationPendingCheckout), checkedIn.Observation)
	assert.Equal(t, "ana", checkedIn.EmployeeName)
	require.NotNil(t, checkedIn.EffectiveCheckIn)
	assert.Equal(t, "2025-01-13T08:00:00-05:00", *checkedIn.EffectiveCheckIn)

	_, err = env.at(2025, time.January, 13, 9, 0).CheckIn(ctx, attendance.CheckInRequest{EmployeeID: emp.ID})
	assert.ErrorIs(t, err, attendance.ErrDuplicateRecord)
	var conflict *attendance.ConflictError
	require.ErrorAs(t, err, &conflict)
	assert.Equal(t, map[string]string{"date": "2025-01-13", "employee_id": emp.ID}, conflict.Details())

	checkedOut, err := env.at(2025, time.January, 13, 17, 0).CheckOut(ctx, attendance.CheckOutRequest{EmployeeID: emp.ID})
	require.NoError(t, err)
	assert.Equal(t, string(attendance.StateClosed), checkedOut.State)
	assert.Equal(t, 8.0, checkedOut.WorkedHours)
	assert.Zero(t, checkedOut.OvertimeHours)
	assert.Equal(t, string(attendance.ObservationOK), checkedOut.Observation)

	_, err = env.at(2025, time.January, 13, 18, 0).CheckOut(ctx, attendance.CheckOutRequest{EmployeeID: emp.ID})
	assert.ErrorIs(t, err, attendance.ErrAlreadyClosed)

	// the rejected check-out leaves the record as it was
	stored, err := env.at(2025, time.January, 13, 18, 0).GetAttendance(ctx, checkedOut.ID)
	require.NoError(t, err)
	assert.Equal(t, checkedOut.CheckOut, stored.CheckOut)
	assert.Equal(t, checkedOut.UpdatedAt, stored.UpdatedAt)
	assert.Equal(t, checkedOut.State, stored.State)
	assert.Equal(t, checkedOut.WorkedHours, stored.WorkedHours)
}

func TestAttendanceService_ConcurrentCheckIn(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	emp := env.hire(t, "elsa")
	svc := env.at(2025, time.January, 13, 8, 0)

	const attempts = 2
	errs := make([]error, attempts)
	var wg sync.WaitGroup
	for i := range attempts {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, errs[i] = svc.CheckIn(ctx, attendance.CheckInRequest{EmployeeID: emp.ID})
		}()
	}
	wg.Wait()

	var succeeded, duplicates int
	for _, err := range errs {
		switch {
		case err == nil:
			succeeded++
		case errors.Is(err, attendance.ErrDuplicateRecord):
			duplicates++
		default:
			t.Errorf("unexpected check-in error: %v", err)
		}
	}
	assert.Equal(t, 1, succeeded)
	assert.Equal(t, 1, duplicates)

	list, err := svc.GetMyAttendance(ctx, attendance.MyAttendanceFilter{EmployeeID: emp.ID})
	require.NoError(t, err)
	assert.Equal(t, int64(1), list.TotalCount)
}

func TestAttendanceService_Overtime(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	emp := env.hire(t, "beto")

	_, err := env.at(2025, time.January, 14, 8, 0).CheckIn(ctx, attendance.CheckInRequest{EmployeeID: emp.ID})
	require.NoError(t, err)

	res, err := env.at(2025, time.January, 14, 19, 0).CheckOut(ctx, attendance.CheckOutRequest{EmployeeID: emp.ID})
	require.NoError(t, err)
	assert.Equal(t, 10.0, res.WorkedHours)
	assert.Equal(t, 2.0, res.OvertimeHours)
}

func TestAttendanceService_CheckInGuards(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	emp := env.hire(t, "carla")

	t.Run("sunday", func(t *testing.T) {
		_, err := env.at(2025, time.January, 19, 8, 0).CheckIn(ctx, attendance.CheckInRequest{EmployeeID: emp.ID})
		assert.ErrorIs(t, err, attendance.ErrNonWorkDay)
	})

	t.Run("unknown employee", func(t *testing.T) {
		_, err := env.at(2025, time.January, 13, 8, 0).CheckIn(ctx, attendance.CheckInRequest{EmployeeID: uuid.NewString()})
		assert.ErrorIs(t, err, employee.ErrEmployeeNotFound)
	})

	t.Run("inactive employee", func(t *testing.T) {
		inactive := env.hire(t, "dario")
		require.NoError(t, env.employees.SetActive(ctx, inactive.ID, false))

		_, err := env.at(2025, time.January, 13, 8, 0).CheckIn(ctx, attendance.CheckInRequest{EmployeeID: inactive.ID})
		assert.ErrorIs(t, err, employee.ErrEmployeeInactive)
	})

	t.Run("missing employee id", func(t *testing.T) {
		_, err := env.at(2025, time.January, 13, 8, 0).CheckIn(ctx, attendance.CheckInRequest{})
		var verrs validator.ValidationErrors
		assert.ErrorAs(t, err, &verrs)
	})

	t.Run("home office blocks check-in", func(t *testing.T) {
		svc := env.at(2025, time.January, 15, 8, 0)
		_, err := svc.LogHomeOffice(ctx, attendance.HomeOfficeRequest{EmployeeID: emp.ID})
		require.NoError(t, err)

		_, err = svc.CheckIn(ctx, attendance.CheckInRequest{EmployeeID: emp.ID})
		assert.ErrorIs(t, err, attendance.ErrDuplicateRecord)

		_, err = svc.CheckOut(ctx, attendance.CheckOutRequest{EmployeeID: emp.ID})
		assert.ErrorIs(t, err, attendance.ErrAttendanceNotFound)
	})

	t.Run("check-out without record", func(t *testing.T) {
		_, err := env.at(2025, time.January, 16, 17, 0).CheckOut(ctx, attendance.CheckOutRequest{EmployeeID: emp.ID})
		assert.ErrorIs(t, err, attendance.ErrAttendanceNotFound)
	})
}

func TestAttendanceService_LogHomeOffice(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	emp := env.hire(t, "elena")
	svc := env.at(2025, time.January, 13, 9, 0)

	res, err := svc.LogHomeOffice(ctx, attendance.HomeOfficeRequest{EmployeeID: emp.ID, Date: ptr("2025-01-18")})
	require.NoError(t, err)
	assert.Equal(t, "2025-01-18", res.Date)
	assert.Equal(t, 5.0, res.ExpectedHours)
	assert.Equal(t, 5.0, res.WorkedHours)
	assert.Equal(t, string(attendance.StateClosed), res.State)
	assert.Equal(t, string(attendance.ObservationHomeOffice), res.Observation)
	require.NotNil(t, res.Description)
	assert.Equal(t, "HOME_OFFICE", *res.Description)

	_, err = svc.LogHomeOffice(ctx, attendance.HomeOfficeRequest{EmployeeID: emp.ID, Date: ptr("2025-01-19")})
	assert.ErrorIs(t, err, attendance.ErrNonWorkDay)

	_, err = svc.LogHomeOffice(ctx, attendance.HomeOfficeRequest{EmployeeID: emp.ID, Date: ptr("2025-01-18")})
	assert.ErrorIs(t, err, attendance.ErrDuplicateRecord)
}

func TestAttendanceService_LogLeave(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	emp := env.hire(t, "fabio")
	svc := env.at(2025, time.January, 13, 9, 0)

	res, err := svc.LogLeave(ctx, attendance.LeaveRequest{EmployeeID: emp.ID, Date: "2025-01-14", Kind: "medical_leave"})
	require.NoError(t, err)
	require.NotNil(t, res.Description)
	assert.Equal(t, "MEDICAL_LEAVE", *res.Description)
	assert.Zero(t, res.WorkedHours)
	assert.Equal(t, string(attendance.ObservationMedicalLeave), res.Observation)

	res, err = svc.LogLeave(ctx, attendance.LeaveRequest{EmployeeID: emp.ID, Date: "2025-01-15", Kind: "other_leave", Description: ptr("  family event ")})
	require.NoError(t, err)
	assert.Equal(t, "family event", *res.Description)
	assert.Equal(t, string(attendance.ObservationLeave), res.Observation)

	_, err = svc.LogLeave(ctx, attendance.LeaveRequest{EmployeeID: emp.ID, Date: "2025-01-14", Kind: "vacation"})
	assert.ErrorIs(t, err, attendance.ErrDuplicateRecord)
}

func TestAttendanceService_RegisterHoliday(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	svc := env.at(2025, time.January, 13, 9, 0)

	var staff []employee.Employee
	for _, name := range []string{"ana", "beto", "carla", "dario", "elena"} {
		staff = append(staff, env.hire(t, name))
	}

	t.Run("conflict rolls back every insert", func(t *testing.T) {
		_, err := svc.LogLeave(ctx, attendance.LeaveRequest{EmployeeID: staff[3].ID, Date: "2025-01-15", Kind: "vacation"})
		require.NoError(t, err)

		_, err = svc.RegisterHoliday(ctx, attendance.RegisterHolidayRequest{Date: "2025-01-15"})
		assert.ErrorIs(t, err, attendance.ErrHolidayConflict)
		var conflict *attendance.ConflictError
		require.ErrorAs(t, err, &conflict)
		assert.Empty(t, conflict.EmployeeID)

		holiday := string(attendance.DayTypeHoliday)
		date := "2025-01-15"
		list, err := svc.ListAttendance(ctx, attendance.AttendanceFilter{Date: &date, DayType: &holiday})
		require.NoError(t, err)
		assert.Zero(t, list.TotalCount)
	})

	t.Run("stamps every active employee", func(t *testing.T) {
		res, err := svc.RegisterHoliday(ctx, attendance.RegisterHolidayRequest{Date: "2025-01-16"})
		require.NoError(t, err)
		assert.Equal(t, 5, res.InsertedCount)
		assert.Equal(t, "HOLIDAY", res.Description)

		export, err := svc.ExportAttendance(ctx, attendance.ExportRequest{StartDate: "2025-01-16", EndDate: "2025-01-16"})
		require.NoError(t, err)
		require.Len(t, export.Rows, 5)
		for _, row := range export.Rows {
			assert.Equal(t, 8.0, row.WorkedHours)
			assert.Equal(t, string(attendance.ObservationHoliday), row.Observation)
		}
	})

	t.Run("sunday holiday carries zero hours", func(t *testing.T) {
		res, err := svc.RegisterHoliday(ctx, attendance.RegisterHolidayRequest{Date: "2025-01-19", Description: ptr("Local feast")})
		require.NoError(t, err)
		assert.Equal(t, 5, res.InsertedCount)
		assert.Equal(t, "Local feast", res.Description)

		strict := NewAttendanceService(env.attendances, env.employees, clock.Fixed(time.Now()), lima, false)
		_, err = strict.RegisterHoliday(ctx, attendance.RegisterHolidayRequest{Date: "2025-01-26"})
		assert.ErrorIs(t, err, attendance.ErrNonWorkDay)
	})

	t.Run("delete holiday", func(t *testing.T) {
		res, err := svc.DeleteHoliday(ctx, "2025-01-16")
		require.NoError(t, err)
		assert.Equal(t, int64(5), res.DeletedCount)

		res, err = svc.DeleteHoliday(ctx, "2025-01-16")
		require.NoError(t, err)
		assert.Zero(t, res.DeletedCount)

		_, err = svc.DeleteHoliday(ctx, "16-01-2025")
		var verrs validator.ValidationErrors
		assert.ErrorAs(t, err, &verrs)
	})
}

func TestAttendanceService_UpdateAttendance(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	emp := env.hire(t, "gina")
	svc := env.at(2025, time.January, 13, 8, 0)

	present, err := svc.CheckIn(ctx, attendance.CheckInRequest{EmployeeID: emp.ID})
	require.NoError(t, err)
	vacation, err := svc.LogLeave(ctx, attendance.LeaveRequest{EmployeeID: emp.ID, Date: "2025-01-14", Kind: "vacation"})
	require.NoError(t, err)

	t.Run("day type is immutable", func(t *testing.T) {
		_, err := svc.UpdateAttendance(ctx, attendance.UpdateAttendanceRequest{ID: present.ID, DayType: ptr("home_office")})
		assert.ErrorIs(t, err, attendance.ErrDayTypeImmutable)
	})

	t.Run("timestamps only on present records", func(t *testing.T) {
		_, err := svc.UpdateAttendance(ctx, attendance.UpdateAttendanceRequest{ID: vacation.ID, CheckIn: ptr("08:00")})
		assert.ErrorIs(t, err, attendance.ErrTimestampsNotAllowed)
	})

	t.Run("check-out must follow check-in", func(t *testing.T) {
		_, err := svc.UpdateAttendance(ctx, attendance.UpdateAttendanceRequest{ID: present.ID, CheckOut: ptr("07:30")})
		assert.ErrorIs(t, err, attendance.ErrInvalidTimeRange)
	})

	t.Run("check-in on another date", func(t *testing.T) {
		_, err := svc.UpdateAttendance(ctx, attendance.UpdateAttendanceRequest{
			ID:       present.ID,
			CheckIn:  ptr("2025-01-10T08:00:00-05:00"),
			CheckOut: ptr("2025-01-13T17:00:00-05:00"),
		})
		assert.ErrorIs(t, err, attendance.ErrInvalidTimeRange)
	})

	t.Run("check-out on the next day", func(t *testing.T) {
		_, err := svc.UpdateAttendance(ctx, attendance.UpdateAttendanceRequest{
			ID:       present.ID,
			CheckOut: ptr("2025-01-14T01:00:00-05:00"),
		})
		assert.ErrorIs(t, err, attendance.ErrInvalidTimeRange)

		stored, err := svc.GetAttendance(ctx, present.ID)
		require.NoError(t, err)
		assert.Nil(t, stored.CheckOut)
		assert.Equal(t, present.CheckIn, stored.CheckIn)
	})

	t.Run("malformed id", func(t *testing.T) {
		_, err := svc.UpdateAttendance(ctx, attendance.UpdateAttendanceRequest{ID: "abc", Description: ptr("fix")})
		var verrs validator.ValidationErrors
		assert.ErrorAs(t, err, &verrs)
	})

	t.Run("unknown record", func(t *testing.T) {
		_, err := svc.UpdateAttendance(ctx, attendance.UpdateAttendanceRequest{ID: uuid.NewString(), Description: ptr("fix")})
		assert.ErrorIs(t, err, attendance.ErrAttendanceNotFound)
	})

	t.Run("setting check-out closes the record", func(t *testing.T) {
		res, err := svc.UpdateAttendance(ctx, attendance.UpdateAttendanceRequest{
			ID:          present.ID,
			CheckOut:    ptr("17:30"),
			Description: ptr("forgot to check out"),
			DayType:     ptr("present"),
		})
		require.NoError(t, err)
		assert.Equal(t, string(attendance.StateClosed), res.State)
		assert.Equal(t, 8.5, res.WorkedHours)
		assert.Equal(t, 0.5, res.OvertimeHours)
		require.NotNil(t, res.CheckOut)
		assert.Equal(t, "2025-01-13T17:30:00-05:00", *res.CheckOut)
		assert.Equal(t, "forgot to check out", *res.Description)
	})
}

func TestAttendanceService_Listing(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	svc := env.at(2025, time.January, 13, 9, 0)

	ana := env.hire(t, "ana")
	beto := env.hire(t, "beto")
	for _, date := range []string{"2025-01-13", "2025-01-14", "2025-01-15"} {
		_, err := svc.LogHomeOffice(ctx, attendance.HomeOfficeRequest{EmployeeID: ana.ID, Date: ptr(date)})
		require.NoError(t, err)
	}
	_, err := svc.LogHomeOffice(ctx, attendance.HomeOfficeRequest{EmployeeID: beto.ID, Date: ptr("2025-01-13")})
	require.NoError(t, err)

	t.Run("admin list paginates", func(t *testing.T) {
		list, err := svc.ListAttendance(ctx, attendance.AttendanceFilter{Limit: 3})
		require.NoError(t, err)
		assert.Equal(t, int64(4), list.TotalCount)
		assert.Equal(t, 2, list.TotalPages)
		assert.Equal(t, "1-3 of 4", list.Showing)
		require.Len(t, list.Attendances, 3)
		assert.Equal(t, "2025-01-15", list.Attendances[0].Date)
	})

	t.Run("page past the end", func(t *testing.T) {
		list, err := svc.ListAttendance(ctx, attendance.AttendanceFilter{Limit: 3, Page: 3})
		require.NoError(t, err)
		assert.Equal(t, int64(4), list.TotalCount)
		assert.Equal(t, 2, list.TotalPages)
		assert.Equal(t, "0 of 4", list.Showing)
		assert.Empty(t, list.Attendances)
	})

	t.Run("my attendance only shows own records", func(t *testing.T) {
		list, err := svc.GetMyAttendance(ctx, attendance.MyAttendanceFilter{EmployeeID: beto.ID})
		require.NoError(t, err)
		assert.Equal(t, int64(1), list.TotalCount)
		assert.Equal(t, "1-1 of 1", list.Showing)
	})

	t.Run("empty page", func(t *testing.T) {
		start, end := "2025-02-01", "2025-02-28"
		list, err := svc.ListAttendance(ctx, attendance.AttendanceFilter{StartDate: &start, EndDate: &end})
		require.NoError(t, err)
		assert.Equal(t, "0 of 0", list.Showing)
		assert.Empty(t, list.Attendances)
	})

	t.Run("get by id", func(t *testing.T) {
		list, err := svc.GetMyAttendance(ctx, attendance.MyAttendanceFilter{EmployeeID: beto.ID})
		require.NoError(t, err)

		res, err := svc.GetAttendance(ctx, list.Attendances[0].ID)
		require.NoError(t, err)
		assert.Equal(t, "beto", res.EmployeeName)

		_, err = svc.GetAttendance(ctx, uuid.NewString())
		assert.ErrorIs(t, err, attendance.ErrAttendanceNotFound)

		_, err = svc.GetAttendance(ctx, "abc")
		var verrs validator.ValidationErrors
		assert.ErrorAs(t, err, &verrs)
	})
}
