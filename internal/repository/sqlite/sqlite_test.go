package sqlite_test

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	"github.com/JuanAlonzo/control-asistencia-backend/internal/domain/attendance"
	"github.com/JuanAlonzo/control-asistencia-backend/internal/domain/employee"
	"github.com/JuanAlonzo/control-asistencia-backend/internal/pkg/database"
	"github.com/JuanAlonzo/control-asistencia-backend/internal/repository/sqlite"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestDB(t *testing.T) *database.SQLiteDB {
	t.Helper()
	db, err := database.NewSQLiteDB(context.Background(), filepath.Join(t.TempDir(), "attendance.db"))
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })
	return db
}

func createEmployee(t *testing.T, ctx context.Context, repo employee.EmployeeRepository, name, username string) employee.Employee {
	t.Helper()
	emp, err := repo.Create(ctx, employee.Employee{
		ID:       uuid.Must(uuid.NewV7()).String(),
		FullName: name,
		Username: username,
		IsActive: true,
	})
	require.NoError(t, err)
	return emp
}

func holidayFor(employeeID string, date time.Time) attendance.Attendance {
	desc := "HOLIDAY"
	return attendance.Attendance{
		ID:            uuid.Must(uuid.NewV7()).String(),
		EmployeeID:    employeeID,
		Date:          date,
		DayType:       attendance.DayTypeHoliday,
		State:         attendance.StateClosed,
		Description:   &desc,
		ExpectedHours: 8,
	}
}

func TestEmployeeRepository(t *testing.T) {
	db := newTestDB(t)
	ctx := context.Background()
	repo := sqlite.NewEmployeeRepository(db)

	beto := createEmployee(t, ctx, repo, "Beto Rojas", "brojas")
	ana := createEmployee(t, ctx, repo, "Ana Torres", "atorres")

	_, err := repo.Create(ctx, employee.Employee{ID: uuid.NewString(), FullName: "Other", Username: "atorres", IsActive: true})
	assert.ErrorIs(t, err, employee.ErrUsernameExists)

	found, err := repo.GetByID(ctx, ana.ID)
	require.NoError(t, err)
	assert.Equal(t, "atorres", found.Username)
	assert.True(t, found.IsActive)

	_, err = repo.GetByID(ctx, uuid.NewString())
	assert.ErrorIs(t, err, employee.ErrEmployeeNotFound)

	active, err := repo.ListActive(ctx)
	require.NoError(t, err)
	require.Len(t, active, 2)
	assert.Equal(t, ana.ID, active[0].ID)
	assert.Equal(t, beto.ID, active[1].ID)

	require.NoError(t, repo.SetActive(ctx, beto.ID, false))
	count, err := repo.CountActive(ctx)
	require.NoError(t, err)
	assert.Equal(t, int64(1), count)

	assert.ErrorIs(t, repo.SetActive(ctx, uuid.NewString(), true), employee.ErrEmployeeNotFound)
}

func TestAttendanceRepository_Lifecycle(t *testing.T) {
	db := newTestDB(t)
	ctx := context.Background()

	employees := sqlite.NewEmployeeRepository(db)
	repo := sqlite.NewAttendanceRepository(db)

	emp := createEmployee(t, ctx, employees, "Ana Torres", "atorres")
	day := time.Date(2025, 1, 13, 0, 0, 0, 0, time.UTC)
	checkIn := time.Date(2025, 1, 13, 13, 5, 0, 0, time.UTC)

	created, err := repo.Create(ctx, attendance.Attendance{
		ID:            uuid.Must(uuid.NewV7()).String(),
		EmployeeID:    emp.ID,
		Date:          day,
		CheckIn:       &checkIn,
		DayType:       attendance.DayTypePresent,
		State:         attendance.StateOpen,
		ExpectedHours: 8,
	})
	require.NoError(t, err)
	assert.False(t, created.CreatedAt.IsZero())

	_, err = repo.Create(ctx, holidayFor(emp.ID, day))
	assert.ErrorIs(t, err, attendance.ErrDuplicateRecord)

	found, err := repo.GetByEmployeeAndDate(ctx, emp.ID, day)
	require.NoError(t, err)
	require.NotNil(t, found)
	assert.Equal(t, created.ID, found.ID)
	assert.True(t, day.Equal(found.Date))
	require.NotNil(t, found.CheckIn)
	assert.True(t, checkIn.Equal(*found.CheckIn))
	assert.Nil(t, found.CheckOut)
	require.NotNil(t, found.EmployeeName)
	assert.Equal(t, "Ana Torres", *found.EmployeeName)

	checkOut := checkIn.Add(9 * time.Hour)
	closed, err := repo.CloseCheckOut(ctx, created.ID, checkOut)
	require.NoError(t, err)
	assert.Equal(t, attendance.StateClosed, closed.State)
	require.NotNil(t, closed.CheckOut)
	assert.True(t, checkOut.Equal(*closed.CheckOut))

	_, err = repo.CloseCheckOut(ctx, created.ID, checkOut.Add(time.Hour))
	assert.ErrorIs(t, err, attendance.ErrAlreadyClosed)

	_, err = repo.CloseCheckOut(ctx, uuid.NewString(), checkOut)
	assert.ErrorIs(t, err, attendance.ErrAttendanceNotFound)

	missing, err := repo.GetByEmployeeAndDate(ctx, emp.ID, day.AddDate(0, 0, 1))
	require.NoError(t, err)
	assert.Nil(t, missing)

	desc := "fixed by admin"
	closed.Description = &desc
	require.NoError(t, repo.Update(ctx, closed))
	updated, err := repo.GetByID(ctx, created.ID)
	require.NoError(t, err)
	require.NotNil(t, updated.Description)
	assert.Equal(t, desc, *updated.Description)
}

func TestAttendanceRepository_CreateBatchIsAtomic(t *testing.T) {
	db := newTestDB(t)
	ctx := context.Background()

	employees := sqlite.NewEmployeeRepository(db)
	repo := sqlite.NewAttendanceRepository(db)

	day := time.Date(2025, 1, 15, 0, 0, 0, 0, time.UTC)
	var batch []attendance.Attendance
	for i, name := range []string{"Ana", "Beto", "Carla", "Dario", "Elena"} {
		emp := createEmployee(t, ctx, employees, name, name+"-user")
		batch = append(batch, holidayFor(emp.ID, day))
		if i == 3 {
			_, err := repo.Create(ctx, holidayFor(emp.ID, day))
			require.NoError(t, err)
		}
	}

	_, err := repo.CreateBatch(ctx, batch)
	assert.ErrorIs(t, err, attendance.ErrDuplicateRecord)

	records, err := repo.ListByDateRange(ctx, day, day)
	require.NoError(t, err)
	assert.Len(t, records, 1)

	deleted, err := repo.DeleteHolidaysByDate(ctx, day)
	require.NoError(t, err)
	assert.Equal(t, int64(1), deleted)

	inserted, err := repo.CreateBatch(ctx, batch)
	require.NoError(t, err)
	assert.Equal(t, 5, inserted)

	records, err = repo.ListByDateRange(ctx, day, day)
	require.NoError(t, err)
	require.Len(t, records, 5)
	assert.Equal(t, "Ana", *records[0].EmployeeName)
	assert.Equal(t, "Elena", *records[4].EmployeeName)
}

func TestAttendanceRepository_ListFiltersAndPaginates(t *testing.T) {
	db := newTestDB(t)
	ctx := context.Background()

	employees := sqlite.NewEmployeeRepository(db)
	repo := sqlite.NewAttendanceRepository(db)

	emp := createEmployee(t, ctx, employees, "Ana Torres", "atorres")
	start := time.Date(2025, 1, 13, 0, 0, 0, 0, time.UTC)
	for i := 0; i < 5; i++ {
		_, err := repo.Create(ctx, holidayFor(emp.ID, start.AddDate(0, 0, i)))
		require.NoError(t, err)
	}

	startDate, endDate := "2025-01-14", "2025-01-16"
	records, total, err := repo.List(ctx, attendance.AttendanceFilter{
		EmployeeID: &emp.ID,
		StartDate:  &startDate,
		EndDate:    &endDate,
		Page:       1,
		Limit:      2,
	})
	require.NoError(t, err)
	assert.Equal(t, int64(3), total)
	require.Len(t, records, 2)
	assert.Equal(t, "2025-01-16", records[0].Date.Format("2006-01-02"))
	assert.Equal(t, "2025-01-15", records[1].Date.Format("2006-01-02"))

	records, _, err = repo.List(ctx, attendance.AttendanceFilter{
		StartDate: &startDate,
		EndDate:   &endDate,
		Page:      2,
		Limit:     2,
		SortOrder: "asc",
	})
	require.NoError(t, err)
	require.Len(t, records, 1)
	assert.Equal(t, "2025-01-16", records[0].Date.Format("2006-01-02"))

	present := string(attendance.DayTypePresent)
	_, total, err = repo.List(ctx, attendance.AttendanceFilter{DayType: &present})
	require.NoError(t, err)
	assert.Zero(t, total)
}

func TestDashboardRepository_GetDailyCounts(t *testing.T) {
	db := newTestDB(t)
	ctx := context.Background()

	employees := sqlite.NewEmployeeRepository(db)
	attendances := sqlite.NewAttendanceRepository(db)
	repo := sqlite.NewDashboardRepository(db)

	day := time.Date(2025, 1, 13, 0, 0, 0, 0, time.UTC)
	checkIn := day.Add(13 * time.Hour)
	checkOut := checkIn.Add(8 * time.Hour)

	ana := createEmployee(t, ctx, employees, "Ana", "ana")
	beto := createEmployee(t, ctx, employees, "Beto", "beto")

	_, err := attendances.Create(ctx, attendance.Attendance{
		ID: uuid.NewString(), EmployeeID: ana.ID, Date: day, CheckIn: &checkIn, CheckOut: &checkOut,
		DayType: attendance.DayTypePresent, State: attendance.StateClosed, ExpectedHours: 8,
	})
	require.NoError(t, err)
	_, err = attendances.Create(ctx, attendance.Attendance{
		ID: uuid.NewString(), EmployeeID: beto.ID, Date: day, CheckIn: &checkIn,
		DayType: attendance.DayTypePresent, State: attendance.StateOpen, ExpectedHours: 8,
	})
	require.NoError(t, err)

	counts, err := repo.GetDailyCounts(ctx, day)
	require.NoError(t, err)
	assert.Equal(t, int64(2), counts.Total)
	assert.Equal(t, int64(1), counts.Completed)

	counts, err = repo.GetDailyCounts(ctx, day.AddDate(0, 0, 1))
	require.NoError(t, err)
	assert.Zero(t, counts.Total)
}
