package dashboard

import (
	"context"
	"fmt"
	"time"

	"github.com/JuanAlonzo/control-asistencia-backend/internal/domain/attendance"
	"github.com/JuanAlonzo/control-asistencia-backend/internal/domain/dashboard"
	"github.com/JuanAlonzo/control-asistencia-backend/internal/domain/employee"
	"github.com/JuanAlonzo/control-asistencia-backend/internal/pkg/clock"
	"github.com/JuanAlonzo/control-asistencia-backend/internal/pkg/validator"
	"github.com/shopspring/decimal"
	"golang.org/x/sync/errgroup"
)

// overtimeWindowDays is the trailing window of the stats header, today included.
const overtimeWindowDays = 7

type DashboardServiceImpl struct {
	dashboard.DashboardRepository
	employee.EmployeeRepository
	attendance.AttendanceRepository
	clock clock.Clock
	loc   *time.Location
}

func NewDashboardService(
	repo dashboard.DashboardRepository,
	employeeRepo employee.EmployeeRepository,
	attendanceRepo attendance.AttendanceRepository,
	clk clock.Clock,
	loc *time.Location,
) dashboard.DashboardService {
	if loc == nil {
		loc = time.UTC
	}
	return &DashboardServiceImpl{
		DashboardRepository:  repo,
		EmployeeRepository:   employeeRepo,
		AttendanceRepository: attendanceRepo,
		clock:                clk,
		loc:                  loc,
	}
}

// GetSystemStats returns the dashboard header using parallel goroutines
func (s *DashboardServiceImpl) GetSystemStats(ctx context.Context) (*dashboard.SystemStatsResponse, error) {
	now := s.clock.Now()
	today := attendance.DateOf(now, s.loc)

	var (
		activeEmployees int64
		dailyCounts     *dashboard.DailyCounts
		weekOvertime    decimal.Decimal
	)

	g, gCtx := errgroup.WithContext(ctx)

	// 1. Active employees
	g.Go(func() error {
		count, err := s.CountActive(gCtx)
		if err != nil {
			return err
		}
		activeEmployees = count
		return nil
	})

	// 2. Today's records and completed check-outs (1 query)
	g.Go(func() error {
		counts, err := s.GetDailyCounts(gCtx, today)
		if err != nil {
			return err
		}
		dailyCounts = counts
		return nil
	})

	// 3. Overtime over the trailing week
	g.Go(func() error {
		records, err := s.ListByDateRange(gCtx, today.AddDate(0, 0, -(overtimeWindowDays-1)), today)
		if err != nil {
			return err
		}
		for _, c := range attendance.ComputeAll(records, s.loc) {
			weekOvertime = weekOvertime.Add(decimal.NewFromFloat(c.OvertimeHours))
		}
		return nil
	})

	if err := g.Wait(); err != nil {
		return nil, err
	}

	return &dashboard.SystemStatsResponse{
		ActiveEmployees: activeEmployees,
		TodayCount:      dailyCounts.Total,
		TodayCompleted:  dailyCounts.Completed,
		WeekOvertime:    weekOvertime.Round(2).InexactFloat64(),
		Date:            today.Format(validator.DateLayout),
		UpdatedAt:       now.In(s.loc).Format(time.RFC3339),
	}, nil
}

// GetWeeklySummary returns per-employee totals for a date range
func (s *DashboardServiceImpl) GetWeeklySummary(ctx context.Context, req dashboard.WeeklySummaryRequest) (*dashboard.WeeklySummaryResponse, error) {
	if err := req.Validate(); err != nil {
		return nil, err
	}

	start, _ := validator.IsValidDate(req.StartDate)
	end, _ := validator.IsValidDate(req.EndDate)

	employees, err := s.summarize(ctx, start, end)
	if err != nil {
		return nil, err
	}

	return &dashboard.WeeklySummaryResponse{
		StartDate: req.StartDate,
		EndDate:   req.EndDate,
		Employees: employees,
	}, nil
}

// GetWeeklySummaryByWeek resolves an ISO week to Monday..Sunday
func (s *DashboardServiceImpl) GetWeeklySummaryByWeek(ctx context.Context, week string) (*dashboard.WeeklySummaryResponse, error) {
	start, end, err := validator.ParseISOWeek(week)
	if err != nil {
		return nil, validator.ValidationErrors{
			{Field: "week", Message: "week must be a valid ISO week in YYYY-Www format"},
		}
	}

	employees, err := s.summarize(ctx, start, end)
	if err != nil {
		return nil, err
	}

	return &dashboard.WeeklySummaryResponse{
		Week:      week,
		StartDate: start.Format(validator.DateLayout),
		EndDate:   end.Format(validator.DateLayout),
		Employees: employees,
	}, nil
}

type weeklyTotals struct {
	days     int
	worked   decimal.Decimal
	overtime decimal.Decimal
}

// summarize left-joins active employees with their computed records in [start, end].
func (s *DashboardServiceImpl) summarize(ctx context.Context, start, end time.Time) ([]dashboard.EmployeeWeeklySummary, error) {
	var (
		employees []employee.Employee
		records   []attendance.Attendance
	)

	g, gCtx := errgroup.WithContext(ctx)
	g.Go(func() error {
		list, err := s.ListActive(gCtx)
		if err != nil {
			return fmt.Errorf("failed to list active employees: %w", err)
		}
		employees = list
		return nil
	})
	g.Go(func() error {
		list, err := s.ListByDateRange(gCtx, start, end)
		if err != nil {
			return fmt.Errorf("failed to list attendances: %w", err)
		}
		records = list
		return nil
	})
	if err := g.Wait(); err != nil {
		return nil, err
	}

	totals := make(map[string]*weeklyTotals, len(employees))
	for _, c := range attendance.ComputeAll(records, s.loc) {
		t, ok := totals[c.EmployeeID]
		if !ok {
			t = &weeklyTotals{}
			totals[c.EmployeeID] = t
		}
		t.days++
		t.worked = t.worked.Add(decimal.NewFromFloat(c.WorkedHours))
		t.overtime = t.overtime.Add(decimal.NewFromFloat(c.OvertimeHours))
	}

	summaries := make([]dashboard.EmployeeWeeklySummary, 0, len(employees))
	for _, emp := range employees {
		summary := dashboard.EmployeeWeeklySummary{
			EmployeeID:   emp.ID,
			EmployeeName: emp.FullName,
			Username:     emp.Username,
		}
		if t, ok := totals[emp.ID]; ok {
			summary.DaysAttended = t.days
			summary.TotalHours = t.worked.Round(2).InexactFloat64()
			summary.TotalOvertime = t.overtime.Round(2).InexactFloat64()
		}
		summaries = append(summaries, summary)
	}

	return summaries, nil
}
