package dashboard

import (
	"github.com/JuanAlonzo/control-asistencia-backend/internal/pkg/validator"
)

// ========== SYSTEM STATS ==========

// SystemStatsResponse is the admin dashboard header
type SystemStatsResponse struct {
	ActiveEmployees int64   `json:"active_employees"`
	TodayCount      int64   `json:"today_count"`     // records registered today, any day type
	TodayCompleted  int64   `json:"today_completed"` // today's records with a check-out
	WeekOvertime    float64 `json:"week_overtime"`   // trailing 7 days, today included
	Date            string  `json:"date"`            // Format: "YYYY-MM-DD"
	UpdatedAt       string  `json:"updated_at"`
}

// ========== WEEKLY SUMMARY ==========

type WeeklySummaryRequest struct {
	StartDate string `json:"start_date"`
	EndDate   string `json:"end_date"`
}

func (r *WeeklySummaryRequest) Validate() error {
	var errs validator.ValidationErrors

	start, startValid := validator.IsValidDate(r.StartDate)
	if !startValid {
		errs = append(errs, validator.ValidationError{
			Field:   "start_date",
			Message: "start_date must be in YYYY-MM-DD format",
		})
	}

	end, endValid := validator.IsValidDate(r.EndDate)
	if !endValid {
		errs = append(errs, validator.ValidationError{
			Field:   "end_date",
			Message: "end_date must be in YYYY-MM-DD format",
		})
	}

	if startValid && endValid && end.Before(start) {
		errs = append(errs, validator.ValidationError{
			Field:   "end_date",
			Message: "end_date must not be before start_date",
		})
	}

	if len(errs) > 0 {
		return errs
	}

	return nil
}

// WeeklySummaryResponse lists every active employee, including those without records
type WeeklySummaryResponse struct {
	Week      string                  `json:"week,omitempty"` // Format: "YYYY-Www"
	StartDate string                  `json:"start_date"`
	EndDate   string                  `json:"end_date"`
	Employees []EmployeeWeeklySummary `json:"employees"`
}

type EmployeeWeeklySummary struct {
	EmployeeID    string  `json:"employee_id"`
	EmployeeName  string  `json:"employee_name"`
	Username      string  `json:"username"`
	DaysAttended  int     `json:"days_attended"`
	TotalHours    float64 `json:"total_hours"`
	TotalOvertime float64 `json:"total_overtime"`
}
