package attendance

import (
	"strings"
	"time"

	"github.com/JuanAlonzo/control-asistencia-backend/internal/pkg/validator"
)

// ========================================
// ATTENDANCE DTOs
// ========================================

const minDescriptionLength = 3

type CheckInRequest struct {
	EmployeeID string `json:"-"`
}

func (r *CheckInRequest) Validate() error {
	var errs validator.ValidationErrors

	if err := validator.ValidateID("employee_id", r.EmployeeID); err != nil {
		errs = append(errs, *err)
	}

	if len(errs) > 0 {
		return errs
	}

	return nil
}

type CheckOutRequest struct {
	EmployeeID string `json:"-"`
}

func (r *CheckOutRequest) Validate() error {
	var errs validator.ValidationErrors

	if err := validator.ValidateID("employee_id", r.EmployeeID); err != nil {
		errs = append(errs, *err)
	}

	if len(errs) > 0 {
		return errs
	}

	return nil
}

type HomeOfficeRequest struct {
	EmployeeID string  `json:"-"`
	Date       *string `json:"date,omitempty"` // YYYY-MM-DD, defaults to today
}

func (r *HomeOfficeRequest) Validate() error {
	var errs validator.ValidationErrors

	if err := validator.ValidateID("employee_id", r.EmployeeID); err != nil {
		errs = append(errs, *err)
	}

	if r.Date != nil && *r.Date != "" {
		if _, valid := validator.IsValidDate(*r.Date); !valid {
			errs = append(errs, validator.ValidationError{
				Field:   "date",
				Message: "date must be in YYYY-MM-DD format",
			})
		}
	}

	if len(errs) > 0 {
		return errs
	}

	return nil
}

type LeaveRequest struct {
	EmployeeID  string  `json:"employee_id"`
	Date        string  `json:"date"` // YYYY-MM-DD
	Kind        string  `json:"kind"` // medical_leave, vacation, other_leave
	Description *string `json:"description,omitempty"`
}

func (r *LeaveRequest) Validate() error {
	var errs validator.ValidationErrors

	if err := validator.ValidateID("employee_id", r.EmployeeID); err != nil {
		errs = append(errs, *err)
	}

	if validator.IsEmpty(r.Date) {
		errs = append(errs, validator.ValidationError{
			Field:   "date",
			Message: "date is required",
		})
	} else if _, valid := validator.IsValidDate(r.Date); !valid {
		errs = append(errs, validator.ValidationError{
			Field:   "date",
			Message: "date must be in YYYY-MM-DD format",
		})
	}

	if _, err := ParseLeaveKind(r.Kind); err != nil {
		errs = append(errs, validator.ValidationError{
			Field:   "kind",
			Message: "kind must be one of: " + strings.Join(LeaveKinds(), ", "),
		})
	}

	if r.Description != nil && len(strings.TrimSpace(*r.Description)) < minDescriptionLength {
		errs = append(errs, validator.ValidationError{
			Field:   "description",
			Message: "description must be at least 3 characters",
		})
	}

	if len(errs) > 0 {
		return errs
	}

	return nil
}

type RegisterHolidayRequest struct {
	Date        string  `json:"date"` // YYYY-MM-DD
	Description *string `json:"description,omitempty"`
}

func (r *RegisterHolidayRequest) Validate() error {
	var errs validator.ValidationErrors

	if validator.IsEmpty(r.Date) {
		errs = append(errs, validator.ValidationError{
			Field:   "date",
			Message: "date is required",
		})
	} else if _, valid := validator.IsValidDate(r.Date); !valid {
		errs = append(errs, validator.ValidationError{
			Field:   "date",
			Message: "date must be in YYYY-MM-DD format",
		})
	}

	if r.Description != nil && len(strings.TrimSpace(*r.Description)) < minDescriptionLength {
		errs = append(errs, validator.ValidationError{
			Field:   "description",
			Message: "description must be at least 3 characters",
		})
	}

	if len(errs) > 0 {
		return errs
	}

	return nil
}

type HolidayResponse struct {
	Date          string `json:"date"`
	Description   string `json:"description"`
	InsertedCount int    `json:"inserted_count"`
}

type DeleteHolidayResponse struct {
	Date         string `json:"date"`
	DeletedCount int64  `json:"deleted_count"`
}

type AttendanceResponse struct {
	ID               string  `json:"id"`
	EmployeeID       string  `json:"employee_id"`
	EmployeeName     string  `json:"employee_name,omitempty"`
	EmployeeUsername string  `json:"employee_username,omitempty"`
	Date             string  `json:"date"`
	DayType          string  `json:"day_type"`
	State            string  `json:"state"`
	Description      *string `json:"description,omitempty"`
	CheckIn          *string `json:"check_in,omitempty"`
	CheckOut         *string `json:"check_out,omitempty"`
	EffectiveCheckIn *string `json:"effective_check_in,omitempty"`
	ExpectedHours    float64 `json:"expected_hours"`
	WorkedHours      float64 `json:"worked_hours"`
	OvertimeHours    float64 `json:"overtime_hours"`
	Observation      string  `json:"observation"`
	CreatedAt        string  `json:"created_at"`
	UpdatedAt        string  `json:"updated_at"`
}

type AttendanceFilter struct {
	// Search & Filter
	EmployeeID *string `json:"employee_id,omitempty"`
	Date       *string `json:"date,omitempty"`       // YYYY-MM-DD
	StartDate  *string `json:"start_date,omitempty"` // YYYY-MM-DD
	EndDate    *string `json:"end_date,omitempty"`   // YYYY-MM-DD
	DayType    *string `json:"day_type,omitempty"`

	// Pagination
	Page  int `json:"page"`
	Limit int `json:"limit"`

	// Sorting
	SortBy    string `json:"sort_by"`    // date, employee_name, check_in, check_out, day_type
	SortOrder string `json:"sort_order"` // asc, desc
}

var sortFields = []string{"date", "employee_name", "check_in", "check_out", "day_type"}

func (f *AttendanceFilter) Validate() error {
	var errs validator.ValidationErrors

	// Page validation
	if f.Page < 0 {
		errs = append(errs, validator.ValidationError{
			Field:   "page",
			Message: "page must be a positive number",
		})
	}
	if f.Page == 0 {
		f.Page = 1 // Default page
	}

	// Limit validation
	if f.Limit < 0 {
		errs = append(errs, validator.ValidationError{
			Field:   "limit",
			Message: "limit must be a positive number",
		})
	}
	if f.Limit == 0 {
		f.Limit = 20 // Default limit
	}
	if f.Limit > 100 {
		errs = append(errs, validator.ValidationError{
			Field:   "limit",
			Message: "limit must not exceed 100",
		})
	}

	if f.EmployeeID != nil {
		if err := validator.ValidateID("employee_id", *f.EmployeeID); err != nil {
			errs = append(errs, *err)
		}
	}

	if f.DayType != nil {
		if !DayType(*f.DayType).IsValid() {
			errs = append(errs, validator.ValidationError{
				Field:   "day_type",
				Message: "day_type must be one of: present, home_office, holiday, medical_leave, vacation, other_leave",
			})
		}
	}

	errs = append(errs, validateDateFilters(f.Date, f.StartDate, f.EndDate)...)

	if f.SortBy != "" {
		if !validator.IsInSlice(f.SortBy, sortFields) {
			errs = append(errs, validator.ValidationError{
				Field:   "sort_by",
				Message: "sort_by must be one of: " + strings.Join(sortFields, ", "),
			})
		}
	} else {
		f.SortBy = "date" // Default sort
	}

	if f.SortOrder != "" {
		validSortOrders := []string{"asc", "desc"}
		f.SortOrder = strings.ToLower(f.SortOrder)
		if !validator.IsInSlice(f.SortOrder, validSortOrders) {
			errs = append(errs, validator.ValidationError{
				Field:   "sort_order",
				Message: "sort_order must be one of: asc, desc",
			})
		}
	} else {
		f.SortOrder = "desc" // Default descending (newest first)
	}

	if len(errs) > 0 {
		return errs
	}

	return nil
}

type MyAttendanceFilter struct {
	EmployeeID string `json:"-"`

	StartDate *string `json:"start_date,omitempty"` // YYYY-MM-DD
	EndDate   *string `json:"end_date,omitempty"`   // YYYY-MM-DD

	// Pagination
	Page  int `json:"page"`
	Limit int `json:"limit"`
}

func (f *MyAttendanceFilter) Validate() error {
	var errs validator.ValidationErrors

	if err := validator.ValidateID("employee_id", f.EmployeeID); err != nil {
		errs = append(errs, *err)
	}

	if f.Page < 0 {
		errs = append(errs, validator.ValidationError{
			Field:   "page",
			Message: "page must be a positive number",
		})
	}
	if f.Page == 0 {
		f.Page = 1
	}

	if f.Limit < 0 {
		errs = append(errs, validator.ValidationError{
			Field:   "limit",
			Message: "limit must be a positive number",
		})
	}
	if f.Limit == 0 {
		f.Limit = 20
	}
	if f.Limit > 100 {
		errs = append(errs, validator.ValidationError{
			Field:   "limit",
			Message: "limit must not exceed 100",
		})
	}

	errs = append(errs, validateDateFilters(nil, f.StartDate, f.EndDate)...)

	if len(errs) > 0 {
		return errs
	}

	return nil
}

func validateDateFilters(date, startDate, endDate *string) validator.ValidationErrors {
	var errs validator.ValidationErrors

	if date != nil && *date != "" {
		if _, valid := validator.IsValidDate(*date); !valid {
			errs = append(errs, validator.ValidationError{
				Field:   "date",
				Message: "date must be in YYYY-MM-DD format",
			})
		}
	}

	var start, end time.Time
	var hasStart, hasEnd bool
	if startDate != nil && *startDate != "" {
		if start, hasStart = validator.IsValidDate(*startDate); !hasStart {
			errs = append(errs, validator.ValidationError{
				Field:   "start_date",
				Message: "start_date must be in YYYY-MM-DD format",
			})
		}
	}

	if endDate != nil && *endDate != "" {
		if end, hasEnd = validator.IsValidDate(*endDate); !hasEnd {
			errs = append(errs, validator.ValidationError{
				Field:   "end_date",
				Message: "end_date must be in YYYY-MM-DD format",
			})
		}
	}

	if hasStart && hasEnd && end.Before(start) {
		errs = append(errs, validator.ValidationError{
			Field:   "end_date",
			Message: "end_date must not be before start_date",
		})
	}

	return errs
}

type ListAttendanceResponse struct {
	TotalCount  int64                `json:"total_count"`
	Page        int                  `json:"page"`
	Limit       int                  `json:"limit"`
	TotalPages  int                  `json:"total_pages"`
	Showing     string               `json:"showing"`
	Attendances []AttendanceResponse `json:"attendances"`
}

// UpdateAttendanceRequest for admin to correct a record.
// Timestamps accept RFC3339 or a time of day (HH:MM or HH:MM:SS) on the record's date.
type UpdateAttendanceRequest struct {
	ID          string  `json:"-"`
	CheckIn     *string `json:"check_in,omitempty"`
	CheckOut    *string `json:"check_out,omitempty"`
	Description *string `json:"description,omitempty"`
	DayType     *string `json:"day_type,omitempty"`
}

func (r *UpdateAttendanceRequest) Validate() error {
	var errs validator.ValidationErrors

	if err := validator.ValidateID("id", r.ID); err != nil {
		errs = append(errs, *err)
	}

	if r.CheckIn != nil && !IsValidTimestampInput(*r.CheckIn) {
		errs = append(errs, validator.ValidationError{
			Field:   "check_in",
			Message: "check_in must be RFC3339 or HH:MM[:SS]",
		})
	}

	if r.CheckOut != nil && !IsValidTimestampInput(*r.CheckOut) {
		errs = append(errs, validator.ValidationError{
			Field:   "check_out",
			Message: "check_out must be RFC3339 or HH:MM[:SS]",
		})
	}

	if r.Description != nil && len(strings.TrimSpace(*r.Description)) < minDescriptionLength {
		errs = append(errs, validator.ValidationError{
			Field:   "description",
			Message: "description must be at least 3 characters",
		})
	}

	if r.DayType != nil && !DayType(*r.DayType).IsValid() {
		errs = append(errs, validator.ValidationError{
			Field:   "day_type",
			Message: "day_type must be one of: present, home_office, holiday, medical_leave, vacation, other_leave",
		})
	}

	if r.CheckIn == nil && r.CheckOut == nil && r.Description == nil && r.DayType == nil {
		errs = append(errs, validator.ValidationError{
			Field:   "body",
			Message: "at least one field must be provided",
		})
	}

	if len(errs) > 0 {
		return errs
	}

	return nil
}

type ExportRequest struct {
	StartDate string `json:"start_date"`
	EndDate   string `json:"end_date"`
}

func (r *ExportRequest) Validate() error {
	var errs validator.ValidationErrors

	if validator.IsEmpty(r.StartDate) {
		errs = append(errs, validator.ValidationError{
			Field:   "start_date",
			Message: "start_date is required",
		})
	}
	if validator.IsEmpty(r.EndDate) {
		errs = append(errs, validator.ValidationError{
			Field:   "end_date",
			Message: "end_date is required",
		})
	}
	errs = append(errs, validateDateFilters(nil, &r.StartDate, &r.EndDate)...)

	if len(errs) > 0 {
		return errs
	}

	return nil
}

type ExportResponse struct {
	StartDate string               `json:"start_date"`
	EndDate   string               `json:"end_date"`
	TotalRows int                  `json:"total_rows"`
	Rows      []AttendanceResponse `json:"rows"`
}
