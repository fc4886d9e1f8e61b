package attendance

import (
	"time"
)

// DayType classifies a record. Exactly one applies per (employee, date).
type DayType string

const (
	DayTypePresent      DayType = "present"
	DayTypeHomeOffice   DayType = "home_office"
	DayTypeHoliday      DayType = "holiday"
	DayTypeMedicalLeave DayType = "medical_leave"
	DayTypeVacation     DayType = "vacation"
	DayTypeOtherLeave   DayType = "other_leave"
)

var allDayTypes = []DayType{
	DayTypePresent,
	DayTypeHomeOffice,
	DayTypeHoliday,
	DayTypeMedicalLeave,
	DayTypeVacation,
	DayTypeOtherLeave,
}

func (d DayType) IsValid() bool {
	for _, t := range allDayTypes {
		if d == t {
			return true
		}
	}
	return false
}

// IsLeave reports whether the day type is one of the leave kinds.
func (d DayType) IsLeave() bool {
	return d == DayTypeMedicalLeave || d == DayTypeVacation || d == DayTypeOtherLeave
}

// LeaveKinds lists the day types accepted by the leave path.
func LeaveKinds() []string {
	return []string{string(DayTypeMedicalLeave), string(DayTypeVacation), string(DayTypeOtherLeave)}
}

// State is the lifecycle state of a record.
type State string

const (
	StateOpen   State = "open"
	StateClosed State = "closed"
)

type Attendance struct {
	ID            string
	EmployeeID    string
	Date          time.Time
	CheckIn       *time.Time
	CheckOut      *time.Time
	DayType       DayType
	State         State
	Description   *string
	ExpectedHours float64
	CreatedAt     time.Time
	UpdatedAt     time.Time

	// DTO
	EmployeeName     *string
	EmployeeUsername *string
}

// Computed is a record after the tolerance, hours and observation pipeline.
type Computed struct {
	Attendance
	EffectiveCheckIn  *time.Time
	EffectiveCheckOut *time.Time
	WorkedHours       float64
	OvertimeHours     float64
	Observation       Observation
}

// DateOf truncates t to its calendar date in loc, returned as midnight UTC.
func DateOf(t time.Time, loc *time.Location) time.Time {
	local := t.In(loc)
	return time.Date(local.Year(), local.Month(), local.Day(), 0, 0, 0, 0, time.UTC)
}

// ParseLeaveKind converts s into one of the leave day types.
func ParseLeaveKind(s string) (DayType, error) {
	kind := DayType(s)
	if !kind.IsLeave() {
		return "", ErrInvalidLeaveKind
	}
	return kind, nil
}
