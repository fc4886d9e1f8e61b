package attendance

import "time"

const (
	WeekdayHours  = 8.0
	SaturdayHours = 5.0
)

// ExpectedHours returns the nominal work obligation for date.
// Sundays carry no obligation and fail with ErrNonWorkDay.
func ExpectedHours(date time.Time) (float64, error) {
	switch date.Weekday() {
	case time.Sunday:
		return 0, ErrNonWorkDay
	case time.Saturday:
		return SaturdayHours, nil
	default:
		return WeekdayHours, nil
	}
}

// HolidayExpectedHours is ExpectedHours for the holiday path. A Sunday holiday
// is credited with zero hours when allowSunday is set.
func HolidayExpectedHours(date time.Time, allowSunday bool) (float64, error) {
	hours, err := ExpectedHours(date)
	if err == ErrNonWorkDay && allowSunday {
		return 0, nil
	}
	return hours, err
}
