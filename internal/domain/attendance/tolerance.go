package attendance

import "time"

const (
	WorkdayStartHour = 8
	GracePeriod      = 15 * time.Minute
)

// startOfWorkday returns 08:00 on t's local date.
func startOfWorkday(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), WorkdayStartHour, 0, 0, 0, t.Location())
}

// EffectiveCheckIn snaps a check-in in (08:00, 08:15] to 08:00 of the same
// local date. Any other check-in is returned unchanged. Boundaries are
// compared at second precision.
func EffectiveCheckIn(checkIn time.Time, loc *time.Location) time.Time {
	local := checkIn.In(loc)
	secs := local.Truncate(time.Second)
	start := startOfWorkday(local)
	if secs.After(start) && !secs.After(start.Add(GracePeriod)) {
		return start
	}
	return local
}

// IsLate reports whether the check-in time of day is after 08:15.
func IsLate(checkIn time.Time, loc *time.Location) bool {
	local := checkIn.In(loc)
	return local.Truncate(time.Second).After(startOfWorkday(local).Add(GracePeriod))
}
