package attendance

import (
	"time"

	"github.com/shopspring/decimal"
)

const (
	// BreakThreshold is the elapsed time above which the meal break is deducted.
	BreakThreshold = 6 * time.Hour
	MealBreak      = time.Hour
)

var millisPerHour = decimal.NewFromInt(int64(time.Hour / time.Millisecond))

// hoursOf converts d to fractional hours at millisecond resolution.
func hoursOf(d time.Duration) decimal.Decimal {
	return decimal.NewFromInt(d.Milliseconds()).Div(millisPerHour)
}

// RawWorkedHours is the elapsed time between the effective timestamps, less
// the meal break when elapsed exceeds six hours, rounded to 2 decimals.
func RawWorkedHours(effectiveIn, effectiveOut time.Time) decimal.Decimal {
	elapsed := effectiveOut.Sub(effectiveIn)
	worked := hoursOf(elapsed)
	if elapsed > BreakThreshold {
		worked = worked.Sub(hoursOf(MealBreak))
	}
	return worked.Round(2)
}

// WorkedAndOvertime applies the per-day-type rules. effectiveIn and
// effectiveOut are nil when the record has no timestamps.
func WorkedAndOvertime(dayType DayType, expected float64, effectiveIn, effectiveOut *time.Time) (worked, overtime decimal.Decimal) {
	switch dayType {
	case DayTypeHomeOffice, DayTypeHoliday:
		return decimal.NewFromFloat(expected), decimal.Zero
	case DayTypePresent:
		if effectiveIn == nil || effectiveOut == nil {
			return decimal.Zero, decimal.Zero
		}
		raw := RawWorkedHours(*effectiveIn, *effectiveOut)
		return raw, decimal.Max(decimal.Zero, raw.Sub(decimal.NewFromFloat(expected)))
	default:
		return decimal.Zero, decimal.Zero
	}
}
