package attendance

import (
	"fmt"
	"time"

	"github.com/JuanAlonzo/control-asistencia-backend/internal/pkg/validator"
)

var timeOfDayLayouts = []string{"15:04:05", "15:04"}

// IsValidTimestampInput accepts RFC3339 or a bare time of day.
func IsValidTimestampInput(value string) bool {
	if _, ok := validator.IsValidDateTime(value); ok {
		return true
	}
	for _, layout := range timeOfDayLayouts {
		if _, err := time.Parse(layout, value); err == nil {
			return true
		}
	}
	return false
}

// ParseTimestampInput resolves value against the record date in loc. A bare
// time of day is placed on date.
func ParseTimestampInput(value string, date time.Time, loc *time.Location) (time.Time, error) {
	if t, ok := validator.IsValidDateTime(value); ok {
		return t, nil
	}
	for _, layout := range timeOfDayLayouts {
		tod, err := time.Parse(layout, value)
		if err != nil {
			continue
		}
		return time.Date(date.Year(), date.Month(), date.Day(), tod.Hour(), tod.Minute(), tod.Second(), 0, loc), nil
	}
	return time.Time{}, fmt.Errorf("invalid timestamp %q", value)
}
