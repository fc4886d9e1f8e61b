package validator

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"
	"time"

	"github.com/google/uuid"
)

const DateLayout = "2006-01-02"

type ValidationError struct {
	Field   string
	Message string
}

type ValidationErrors []ValidationError

func (v ValidationErrors) Error() string {
	var msgs []string
	for _, err := range v {
		msgs = append(msgs, err.Field+": "+err.Message)
	}
	return strings.Join(msgs, "; ")
}

func (v ValidationErrors) ToMap() map[string]string {
	result := make(map[string]string)
	for _, err := range v {
		result[err.Field] = err.Message
	}
	return result
}

// IsEmpty checks if a string is empty after trimming whitespace.
func IsEmpty(s string) bool {
	return strings.TrimSpace(s) == ""
}

// IsValidUUID accepts any RFC 4122 UUID in its canonical 36-character form.
// Directory IDs are not necessarily version 7.
func IsValidUUID(id string) bool {
	if len(id) != 36 {
		return false
	}
	_, err := uuid.Parse(id)
	return err == nil
}

// ValidateID reports a missing or malformed identifier under field.
func ValidateID(field, id string) *ValidationError {
	if IsEmpty(id) {
		return &ValidationError{Field: field, Message: field + " is required"}
	}
	if !IsValidUUID(id) {
		return &ValidationError{Field: field, Message: field + " must be a valid UUID"}
	}
	return nil
}

// Date validation
func IsValidDate(dateStr string) (time.Time, bool) {
	date, err := time.Parse(DateLayout, dateStr)
	return date, err == nil
}

// Slice contains check
func IsInSlice(value string, slice []string) bool {
	for _, item := range slice {
		if item == value {
			return true
		}
	}
	return false
}

// IsValidDateTime checks if a string is a valid ISO8601 timestamp.
// Accepts formats like: "2024-01-15T10:30:00Z" or "2024-01-15T10:30:00-05:00"
func IsValidDateTime(dateTimeStr string) (time.Time, bool) {
	t, err := time.Parse(time.RFC3339, dateTimeStr)
	if err == nil {
		return t, true
	}

	t, err = time.Parse(time.RFC3339Nano, dateTimeStr)
	if err == nil {
		return t, true
	}

	return time.Time{}, false
}

var isoWeekRegex = regexp.MustCompile(`^(\d{4})-W(\d{2})$`)

// ParseISOWeek parses "YYYY-Www" and returns the Monday and Sunday of that week (UTC dates).
func ParseISOWeek(week string) (time.Time, time.Time, error) {
	m := isoWeekRegex.FindStringSubmatch(week)
	if m == nil {
		return time.Time{}, time.Time{}, fmt.Errorf("invalid week %q: expected YYYY-Www", week)
	}
	year, _ := strconv.Atoi(m[1])
	num, _ := strconv.Atoi(m[2])
	if num < 1 || num > 53 {
		return time.Time{}, time.Time{}, fmt.Errorf("invalid week number %d", num)
	}

	// January 4th is always in week 1.
	jan4 := time.Date(year, time.January, 4, 0, 0, 0, 0, time.UTC)
	offset := (int(jan4.Weekday()) + 6) % 7
	monday := jan4.AddDate(0, 0, -offset+(num-1)*7)

	if y, w := monday.ISOWeek(); y != year || w != num {
		return time.Time{}, time.Time{}, fmt.Errorf("week %d does not exist in %d", num, year)
	}

	return monday, monday.AddDate(0, 0, 6), nil
}
