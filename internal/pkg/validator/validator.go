package validator

import (
	"regexp"
	"strings"
)

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

var clockTimeRegex = regexp.MustCompile(`^\d{1,2}:\d{2}\s*(?i:AM|PM)$`)

// IsValidClockTime checks the 12-hour "H:MM AM/PM" shape. Range checks
// (hour 1-12, minute 0-59) happen at parse time in the datetime package.
func IsValidClockTime(s string) bool {
	return clockTimeRegex.MatchString(strings.TrimSpace(s))
}

// Date display format validation: DD-MM-YYYY or DD/MM/YYYY
var dayMonthYearRegex = regexp.MustCompile(`^\d{1,2}[/-]\d{1,2}[/-]\d{4}$`)

func IsDayMonthYear(s string) bool {
	return dayMonthYearRegex.MatchString(strings.TrimSpace(s))
}
