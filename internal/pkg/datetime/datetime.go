package datetime

import (
	"errors"
	"regexp"
	"strconv"
	"strings"
	"time"
)

var (
	ErrInvalidDate = errors.New("invalid date format")
	ErrInvalidTime = errors.New("invalid time format")
)

// DisplayLayout is the canonical day-month-year rendering used everywhere
// a calendar date leaves the system.
const DisplayLayout = "02-01-2006"

var dayMonthYearRegex = regexp.MustCompile(`^(\d{1,2})[/-](\d{1,2})[/-](\d{4})$`)

// ParseCalendarDate parses a calendar date from the formats clients actually
// send: "DD-MM-YYYY" or "DD/MM/YYYY" (single digits allowed), "2006-01-02",
// RFC3339, or an epoch-seconds number. When endOfDay is true the time
// component is pinned to the last instant of the day, otherwise to midnight.
func ParseCalendarDate(input string, endOfDay bool) (time.Time, error) {
	s := strings.TrimSpace(input)
	if s == "" {
		return time.Time{}, ErrInvalidDate
	}

	if m := dayMonthYearRegex.FindStringSubmatch(s); m != nil {
		day, _ := strconv.Atoi(m[1])
		month, _ := strconv.Atoi(m[2])
		year, _ := strconv.Atoi(m[3])
		if month < 1 || month > 12 || day < 1 || day > 31 {
			return time.Time{}, ErrInvalidDate
		}
		return atDayBoundary(time.Date(year, time.Month(month), day, 0, 0, 0, 0, time.UTC), endOfDay), nil
	}

	if t, err := time.Parse("2006-01-02", s); err == nil {
		return atDayBoundary(t, endOfDay), nil
	}
	if t, err := time.Parse(time.RFC3339, s); err == nil {
		return atDayBoundary(t.UTC(), endOfDay), nil
	}

	if epoch, err := strconv.ParseInt(s, 10, 64); err == nil {
		return atDayBoundary(time.Unix(epoch, 0).UTC(), endOfDay), nil
	}

	return time.Time{}, ErrInvalidDate
}

// FormatCalendarDate renders a date as zero-padded DD-MM-YYYY.
func FormatCalendarDate(t time.Time) string {
	return t.Format(DisplayLayout)
}

var clockRegex = regexp.MustCompile(`^(\d{1,2}):(\d{2})\s*(AM|PM)$`)

// ParseClockMinutes converts a 12-hour clock string like "9:05 AM" to
// minutes since midnight. 12 AM maps to 0 and 12 PM to 720.
func ParseClockMinutes(s string) (int, error) {
	m := clockRegex.FindStringSubmatch(strings.ToUpper(strings.TrimSpace(s)))
	if m == nil {
		return 0, ErrInvalidTime
	}

	hours, _ := strconv.Atoi(m[1])
	minutes, _ := strconv.Atoi(m[2])
	if hours < 1 || hours > 12 || minutes > 59 {
		return 0, ErrInvalidTime
	}

	if m[3] == "PM" && hours != 12 {
		hours += 12
	}
	if m[3] == "AM" && hours == 12 {
		hours = 0
	}

	return hours*60 + minutes, nil
}

// InclusiveDayCount counts the calendar days spanned by [from, to] including
// both endpoints, floored at 1 so same-day ranges and clock skew never
// produce a zero or negative count.
func InclusiveDayCount(from, to time.Time) int {
	days := int(StartOfDay(to).Sub(StartOfDay(from)).Hours()/24) + 1
	if days < 1 {
		days = 1
	}
	return days
}

// StartOfDay truncates t to midnight in its own location.
func StartOfDay(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, t.Location())
}

func atDayBoundary(t time.Time, endOfDay bool) time.Time {
	if endOfDay {
		return time.Date(t.Year(), t.Month(), t.Day(), 23, 59, 59, int(time.Second-time.Nanosecond), t.Location())
	}
	return StartOfDay(t)
}
