// Package window computes the inclusive time range implied by a reference
// date and a view granularity, and selects the appointments whose start falls
// inside it. All math is local wall-clock; timezone conversion is out of
// scope.
package window

import (
	"fmt"
	"strings"
	"time"

	"github.com/example/cruze-calendar/internal/model"
)

// Granularity is the calendar view scale controlling window size and
// navigation step.
type Granularity string

const (
	Day     Granularity = "day"
	Week    Granularity = "week"
	Month   Granularity = "month"
	Quarter Granularity = "quarter"
)

// ParseGranularity maps a user supplied view name to a Granularity.
func ParseGranularity(value string) (Granularity, error) {
	switch Granularity(strings.ToLower(strings.TrimSpace(value))) {
	case Day:
		return Day, nil
	case Week:
		return Week, nil
	case Month:
		return Month, nil
	case Quarter:
		return Quarter, nil
	}
	return "", fmt.Errorf("window: unknown granularity %q", value)
}

// Range returns the inclusive [start, end] instants of the window around the
// reference date. The end lands on the final representable millisecond of the
// window's last day.
func Range(reference time.Time, g Granularity) (time.Time, time.Time) {
	start := startOfDay(reference)
	switch g {
	case Week:
		// Weeks start on the locale's day zero (Sunday).
		start = start.AddDate(0, 0, -int(start.Weekday()))
		return start, endOfDay(start.AddDate(0, 0, 6))
	case Month:
		start = time.Date(reference.Year(), reference.Month(), 1, 0, 0, 0, 0, reference.Location())
		return start, endOfDay(start.AddDate(0, 1, -1))
	case Quarter:
		firstMonth := time.Month(int(reference.Month()-1)/3*3 + 1)
		start = time.Date(reference.Year(), firstMonth, 1, 0, 0, 0, 0, reference.Location())
		return start, endOfDay(start.AddDate(0, 3, -1))
	default:
		return start, endOfDay(start)
	}
}

// Contains reports whether the instant falls inside the window around the
// reference date. Month and quarter windows bucket by calendar month/quarter
// and year rather than by instant comparison.
func Contains(reference time.Time, g Granularity, t time.Time) bool {
	switch g {
	case Month:
		return t.Month() == reference.Month() && t.Year() == reference.Year()
	case Quarter:
		return quarterOf(t) == quarterOf(reference) && t.Year() == reference.Year()
	default:
		start, end := Range(reference, g)
		return !t.Before(start) && !t.After(end)
	}
}

// Filter returns the appointments whose StartTime lies in the window.
// Bucketing is by start only: an appointment running past the window boundary
// is neither split nor matched by its end.
func Filter(appointments []model.Appointment, reference time.Time, g Granularity) []model.Appointment {
	var matched []model.Appointment
	for _, appointment := range appointments {
		if Contains(reference, g, appointment.StartTime) {
			matched = append(matched, appointment)
		}
	}
	return matched
}

// Advance moves the date by one granularity step in the given direction
// (-1 or +1), preserving the time of day.
func Advance(date time.Time, g Granularity, direction int) time.Time {
	switch g {
	case Week:
		return date.AddDate(0, 0, 7*direction)
	case Month:
		return date.AddDate(0, direction, 0)
	case Quarter:
		return date.AddDate(0, 3*direction, 0)
	default:
		return date.AddDate(0, 0, direction)
	}
}

func quarterOf(t time.Time) int {
	return int(t.Month()-1) / 3
}

func startOfDay(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, t.Location())
}

func endOfDay(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 23, 59, 59, 999*int(time.Millisecond), t.Location())
}
