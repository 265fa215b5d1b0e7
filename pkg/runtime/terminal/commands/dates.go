package commands

import (
	"fmt"
	"time"
)

// DateSpec is a parsed --start/--end value. Month-only inputs are pinned to
// the first day of the month and flagged so range resolution can expand
// them.
type DateSpec struct {
	Value   time.Time
	IsMonth bool
}

// ParseDateOrMonth parses YYYY-MM-DD or YYYY-MM.
func ParseDateOrMonth(value string) (DateSpec, error) {
	if t, err := time.ParseInLocation("2006-01-02", value, time.UTC); err == nil {
		return DateSpec{Value: t}, nil
	}
	if t, err := time.ParseInLocation("2006-01", value, time.UTC); err == nil {
		return DateSpec{Value: t, IsMonth: true}, nil
	}
	return DateSpec{}, fmt.Errorf("invalid date %q: expected YYYY-MM-DD or YYYY-MM", value)
}

// EndOfMonth returns the last day of the month that day falls into.
func EndOfMonth(day time.Time) time.Time {
	firstOfMonth := time.Date(day.Year(), day.Month(), 1, 0, 0, 0, 0, time.UTC)
	return firstOfMonth.AddDate(0, 1, -1)
}

// ResolveRange turns parsed date specs into an inclusive [start, end]
// window. A month-only start without an end means that whole month, clamped
// to today when it is the current month. A day-precision start requires an
// explicit end.
func ResolveRange(start DateSpec, end *DateSpec, today time.Time) (time.Time, time.Time, error) {
	from := start.Value

	if end == nil {
		if !start.IsMonth {
			return time.Time{}, time.Time{}, fmt.Errorf("--end is required when --start includes a day")
		}
		to := EndOfMonth(from)
		if from.Year() == today.Year() && from.Month() == today.Month() {
			todayMidnight := time.Date(today.Year(), today.Month(), today.Day(), 0, 0, 0, 0, time.UTC)
			if todayMidnight.Before(to) {
				to = todayMidnight
			}
		}
		return from, to, nil
	}

	to := end.Value
	if end.IsMonth {
		to = EndOfMonth(to)
	}
	if to.Before(from) {
		return time.Time{}, time.Time{}, fmt.Errorf("--end must not be before --start")
	}
	return from, to, nil
}
