package utils

import (
	"fmt"
	"time"
)

// Collection cycles split every month into three fixed windows: days 1-10,
// days 11-20, and day 21 through month end. All windows are half-open
// [start, end) in UTC so a receipt dated exactly on a boundary lands in
// exactly one cycle.

// CycleWindow returns the [start, end) window for a cycle (1, 2 or 3) of the
// given month.
func CycleWindow(year int, month time.Month, cycle int) (time.Time, time.Time, error) {
	switch cycle {
	case 1:
		return date(year, month, 1), date(year, month, 11), nil
	case 2:
		return date(year, month, 11), date(year, month, 21), nil
	case 3:
		return date(year, month, 21), date(year, month+1, 1), nil
	default:
		return time.Time{}, time.Time{}, fmt.Errorf("invalid cycle %d: must be 1, 2 or 3", cycle)
	}
}

// CycleName returns the display label for a cycle of the given month.
func CycleName(month time.Month, cycle int) string {
	switch cycle {
	case 1:
		return fmt.Sprintf("%s 1-10", month)
	case 2:
		return fmt.Sprintf("%s 11-20", month)
	case 3:
		return fmt.Sprintf("%s 21-end", month)
	default:
		return fmt.Sprintf("%s cycle %d", month, cycle)
	}
}

// MonthWindow returns the [start, end) window covering a whole month.
func MonthWindow(year int, month time.Month) (time.Time, time.Time) {
	return date(year, month, 1), date(year, month+1, 1)
}

// YearWindow returns the [start, end) window covering a whole year.
func YearWindow(year int) (time.Time, time.Time) {
	return date(year, time.January, 1), date(year+1, time.January, 1)
}

// DayWindow returns the [start, end) window covering the day containing t.
func DayWindow(t time.Time) (time.Time, time.Time) {
	t = t.UTC()
	start := date(t.Year(), t.Month(), t.Day())
	return start, start.AddDate(0, 0, 1)
}

func date(year int, month time.Month, day int) time.Time {
	return time.Date(year, month, day, 0, 0, 0, 0, time.UTC)
}
