package utils

import (
	"time"
)

// PeriodStart truncates t to the start of the capping window for the given
// granularity ("day", "week", "month"). Weeks start on Monday.
func PeriodStart(t time.Time, granularity string) time.Time {
	switch granularity {
	case "week":
		day := time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, t.Location())
		offset := (int(day.Weekday()) + 6) % 7 // Monday = 0
		return day.AddDate(0, 0, -offset)
	case "month":
		return time.Date(t.Year(), t.Month(), 1, 0, 0, 0, 0, t.Location())
	default: // day
		return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, t.Location())
	}
}

// SamePeriod reports whether both timestamps fall inside the same capping
// window.
func SamePeriod(a, b time.Time, granularity string) bool {
	return PeriodStart(a, granularity).Equal(PeriodStart(b, granularity))
}
