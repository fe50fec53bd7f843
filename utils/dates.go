// utils/dates.go
package utils

import "time"

func BeginningOfDay(t time.Time) time.Time {
	year, month, day := t.Date()
	return time.Date(year, month, day, 0, 0, 0, 0, t.Location())
}

func DaysBetween(start, end time.Time) int {
	start = BeginningOfDay(start)
	end = BeginningOfDay(end)
	return int(end.Sub(start).Hours() / 24)
}

// RentalDays is the inclusive day count of a rental period: a rental from
// the 1st to the 3rd spans 3 billable days.
func RentalDays(start, end time.Time) int {
	return DaysBetween(start, end) + 1
}

// MonthKey formats a timestamp as its calendar-month bucket, e.g. "2024-01".
func MonthKey(t time.Time) string {
	return t.Format("2006-01")
}

// ParseDate accepts a calendar date ("2006-01-02") or an RFC3339 timestamp.
func ParseDate(s string) (time.Time, error) {
	if t, err := time.Parse("2006-01-02", s); err == nil {
		return t, nil
	}
	return time.Parse(time.RFC3339, s)
}
