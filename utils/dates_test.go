package utils

import (
	"testing"
	"time"
)

func date(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func TestDaysBetween(t *testing.T) {
	if got := DaysBetween(date(2024, 1, 1), date(2024, 1, 3)); got != 2 {
		t.Fatalf("DaysBetween = %d; want 2", got)
	}
	if got := DaysBetween(date(2024, 1, 1), date(2024, 1, 1)); got != 0 {
		t.Fatalf("DaysBetween same day = %d; want 0", got)
	}
	// Time-of-day must not affect the count
	start := time.Date(2024, 1, 1, 23, 30, 0, 0, time.UTC)
	end := time.Date(2024, 1, 2, 0, 15, 0, 0, time.UTC)
	if got := DaysBetween(start, end); got != 1 {
		t.Fatalf("DaysBetween across midnight = %d; want 1", got)
	}
}

func TestRentalDays(t *testing.T) {
	// A rental from the 1st to the 3rd spans 3 billable days
	if got := RentalDays(date(2024, 1, 1), date(2024, 1, 3)); got != 3 {
		t.Fatalf("RentalDays = %d; want 3", got)
	}
	if got := RentalDays(date(2024, 1, 1), date(2024, 1, 2)); got != 2 {
		t.Fatalf("RentalDays = %d; want 2", got)
	}
}

func TestMonthKey(t *testing.T) {
	if got := MonthKey(date(2024, 3, 15)); got != "2024-03" {
		t.Fatalf("MonthKey = %q; want 2024-03", got)
	}
}

func TestParseDate(t *testing.T) {
	got, err := ParseDate("2024-01-05")
	if err != nil {
		t.Fatalf("ParseDate error: %v", err)
	}
	if !got.Equal(date(2024, 1, 5)) {
		t.Fatalf("ParseDate = %v; want 2024-01-05", got)
	}

	if _, err := ParseDate("2024-01-05T10:30:00Z"); err != nil {
		t.Fatalf("ParseDate RFC3339 error: %v", err)
	}
	if _, err := ParseDate("not-a-date"); err == nil {
		t.Fatal("expected error for invalid date")
	}
}
