// Package calendar normalizes timestamps to calendar days. Every date the
// accounting packages compare is a UTC midnight produced by Day.
package calendar

import (
	"fmt"
	"time"
)

// Day truncates t to midnight UTC of its own calendar date.
func Day(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func Today() time.Time { return Day(time.Now()) }

// FirstOfMonth returns the first calendar day of t's month.
func FirstOfMonth(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), 1, 0, 0, 0, 0, time.UTC)
}

func AddDays(t time.Time, n int) time.Time { return Day(t).AddDate(0, 0, n) }

// Parse reads a YYYY-MM-DD day.
func Parse(s string) (time.Time, error) {
	t, err := time.Parse(time.DateOnly, s)
	if err != nil {
		return time.Time{}, fmt.Errorf("invalid date %q, expected YYYY-MM-DD", s)
	}

	return t, nil
}

func Format(t time.Time) string { return t.Format(time.DateOnly) }
