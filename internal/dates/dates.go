// Package dates holds the calendar-date comparison shared by the issue
// and event filters. All comparisons are UTC date-only; no timezone
// normalization is applied to "working day" boundaries.
package dates

import "time"

const dayLayout = "2006-01-02"

// ParseDay parses a YYYY-MM-DD target date as a UTC calendar day.
func ParseDay(s string) (time.Time, error) {
	return time.Parse(dayLayout, s)
}

// FormatDay renders a day back to YYYY-MM-DD.
func FormatDay(day time.Time) string {
	return day.Format(dayLayout)
}

// SameUTCDate reports whether ts falls on the given calendar day in UTC,
// ignoring time-of-day. Midnight boundaries are inclusive on both ends of
// the day: 00:00:00Z and 23:59:59Z both match.
func SameUTCDate(ts time.Time, day time.Time) bool {
	y1, m1, d1 := ts.UTC().Date()
	y2, m2, d2 := day.UTC().Date()
	return y1 == y2 && m1 == m2 && d1 == d2
}

// Yesterday returns the previous UTC calendar day relative to now.
func Yesterday(now time.Time) time.Time {
	y, m, d := now.UTC().AddDate(0, 0, -1).Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}
