package domain

import "time"

// DateLayout is the ISO calendar-day format used for all schedule keys.
const DateLayout = "2006-01-02"

// FormatDate renders a time as an ISO date string, in UTC.
func FormatDate(t time.Time) string {
	return t.UTC().Format(DateLayout)
}

// ParseDate parses an ISO date string.
func ParseDate(s string) (time.Time, error) {
	return time.Parse(DateLayout, s)
}

// AddDays shifts an ISO date string by n calendar days. Invalid input
// yields the input unchanged; schedule keys are only ever produced by
// FormatDate so this is a stale-data guard, not a validation path.
func AddDays(iso string, n int) string {
	t, err := ParseDate(iso)
	if err != nil {
		return iso
	}
	return t.AddDate(0, 0, n).Format(DateLayout)
}
