package utils

import (
	"fmt"
	"time"
)

// Time-of-day values travel as "HH:MM" strings at the API boundary and as
// minutes-from-midnight ints everywhere else.

// ParseClock converts an "HH:MM" string to minutes from midnight.
func ParseClock(s string) (int, error) {
	t, err := time.Parse("15:04", s)
	if err != nil {
		return 0, fmt.Errorf("invalid time %q: %w", s, err)
	}
	return t.Hour()*60 + t.Minute(), nil
}

// FormatClock converts minutes from midnight back to "HH:MM".
func FormatClock(minutes int) string {
	return fmt.Sprintf("%02d:%02d", minutes/60, minutes%60)
}

// ParseDate validates a "YYYY-MM-DD" calendar date.
func ParseDate(s string) (time.Time, error) {
	t, err := time.Parse("2006-01-02", s)
	if err != nil {
		return time.Time{}, fmt.Errorf("invalid date %q: %w", s, err)
	}
	return t, nil
}

// ISOWeekday returns the ISO weekday for t (Monday = 1 .. Sunday = 7).
func ISOWeekday(t time.Time) int {
	return (int(t.Weekday())+6)%7 + 1
}
