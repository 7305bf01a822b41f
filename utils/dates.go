package utils

import (
	"fmt"
	"time"
)

const DateLayout = "2006-01-02"

// ParseCalendarDate accepts a YYYY-MM-DD date. No time zone is involved.
func ParseCalendarDate(s string) (time.Time, error) {
	t, err := time.Parse(DateLayout, s)
	if err != nil {
		return time.Time{}, fmt.Errorf("invalid date %q, want YYYY-MM-DD", s)
	}
	return t, nil
}

// AddDays shifts a calendar date string by n days.
func AddDays(date string, n int) (string, error) {
	t, err := ParseCalendarDate(date)
	if err != nil {
		return "", err
	}
	return t.AddDate(0, 0, n).Format(DateLayout), nil
}

// ParseClockTime accepts HH:MM or HH:MM:SS.
func ParseClockTime(s string) (hour, min, sec int, err error) {
	for _, layout := range []string{"15:04:05", "15:04"} {
		if t, perr := time.Parse(layout, s); perr == nil {
			return t.Hour(), t.Minute(), t.Second(), nil
		}
	}
	return 0, 0, 0, fmt.Errorf("invalid time %q, want HH:MM or HH:MM:SS", s)
}
