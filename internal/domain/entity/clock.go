package entity

import (
	"fmt"
	"time"
)

const (
	DateLayout  = "2006-01-02"
	ClockLayout = "15:04"
)

// ParseClock parses a "HH:MM" time of day and returns minutes since midnight.
func ParseClock(s string) (int, error) {
	t, err := time.Parse(ClockLayout, s)
	if err != nil {
		return 0, fmt.Errorf("invalid time %q, use HH:MM", s)
	}
	return t.Hour()*60 + t.Minute(), nil
}

// NormalizeClock re-formats a parsed time of day so "9:05" becomes "09:05".
// Stored slots are always zero padded, which keeps lexical and chronological
// ordering identical.
func NormalizeClock(s string) (string, error) {
	t, err := time.Parse(ClockLayout, s)
	if err != nil {
		return "", fmt.Errorf("invalid time %q, use HH:MM", s)
	}
	return t.Format(ClockLayout), nil
}

// ParseDate parses a calendar date "YYYY-MM-DD" as midnight UTC.
func ParseDate(s string) (time.Time, error) {
	d, err := time.Parse(DateLayout, s)
	if err != nil {
		return time.Time{}, fmt.Errorf("invalid date %q, use YYYY-MM-DD", s)
	}
	return d, nil
}

// DateKey returns the calendar date of t in its own location.
func DateKey(t time.Time) string {
	return t.Format(DateLayout)
}
