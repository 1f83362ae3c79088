package formatting

import (
	"fmt"
	"time"
)

// TimestampLayout is the canonical layout for audit timestamps.
const TimestampLayout = "2006-01-02 15:04:05"

// DayKeyLayout is the canonical layout for date-partitioned storage keys.
const DayKeyLayout = "2006-01-02"

// FormatTimestamp renders t in the canonical audit timestamp layout.
func FormatTimestamp(t time.Time) string {
	return t.Format(TimestampLayout)
}

// FormatDayKey renders t as a date-only partition key.
func FormatDayKey(t time.Time) string {
	return t.Format(DayKeyLayout)
}

// ParseTimestamp parses a string in the canonical audit timestamp layout.
func ParseTimestamp(s string) (time.Time, error) {
	t, err := time.Parse(TimestampLayout, s)
	if err != nil {
		return time.Time{}, fmt.Errorf("invalid timestamp %q: %w", s, err)
	}
	return t, nil
}
