package utils

import (
	"errors"
	"fmt"
	"time"
)

// ErrMalformedTimestamp is returned when a timestamp matches none of the
// accepted layouts. Callers can test for it with errors.Is.
var ErrMalformedTimestamp = errors.New("malformed timestamp")

// Accepted layouts, tried in order: strict ISO-8601 first, then the
// zone-less ISO variant, then the legacy ops format.
const (
	ISOLayout      = "2006-01-02T15:04:05"
	FallbackLayout = "2006-01-02 15:04"
)

// ParseTimestamp parses a timestamp trying ISO-8601 first and the
// "YYYY-MM-DD HH:MM" fallback second.
func ParseTimestamp(value string) (time.Time, error) {
	if t, err := time.Parse(time.RFC3339, value); err == nil {
		return t, nil
	}
	if t, err := time.Parse(ISOLayout, value); err == nil {
		return t, nil
	}
	if t, err := time.Parse(FallbackLayout, value); err == nil {
		return t, nil
	}
	return time.Time{}, fmt.Errorf("%w: %q", ErrMalformedTimestamp, value)
}

// FormatTimestamp renders a time in the ops fallback format.
func FormatTimestamp(t time.Time) string {
	return t.Format(FallbackLayout)
}
