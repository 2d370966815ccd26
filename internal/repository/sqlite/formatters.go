package sqlite

import (
	"time"
)

// timestampLayout is fixed width so that text ordering in SQLite matches
// chronological ordering.
const timestampLayout = "2006-01-02T15:04:05.000000000Z"

// FormatTimeForDB formats a time.Time value as a fixed width UTC string for consistent database storage
func FormatTimeForDB(t time.Time) string {
	return t.UTC().Format(timestampLayout)
}

// ParseTimeFromDB parses a time string from the database. Values written by
// older tools in plain RFC3339 are accepted too.
func ParseTimeFromDB(s string) (time.Time, error) {
	t, err := time.Parse(timestampLayout, s)
	if err == nil {
		return t, nil
	}
	t, rfcErr := time.Parse(time.RFC3339Nano, s)
	if rfcErr != nil {
		return time.Time{}, err
	}
	return t.UTC(), nil
}
