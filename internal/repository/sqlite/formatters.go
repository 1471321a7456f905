package sqlite

import (
	"time"
)

// FormatTimeForDB formats a time as RFC3339 with nanoseconds so values
// round-trip exactly.
func FormatTimeForDB(t time.Time) string {
	return t.Format(time.RFC3339Nano)
}

// ParseTimeFromDB parses a time stored by FormatTimeForDB. Plain RFC3339
// values are accepted too.
func ParseTimeFromDB(s string) (time.Time, error) {
	return time.Parse(time.RFC3339Nano, s)
}
