package repository

import (
	"database/sql"
	"time"
)

// Timestamps are persisted as RFC3339 UTC strings.
const timeLayout = time.RFC3339

func formatTime(t time.Time) string {
	return t.UTC().Format(timeLayout)
}

// parseTime parses a stored timestamp, returning the zero time on failure.
func parseTime(s string) (time.Time, error) {
	return time.Parse(timeLayout, s)
}

// parseNullableTime converts a scanned NULL-able column into a *time.Time.
func parseNullableTime(s sql.NullString) *time.Time {
	if !s.Valid || s.String == "" {
		return nil
	}
	t, err := time.Parse(timeLayout, s.String)
	if err != nil {
		return nil
	}
	return &t
}

// nullableTimeToValue converts a *time.Time into a SQLite bind value.
func nullableTimeToValue(t *time.Time) any {
	if t == nil {
		return nil
	}
	return formatTime(*t)
}

// nullableStringToValue binds NULL for empty strings. Foreign keys keep
// ON DELETE SET NULL honest; mirror keys slip past their UNIQUE index,
// which ignores NULLs, so local-only rows can coexist.
func nullableStringToValue(s string) any {
	if s == "" {
		return nil
	}
	return s
}

func boolToInt(b bool) int {
	if b {
		return 1
	}
	return 0
}

func intToBool(i int) bool {
	return i != 0
}
