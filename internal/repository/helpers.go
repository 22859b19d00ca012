package repository

import (
	"database/sql"
	"encoding/json"
	"time"
)

// timeLayout is RFC3339 UTC with fixed nanosecond width. The fixed width
// keeps lexicographic ordering of stored strings identical to time ordering
// (RFC3339Nano trims trailing zeros, which breaks that within a second).
const timeLayout = "2006-01-02T15:04:05.000000000Z07:00"

// parseTime parses a timestamp stored by this package. Returns the zero
// time on failure; writes always go through formatTime so a parse failure
// indicates external tampering, not a code path we recover from.
func parseTime(s string) time.Time {
	t, err := time.Parse(time.RFC3339Nano, s)
	if err != nil {
		return time.Time{}
	}
	return t
}

func formatTime(t time.Time) string {
	return t.UTC().Format(timeLayout)
}

// nullableString converts a *string to a value suitable for SQLite storage.
// Returns nil (SQL NULL) if the pointer is nil.
func nullableString(s *string) interface{} {
	if s == nil {
		return nil
	}
	return *s
}

// parseNullableString converts a scanned sql.NullString back to a *string.
func parseNullableString(s sql.NullString) *string {
	if !s.Valid {
		return nil
	}
	v := s.String
	return &v
}

// marshalMetadata encodes an activity metadata map as JSON text, or SQL NULL
// when the map is empty.
func marshalMetadata(m map[string]string) (interface{}, error) {
	if len(m) == 0 {
		return nil, nil
	}
	b, err := json.Marshal(m)
	if err != nil {
		return nil, err
	}
	return string(b), nil
}

// unmarshalMetadata decodes activity metadata stored as JSON text.
func unmarshalMetadata(s sql.NullString) (map[string]string, error) {
	if !s.Valid || s.String == "" {
		return nil, nil
	}
	var m map[string]string
	if err := json.Unmarshal([]byte(s.String), &m); err != nil {
		return nil, err
	}
	return m, nil
}
