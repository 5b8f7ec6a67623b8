package shared

import (
	"strings"
	"time"
)

// OptionalRef normalizes an optional reference received over the wire: a blank
// or whitespace-only value means the reference is absent and must bind NULL,
// never an empty string.
func OptionalRef(raw string) *string {
	trimmed := strings.TrimSpace(raw)
	if trimmed == "" {
		return nil
	}
	return &trimmed
}

// OptionalDate parses an optional YYYY-MM-DD value, treating blank as absent.
func OptionalDate(raw string) (*time.Time, error) {
	trimmed := strings.TrimSpace(raw)
	if trimmed == "" {
		return nil, nil
	}
	t, err := time.Parse("2006-01-02", trimmed)
	if err != nil {
		return nil, err
	}
	return &t, nil
}
