package request

import (
	"time"
)

const dateLayout = "2006-01-02"

// ParseDate parses the wire date format used across the API (YYYY-MM-DD).
func ParseDate(s string) (time.Time, error) {
	return time.Parse(dateLayout, s)
}

// OptionalDate parses a nullable wire date. Empty and nil both mean absent.
func OptionalDate(s *string) (*time.Time, error) {
	if s == nil || *s == "" {
		return nil, nil
	}
	t, err := time.Parse(dateLayout, *s)
	if err != nil {
		return nil, err
	}
	return &t, nil
}
