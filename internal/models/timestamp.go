package models

import (
	"fmt"
	"time"
)

// timeLayout is the backend's fixed timestamp format: ISO 8601 with optional
// microseconds and no zone designator. Times are UTC.
const timeLayout = "2006-01-02T15:04:05.999999"

// Timestamp wraps time.Time with the backend's wire format. Unlike the other
// fields, a malformed timestamp is NOT tolerated: the decode fails and the
// error surfaces to the caller.
type Timestamp struct {
	time.Time
}

func (t *Timestamp) UnmarshalJSON(data []byte) error {
	s := string(data)
	if s == "null" || s == `""` {
		t.Time = time.Time{}
		return nil
	}
	if len(s) < 2 || s[0] != '"' || s[len(s)-1] != '"' {
		return fmt.Errorf("timestamp is not a JSON string: %s", s)
	}
	parsed, err := time.ParseInLocation(timeLayout, s[1:len(s)-1], time.UTC)
	if err != nil {
		return fmt.Errorf("bad timestamp %s: %w", s, err)
	}
	t.Time = parsed
	return nil
}

func (t Timestamp) MarshalJSON() ([]byte, error) {
	if t.IsZero() {
		return []byte("null"), nil
	}
	return []byte(`"` + t.UTC().Format(timeLayout) + `"`), nil
}
