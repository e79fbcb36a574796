package model

import (
	"fmt"
	"time"
)

// TimestampLayout is the ISO-8601 layout used for every timestamp in responses:
// UTC, microsecond precision, "Z" suffix.
const TimestampLayout = "2006-01-02T15:04:05.000000Z"

// Timestamp is a point in time serialized in UTC with TimestampLayout.
type Timestamp time.Time

// NewTimestamp converts t to UTC.
func NewTimestamp(t time.Time) Timestamp {
	return Timestamp(t.UTC())
}

// Time returns the underlying time.
func (ts Timestamp) Time() time.Time {
	return time.Time(ts)
}

// String formats the timestamp with TimestampLayout.
func (ts Timestamp) String() string {
	return time.Time(ts).UTC().Format(TimestampLayout)
}

// MarshalJSON implements json.Marshaler.
func (ts Timestamp) MarshalJSON() ([]byte, error) {
	return []byte(`"` + ts.String() + `"`), nil
}

// UnmarshalJSON implements json.Unmarshaler. Any RFC 3339 value is accepted.
func (ts *Timestamp) UnmarshalJSON(data []byte) error {
	if len(data) < 2 || data[0] != '"' || data[len(data)-1] != '"' {
		return fmt.Errorf("timestamp must be a JSON string, got %s", data)
	}
	t, err := time.Parse(time.RFC3339Nano, string(data[1:len(data)-1]))
	if err != nil {
		return fmt.Errorf("parse timestamp: %w", err)
	}
	*ts = NewTimestamp(t)
	return nil
}
