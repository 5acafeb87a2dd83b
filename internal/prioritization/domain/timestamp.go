package domain

import (
	"strings"
	"time"
)

// Timestamp is a point in time as stored by the task store: a text column
// written by whichever client created the task. It is parsed lazily so that a
// malformed value degrades to "absent" instead of failing a ranking pass.
type Timestamp string

var zonedLayouts = []string{
	time.RFC3339Nano,
	time.RFC3339,
}

var naiveLayouts = []string{
	"2006-01-02T15:04:05.999999999",
	"2006-01-02T15:04:05",
	"2006-01-02T15:04",
	"2006-01-02 15:04:05",
	"2006-01-02 15:04",
	"2006-01-02",
}

// NewTimestamp formats t the way the store writes timestamps.
func NewTimestamp(t time.Time) Timestamp {
	return Timestamp(t.Format(time.RFC3339))
}

// IsZero reports whether no timestamp was provided.
func (ts Timestamp) IsZero() bool {
	return strings.TrimSpace(string(ts)) == ""
}

// Parse returns the timestamp as a time. Values without a zone offset are
// interpreted in loc. ok is false when the value is empty or unparsable.
func (ts Timestamp) Parse(loc *time.Location) (t time.Time, ok bool) {
	raw := strings.TrimSpace(string(ts))
	if raw == "" {
		return time.Time{}, false
	}
	if loc == nil {
		loc = time.Local
	}

	for _, layout := range zonedLayouts {
		if parsed, err := time.Parse(layout, raw); err == nil {
			return parsed, true
		}
	}
	for _, layout := range naiveLayouts {
		if parsed, err := time.ParseInLocation(layout, raw, loc); err == nil {
			return parsed, true
		}
	}
	return time.Time{}, false
}
