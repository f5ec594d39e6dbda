package ingest

import (
	"strings"
	"time"
)

// Accepted event-time layouts. Go's parser additionally tolerates a
// fractional second after the seconds field even when the layout omits
// it, which covers exports that emit microseconds.
var timestampLayouts = []string{
	"2006-01-02T15:04:05",
	"2006-01-02 15:04:05",
	"2006/01/02 15:04:05",
}

// TimestampFormat is the normalized ISO-8601 form all record timestamps
// use, at seconds precision.
const TimestampFormat = "2006-01-02T15:04:05"

// NormalizeTimestamp parses a raw event time into the normalized form.
// A trailing Z is stripped before parsing. Empty or unparsable input
// yields the current UTC instant; the function never fails.
func NormalizeTimestamp(value string) string {
	value = strings.TrimSpace(value)
	if value == "" {
		return nowUTC()
	}
	value = strings.TrimSuffix(value, "Z")
	for _, layout := range timestampLayouts {
		if t, err := time.Parse(layout, value); err == nil {
			return t.Format(TimestampFormat)
		}
	}
	return nowUTC()
}

func nowUTC() string {
	return time.Now().UTC().Format(TimestampFormat)
}
