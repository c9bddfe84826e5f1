package codec

import (
	"errors"
	"strings"
	"time"
)

// ErrUnrecognizedTime is returned by ParseTime when no layout matches.
var ErrUnrecognizedTime = errors.New("codec: unrecognized time format")

// Layouts carrying their own zone information.
var zonedLayouts = []string{
	time.RFC3339Nano,
	time.RFC3339,
	"2006-01-02T15:04Z07:00",
	time.RFC1123Z,
	time.RFC1123,
	time.RFC850,
	time.RubyDate,
	time.UnixDate,
	"Mon Jan 02 2006 15:04:05 GMT-0700",
}

// Date-only forms are read as UTC.
var utcLayouts = []string{
	"2006-01-02",
	"2006-01",
	"2006",
}

// Date-time forms without an offset are read in the local zone.
var localLayouts = []string{
	"2006-01-02T15:04:05.999999999",
	"2006-01-02T15:04:05",
	"2006-01-02T15:04",
	"2006-01-02 15:04:05.999999999",
	"2006-01-02 15:04:05",
	"2006-01-02 15:04",
	"2006/01/02 15:04:05",
	"2006/01/02",
	"Jan 2, 2006",
	"Jan 2 2006",
	time.ANSIC,
}

// ParseTime reads s as an instant. RFC3339 (with or without fractional
// seconds) is tried first, then common date and date-time forms.
func ParseTime(s string) (time.Time, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return time.Time{}, ErrUnrecognizedTime
	}
	for _, layout := range zonedLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return t, nil
		}
	}
	for _, layout := range utcLayouts {
		if t, err := time.ParseInLocation(layout, s, time.UTC); err == nil {
			return t, nil
		}
	}
	for _, layout := range localLayouts {
		if t, err := time.ParseInLocation(layout, s, time.Local); err == nil {
			return t, nil
		}
	}
	return time.Time{}, ErrUnrecognizedTime
}

// FormatTime renders t in UTC using RFC3339Nano (Go trims trailing zeros).
func FormatTime(t time.Time) string {
	return t.UTC().Format(time.RFC3339Nano)
}

// Maximum distance from the epoch, in milliseconds, of a representable
// instant (±100,000,000 days).
const maxEpochMillis = 8.64e15

// FromEpochMillis converts a millisecond offset from the Unix epoch. The
// fractional part is truncated; ok is false outside the representable range
// or for NaN.
func FromEpochMillis(ms float64) (t time.Time, ok bool) {
	if ms != ms || ms > maxEpochMillis || ms < -maxEpochMillis {
		return time.Time{}, false
	}
	return time.UnixMilli(int64(ms)), true
}
