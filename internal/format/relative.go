package format

import (
	"fmt"
	"time"
)

// timestampLayouts are tried in order by ParseTimestamp.
var timestampLayouts = []string{
	time.RFC3339Nano,
	time.RFC3339,
	"2006-01-02 15:04:05",
}

// FormatRelativeTime renders the age of t relative to now as "just now",
// "5m", "3h" or "2d". Units are floored and never pluralized; there is no
// week or month tier. Timestamps in the future render as "just now".
func FormatRelativeTime(t, now time.Time) string {
	diff := now.Sub(t)
	mins := int64(diff / time.Minute)
	hours := int64(diff / time.Hour)
	days := int64(diff / (24 * time.Hour))

	switch {
	case mins < 1:
		return "just now"
	case mins < 60:
		return fmt.Sprintf("%dm", mins)
	case hours < 24:
		return fmt.Sprintf("%dh", hours)
	default:
		return fmt.Sprintf("%dd", days)
	}
}

// FormatRelativeTimeString parses an API timestamp and formats it with
// FormatRelativeTime. Unparsable input yields "".
func FormatRelativeTimeString(s string, now time.Time) string {
	t, ok := ParseTimestamp(s)
	if !ok {
		return ""
	}
	return FormatRelativeTime(t, now)
}

// ParseTimestamp accepts RFC 3339 (with or without fractional seconds) and
// "2006-01-02 15:04:05", the latter read as UTC.
func ParseTimestamp(s string) (time.Time, bool) {
	for _, layout := range timestampLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return t, true
		}
	}
	return time.Time{}, false
}
