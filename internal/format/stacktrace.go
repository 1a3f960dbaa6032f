package format

import "strings"

// DefaultStackTraceLength is the preview width used by exception lists.
const DefaultStackTraceLength = 70

// TruncateStackTrace returns a one-line preview of a stack trace: the first
// line, cut to maxLen runes with "..." appended when it is longer.
// A non-positive maxLen means DefaultStackTraceLength.
func TruncateStackTrace(stackTrace string, maxLen int) string {
	if maxLen <= 0 {
		maxLen = DefaultStackTraceLength
	}

	firstLine, _, _ := strings.Cut(stackTrace, "\n")

	runes := []rune(firstLine)
	if len(runes) > maxLen {
		return string(runes[:maxLen]) + "..."
	}
	return firstLine
}
