package format

import (
	"strings"
	"testing"
)

func TestTruncateStackTrace(t *testing.T) {
	t.Parallel()
	long := strings.Repeat("x", 80)
	testCases := []struct {
		name     string
		trace    string
		maxLen   int
		expected string
	}{
		{
			name:     "first line only",
			trace:    "panic: runtime error: index out of range\ngoroutine 1 [running]:\nmain.main()",
			maxLen:   70,
			expected: "panic: runtime error: index out of range",
		},
		{
			name:     "long line is cut with ellipsis",
			trace:    long + "\nsecond",
			maxLen:   70,
			expected: strings.Repeat("x", 70) + "...",
		},
		{
			name:     "exactly max length is kept",
			trace:    strings.Repeat("y", 10),
			maxLen:   10,
			expected: strings.Repeat("y", 10),
		},
		{
			name:     "default length when zero",
			trace:    long,
			maxLen:   0,
			expected: strings.Repeat("x", DefaultStackTraceLength) + "...",
		},
		{
			name:     "multibyte runes are not split",
			trace:    "ошибка: соединение разорвано",
			maxLen:   6,
			expected: "ошибка...",
		},
		{
			name:     "empty",
			trace:    "",
			maxLen:   5,
			expected: "",
		},
	}

	for _, tc := range testCases {
		tc := tc
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()
			if got := TruncateStackTrace(tc.trace, tc.maxLen); got != tc.expected {
				t.Errorf("TruncateStackTrace() = %q, want %q", got, tc.expected)
			}
		})
	}
}
