package format

import (
	"fmt"
	"math"
	"time"
)

// FormatElapsed renders a wall-clock span such as the session uptime.
// Spans of a second or more drop their fraction: "42ms", "9s", "1h2m5s".
// Negative spans render as "0s".
func FormatElapsed(d time.Duration) string {
	switch {
	case d <= 0:
		return "0s"
	case d < time.Millisecond:
		return fmt.Sprintf("%dµs", d.Microseconds())
	case d < time.Second:
		return fmt.Sprintf("%dms", d.Milliseconds())
	}
	return d.Truncate(time.Second).String()
}

// FormatDuration renders a span recorded in nanoseconds (transaction and
// segment durations) in the unit that keeps the number short:
//
//	< 1ms     -> "512µs"
//	< 1000ms  -> "37ms"
//	otherwise -> "2.4s"
//
// Values are rounded half away from zero, so 1.5ms renders as "2ms".
func FormatDuration(d time.Duration) string {
	ms := float64(d) / float64(time.Millisecond)
	switch {
	case ms < 1:
		return fmt.Sprintf("%.0fµs", math.Round(float64(d)/float64(time.Microsecond)))
	case ms < 1000:
		return fmt.Sprintf("%.0fms", math.Round(ms))
	default:
		return fmt.Sprintf("%.1fs", roundTo(ms/1000, 1))
	}
}

// FormatDurationMs renders a millisecond value (aggregated percentiles) with a
// space before the unit and two decimals in the seconds bracket:
// "250 µs", "12 ms", "1.50 s".
func FormatDurationMs(ms float64) string {
	switch {
	case ms < 1:
		return fmt.Sprintf("%.0f µs", math.Round(ms*1000))
	case ms < 1000:
		return fmt.Sprintf("%.0f ms", math.Round(ms))
	default:
		return fmt.Sprintf("%.2f s", roundTo(ms/1000, 2))
	}
}

// roundTo rounds v half away from zero to the given number of decimals.
// fmt alone rounds half to even, which would print 0.125 as "0.12".
func roundTo(v float64, decimals int) float64 {
	p := math.Pow10(decimals)
	return math.Round(v*p) / p
}
