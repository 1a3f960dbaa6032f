package tui

import "time"

// ThemeChangedMsg reports that the dark/light flag changed.
// Handlers re-read the controller, so out-of-order delivery is harmless.
type ThemeChangedMsg struct {
	Dark bool
}

// ZoneChangedMsg reports that the display time zone changed.
type ZoneChangedMsg struct {
	Zone string
}

// TickMsg refreshes relative timestamps.
type TickMsg time.Time

// ContextCancelledMsg is sent when the parent context is cancelled.
type ContextCancelledMsg struct {
	Err error
}
