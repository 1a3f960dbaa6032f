package ui

import (
	"os"
	"sync"

	"github.com/charmbracelet/lipgloss"
)

// Theme defines a color scheme for plain-text output.
// Each field contains an ANSI escape code for the corresponding color category.
type Theme struct {
	// Name is the identifier of the theme.
	Name string
	// Primary is the main accent color for important elements.
	Primary string
	// Secondary is used for less prominent elements.
	Secondary string
	// Success indicates positive outcomes (2xx responses).
	Success string
	// Warning is used for client errors and caution messages.
	Warning string
	// Error indicates failures (5xx responses, exceptions).
	Error string
	// Info is used for informational messages and redirects.
	Info string
	// Bold is the escape code for bold text.
	Bold string
	// Underline is the escape code for underlined text.
	Underline string
	// Reset clears all formatting.
	Reset string
}

var (
	// DarkTheme is optimized for dark terminal backgrounds.
	// Uses bright, vibrant colors for good contrast.
	DarkTheme = Theme{
		Name:      "dark",
		Primary:   "\033[38;5;208m", // Orange
		Secondary: "\033[38;5;245m", // Grey
		Success:   "\033[38;5;82m",  // Bright green
		Warning:   "\033[38;5;220m", // Yellow
		Error:     "\033[38;5;196m", // Red
		Info:      "\033[38;5;39m",  // Bright blue
		Bold:      "\033[1m",
		Underline: "\033[4m",
		Reset:     "\033[0m",
	}

	// LightTheme is optimized for light terminal backgrounds.
	// Uses darker colors for better readability.
	LightTheme = Theme{
		Name:      "light",
		Primary:   "\033[38;5;166m", // Dark orange
		Secondary: "\033[38;5;240m", // Dark grey
		Success:   "\033[38;5;28m",  // Dark green
		Warning:   "\033[38;5;130m", // Brown-yellow
		Error:     "\033[38;5;124m", // Dark red
		Info:      "\033[38;5;27m",  // Dark blue
		Bold:      "\033[1m",
		Underline: "\033[4m",
		Reset:     "\033[0m",
	}

	// NoColorTheme disables all color output.
	// Used when NO_COLOR is set or --no-color flag is provided.
	NoColorTheme = Theme{Name: "none"}
)

// TUITheme defines lipgloss-compatible colors for the TUI dashboard.
type TUITheme struct {
	Bg      lipgloss.TerminalColor
	Text    lipgloss.TerminalColor
	Border  lipgloss.TerminalColor
	Accent  lipgloss.TerminalColor
	Success lipgloss.TerminalColor
	Warning lipgloss.TerminalColor
	Error   lipgloss.TerminalColor
	Dim     lipgloss.TerminalColor
	Info    lipgloss.TerminalColor
}

var (
	// DarkTUITheme is the dark dashboard palette.
	DarkTUITheme = TUITheme{
		Bg:      lipgloss.Color("#0f1115"),
		Text:    lipgloss.Color("#E0E0E0"),
		Border:  lipgloss.Color("#3a3f4b"),
		Accent:  lipgloss.Color("#e97a35"),
		Success: lipgloss.Color("#22c55e"),
		Warning: lipgloss.Color("#eab308"),
		Error:   lipgloss.Color("#ef4444"),
		Dim:     lipgloss.Color("#6b7280"),
		Info:    lipgloss.Color("#3b82f6"),
	}

	// LightTUITheme is the light dashboard palette.
	LightTUITheme = TUITheme{
		Bg:      lipgloss.Color("#ffffff"),
		Text:    lipgloss.Color("#1f2937"),
		Border:  lipgloss.Color("#d1d5db"),
		Accent:  lipgloss.Color("#c2410c"),
		Success: lipgloss.Color("#15803d"),
		Warning: lipgloss.Color("#a16207"),
		Error:   lipgloss.Color("#b91c1c"),
		Dim:     lipgloss.Color("#6b7280"),
		Info:    lipgloss.Color("#1d4ed8"),
	}

	// NoColorTUITheme disables all TUI colors.
	// lipgloss.NoColor{} renders text with the terminal's default colors.
	NoColorTUITheme = TUITheme{
		Bg:      lipgloss.NoColor{},
		Text:    lipgloss.NoColor{},
		Border:  lipgloss.NoColor{},
		Accent:  lipgloss.NoColor{},
		Success: lipgloss.NoColor{},
		Warning: lipgloss.NoColor{},
		Error:   lipgloss.NoColor{},
		Dim:     lipgloss.NoColor{},
		Info:    lipgloss.NoColor{},
	}
)

// Renderer holds the active color scheme. It is safe for concurrent use.
// The zero value is not usable; call NewRenderer.
type Renderer struct {
	mu      sync.RWMutex
	dark    bool
	noColor bool
}

// NewRenderer creates a Renderer starting in dark mode.
//
// Color output is disabled when noColor is true or when the NO_COLOR
// environment variable is present (https://no-color.org/).
func NewRenderer(noColor bool) *Renderer {
	if _, exists := os.LookupEnv("NO_COLOR"); exists {
		noColor = true
	}
	return &Renderer{dark: true, noColor: noColor}
}

// SetDark switches between the dark and light schemes.
func (r *Renderer) SetDark(dark bool) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.dark = dark
}

// IsDark reports whether the dark scheme is active.
func (r *Renderer) IsDark() bool {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.dark
}

// NoColor reports whether color output is disabled.
func (r *Renderer) NoColor() bool {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.noColor
}

// Theme returns the active ANSI theme.
func (r *Renderer) Theme() Theme {
	r.mu.RLock()
	defer r.mu.RUnlock()
	switch {
	case r.noColor:
		return NoColorTheme
	case r.dark:
		return DarkTheme
	default:
		return LightTheme
	}
}

// TUITheme returns the active lipgloss palette.
func (r *Renderer) TUITheme() TUITheme {
	r.mu.RLock()
	defer r.mu.RUnlock()
	switch {
	case r.noColor:
		return NoColorTUITheme
	case r.dark:
		return DarkTUITheme
	default:
		return LightTUITheme
	}
}

// Paint wraps s in the given escape code and a reset, or returns s unchanged
// when code is empty.
func (r *Renderer) Paint(code, s string) string {
	if code == "" {
		return s
	}
	return code + s + r.Theme().Reset
}
