package format

import (
	"github.com/charmbracelet/lipgloss"

	"github.com/traceway/traceway-tui/internal/ui"
)

// StatusCategory groups HTTP status codes for display.
type StatusCategory int

const (
	StatusSuccess     StatusCategory = iota // 2xx
	StatusRedirect                          // 3xx
	StatusClientError                       // 4xx
	StatusServerError                       // everything else
)

// StatusCategoryOf classifies an HTTP status code.
// Codes outside 200-499 (including 1xx and 0) count as server errors.
func StatusCategoryOf(code int) StatusCategory {
	switch {
	case code >= 200 && code < 300:
		return StatusSuccess
	case code >= 300 && code < 400:
		return StatusRedirect
	case code >= 400 && code < 500:
		return StatusClientError
	default:
		return StatusServerError
	}
}

func (c StatusCategory) String() string {
	switch c {
	case StatusSuccess:
		return "success"
	case StatusRedirect:
		return "redirect"
	case StatusClientError:
		return "client-error"
	default:
		return "server-error"
	}
}

// Color picks the palette entry for the category:
// green, blue, yellow and red respectively.
func (c StatusCategory) Color(t ui.TUITheme) lipgloss.TerminalColor {
	switch c {
	case StatusSuccess:
		return t.Success
	case StatusRedirect:
		return t.Info
	case StatusClientError:
		return t.Warning
	default:
		return t.Error
	}
}

// ANSI picks the escape code for the category from a plain-text theme.
func (c StatusCategory) ANSI(t ui.Theme) string {
	switch c {
	case StatusSuccess:
		return t.Success
	case StatusRedirect:
		return t.Info
	case StatusClientError:
		return t.Warning
	default:
		return t.Error
	}
}

// StatusStyle returns a lipgloss style coloring a status code by category.
func StatusStyle(code int, t ui.TUITheme) lipgloss.Style {
	return lipgloss.NewStyle().Foreground(StatusCategoryOf(code).Color(t))
}
