package tui

import (
	"github.com/charmbracelet/lipgloss"

	"github.com/traceway/traceway-tui/internal/ui"
)

// Style variables for the TUI dashboard.
// Initialized from the active palette via initTUIStyles().
var (
	activeTheme     ui.TUITheme
	headerStyle     lipgloss.Style
	titleStyle      lipgloss.Style
	labelStyle      lipgloss.Style
	valueStyle      lipgloss.Style
	tableBorder     lipgloss.Style
	columnStyle     lipgloss.Style
	activeColumn    lipgloss.Style
	cellStyle       lipgloss.Style
	dimCellStyle    lipgloss.Style
	errorCellStyle  lipgloss.Style
	footerKeyStyle  lipgloss.Style
	footerDescStyle lipgloss.Style
	statusDoneStyle lipgloss.Style
)

func init() {
	initTUIStyles(ui.DarkTUITheme)
}

// initTUIStyles rebuilds all TUI styles from t.
// Called at package init and again whenever the theme flag changes.
func initTUIStyles(t ui.TUITheme) {
	activeTheme = t

	headerStyle = lipgloss.NewStyle().
		Bold(true).
		Foreground(t.Accent).
		Background(t.Bg).
		Padding(0, 1)

	titleStyle = lipgloss.NewStyle().
		Bold(true).
		Foreground(t.Accent)

	labelStyle = lipgloss.NewStyle().
		Foreground(t.Dim)

	valueStyle = lipgloss.NewStyle().
		Foreground(t.Text)

	tableBorder = lipgloss.NewStyle().
		Foreground(t.Border)

	columnStyle = lipgloss.NewStyle().
		Foreground(t.Dim).
		Bold(true).
		Padding(0, 1)

	activeColumn = lipgloss.NewStyle().
		Foreground(t.Accent).
		Bold(true).
		Padding(0, 1)

	cellStyle = lipgloss.NewStyle().
		Foreground(t.Text).
		Padding(0, 1)

	dimCellStyle = lipgloss.NewStyle().
		Foreground(t.Dim).
		Padding(0, 1)

	errorCellStyle = lipgloss.NewStyle().
		Foreground(t.Error).
		Padding(0, 1)

	footerKeyStyle = lipgloss.NewStyle().
		Foreground(t.Accent).
		Bold(true)

	footerDescStyle = lipgloss.NewStyle().
		Foreground(t.Dim)

	statusDoneStyle = lipgloss.NewStyle().
		Foreground(t.Warning).
		Bold(true)
}
