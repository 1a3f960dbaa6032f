package tui

import (
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/lipgloss"

	"github.com/traceway/traceway-tui/internal/format"
)

// HeaderModel renders the top bar: title, version, theme, time zone and
// session uptime.
type HeaderModel struct {
	version string
	theme   string
	zone    string
	rows    int
	uptime  time.Duration
	width   int
}

// NewHeaderModel creates a new header.
func NewHeaderModel(version string) HeaderModel {
	return HeaderModel{version: version}
}

// SetWidth updates the available width.
func (h *HeaderModel) SetWidth(w int) {
	h.width = w
}

// SetState updates the displayed preferences, row count and uptime.
func (h *HeaderModel) SetState(theme, zone string, rows int, uptime time.Duration) {
	h.theme = theme
	h.zone = zone
	h.rows = rows
	h.uptime = uptime
}

// View renders the header.
func (h HeaderModel) View() string {
	titleText := "Traceway"
	if h.version != "" && h.version != "dev" {
		titleText += " " + h.version
	}
	title := titleStyle.Render(titleText)

	pipe := labelStyle.Render(" | ")
	field := func(label, value string) string {
		return labelStyle.Render(label+": ") + valueStyle.Render(value)
	}

	leftPart := title + pipe + field("theme", h.theme) + pipe + field("zone", h.zone)
	rightPart := labelStyle.Render(fmt.Sprintf("%d transactions | up %s", h.rows, format.FormatElapsed(h.uptime)))

	innerWidth := max(h.width-2, 0)
	gap := max(innerWidth-lipgloss.Width(leftPart)-lipgloss.Width(rightPart), 1)

	row := leftPart + strings.Repeat(" ", gap) + rightPart

	return headerStyle.Width(h.width).Render(row)
}
