package tui

import (
	"fmt"
	"time"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"

	"github.com/traceway/traceway-tui/internal/format"
	"github.com/traceway/traceway-tui/internal/servercolor"
	"github.com/traceway/traceway-tui/internal/sortstate"
	"github.com/traceway/traceway-tui/internal/transactions"
)

// Column indexes into Headers and Cells.
const (
	ColEndpoint = iota
	ColServer
	ColStatus
	ColDuration
	ColRecorded
	ColError
)

// RecordedLayout is the absolute timestamp layout shown next to the age.
const RecordedLayout = "2006-01-02 15:04:05"

var columnTitles = [...]string{"Endpoint", "Server", "Status", "Duration", "Recorded", "Last error"}

// Headers returns the column titles. Sortable columns carry their shortcut
// number; the active sort column carries an arrow.
func Headers(state sortstate.State) []string {
	headers := make([]string, len(columnTitles))
	for i, title := range columnTitles {
		if i >= len(transactions.Fields) {
			headers[i] = title
			continue
		}
		h := fmt.Sprintf("%d %s", i+1, title)
		if transactions.Fields[i] == state.Field {
			h += " " + arrow(state.Direction)
		}
		headers[i] = h
	}
	return headers
}

func arrow(d sortstate.Direction) string {
	if d == sortstate.Asc {
		return "▲"
	}
	return "▼"
}

// Cells formats one transaction for display. Timestamps are rendered in loc.
func Cells(t transactions.Transaction, now time.Time, loc *time.Location) []string {
	lastError := "-"
	if t.StackTrace != "" {
		lastError = format.TruncateStackTrace(t.StackTrace, format.DefaultStackTraceLength)
	}
	return []string{
		t.Endpoint,
		t.Server,
		fmt.Sprintf("%d", t.StatusCode),
		format.FormatDuration(t.Duration),
		fmt.Sprintf("%s (%s)", format.FormatRelativeTime(t.RecordedAt, now), t.RecordedAt.In(loc).Format(RecordedLayout)),
		lastError,
	}
}

// renderTable draws rows [offset, offset+limit) of txs as a bordered table.
func renderTable(txs []transactions.Transaction, servers []string, state sortstate.State, now time.Time, loc *time.Location, offset, limit, width int) string {
	end := min(offset+limit, len(txs))
	if offset > end {
		offset = end
	}
	visible := txs[offset:end]

	rows := make([][]string, len(visible))
	for i, t := range visible {
		rows[i] = Cells(t, now, loc)
	}

	colors := serverColors(servers)

	activeCol := -1
	for i, f := range transactions.Fields {
		if f == state.Field {
			activeCol = i
		}
	}

	tbl := table.New().
		Border(lipgloss.RoundedBorder()).
		BorderStyle(tableBorder).
		Headers(Headers(state)...).
		Rows(rows...).
		StyleFunc(func(row, col int) lipgloss.Style {
			if row == table.HeaderRow {
				if col == activeCol {
					return activeColumn
				}
				return columnStyle
			}
			if row < 0 || row >= len(visible) {
				return cellStyle
			}
			t := visible[row]
			switch col {
			case ColServer:
				return cellStyle.Foreground(colors(t.Server))
			case ColStatus:
				return cellStyle.Foreground(format.StatusCategoryOf(t.StatusCode).Color(activeTheme))
			case ColRecorded:
				return dimCellStyle
			case ColError:
				if t.StackTrace != "" {
					return errorCellStyle
				}
				return dimCellStyle
			}
			return cellStyle
		})
	if width > 0 {
		tbl = tbl.Width(width)
	}
	return tbl.String()
}

// serverColors assigns palette colors to servers once and returns the
// lookup. Unknown names get the text color; with color output disabled every
// name gets no color.
func serverColors(servers []string) func(name string) lipgloss.TerminalColor {
	if _, ok := activeTheme.Text.(lipgloss.NoColor); ok {
		return func(string) lipgloss.TerminalColor { return lipgloss.NoColor{} }
	}
	assigned := servercolor.AssignAll(servers)
	text := activeTheme.Text
	return func(name string) lipgloss.TerminalColor {
		color, ok := assigned[name]
		if !ok {
			return text
		}
		return lipgloss.Color(color)
	}
}
