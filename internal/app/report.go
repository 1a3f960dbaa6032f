package app

import (
	"fmt"
	"io"
	"slices"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/traceway/traceway-tui/internal/format"
	"github.com/traceway/traceway-tui/internal/servercolor"
	"github.com/traceway/traceway-tui/internal/sortstate"
	"github.com/traceway/traceway-tui/internal/transactions"
	"github.com/traceway/traceway-tui/internal/tui"
)

// columnGap separates plain-text columns.
const columnGap = "  "

// printReport writes the transactions table once, ordered by the saved sort
// state of the dashboard.
func (a *Application) printReport(out io.Writer, s tui.Session, txs []transactions.Transaction) {
	state := s.Sort.Get(transactions.PageKey, transactions.DefaultSort)
	sorted := slices.Clone(txs)
	sortstate.Sort(sorted, state, transactions.Comparators)

	now := a.Now()
	loc := s.Zone.Location()
	headers := tui.Headers(state)

	widths := make([]int, len(headers))
	for i, h := range headers {
		widths[i] = lipgloss.Width(h)
	}
	rows := make([][]string, len(sorted))
	for i, t := range sorted {
		rows[i] = tui.Cells(t, now, loc)
		for j, c := range rows[i] {
			widths[j] = max(widths[j], lipgloss.Width(c))
		}
	}

	th := s.Renderer.Theme()
	serverStyles := servercolor.Styles(transactions.Servers(sorted))

	fmt.Fprintln(out, s.Renderer.Paint(th.Bold, joinPadded(headers, widths)))
	for i, t := range sorted {
		cells := make([]string, len(rows[i]))
		for j, c := range rows[i] {
			cells[j] = pad(c, widths[j])
		}
		cells[tui.ColStatus] = s.Renderer.Paint(format.StatusCategoryOf(t.StatusCode).ANSI(th), cells[tui.ColStatus])
		if !s.Renderer.NoColor() {
			cells[tui.ColServer] = serverStyles[t.Server].Render(cells[tui.ColServer])
		}
		fmt.Fprintln(out, strings.TrimRight(strings.Join(cells, columnGap), " "))
	}

	mode := "light"
	if s.Theme.IsDark() {
		mode = "dark"
	}
	fmt.Fprintf(out, "\n%d transactions, theme %s, zone %s\n", len(sorted), mode, s.Zone.Get())
}

func joinPadded(cells []string, widths []int) string {
	padded := make([]string, len(cells))
	for i, c := range cells {
		padded[i] = pad(c, widths[i])
	}
	return strings.TrimRight(strings.Join(padded, columnGap), " ")
}

func pad(s string, width int) string {
	return s + strings.Repeat(" ", max(width-lipgloss.Width(s), 0))
}
