package tui

import (
	"context"
	"time"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	apperrors "github.com/traceway/traceway-tui/internal/errors"
	"github.com/traceway/traceway-tui/internal/sortstate"
	"github.com/traceway/traceway-tui/internal/theme"
	"github.com/traceway/traceway-tui/internal/timezone"
	"github.com/traceway/traceway-tui/internal/transactions"
	"github.com/traceway/traceway-tui/internal/ui"
)

// Session bundles the preference state the dashboard reads and mutates.
type Session struct {
	Theme    *theme.Controller
	Zone     *timezone.State
	Sort     *sortstate.Store
	Renderer *ui.Renderer
}

// LayoutManager holds terminal dimensions and provides layout calculations.
type LayoutManager struct {
	width  int
	height int
}

// visibleRows returns how many table rows fit between header and footer.
func (l LayoutManager) visibleRows() int {
	return max(l.height-headerHeight-footerHeight-tableChrome, minBodyRows)
}

// Layout constants for the TUI dashboard.
const (
	headerHeight = 1
	footerHeight = 1

	// tableChrome is the top border, header row, header rule and bottom border.
	tableChrome  = 4
	minBodyRows  = 1
	tickInterval = 30 * time.Second
)

// Model is the root bubbletea model for the TUI dashboard.
type Model struct {
	header HeaderModel
	footer FooterModel
	keymap KeyMap

	LayoutManager

	session Session
	txs     []transactions.Transaction
	servers []string
	sort    sortstate.State
	offset  int
	started time.Time
	now     time.Time

	ctx      context.Context
	ref      *programRef
	exitCode int
}

// NewModel creates a new TUI model over txs. The slice is copied.
func NewModel(ctx context.Context, session Session, txs []transactions.Transaction, version string) Model {
	keymap := DefaultKeyMap()
	now := time.Now()
	m := Model{
		header:   NewHeaderModel(version),
		footer:   NewFooterModel(keymap.ShortHelp()),
		keymap:   keymap,
		session:  session,
		txs:      append([]transactions.Transaction(nil), txs...),
		servers:  transactions.Servers(txs),
		started:  now,
		now:      now,
		ctx:      ctx,
		ref:      &programRef{},
		exitCode: apperrors.ExitSuccess,
	}
	m.sort = session.Sort.Get(transactions.PageKey, transactions.DefaultSort)
	sortstate.Sort(m.txs, m.sort, transactions.Comparators)
	m.applyTheme()
	return m
}

// Init returns the initial commands.
func (m Model) Init() tea.Cmd {
	return tea.Batch(tickCmd(), watchContextCmd(m.ctx))
}

// Update handles all incoming messages.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKey(msg)

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.header.SetWidth(m.width)
		m.footer.SetWidth(m.width)
		m.clampOffset()
		return m, nil

	case ThemeChangedMsg:
		m.applyTheme()
		return m, nil

	case ZoneChangedMsg:
		m.footer.SetMessage("zone " + msg.Zone)
		return m, nil

	case TickMsg:
		m.now = time.Time(msg)
		return m, tickCmd()

	case ContextCancelledMsg:
		m.exitCode = apperrors.ExitErrorCanceled
		return m, tea.Quit
	}

	return m, nil
}

func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keymap.Quit):
		return m, tea.Quit

	case key.Matches(msg, m.keymap.ToggleTheme):
		m.session.Theme.Toggle()
		m.applyTheme()
		return m, nil

	case key.Matches(msg, m.keymap.ResetTheme):
		m.session.Theme.Reset()
		m.applyTheme()
		m.footer.SetMessage("following system theme")
		return m, nil

	case key.Matches(msg, m.keymap.Sort):
		idx := int(msg.String()[0] - '1')
		m.sort = m.session.Sort.Click(transactions.PageKey, transactions.Fields[idx], transactions.DefaultSort, sortstate.DefaultDirection)
		sortstate.Sort(m.txs, m.sort, transactions.Comparators)
		m.offset = 0
		return m, nil

	case key.Matches(msg, m.keymap.Zone):
		m.session.Zone.Set(timezone.Next(m.session.Zone.Get()))
		return m, nil

	case key.Matches(msg, m.keymap.Up):
		m.offset--
	case key.Matches(msg, m.keymap.Down):
		m.offset++
	case key.Matches(msg, m.keymap.PageUp):
		m.offset -= m.visibleRows()
	case key.Matches(msg, m.keymap.PageDown):
		m.offset += m.visibleRows()
	}

	m.clampOffset()
	return m, nil
}

// applyTheme rebuilds styles from the renderer, which the theme controller
// keeps in sync with the resolved flag.
func (m *Model) applyTheme() {
	initTUIStyles(m.session.Renderer.TUITheme())
}

func (m *Model) clampOffset() {
	maxOffset := max(len(m.txs)-m.visibleRows(), 0)
	m.offset = min(max(m.offset, 0), maxOffset)
}

// themeLabel describes the active theme and where it comes from.
func (m Model) themeLabel() string {
	label := theme.Light
	if m.session.Theme.IsDark() {
		label = theme.Dark
	}
	if _, ok := m.session.Theme.Explicit(); ok {
		return label
	}
	return label + " (system)"
}

// View renders the entire dashboard.
func (m Model) View() string {
	if m.width == 0 || m.height == 0 {
		return "Initializing..."
	}

	zone := m.session.Zone.Get()
	m.header.SetState(m.themeLabel(), zone, len(m.txs), m.now.Sub(m.started))

	body := renderTable(m.txs, m.servers, m.sort, m.now, m.session.Zone.Location(), m.offset, m.visibleRows(), m.width)

	return lipgloss.JoinVertical(lipgloss.Left, m.header.View(), body, m.footer.View())
}

// ExitCode reports the code the session should exit with.
func (m Model) ExitCode() int {
	return m.exitCode
}

// Run is the public entry point for the TUI mode.
// It creates the bubbletea program, runs it, and returns the exit code.
func Run(ctx context.Context, session Session, txs []transactions.Transaction, version string, opts ...tea.ProgramOption) int {
	model := NewModel(ctx, session, txs, version)

	p := tea.NewProgram(model, append([]tea.ProgramOption{tea.WithAltScreen()}, opts...)...)
	// Inject the program reference before running so subscribers can Send.
	model.ref.SetProgram(p)
	detach := session.bridge(model.ref)
	defer detach()

	finalModel, err := p.Run()
	if err != nil {
		return apperrors.ExitErrorGeneric
	}

	if m, ok := finalModel.(Model); ok {
		return m.exitCode
	}
	return apperrors.ExitSuccess
}

// tickCmd returns a command that sends a TickMsg after tickInterval.
func tickCmd() tea.Cmd {
	return tea.Tick(tickInterval, func(t time.Time) tea.Msg {
		return TickMsg(t)
	})
}

// watchContextCmd waits for context cancellation and sends a message.
func watchContextCmd(ctx context.Context) tea.Cmd {
	return func() tea.Msg {
		<-ctx.Done()
		return ContextCancelledMsg{Err: ctx.Err()}
	}
}
