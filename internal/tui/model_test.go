package tui

import (
	"context"
	"strings"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	apperrors "github.com/traceway/traceway-tui/internal/errors"
	"github.com/traceway/traceway-tui/internal/sortstate"
	"github.com/traceway/traceway-tui/internal/storage"
	"github.com/traceway/traceway-tui/internal/theme"
	"github.com/traceway/traceway-tui/internal/timezone"
	"github.com/traceway/traceway-tui/internal/transactions"
	"github.com/traceway/traceway-tui/internal/ui"
)

var testNow = time.Date(2026, 3, 14, 12, 0, 0, 0, time.UTC)

type fixture struct {
	store   *storage.MemoryStore
	host    *theme.StaticPreference
	session Session
}

func newFixture(t *testing.T) *fixture {
	t.Helper()
	t.Cleanup(func() { initTUIStyles(ui.DarkTUITheme) })

	store := storage.NewMemoryStore()
	host := theme.NewStaticPreference(true)
	renderer := ui.NewRenderer(true)

	ctrl := theme.NewController(store, host, renderer)
	t.Cleanup(ctrl.Init())

	zone := timezone.New(store, timezone.WithHostZone(func() string { return "UTC" }))
	zone.Init()

	return &fixture{
		store: store,
		host:  host,
		session: Session{
			Theme:    ctrl,
			Zone:     zone,
			Sort:     sortstate.NewStore(store),
			Renderer: renderer,
		},
	}
}

func (f *fixture) model(t *testing.T) Model {
	t.Helper()
	m := NewModel(context.Background(), f.session, transactions.Samples(testNow), "dev")
	return send(m, TickMsg(testNow))
}

func send(m Model, msg tea.Msg) Model {
	next, _ := m.Update(msg)
	return next.(Model)
}

func press(m Model, k string) (Model, tea.Cmd) {
	next, cmd := m.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(k)})
	return next.(Model), cmd
}

func TestNewModel_DefaultSortNewestFirst(t *testing.T) {
	f := newFixture(t)
	m := f.model(t)

	if m.sort != transactions.DefaultSort {
		t.Fatalf("sort = %+v, want default", m.sort)
	}
	for i := 1; i < len(m.txs); i++ {
		if m.txs[i-1].RecordedAt.Before(m.txs[i].RecordedAt) {
			t.Fatalf("rows not newest first at %d", i)
		}
	}
}

func TestNewModel_RestoresSavedSort(t *testing.T) {
	f := newFixture(t)
	if err := f.store.Set(sortstate.KeyPrefix+transactions.PageKey, `{"field":"duration","direction":"asc"}`); err != nil {
		t.Fatal(err)
	}

	m := f.model(t)
	if m.sort.Field != transactions.FieldDuration || m.sort.Direction != sortstate.Asc {
		t.Fatalf("sort = %+v, want duration asc", m.sort)
	}
	if m.txs[0].Duration > m.txs[len(m.txs)-1].Duration {
		t.Error("rows not ordered by ascending duration")
	}
}

func TestSortKeys_ClickAndPersist(t *testing.T) {
	f := newFixture(t)
	m := f.model(t)

	m, _ = press(m, "4")
	if m.sort != (sortstate.State{Field: transactions.FieldDuration, Direction: sortstate.Desc}) {
		t.Fatalf("after first press sort = %+v, want duration desc", m.sort)
	}

	m, _ = press(m, "4")
	if m.sort.Direction != sortstate.Asc {
		t.Fatalf("second press should flip direction, got %+v", m.sort)
	}

	raw, ok, err := f.store.Get(sortstate.KeyPrefix + transactions.PageKey)
	if err != nil || !ok {
		t.Fatalf("sort state not persisted: ok=%v err=%v", ok, err)
	}
	if raw != `{"field":"duration","direction":"asc"}` {
		t.Errorf("persisted = %s", raw)
	}
}

func TestToggleAndResetTheme(t *testing.T) {
	f := newFixture(t)
	m := f.model(t)

	m, _ = press(m, "t")
	if f.session.Theme.IsDark() {
		t.Fatal("toggle should switch to light")
	}
	if v, ok, _ := f.store.Get(theme.StorageKey); !ok || v != theme.Light {
		t.Errorf("stored theme = %q, %v; want light", v, ok)
	}
	if f.session.Renderer.IsDark() {
		t.Error("renderer not marked light")
	}
	if m.themeLabel() != "light" {
		t.Errorf("label = %q, want light", m.themeLabel())
	}

	m, _ = press(m, "r")
	if !f.session.Theme.IsDark() {
		t.Error("reset should follow the dark host")
	}
	if _, ok := f.session.Theme.Explicit(); ok {
		t.Error("reset should clear the saved choice")
	}
	if m.themeLabel() != "dark (system)" {
		t.Errorf("label = %q, want dark (system)", m.themeLabel())
	}
}

func TestZoneKey_CyclesAndPersists(t *testing.T) {
	f := newFixture(t)
	m := f.model(t)

	press(m, "z")

	want := timezone.Next("UTC")
	if got := f.session.Zone.Get(); got != want {
		t.Errorf("zone = %q, want %q", got, want)
	}
	if v, _, _ := f.store.Get(timezone.StorageKey); v != want {
		t.Errorf("stored zone = %q, want %q", v, want)
	}
}

func TestQuit(t *testing.T) {
	f := newFixture(t)
	m := f.model(t)

	_, cmd := press(m, "q")
	if cmd == nil {
		t.Fatal("expected quit command")
	}
	if _, ok := cmd().(tea.QuitMsg); !ok {
		t.Error("q should produce tea.QuitMsg")
	}

	next, cmd := m.Update(tea.KeyMsg{Type: tea.KeyCtrlC})
	if cmd == nil {
		t.Fatal("expected quit command for ctrl+c")
	}
	if next.(Model).ExitCode() != apperrors.ExitSuccess {
		t.Error("quitting by key should exit successfully")
	}
}

func TestContextCancelled(t *testing.T) {
	f := newFixture(t)
	m := f.model(t)

	m = send(m, ContextCancelledMsg{Err: context.Canceled})
	if m.ExitCode() != apperrors.ExitErrorCanceled {
		t.Errorf("exit code = %d, want %d", m.ExitCode(), apperrors.ExitErrorCanceled)
	}
}

func TestScrollClamps(t *testing.T) {
	f := newFixture(t)
	m := f.model(t)
	// Room for two rows.
	m = send(m, tea.WindowSizeMsg{Width: 200, Height: headerHeight + footerHeight + tableChrome + 2})

	m, _ = press(m, "k")
	if m.offset != 0 {
		t.Errorf("offset = %d, want 0 at top", m.offset)
	}

	for i := 0; i < 20; i++ {
		m, _ = press(m, "j")
	}
	if want := len(m.txs) - 2; m.offset != want {
		t.Errorf("offset = %d, want %d at bottom", m.offset, want)
	}

	m, _ = press(m, "1")
	if m.offset != 0 {
		t.Error("sorting should scroll back to the top")
	}
}

func TestView(t *testing.T) {
	f := newFixture(t)
	m := f.model(t)

	if got := m.View(); got != "Initializing..." {
		t.Errorf("View before size = %q", got)
	}

	m = send(m, tea.WindowSizeMsg{Width: 200, Height: 40})
	view := m.View()

	for _, want := range []string{"Traceway", "dark (system)", "zone", "UTC", "GET /api/users", "api-1", "5 Recorded ▼", "7 transactions", "quit"} {
		if !strings.Contains(view, want) {
			t.Errorf("view missing %q:\n%s", want, view)
		}
	}
}

func TestView_Uptime(t *testing.T) {
	f := newFixture(t)
	m := f.model(t)
	m.started = testNow
	m = send(m, tea.WindowSizeMsg{Width: 200, Height: 40})

	m = send(m, TickMsg(testNow.Add(90*time.Second+400*time.Millisecond)))
	if view := m.View(); !strings.Contains(view, "up 1m30s") {
		t.Errorf("view missing uptime:\n%s", view)
	}
}

func TestBridge_DetachStopsForwarding(t *testing.T) {
	f := newFixture(t)
	ref := &programRef{}

	detach := f.session.bridge(ref)
	// No program yet: forwarding is a no-op.
	f.session.Theme.Toggle()
	f.session.Zone.Set("Asia/Tokyo")
	detach()

	f.session.Theme.Toggle()
	if !f.session.Theme.IsDark() {
		t.Error("controller should keep working after detach")
	}
}
