package ui

import (
	"testing"

	"github.com/charmbracelet/lipgloss"
)

func TestNewRenderer_DefaultsToDark(t *testing.T) {
	if !NewRenderer(false).IsDark() {
		t.Error("renderer should start dark")
	}

	r := &Renderer{dark: true}
	if r.Theme().Name != "dark" {
		t.Errorf("Theme().Name = %q, want dark", r.Theme().Name)
	}
	if r.TUITheme() != DarkTUITheme {
		t.Error("TUITheme() should be DarkTUITheme")
	}
}

func TestRenderer_SetDark(t *testing.T) {
	r := &Renderer{dark: true}

	r.SetDark(false)
	if r.IsDark() {
		t.Error("IsDark() = true after SetDark(false)")
	}
	if r.Theme().Name != "light" {
		t.Errorf("Theme().Name = %q, want light", r.Theme().Name)
	}
	if r.TUITheme() != LightTUITheme {
		t.Error("TUITheme() should be LightTUITheme")
	}

	r.SetDark(true)
	if r.Theme().Name != "dark" {
		t.Errorf("Theme().Name = %q, want dark", r.Theme().Name)
	}
}

func TestRenderer_NoColor(t *testing.T) {
	r := NewRenderer(true)

	if !r.NoColor() {
		t.Fatal("NoColor() = false for NewRenderer(true)")
	}
	if r.Theme().Name != "none" {
		t.Errorf("Theme().Name = %q, want none", r.Theme().Name)
	}
	if _, ok := r.TUITheme().Accent.(lipgloss.NoColor); !ok {
		t.Error("TUITheme().Accent should be lipgloss.NoColor")
	}
	if got := r.Paint(r.Theme().Error, "boom"); got != "boom" {
		t.Errorf("Paint with no color = %q, want plain text", got)
	}

	// The scheme flag still tracks even when colors are off.
	r.SetDark(false)
	if r.IsDark() {
		t.Error("IsDark() should follow SetDark with colors disabled")
	}
}

func TestRenderer_NoColorEnv(t *testing.T) {
	t.Setenv("NO_COLOR", "1")

	if r := NewRenderer(false); !r.NoColor() {
		t.Error("NO_COLOR should disable colors")
	}
}

func TestRenderer_Paint(t *testing.T) {
	r := &Renderer{dark: true}

	got := r.Paint(DarkTheme.Success, "200")
	want := DarkTheme.Success + "200" + DarkTheme.Reset
	if got != want {
		t.Errorf("Paint = %q, want %q", got, want)
	}
}
