package theme

import (
	"sync/atomic"
	"testing"
	"time"

	"github.com/charmbracelet/lipgloss"
)

type fixedBackground bool

func (b fixedBackground) HasDarkBackground() bool { return bool(b) }

func TestStaticPreference(t *testing.T) {
	t.Parallel()
	p := NewStaticPreference(false)

	var got []bool
	unsubscribe := p.Subscribe(func(dark bool) { got = append(got, dark) })

	p.Set(false) // no change
	p.Set(true)
	unsubscribe()
	p.Set(false)

	if len(got) != 1 || !got[0] {
		t.Errorf("notifications = %v, want [true]", got)
	}
	if p.IsDark() {
		t.Error("IsDark() should reflect the last Set")
	}
}

func TestTerminalPreference_DetectsOnce(t *testing.T) {
	t.Parallel()
	var calls atomic.Int32
	p := NewTerminalPreference(0, WithDetector(func() bool {
		calls.Add(1)
		return true
	}))
	defer p.Close()

	if !p.IsDark() {
		t.Error("IsDark() should return the detected value")
	}
	if calls.Load() != 1 {
		t.Errorf("detector called %d times, want 1", calls.Load())
	}
}

func TestTerminalPreference_DefaultDetectionRequeries(t *testing.T) {
	t.Parallel()
	var built int
	dark := false
	p := NewTerminalPreference(0, func(p *TerminalPreference) {
		p.source = func() backgroundSource {
			built++
			return fixedBackground(dark)
		}
	})
	defer p.Close()

	var got []bool
	p.Subscribe(func(d bool) { got = append(got, d) })

	dark = true
	p.refresh()

	if built != 2 {
		t.Errorf("background sources built = %d, want one per detection (2)", built)
	}
	if !p.IsDark() || len(got) != 1 || !got[0] {
		t.Errorf("IsDark() = %v, notifications = %v, want the flip to dark", p.IsDark(), got)
	}
}

func TestNewStdoutRenderer_NotShared(t *testing.T) {
	t.Parallel()
	a, b := newStdoutRenderer(), newStdoutRenderer()
	if a == b {
		t.Error("each detection needs its own renderer")
	}
	if a == backgroundSource(lipgloss.DefaultRenderer()) {
		t.Error("the default renderer caches its first background query")
	}
}

func TestTerminalPreference_PollsForFlips(t *testing.T) {
	t.Parallel()
	var dark atomic.Bool
	p := NewTerminalPreference(5*time.Millisecond, WithDetector(dark.Load))

	changed := make(chan bool, 1)
	p.Subscribe(func(d bool) {
		select {
		case changed <- d:
		default:
		}
	})

	dark.Store(true)

	select {
	case d := <-changed:
		if !d {
			t.Error("expected a flip to dark")
		}
	case <-time.After(2 * time.Second):
		t.Fatal("no change reported")
	}

	if err := p.Close(); err != nil {
		t.Errorf("Close: %v", err)
	}
	if err := p.Close(); err != nil {
		t.Errorf("second Close: %v", err)
	}
}

func TestEnvPreference(t *testing.T) {
	t.Parallel()
	tests := []struct {
		name      string
		env       string
		fallback  bool
		want      bool
		followsFB bool
	}{
		{"forced dark", "dark", false, true, false},
		{"forced light, mixed case", " Light ", true, false, false},
		{"unset follows fallback", "", true, true, true},
		{"unknown follows fallback", "auto", false, false, true},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			fb := NewStaticPreference(tt.fallback)
			p := NewEnvPreference(fb)
			p.getenv = func(string) string { return tt.env }

			if p.IsDark() != tt.want {
				t.Errorf("IsDark() = %v, want %v", p.IsDark(), tt.want)
			}

			var notified bool
			unsubscribe := p.Subscribe(func(bool) { notified = true })
			defer unsubscribe()
			fb.Set(!tt.fallback)
			if notified != tt.followsFB {
				t.Errorf("notified = %v, want %v", notified, tt.followsFB)
			}
		})
	}
}
