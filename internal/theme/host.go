package theme

import (
	"os"
	"strings"
	"sync"
	"time"

	"github.com/charmbracelet/lipgloss"
)

// HostPreference is the environment's dark/light preference, such as the
// terminal background.
type HostPreference interface {
	// IsDark reports the current host preference.
	IsDark() bool
	// Subscribe registers fn to run when the host preference changes and
	// returns a function that removes it.
	Subscribe(fn func(dark bool)) (unsubscribe func())
}

// StaticPreference is a host preference that only changes through Set.
// It serves forced modes and tests.
type StaticPreference struct {
	mu   sync.Mutex
	dark bool
	subs listeners
}

// NewStaticPreference returns a StaticPreference reporting dark.
func NewStaticPreference(dark bool) *StaticPreference {
	return &StaticPreference{dark: dark}
}

// IsDark reports the current value.
func (p *StaticPreference) IsDark() bool {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.dark
}

// Set changes the value and notifies subscribers if it differs.
func (p *StaticPreference) Set(dark bool) {
	p.mu.Lock()
	changed := p.dark != dark
	p.dark = dark
	p.mu.Unlock()

	if changed {
		p.subs.notify(dark)
	}
}

// Subscribe registers fn for changes made with Set.
func (p *StaticPreference) Subscribe(fn func(dark bool)) func() {
	return p.subs.add(fn)
}

// TerminalPreference reads the terminal background through lipgloss. With a
// positive poll interval it re-checks periodically and reports flips; the
// terminal offers no change notification of its own.
type TerminalPreference struct {
	detect func() bool
	source func() backgroundSource

	mu   sync.Mutex
	dark bool
	subs listeners

	stop     chan struct{}
	stopOnce sync.Once
	wg       sync.WaitGroup
}

// TerminalOption configures a TerminalPreference.
type TerminalOption func(*TerminalPreference)

// WithDetector replaces terminal background detection.
func WithDetector(detect func() bool) TerminalOption {
	return func(p *TerminalPreference) { p.detect = detect }
}

// backgroundSource answers a background query. *lipgloss.Renderer
// implements it.
type backgroundSource interface {
	HasDarkBackground() bool
}

// newStdoutRenderer returns a renderer on stdout. A lipgloss renderer
// queries the terminal background once and caches the answer, so detection
// builds a new one every time.
func newStdoutRenderer() backgroundSource {
	return lipgloss.NewRenderer(os.Stdout)
}

// NewTerminalPreference detects the background once and, when interval is
// positive, keeps polling until Close.
func NewTerminalPreference(interval time.Duration, opts ...TerminalOption) *TerminalPreference {
	p := &TerminalPreference{
		source: newStdoutRenderer,
		stop:   make(chan struct{}),
	}
	for _, opt := range opts {
		opt(p)
	}
	if p.detect == nil {
		p.detect = func() bool { return p.source().HasDarkBackground() }
	}
	p.dark = p.detect()

	if interval > 0 {
		p.wg.Add(1)
		go p.poll(interval)
	}
	return p
}

// IsDark reports the most recent detection.
func (p *TerminalPreference) IsDark() bool {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.dark
}

// Subscribe registers fn for detected flips.
func (p *TerminalPreference) Subscribe(fn func(dark bool)) func() {
	return p.subs.add(fn)
}

// Close stops polling and waits for the poller to exit.
func (p *TerminalPreference) Close() error {
	p.stopOnce.Do(func() { close(p.stop) })
	p.wg.Wait()
	return nil
}

func (p *TerminalPreference) poll(interval time.Duration) {
	defer p.wg.Done()
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-p.stop:
			return
		case <-ticker.C:
			p.refresh()
		}
	}
}

// refresh re-runs detection and notifies subscribers on a flip.
func (p *TerminalPreference) refresh() {
	dark := p.detect()

	p.mu.Lock()
	changed := p.dark != dark
	p.dark = dark
	p.mu.Unlock()

	if changed {
		p.subs.notify(dark)
	}
}

// ColorSchemeEnv forces the host preference when set to "dark" or "light".
const ColorSchemeEnv = "TRACEWAY_COLOR_SCHEME"

// EnvPreference lets the TRACEWAY_COLOR_SCHEME variable override another host
// preference. While the variable forces a value no changes are reported.
type EnvPreference struct {
	fallback HostPreference
	getenv   func(string) string
}

// NewEnvPreference wraps fallback with the environment override.
func NewEnvPreference(fallback HostPreference) *EnvPreference {
	return &EnvPreference{fallback: fallback, getenv: os.Getenv}
}

func (p *EnvPreference) forced() (dark, ok bool) {
	switch strings.ToLower(strings.TrimSpace(p.getenv(ColorSchemeEnv))) {
	case Dark:
		return true, true
	case Light:
		return false, true
	}
	return false, false
}

// IsDark returns the forced value or the fallback's.
func (p *EnvPreference) IsDark() bool {
	if dark, ok := p.forced(); ok {
		return dark
	}
	return p.fallback.IsDark()
}

// Subscribe forwards to the fallback unless the value is forced.
func (p *EnvPreference) Subscribe(fn func(dark bool)) func() {
	if _, ok := p.forced(); ok {
		return func() {}
	}
	return p.fallback.Subscribe(fn)
}
