package tui

import (
	"sync"

	tea "github.com/charmbracelet/bubbletea"
)

// programRef is a shared reference to the tea.Program.
// Because bubbletea copies the model on every Update, we need a pointer
// that survives copies so preference subscribers can send messages.
type programRef struct {
	mu      sync.RWMutex
	program *tea.Program
}

// SetProgram sets the tea.Program reference (thread-safe).
func (r *programRef) SetProgram(p *tea.Program) {
	r.mu.Lock()
	r.program = p
	r.mu.Unlock()
}

// Send sends a message to the bubbletea program (thread-safe).
// It is a no-op until SetProgram has been called.
func (r *programRef) Send(msg tea.Msg) {
	r.mu.RLock()
	p := r.program
	r.mu.RUnlock()
	if p != nil {
		p.Send(msg)
	}
}

// bridge forwards preference changes into the program as messages.
// Subscribers may run on the program's own goroutine (a key press toggling
// the theme), so delivery happens on a fresh goroutine to avoid blocking
// the event loop on its own channel.
func (s Session) bridge(ref *programRef) (detach func()) {
	var unsubs []func()
	if s.Theme != nil {
		unsubs = append(unsubs, s.Theme.Subscribe(func(dark bool) {
			go ref.Send(ThemeChangedMsg{Dark: dark})
		}))
	}
	if s.Zone != nil {
		unsubs = append(unsubs, s.Zone.Subscribe(func(zone string) {
			go ref.Send(ZoneChangedMsg{Zone: zone})
		}))
	}
	return func() {
		for _, u := range unsubs {
			u()
		}
	}
}
