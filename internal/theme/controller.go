package theme

import (
	"sync"

	"github.com/traceway/traceway-tui/internal/logging"
	"github.com/traceway/traceway-tui/internal/storage"
)

// StorageKey is the preference key holding an explicit user choice.
const StorageKey = "theme"

// Saved preference values.
const (
	Dark  = "dark"
	Light = "light"
)

// Marker receives the resolved flag. Implementations must not call back into
// the Controller.
type Marker interface {
	SetDark(dark bool)
}

// MarkerFunc adapts a function to Marker.
type MarkerFunc func(dark bool)

// SetDark calls f.
func (f MarkerFunc) SetDark(dark bool) { f(dark) }

// Controller owns the dark/light flag. It is safe for concurrent use.
type Controller struct {
	store  storage.Store
	host   HostPreference
	marker Marker
	logger logging.Logger

	// prefMu serializes Toggle and Reset across their store writes.
	prefMu sync.Mutex

	mu       sync.Mutex
	dark     bool
	pinned   bool // an explicit choice is in force; host changes are ignored
	attached bool
	detach   func()

	subs listeners
}

// Option configures a Controller.
type Option func(*Controller)

// WithLogger sets the logger for storage failures and state changes.
func WithLogger(l logging.Logger) Option {
	return func(c *Controller) { c.logger = l }
}

// NewController wires a Controller to its store, host preference and marker.
// A nil marker is allowed when only subscribers consume the flag.
func NewController(store storage.Store, host HostPreference, marker Marker, opts ...Option) *Controller {
	if marker == nil {
		marker = MarkerFunc(func(bool) {})
	}
	c := &Controller{
		store:  store,
		host:   host,
		marker: marker,
		logger: logging.NopLogger{},
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Init resolves the initial flag, applies it to the marker and starts
// following host changes and external overrides.
//
// The returned cleanup detaches the host subscription and stops accepting
// external overrides. It must be called once when the console shuts down;
// further calls are no-ops.
func (c *Controller) Init() (cleanup func()) {
	c.mu.Lock()
	prev := c.detach
	c.detach = nil
	c.mu.Unlock()
	if prev != nil {
		prev()
	}

	// Subscribe before reading the host so a flip in between still arrives.
	unsubscribe := c.host.Subscribe(c.onHostChange)

	saved, pinned := c.saved()
	source := "host"
	if pinned {
		source = "saved"
	}
	dark := c.update(func(bool) bool {
		c.attached = true
		c.pinned = pinned
		if pinned {
			return saved == Dark
		}
		return c.host.IsDark()
	})
	c.logger.Debug("theme initialized", logging.Bool("dark", dark), logging.String("source", source))

	var once sync.Once
	detach := func() {
		once.Do(func() {
			unsubscribe()
			c.mu.Lock()
			c.attached = false
			c.mu.Unlock()
		})
	}

	c.mu.Lock()
	c.detach = detach
	c.mu.Unlock()

	return detach
}

// IsDark reports the current flag.
func (c *Controller) IsDark() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.dark
}

// Toggle flips the flag and saves the result as the user's explicit choice,
// so later host changes are ignored. A failed save is logged; the flag still
// flips and stays pinned for the session.
func (c *Controller) Toggle() {
	c.prefMu.Lock()
	defer c.prefMu.Unlock()

	dark := c.update(func(current bool) bool {
		c.pinned = true
		return !current
	})

	value := Light
	if dark {
		value = Dark
	}
	if err := c.store.Set(StorageKey, value); err != nil {
		c.logger.Warn("theme preference not saved", logging.String("theme", value), logging.Err(err))
	}
}

// SetExternal mirrors a change another component made to the visual marker.
// The flag follows it without saving anything. Overrides arriving before Init
// or after cleanup are ignored.
func (c *Controller) SetExternal(dark bool) {
	c.mu.Lock()
	attached := c.attached
	c.mu.Unlock()

	if !attached {
		return
	}
	c.set(dark)
}

// Reset forgets the saved choice and returns to following the host.
func (c *Controller) Reset() {
	c.prefMu.Lock()
	defer c.prefMu.Unlock()

	if err := c.store.Delete(StorageKey); err != nil {
		c.logger.Warn("theme preference not cleared", logging.Err(err))
	}
	c.update(func(bool) bool {
		c.pinned = false
		return c.host.IsDark()
	})
}

// Explicit returns the saved choice, if any.
func (c *Controller) Explicit() (string, bool) {
	return c.saved()
}

// Subscribe registers fn to run whenever the flag changes value.
// fn must not call Toggle or Reset. The returned function removes the
// subscription.
func (c *Controller) Subscribe(fn func(dark bool)) (unsubscribe func()) {
	return c.subs.add(fn)
}

// onHostChange applies a host preference change unless the user saved a choice.
func (c *Controller) onHostChange(dark bool) {
	_, saved := c.saved()
	ignored := saved
	c.update(func(current bool) bool {
		if ignored || c.pinned {
			ignored = true
			return current
		}
		return dark
	})
	if ignored {
		c.logger.Debug("host theme change ignored, explicit preference saved", logging.Bool("dark", dark))
	}
}

func (c *Controller) set(dark bool) {
	c.update(func(bool) bool { return dark })
}

// update computes the next flag from the current one under the lock, applies
// the marker and notifies subscribers when the value changed. The marker is always
// reapplied so it cannot drift from the flag.
func (c *Controller) update(next func(current bool) bool) bool {
	c.mu.Lock()
	dark := next(c.dark)
	changed := c.dark != dark
	c.dark = dark
	c.marker.SetDark(dark)
	c.mu.Unlock()

	if changed {
		c.subs.notify(dark)
	}
	return dark
}

// saved returns the stored preference when it is "dark" or "light".
// Read failures count as no preference.
func (c *Controller) saved() (string, bool) {
	v, ok, err := c.store.Get(StorageKey)
	if err != nil {
		c.logger.Warn("theme preference unreadable", logging.Err(err))
		return "", false
	}
	if !ok || (v != Dark && v != Light) {
		return "", false
	}
	return v, true
}
