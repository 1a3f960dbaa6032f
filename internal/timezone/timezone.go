package timezone

import (
	"os"
	"strings"
	"sync"
	"time"

	"github.com/traceway/traceway-tui/internal/logging"
	"github.com/traceway/traceway-tui/internal/storage"
)

// StorageKey is the preference key holding the selected zone.
const StorageKey = "timezone"

// DefaultZone is used when neither the store nor the host supplies a zone.
const DefaultZone = "UTC"

// State is the selected display time zone. It is safe for concurrent use.
type State struct {
	mu       sync.RWMutex
	store    storage.Store
	logger   logging.Logger
	hostZone func() string
	zone     string

	subs   map[int]func(string)
	nextID int
}

// Option configures a State.
type Option func(*State)

// WithLogger sets the logger for storage failures and unknown zones.
func WithLogger(l logging.Logger) Option {
	return func(s *State) { s.logger = l }
}

// WithHostZone replaces host zone detection.
func WithHostZone(fn func() string) Option {
	return func(s *State) { s.hostZone = fn }
}

// New creates a State backed by store. Call Init before use.
func New(store storage.Store, opts ...Option) *State {
	s := &State{
		store:    store,
		logger:   logging.NopLogger{},
		hostZone: HostZone,
		subs:     make(map[int]func(string)),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Init loads the saved zone, falling back to the host zone.
func (s *State) Init() {
	stored, _, err := s.store.Get(StorageKey)
	if err != nil {
		s.logger.Warn("timezone preference unreadable, using host zone", logging.Err(err))
		stored = ""
	}

	zone := stored
	if zone == "" {
		zone = s.hostZone()
	}

	s.mu.Lock()
	s.zone = zone
	s.mu.Unlock()

	s.logger.Debug("timezone initialized", logging.String("zone", zone), logging.Bool("stored", stored != ""))
}

// Get returns the selected zone identifier. It is never empty.
func (s *State) Get() string {
	s.mu.RLock()
	zone := s.zone
	s.mu.RUnlock()

	if zone == "" {
		if zone = s.hostZone(); zone == "" {
			zone = DefaultZone
		}
	}
	return zone
}

// Set selects tz and saves it. The identifier is not validated; a storage
// failure is logged and the in-memory selection still changes.
func (s *State) Set(tz string) {
	s.mu.Lock()
	s.zone = tz
	subs := make([]func(string), 0, len(s.subs))
	for _, fn := range s.subs {
		subs = append(subs, fn)
	}
	s.mu.Unlock()

	if err := s.store.Set(StorageKey, tz); err != nil {
		s.logger.Warn("timezone preference not saved", logging.String("zone", tz), logging.Err(err))
	}

	for _, fn := range subs {
		fn(tz)
	}
}

// Subscribe registers fn to run after every Set. The returned function
// removes the subscription and may be called more than once.
func (s *State) Subscribe(fn func(zone string)) (unsubscribe func()) {
	s.mu.Lock()
	id := s.nextID
	s.nextID++
	s.subs[id] = fn
	s.mu.Unlock()

	return func() {
		s.mu.Lock()
		delete(s.subs, id)
		s.mu.Unlock()
	}
}

// Location resolves the selected zone. Identifiers the zone database does
// not know resolve to UTC.
func (s *State) Location() *time.Location {
	zone := s.Get()
	loc, err := time.LoadLocation(zone)
	if err != nil {
		s.logger.Warn("unknown time zone, rendering in UTC", logging.String("zone", zone), logging.Err(err))
		return time.UTC
	}
	return loc
}

// Format renders t in the selected zone.
func (s *State) Format(t time.Time, layout string) string {
	return t.In(s.Location()).Format(layout)
}

// HostZone reports the host's IANA zone name, or DefaultZone when the host
// does not expose one.
func HostZone() string {
	return hostZoneFrom(os.Getenv, time.Local, os.Readlink)
}

// hostZoneFrom checks, in order: the TZ variable, the name of the local
// location, and the /etc/localtime symlink target.
func hostZoneFrom(getenv func(string) string, local *time.Location, readlink func(string) (string, error)) string {
	if tz := strings.TrimPrefix(getenv("TZ"), ":"); tz != "" && !strings.HasPrefix(tz, "/") {
		return tz
	}

	if local != nil {
		if name := local.String(); name != "" && name != "Local" {
			return name
		}
	}

	if target, err := readlink("/etc/localtime"); err == nil {
		if _, zone, found := strings.Cut(target, "zoneinfo/"); found && zone != "" {
			return zone
		}
	}

	return DefaultZone
}
