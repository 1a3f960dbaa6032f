// Package sortstate remembers how each console table is sorted.
//
// Every table (page) keeps its own field and direction in the preference
// store under "traceway_sort_<pageKey>". Reads never fail: anything missing,
// unreadable or invalid falls back to the caller's default.
package sortstate

import (
	"cmp"
	"encoding/json"
	"slices"

	"github.com/traceway/traceway-tui/internal/logging"
	"github.com/traceway/traceway-tui/internal/storage"
)

// KeyPrefix namespaces sort entries in the preference store.
const KeyPrefix = "traceway_sort_"

// Direction is the sort order of a column.
type Direction string

const (
	Asc  Direction = "asc"
	Desc Direction = "desc"
)

// DefaultDirection is applied when a new column is clicked.
const DefaultDirection = Desc

// Valid reports whether d is Asc or Desc.
func (d Direction) Valid() bool {
	return d == Asc || d == Desc
}

// State is the persisted sort of one table.
type State struct {
	Field     string    `json:"field"`
	Direction Direction `json:"direction"`
}

// Store reads and writes per-page sort state.
type Store struct {
	store  storage.Store
	logger logging.Logger
}

// Option configures a Store.
type Option func(*Store)

// WithLogger sets the logger used to report swallowed storage failures.
func WithLogger(l logging.Logger) Option {
	return func(s *Store) { s.logger = l }
}

// NewStore creates a Store on top of a preference store.
func NewStore(store storage.Store, opts ...Option) *Store {
	s := &Store{store: store, logger: logging.NopLogger{}}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Get returns the saved state for pageKey, or def when nothing usable is saved.
// A saved entry is usable when it decodes as JSON, names a field and has a
// valid direction.
func (s *Store) Get(pageKey string, def State) State {
	key := KeyPrefix + pageKey

	raw, ok, err := s.store.Get(key)
	if err != nil {
		s.logger.Debug("sort state read failed", logging.String("key", key), logging.Err(err))
		return def
	}
	if !ok || raw == "" {
		return def
	}

	var st State
	if err := json.Unmarshal([]byte(raw), &st); err != nil {
		s.logger.Debug("sort state is not valid JSON", logging.String("key", key), logging.Err(err))
		return def
	}
	if st.Field == "" || !st.Direction.Valid() {
		return def
	}
	return st
}

// Set saves state for pageKey. Failures are logged and otherwise ignored.
func (s *Store) Set(pageKey string, state State) {
	key := KeyPrefix + pageKey

	raw, err := json.Marshal(state)
	if err != nil {
		s.logger.Debug("sort state encode failed", logging.String("key", key), logging.Err(err))
		return
	}
	if err := s.store.Set(key, string(raw)); err != nil {
		s.logger.Debug("sort state write failed", logging.String("key", key), logging.Err(err))
	}
}

// Click applies HandleClick to the saved state of pageKey, saves the result
// and returns it.
func (s *Store) Click(pageKey, field string, def State, defaultDirection Direction) State {
	current := s.Get(pageKey, def)
	next := HandleClick(field, current.Field, current.Direction, defaultDirection)
	s.Set(pageKey, next)
	return next
}

// ToggleDirection flips between Asc and Desc.
func ToggleDirection(current Direction) Direction {
	if current == Asc {
		return Desc
	}
	return Asc
}

// HandleClick computes the state after a click on a column header: clicking
// the active field flips its direction, clicking another field selects it
// with defaultDirection.
func HandleClick(field, currentField string, currentDirection, defaultDirection Direction) State {
	if field == currentField {
		return State{Field: field, Direction: ToggleDirection(currentDirection)}
	}
	return State{Field: field, Direction: defaultDirection}
}

// Comparators maps field names to three-way comparison functions.
type Comparators[T any] map[string]func(a, b T) int

// Sort stably orders items in place by state. Items are left untouched when
// state names a field without a comparator.
func Sort[T any](items []T, state State, by Comparators[T]) {
	compare, ok := by[state.Field]
	if !ok {
		return
	}
	slices.SortStableFunc(items, func(a, b T) int {
		if state.Direction == Desc {
			return compare(b, a)
		}
		return compare(a, b)
	})
}

// Ordered adapts a field accessor into a comparator for cmp.Ordered values.
func Ordered[T any, V cmp.Ordered](field func(T) V) func(a, b T) int {
	return func(a, b T) int {
		return cmp.Compare(field(a), field(b))
	}
}
