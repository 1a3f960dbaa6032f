package theme

import "sync"

// listeners is a registry of change callbacks keyed by subscription id.
type listeners struct {
	mu     sync.Mutex
	fns    map[int]func(bool)
	nextID int
}

func (l *listeners) add(fn func(bool)) (remove func()) {
	l.mu.Lock()
	if l.fns == nil {
		l.fns = make(map[int]func(bool))
	}
	id := l.nextID
	l.nextID++
	l.fns[id] = fn
	l.mu.Unlock()

	return func() {
		l.mu.Lock()
		delete(l.fns, id)
		l.mu.Unlock()
	}
}

// notify calls every callback outside the lock so callbacks may subscribe or
// unsubscribe.
func (l *listeners) notify(dark bool) {
	l.mu.Lock()
	fns := make([]func(bool), 0, len(l.fns))
	for _, fn := range l.fns {
		fns = append(fns, fn)
	}
	l.mu.Unlock()

	for _, fn := range fns {
		fn(dark)
	}
}
