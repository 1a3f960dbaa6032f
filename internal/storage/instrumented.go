package storage

import (
	"errors"

	"github.com/prometheus/client_golang/prometheus"
)

// Operation result labels.
const (
	resultOK    = "ok"
	resultMiss  = "miss"
	resultError = "error"
)

// Instrumented wraps a Store and counts every operation by kind and result.
// Preference writes fail silently at the call sites, so these counters are the
// only trace of a misbehaving backend.
type Instrumented struct {
	inner Store
	ops   *prometheus.CounterVec
}

// Compile-time interface guard.
var _ Store = (*Instrumented)(nil)

// NewInstrumented registers traceway_storage_operations_total on reg and
// returns the wrapped store. A collector already registered by an earlier
// wrapper is reused.
func NewInstrumented(inner Store, reg prometheus.Registerer) (*Instrumented, error) {
	ops := prometheus.NewCounterVec(prometheus.CounterOpts{
		Namespace: "traceway",
		Subsystem: "storage",
		Name:      "operations_total",
		Help:      "Preference store operations by kind and result.",
	}, []string{"op", "result"})

	if err := reg.Register(ops); err != nil {
		var are prometheus.AlreadyRegisteredError
		if !errors.As(err, &are) {
			return nil, err
		}
		existing, ok := are.ExistingCollector.(*prometheus.CounterVec)
		if !ok {
			return nil, err
		}
		ops = existing
	}

	return &Instrumented{inner: inner, ops: ops}, nil
}

// Operations exposes the underlying counter vector.
func (i *Instrumented) Operations() *prometheus.CounterVec { return i.ops }

// Get delegates to the wrapped store.
func (i *Instrumented) Get(key string) (string, bool, error) {
	v, ok, err := i.inner.Get(key)
	switch {
	case err != nil:
		i.ops.WithLabelValues("get", resultError).Inc()
	case !ok:
		i.ops.WithLabelValues("get", resultMiss).Inc()
	default:
		i.ops.WithLabelValues("get", resultOK).Inc()
	}
	return v, ok, err
}

// Set delegates to the wrapped store.
func (i *Instrumented) Set(key, value string) error {
	err := i.inner.Set(key, value)
	i.ops.WithLabelValues("set", resultLabel(err)).Inc()
	return err
}

// Delete delegates to the wrapped store.
func (i *Instrumented) Delete(key string) error {
	err := i.inner.Delete(key)
	i.ops.WithLabelValues("delete", resultLabel(err)).Inc()
	return err
}

// Close closes the wrapped store.
func (i *Instrumented) Close() error {
	return i.inner.Close()
}

func resultLabel(err error) string {
	if err != nil {
		return resultError
	}
	return resultOK
}
