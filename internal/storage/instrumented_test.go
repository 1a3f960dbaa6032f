package storage

import (
	"errors"
	"testing"

	"github.com/golang/mock/gomock"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"

	"github.com/traceway/traceway-tui/internal/storage/mocks"
)

func TestInstrumented_CountsResults(t *testing.T) {
	reg := prometheus.NewRegistry()
	s, err := NewInstrumented(NewMemoryStore(), reg)
	if err != nil {
		t.Fatalf("NewInstrumented: %v", err)
	}

	s.Get("theme")
	s.Set("theme", "dark")
	s.Get("theme")
	s.Delete("theme")

	tests := []struct {
		op, result string
		want       float64
	}{
		{"get", resultMiss, 1},
		{"get", resultOK, 1},
		{"set", resultOK, 1},
		{"delete", resultOK, 1},
		{"set", resultError, 0},
	}
	for _, tt := range tests {
		got := testutil.ToFloat64(s.Operations().WithLabelValues(tt.op, tt.result))
		if got != tt.want {
			t.Errorf("%s/%s = %v, want %v", tt.op, tt.result, got, tt.want)
		}
	}
}

func TestInstrumented_CountsBackendErrors(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	backendErr := errors.New("read-only file system")
	mock := mocks.NewMockStore(ctrl)
	mock.EXPECT().Set("theme", "dark").Return(backendErr)
	mock.EXPECT().Get("theme").Return("", false, backendErr)
	mock.EXPECT().Close().Return(nil)

	s, err := NewInstrumented(mock, prometheus.NewRegistry())
	if err != nil {
		t.Fatalf("NewInstrumented: %v", err)
	}

	if err := s.Set("theme", "dark"); !errors.Is(err, backendErr) {
		t.Errorf("Set err = %v, want backend error", err)
	}
	if _, _, err := s.Get("theme"); !errors.Is(err, backendErr) {
		t.Errorf("Get err = %v, want backend error", err)
	}
	if err := s.Close(); err != nil {
		t.Errorf("Close: %v", err)
	}

	if got := testutil.ToFloat64(s.Operations().WithLabelValues("set", resultError)); got != 1 {
		t.Errorf("set/error = %v, want 1", got)
	}
	if got := testutil.ToFloat64(s.Operations().WithLabelValues("get", resultError)); got != 1 {
		t.Errorf("get/error = %v, want 1", got)
	}
}

func TestInstrumented_ReusesRegisteredCollector(t *testing.T) {
	reg := prometheus.NewRegistry()

	first, err := NewInstrumented(NewMemoryStore(), reg)
	if err != nil {
		t.Fatalf("first NewInstrumented: %v", err)
	}
	second, err := NewInstrumented(NewMemoryStore(), reg)
	if err != nil {
		t.Fatalf("second NewInstrumented: %v", err)
	}

	first.Set("a", "1")
	second.Set("b", "2")

	if got := testutil.ToFloat64(first.Operations().WithLabelValues("set", resultOK)); got != 2 {
		t.Errorf("shared set/ok = %v, want 2", got)
	}
}
