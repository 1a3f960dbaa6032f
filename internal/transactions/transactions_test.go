package transactions

import (
	"errors"
	"os"
	"path/filepath"
	"testing"
	"time"

	apperrors "github.com/traceway/traceway-tui/internal/errors"
	"github.com/traceway/traceway-tui/internal/sortstate"
)

func TestDecode(t *testing.T) {
	t.Parallel()
	data := []byte(`[
		{"endpoint":"GET /a","server":"api-1","status_code":200,"duration_ms":1.5,"recorded_at":"2026-03-14T11:55:00Z"},
		{"endpoint":"GET /b","server":"api-2","status_code":500,"duration_ms":0.25,"recorded_at":"2026-03-14 10:00:00","stack_trace":"boom"}
	]`)

	txs, err := Decode(data)
	if err != nil {
		t.Fatalf("Decode: %v", err)
	}
	if len(txs) != 2 {
		t.Fatalf("len = %d, want 2", len(txs))
	}
	if txs[0].Duration != 1500*time.Microsecond {
		t.Errorf("Duration = %v, want 1.5ms", txs[0].Duration)
	}
	if !txs[1].RecordedAt.Equal(time.Date(2026, 3, 14, 10, 0, 0, 0, time.UTC)) {
		t.Errorf("RecordedAt = %v", txs[1].RecordedAt)
	}
	if txs[1].StackTrace != "boom" {
		t.Errorf("StackTrace = %q, want boom", txs[1].StackTrace)
	}
}

func TestDecode_Errors(t *testing.T) {
	t.Parallel()
	tests := []struct {
		name  string
		data  string
		field string
	}{
		{"not json", `{`, ""},
		{"missing endpoint", `[{"recorded_at":"2026-03-14T11:55:00Z"}]`, "transactions[0].endpoint"},
		{"bad timestamp", `[{"endpoint":"GET /","recorded_at":"yesterday"}]`, "transactions[0].recorded_at"},
		{"negative duration", `[{"endpoint":"GET /","duration_ms":12,"recorded_at":"2026-03-14T11:55:00Z"},{"endpoint":"GET /","duration_ms":-0.5,"recorded_at":"2026-03-14T11:55:00Z"}]`, "transactions[1].duration_ms"},
		{"overflowing duration", `[{"endpoint":"GET /","duration_ms":1e300,"recorded_at":"2026-03-14T11:55:00Z"}]`, "transactions[0].duration_ms"},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			_, err := Decode([]byte(tt.data))
			if err == nil {
				t.Fatal("expected error")
			}
			if tt.field == "" {
				var cfgErr apperrors.ConfigError
				if !errors.As(err, &cfgErr) {
					t.Errorf("error = %T, want ConfigError", err)
				}
				return
			}
			var v apperrors.ValidationError
			if !errors.As(err, &v) || v.Field != tt.field {
				t.Errorf("error = %v, want validation error on %s", err, tt.field)
			}
		})
	}
}

func TestLoad(t *testing.T) {
	t.Parallel()
	path := filepath.Join(t.TempDir(), "tx.json")
	if err := os.WriteFile(path, []byte(`[{"endpoint":"GET /","recorded_at":"2026-03-14T11:55:00Z"}]`), 0o600); err != nil {
		t.Fatal(err)
	}

	txs, err := Load(path)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if len(txs) != 1 || txs[0].Endpoint != "GET /" {
		t.Errorf("txs = %+v", txs)
	}

	if _, err := Load(filepath.Join(t.TempDir(), "missing.json")); err == nil {
		t.Error("expected error for missing file")
	}
}

func TestServers(t *testing.T) {
	t.Parallel()
	txs := []Transaction{{Server: "b"}, {Server: "a"}, {Server: "b"}, {Server: "c"}}
	got := Servers(txs)
	want := []string{"b", "a", "c"}
	if len(got) != len(want) {
		t.Fatalf("Servers = %v, want %v", got, want)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("Servers[%d] = %q, want %q", i, got[i], want[i])
		}
	}
}

func TestComparators_CoverEveryField(t *testing.T) {
	t.Parallel()
	for _, f := range Fields {
		if _, ok := Comparators[f]; !ok {
			t.Errorf("no comparator for %q", f)
		}
	}
	if _, ok := Comparators[DefaultSort.Field]; !ok {
		t.Errorf("default sort field %q has no comparator", DefaultSort.Field)
	}
}

func TestSamples_SortByDuration(t *testing.T) {
	t.Parallel()
	now := time.Date(2026, 3, 14, 12, 0, 0, 0, time.UTC)
	txs := Samples(now)

	sortstate.Sort(txs, sortstate.State{Field: FieldDuration, Direction: sortstate.Asc}, Comparators)
	for i := 1; i < len(txs); i++ {
		if txs[i-1].Duration > txs[i].Duration {
			t.Fatalf("not ascending at %d: %v > %v", i, txs[i-1].Duration, txs[i].Duration)
		}
	}

	sortstate.Sort(txs, DefaultSort, Comparators)
	for i := 1; i < len(txs); i++ {
		if txs[i-1].RecordedAt.Before(txs[i].RecordedAt) {
			t.Fatalf("not newest first at %d", i)
		}
	}
}
