// Package transactions holds the endpoint transactions the console displays,
// loaded from a JSON export or generated as a built-in sample set.
package transactions

import (
	"encoding/json"
	"fmt"
	"math"
	"os"
	"slices"
	"strings"
	"time"

	apperrors "github.com/traceway/traceway-tui/internal/errors"
	"github.com/traceway/traceway-tui/internal/format"
	"github.com/traceway/traceway-tui/internal/sortstate"
)

// PageKey names the transactions table in persisted sort state.
const PageKey = "endpoints"

// Sortable fields, in column order.
const (
	FieldEndpoint   = "endpoint"
	FieldServer     = "server"
	FieldStatus     = "status_code"
	FieldDuration   = "duration"
	FieldRecordedAt = "recorded_at"
)

// Fields lists the sortable fields in column order.
var Fields = []string{FieldEndpoint, FieldServer, FieldStatus, FieldDuration, FieldRecordedAt}

// DefaultSort orders the table newest first.
var DefaultSort = sortstate.State{Field: FieldRecordedAt, Direction: sortstate.Desc}

// Transaction is one recorded request.
type Transaction struct {
	Endpoint   string
	Server     string
	StatusCode int
	Duration   time.Duration
	RecordedAt time.Time
	// StackTrace is the last error raised by the request, empty on success.
	StackTrace string
}

// record is the JSON form of a Transaction.
type record struct {
	Endpoint   string  `json:"endpoint"`
	Server     string  `json:"server"`
	StatusCode int     `json:"status_code"`
	DurationMs float64 `json:"duration_ms"`
	RecordedAt string  `json:"recorded_at"`
	StackTrace string  `json:"stack_trace,omitempty"`
}

// Comparators orders transactions by each sortable field.
var Comparators = sortstate.Comparators[Transaction]{
	FieldEndpoint:   sortstate.Ordered(func(t Transaction) string { return t.Endpoint }),
	FieldServer:     sortstate.Ordered(func(t Transaction) string { return t.Server }),
	FieldStatus:     sortstate.Ordered(func(t Transaction) int { return t.StatusCode }),
	FieldDuration:   sortstate.Ordered(func(t Transaction) time.Duration { return t.Duration }),
	FieldRecordedAt: func(a, b Transaction) int { return a.RecordedAt.Compare(b.RecordedAt) },
}

// Load reads a JSON array of transactions from path.
func Load(path string) ([]Transaction, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, apperrors.NewConfigError("read data file %q: %v", path, err)
	}
	return Decode(data)
}

// maxDurationMs is the longest duration_ms a time.Duration can hold.
const maxDurationMs = float64(math.MaxInt64 / int64(time.Millisecond))

// Decode parses a JSON array of transactions. Every entry needs an endpoint,
// a timestamp in one of the layouts format.ParseTimestamp accepts and a
// duration_ms between zero and maxDurationMs.
func Decode(data []byte) ([]Transaction, error) {
	var records []record
	if err := json.Unmarshal(data, &records); err != nil {
		return nil, apperrors.NewConfigError("decode transactions: %v", err)
	}

	txs := make([]Transaction, 0, len(records))
	for i, r := range records {
		if strings.TrimSpace(r.Endpoint) == "" {
			return nil, apperrors.ValidationError{Field: fmt.Sprintf("transactions[%d].endpoint", i), Message: "must not be empty"}
		}
		recordedAt, ok := format.ParseTimestamp(r.RecordedAt)
		if !ok {
			return nil, apperrors.ValidationError{Field: fmt.Sprintf("transactions[%d].recorded_at", i), Message: fmt.Sprintf("unparsable timestamp %q", r.RecordedAt)}
		}
		if r.DurationMs < 0 || r.DurationMs > maxDurationMs {
			return nil, apperrors.ValidationError{Field: fmt.Sprintf("transactions[%d].duration_ms", i), Message: fmt.Sprintf("out of range: %v", r.DurationMs)}
		}
		txs = append(txs, Transaction{
			Endpoint:   r.Endpoint,
			Server:     r.Server,
			StatusCode: r.StatusCode,
			Duration:   time.Duration(r.DurationMs * float64(time.Millisecond)),
			RecordedAt: recordedAt,
			StackTrace: r.StackTrace,
		})
	}
	return txs, nil
}

// Servers returns the distinct server names of txs in first-seen order.
func Servers(txs []Transaction) []string {
	var servers []string
	for _, t := range txs {
		if !slices.Contains(servers, t.Server) {
			servers = append(servers, t.Server)
		}
	}
	return servers
}

// Samples returns a fixed demo set recorded shortly before now.
func Samples(now time.Time) []Transaction {
	return []Transaction{
		{Endpoint: "GET /api/users", Server: "api-1", StatusCode: 200, Duration: 850 * time.Microsecond, RecordedAt: now.Add(-20 * time.Second)},
		{Endpoint: "POST /api/orders", Server: "api-2", StatusCode: 201, Duration: 142 * time.Millisecond, RecordedAt: now.Add(-4 * time.Minute)},
		{Endpoint: "GET /api/orders/:id", Server: "api-1", StatusCode: 404, Duration: 12 * time.Millisecond, RecordedAt: now.Add(-17 * time.Minute)},
		{Endpoint: "GET /login", Server: "web-1", StatusCode: 302, Duration: 3 * time.Millisecond, RecordedAt: now.Add(-48 * time.Minute)},
		{
			Endpoint: "POST /api/payments", Server: "worker-1", StatusCode: 500, Duration: 2340 * time.Millisecond, RecordedAt: now.Add(-3 * time.Hour),
			StackTrace: "runtime error: invalid memory address or nil pointer dereference\ngoroutine 42 [running]:\nmain.chargeCard(...)",
		},
		{Endpoint: "GET /api/reports", Server: "worker-1", StatusCode: 200, Duration: 9870 * time.Millisecond, RecordedAt: now.Add(-26 * time.Hour)},
		{
			Endpoint: "PUT /api/users/:id", Server: "api-2", StatusCode: 503, Duration: 30 * time.Second, RecordedAt: now.Add(-5 * 24 * time.Hour),
			StackTrace: "context deadline exceeded while waiting for database connection pool",
		},
	}
}
