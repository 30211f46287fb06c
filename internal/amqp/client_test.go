package amqp

import (
	"errors"
	"fmt"
	"net"
	"testing"
	"time"
)

func TestExponentialBackoff(t *testing.T) {
	tests := []struct {
		attempt  int
		expected time.Duration
	}{
		{0, 1 * time.Second},
		{1, 2 * time.Second},
		{2, 4 * time.Second},
		{3, 8 * time.Second},
		{4, 16 * time.Second},
		{5, 30 * time.Second},  // capped at 30s
		{10, 30 * time.Second}, // capped at 30s
		{63, 30 * time.Second}, // shift overflow still capped
	}

	for _, tt := range tests {
		t.Run(fmt.Sprintf("attempt_%d", tt.attempt), func(t *testing.T) {
			result := exponentialBackoff(tt.attempt)
			if result != tt.expected {
				t.Errorf("exponentialBackoff(%d) = %v, want %v", tt.attempt, result, tt.expected)
			}
		})
	}
}

type fakeNetError struct{}

func (fakeNetError) Error() string   { return "read tcp: broken pipe" }
func (fakeNetError) Timeout() bool   { return false }
func (fakeNetError) Temporary() bool { return true }

func TestIsConnectionError(t *testing.T) {
	var _ net.Error = fakeNetError{}

	tests := []struct {
		name     string
		err      error
		expected bool
	}{
		{"nil error", nil, false},
		{"net error", fakeNetError{}, true},
		{"wrapped net error", fmt.Errorf("consume: %w", fakeNetError{}), true},
		{"connection refused text", errors.New("dial tcp 127.0.0.1:5672: connection refused"), true},
		{"closed channel text", errors.New("message channel closed"), true},
		{"ordinary error", errors.New("validation failed"), false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := isConnectionError(tt.err); got != tt.expected {
				t.Errorf("isConnectionError(%v) = %v, want %v", tt.err, got, tt.expected)
			}
		})
	}
}

func TestNewLedgerEvent(t *testing.T) {
	ev := NewLedgerEvent("expenses", "created", "tx-1")

	if ev.Collection != "expenses" || ev.Action != "created" || ev.ID != "tx-1" {
		t.Errorf("unexpected event %+v", ev)
	}
	if ev.Timestamp.IsZero() {
		t.Error("NewLedgerEvent() Timestamp should not be zero")
	}
	if time.Since(ev.Timestamp) > time.Second {
		t.Error("NewLedgerEvent() Timestamp should be recent")
	}
}

func TestLedgerEventJSON(t *testing.T) {
	timestamp := time.Date(2024, 1, 1, 12, 0, 0, 0, time.UTC)
	ev := &LedgerEvent{
		Collection: "budgets",
		Action:     "upserted",
		ID:         "Shopping",
		Timestamp:  timestamp,
	}

	jsonBytes, err := ev.ToJSON()
	if err != nil {
		t.Fatalf("ToJSON() error = %v", err)
	}

	parsed, err := LedgerEventFromJSON(jsonBytes)
	if err != nil {
		t.Fatalf("LedgerEventFromJSON() error = %v", err)
	}

	if parsed.Collection != ev.Collection || parsed.Action != ev.Action || parsed.ID != ev.ID {
		t.Errorf("parsed event = %+v, want %+v", parsed, ev)
	}
	if !parsed.Timestamp.Equal(ev.Timestamp) {
		t.Errorf("parsed Timestamp = %v, want %v", parsed.Timestamp, ev.Timestamp)
	}
}

func TestLedgerEventFromJSONInvalid(t *testing.T) {
	if _, err := LedgerEventFromJSON([]byte("{broken")); err == nil {
		t.Error("expected error for malformed JSON")
	}
}
