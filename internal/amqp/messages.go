package amqp

import (
	"encoding/json"
	"time"
)

// LedgerEvent signals that one collection changed. Consumers reload the
// collection from storage rather than trusting event payloads, so the
// message carries only enough to identify what happened.
type LedgerEvent struct {
	Collection string    `json:"collection"`
	Action     string    `json:"action"`
	ID         string    `json:"id,omitempty"`
	Timestamp  time.Time `json:"timestamp"`
}

// NewLedgerEvent creates an event stamped with the current time.
func NewLedgerEvent(collection, action, id string) *LedgerEvent {
	return &LedgerEvent{
		Collection: collection,
		Action:     action,
		ID:         id,
		Timestamp:  time.Now(),
	}
}

// ToJSON converts the event to JSON bytes.
func (e *LedgerEvent) ToJSON() ([]byte, error) {
	return json.Marshal(e)
}

// LedgerEventFromJSON parses an event from JSON bytes.
func LedgerEventFromJSON(data []byte) (*LedgerEvent, error) {
	var ev LedgerEvent
	if err := json.Unmarshal(data, &ev); err != nil {
		return nil, err
	}
	return &ev, nil
}
