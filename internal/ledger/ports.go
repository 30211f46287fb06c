package ledger

import "context"

// Collection keys in the durable store.
const (
	KeyTransactions = "expenses"
	KeyBudgets      = "budgets"
)

// Ports for outbound adapters.
type (
	// Collections is a key-value document store holding one JSON array per
	// collection. Writes always replace the whole document.
	Collections interface {
		// Load returns the stored document for key, with ok=false when the
		// key has never been written.
		Load(ctx context.Context, key string) (value []byte, ok bool, err error)
		// Save replaces the document stored under key.
		Save(ctx context.Context, key string, value []byte) error
	}

	// Publisher emits mutation events for downstream consumers. Events are
	// best-effort: a publish failure never fails the mutation.
	Publisher interface {
		PublishLedgerEvent(ctx context.Context, collection, action, id string) error
	}
)
