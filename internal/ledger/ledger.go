// Package ledger holds the two mutable collections, transactions and
// budgets, behind validated mutation operations. Every successful mutation
// rewrites the affected collection in the durable store and bumps a version
// counter that read-side caches key on.
package ledger

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"tally/internal/core"
)

// Event actions published after successful mutations.
const (
	ActionCreated  = "created"
	ActionDeleted  = "deleted"
	ActionUpserted = "upserted"
)

// Ledger owns the transaction and budget collections. All mutations are
// serialized through one mutex; reads hand out snapshot copies.
type Ledger struct {
	mu      sync.Mutex
	store   Collections
	pub     Publisher
	txs     []core.Transaction
	budgets []core.Budget
	version uint64

	now func() time.Time
}

// Open loads both collections from the store. A missing key yields an empty
// collection; malformed JSON is a startup error. Records that fail
// structural validation are dropped with a warning rather than admitted.
func Open(ctx context.Context, store Collections, pub Publisher) (*Ledger, error) {
	l := &Ledger{store: store, pub: pub, now: time.Now}

	if err := loadCollection(ctx, store, KeyTransactions, &l.txs); err != nil {
		return nil, err
	}
	if err := loadCollection(ctx, store, KeyBudgets, &l.budgets); err != nil {
		return nil, err
	}
	l.txs = validTransactions(ctx, l.txs)
	l.budgets = validBudgets(ctx, l.budgets)

	slog.InfoContext(ctx, "Ledger loaded",
		"transactions", len(l.txs),
		"budgets", len(l.budgets))
	return l, nil
}

func loadCollection[T any](ctx context.Context, store Collections, key string, dst *[]T) error {
	data, ok, err := store.Load(ctx, key)
	if err != nil {
		return fmt.Errorf("load %s: %w", key, err)
	}
	if !ok {
		*dst = nil
		return nil
	}
	if err := json.Unmarshal(data, dst); err != nil {
		return fmt.Errorf("parse %s collection: %w", key, err)
	}
	return nil
}

func validTransactions(ctx context.Context, in []core.Transaction) []core.Transaction {
	out := in[:0]
	for _, tx := range in {
		if err := tx.Validate(); err != nil {
			slog.WarnContext(ctx, "Dropping invalid stored transaction",
				"id", tx.ID, "error", err)
			continue
		}
		out = append(out, tx)
	}
	return out
}

func validBudgets(ctx context.Context, in []core.Budget) []core.Budget {
	seen := make(map[core.Category]bool, len(in))
	out := in[:0]
	for _, b := range in {
		if err := b.Validate(); err != nil {
			slog.WarnContext(ctx, "Dropping invalid stored budget",
				"category", b.Category, "error", err)
			continue
		}
		if seen[b.Category] {
			slog.WarnContext(ctx, "Dropping duplicate stored budget",
				"category", b.Category)
			continue
		}
		seen[b.Category] = true
		out = append(out, b)
	}
	return out
}

// AddTransaction validates the form, prepends the new transaction (newest
// first) and persists the collection. The form's defaults apply for absent
// optional fields.
func (l *Ledger) AddTransaction(ctx context.Context, form core.TransactionForm) (core.Transaction, error) {
	l.mu.Lock()
	defer l.mu.Unlock()

	tx, err := form.Build(l.now())
	if err != nil {
		return core.Transaction{}, err
	}

	next := make([]core.Transaction, 0, len(l.txs)+1)
	next = append(next, tx)
	next = append(next, l.txs...)

	if err := l.persist(ctx, KeyTransactions, next); err != nil {
		return core.Transaction{}, err
	}
	l.txs = next
	l.version++

	slog.InfoContext(ctx, "Transaction added",
		"id", tx.ID,
		"amount", tx.Amount,
		"category", tx.Category,
		"type", tx.Type)
	l.publish(ctx, KeyTransactions, ActionCreated, tx.ID)
	return tx, nil
}

// DeleteTransaction removes the transaction with the given id. A missing id
// is a no-op, not an error; nothing is persisted or published in that case.
func (l *Ledger) DeleteTransaction(ctx context.Context, id string) (bool, error) {
	l.mu.Lock()
	defer l.mu.Unlock()

	idx := -1
	for i, tx := range l.txs {
		if tx.ID == id {
			idx = i
			break
		}
	}
	if idx < 0 {
		return false, nil
	}

	next := make([]core.Transaction, 0, len(l.txs)-1)
	next = append(next, l.txs[:idx]...)
	next = append(next, l.txs[idx+1:]...)

	if err := l.persist(ctx, KeyTransactions, next); err != nil {
		return false, err
	}
	l.txs = next
	l.version++

	slog.InfoContext(ctx, "Transaction deleted", "id", id)
	l.publish(ctx, KeyTransactions, ActionDeleted, id)
	return true, nil
}

// UpsertBudget sets the monthly limit for a category. An existing budget is
// replaced in place, preserving its position; otherwise the budget is
// appended. A non-positive limit or unknown category is rejected unchanged.
func (l *Ledger) UpsertBudget(ctx context.Context, b core.Budget) error {
	if err := b.Validate(); err != nil {
		return err
	}

	l.mu.Lock()
	defer l.mu.Unlock()

	next := make([]core.Budget, len(l.budgets))
	copy(next, l.budgets)

	replaced := false
	for i := range next {
		if next[i].Category == b.Category {
			next[i] = b
			replaced = true
			break
		}
	}
	if !replaced {
		next = append(next, b)
	}

	if err := l.persist(ctx, KeyBudgets, next); err != nil {
		return err
	}
	l.budgets = next
	l.version++

	slog.InfoContext(ctx, "Budget upserted",
		"category", b.Category,
		"limit", b.Limit,
		"replaced", replaced)
	l.publish(ctx, KeyBudgets, ActionUpserted, string(b.Category))
	return nil
}

// persist rewrites one collection in the durable store. The in-memory slice
// is only swapped in after the write succeeds, keeping memory and store
// consistent.
func (l *Ledger) persist(ctx context.Context, key string, v any) error {
	data, err := json.Marshal(v)
	if err != nil {
		return fmt.Errorf("marshal %s: %w", key, err)
	}
	if err := l.store.Save(ctx, key, data); err != nil {
		return fmt.Errorf("save %s: %w", key, err)
	}
	return nil
}

func (l *Ledger) publish(ctx context.Context, collection, action, id string) {
	if l.pub == nil {
		return
	}
	if err := l.pub.PublishLedgerEvent(ctx, collection, action, id); err != nil {
		slog.WarnContext(ctx, "Failed to publish ledger event",
			"collection", collection, "action", action, "id", id, "error", err)
	}
}

// Transactions returns a snapshot copy, newest first.
func (l *Ledger) Transactions() []core.Transaction {
	l.mu.Lock()
	defer l.mu.Unlock()
	out := make([]core.Transaction, len(l.txs))
	copy(out, l.txs)
	return out
}

// Budgets returns a snapshot copy in collection order.
func (l *Ledger) Budgets() []core.Budget {
	l.mu.Lock()
	defer l.mu.Unlock()
	out := make([]core.Budget, len(l.budgets))
	copy(out, l.budgets)
	return out
}

// Version returns the mutation counter. It increases on every successful
// mutation and never otherwise, so it is a safe memoization key for
// derived values.
func (l *Ledger) Version() uint64 {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.version
}

// Totals recomputes income, expenses and balance from the full history.
func (l *Ledger) Totals() core.Totals {
	return core.Summarize(l.Transactions())
}

// Breakdown recomputes the all-time expense breakdown by category.
func (l *Ledger) Breakdown() map[core.Category]float64 {
	return core.CategoryBreakdown(l.Transactions())
}

// BudgetProgress recomputes each budget's current-month spend.
func (l *Ledger) BudgetProgress() []core.BudgetStatus {
	l.mu.Lock()
	now := l.now()
	l.mu.Unlock()
	return core.BudgetProgress(l.Budgets(), l.Transactions(), now)
}
