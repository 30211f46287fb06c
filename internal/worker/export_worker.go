// Package worker mirrors the transaction collection into a Google Sheets tab.
// It reacts to ledger events and periodically reconciles in case messages
// were lost.
package worker

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"time"

	"golang.org/x/sync/errgroup"

	"tally/internal/amqp"
	"tally/internal/core"
	"tally/internal/ledger"
)

// SheetWriter is the slice of the sheets client the worker needs.
type SheetWriter interface {
	ReplaceAll(ctx context.Context, txs []core.Transaction) error
}

// ConsumeFunc delivers ledger events to a handler until its context is done.
type ConsumeFunc func(ctx context.Context, handler func(*amqp.LedgerEvent) error) error

type ExportWorker struct {
	store        ledger.Collections
	sheet        SheetWriter
	consume      ConsumeFunc
	syncInterval time.Duration
}

func NewExportWorker(store ledger.Collections, sheet SheetWriter, consume ConsumeFunc, syncInterval time.Duration) *ExportWorker {
	if syncInterval <= 0 {
		syncInterval = 15 * time.Minute
	}
	return &ExportWorker{
		store:        store,
		sheet:        sheet,
		consume:      consume,
		syncInterval: syncInterval,
	}
}

// HandleEvent re-exports the full transaction collection when it changed.
// Budget events do not touch the sheet and are acknowledged without work.
func (w *ExportWorker) HandleEvent(ctx context.Context, ev *amqp.LedgerEvent) error {
	if ev.Collection != ledger.KeyTransactions {
		slog.DebugContext(ctx, "Ignoring event for unexported collection",
			"collection", ev.Collection, "action", ev.Action)
		return nil
	}

	slog.InfoContext(ctx, "Processing ledger event",
		"collection", ev.Collection,
		"action", ev.Action,
		"id", ev.ID)

	return w.Export(ctx)
}

// Export loads the transaction collection from storage and rewrites the
// sheet from it. Storage is the source of truth; event payloads are not.
func (w *ExportWorker) Export(ctx context.Context) error {
	raw, ok, err := w.store.Load(ctx, ledger.KeyTransactions)
	if err != nil {
		return fmt.Errorf("load transactions: %w", err)
	}

	var txs []core.Transaction
	if ok {
		if err := json.Unmarshal(raw, &txs); err != nil {
			return fmt.Errorf("decode transactions: %w", err)
		}
	}

	if err := w.sheet.ReplaceAll(ctx, txs); err != nil {
		return fmt.Errorf("replace sheet contents: %w", err)
	}
	return nil
}

// Run consumes events and reconciles on a timer until ctx is cancelled.
// An initial export runs at startup to recover from downtime.
func (w *ExportWorker) Run(ctx context.Context) error {
	if err := w.Export(ctx); err != nil {
		slog.ErrorContext(ctx, "Startup export failed", "error", err)
	}

	g, ctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		return w.consume(ctx, func(ev *amqp.LedgerEvent) error {
			return w.HandleEvent(ctx, ev)
		})
	})

	g.Go(func() error {
		ticker := time.NewTicker(w.syncInterval)
		defer ticker.Stop()
		for {
			select {
			case <-ctx.Done():
				return ctx.Err()
			case <-ticker.C:
				if err := w.Export(ctx); err != nil {
					slog.ErrorContext(ctx, "Periodic export failed", "error", err)
				}
			}
		}
	})

	return g.Wait()
}
