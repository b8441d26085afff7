// Package worker processes background jobs: password reset email
// delivery and the ledger export mirror.
package worker

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"jobadmin/internal/amqp"
	"jobadmin/internal/core"
	applog "jobadmin/internal/log"
	"jobadmin/internal/mailer"
	"jobadmin/internal/sheets"
	"jobadmin/internal/store"
)

type Worker struct {
	store        store.Store
	ledger       sheets.Ledger
	mailer       mailer.Mailer
	resetBaseURL string
	batchSize    int
}

func New(st store.Store, ledger sheets.Ledger, m mailer.Mailer, resetBaseURL string, batchSize int) *Worker {
	return &Worker{
		store:        st,
		ledger:       ledger,
		mailer:       m,
		resetBaseURL: resetBaseURL,
		batchSize:    batchSize,
	}
}

// HandleResetMail delivers a password reset email for a queued job.
func (w *Worker) HandleResetMail(ctx context.Context, msg *amqp.ResetMailMessage) error {
	if w.mailer == nil {
		slog.WarnContext(ctx, "No mailer configured, dropping reset mail job", applog.FieldOperation, applog.OpSendResetMail)
		return nil
	}

	link := mailer.ResetLink(w.resetBaseURL, msg.Token)
	if err := w.mailer.SendPasswordReset(ctx, msg.Email, link); err != nil {
		return fmt.Errorf("send reset mail: %w", err)
	}

	slog.InfoContext(ctx, "Reset mail delivered", applog.FieldOperation, applog.OpSendResetMail)
	return nil
}

// HandleEntryExport mirrors one entry change into the ledger backup.
func (w *Worker) HandleEntryExport(ctx context.Context, msg *amqp.EntryExportMessage) error {
	if w.ledger == nil {
		slog.WarnContext(ctx, "No ledger configured, dropping export job",
			applog.FieldOperation, applog.OpExportEntry,
			"kind", msg.Kind, "entry_id", msg.EntryID)
		return nil
	}

	kind := core.Kind(msg.Kind)

	if msg.Action == amqp.ExportRemove {
		if err := w.ledger.Remove(ctx, kind, msg.EntryID); err != nil {
			return fmt.Errorf("remove entry from ledger: %w", err)
		}
		slog.InfoContext(ctx, "Entry removed from ledger", "kind", msg.Kind, "entry_id", msg.EntryID)
		return nil
	}

	return w.exportEntry(ctx, kind, msg.EntryID)
}

func (w *Worker) exportEntry(ctx context.Context, kind core.Kind, entryID string) error {
	entry, err := w.findEntry(ctx, kind, entryID)
	if errors.Is(err, store.ErrNotFound) {
		// Deleted between publish and consume. Nothing left to export.
		slog.WarnContext(ctx, "Entry gone before export, skipping",
			"kind", kind, "entry_id", entryID)
		return nil
	}
	if err != nil {
		return fmt.Errorf("get entry from store: %w", err)
	}

	ref, err := w.ledger.Upsert(ctx, kind, entry)
	if err != nil {
		return fmt.Errorf("upsert entry in ledger: %w", err)
	}

	if err := w.store.MarkExported(ctx, kind, entryID); err != nil {
		slog.ErrorContext(ctx, "Failed to mark entry exported", "entry_id", entryID, "error", err)
		// The export itself worked, don't requeue.
	}

	slog.InfoContext(ctx, "Entry exported to ledger",
		applog.FieldOperation, applog.OpExportEntry,
		"kind", kind,
		"entry_id", entryID,
		"ledger_ref", ref)
	return nil
}

// findEntry looks the entry up without knowing its owner. The export
// queue carries no user ID, so the store is scanned by ID.
func (w *Worker) findEntry(ctx context.Context, kind core.Kind, entryID string) (core.Entry, error) {
	items, err := w.store.ListUnexported(ctx, 0)
	if err != nil {
		return core.Entry{}, err
	}
	for _, item := range items {
		if item.Kind == kind && item.Entry.ID == entryID {
			return item.Entry, nil
		}
	}
	return core.Entry{}, store.ErrNotFound
}

// StartupSweep exports entries that never made it to the ledger, to
// recover from missed messages or worker downtime.
func (w *Worker) StartupSweep(ctx context.Context) error {
	if w.ledger == nil {
		return nil
	}

	pending, err := w.store.ListUnexported(ctx, w.batchSize*5)
	if err != nil {
		return fmt.Errorf("list unexported entries for startup sweep: %w", err)
	}

	if len(pending) == 0 {
		slog.InfoContext(ctx, "No unexported entries found on startup")
		return nil
	}

	slog.InfoContext(ctx, "Found unexported entries on startup, processing...",
		"count", len(pending))

	successCount := 0
	errorCount := 0
	for _, item := range pending {
		if err := w.exportEntry(ctx, item.Kind, item.Entry.ID); err != nil {
			slog.ErrorContext(ctx, "Failed to export entry during startup sweep",
				"entry_id", item.Entry.ID, "error", err)
			errorCount++
			continue
		}
		successCount++
	}

	slog.InfoContext(ctx, "Startup sweep completed",
		"total", len(pending),
		"exported", successCount,
		"errors", errorCount)
	return nil
}

// ProcessPending exports a batch of entries missed by the message flow.
func (w *Worker) ProcessPending(ctx context.Context) error {
	if w.ledger == nil {
		return nil
	}

	pending, err := w.store.ListUnexported(ctx, w.batchSize)
	if err != nil {
		return fmt.Errorf("list unexported entries: %w", err)
	}
	if len(pending) == 0 {
		return nil
	}

	slog.InfoContext(ctx, "Processing unexported entries", "count", len(pending))
	for _, item := range pending {
		if err := w.exportEntry(ctx, item.Kind, item.Entry.ID); err != nil {
			slog.ErrorContext(ctx, "Failed to export entry",
				"entry_id", item.Entry.ID, "error", err)
			continue
		}
	}
	return nil
}
