package services

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"jobadmin/internal/amqp"
	"jobadmin/internal/core"
	applog "jobadmin/internal/log"
	"jobadmin/internal/store"
)

// EntryService owns income and expense entry lifecycle. Every change is
// queued for the ledger export when a publisher is wired.
type EntryService struct {
	store     store.Store
	publisher JobPublisher
}

func NewEntryService(st store.Store, publisher JobPublisher) *EntryService {
	return &EntryService{store: st, publisher: publisher}
}

func (s *EntryService) List(ctx context.Context, kind core.Kind, userID string) ([]core.Entry, error) {
	if kind == core.Expense {
		return s.store.ListExpenses(ctx, userID, core.LocalDate{})
	}
	return s.store.ListIncome(ctx, userID, core.LocalDate{})
}

func (s *EntryService) Create(ctx context.Context, kind core.Kind, e core.Entry) (core.Entry, error) {
	e.ID = uuid.NewString()
	e.CreatedAt = time.Now()

	if err := e.Validate(); err != nil {
		return core.Entry{}, err
	}
	if err := s.store.CreateEntry(ctx, kind, e); err != nil {
		return core.Entry{}, fmt.Errorf("create %s entry: %w", kind, err)
	}

	s.queueExport(ctx, kind, e.ID, amqp.ExportUpsert)
	return e, nil
}

func (s *EntryService) Update(ctx context.Context, kind core.Kind, e core.Entry) (core.Entry, error) {
	if err := e.Validate(); err != nil {
		return core.Entry{}, err
	}

	existing, err := s.store.GetEntry(ctx, kind, e.UserID, e.ID)
	if err != nil {
		return core.Entry{}, err
	}
	e.CreatedAt = existing.CreatedAt

	if err := s.store.UpdateEntry(ctx, kind, e); err != nil {
		return core.Entry{}, fmt.Errorf("update %s entry: %w", kind, err)
	}

	s.queueExport(ctx, kind, e.ID, amqp.ExportUpsert)
	return e, nil
}

func (s *EntryService) Delete(ctx context.Context, kind core.Kind, userID, id string) error {
	if err := s.store.DeleteEntry(ctx, kind, userID, id); err != nil {
		return err
	}
	s.queueExport(ctx, kind, id, amqp.ExportRemove)
	return nil
}

// queueExport is best effort. A broker outage must not fail the user's
// write, the startup sweep covers missed exports.
func (s *EntryService) queueExport(ctx context.Context, kind core.Kind, entryID, action string) {
	if s.publisher == nil {
		return
	}
	if err := s.publisher.PublishEntryExport(ctx, string(kind), entryID, action); err != nil {
		slog.WarnContext(ctx, "Failed to queue entry export",
			applog.FieldOperation, applog.OpExportEntry,
			"kind", kind, "entry_id", entryID, "action", action, "error", err)
	}
}
