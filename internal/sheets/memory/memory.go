// Package memory is an in-memory Ledger used by tests and the memory
// data backend.
package memory

import (
	"context"
	"fmt"
	"sync"

	"jobadmin/internal/core"
	"jobadmin/internal/sheets"
)

type Row struct {
	Kind  core.Kind
	Entry core.Entry
}

type Ledger struct {
	mu   sync.Mutex
	rows map[string]Row
}

var _ sheets.Ledger = (*Ledger)(nil)

func New() *Ledger {
	return &Ledger{rows: map[string]Row{}}
}

func (l *Ledger) Upsert(_ context.Context, kind core.Kind, e core.Entry) (string, error) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.rows[e.ID] = Row{Kind: kind, Entry: e}
	return fmt.Sprintf("mem:%s", e.ID), nil
}

func (l *Ledger) Remove(_ context.Context, _ core.Kind, entryID string) error {
	l.mu.Lock()
	defer l.mu.Unlock()
	delete(l.rows, entryID)
	return nil
}

// Rows returns a copy of the ledger contents.
func (l *Ledger) Rows() map[string]Row {
	l.mu.Lock()
	defer l.mu.Unlock()
	out := make(map[string]Row, len(l.rows))
	for k, v := range l.rows {
		out[k] = v
	}
	return out
}
