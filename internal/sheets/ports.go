// Package sheets defines the ledger backup port.
package sheets

import (
	"context"

	"jobadmin/internal/core"
)

// Ledger mirrors entries into an external spreadsheet backup.
type Ledger interface {
	// Upsert writes or rewrites the row for an entry and returns a row
	// reference.
	Upsert(ctx context.Context, kind core.Kind, e core.Entry) (rowRef string, err error)

	// Remove clears the row for a deleted entry. Removing an entry that
	// was never exported is not an error.
	Remove(ctx context.Context, kind core.Kind, entryID string) error
}
