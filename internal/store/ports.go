// Package store defines the persistence ports and records shared by the
// SQLite and in-memory backends.
package store

import (
	"context"
	"errors"
	"time"

	"jobadmin/internal/core"
)

var (
	ErrNotFound       = errors.New("not found")
	ErrDuplicateEmail = errors.New("email already in use")
)

// User is a registered account.
type User struct {
	ID           string
	Email        string
	PasswordHash string
	CreatedAt    time.Time
}

// BusinessProfile holds per-user business settings.
type BusinessProfile struct {
	UserID             string
	BusinessName       string
	TradeType          string
	WeeklyTargetIncome core.Money
	TaxRate            float64
	FixedWeeklyCosts   core.Money
	UpdatedAt          time.Time
}

// ResetToken is a password reset token record. Only the SHA-256 digest of
// the token is stored.
type ResetToken struct {
	ID        string
	UserID    string
	TokenHash string
	ExpiresAt time.Time
	Used      bool
}

// ExportItem pairs an entry with its kind for the export sweep.
type ExportItem struct {
	Kind  core.Kind
	Entry core.Entry
}

// Ports for the persistence backends.
type (
	UserStore interface {
		// CreateUser creates the user and its default business profile
		// atomically.
		CreateUser(ctx context.Context, u User, p BusinessProfile) error
		GetUserByEmail(ctx context.Context, email string) (User, error)
		GetUserByID(ctx context.Context, id string) (User, error)
		UpdateUserEmail(ctx context.Context, id, email string) error
		UpdateUserPassword(ctx context.Context, id, passwordHash string) error
	}

	ProfileStore interface {
		GetBusinessProfile(ctx context.Context, userID string) (BusinessProfile, error)
		UpsertBusinessProfile(ctx context.Context, p BusinessProfile) error
	}

	EntryStore interface {
		CreateEntry(ctx context.Context, kind core.Kind, e core.Entry) error
		GetEntry(ctx context.Context, kind core.Kind, userID, id string) (core.Entry, error)
		UpdateEntry(ctx context.Context, kind core.Kind, e core.Entry) error
		DeleteEntry(ctx context.Context, kind core.Kind, userID, id string) error

		// ListIncome and ListExpenses return entries ordered by date
		// descending. A zero since returns everything.
		ListIncome(ctx context.Context, userID string, since core.LocalDate) ([]core.Entry, error)
		ListExpenses(ctx context.Context, userID string, since core.LocalDate) ([]core.Entry, error)

		ListUnexported(ctx context.Context, limit int) ([]ExportItem, error)
		MarkExported(ctx context.Context, kind core.Kind, id string) error
	}

	TokenStore interface {
		CreateResetToken(ctx context.Context, t ResetToken) error
		GetResetToken(ctx context.Context, tokenHash string) (ResetToken, error)
		MarkResetTokenUsed(ctx context.Context, id string) error
	}

	// Store is the full persistence surface the app is wired against.
	Store interface {
		UserStore
		ProfileStore
		EntryStore
		TokenStore
		Close() error
	}
)
