package storage

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	"jobadmin/internal/core"
	"jobadmin/internal/store"
)

func newTestRepo(t *testing.T) *SQLiteRepository {
	t.Helper()
	repo, err := NewSQLiteRepository(filepath.Join(t.TempDir(), "test.db"))
	if err != nil {
		t.Fatalf("NewSQLiteRepository() error = %v", err)
	}
	t.Cleanup(func() { repo.Close() })
	return repo
}

func seedUser(t *testing.T, repo *SQLiteRepository, id, email string) {
	t.Helper()
	u := store.User{ID: id, Email: email, PasswordHash: "hash", CreatedAt: time.Now()}
	p := store.BusinessProfile{UserID: id, BusinessName: "Test Trades", TradeType: "electrician", TaxRate: 0.2, UpdatedAt: time.Now()}
	if err := repo.CreateUser(context.Background(), u, p); err != nil {
		t.Fatalf("CreateUser() error = %v", err)
	}
}

func TestSQLiteRepository_CreateUserAndProfile(t *testing.T) {
	ctx := context.Background()
	repo := newTestRepo(t)
	seedUser(t, repo, "u1", "joe@example.com")

	u, err := repo.GetUserByEmail(ctx, "joe@example.com")
	if err != nil {
		t.Fatalf("GetUserByEmail() error = %v", err)
	}
	if u.ID != "u1" || u.PasswordHash != "hash" {
		t.Errorf("GetUserByEmail() = %+v, want u1 with stored hash", u)
	}

	p, err := repo.GetBusinessProfile(ctx, "u1")
	if err != nil {
		t.Fatalf("GetBusinessProfile() error = %v", err)
	}
	if p.TradeType != "electrician" || p.TaxRate != 0.2 {
		t.Errorf("GetBusinessProfile() = %+v, want electrician at 0.2", p)
	}
}

func TestSQLiteRepository_DuplicateEmail(t *testing.T) {
	repo := newTestRepo(t)
	seedUser(t, repo, "u1", "joe@example.com")

	u := store.User{ID: "u2", Email: "joe@example.com", PasswordHash: "hash", CreatedAt: time.Now()}
	p := store.BusinessProfile{UserID: "u2", UpdatedAt: time.Now()}
	if err := repo.CreateUser(context.Background(), u, p); err != store.ErrDuplicateEmail {
		t.Errorf("CreateUser() error = %v, want ErrDuplicateEmail", err)
	}

	// The failed registration must not leave a user behind.
	if _, err := repo.GetUserByID(context.Background(), "u2"); err != store.ErrNotFound {
		t.Errorf("GetUserByID() error = %v, want ErrNotFound after rollback", err)
	}
}

func TestSQLiteRepository_EntryRoundTrip(t *testing.T) {
	ctx := context.Background()
	repo := newTestRepo(t)
	seedUser(t, repo, "u1", "joe@example.com")

	e := core.Entry{
		ID:           "e1",
		UserID:       "u1",
		Amount:       core.Money{Pence: 45000},
		Date:         "2025-03-11",
		Counterparty: "BuildBase",
		Description:  "copper pipe",
		CreatedAt:    time.Now(),
	}
	if err := repo.CreateEntry(ctx, core.Expense, e); err != nil {
		t.Fatalf("CreateEntry() error = %v", err)
	}

	got, err := repo.GetEntry(ctx, core.Expense, "u1", "e1")
	if err != nil {
		t.Fatalf("GetEntry() error = %v", err)
	}
	if got.Amount.Pence != 45000 || got.Counterparty != "BuildBase" || got.Date != "2025-03-11" {
		t.Errorf("GetEntry() = %+v, want stored values back", got)
	}

	// Income and expense tables are disjoint.
	if _, err := repo.GetEntry(ctx, core.Income, "u1", "e1"); err != store.ErrNotFound {
		t.Errorf("GetEntry(income) error = %v, want ErrNotFound", err)
	}

	got.Description = "copper pipe and fittings"
	if err := repo.UpdateEntry(ctx, core.Expense, got); err != nil {
		t.Fatalf("UpdateEntry() error = %v", err)
	}

	list, err := repo.ListExpenses(ctx, "u1", core.LocalDate{})
	if err != nil {
		t.Fatalf("ListExpenses() error = %v", err)
	}
	if len(list) != 1 || list[0].Description != "copper pipe and fittings" {
		t.Errorf("ListExpenses() = %+v, want one updated entry", list)
	}

	if err := repo.DeleteEntry(ctx, core.Expense, "u1", "e1"); err != nil {
		t.Fatalf("DeleteEntry() error = %v", err)
	}
	if err := repo.DeleteEntry(ctx, core.Expense, "u1", "e1"); err != store.ErrNotFound {
		t.Errorf("DeleteEntry() second call error = %v, want ErrNotFound", err)
	}
}

func TestSQLiteRepository_ListSinceAndOrdering(t *testing.T) {
	ctx := context.Background()
	repo := newTestRepo(t)
	seedUser(t, repo, "u1", "joe@example.com")

	for i, d := range []string{"2025-03-08", "2025-03-12", "2025-03-10"} {
		e := core.Entry{ID: string(rune('a' + i)), UserID: "u1", Amount: core.Money{Pence: 100}, Date: d, CreatedAt: time.Now()}
		if err := repo.CreateEntry(ctx, core.Income, e); err != nil {
			t.Fatalf("CreateEntry() error = %v", err)
		}
	}

	since, _ := core.ParseLocalDate("2025-03-10")
	list, err := repo.ListIncome(ctx, "u1", since)
	if err != nil {
		t.Fatalf("ListIncome() error = %v", err)
	}
	if len(list) != 2 {
		t.Fatalf("ListIncome(since) len = %d, want 2", len(list))
	}
	if list[0].Date != "2025-03-12" || list[1].Date != "2025-03-10" {
		t.Errorf("ListIncome() order = %v, %v; want date descending", list[0].Date, list[1].Date)
	}
}

func TestSQLiteRepository_ExportFlow(t *testing.T) {
	ctx := context.Background()
	repo := newTestRepo(t)
	seedUser(t, repo, "u1", "joe@example.com")

	if err := repo.CreateEntry(ctx, core.Income, core.Entry{ID: "e1", UserID: "u1", Amount: core.Money{Pence: 100}, Date: "2025-03-10", CreatedAt: time.Now()}); err != nil {
		t.Fatal(err)
	}
	if err := repo.CreateEntry(ctx, core.Expense, core.Entry{ID: "e2", UserID: "u1", Amount: core.Money{Pence: 200}, Date: "2025-03-11", CreatedAt: time.Now()}); err != nil {
		t.Fatal(err)
	}

	pending, err := repo.ListUnexported(ctx, 10)
	if err != nil {
		t.Fatalf("ListUnexported() error = %v", err)
	}
	if len(pending) != 2 {
		t.Fatalf("ListUnexported() len = %d, want 2", len(pending))
	}

	if err := repo.MarkExported(ctx, core.Income, "e1"); err != nil {
		t.Fatalf("MarkExported() error = %v", err)
	}
	pending, err = repo.ListUnexported(ctx, 10)
	if err != nil {
		t.Fatalf("ListUnexported() error = %v", err)
	}
	if len(pending) != 1 || pending[0].Kind != core.Expense {
		t.Errorf("ListUnexported() = %+v, want just the expense entry", pending)
	}
}

func TestSQLiteRepository_ResetTokens(t *testing.T) {
	ctx := context.Background()
	repo := newTestRepo(t)
	seedUser(t, repo, "u1", "joe@example.com")

	tok := store.ResetToken{ID: "t1", UserID: "u1", TokenHash: "digest", ExpiresAt: time.Now().Add(30 * time.Minute)}
	if err := repo.CreateResetToken(ctx, tok); err != nil {
		t.Fatalf("CreateResetToken() error = %v", err)
	}

	got, err := repo.GetResetToken(ctx, "digest")
	if err != nil {
		t.Fatalf("GetResetToken() error = %v", err)
	}
	if got.UserID != "u1" || got.Used {
		t.Errorf("GetResetToken() = %+v, want unused token for u1", got)
	}

	if err := repo.MarkResetTokenUsed(ctx, "t1"); err != nil {
		t.Fatalf("MarkResetTokenUsed() error = %v", err)
	}
	got, err = repo.GetResetToken(ctx, "digest")
	if err != nil {
		t.Fatalf("GetResetToken() error = %v", err)
	}
	if !got.Used {
		t.Error("GetResetToken() Used = false after MarkResetTokenUsed")
	}
}
