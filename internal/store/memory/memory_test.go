package memory

import (
	"context"
	"testing"
	"time"

	"jobadmin/internal/core"
	"jobadmin/internal/store"
)

func seedUser(t *testing.T, s *Store, id, email string) {
	t.Helper()
	u := store.User{ID: id, Email: email, PasswordHash: "hash", CreatedAt: time.Now()}
	p := store.BusinessProfile{UserID: id, BusinessName: "Test Trades", TradeType: "plumber", TaxRate: 0.2}
	if err := s.CreateUser(context.Background(), u, p); err != nil {
		t.Fatalf("CreateUser() error = %v", err)
	}
}

func TestStore_CreateUserDuplicateEmail(t *testing.T) {
	s := New()
	seedUser(t, s, "u1", "joe@example.com")

	err := s.CreateUser(context.Background(), store.User{ID: "u2", Email: "joe@example.com"}, store.BusinessProfile{UserID: "u2"})
	if err != store.ErrDuplicateEmail {
		t.Errorf("CreateUser() error = %v, want ErrDuplicateEmail", err)
	}
}

func TestStore_GetUserByEmail(t *testing.T) {
	s := New()
	seedUser(t, s, "u1", "joe@example.com")

	u, err := s.GetUserByEmail(context.Background(), "joe@example.com")
	if err != nil {
		t.Fatalf("GetUserByEmail() error = %v", err)
	}
	if u.ID != "u1" {
		t.Errorf("GetUserByEmail() ID = %v, want u1", u.ID)
	}

	if _, err := s.GetUserByEmail(context.Background(), "nobody@example.com"); err != store.ErrNotFound {
		t.Errorf("GetUserByEmail() error = %v, want ErrNotFound", err)
	}
}

func TestStore_UpdateUserEmail(t *testing.T) {
	s := New()
	seedUser(t, s, "u1", "joe@example.com")
	seedUser(t, s, "u2", "amy@example.com")

	if err := s.UpdateUserEmail(context.Background(), "u1", "amy@example.com"); err != store.ErrDuplicateEmail {
		t.Errorf("UpdateUserEmail() error = %v, want ErrDuplicateEmail", err)
	}

	if err := s.UpdateUserEmail(context.Background(), "u1", "joseph@example.com"); err != nil {
		t.Fatalf("UpdateUserEmail() error = %v", err)
	}
	if _, err := s.GetUserByEmail(context.Background(), "joe@example.com"); err != store.ErrNotFound {
		t.Error("old email still resolves after update")
	}
	u, err := s.GetUserByEmail(context.Background(), "joseph@example.com")
	if err != nil || u.ID != "u1" {
		t.Errorf("new email resolves to %v, %v; want u1, nil", u.ID, err)
	}
}

func TestStore_EntryCRUDAndOwnership(t *testing.T) {
	ctx := context.Background()
	s := New()
	seedUser(t, s, "u1", "joe@example.com")
	seedUser(t, s, "u2", "amy@example.com")

	e := core.Entry{ID: "e1", UserID: "u1", Amount: core.Money{Pence: 12000}, Date: "2025-03-10", Counterparty: "Mrs Smith", CreatedAt: time.Now()}
	if err := s.CreateEntry(ctx, core.Income, e); err != nil {
		t.Fatalf("CreateEntry() error = %v", err)
	}

	// Another user must not see or touch it.
	if _, err := s.GetEntry(ctx, core.Income, "u2", "e1"); err != store.ErrNotFound {
		t.Errorf("GetEntry() cross-user error = %v, want ErrNotFound", err)
	}
	if err := s.DeleteEntry(ctx, core.Income, "u2", "e1"); err != store.ErrNotFound {
		t.Errorf("DeleteEntry() cross-user error = %v, want ErrNotFound", err)
	}

	e.Amount = core.Money{Pence: 15000}
	if err := s.UpdateEntry(ctx, core.Income, e); err != nil {
		t.Fatalf("UpdateEntry() error = %v", err)
	}
	got, err := s.GetEntry(ctx, core.Income, "u1", "e1")
	if err != nil {
		t.Fatalf("GetEntry() error = %v", err)
	}
	if got.Amount.Pence != 15000 {
		t.Errorf("GetEntry() amount = %d, want 15000", got.Amount.Pence)
	}

	if err := s.DeleteEntry(ctx, core.Income, "u1", "e1"); err != nil {
		t.Fatalf("DeleteEntry() error = %v", err)
	}
	if _, err := s.GetEntry(ctx, core.Income, "u1", "e1"); err != store.ErrNotFound {
		t.Errorf("GetEntry() after delete error = %v, want ErrNotFound", err)
	}
}

func TestStore_ListOrderingAndSince(t *testing.T) {
	ctx := context.Background()
	s := New()
	seedUser(t, s, "u1", "joe@example.com")

	dates := []string{"2025-03-08", "2025-03-12", "2025-03-10"}
	for i, d := range dates {
		e := core.Entry{ID: string(rune('a' + i)), UserID: "u1", Amount: core.Money{Pence: 100}, Date: d}
		if err := s.CreateEntry(ctx, core.Income, e); err != nil {
			t.Fatalf("CreateEntry() error = %v", err)
		}
	}

	all, err := s.ListIncome(ctx, "u1", core.LocalDate{})
	if err != nil {
		t.Fatalf("ListIncome() error = %v", err)
	}
	if len(all) != 3 {
		t.Fatalf("ListIncome() len = %d, want 3", len(all))
	}
	want := []string{"2025-03-12", "2025-03-10", "2025-03-08"}
	for i, e := range all {
		if e.Date != want[i] {
			t.Errorf("ListIncome()[%d].Date = %v, want %v", i, e.Date, want[i])
		}
	}

	since, _ := core.ParseLocalDate("2025-03-10")
	recent, err := s.ListIncome(ctx, "u1", since)
	if err != nil {
		t.Fatalf("ListIncome() error = %v", err)
	}
	if len(recent) != 2 {
		t.Errorf("ListIncome(since) len = %d, want 2", len(recent))
	}
}

func TestStore_ExportSweep(t *testing.T) {
	ctx := context.Background()
	s := New()
	seedUser(t, s, "u1", "joe@example.com")

	if err := s.CreateEntry(ctx, core.Income, core.Entry{ID: "e1", UserID: "u1", Date: "2025-03-10"}); err != nil {
		t.Fatal(err)
	}
	if err := s.CreateEntry(ctx, core.Expense, core.Entry{ID: "e2", UserID: "u1", Date: "2025-03-11"}); err != nil {
		t.Fatal(err)
	}

	pending, err := s.ListUnexported(ctx, 10)
	if err != nil {
		t.Fatalf("ListUnexported() error = %v", err)
	}
	if len(pending) != 2 {
		t.Fatalf("ListUnexported() len = %d, want 2", len(pending))
	}
	if pending[0].Entry.ID != "e1" || pending[1].Entry.ID != "e2" {
		t.Errorf("ListUnexported() order = %v, %v; want e1, e2", pending[0].Entry.ID, pending[1].Entry.ID)
	}

	if err := s.MarkExported(ctx, core.Income, "e1"); err != nil {
		t.Fatalf("MarkExported() error = %v", err)
	}
	pending, err = s.ListUnexported(ctx, 10)
	if err != nil {
		t.Fatalf("ListUnexported() error = %v", err)
	}
	if len(pending) != 1 || pending[0].Entry.ID != "e2" {
		t.Errorf("ListUnexported() after mark = %v, want just e2", pending)
	}

	// Updating an entry queues it for export again.
	if err := s.UpdateEntry(ctx, core.Income, core.Entry{ID: "e1", UserID: "u1", Date: "2025-03-10", Description: "rebooked"}); err != nil {
		t.Fatalf("UpdateEntry() error = %v", err)
	}
	pending, err = s.ListUnexported(ctx, 10)
	if err != nil {
		t.Fatalf("ListUnexported() error = %v", err)
	}
	if len(pending) != 2 {
		t.Errorf("ListUnexported() after update len = %d, want 2", len(pending))
	}
}

func TestStore_ResetTokens(t *testing.T) {
	ctx := context.Background()
	s := New()
	seedUser(t, s, "u1", "joe@example.com")

	tok := store.ResetToken{ID: "t1", UserID: "u1", TokenHash: "abc123", ExpiresAt: time.Now().Add(30 * time.Minute)}
	if err := s.CreateResetToken(ctx, tok); err != nil {
		t.Fatalf("CreateResetToken() error = %v", err)
	}

	got, err := s.GetResetToken(ctx, "abc123")
	if err != nil {
		t.Fatalf("GetResetToken() error = %v", err)
	}
	if got.UserID != "u1" || got.Used {
		t.Errorf("GetResetToken() = %+v, want unused token for u1", got)
	}

	if err := s.MarkResetTokenUsed(ctx, "t1"); err != nil {
		t.Fatalf("MarkResetTokenUsed() error = %v", err)
	}
	got, err = s.GetResetToken(ctx, "abc123")
	if err != nil {
		t.Fatalf("GetResetToken() error = %v", err)
	}
	if !got.Used {
		t.Error("GetResetToken() Used = false after MarkResetTokenUsed")
	}

	if _, err := s.GetResetToken(ctx, "missing"); err != store.ErrNotFound {
		t.Errorf("GetResetToken() error = %v, want ErrNotFound", err)
	}
}
