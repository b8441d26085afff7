// Package storage is the SQLite persistence backend.
package storage

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"jobadmin/internal/core"
	"jobadmin/internal/store"

	_ "modernc.org/sqlite"
)

type SQLiteRepository struct {
	db *sql.DB
}

func NewSQLiteRepository(dbPath string) (*SQLiteRepository, error) {
	if err := os.MkdirAll(filepath.Dir(dbPath), 0755); err != nil {
		return nil, fmt.Errorf("create db directory: %w", err)
	}

	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("open sqlite database: %w", err)
	}

	if err := db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("ping database: %w", err)
	}

	if _, err := db.Exec("PRAGMA foreign_keys = ON"); err != nil {
		db.Close()
		return nil, fmt.Errorf("enable foreign keys: %w", err)
	}

	// Run migrations
	if err := RunMigrations(dbPath); err != nil {
		db.Close()
		return nil, fmt.Errorf("run migrations: %w", err)
	}

	return &SQLiteRepository{db: db}, nil
}

func (r *SQLiteRepository) Close() error {
	if r.db != nil {
		return r.db.Close()
	}
	return nil
}

func isUniqueEmailErr(err error) bool {
	return err != nil && strings.Contains(err.Error(), "UNIQUE constraint failed: users.email")
}

func (r *SQLiteRepository) CreateUser(ctx context.Context, u store.User, p store.BusinessProfile) error {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin transaction: %w", err)
	}
	defer tx.Rollback()

	_, err = tx.ExecContext(ctx,
		`INSERT INTO users (id, email, password_hash, created_at) VALUES (?, ?, ?, ?)`,
		u.ID, u.Email, u.PasswordHash, u.CreatedAt)
	if isUniqueEmailErr(err) {
		return store.ErrDuplicateEmail
	}
	if err != nil {
		return fmt.Errorf("insert user: %w", err)
	}

	_, err = tx.ExecContext(ctx,
		`INSERT INTO business_profiles
		 (user_id, business_name, trade_type, weekly_target_income_pence, tax_rate, fixed_weekly_costs_pence, updated_at)
		 VALUES (?, ?, ?, ?, ?, ?, ?)`,
		p.UserID, p.BusinessName, p.TradeType, p.WeeklyTargetIncome.Pence, p.TaxRate, p.FixedWeeklyCosts.Pence, p.UpdatedAt)
	if err != nil {
		return fmt.Errorf("insert business profile: %w", err)
	}

	return tx.Commit()
}

func (r *SQLiteRepository) GetUserByEmail(ctx context.Context, email string) (store.User, error) {
	return r.scanUser(r.db.QueryRowContext(ctx,
		`SELECT id, email, password_hash, created_at FROM users WHERE email = ?`, email))
}

func (r *SQLiteRepository) GetUserByID(ctx context.Context, id string) (store.User, error) {
	return r.scanUser(r.db.QueryRowContext(ctx,
		`SELECT id, email, password_hash, created_at FROM users WHERE id = ?`, id))
}

func (r *SQLiteRepository) scanUser(row *sql.Row) (store.User, error) {
	var u store.User
	err := row.Scan(&u.ID, &u.Email, &u.PasswordHash, &u.CreatedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return store.User{}, store.ErrNotFound
	}
	if err != nil {
		return store.User{}, fmt.Errorf("scan user: %w", err)
	}
	return u, nil
}

func (r *SQLiteRepository) UpdateUserEmail(ctx context.Context, id, email string) error {
	res, err := r.db.ExecContext(ctx, `UPDATE users SET email = ? WHERE id = ?`, email, id)
	if isUniqueEmailErr(err) {
		return store.ErrDuplicateEmail
	}
	if err != nil {
		return fmt.Errorf("update user email: %w", err)
	}
	return requireRow(res)
}

func (r *SQLiteRepository) UpdateUserPassword(ctx context.Context, id, passwordHash string) error {
	res, err := r.db.ExecContext(ctx, `UPDATE users SET password_hash = ? WHERE id = ?`, passwordHash, id)
	if err != nil {
		return fmt.Errorf("update user password: %w", err)
	}
	return requireRow(res)
}

func (r *SQLiteRepository) GetBusinessProfile(ctx context.Context, userID string) (store.BusinessProfile, error) {
	var p store.BusinessProfile
	err := r.db.QueryRowContext(ctx,
		`SELECT user_id, business_name, trade_type, weekly_target_income_pence, tax_rate, fixed_weekly_costs_pence, updated_at
		 FROM business_profiles WHERE user_id = ?`, userID).
		Scan(&p.UserID, &p.BusinessName, &p.TradeType, &p.WeeklyTargetIncome.Pence, &p.TaxRate, &p.FixedWeeklyCosts.Pence, &p.UpdatedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return store.BusinessProfile{}, store.ErrNotFound
	}
	if err != nil {
		return store.BusinessProfile{}, fmt.Errorf("scan business profile: %w", err)
	}
	return p, nil
}

func (r *SQLiteRepository) UpsertBusinessProfile(ctx context.Context, p store.BusinessProfile) error {
	_, err := r.db.ExecContext(ctx,
		`INSERT INTO business_profiles
		 (user_id, business_name, trade_type, weekly_target_income_pence, tax_rate, fixed_weekly_costs_pence, updated_at)
		 VALUES (?, ?, ?, ?, ?, ?, ?)
		 ON CONFLICT(user_id) DO UPDATE SET
		   business_name = excluded.business_name,
		   trade_type = excluded.trade_type,
		   weekly_target_income_pence = excluded.weekly_target_income_pence,
		   tax_rate = excluded.tax_rate,
		   fixed_weekly_costs_pence = excluded.fixed_weekly_costs_pence,
		   updated_at = excluded.updated_at`,
		p.UserID, p.BusinessName, p.TradeType, p.WeeklyTargetIncome.Pence, p.TaxRate, p.FixedWeeklyCosts.Pence, p.UpdatedAt)
	if err != nil {
		return fmt.Errorf("upsert business profile: %w", err)
	}
	return nil
}

func entryTable(kind core.Kind) (table, counterparty string) {
	if kind == core.Expense {
		return "expense_entries", "supplier_name"
	}
	return "income_entries", "customer_name"
}

func (r *SQLiteRepository) CreateEntry(ctx context.Context, kind core.Kind, e core.Entry) error {
	table, cp := entryTable(kind)
	_, err := r.db.ExecContext(ctx,
		fmt.Sprintf(`INSERT INTO %s (id, user_id, amount_pence, entry_date, %s, description, created_at, exported)
		 VALUES (?, ?, ?, ?, ?, ?, ?, 0)`, table, cp),
		e.ID, e.UserID, e.Amount.Pence, e.Date, e.Counterparty, e.Description, e.CreatedAt)
	if err != nil {
		return fmt.Errorf("insert %s entry: %w", kind, err)
	}
	return nil
}

func (r *SQLiteRepository) GetEntry(ctx context.Context, kind core.Kind, userID, id string) (core.Entry, error) {
	table, cp := entryTable(kind)
	var e core.Entry
	err := r.db.QueryRowContext(ctx,
		fmt.Sprintf(`SELECT id, user_id, amount_pence, entry_date, %s, description, created_at
		 FROM %s WHERE id = ? AND user_id = ?`, cp, table),
		id, userID).
		Scan(&e.ID, &e.UserID, &e.Amount.Pence, &e.Date, &e.Counterparty, &e.Description, &e.CreatedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return core.Entry{}, store.ErrNotFound
	}
	if err != nil {
		return core.Entry{}, fmt.Errorf("scan %s entry: %w", kind, err)
	}
	return e, nil
}

func (r *SQLiteRepository) UpdateEntry(ctx context.Context, kind core.Kind, e core.Entry) error {
	table, cp := entryTable(kind)
	res, err := r.db.ExecContext(ctx,
		fmt.Sprintf(`UPDATE %s SET amount_pence = ?, entry_date = ?, %s = ?, description = ?, exported = 0
		 WHERE id = ? AND user_id = ?`, table, cp),
		e.Amount.Pence, e.Date, e.Counterparty, e.Description, e.ID, e.UserID)
	if err != nil {
		return fmt.Errorf("update %s entry: %w", kind, err)
	}
	return requireRow(res)
}

func (r *SQLiteRepository) DeleteEntry(ctx context.Context, kind core.Kind, userID, id string) error {
	table, _ := entryTable(kind)
	res, err := r.db.ExecContext(ctx,
		fmt.Sprintf(`DELETE FROM %s WHERE id = ? AND user_id = ?`, table), id, userID)
	if err != nil {
		return fmt.Errorf("delete %s entry: %w", kind, err)
	}
	return requireRow(res)
}

func (r *SQLiteRepository) ListIncome(ctx context.Context, userID string, since core.LocalDate) ([]core.Entry, error) {
	return r.listEntries(ctx, core.Income, userID, since)
}

func (r *SQLiteRepository) ListExpenses(ctx context.Context, userID string, since core.LocalDate) ([]core.Entry, error) {
	return r.listEntries(ctx, core.Expense, userID, since)
}

func (r *SQLiteRepository) listEntries(ctx context.Context, kind core.Kind, userID string, since core.LocalDate) ([]core.Entry, error) {
	table, cp := entryTable(kind)
	query := fmt.Sprintf(`SELECT id, user_id, amount_pence, entry_date, %s, description, created_at
		 FROM %s WHERE user_id = ?`, cp, table)
	args := []any{userID}
	if !since.IsZero() {
		query += ` AND entry_date >= ?`
		args = append(args, since.String())
	}
	query += ` ORDER BY entry_date DESC, created_at DESC`

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("list %s entries: %w", kind, err)
	}
	defer rows.Close()

	var out []core.Entry
	for rows.Next() {
		var e core.Entry
		if err := rows.Scan(&e.ID, &e.UserID, &e.Amount.Pence, &e.Date, &e.Counterparty, &e.Description, &e.CreatedAt); err != nil {
			return nil, fmt.Errorf("scan %s entry: %w", kind, err)
		}
		out = append(out, e)
	}
	return out, rows.Err()
}

func (r *SQLiteRepository) ListUnexported(ctx context.Context, limit int) ([]store.ExportItem, error) {
	// SQLite treats a negative LIMIT as no limit.
	if limit <= 0 {
		limit = -1
	}
	var out []store.ExportItem
	for _, kind := range []core.Kind{core.Income, core.Expense} {
		table, cp := entryTable(kind)
		rows, err := r.db.QueryContext(ctx,
			fmt.Sprintf(`SELECT id, user_id, amount_pence, entry_date, %s, description, created_at
			 FROM %s WHERE exported = 0 ORDER BY created_at ASC LIMIT ?`, cp, table), limit)
		if err != nil {
			return nil, fmt.Errorf("list unexported %s entries: %w", kind, err)
		}
		for rows.Next() {
			var e core.Entry
			if err := rows.Scan(&e.ID, &e.UserID, &e.Amount.Pence, &e.Date, &e.Counterparty, &e.Description, &e.CreatedAt); err != nil {
				rows.Close()
				return nil, fmt.Errorf("scan unexported %s entry: %w", kind, err)
			}
			out = append(out, store.ExportItem{Kind: kind, Entry: e})
		}
		if err := rows.Err(); err != nil {
			rows.Close()
			return nil, err
		}
		rows.Close()
	}
	if limit > 0 && len(out) > limit {
		out = out[:limit]
	}
	return out, nil
}

func (r *SQLiteRepository) MarkExported(ctx context.Context, kind core.Kind, id string) error {
	table, _ := entryTable(kind)
	res, err := r.db.ExecContext(ctx,
		fmt.Sprintf(`UPDATE %s SET exported = 1 WHERE id = ?`, table), id)
	if err != nil {
		return fmt.Errorf("mark %s entry exported: %w", kind, err)
	}
	return requireRow(res)
}

func (r *SQLiteRepository) CreateResetToken(ctx context.Context, t store.ResetToken) error {
	_, err := r.db.ExecContext(ctx,
		`INSERT INTO password_reset_tokens (id, user_id, token_hash, expires_at, used)
		 VALUES (?, ?, ?, ?, ?)`,
		t.ID, t.UserID, t.TokenHash, t.ExpiresAt, boolToInt(t.Used))
	if err != nil {
		return fmt.Errorf("insert reset token: %w", err)
	}
	return nil
}

func (r *SQLiteRepository) GetResetToken(ctx context.Context, tokenHash string) (store.ResetToken, error) {
	var t store.ResetToken
	var used int
	err := r.db.QueryRowContext(ctx,
		`SELECT id, user_id, token_hash, expires_at, used FROM password_reset_tokens WHERE token_hash = ?`,
		tokenHash).
		Scan(&t.ID, &t.UserID, &t.TokenHash, &t.ExpiresAt, &used)
	if errors.Is(err, sql.ErrNoRows) {
		return store.ResetToken{}, store.ErrNotFound
	}
	if err != nil {
		return store.ResetToken{}, fmt.Errorf("scan reset token: %w", err)
	}
	t.Used = used != 0
	return t, nil
}

func (r *SQLiteRepository) MarkResetTokenUsed(ctx context.Context, id string) error {
	res, err := r.db.ExecContext(ctx,
		`UPDATE password_reset_tokens SET used = 1 WHERE id = ?`, id)
	if err != nil {
		return fmt.Errorf("mark reset token used: %w", err)
	}
	return requireRow(res)
}

func requireRow(res sql.Result) error {
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("rows affected: %w", err)
	}
	if n == 0 {
		return store.ErrNotFound
	}
	return nil
}

func boolToInt(b bool) int {
	if b {
		return 1
	}
	return 0
}

var _ store.Store = (*SQLiteRepository)(nil)
