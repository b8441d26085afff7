// Package memory provides an in-memory Store used by tests and the
// memory data backend.
package memory

import (
	"context"
	"sort"
	"sync"

	"jobadmin/internal/core"
	"jobadmin/internal/store"
)

type entryRecord struct {
	kind     core.Kind
	entry    core.Entry
	exported bool
	seq      int
}

type Store struct {
	mu      sync.Mutex
	users   map[string]store.User
	byEmail map[string]string
	profs   map[string]store.BusinessProfile
	entries map[string]*entryRecord
	tokens  map[string]store.ResetToken
	seq     int
}

var _ store.Store = (*Store)(nil)

func New() *Store {
	return &Store{
		users:   map[string]store.User{},
		byEmail: map[string]string{},
		profs:   map[string]store.BusinessProfile{},
		entries: map[string]*entryRecord{},
		tokens:  map[string]store.ResetToken{},
	}
}

func (s *Store) Close() error { return nil }

func (s *Store) CreateUser(_ context.Context, u store.User, p store.BusinessProfile) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.byEmail[u.Email]; ok {
		return store.ErrDuplicateEmail
	}
	s.users[u.ID] = u
	s.byEmail[u.Email] = u.ID
	s.profs[p.UserID] = p
	return nil
}

func (s *Store) GetUserByEmail(_ context.Context, email string) (store.User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	id, ok := s.byEmail[email]
	if !ok {
		return store.User{}, store.ErrNotFound
	}
	return s.users[id], nil
}

func (s *Store) GetUserByID(_ context.Context, id string) (store.User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	u, ok := s.users[id]
	if !ok {
		return store.User{}, store.ErrNotFound
	}
	return u, nil
}

func (s *Store) UpdateUserEmail(_ context.Context, id, email string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	u, ok := s.users[id]
	if !ok {
		return store.ErrNotFound
	}
	if other, taken := s.byEmail[email]; taken && other != id {
		return store.ErrDuplicateEmail
	}
	delete(s.byEmail, u.Email)
	u.Email = email
	s.users[id] = u
	s.byEmail[email] = id
	return nil
}

func (s *Store) UpdateUserPassword(_ context.Context, id, passwordHash string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	u, ok := s.users[id]
	if !ok {
		return store.ErrNotFound
	}
	u.PasswordHash = passwordHash
	s.users[id] = u
	return nil
}

func (s *Store) GetBusinessProfile(_ context.Context, userID string) (store.BusinessProfile, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	p, ok := s.profs[userID]
	if !ok {
		return store.BusinessProfile{}, store.ErrNotFound
	}
	return p, nil
}

func (s *Store) UpsertBusinessProfile(_ context.Context, p store.BusinessProfile) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.profs[p.UserID] = p
	return nil
}

func (s *Store) CreateEntry(_ context.Context, kind core.Kind, e core.Entry) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.seq++
	s.entries[string(kind)+":"+e.ID] = &entryRecord{kind: kind, entry: e, seq: s.seq}
	return nil
}

func (s *Store) GetEntry(_ context.Context, kind core.Kind, userID, id string) (core.Entry, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	rec, ok := s.entries[string(kind)+":"+id]
	if !ok || rec.entry.UserID != userID {
		return core.Entry{}, store.ErrNotFound
	}
	return rec.entry, nil
}

func (s *Store) UpdateEntry(_ context.Context, kind core.Kind, e core.Entry) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	rec, ok := s.entries[string(kind)+":"+e.ID]
	if !ok || rec.entry.UserID != e.UserID {
		return store.ErrNotFound
	}
	rec.entry = e
	rec.exported = false
	return nil
}

func (s *Store) DeleteEntry(_ context.Context, kind core.Kind, userID, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	key := string(kind) + ":" + id
	rec, ok := s.entries[key]
	if !ok || rec.entry.UserID != userID {
		return store.ErrNotFound
	}
	delete(s.entries, key)
	return nil
}

func (s *Store) ListIncome(ctx context.Context, userID string, since core.LocalDate) ([]core.Entry, error) {
	return s.list(core.Income, userID, since), nil
}

func (s *Store) ListExpenses(ctx context.Context, userID string, since core.LocalDate) ([]core.Entry, error) {
	return s.list(core.Expense, userID, since), nil
}

func (s *Store) list(kind core.Kind, userID string, since core.LocalDate) []core.Entry {
	s.mu.Lock()
	defer s.mu.Unlock()
	var out []core.Entry
	for _, rec := range s.entries {
		if rec.kind != kind || rec.entry.UserID != userID {
			continue
		}
		if !since.IsZero() {
			d, err := core.ParseLocalDate(rec.entry.Date)
			if err != nil || d.Before(since) {
				continue
			}
		}
		out = append(out, rec.entry)
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].Date != out[j].Date {
			return out[i].Date > out[j].Date
		}
		return out[i].CreatedAt.After(out[j].CreatedAt)
	})
	return out
}

func (s *Store) ListUnexported(_ context.Context, limit int) ([]store.ExportItem, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	var recs []*entryRecord
	for _, rec := range s.entries {
		if !rec.exported {
			recs = append(recs, rec)
		}
	}
	sort.Slice(recs, func(i, j int) bool { return recs[i].seq < recs[j].seq })
	if limit > 0 && len(recs) > limit {
		recs = recs[:limit]
	}
	out := make([]store.ExportItem, 0, len(recs))
	for _, rec := range recs {
		out = append(out, store.ExportItem{Kind: rec.kind, Entry: rec.entry})
	}
	return out, nil
}

func (s *Store) MarkExported(_ context.Context, kind core.Kind, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	rec, ok := s.entries[string(kind)+":"+id]
	if !ok {
		return store.ErrNotFound
	}
	rec.exported = true
	return nil
}

func (s *Store) CreateResetToken(_ context.Context, t store.ResetToken) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.tokens[t.TokenHash] = t
	return nil
}

func (s *Store) GetResetToken(_ context.Context, tokenHash string) (store.ResetToken, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	t, ok := s.tokens[tokenHash]
	if !ok {
		return store.ResetToken{}, store.ErrNotFound
	}
	return t, nil
}

func (s *Store) MarkResetTokenUsed(_ context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	for hash, t := range s.tokens {
		if t.ID == id {
			t.Used = true
			s.tokens[hash] = t
			return nil
		}
	}
	return store.ErrNotFound
}
