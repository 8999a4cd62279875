package history

import (
	"context"
	"errors"
	"path/filepath"
	"testing"
	"time"

	"github.com/spigell/hr-scout/internal/talent"
)

func newTestStore(t *testing.T) *SQLiteStore {
	t.Helper()
	dbPath := filepath.Join(t.TempDir(), "history.db")
	s, err := NewSQLiteStore(dbPath)
	if err != nil {
		t.Fatalf("NewSQLiteStore: %v", err)
	}
	t.Cleanup(func() { s.Close() })
	return s
}

func TestRecordThenGet(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	recorded, err := s.Record(ctx, Run{
		Locale: talent.LocalePolish,
		Scope:  talent.ScopeMulti,
		Brief:  "Stanowisko: Grafik AI, Warszawa.",
		Query:  "Grafik AI Warszawa AI site:linkedin.com",
		Candidates: []talent.Candidate{
			{Name: "Jan Kowalski", Score: 95, Skills: []string{"AI"}, ProfileURL: "https://linkedin.com/in/jan"},
		},
	})
	if err != nil {
		t.Fatalf("Record: %v", err)
	}
	if recorded.ID == "" || recorded.CreatedAt.IsZero() {
		t.Fatalf("expected id and timestamp to be assigned: %+v", recorded)
	}

	got, err := s.Get(ctx, recorded.ID)
	if err != nil {
		t.Fatalf("Get: %v", err)
	}
	if got.Brief != recorded.Brief || got.Query != recorded.Query || got.Scope != talent.ScopeMulti || got.Locale != talent.LocalePolish {
		t.Fatalf("unexpected run: %+v", got)
	}
	if !got.CreatedAt.Equal(recorded.CreatedAt) {
		t.Fatalf("timestamp mismatch: %v vs %v", got.CreatedAt, recorded.CreatedAt)
	}
	if len(got.Candidates) != 1 || got.Candidates[0].ProfileURL != "https://linkedin.com/in/jan" || got.Candidates[0].Skills[0] != "AI" {
		t.Fatalf("unexpected candidates: %+v", got.Candidates)
	}
}

func TestRecordKeepsDemoAndErrorFlags(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	recorded, err := s.Record(ctx, Run{ID: "run-1", Demo: true, Error: "Błąd Google Search API: 403"})
	if err != nil {
		t.Fatalf("Record: %v", err)
	}
	if recorded.ID != "run-1" {
		t.Fatalf("explicit id must be kept, got %q", recorded.ID)
	}

	got, err := s.Get(ctx, "run-1")
	if err != nil {
		t.Fatalf("Get: %v", err)
	}
	if !got.Demo || got.Error != "Błąd Google Search API: 403" {
		t.Fatalf("unexpected run: %+v", got)
	}
	if got.Candidates == nil || len(got.Candidates) != 0 {
		t.Fatalf("expected empty non-nil candidates, got %#v", got.Candidates)
	}
}

func TestListNewestFirstWithLimit(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()
	base := time.Date(2025, 3, 1, 12, 0, 0, 0, time.UTC)

	for i, id := range []string{"a", "b", "c"} {
		if _, err := s.Record(ctx, Run{ID: id, CreatedAt: base.Add(time.Duration(i) * 1500 * time.Millisecond)}); err != nil {
			t.Fatalf("Record: %v", err)
		}
	}

	all, err := s.List(ctx, 0)
	if err != nil {
		t.Fatalf("List: %v", err)
	}
	if len(all) != 3 || all[0].ID != "c" || all[1].ID != "b" || all[2].ID != "a" {
		t.Fatalf("unexpected order: %+v", all)
	}

	limited, err := s.List(ctx, 2)
	if err != nil {
		t.Fatalf("List: %v", err)
	}
	if len(limited) != 2 || limited[0].ID != "c" {
		t.Fatalf("unexpected limited list: %+v", limited)
	}
}

func TestListEmpty(t *testing.T) {
	s := newTestStore(t)

	runs, err := s.List(context.Background(), 10)
	if err != nil {
		t.Fatalf("List: %v", err)
	}
	if runs == nil || len(runs) != 0 {
		t.Fatalf("expected empty non-nil list, got %#v", runs)
	}
}

func TestGetUnknownReturnsNotFound(t *testing.T) {
	s := newTestStore(t)

	_, err := s.Get(context.Background(), "missing")
	if !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}

func TestReopenKeepsRuns(t *testing.T) {
	dbPath := filepath.Join(t.TempDir(), "history.db")
	s, err := NewSQLiteStore(dbPath)
	if err != nil {
		t.Fatalf("NewSQLiteStore: %v", err)
	}
	if _, err := s.Record(context.Background(), Run{ID: "persisted"}); err != nil {
		t.Fatalf("Record: %v", err)
	}
	s.Close()

	reopened, err := NewSQLiteStore(dbPath)
	if err != nil {
		t.Fatalf("NewSQLiteStore: %v", err)
	}
	defer reopened.Close()

	if _, err := reopened.Get(context.Background(), "persisted"); err != nil {
		t.Fatalf("Get after reopen: %v", err)
	}
}
