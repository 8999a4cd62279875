package history

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	_ "modernc.org/sqlite"

	"github.com/spigell/hr-scout/internal/talent"
)

// Fixed width so that text ordering in SQLite matches chronological ordering.
const timeLayout = "2006-01-02T15:04:05.000000000Z07:00"

// ErrNotFound is returned by Get when no run has the requested id.
var ErrNotFound = errors.New("search run not found")

// Run is a single recorded search.
type Run struct {
	ID         string             `json:"id" yaml:"id"`
	CreatedAt  time.Time          `json:"created_at" yaml:"created_at"`
	Locale     talent.Locale      `json:"locale" yaml:"locale"`
	Scope      talent.Scope       `json:"scope" yaml:"scope"`
	Brief      string             `json:"brief" yaml:"brief"`
	Query      string             `json:"query" yaml:"query"`
	Demo       bool               `json:"demo" yaml:"demo"`
	Error      string             `json:"error,omitempty" yaml:"error,omitempty"`
	Candidates []talent.Candidate `json:"candidates" yaml:"candidates"`
}

// SQLiteStore keeps an append-only log of search runs in a SQLite database.
type SQLiteStore struct {
	db  *sql.DB
	now func() time.Time
}

// NewSQLiteStore opens (or creates) a SQLite database at dbPath and ensures the
// search_runs table exists.
func NewSQLiteStore(dbPath string) (*SQLiteStore, error) {
	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("opening sqlite db: %w", err)
	}

	if err := db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("pinging sqlite db: %w", err)
	}

	createTable := `CREATE TABLE IF NOT EXISTS search_runs (
		id         TEXT PRIMARY KEY,
		created_at TEXT NOT NULL,
		locale     TEXT NOT NULL,
		scope      TEXT NOT NULL,
		brief      TEXT NOT NULL,
		query      TEXT NOT NULL,
		demo       INTEGER NOT NULL DEFAULT 0,
		error      TEXT NOT NULL DEFAULT '',
		candidates TEXT NOT NULL DEFAULT '[]'
	)`
	if _, err := db.Exec(createTable); err != nil {
		db.Close()
		return nil, fmt.Errorf("creating search_runs table: %w", err)
	}

	return &SQLiteStore{db: db, now: time.Now}, nil
}

// Record stores the run, assigning an id and timestamp when they are empty.
// The stored run is returned.
func (s *SQLiteStore) Record(ctx context.Context, run Run) (Run, error) {
	if run.ID == "" {
		run.ID = uuid.NewString()
	}
	if run.CreatedAt.IsZero() {
		run.CreatedAt = s.now()
	}
	run.CreatedAt = run.CreatedAt.UTC()
	run.Candidates = talent.Copy(run.Candidates)

	candidates, err := json.Marshal(run.Candidates)
	if err != nil {
		return Run{}, fmt.Errorf("encoding candidates: %w", err)
	}

	_, err = s.db.ExecContext(ctx,
		`INSERT INTO search_runs (id, created_at, locale, scope, brief, query, demo, error, candidates)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		run.ID, run.CreatedAt.Format(timeLayout), string(run.Locale), string(run.Scope),
		run.Brief, run.Query, run.Demo, run.Error, string(candidates),
	)
	if err != nil {
		return Run{}, fmt.Errorf("recording search run %s: %w", run.ID, err)
	}
	return run, nil
}

// List returns up to limit runs, newest first. A non-positive limit returns all runs.
func (s *SQLiteStore) List(ctx context.Context, limit int) ([]Run, error) {
	query := `SELECT id, created_at, locale, scope, brief, query, demo, error, candidates
		FROM search_runs ORDER BY created_at DESC, id`
	args := []any{}
	if limit > 0 {
		query += " LIMIT ?"
		args = append(args, limit)
	}

	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("listing search runs: %w", err)
	}
	defer rows.Close()

	runs := []Run{}
	for rows.Next() {
		run, err := scanRun(rows)
		if err != nil {
			return nil, err
		}
		runs = append(runs, run)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("listing search runs: %w", err)
	}
	return runs, nil
}

// Get returns the run with the given id or ErrNotFound.
func (s *SQLiteStore) Get(ctx context.Context, id string) (Run, error) {
	row := s.db.QueryRowContext(ctx,
		`SELECT id, created_at, locale, scope, brief, query, demo, error, candidates
		 FROM search_runs WHERE id = ?`, id)

	run, err := scanRun(row)
	if errors.Is(err, sql.ErrNoRows) {
		return Run{}, fmt.Errorf("%w: %s", ErrNotFound, id)
	}
	return run, err
}

// Close closes the underlying database connection.
func (s *SQLiteStore) Close() error {
	return s.db.Close()
}

type scanner interface {
	Scan(dest ...any) error
}

func scanRun(row scanner) (Run, error) {
	var (
		run        Run
		createdAt  string
		locale     string
		scope      string
		candidates string
	)
	if err := row.Scan(&run.ID, &createdAt, &locale, &scope, &run.Brief, &run.Query, &run.Demo, &run.Error, &candidates); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return Run{}, err
		}
		return Run{}, fmt.Errorf("reading search run: %w", err)
	}

	ts, err := time.Parse(timeLayout, createdAt)
	if err != nil {
		return Run{}, fmt.Errorf("parsing time of run %s: %w", run.ID, err)
	}
	run.CreatedAt = ts
	run.Locale = talent.Locale(locale)
	run.Scope = talent.Scope(scope)

	if err := json.Unmarshal([]byte(candidates), &run.Candidates); err != nil {
		return Run{}, fmt.Errorf("decoding candidates of run %s: %w", run.ID, err)
	}
	run.Candidates = talent.Copy(run.Candidates)
	return run, nil
}
