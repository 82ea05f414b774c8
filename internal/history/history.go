// internal/history/history.go
//
// SQLite-backed history of solving runs.
// Responsibilities:
//   - Opening the database with safe defaults (WAL, busy timeout,
//     foreign keys) and ensuring the schema exists.
//   - Recording one row per run (outcome, attempts, dictionary size,
//     duration).
//   - Reporting recent runs and aggregate stats (solve rate, average
//     attempts, current streak).

package history

import (
	"context"
	"database/sql"
	"fmt"
	"os"
	"path/filepath"
	"time"

	_ "github.com/mattn/go-sqlite3"
)

const schema = `
CREATE TABLE IF NOT EXISTS runs (
    id          INTEGER PRIMARY KEY AUTOINCREMENT,
    word        TEXT NOT NULL DEFAULT '',
    state       TEXT NOT NULL,
    attempts    INTEGER NOT NULL DEFAULT 0,
    dict_size   INTEGER NOT NULL DEFAULT 0,
    elapsed_ms  INTEGER NOT NULL DEFAULT 0,
    started_at  TEXT NOT NULL
);`

// Run is one recorded solving run.
type Run struct {
	ID        int64
	Word      string // solved word, empty unless State is "solved"
	State     string // "solved" | "exhausted" | "failed"
	Attempts  int
	DictSize  int
	ElapsedMs int
	StartedAt time.Time
}

// Stats aggregates the full run history.
type Stats struct {
	Played      int
	Solved      int
	AvgAttempts float64 // over solved runs only; 0 when none
	Streak      int     // consecutive solved runs counting back from the latest
}

// Store wraps the SQLite handle.
type Store struct {
	db *sql.DB
}

// Open opens (and creates if missing) the history database at path.
//
//   - Ensures the parent directory exists for relative paths like
//     ./data/history.db.
//   - Configures busy timeout and WAL journaling.
//   - Enforces foreign keys and creates the schema.
func Open(path string) (*Store, error) {
	dir := filepath.Dir(path)
	if dir != "." && dir != "" {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return nil, fmt.Errorf("mkdir %s: %w", dir, err)
		}
	}

	db, err := sql.Open("sqlite3", path+"?_busy_timeout=5000&_journal_mode=WAL")
	if err != nil {
		return nil, err
	}
	if _, err := db.Exec(`PRAGMA foreign_keys = ON; PRAGMA journal_mode = WAL;`); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("set pragmas: %w", err)
	}
	if _, err := db.Exec(schema); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("create schema: %w", err)
	}
	return &Store{db: db}, nil
}

// Close releases the database handle.
func (s *Store) Close() error { return s.db.Close() }

// Record inserts one run row.
func (s *Store) Record(ctx context.Context, r Run) error {
	_, err := s.db.ExecContext(ctx, `
        INSERT INTO runs (word, state, attempts, dict_size, elapsed_ms, started_at)
        VALUES (?,?,?,?,?,?)`,
		r.Word, r.State, r.Attempts, r.DictSize, r.ElapsedMs,
		r.StartedAt.UTC().Format(time.RFC3339),
	)
	return err
}

// Recent returns the newest runs, most recent first. Limit defaults to 20.
func (s *Store) Recent(ctx context.Context, limit int) ([]Run, error) {
	if limit <= 0 {
		limit = 20
	}
	rows, err := s.db.QueryContext(ctx, `
        SELECT id, word, state, attempts, dict_size, elapsed_ms, started_at
        FROM runs ORDER BY id DESC LIMIT ?`, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := make([]Run, 0, limit)
	for rows.Next() {
		var r Run
		var started string
		if err := rows.Scan(&r.ID, &r.Word, &r.State, &r.Attempts, &r.DictSize, &r.ElapsedMs, &started); err != nil {
			return nil, err
		}
		r.StartedAt, _ = time.Parse(time.RFC3339, started)
		out = append(out, r)
	}
	return out, rows.Err()
}

// Stats computes aggregates over all recorded runs. The streak counts
// consecutive solved runs backwards from the most recent one; any other
// outcome breaks it, mirroring the usual Wordle streak rules.
func (s *Store) Stats(ctx context.Context) (Stats, error) {
	var st Stats
	row := s.db.QueryRowContext(ctx, `
        SELECT COUNT(*),
               COALESCE(SUM(CASE WHEN state='solved' THEN 1 ELSE 0 END), 0),
               COALESCE(AVG(CASE WHEN state='solved' THEN attempts END), 0)
        FROM runs`)
	if err := row.Scan(&st.Played, &st.Solved, &st.AvgAttempts); err != nil {
		return st, err
	}

	rows, err := s.db.QueryContext(ctx, `SELECT state FROM runs ORDER BY id DESC`)
	if err != nil {
		return st, err
	}
	defer rows.Close()
	for rows.Next() {
		var state string
		if err := rows.Scan(&state); err != nil {
			return st, err
		}
		if state != "solved" {
			break
		}
		st.Streak++
	}
	return st, rows.Err()
}
