package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"entgo.io/ent/dialect"
	entsql "entgo.io/ent/dialect/sql"

	// Pure Go SQLite driver (no CGO).
	_ "modernc.org/sqlite"
)

// ErrNotFound is returned when a referenced row does not exist.
var ErrNotFound = errors.New("not found")

// Table names.
const (
	tableQuestions = "questions"
	tableAttempts  = "attempts"
	tableCutoffs   = "cutoffs"
	tableLLMEvents = "llm_events"
)

// Store is the SQLite-backed attempt log, question bank and cutoff table.
// Statements are built with ent's SQL builder and run through the ent
// driver.
type Store struct {
	db  *sql.DB
	drv *entsql.Driver
	seq *sequenceCounter
}

// Open creates a new Store connected to the SQLite database at dsn.
// It applies recommended pragmas and creates the schema if needed.
func Open(dsn string) (*Store, error) {
	db, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, fmt.Errorf("open database: %w", err)
	}

	if err := applyPragmas(db); err != nil {
		db.Close()
		return nil, fmt.Errorf("apply pragmas: %w", err)
	}

	if err := migrate(context.Background(), db); err != nil {
		db.Close()
		return nil, fmt.Errorf("migrate: %w", err)
	}

	seq, err := newSequenceCounter(db)
	if err != nil {
		db.Close()
		return nil, err
	}

	return &Store{db: db, drv: entsql.OpenDB(dialect.SQLite, db), seq: seq}, nil
}

// builder returns a statement builder for the store's dialect.
func (s *Store) builder() *entsql.DialectBuilder {
	return entsql.Dialect(s.drv.Dialect())
}

// query runs a built SELECT through the ent driver.
func (s *Store) query(ctx context.Context, q entsql.Querier) (*entsql.Rows, error) {
	stmt, args := q.Query()
	rows := &entsql.Rows{}
	if err := s.drv.Query(ctx, stmt, args, rows); err != nil {
		return nil, err
	}
	return rows, nil
}

// exec runs a built INSERT or UPDATE through the ent driver.
func (s *Store) exec(ctx context.Context, q entsql.Querier) (sql.Result, error) {
	stmt, args := q.Query()
	var res sql.Result
	if err := s.drv.Exec(ctx, stmt, args, &res); err != nil {
		return nil, err
	}
	return res, nil
}

// DB returns the underlying *sql.DB for raw queries.
func (s *Store) DB() *sql.DB {
	return s.db
}

// Close closes the database connection.
func (s *Store) Close() error {
	return s.drv.Close()
}

// EventRepo returns the LLM event log backed by this store.
func (s *Store) EventRepo() EventRepo {
	return &eventRepo{store: s}
}

// applyPragmas configures SQLite for optimal single-user performance.
func applyPragmas(db *sql.DB) error {
	pragmas := []string{
		"PRAGMA journal_mode = WAL",
		"PRAGMA busy_timeout = 5000",
		"PRAGMA foreign_keys = ON",
		"PRAGMA synchronous = NORMAL",
	}
	for _, p := range pragmas {
		if _, err := db.Exec(p); err != nil {
			return fmt.Errorf("%s: %w", p, err)
		}
	}
	return nil
}

// DefaultDBPath resolves the database file path in priority order:
// 1. EXAMLENS_DB environment variable
// 2. $XDG_DATA_HOME/examlens/examlens.db
// 3. ~/.local/share/examlens/examlens.db
func DefaultDBPath() (string, error) {
	if p := os.Getenv("EXAMLENS_DB"); p != "" {
		return p, EnsureDir(p)
	}

	dataHome := os.Getenv("XDG_DATA_HOME")
	if dataHome == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return "", fmt.Errorf("resolve home dir: %w", err)
		}
		dataHome = filepath.Join(home, ".local", "share")
	}

	p := filepath.Join(dataHome, "examlens", "examlens.db")
	return p, EnsureDir(p)
}

// EnsureDir creates the parent directory of path if it doesn't exist.
func EnsureDir(path string) error {
	dir := filepath.Dir(path)
	return os.MkdirAll(dir, 0o755)
}
