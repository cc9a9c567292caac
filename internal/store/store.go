package store

import (
	"database/sql"
	"fmt"

	_ "github.com/mattn/go-sqlite3"
)

// Store records lint runs in SQLite: one row per run, one per checked file
// and one per diagnostic.
type Store struct {
	db *sql.DB
}

// NewStore opens a SQLite database at dbPath with WAL mode enabled.
func NewStore(dbPath string) (*Store, error) {
	db, err := sql.Open("sqlite3", dbPath+"?_journal_mode=WAL&_foreign_keys=ON&_busy_timeout=30000")
	if err != nil {
		return nil, fmt.Errorf("open database: %w", err)
	}
	if err := db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("ping database: %w", err)
	}
	return &Store{db: db}, nil
}

// Close closes the underlying database connection.
func (s *Store) Close() error {
	return s.db.Close()
}

// DB returns the underlying *sql.DB.
func (s *Store) DB() *sql.DB {
	return s.db
}

// Migrate creates the tables and indexes. Idempotent.
func (s *Store) Migrate() error {
	_, err := s.db.Exec(schemaDDL)
	if err != nil {
		return fmt.Errorf("migrate: %w", err)
	}
	return nil
}

const schemaDDL = `
CREATE TABLE IF NOT EXISTS runs (
  id              INTEGER PRIMARY KEY,
  started_at      TIMESTAMP NOT NULL,
  finished_at     TIMESTAMP NOT NULL,
  root            TEXT NOT NULL,
  files           INTEGER NOT NULL,
  failed          INTEGER NOT NULL,
  issues          INTEGER NOT NULL
);

CREATE TABLE IF NOT EXISTS file_results (
  id              INTEGER PRIMARY KEY,
  run_id          INTEGER NOT NULL REFERENCES runs(id) ON DELETE CASCADE,
  path            TEXT NOT NULL,
  hash            TEXT,
  status          TEXT NOT NULL,
  error           TEXT
);

CREATE TABLE IF NOT EXISTS diagnostics (
  id              INTEGER PRIMARY KEY,
  file_result_id  INTEGER NOT NULL REFERENCES file_results(id) ON DELETE CASCADE,
  severity        TEXT NOT NULL,
  code            TEXT NOT NULL,
  message         TEXT NOT NULL,
  help            TEXT,
  url             TEXT,
  line            INTEGER,
  col             INTEGER,
  labels          BLOB NOT NULL
);

CREATE INDEX IF NOT EXISTS idx_file_results_run ON file_results(run_id);
CREATE INDEX IF NOT EXISTS idx_file_results_path ON file_results(path);
CREATE INDEX IF NOT EXISTS idx_diagnostics_file ON diagnostics(file_result_id);
CREATE INDEX IF NOT EXISTS idx_diagnostics_code ON diagnostics(code);
`
