// Package store persists a built documentation forest to SQLite so other
// tooling can query it without rebuilding the index.
package store

import (
	"database/sql"
	"fmt"

	_ "github.com/mattn/go-sqlite3"
)

// Store is the SQLite data access layer for a documentation snapshot.
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

// DB returns the underlying *sql.DB for use in transactions.
func (s *Store) DB() *sql.DB {
	return s.db
}

// Migrate creates all tables and indexes. Idempotent.
func (s *Store) Migrate() error {
	_, err := s.db.Exec(schemaDDL)
	if err != nil {
		return fmt.Errorf("migrate: %w", err)
	}
	return nil
}

const schemaDDL = `
CREATE TABLE IF NOT EXISTS entities (
  id               INTEGER PRIMARY KEY,
  name             TEXT NOT NULL,
  qualified_name   TEXT NOT NULL,
  kind             TEXT NOT NULL,
  parent_entity_id INTEGER REFERENCES entities(id),
  ordinal          INTEGER NOT NULL DEFAULT 0,
  is_private       BOOLEAN DEFAULT FALSE,
  description      TEXT,
  default_value    TEXT,
  see_ref          TEXT,
  source           TEXT,
  file             TEXT,
  line             INTEGER
);

CREATE TABLE IF NOT EXISTS entity_types (
  id            INTEGER PRIMARY KEY,
  entity_id     INTEGER NOT NULL REFERENCES entities(id),
  ordinal       INTEGER NOT NULL,
  type_expr     TEXT NOT NULL
);

CREATE TABLE IF NOT EXISTS entity_params (
  id            INTEGER PRIMARY KEY,
  entity_id     INTEGER NOT NULL REFERENCES entities(id),
  ordinal       INTEGER NOT NULL,
  name          TEXT,
  type_expr     TEXT,
  is_return     BOOLEAN DEFAULT FALSE,
  description   TEXT
);

CREATE TABLE IF NOT EXISTS pending_resolutions (
  id            INTEGER PRIMARY KEY,
  name          TEXT NOT NULL
);

CREATE TABLE IF NOT EXISTS metadata (
  key           TEXT PRIMARY KEY,
  value         TEXT
);

CREATE INDEX IF NOT EXISTS idx_entities_name ON entities(name);
CREATE INDEX IF NOT EXISTS idx_entities_qualified ON entities(qualified_name);
CREATE INDEX IF NOT EXISTS idx_entities_kind ON entities(kind);
CREATE INDEX IF NOT EXISTS idx_entities_parent ON entities(parent_entity_id);
CREATE INDEX IF NOT EXISTS idx_entity_types_entity ON entity_types(entity_id);
CREATE INDEX IF NOT EXISTS idx_entity_params_entity ON entity_params(entity_id);
`

// SetMetadata stores a key/value pair, replacing any existing value.
func (s *Store) SetMetadata(key, value string) error {
	_, err := s.db.Exec(
		`INSERT INTO metadata (key, value) VALUES (?, ?)
		 ON CONFLICT(key) DO UPDATE SET value = excluded.value`,
		key, value,
	)
	if err != nil {
		return fmt.Errorf("set metadata: %w", err)
	}
	return nil
}

// GetMetadata returns the value for key, or "" if the key is absent.
func (s *Store) GetMetadata(key string) (string, error) {
	var value string
	err := s.db.QueryRow("SELECT value FROM metadata WHERE key = ?", key).Scan(&value)
	if err == sql.ErrNoRows {
		return "", nil
	}
	if err != nil {
		return "", fmt.Errorf("get metadata: %w", err)
	}
	return value, nil
}
