// Package sqlite implements the slot store over a local SQLite database.
package sqlite

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/example/cruze-calendar/internal/persistence"
	_ "modernc.org/sqlite"
)

// Store persists slot documents in a single-table SQLite database.
type Store struct {
	db *sql.DB
}

// Open connects to the database identified by dsn. The schema is applied by
// Migrate before first use.
func Open(dsn string) (*Store, error) {
	db, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, fmt.Errorf("sqlite: open %q: %w", dsn, err)
	}
	// A single writer is expected; serialize access instead of failing on
	// SQLITE_BUSY.
	db.SetMaxOpenConns(1)
	return &Store{db: db}, nil
}

// Close releases the underlying database handle.
func (s *Store) Close() error {
	if s == nil || s.db == nil {
		return nil
	}
	return s.db.Close()
}

// Ping verifies the database is reachable.
func (s *Store) Ping(ctx context.Context) error {
	return s.db.PingContext(ctx)
}

// Migrate creates the slot table when it does not exist yet. It is safe to
// call on every startup.
func (s *Store) Migrate(ctx context.Context) error {
	const schema = `
		CREATE TABLE IF NOT EXISTS slots (
			name       TEXT PRIMARY KEY,
			document   TEXT NOT NULL,
			updated_at TEXT NOT NULL
		)
	`
	if _, err := s.db.ExecContext(ctx, schema); err != nil {
		return fmt.Errorf("sqlite: apply schema: %w", err)
	}
	return nil
}

// ReadSlot returns the document stored under name.
func (s *Store) ReadSlot(ctx context.Context, name string) ([]byte, error) {
	const query = `SELECT document FROM slots WHERE name = ?`

	var document string
	err := s.db.QueryRowContext(ctx, query, name).Scan(&document)
	if err == sql.ErrNoRows {
		return nil, persistence.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("sqlite: read slot %q: %w", name, err)
	}
	return []byte(document), nil
}

// WriteSlot replaces the document stored under name.
func (s *Store) WriteSlot(ctx context.Context, name string, document []byte) error {
	const query = `
		INSERT INTO slots (name, document, updated_at)
		VALUES (?, ?, ?)
		ON CONFLICT(name) DO UPDATE SET
			document   = excluded.document,
			updated_at = excluded.updated_at
	`
	updatedAt := time.Now().UTC().Format(time.RFC3339)
	if _, err := s.db.ExecContext(ctx, query, name, string(document), updatedAt); err != nil {
		return fmt.Errorf("sqlite: write slot %q: %w", name, err)
	}
	return nil
}
