// Package sqlite stores version markers in a SQLite table.
//
// The caller owns the *sql.DB; open it with the pure-Go driver:
//
//	import _ "modernc.org/sqlite"
//	db, err := sql.Open("sqlite", "file:waypoint.db")
package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/aretw0/waypoint/pkg/domain"
)

// Store implements ports.MarkerStore on top of database/sql.
type Store struct {
	db *sql.DB
}

// New creates the markers table if needed and returns the store.
func New(db *sql.DB) (*Store, error) {
	s := &Store{db: db}
	if err := s.initSchema(); err != nil {
		return nil, fmt.Errorf("failed to init marker schema: %w", err)
	}
	return s, nil
}

func (s *Store) initSchema() error {
	_, err := s.db.Exec(`
		CREATE TABLE IF NOT EXISTS version_markers (
			key TEXT PRIMARY KEY,
			version TEXT NOT NULL,
			updated_at INTEGER NOT NULL
		);
	`)
	return err
}

// Get reads the marker.
func (s *Store) Get(ctx context.Context, key string) (string, error) {
	var version string
	err := s.db.QueryRowContext(ctx,
		`SELECT version FROM version_markers WHERE key = ?`, key,
	).Scan(&version)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return "", domain.ErrMarkerNotFound
		}
		return "", fmt.Errorf("failed to query marker: %w", err)
	}
	return version, nil
}

// Set upserts the marker.
func (s *Store) Set(ctx context.Context, key, value string) error {
	_, err := s.db.ExecContext(ctx, `
		INSERT INTO version_markers (key, version, updated_at)
		VALUES (?, ?, ?)
		ON CONFLICT(key) DO UPDATE SET
			version = excluded.version,
			updated_at = excluded.updated_at`,
		key, value, time.Now().UnixNano(),
	)
	if err != nil {
		return fmt.Errorf("failed to save marker: %w", err)
	}
	return nil
}

// Delete removes the marker.
func (s *Store) Delete(ctx context.Context, key string) error {
	if _, err := s.db.ExecContext(ctx, `DELETE FROM version_markers WHERE key = ?`, key); err != nil {
		return fmt.Errorf("failed to delete marker: %w", err)
	}
	return nil
}
