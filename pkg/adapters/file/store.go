// Package file stores version markers as small JSON documents on disk.
package file

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/aretw0/waypoint/pkg/domain"
	"github.com/natefinch/atomic"
)

// record is the on-disk format of a marker.
type record struct {
	Key     string `json:"key"`
	Version string `json:"version"`
}

// Store implements ports.MarkerStore using the local filesystem.
// Each key is a JSON file in BasePath, replaced atomically on write.
type Store struct {
	BasePath string
}

// New creates a Store rooted at basePath.
// If basePath is empty, it defaults to the user config directory
// (e.g. ~/.config/waypoint).
func New(basePath string) *Store {
	if basePath == "" {
		basePath = DefaultPath()
	}
	return &Store{BasePath: basePath}
}

// DefaultPath returns <user config dir>/waypoint, or .waypoint when the
// config directory cannot be determined.
func DefaultPath() string {
	dir, err := os.UserConfigDir()
	if err != nil {
		return ".waypoint"
	}
	return filepath.Join(dir, "waypoint")
}

func (s *Store) path(key string) (string, error) {
	if key == "" {
		return "", fmt.Errorf("marker key cannot be empty")
	}
	if strings.ContainsAny(key, `/\`) || key == "." || key == ".." {
		return "", fmt.Errorf("invalid marker key %q", key)
	}
	return filepath.Join(s.BasePath, key+".json"), nil
}

// Get reads the marker file for key.
func (s *Store) Get(ctx context.Context, key string) (string, error) {
	p, err := s.path(key)
	if err != nil {
		return "", err
	}

	data, err := os.ReadFile(p)
	if err != nil {
		if os.IsNotExist(err) {
			return "", domain.ErrMarkerNotFound
		}
		return "", fmt.Errorf("failed to read marker file: %w", err)
	}

	var rec record
	if err := json.Unmarshal(data, &rec); err != nil {
		return "", fmt.Errorf("failed to unmarshal marker: %w", err)
	}
	return rec.Version, nil
}

// Set writes the marker file for key.
func (s *Store) Set(ctx context.Context, key, value string) error {
	p, err := s.path(key)
	if err != nil {
		return err
	}

	if err := os.MkdirAll(s.BasePath, 0o755); err != nil {
		return fmt.Errorf("failed to ensure marker directory: %w", err)
	}

	data, err := json.MarshalIndent(record{Key: key, Version: value}, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal marker: %w", err)
	}

	if err := atomic.WriteFile(p, bytes.NewReader(data)); err != nil {
		return fmt.Errorf("failed to write marker file: %w", err)
	}
	return nil
}

// Delete removes the marker file for key.
func (s *Store) Delete(ctx context.Context, key string) error {
	p, err := s.path(key)
	if err != nil {
		return err
	}

	if err := os.Remove(p); err != nil && !os.IsNotExist(err) {
		return fmt.Errorf("failed to delete marker file: %w", err)
	}
	return nil
}
