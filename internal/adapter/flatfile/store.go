// Package flatfile persists the title mapping as a single JSON file. The
// file is shared between concurrent processes, so every read takes a shared
// advisory lock and every write takes an exclusive one on a sidecar lock
// file; the payload itself is replaced atomically via temp file + rename.
package flatfile

import (
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/gofrs/flock"

	"github.com/vertextoedge/site-title-cache/internal/domain"
	"github.com/vertextoedge/site-title-cache/internal/port"
)

// Store implements port.TitleStore over a single serialized-mapping file
type Store struct {
	path string
	lock *flock.Flock
}

// Ensure Store implements port.TitleStore
var _ port.TitleStore = (*Store)(nil)

// Open prepares a store at the given path, creating the parent directory.
// The mapping file itself is created lazily on first Save.
func Open(path string) (*Store, error) {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("failed to create state directory: %w", err)
	}

	return &Store{
		path: path,
		lock: flock.New(path + ".lock"),
	}, nil
}

// Path returns the mapping file path.
func (s *Store) Path() string {
	return s.path
}

// Load implements port.TitleStore. A missing or empty mapping file reports
// domain.ErrCacheMissing; an unreadable or undecodable one yields an error
// so the caller can fall back to a cold start.
func (s *Store) Load() (map[string]string, error) {
	if err := s.lock.RLock(); err != nil {
		return nil, fmt.Errorf("failed to acquire shared lock: %w", err)
	}
	defer s.lock.Unlock()

	data, err := os.ReadFile(s.path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, domain.ErrCacheMissing
		}
		return nil, fmt.Errorf("failed to read title cache: %w", err)
	}

	if len(data) == 0 {
		return nil, domain.ErrCacheMissing
	}

	var titles map[string]string
	if err := json.Unmarshal(data, &titles); err != nil {
		return nil, fmt.Errorf("%w: %v", domain.ErrCacheCorrupt, err)
	}
	if titles == nil {
		titles = map[string]string{}
	}

	return titles, nil
}

// Save implements port.TitleStore
func (s *Store) Save(titles map[string]string) error {
	data, err := json.MarshalIndent(titles, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal title cache: %w", err)
	}

	if err := s.lock.Lock(); err != nil {
		return fmt.Errorf("failed to acquire exclusive lock: %w", err)
	}
	defer s.lock.Unlock()

	tmpPath := s.path + ".tmp"
	if err := os.WriteFile(tmpPath, data, 0o644); err != nil {
		return fmt.Errorf("failed to write temp file: %w", err)
	}

	if err := os.Rename(tmpPath, s.path); err != nil {
		os.Remove(tmpPath)
		return fmt.Errorf("failed to replace title cache: %w", err)
	}

	return nil
}

// Close implements port.TitleStore
func (s *Store) Close() error {
	return nil
}
