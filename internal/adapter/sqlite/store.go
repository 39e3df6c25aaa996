// Package sqlite persists the title mapping in a SQLite database. WAL mode
// plus a busy timeout covers concurrent processes sharing the store.
package sqlite

import (
	"database/sql"
	"fmt"
	"os"
	"path/filepath"

	_ "modernc.org/sqlite"

	"github.com/vertextoedge/site-title-cache/internal/domain"
	"github.com/vertextoedge/site-title-cache/internal/port"
)

// Store implements port.TitleStore using SQLite
type Store struct {
	db *sql.DB
}

// Ensure Store implements port.TitleStore
var _ port.TitleStore = (*Store)(nil)

// Open opens a connection to the SQLite database, creating the schema on
// first use.
func Open(dbPath string) (*Store, error) {
	dir := filepath.Dir(dbPath)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("failed to create state directory: %w", err)
	}

	db, err := sql.Open("sqlite", dbPath+"?_pragma=journal_mode(WAL)&_pragma=busy_timeout(5000)")
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	pragmas := []string{
		"PRAGMA journal_mode = WAL",
		"PRAGMA synchronous = NORMAL",
		"PRAGMA temp_store = MEMORY",
		"PRAGMA busy_timeout = 5000",
	}

	for _, pragma := range pragmas {
		if _, err := db.Exec(pragma); err != nil {
			db.Close()
			return nil, fmt.Errorf("failed to set pragma %s: %w", pragma, err)
		}
	}

	store := &Store{db: db}

	if err := store.migrate(); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to migrate database: %w", err)
	}

	return store, nil
}

// migrate creates or updates the database schema
func (s *Store) migrate() error {
	migrations := []string{
		`CREATE TABLE IF NOT EXISTS titles (
			file_id TEXT PRIMARY KEY,
			title TEXT NOT NULL,
			updated_at TIMESTAMP DEFAULT CURRENT_TIMESTAMP
		)`,
	}

	for _, migration := range migrations {
		if _, err := s.db.Exec(migration); err != nil {
			return err
		}
	}
	return nil
}

// Load implements port.TitleStore. An empty table reports
// domain.ErrCacheMissing: a zero-entry mapping carries no information, so it
// is indistinguishable from an absent one and both take the cold path.
func (s *Store) Load() (map[string]string, error) {
	rows, err := s.db.Query(`SELECT file_id, title FROM titles`)
	if err != nil {
		return nil, fmt.Errorf("failed to query titles: %w", err)
	}
	defer rows.Close()

	titles := make(map[string]string)
	for rows.Next() {
		var fileID, title string
		if err := rows.Scan(&fileID, &title); err != nil {
			return nil, fmt.Errorf("failed to scan title row: %w", err)
		}
		titles[fileID] = title
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate title rows: %w", err)
	}

	if len(titles) == 0 {
		return nil, domain.ErrCacheMissing
	}
	return titles, nil
}

// Save implements port.TitleStore. The whole mapping is replaced in one
// transaction so concurrent readers never observe a partial state.
func (s *Store) Save(titles map[string]string) error {
	tx, err := s.db.Begin()
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	if _, err := tx.Exec(`DELETE FROM titles`); err != nil {
		return fmt.Errorf("failed to clear titles: %w", err)
	}

	stmt, err := tx.Prepare(`INSERT INTO titles (file_id, title) VALUES (?, ?)`)
	if err != nil {
		return fmt.Errorf("failed to prepare insert: %w", err)
	}
	defer stmt.Close()

	for fileID, title := range titles {
		if _, err := stmt.Exec(fileID, title); err != nil {
			return fmt.Errorf("failed to insert title for %s: %w", fileID, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit titles: %w", err)
	}
	return nil
}

// Close implements port.TitleStore
func (s *Store) Close() error {
	if s.db != nil {
		return s.db.Close()
	}
	return nil
}
