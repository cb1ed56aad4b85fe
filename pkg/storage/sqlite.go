package storage

import (
	"database/sql"
	"fmt"
	"os"
	"path/filepath"
	"time"

	_ "modernc.org/sqlite" // pure Go SQLite driver
)

// Snapshot is one cached ingestion result: the raw box JSON a source
// produced for a given content hash, and when it was fetched.
type Snapshot struct {
	SourceID    string
	ContentHash string
	BoxJSON     string
	FetchedAt   time.Time
}

// SnapshotCache persists the most recent successful ingestion per
// (source id, content hash) pair, so a remote or slow local source need
// not be re-fetched to re-run a layout against unchanged data.
type SnapshotCache struct {
	db *sql.DB
}

// NewSnapshotCache opens (creating if necessary) the cache database at
// ~/.boxlayout/cache.db.
func NewSnapshotCache() (*SnapshotCache, error) {
	homeDir, err := os.UserHomeDir()
	if err != nil {
		return nil, fmt.Errorf("failed to get user home directory: %w", err)
	}
	return NewSnapshotCacheWithPath(filepath.Join(homeDir, ".boxlayout", "cache.db"))
}

// NewSnapshotCacheWithPath opens the cache database at an explicit path,
// useful for tests.
func NewSnapshotCacheWithPath(dbPath string) (*SnapshotCache, error) {
	if err := os.MkdirAll(filepath.Dir(dbPath), 0755); err != nil {
		return nil, fmt.Errorf("failed to create cache directory: %w", err)
	}

	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("failed to open cache database: %w", err)
	}
	db.SetMaxOpenConns(1)
	db.SetMaxIdleConns(1)

	if err := InitializeDatabase(db); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("failed to initialize cache database: %w", err)
	}
	return &SnapshotCache{db: db}, nil
}

// Close releases the underlying database connection.
func (c *SnapshotCache) Close() error {
	return c.db.Close()
}

// Put records a snapshot, overwriting any prior entry for the same source
// and content hash.
func (c *SnapshotCache) Put(s Snapshot) error {
	_, err := c.db.Exec(
		`INSERT INTO snapshots (source_id, content_hash, box_json, fetched_at)
		 VALUES (?, ?, ?, ?)
		 ON CONFLICT(source_id, content_hash) DO UPDATE SET box_json = excluded.box_json, fetched_at = excluded.fetched_at`,
		s.SourceID, s.ContentHash, s.BoxJSON, s.FetchedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to store snapshot: %w", err)
	}
	return nil
}

// Get returns the cached snapshot for (sourceID, contentHash), if present.
func (c *SnapshotCache) Get(sourceID, contentHash string) (Snapshot, bool, error) {
	row := c.db.QueryRow(
		`SELECT source_id, content_hash, box_json, fetched_at FROM snapshots WHERE source_id = ? AND content_hash = ?`,
		sourceID, contentHash,
	)
	var s Snapshot
	if err := row.Scan(&s.SourceID, &s.ContentHash, &s.BoxJSON, &s.FetchedAt); err != nil {
		if err == sql.ErrNoRows {
			return Snapshot{}, false, nil
		}
		return Snapshot{}, false, fmt.Errorf("failed to read snapshot: %w", err)
	}
	return s, true, nil
}

// Latest returns the most recently fetched snapshot for sourceID,
// regardless of content hash, or ok=false if none exists.
func (c *SnapshotCache) Latest(sourceID string) (Snapshot, bool, error) {
	row := c.db.QueryRow(
		`SELECT source_id, content_hash, box_json, fetched_at FROM snapshots
		 WHERE source_id = ? ORDER BY fetched_at DESC LIMIT 1`,
		sourceID,
	)
	var s Snapshot
	if err := row.Scan(&s.SourceID, &s.ContentHash, &s.BoxJSON, &s.FetchedAt); err != nil {
		if err == sql.ErrNoRows {
			return Snapshot{}, false, nil
		}
		return Snapshot{}, false, fmt.Errorf("failed to read latest snapshot: %w", err)
	}
	return s, true, nil
}
