// Package store provides a SQLite-backed record of the last cursor offset
// in each edited file.
package store

import (
	"database/sql"
	"fmt"
	"path/filepath"
	"sync"
	"time"

	"github.com/rs/zerolog/log"
	_ "modernc.org/sqlite" // register sqlite driver
)

const schema = `
CREATE TABLE IF NOT EXISTS positions (
	path     TEXT PRIMARY KEY,
	offset   INTEGER NOT NULL,
	updated  INTEGER NOT NULL
);

CREATE INDEX IF NOT EXISTS idx_positions_updated ON positions(updated);
`

// Positions remembers where the cursor was when a file was last closed.
type Positions struct {
	mu  sync.Mutex
	db  *sql.DB
	ttl time.Duration
}

// Open creates or opens a position database at the given path.
// Entries not updated within ttl are purged on open.
func Open(dbPath string, ttl time.Duration) (*Positions, error) {
	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("open state db: %w", err)
	}

	// SQLite pragmas for performance.
	for _, pragma := range []string{
		"PRAGMA journal_mode = WAL",
		"PRAGMA synchronous = NORMAL",
		"PRAGMA busy_timeout = 5000",
	} {
		if _, err := db.Exec(pragma); err != nil {
			db.Close()
			return nil, fmt.Errorf("pragma %q: %w", pragma, err)
		}
	}

	if _, err := db.Exec(schema); err != nil {
		db.Close()
		return nil, fmt.Errorf("create schema: %w", err)
	}

	p := &Positions{db: db, ttl: ttl}
	p.purgeStale()
	return p, nil
}

// Close closes the database.
func (p *Positions) Close() error {
	if p == nil {
		return nil
	}
	return p.db.Close()
}

// Get returns the remembered offset for path.
// Safe to call on a nil receiver (returns miss).
func (p *Positions) Get(path string) (int, bool) {
	if p == nil {
		return 0, false
	}
	p.mu.Lock()
	defer p.mu.Unlock()

	cutoff := time.Now().Add(-p.ttl).Unix()
	var offset int
	err := p.db.QueryRow(
		"SELECT offset FROM positions WHERE path = ? AND updated > ?",
		key(path), cutoff,
	).Scan(&offset)
	if err != nil {
		return 0, false
	}
	return offset, true
}

// Set records offset for path. No-op on nil receiver.
func (p *Positions) Set(path string, offset int) {
	if p == nil {
		return
	}
	p.mu.Lock()
	defer p.mu.Unlock()

	_, err := p.db.Exec(
		"INSERT OR REPLACE INTO positions (path, offset, updated) VALUES (?, ?, ?)",
		key(path), offset, time.Now().Unix(),
	)
	if err != nil {
		log.Warn().Err(err).Str("file", path).Msg("failed to record cursor position")
	}
}

// purgeStale removes entries older than the TTL.
func (p *Positions) purgeStale() {
	cutoff := time.Now().Add(-p.ttl).Unix()
	res, err := p.db.Exec("DELETE FROM positions WHERE updated <= ?", cutoff)
	if err != nil {
		log.Warn().Err(err).Msg("failed to purge stale positions")
		return
	}
	if n, _ := res.RowsAffected(); n > 0 {
		log.Info().Int64("deleted", n).Msg("purged stale positions")
	}
}

// key makes relative and absolute spellings of a path share one entry.
func key(path string) string {
	if abs, err := filepath.Abs(path); err == nil {
		return abs
	}
	return filepath.Clean(path)
}
