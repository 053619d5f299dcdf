// Package cache remembers which files are already annotated, so repeated
// runs can skip them without parsing. Entries are keyed by path and hold a
// digest of the configuration and file content seen on the last run.
package cache

import (
	"crypto/sha256"
	"database/sql"
	"encoding/hex"
	"encoding/json"
	"fmt"
	"time"

	"github.com/agentic-research/annotate/api"
	_ "modernc.org/sqlite"
)

// version is mixed into every digest; bump it when the pass output changes
// for the same input.
const version = "annotate-cache-1"

// Entry records that the file at Path with content digest Digest needs no
// further changes.
type Entry struct {
	Path   string
	Digest string
}

// Cache is a SQLite-backed store of up-to-date files. It is safe for
// concurrent use.
type Cache struct {
	db *sql.DB
}

// Open opens or creates the cache database at dbPath.
func Open(dbPath string) (*Cache, error) {
	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("open sqlite %s: %w", dbPath, err)
	}

	if _, err := db.Exec("PRAGMA journal_mode = WAL"); err != nil {
		_ = db.Close()
		return nil, err
	}

	schema := `
	CREATE TABLE IF NOT EXISTS files (
		path TEXT PRIMARY KEY,
		digest TEXT NOT NULL,
		mtime INTEGER NOT NULL
	) WITHOUT ROWID;
	`
	if _, err := db.Exec(schema); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("create schema: %w", err)
	}
	return &Cache{db: db}, nil
}

// Digest identifies src annotated under opts.
func Digest(opts api.Options, src []byte) string {
	h := sha256.New()
	h.Write([]byte(version))
	h.Write([]byte{0})
	cfg, _ := json.Marshal(opts) // Options always marshals
	h.Write(cfg)
	h.Write([]byte{0})
	h.Write(src)
	return hex.EncodeToString(h.Sum(nil))
}

// Fresh reports whether path was last recorded with digest.
func (c *Cache) Fresh(path, digest string) (bool, error) {
	var stored string
	err := c.db.QueryRow("SELECT digest FROM files WHERE path = ?", path).Scan(&stored)
	if err == sql.ErrNoRows {
		return false, nil
	}
	if err != nil {
		return false, fmt.Errorf("query %s: %w", path, err)
	}
	return stored == digest, nil
}

// Store records entries in one transaction, replacing earlier entries for
// the same paths.
func (c *Cache) Store(entries []Entry) error {
	if len(entries) == 0 {
		return nil
	}
	tx, err := c.db.Begin()
	if err != nil {
		return err
	}
	stmt, err := tx.Prepare(`INSERT OR REPLACE INTO files (path, digest, mtime) VALUES (?, ?, ?)`)
	if err != nil {
		_ = tx.Rollback()
		return err
	}
	defer func() { _ = stmt.Close() }()

	now := time.Now().UnixNano()
	for _, e := range entries {
		if _, err := stmt.Exec(e.Path, e.Digest, now); err != nil {
			_ = tx.Rollback()
			return fmt.Errorf("store %s: %w", e.Path, err)
		}
	}
	return tx.Commit()
}

// Forget drops the entry for path, if any.
func (c *Cache) Forget(path string) error {
	_, err := c.db.Exec("DELETE FROM files WHERE path = ?", path)
	return err
}

// Close closes the database.
func (c *Cache) Close() error {
	return c.db.Close()
}
