// Package cache is an optional sqlite-backed read-through cache for
// parsed content items, keyed by source file modification time. A stale
// or missing row simply means the caller re-parses; the cache can never
// make a load fail.
package cache

import (
	"database/sql"
	"fmt"
	"os"
	"path/filepath"

	"github.com/adrg/xdg"
	"go.uber.org/zap"
	_ "modernc.org/sqlite"
)

type Cache struct {
	readDB  *sql.DB
	writeDB *sql.DB
	log     *zap.Logger
}

// DefaultPath returns the cache database location under the user cache
// directory.
func DefaultPath() string {
	return filepath.Join(xdg.CacheHome, "folio", "folio.db")
}

func Open(dbPath string, log *zap.Logger) (*Cache, error) {
	if log == nil {
		log = zap.NewNop()
	}
	if err := os.MkdirAll(filepath.Dir(dbPath), 0o755); err != nil {
		return nil, fmt.Errorf("creating cache dir: %w", err)
	}

	writeDB, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("opening write db: %w", err)
	}
	writeDB.SetMaxOpenConns(1)

	readDB, err := sql.Open("sqlite", dbPath)
	if err != nil {
		writeDB.Close()
		return nil, fmt.Errorf("opening read db: %w", err)
	}

	c := &Cache{readDB: readDB, writeDB: writeDB, log: log}
	if err := c.init(); err != nil {
		c.Close()
		return nil, err
	}
	return c, nil
}

func (c *Cache) init() error {
	_, err := c.writeDB.Exec(`
		CREATE TABLE IF NOT EXISTS items (
			kind      TEXT NOT NULL,
			slug      TEXT NOT NULL,
			mtime     INTEGER NOT NULL,
			data      BLOB NOT NULL,
			cached_at DATETIME NOT NULL DEFAULT CURRENT_TIMESTAMP,
			PRIMARY KEY (kind, slug)
		);
	`)
	if err != nil {
		return fmt.Errorf("initializing schema: %w", err)
	}
	return nil
}

func (c *Cache) Close() error {
	var errs []error
	if c.readDB != nil {
		errs = append(errs, c.readDB.Close())
	}
	if c.writeDB != nil {
		errs = append(errs, c.writeDB.Close())
	}
	for _, e := range errs {
		if e != nil {
			return e
		}
	}
	return nil
}

// Get returns the cached encoding of an item if its recorded mtime still
// matches the source file.
func (c *Cache) Get(kind, slug string, mtime int64) ([]byte, bool) {
	var data []byte
	err := c.readDB.QueryRow(
		"SELECT data FROM items WHERE kind = ? AND slug = ? AND mtime = ?",
		kind, slug, mtime,
	).Scan(&data)
	if err != nil {
		return nil, false
	}
	return data, true
}

// Put stores or replaces the cached encoding of an item.
func (c *Cache) Put(kind, slug string, mtime int64, data []byte) {
	_, err := c.writeDB.Exec(`
		INSERT INTO items (kind, slug, mtime, data) VALUES (?, ?, ?, ?)
		ON CONFLICT(kind, slug) DO UPDATE SET
			mtime = excluded.mtime,
			data = excluded.data,
			cached_at = CURRENT_TIMESTAMP
	`, kind, slug, mtime, data)
	if err != nil {
		c.log.Warn("cache write failed", zap.String("kind", kind), zap.String("slug", slug), zap.Error(err))
	}
}

// Invalidate drops every cached item; the next loads re-parse from disk.
func (c *Cache) Invalidate() error {
	_, err := c.writeDB.Exec("DELETE FROM items")
	return err
}
