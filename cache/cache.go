// Reactive templates with pre-computed anchors – no diffing!
// Copyright (C) 2024-2026 Thomas Gysemans
//
// Package cache keeps serialized registries in a SQLite database so that
// templates need not be fetched and compiled again.
package cache

import (
	"bytes"
	"context"
	"database/sql"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/pkg/errors"
	_ "modernc.org/sqlite"

	ganko "github.com/ThomasGysemans/Ganko"
)

// DefaultKey is the entry used when no key is given.
const DefaultKey = "Ganko"

// Cache is a SQLite database of exported registries, one per key.
type Cache struct {
	path string
	db   *sql.DB
}

// Open opens or creates the cache database at path.
func Open(ctx context.Context, path string) (*Cache, error) {
	path = strings.TrimSpace(path)
	if path == "" {
		return nil, errors.New("cache: empty database path")
	}
	absPath, err := filepath.Abs(path)
	if err != nil {
		return nil, errors.Wrap(err, "resolve cache path")
	}
	if dir := filepath.Dir(absPath); dir != "" && dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return nil, errors.Wrap(err, "create cache dir")
		}
	}
	db, err := sql.Open("sqlite", absPath)
	if err != nil {
		return nil, errors.Wrap(err, "open cache sqlite")
	}
	db.SetMaxOpenConns(1)
	db.SetMaxIdleConns(1)
	if err := initSQLite(ctx, db); err != nil {
		_ = db.Close()
		return nil, err
	}
	return &Cache{path: absPath, db: db}, nil
}

func initSQLite(ctx context.Context, db *sql.DB) error {
	stmts := []string{
		`PRAGMA busy_timeout=5000;`,
		`CREATE TABLE IF NOT EXISTS ganko_registries (
  key TEXT PRIMARY KEY,
  stored_at_ns INTEGER NOT NULL,
  templates INTEGER NOT NULL,
  doc TEXT NOT NULL
);`,
	}
	for _, stmt := range stmts {
		if _, err := db.ExecContext(ctx, stmt); err != nil {
			return errors.Wrap(err, "init cache sqlite")
		}
	}
	return nil
}

func (c *Cache) Path() string { return c.path }

func keyOrDefault(key string) string {
	if key = strings.TrimSpace(key); key == "" {
		return DefaultKey
	}
	return key
}

// Store saves reg under key, replacing what was stored before.
func (c *Cache) Store(ctx context.Context, key string, reg *ganko.Registry) error {
	var buf bytes.Buffer
	if err := reg.Export(&buf, ganko.FormatJSON); err != nil {
		return err
	}
	_, err := c.db.ExecContext(ctx,
		`INSERT INTO ganko_registries (key, stored_at_ns, templates, doc) VALUES (?, ?, ?, ?)
ON CONFLICT(key) DO UPDATE SET stored_at_ns=excluded.stored_at_ns, templates=excluded.templates, doc=excluded.doc`,
		keyOrDefault(key),
		time.Now().UnixNano(),
		reg.Len(),
		buf.String(),
	)
	return errors.Wrap(err, "store registry")
}

// Load replaces the content of reg with the registry stored under key. It
// returns false when nothing is stored under key.
func (c *Cache) Load(ctx context.Context, key string, reg *ganko.Registry) (bool, error) {
	var doc string
	err := c.db.QueryRowContext(ctx,
		`SELECT doc FROM ganko_registries WHERE key = ?`,
		keyOrDefault(key),
	).Scan(&doc)
	switch {
	case errors.Is(err, sql.ErrNoRows):
		return false, nil
	case err != nil:
		return false, errors.Wrap(err, "load registry")
	}
	if err := reg.Import(strings.NewReader(doc), ganko.FormatJSON); err != nil {
		return false, err
	}
	return true, nil
}

func (c *Cache) Has(ctx context.Context, key string) (bool, error) {
	var n int
	err := c.db.QueryRowContext(ctx,
		`SELECT COUNT(*) FROM ganko_registries WHERE key = ?`,
		keyOrDefault(key),
	).Scan(&n)
	if err != nil {
		return false, errors.Wrap(err, "query registry")
	}
	return n > 0, nil
}

// Clear removes the registry stored under key.
func (c *Cache) Clear(ctx context.Context, key string) error {
	_, err := c.db.ExecContext(ctx,
		`DELETE FROM ganko_registries WHERE key = ?`,
		keyOrDefault(key),
	)
	return errors.Wrap(err, "clear registry")
}

// Keys lists all keys with a stored registry, sorted.
func (c *Cache) Keys(ctx context.Context) ([]string, error) {
	rows, err := c.db.QueryContext(ctx, `SELECT key FROM ganko_registries ORDER BY key`)
	if err != nil {
		return nil, errors.Wrap(err, "list registries")
	}
	defer rows.Close()
	var res []string
	for rows.Next() {
		var k string
		if err := rows.Scan(&k); err != nil {
			return nil, errors.Wrap(err, "list registries")
		}
		res = append(res, k)
	}
	return res, errors.Wrap(rows.Err(), "list registries")
}

func (c *Cache) Close() error {
	if c == nil || c.db == nil {
		return nil
	}
	err := c.db.Close()
	c.db = nil
	return err
}
