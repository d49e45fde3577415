package store

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	_ "modernc.org/sqlite"

	"github.com/GregMSThompson/finan-bff/internal/errs"
)

type sqliteCache struct {
	db *sql.DB
}

// NewSQLiteCache opens (creating if needed) the cache database at path and
// brings its schema up to date.
func NewSQLiteCache(path string) (*sqliteCache, error) {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return nil, fmt.Errorf("create cache directory: %w", err)
	}

	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("open sqlite database: %w", err)
	}
	// one writer at a time
	db.SetMaxOpenConns(1)

	if err := db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("ping database: %w", err)
	}
	if err := runMigrations(db); err != nil {
		db.Close()
		return nil, err
	}
	return &sqliteCache{db: db}, nil
}

func (c *sqliteCache) Get(ctx context.Context, key string, dst any) (bool, error) {
	var raw string
	err := c.db.QueryRowContext(ctx, `SELECT value FROM cache_entries WHERE key = ?`, key).Scan(&raw)
	if errors.Is(err, sql.ErrNoRows) {
		return false, nil
	}
	if err != nil {
		return false, errs.NewDatabaseError("read", "failed to read cache entry "+key, err)
	}
	if err := json.Unmarshal([]byte(raw), dst); err != nil {
		return false, errs.NewDatabaseError("read", "failed to decode cache entry "+key, err)
	}
	return true, nil
}

func (c *sqliteCache) Put(ctx context.Context, key string, v any) error {
	b, err := json.Marshal(v)
	if err != nil {
		return errs.NewDatabaseError("write", "failed to encode cache entry "+key, err)
	}
	_, err = c.db.ExecContext(ctx, `
		INSERT INTO cache_entries (key, value, updated_at) VALUES (?, ?, ?)
		ON CONFLICT(key) DO UPDATE SET value = excluded.value, updated_at = excluded.updated_at`,
		key, string(b), time.Now().UTC().Format(time.RFC3339Nano))
	if err != nil {
		return errs.NewDatabaseError("write", "failed to store cache entry "+key, err)
	}
	return nil
}

func (c *sqliteCache) Keys(ctx context.Context) ([]string, error) {
	rows, err := c.db.QueryContext(ctx, `SELECT key FROM cache_entries ORDER BY key`)
	if err != nil {
		return nil, errs.NewDatabaseError("read", "failed to list cache keys", err)
	}
	defer rows.Close()

	keys := make([]string, 0)
	for rows.Next() {
		var k string
		if err := rows.Scan(&k); err != nil {
			return nil, errs.NewDatabaseError("read", "failed to scan cache key", err)
		}
		keys = append(keys, k)
	}
	if err := rows.Err(); err != nil {
		return nil, errs.NewDatabaseError("read", "failed to list cache keys", err)
	}
	return keys, nil
}

func (c *sqliteCache) Close() error {
	if c.db != nil {
		return c.db.Close()
	}
	return nil
}
