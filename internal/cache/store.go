package cache

import (
	"database/sql"
	"fmt"

	_ "modernc.org/sqlite"
)

// DefaultDSN keeps the cache in memory so nothing survives a restart. A file
// path can be supplied instead when a warm cache across restarts is wanted.
const DefaultDSN = "file:cache?mode=memory&cache=shared"

// Store is the SQLite-backed key/value table behind Cache.
// Schema: key TEXT primary key, value BLOB, expires_at INTEGER (unix seconds).
type Store struct {
	db *sql.DB
}

// OpenStore opens (and migrates) a cache store at the given DSN.
func OpenStore(dsn string) (*Store, error) {
	if dsn == "" {
		dsn = DefaultDSN
	}
	db, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, fmt.Errorf("failed to open cache store: %w", err)
	}
	// The shared in-memory database disappears once all connections close.
	db.SetMaxIdleConns(1)

	_, err = db.Exec(`
		CREATE TABLE IF NOT EXISTS cache (
			key        TEXT PRIMARY KEY,
			value      BLOB NOT NULL,
			expires_at INTEGER NOT NULL
		)
	`)
	if err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to create cache table: %w", err)
	}

	return &Store{db: db}, nil
}

// Get returns the stored value and expiry for key. Freshness is the caller's
// concern; the second return is false when the key is absent.
func (s *Store) Get(key string) (value []byte, expiresAt int64, ok bool, err error) {
	err = s.db.QueryRow("SELECT value, expires_at FROM cache WHERE key = ?", key).
		Scan(&value, &expiresAt)
	if err == sql.ErrNoRows {
		return nil, 0, false, nil
	}
	if err != nil {
		return nil, 0, false, err
	}
	return value, expiresAt, true, nil
}

// Set stores value under key with the given expiry, overwriting any previous
// entry.
func (s *Store) Set(key string, value []byte, expiresAt int64) error {
	_, err := s.db.Exec(`
		INSERT INTO cache (key, value, expires_at)
		VALUES (?, ?, ?)
		ON CONFLICT(key) DO UPDATE SET
			value = excluded.value,
			expires_at = excluded.expires_at
	`, key, value, expiresAt)
	return err
}

// DeleteAll removes every entry.
func (s *Store) DeleteAll() error {
	_, err := s.db.Exec("DELETE FROM cache")
	return err
}

// DeleteExpired removes entries whose expiry is at or before now.
// Returns the number of rows evicted.
func (s *Store) DeleteExpired(now int64) (int64, error) {
	res, err := s.db.Exec("DELETE FROM cache WHERE expires_at <= ?", now)
	if err != nil {
		return 0, err
	}
	n, _ := res.RowsAffected()
	return n, nil
}

// Close closes the underlying database.
func (s *Store) Close() error {
	return s.db.Close()
}
