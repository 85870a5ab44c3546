// Package cache provides the TTL cache between the dashboard and its data
// providers. Values are msgpack-encoded into a SQLite table (in-memory by
// default); concurrent cache misses for the same key share a single producer
// call via singleflight.
package cache

import (
	"fmt"
	"time"

	"github.com/rs/zerolog"
	"github.com/vmihailenco/msgpack/v5"
	"golang.org/x/sync/singleflight"
)

// Producer computes a value on cache miss.
type Producer func() (interface{}, error)

// Cache is a TTL cache with at-most-one-flight semantics per key.
// The clock is injectable so expiry is deterministic in tests.
type Cache struct {
	store *Store
	now   func() time.Time
	group singleflight.Group
	log   zerolog.Logger
}

// New creates a cache on top of store.
func New(store *Store, log zerolog.Logger) *Cache {
	return &Cache{
		store: store,
		now:   time.Now,
		log:   log.With().Str("component", "cache").Logger(),
	}
}

// SetClock replaces the cache's time source. Test hook.
func (c *Cache) SetClock(now func() time.Time) {
	c.now = now
}

// GetOrFetch returns the cached value for key into dest when fresh, otherwise
// invokes producer, stores its result for ttl and decodes it into dest.
// Empty producer results are cached like any other value, so a provider that
// reports "no data" is not hammered until the TTL lapses. Concurrent callers
// for the same key wait on a single in-flight producer call.
func (c *Cache) GetOrFetch(key string, ttl time.Duration, dest interface{}, producer Producer) error {
	if data, ok := c.lookup(key); ok {
		return msgpack.Unmarshal(data, dest)
	}

	data, err, _ := c.group.Do(key, func() (interface{}, error) {
		// A waiter may have populated the entry while we queued.
		if data, ok := c.lookup(key); ok {
			return data, nil
		}

		value, err := producer()
		if err != nil {
			return nil, err
		}

		encoded, err := msgpack.Marshal(value)
		if err != nil {
			return nil, fmt.Errorf("failed to encode cache value: %w", err)
		}

		expiresAt := c.now().Add(ttl).Unix()
		if err := c.store.Set(key, encoded, expiresAt); err != nil {
			// A storage failure must not lose the fetched value.
			c.log.Error().Err(err).Str("key", key).Msg("Failed to store cache entry")
		}
		return encoded, nil
	})
	if err != nil {
		return err
	}

	return msgpack.Unmarshal(data.([]byte), dest)
}

// lookup returns the raw entry for key when present and fresh.
func (c *Cache) lookup(key string) ([]byte, bool) {
	data, expiresAt, ok, err := c.store.Get(key)
	if err != nil {
		c.log.Error().Err(err).Str("key", key).Msg("Cache read failed")
		return nil, false
	}
	if !ok || c.now().Unix() >= expiresAt {
		return nil, false
	}
	return data, true
}

// Clear drops every entry immediately. Backs the manual refresh control.
func (c *Cache) Clear() error {
	c.log.Info().Msg("Clearing cache")
	return c.store.DeleteAll()
}

// Sweep evicts expired entries. Called periodically by the janitor.
func (c *Cache) Sweep() (int64, error) {
	n, err := c.store.DeleteExpired(c.now().Unix())
	if err != nil {
		return 0, err
	}
	if n > 0 {
		c.log.Debug().Int64("evicted", n).Msg("Swept expired cache entries")
	}
	return n, nil
}
