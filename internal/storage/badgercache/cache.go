// Package badgercache implements the TTL cache tier on embedded BadgerDB.
// Entries expire through Badger's native entry TTL, so reads never have to
// check timestamps themselves.
package badgercache

import (
	"context"
	"errors"
	"fmt"
	"time"

	badger "github.com/dgraph-io/badger/v4"
	"github.com/vmihailenco/msgpack/v5"

	"github.com/tabreed/stockline/internal/common"
)

// Cache is a CacheStore backed by a badger instance. Values are msgpack
// encoded.
type Cache struct {
	db     *badger.DB
	logger *common.Logger
}

// New opens a badger cache at path. An empty path opens an in-memory
// instance, which tests and dev mode use.
func New(path string, logger *common.Logger) (*Cache, error) {
	var opts badger.Options
	if path == "" {
		opts = badger.DefaultOptions("").WithInMemory(true)
	} else {
		opts = badger.DefaultOptions(path)
	}
	opts = opts.WithLogger(nil)

	db, err := badger.Open(opts)
	if err != nil {
		return nil, fmt.Errorf("failed to open cache at %q: %w", path, err)
	}

	return &Cache{db: db, logger: logger}, nil
}

// Get loads and decodes the value at key into dest. The second return is
// false when the key is absent or expired.
func (c *Cache) Get(ctx context.Context, key string, dest any) (bool, error) {
	if err := ctx.Err(); err != nil {
		return false, err
	}

	var data []byte
	err := c.db.View(func(txn *badger.Txn) error {
		item, err := txn.Get([]byte(key))
		if err != nil {
			return err
		}
		data, err = item.ValueCopy(nil)
		return err
	})
	if errors.Is(err, badger.ErrKeyNotFound) {
		return false, nil
	}
	if err != nil {
		return false, fmt.Errorf("cache get %q: %w", key, err)
	}

	if err := msgpack.Unmarshal(data, dest); err != nil {
		// A decode failure means the stored shape changed. Drop the entry
		// and report a miss so the caller falls through to the store.
		c.logger.Warn().Str("key", key).Err(err).Msg("Dropping undecodable cache entry")
		_ = c.Delete(ctx, key)
		return false, nil
	}

	return true, nil
}

// Set encodes value and stores it under key with the given TTL. A zero or
// negative TTL stores the entry without expiry.
func (c *Cache) Set(ctx context.Context, key string, value any, ttl time.Duration) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	data, err := msgpack.Marshal(value)
	if err != nil {
		return fmt.Errorf("cache encode %q: %w", key, err)
	}

	return c.db.Update(func(txn *badger.Txn) error {
		entry := badger.NewEntry([]byte(key), data)
		if ttl > 0 {
			entry = entry.WithTTL(ttl)
		}
		return txn.SetEntry(entry)
	})
}

// Delete removes the entry at key. Deleting a missing key is not an error.
func (c *Cache) Delete(ctx context.Context, key string) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	return c.db.Update(func(txn *badger.Txn) error {
		err := txn.Delete([]byte(key))
		if errors.Is(err, badger.ErrKeyNotFound) {
			return nil
		}
		return err
	})
}

// DeletePrefix removes every entry whose key starts with prefix.
func (c *Cache) DeletePrefix(ctx context.Context, prefix string) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	return c.db.Update(func(txn *badger.Txn) error {
		opts := badger.DefaultIteratorOptions
		opts.PrefetchValues = false
		it := txn.NewIterator(opts)
		defer it.Close()

		p := []byte(prefix)
		for it.Seek(p); it.ValidForPrefix(p); it.Next() {
			key := it.Item().KeyCopy(nil)
			if err := txn.Delete(key); err != nil {
				return err
			}
		}
		return nil
	})
}

// Close flushes and closes the underlying badger instance.
func (c *Cache) Close() error {
	return c.db.Close()
}
