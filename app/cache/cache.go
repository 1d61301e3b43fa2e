package cache

import (
	"encoding/hex"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/dgraph-io/badger/v4"
	"golang.org/x/crypto/blake2b"
)

const (
	// Key prefixes for the cached entity kinds.
	PageKeyPrefix     = "page:"
	DocumentKeyPrefix = "doc:"
)

// ErrMiss is returned when a key is not in the cache (or its TTL has
// lapsed and badger dropped it).
var ErrMiss = errors.New("cache: miss")

// DocumentCache is a badger-backed cache for content API responses.
// Entries expire via badger's native TTL support.
type DocumentCache struct {
	db  *badger.DB
	ttl time.Duration
}

// Open opens (or creates) the cache database at path. An empty path
// opens an in-memory database, used by tests.
func Open(path string, ttl time.Duration) (*DocumentCache, error) {
	opts := badger.DefaultOptions(path).
		WithLogger(nil).
		WithSyncWrites(false).
		WithNumVersionsToKeep(1)
	if path == "" {
		opts = opts.WithInMemory(true)
	}
	db, err := badger.Open(opts)
	if err != nil {
		return nil, err
	}
	return New(db, ttl), nil
}

// New wraps an already-open badger database.
func New(db *badger.DB, ttl time.Duration) *DocumentCache {
	return &DocumentCache{db: db, ttl: ttl}
}

// Close closes the underlying database.
func (c *DocumentCache) Close() error {
	return c.db.Close()
}

// Clear drops every cached entry.
func (c *DocumentCache) Clear() error {
	return c.db.DropAll()
}

// PageKey derives the cache key for a paged query from its full request
// identity. blake2b keeps arbitrary cursor and field values from
// producing unbounded keys.
func PageKey(parts ...string) string {
	h, _ := blake2b.New256(nil)
	for _, part := range parts {
		h.Write([]byte(part))
		h.Write([]byte{0})
	}
	return PageKeyPrefix + hex.EncodeToString(h.Sum(nil))
}

// DocumentKey derives the cache key for a single document.
func DocumentKey(docType, uid string) string {
	return DocumentKeyPrefix + docType + ":" + uid
}

// Get unmarshals the cached value for key into entity. A missing or
// expired key returns ErrMiss.
func (c *DocumentCache) Get(key string, entity interface{}) error {
	return c.db.View(func(txn *badger.Txn) error {
		item, err := txn.Get([]byte(key))
		if err == badger.ErrKeyNotFound {
			return ErrMiss
		}
		if err != nil {
			return err
		}
		return item.Value(func(val []byte) error {
			return unmarshalEntity(val, entity)
		})
	})
}

// Set stores entity under key with the cache TTL.
func (c *DocumentCache) Set(key string, entity interface{}) error {
	data, err := marshalEntity(entity)
	if err != nil {
		return err
	}
	return c.db.Update(func(txn *badger.Txn) error {
		entry := badger.NewEntry([]byte(key), data)
		if c.ttl > 0 {
			entry = entry.WithTTL(c.ttl)
		}
		return txn.SetEntry(entry)
	})
}

// marshalEntity marshals an entity to JSON.
func marshalEntity(entity interface{}) ([]byte, error) {
	data, err := json.Marshal(entity)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal entity: %v", err)
	}
	return data, nil
}

// unmarshalEntity unmarshals JSON data into an entity.
func unmarshalEntity(data []byte, entity interface{}) error {
	if err := json.Unmarshal(data, entity); err != nil {
		return fmt.Errorf("failed to unmarshal entity: %v", err)
	}
	return nil
}
