// Package cache stores search results in BadgerDB so repeated queries on the
// same grid skip the search.
package cache

import (
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/dgraph-io/badger/v4"
	"go.uber.org/zap"

	"github.com/pdrpinto/astargrid"
)

// Cache is safe for concurrent use.
type Cache struct {
	db     *badger.DB
	ttl    time.Duration
	logger *zap.Logger
}

// Open opens a cache in dir, or an in-memory cache when dir is empty.
// Entries expire after ttl; zero keeps them forever.
func Open(dir string, ttl time.Duration, logger *zap.Logger) (*Cache, error) {
	if logger == nil {
		logger = zap.NewNop()
	}
	logger = logger.With(zap.String("component", "path_cache"))

	opts := badger.DefaultOptions(dir).WithLogger(badgerLogger{logger.Sugar()})
	if dir == "" {
		opts = opts.WithInMemory(true)
	}

	db, err := badger.Open(opts)
	if err != nil {
		return nil, fmt.Errorf("failed to open badger at %q: %w", dir, err)
	}
	return &Cache{db: db, ttl: ttl, logger: logger}, nil
}

// Key identifies a search by grid contents, heuristic and endpoints.
func Key(grid *astargrid.Grid, heuristic string, start, end astargrid.Point) []byte {
	return fmt.Appendf(nil, "path/%016x/%s/%d,%d/%d,%d",
		grid.Fingerprint(), heuristic, start.X, start.Y, end.X, end.Y)
}

// Get returns the cached path for key. Read errors are logged and reported
// as a miss.
func (c *Cache) Get(key []byte) ([]astargrid.Point, bool) {
	var path []astargrid.Point
	err := c.db.View(func(txn *badger.Txn) error {
		item, err := txn.Get(key)
		if err != nil {
			return err
		}
		return item.Value(func(val []byte) error {
			return json.Unmarshal(val, &path)
		})
	})

	if err != nil {
		if !errors.Is(err, badger.ErrKeyNotFound) {
			c.logger.Warn("cache read error",
				zap.ByteString("key", key),
				zap.Error(err),
			)
		}
		return nil, false
	}
	if path == nil {
		path = []astargrid.Point{}
	}
	return path, true
}

// Put stores path under key.
func (c *Cache) Put(key []byte, path []astargrid.Point) error {
	value, err := json.Marshal(path)
	if err != nil {
		return fmt.Errorf("failed to encode path: %w", err)
	}

	err = c.db.Update(func(txn *badger.Txn) error {
		entry := badger.NewEntry(key, value)
		if c.ttl > 0 {
			entry = entry.WithTTL(c.ttl)
		}
		return txn.SetEntry(entry)
	})
	if err != nil {
		return fmt.Errorf("failed to write cache entry: %w", err)
	}
	return nil
}

func (c *Cache) Close() error {
	return c.db.Close()
}

// badgerLogger routes badger's logging through zap.
type badgerLogger struct {
	sugar *zap.SugaredLogger
}

func (l badgerLogger) Errorf(format string, args ...interface{}) { l.sugar.Errorf(format, args...) }
func (l badgerLogger) Warningf(format string, args ...interface{}) {
	l.sugar.Warnf(format, args...)
}

// Infof logs at debug: badger reports routine compaction at info.
func (l badgerLogger) Infof(format string, args ...interface{})  { l.sugar.Debugf(format, args...) }
func (l badgerLogger) Debugf(format string, args ...interface{}) { l.sugar.Debugf(format, args...) }
