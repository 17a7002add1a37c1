// Package database persists upstream responses with BoltDB so a restart does
// not start from a cold cache.
package database

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	bolt "go.etcd.io/bbolt"
)

const (
	// Default database file permissions
	dbFileMode = 0600
	dbDirMode  = 0755

	// Default database filename
	defaultDBFile = "mainstream.db"

	openTimeout = time.Second
)

var bucketResponses = []byte("responses")

// CachedResponse is an upstream response body and the time it was fetched.
type CachedResponse struct {
	Key       string    `json:"key"`
	Body      []byte    `json:"body"`
	FetchedAt time.Time `json:"fetched_at"`
}

// Age reports how long ago the response was fetched.
func (r *CachedResponse) Age(now time.Time) time.Duration {
	return now.Sub(r.FetchedAt)
}

// Database defines the interface for data persistence operations.
type Database interface {
	// GetResponse returns the stored response for key, or nil if absent.
	GetResponse(key string) (*CachedResponse, error)
	// StoreResponse stores a response, replacing any previous one for its key.
	StoreResponse(resp *CachedResponse) error
	// PurgeOlderThan deletes responses fetched before now-maxAge.
	PurgeOlderThan(maxAge time.Duration) (int, error)
	// Close closes the database connection
	Close() error
}

// BoltDB implements the Database interface using BoltDB.
type BoltDB struct {
	db  *bolt.DB
	now func() time.Time
}

// NewBolt creates a new BoltDB database instance.
// If dbPath is empty, uses the default database file in current directory.
func NewBolt(dbPath string) (*BoltDB, error) {
	if dbPath == "" {
		dbPath = filepath.Join(".", defaultDBFile)
	}

	// Ensure database directory exists
	if err := os.MkdirAll(filepath.Dir(dbPath), dbDirMode); err != nil {
		return nil, fmt.Errorf("failed to create database directory: %w", err)
	}

	db, err := bolt.Open(dbPath, dbFileMode, &bolt.Options{Timeout: openTimeout})
	if err != nil {
		return nil, fmt.Errorf("failed to open bolt database: %w", err)
	}

	err = db.Update(func(tx *bolt.Tx) error {
		_, err := tx.CreateBucketIfNotExists(bucketResponses)
		return err
	})
	if err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to create buckets: %w", err)
	}

	return &BoltDB{db: db, now: time.Now}, nil
}

// Close closes the database connection.
func (b *BoltDB) Close() error {
	return b.db.Close()
}

// GetResponse retrieves a stored response by key.
// Returns nil if not found, without error.
func (b *BoltDB) GetResponse(key string) (*CachedResponse, error) {
	var data []byte
	err := b.db.View(func(tx *bolt.Tx) error {
		if v := tx.Bucket(bucketResponses).Get([]byte(key)); v != nil {
			data = make([]byte, len(v))
			copy(data, v)
		}
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("failed to get response: %w", err)
	}
	if data == nil {
		return nil, nil
	}

	var resp CachedResponse
	if err := json.Unmarshal(data, &resp); err != nil {
		return nil, fmt.Errorf("failed to decode stored response %q: %w", key, err)
	}
	return &resp, nil
}

// StoreResponse stores a response. A zero FetchedAt is set to now.
func (b *BoltDB) StoreResponse(resp *CachedResponse) error {
	if resp == nil || resp.Key == "" {
		return errors.New("response key is required")
	}
	if resp.FetchedAt.IsZero() {
		resp.FetchedAt = b.now()
	}

	data, err := json.Marshal(resp)
	if err != nil {
		return fmt.Errorf("failed to encode response: %w", err)
	}

	err = b.db.Update(func(tx *bolt.Tx) error {
		return tx.Bucket(bucketResponses).Put([]byte(resp.Key), data)
	})
	if err != nil {
		return fmt.Errorf("failed to store response: %w", err)
	}
	return nil
}

// PurgeOlderThan removes responses older than maxAge and returns how many
// were removed. Undecodable entries are removed too.
func (b *BoltDB) PurgeOlderThan(maxAge time.Duration) (int, error) {
	cutoff := b.now().Add(-maxAge)
	removed := 0

	err := b.db.Update(func(tx *bolt.Tx) error {
		bucket := tx.Bucket(bucketResponses)
		var stale [][]byte
		err := bucket.ForEach(func(k, v []byte) error {
			var resp CachedResponse
			if json.Unmarshal(v, &resp) != nil || resp.FetchedAt.Before(cutoff) {
				stale = append(stale, append([]byte(nil), k...))
			}
			return nil
		})
		if err != nil {
			return err
		}
		// Deleting while iterating with ForEach is not allowed.
		for _, k := range stale {
			if err := bucket.Delete(k); err != nil {
				return err
			}
		}
		removed = len(stale)
		return nil
	})
	if err != nil {
		return 0, fmt.Errorf("failed to purge responses: %w", err)
	}
	return removed, nil
}
