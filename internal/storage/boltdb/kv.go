// Package boltdb implements the default local store backend on a bbolt file.
package boltdb

import (
	"context"
	"fmt"
	"slices"
	"time"

	bolt "go.etcd.io/bbolt"

	"github.com/meetjaka/voltherm-sub000/internal/localstore"
)

var bucket = []byte("voltherm")

var _ localstore.Backend = (*KV)(nil)

// KV keeps local store documents in one bucket of a bbolt database.
type KV struct {
	db *bolt.DB
}

// Open opens or creates the database file at path.
func Open(path string) (*KV, error) {
	db, err := bolt.Open(path, 0o600, &bolt.Options{Timeout: time.Second})
	if err != nil {
		return nil, fmt.Errorf("opening %s: %w", path, err)
	}
	err = db.Update(func(tx *bolt.Tx) error {
		_, err := tx.CreateBucketIfNotExists(bucket)
		return err
	})
	if err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("creating bucket: %w", err)
	}
	return &KV{db: db}, nil
}

// Get returns a copy of the value under key. Values are only valid inside
// the transaction, so they are cloned before returning.
func (k *KV) Get(_ context.Context, key string) ([]byte, bool, error) {
	var out []byte
	err := k.db.View(func(tx *bolt.Tx) error {
		if v := tx.Bucket(bucket).Get([]byte(key)); v != nil {
			out = slices.Clone(v)
		}
		return nil
	})
	if err != nil {
		return nil, false, fmt.Errorf("getting %q: %w", key, err)
	}
	return out, out != nil, nil
}

// Put stores value under key.
func (k *KV) Put(_ context.Context, key string, value []byte) error {
	err := k.db.Update(func(tx *bolt.Tx) error {
		return tx.Bucket(bucket).Put([]byte(key), value)
	})
	if err != nil {
		return fmt.Errorf("putting %q: %w", key, err)
	}
	return nil
}

// Keys lists stored keys in byte order.
func (k *KV) Keys(context.Context) ([]string, error) {
	var keys []string
	err := k.db.View(func(tx *bolt.Tx) error {
		return tx.Bucket(bucket).ForEach(func(k, _ []byte) error {
			keys = append(keys, string(k))
			return nil
		})
	})
	if err != nil {
		return nil, fmt.Errorf("listing keys: %w", err)
	}
	return keys, nil
}

// Ping checks that the bucket is readable.
func (k *KV) Ping(context.Context) error {
	return k.db.View(func(tx *bolt.Tx) error {
		if tx.Bucket(bucket) == nil {
			return fmt.Errorf("bucket %s missing", bucket)
		}
		return nil
	})
}

func (k *KV) Close() error {
	return k.db.Close()
}
