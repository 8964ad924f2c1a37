// Package postgres implements the local store backend on PostgreSQL.
package postgres

import (
	"context"
	"fmt"

	"github.com/go-faster/errors"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/meetjaka/voltherm-sub000/internal/localstore"
)

const (
	getValueSQL = `SELECT value::text FROM kv_store WHERE key = $1`

	putValueSQL = `INSERT INTO kv_store (key, value, updated_at) VALUES ($1, $2::jsonb, now())
		ON CONFLICT (key) DO UPDATE SET value = EXCLUDED.value, updated_at = EXCLUDED.updated_at`

	listKeysSQL = `SELECT key FROM kv_store ORDER BY key`
)

var _ localstore.Backend = (*KV)(nil)

// KV stores local store documents in the kv_store table.
type KV struct {
	pool *pgxpool.Pool
}

// NewKV returns a KV that uses the given pool. The pool is closed by Close.
func NewKV(pool *pgxpool.Pool) *KV {
	return &KV{pool: pool}
}

// Get returns the document stored under key.
func (k *KV) Get(ctx context.Context, key string) ([]byte, bool, error) {
	var value string
	err := k.pool.QueryRow(ctx, getValueSQL, key).Scan(&value)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, false, nil
		}
		return nil, false, fmt.Errorf("getting %q: %w", key, err)
	}
	return []byte(value), true, nil
}

// Put upserts the document under key.
func (k *KV) Put(ctx context.Context, key string, value []byte) error {
	if _, err := k.pool.Exec(ctx, putValueSQL, key, string(value)); err != nil {
		return fmt.Errorf("putting %q: %w", key, err)
	}
	return nil
}

// Keys lists every stored key.
func (k *KV) Keys(ctx context.Context) ([]string, error) {
	rows, err := k.pool.Query(ctx, listKeysSQL)
	if err != nil {
		return nil, fmt.Errorf("listing keys: %w", err)
	}
	return pgx.CollectRows(rows, pgx.RowTo[string])
}

func (k *KV) Ping(ctx context.Context) error {
	return k.pool.Ping(ctx)
}

func (k *KV) Close() error {
	k.pool.Close()
	return nil
}
