package boltdb

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/meetjaka/voltherm-sub000/internal/domain/product"
	"github.com/meetjaka/voltherm-sub000/internal/localstore"
)

func TestKV(t *testing.T) {
	ctx := context.Background()
	path := filepath.Join(t.TempDir(), "store.db")

	kv, err := Open(path)
	require.NoError(t, err)
	require.NoError(t, kv.Ping(ctx))

	_, ok, err := kv.Get(ctx, "missing")
	require.NoError(t, err)
	assert.False(t, ok)

	require.NoError(t, kv.Put(ctx, "b", []byte(`{"x":1}`)))
	require.NoError(t, kv.Put(ctx, "a", []byte(`[]`)))

	v, ok, err := kv.Get(ctx, "b")
	require.NoError(t, err)
	require.True(t, ok)
	assert.JSONEq(t, `{"x":1}`, string(v))

	keys, err := kv.Keys(ctx)
	require.NoError(t, err)
	assert.Equal(t, []string{"a", "b"}, keys)
	require.NoError(t, kv.Close())
}

func TestKV_SurvivesReopen(t *testing.T) {
	ctx := context.Background()
	path := filepath.Join(t.TempDir(), "store.db")

	kv, err := Open(path)
	require.NoError(t, err)
	s := localstore.New(kv, nil)
	require.NoError(t, s.SaveProducts(ctx, []product.Product{{ID: 1, Title: "Kept"}}))
	require.NoError(t, s.Close())

	kv, err = Open(path)
	require.NoError(t, err)
	t.Cleanup(func() { _ = kv.Close() })

	got := localstore.New(kv, nil).Products(ctx)
	require.Len(t, got, 1)
	assert.Equal(t, "Kept", got[0].Title)
}
