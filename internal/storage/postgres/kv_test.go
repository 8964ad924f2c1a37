//go:build integration

package postgres

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/wait"

	"github.com/meetjaka/voltherm-sub000/internal/domain/product"
	"github.com/meetjaka/voltherm-sub000/internal/localstore"
)

func startPostgres(t *testing.T) string {
	t.Helper()
	ctx := context.Background()

	ctr, err := testcontainers.GenericContainer(ctx, testcontainers.GenericContainerRequest{
		ContainerRequest: testcontainers.ContainerRequest{
			Image:        "postgres:17-alpine",
			ExposedPorts: []string{"5432/tcp"},
			Env: map[string]string{
				"POSTGRES_USER":     "voltherm",
				"POSTGRES_PASSWORD": "voltherm",
				"POSTGRES_DB":       "voltherm",
			},
			WaitingFor: wait.ForLog("database system is ready to accept connections").
				WithOccurrence(2).
				WithStartupTimeout(time.Minute),
		},
		Started: true,
	})
	require.NoError(t, err)
	t.Cleanup(func() { _ = ctr.Terminate(context.Background()) })

	host, err := ctr.Host(ctx)
	require.NoError(t, err)
	port, err := ctr.MappedPort(ctx, "5432/tcp")
	require.NoError(t, err)

	return fmt.Sprintf("postgres://voltherm:voltherm@%s:%s/voltherm?sslmode=disable", host, port.Port())
}

func TestKV(t *testing.T) {
	ctx := context.Background()
	pool, err := NewPool(ctx, startPostgres(t))
	require.NoError(t, err)
	require.NoError(t, RunMigrations(ctx, pool))

	kv := NewKV(pool)
	t.Cleanup(func() { _ = kv.Close() })
	require.NoError(t, kv.Ping(ctx))

	s := localstore.New(kv, nil)
	assert.Len(t, s.Products(ctx), 6)

	require.NoError(t, s.SaveProducts(ctx, []product.Product{{ID: 1, Title: "Rack"}}))
	require.NoError(t, s.SaveProducts(ctx, []product.Product{{ID: 2, Title: "Cell"}}))

	got := s.Products(ctx)
	require.Len(t, got, 1)
	assert.Equal(t, "Cell", got[0].Title)

	keys, err := kv.Keys(ctx)
	require.NoError(t, err)
	assert.Equal(t, []string{localstore.KeyProducts}, keys)

	// Migrations are idempotent.
	require.NoError(t, RunMigrations(ctx, pool))
}
