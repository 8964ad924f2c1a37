package app

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/meetjaka/voltherm-sub000/internal/localstore"
	"github.com/meetjaka/voltherm-sub000/internal/storage/boltdb"
)

func TestOpenBackend(t *testing.T) {
	ctx := context.Background()
	lg := zap.NewNop()

	for _, tt := range []struct {
		name string
		cfg  StoreConfig
		want any
	}{
		{"Bolt", StoreConfig{Driver: DriverBolt, Path: filepath.Join(t.TempDir(), "s.db")}, &boltdb.KV{}},
		{"Memory", StoreConfig{Driver: DriverMemory}, &localstore.MemoryBackend{}},
		{"Ephemeral", StoreConfig{Driver: DriverEphemeral}, &localstore.EphemeralBackend{}},
	} {
		t.Run(tt.name, func(t *testing.T) {
			b, err := OpenBackend(ctx, tt.cfg, lg)
			require.NoError(t, err)
			t.Cleanup(func() { _ = b.Close() })
			assert.IsType(t, tt.want, b)
			assert.NoError(t, b.Ping(ctx))
		})
	}

	_, err := OpenBackend(ctx, StoreConfig{Driver: "redis"}, lg)
	require.Error(t, err)
}
