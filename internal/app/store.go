package app

import (
	"context"

	"github.com/go-faster/errors"
	"go.uber.org/zap"

	"github.com/meetjaka/voltherm-sub000/internal/localstore"
	"github.com/meetjaka/voltherm-sub000/internal/storage/boltdb"
	"github.com/meetjaka/voltherm-sub000/internal/storage/postgres"
)

// OpenBackend opens the local store backend selected by cfg. The caller
// closes it.
func OpenBackend(ctx context.Context, cfg StoreConfig, lg *zap.Logger) (localstore.Backend, error) {
	switch cfg.Driver {
	case DriverBolt:
		kv, err := boltdb.Open(cfg.Path)
		if err != nil {
			return nil, errors.Wrap(err, "open bolt store")
		}
		return kv, nil
	case DriverPostgres:
		pool, err := postgres.NewPool(ctx, cfg.DatabaseURL)
		if err != nil {
			return nil, errors.Wrap(err, "create db pool")
		}
		if err := postgres.RunMigrations(ctx, pool); err != nil {
			pool.Close()
			return nil, errors.Wrap(err, "run migrations")
		}
		return postgres.NewKV(pool), nil
	case DriverMemory:
		return localstore.NewMemoryBackend(), nil
	case DriverEphemeral:
		lg.Warn("Local store is ephemeral, local writes will be dropped")
		return localstore.NewEphemeralBackend(lg), nil
	default:
		return nil, errors.Errorf("unknown store driver %q", cfg.Driver)
	}
}
