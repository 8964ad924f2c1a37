// Command store-snapshot exports, imports and seeds the storefront local
// store, and hashes admin keys for configuration.
//
//	store-snapshot [flags] export <file.json.gz>
//	store-snapshot [flags] import <file.json.gz>
//	store-snapshot [flags] seed
//	store-snapshot -pepper <pepper> hash-key <key>
package main

import (
	"context"
	"flag"
	"fmt"
	"log/slog"
	"os"
	"os/signal"

	"github.com/go-faster/errors"
	"go.uber.org/zap"

	appkg "github.com/meetjaka/voltherm-sub000/internal/app"
	"github.com/meetjaka/voltherm-sub000/internal/domain/auth"
	"github.com/meetjaka/voltherm-sub000/internal/localstore"
)

func main() {
	var (
		cfg    appkg.StoreConfig
		pepper string
	)
	flag.StringVar(&cfg.Driver, "driver", appkg.DriverBolt, "local store driver: bolt or postgres")
	flag.StringVar(&cfg.Path, "path", "voltherm.db", "bbolt file path")
	flag.StringVar(&cfg.DatabaseURL, "database-url", "", "PostgreSQL connection URL (or DATABASE_URL env)")
	flag.StringVar(&pepper, "pepper", "", "HMAC pepper for hash-key (or VOLTHERM_ADMIN_KEYPEPPER env)")
	flag.Parse()

	if cfg.DatabaseURL == "" {
		cfg.DatabaseURL = os.Getenv("DATABASE_URL")
	}
	if pepper == "" {
		pepper = os.Getenv("VOLTHERM_ADMIN_KEYPEPPER")
	}

	args := flag.Args()
	if len(args) == 0 {
		slog.Error("command is required: export, import, seed or hash-key")
		os.Exit(2)
	}

	if args[0] == "hash-key" {
		if len(args) != 2 {
			slog.Error("usage: hash-key <key>")
			os.Exit(2)
		}
		fmt.Println(auth.HashKey(args[1], []byte(pepper)))
		return
	}

	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt)
	defer cancel()

	if err := run(ctx, cfg, args); err != nil {
		slog.Error("store-snapshot failed", slog.String("command", args[0]), slog.String("error", err.Error()))
		os.Exit(1)
	}
	slog.Info("store-snapshot completed", slog.String("command", args[0]))
}

func run(ctx context.Context, cfg appkg.StoreConfig, args []string) error {
	slog.Info("opening local store", slog.String("driver", cfg.Driver))
	backend, err := appkg.OpenBackend(ctx, cfg, zap.NewNop())
	if err != nil {
		return err
	}
	store := localstore.New(backend, zap.NewNop())
	defer func() { _ = store.Close() }()

	switch args[0] {
	case "seed":
		return store.Seed(ctx)
	case "export":
		if len(args) != 2 {
			return errors.New("usage: export <file>")
		}
		return export(ctx, store, args[1])
	case "import":
		if len(args) != 2 {
			return errors.New("usage: import <file>")
		}
		f, err := os.Open(args[1])
		if err != nil {
			return errors.Wrap(err, "open snapshot")
		}
		defer func() { _ = f.Close() }()

		n, err := store.Import(ctx, f)
		if err != nil {
			return errors.Wrap(err, "import")
		}
		slog.Info("imported snapshot", slog.Int("keys", n))
		return nil
	default:
		return errors.Errorf("unknown command %q", args[0])
	}
}

func export(ctx context.Context, store *localstore.Store, path string) (rerr error) {
	f, err := os.Create(path)
	if err != nil {
		return errors.Wrap(err, "create snapshot")
	}
	defer func() {
		if err := f.Close(); err != nil && rerr == nil {
			rerr = errors.Wrap(err, "close snapshot")
		}
	}()
	if err := store.Export(ctx, f); err != nil {
		return errors.Wrap(err, "export")
	}
	slog.Info("exported snapshot", slog.String("path", path))
	return nil
}
