package localstore

import (
	"context"
	"encoding/json"
	"io"
	"sync"

	"github.com/go-faster/errors"
	"github.com/klauspost/pgzip"
	"golang.org/x/sync/errgroup"
)

const snapshotVersion = 1

type snapshot struct {
	Version int                        `json:"version"`
	Keys    map[string]json.RawMessage `json:"keys"`
}

// Export writes every stored key to w as a gzip compressed JSON document.
func (s *Store) Export(ctx context.Context, w io.Writer) error {
	keys, err := s.backend.Keys(ctx)
	if err != nil {
		return errors.Wrap(err, "list keys")
	}

	snap := snapshot{Version: snapshotVersion, Keys: make(map[string]json.RawMessage, len(keys))}
	var mu sync.Mutex
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(4)
	for _, key := range keys {
		g.Go(func() error {
			v, ok, err := s.backend.Get(gctx, key)
			if err != nil {
				return errors.Wrapf(err, "get %s", key)
			}
			if !ok {
				return nil
			}
			mu.Lock()
			snap.Keys[key] = v
			mu.Unlock()
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return err
	}

	zw := pgzip.NewWriter(w)
	if err := json.NewEncoder(zw).Encode(snap); err != nil {
		_ = zw.Close()
		return errors.Wrap(err, "encode snapshot")
	}
	if err := zw.Close(); err != nil {
		return errors.Wrap(err, "flush snapshot")
	}
	return nil
}

// Import reads a snapshot produced by Export and writes every key in it,
// overwriting current values. Keys absent from the snapshot are kept.
func (s *Store) Import(ctx context.Context, r io.Reader) (int, error) {
	zr, err := pgzip.NewReader(r)
	if err != nil {
		return 0, errors.Wrap(err, "open snapshot")
	}
	defer func() { _ = zr.Close() }()

	var snap snapshot
	if err := json.NewDecoder(zr).Decode(&snap); err != nil {
		return 0, errors.Wrap(err, "decode snapshot")
	}
	if snap.Version != snapshotVersion {
		return 0, errors.Errorf("unsupported snapshot version %d", snap.Version)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	for key, v := range snap.Keys {
		if err := s.backend.Put(ctx, key, v); err != nil {
			return 0, errors.Wrapf(err, "put %s", key)
		}
	}
	return len(snap.Keys), nil
}

// Seed writes the built-in dataset, overwriting the catalog collections.
// Inquiries and the cart are left untouched.
func (s *Store) Seed(ctx context.Context) error {
	if err := s.SaveProducts(ctx, SeedProducts()); err != nil {
		return err
	}
	if err := s.SaveCertificates(ctx, SeedCertificates()); err != nil {
		return err
	}
	if err := s.SaveContactInfo(ctx, SeedContactInfo()); err != nil {
		return err
	}
	return s.SaveSections(ctx, SeedSections())
}
