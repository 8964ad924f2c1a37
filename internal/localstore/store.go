// Package localstore is the durable key-value fallback of the storefront.
//
// Each entity collection lives under one fixed key as a JSON document. Reads
// never fail: a missing or undecodable value yields the built-in seed, so a
// first run or a store without persistence still renders a full catalog.
package localstore

import (
	"context"
	"encoding/json"
	"sync"

	"github.com/go-faster/errors"
	"go.uber.org/zap"

	"github.com/meetjaka/voltherm-sub000/internal/domain/cart"
	"github.com/meetjaka/voltherm-sub000/internal/domain/category"
	"github.com/meetjaka/voltherm-sub000/internal/domain/certificate"
	"github.com/meetjaka/voltherm-sub000/internal/domain/contact"
	"github.com/meetjaka/voltherm-sub000/internal/domain/inquiry"
	"github.com/meetjaka/voltherm-sub000/internal/domain/product"
)

// Storage keys, one per collection.
const (
	KeyProducts     = "voltherm_products"
	KeyCertificates = "voltherm_certificates"
	KeyContactInfo  = "voltherm_contact_info"
	KeySections     = "voltherm_sections"
	KeyInquiries    = "voltherm_inquiries"
	KeyCart         = "voltherm_cart"

	// KeyAdminSession and KeyAdminCredentials are reserved. The admin
	// session is held by auth.Session and never persisted.
	KeyAdminSession     = "voltherm_admin_session"
	KeyAdminCredentials = "voltherm_admin_credentials"
)

// Backend is a byte-oriented key-value store.
type Backend interface {
	Get(ctx context.Context, key string) ([]byte, bool, error)
	Put(ctx context.Context, key string, value []byte) error
	Keys(ctx context.Context) ([]string, error)
	Ping(ctx context.Context) error
	Close() error
}

// Store is the typed façade over a Backend.
type Store struct {
	backend Backend
	lg      *zap.Logger

	// mu serializes writers so read-modify-write updates made through this
	// process do not lose each other.
	mu sync.Mutex
}

// New creates a Store over backend.
func New(backend Backend, lg *zap.Logger) *Store {
	if lg == nil {
		lg = zap.NewNop()
	}
	return &Store{backend: backend, lg: lg}
}

// Ping checks the backend.
func (s *Store) Ping(ctx context.Context) error {
	return s.backend.Ping(ctx)
}

// Close releases the backend.
func (s *Store) Close() error {
	return s.backend.Close()
}

func load[T any](ctx context.Context, s *Store, key string, seed func() T) T {
	b, ok, err := s.backend.Get(ctx, key)
	if err != nil {
		s.lg.Warn("Local read failed, using seed", zap.String("key", key), zap.Error(err))
		return seed()
	}
	if !ok || string(b) == "null" {
		return seed()
	}

	var v T
	if err := json.Unmarshal(b, &v); err != nil {
		s.lg.Warn("Local value undecodable, using seed", zap.String("key", key), zap.Error(err))
		return seed()
	}
	return v
}

func (s *Store) put(ctx context.Context, key string, v any) error {
	b, err := json.Marshal(v)
	if err != nil {
		return errors.Wrapf(err, "encode %s", key)
	}
	if err := s.backend.Put(ctx, key, b); err != nil {
		return errors.Wrapf(err, "put %s", key)
	}
	return nil
}

func save[T any](ctx context.Context, s *Store, key string, v T) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	return s.put(ctx, key, v)
}

func update[T any](ctx context.Context, s *Store, key string, seed func() T, fn func(T) (T, error)) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	v, err := fn(load(ctx, s, key, seed))
	if err != nil {
		return err
	}
	return s.put(ctx, key, v)
}

func (s *Store) Products(ctx context.Context) []product.Product {
	return load(ctx, s, KeyProducts, SeedProducts)
}

// SaveProducts replaces the whole product collection.
func (s *Store) SaveProducts(ctx context.Context, products []product.Product) error {
	return save(ctx, s, KeyProducts, nonNil(products))
}

// UpdateProducts applies fn to the stored products under the write lock.
func (s *Store) UpdateProducts(ctx context.Context, fn func([]product.Product) ([]product.Product, error)) error {
	return update(ctx, s, KeyProducts, SeedProducts, fn)
}

func (s *Store) Certificates(ctx context.Context) []certificate.Certificate {
	return load(ctx, s, KeyCertificates, SeedCertificates)
}

func (s *Store) SaveCertificates(ctx context.Context, certs []certificate.Certificate) error {
	return save(ctx, s, KeyCertificates, nonNil(certs))
}

func (s *Store) UpdateCertificates(ctx context.Context, fn func([]certificate.Certificate) ([]certificate.Certificate, error)) error {
	return update(ctx, s, KeyCertificates, SeedCertificates, fn)
}

func (s *Store) ContactInfo(ctx context.Context) contact.Info {
	return load(ctx, s, KeyContactInfo, SeedContactInfo)
}

func (s *Store) SaveContactInfo(ctx context.Context, info contact.Info) error {
	return save(ctx, s, KeyContactInfo, info)
}

func (s *Store) UpdateContactInfo(ctx context.Context, fn func(contact.Info) (contact.Info, error)) error {
	return update(ctx, s, KeyContactInfo, SeedContactInfo, fn)
}

func (s *Store) Sections(ctx context.Context) category.Sections {
	return load(ctx, s, KeySections, SeedSections)
}

func (s *Store) SaveSections(ctx context.Context, sections category.Sections) error {
	return save(ctx, s, KeySections, sections)
}

func (s *Store) Inquiries(ctx context.Context) []inquiry.Inquiry {
	return load(ctx, s, KeyInquiries, emptyList[inquiry.Inquiry])
}

func (s *Store) SaveInquiries(ctx context.Context, inquiries []inquiry.Inquiry) error {
	return save(ctx, s, KeyInquiries, nonNil(inquiries))
}

func (s *Store) UpdateInquiries(ctx context.Context, fn func([]inquiry.Inquiry) ([]inquiry.Inquiry, error)) error {
	return update(ctx, s, KeyInquiries, emptyList[inquiry.Inquiry], fn)
}

// Cart returns the visitor cart. The cart is never sent to the backend.
func (s *Store) Cart(ctx context.Context) []cart.Item {
	return load(ctx, s, KeyCart, emptyList[cart.Item])
}

func (s *Store) SaveCart(ctx context.Context, items []cart.Item) error {
	return save(ctx, s, KeyCart, nonNil(items))
}

func emptyList[T any]() []T {
	return []T{}
}

func nonNil[T any](v []T) []T {
	if v == nil {
		return []T{}
	}
	return v
}
