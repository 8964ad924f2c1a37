// Package datasource holds the remote-backed and local-backed repositories
// and the strategy that picks between them.
package datasource

import (
	"context"
	"sync"
	"time"

	"golang.org/x/sync/singleflight"

	"github.com/meetjaka/voltherm-sub000/internal/domain/category"
	"github.com/meetjaka/voltherm-sub000/internal/domain/certificate"
	"github.com/meetjaka/voltherm-sub000/internal/domain/contact"
	"github.com/meetjaka/voltherm-sub000/internal/domain/inquiry"
	"github.com/meetjaka/voltherm-sub000/internal/domain/product"
)

// Source identifies where a result came from.
type Source string

const (
	SourceRemote Source = "remote"
	SourceLocal  Source = "local"
)

// Prober reports whether the backend is reachable.
type Prober interface {
	TestConnection(ctx context.Context) bool
}

// Strategy decides per operation whether the remote repositories are used.
// With a zero TTL every call probes; otherwise a probe result is reused for
// the TTL. Concurrent probes share one round of attempts.
type Strategy struct {
	prober Prober
	ttl    time.Duration
	now    func() time.Time

	group singleflight.Group

	mu        sync.Mutex
	checkedAt time.Time
	available bool
}

// StrategyOption configures a Strategy.
type StrategyOption func(*Strategy)

// WithProbeTTL caches probe results for ttl.
func WithProbeTTL(ttl time.Duration) StrategyOption {
	return func(s *Strategy) { s.ttl = ttl }
}

// WithClock sets the time source.
func WithClock(now func() time.Time) StrategyOption {
	return func(s *Strategy) { s.now = now }
}

// NewStrategy returns a Strategy probing through p.
func NewStrategy(p Prober, opts ...StrategyOption) *Strategy {
	s := &Strategy{prober: p, now: time.Now}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Available reports whether the remote path should be attempted.
func (s *Strategy) Available(ctx context.Context) bool {
	if s.ttl > 0 {
		s.mu.Lock()
		fresh := !s.checkedAt.IsZero() && s.now().Sub(s.checkedAt) < s.ttl
		available := s.available
		s.mu.Unlock()
		if fresh {
			return available
		}
	}

	v, _, _ := s.group.Do("probe", func() (any, error) {
		ok := s.prober.TestConnection(ctx)
		s.mu.Lock()
		s.available = ok
		s.checkedAt = s.now()
		s.mu.Unlock()
		return ok, nil
	})
	return v.(bool)
}

// Invalidate drops a cached probe result, e.g. after a transport failure.
func (s *Strategy) Invalidate() {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.checkedAt = time.Time{}
}

// Repositories groups one repository per entity.
type Repositories struct {
	Products     product.Repository
	Certificates certificate.Repository
	Inquiries    inquiry.Repository
	Contact      contact.Repository
	Sections     category.Repository
}
