// Package hybrid is the read path of the storefront. Every read prefers the
// backend and falls back to the local store, mirroring fresh backend data
// locally on the way.
package hybrid

import (
	"context"
	"strings"
	"time"

	"github.com/go-faster/errors"
	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
	"go.opentelemetry.io/otel/metric"
	"go.opentelemetry.io/otel/trace"
	"go.uber.org/zap"
	"golang.org/x/sync/singleflight"

	"github.com/meetjaka/voltherm-sub000/internal/datasource"
	"github.com/meetjaka/voltherm-sub000/internal/domain/cart"
	"github.com/meetjaka/voltherm-sub000/internal/domain/category"
	"github.com/meetjaka/voltherm-sub000/internal/domain/certificate"
	"github.com/meetjaka/voltherm-sub000/internal/domain/contact"
	"github.com/meetjaka/voltherm-sub000/internal/domain/inquiry"
	"github.com/meetjaka/voltherm-sub000/internal/domain/product"
	"github.com/meetjaka/voltherm-sub000/internal/localstore"
)

// Options holds optional collaborators of the Service.
type Options struct {
	Logger         *zap.Logger
	MeterProvider  metric.MeterProvider
	TracerProvider trace.TracerProvider
	Now            func() time.Time
}

// Service serves catalog reads and anonymous inquiry submission.
type Service struct {
	selector datasource.Selector
	remote   datasource.Repositories
	local    datasource.Repositories
	store    *localstore.Store

	validate *validator.Validate
	inflight singleflight.Group
	tel      *datasource.Telemetry
	lg       *zap.Logger
	now      func() time.Time
}

// NewService creates a Service. store must be the store behind local.
func NewService(
	selector datasource.Selector,
	remote, local datasource.Repositories,
	store *localstore.Store,
	opts Options,
) (*Service, error) {
	tel, err := datasource.NewTelemetry(opts.MeterProvider, opts.TracerProvider)
	if err != nil {
		return nil, errors.Wrap(err, "telemetry")
	}
	if opts.Logger == nil {
		opts.Logger = zap.NewNop()
	}
	if opts.Now == nil {
		opts.Now = time.Now
	}
	return &Service{
		selector: selector,
		remote:   remote,
		local:    local,
		store:    store,
		validate: validator.New(validator.WithRequiredStructEnabled()),
		tel:      tel,
		lg:       opts.Logger,
		now:      opts.Now,
	}, nil
}

// read runs the remote fetch when the backend is available and falls back
// to the local fetch otherwise or on any remote failure. mirror is called
// with fresh remote data only.
func read[T any](
	ctx context.Context,
	s *Service,
	op string,
	fromRemote func(context.Context) (T, error),
	fromLocal func(context.Context) (T, error),
	mirror func(context.Context, T) error,
) (T, datasource.Source) {
	ctx, span := s.tel.Start(ctx, "hybrid."+op)
	defer span.End()

	lg := s.lg.With(zap.String("op", op))
	if s.selector.Available(ctx) {
		v, err := fromRemote(ctx)
		if err == nil {
			if mirror != nil {
				if err := mirror(ctx, v); err != nil {
					lg.Warn("Mirror to local store failed", zap.Error(err))
				}
			}
			lg.Debug("Served from remote")
			s.tel.Record(ctx, op, datasource.SourceRemote)
			return v, datasource.SourceRemote
		}
		lg.Warn("Remote read failed, using local data", zap.Error(err))
	} else {
		lg.Info("Remote unavailable, using local data")
	}

	v, err := fromLocal(ctx)
	if err != nil {
		// Local reads resolve to seeds; an error here is a programming bug.
		lg.Error("Local read failed", zap.Error(err))
	}
	s.tel.Record(ctx, op, datasource.SourceLocal)
	return v, datasource.SourceLocal
}

// Products returns the catalog.
func (s *Service) Products(ctx context.Context) ([]product.Product, datasource.Source) {
	return read(ctx, s, "products",
		s.remote.Products.List,
		s.local.Products.List,
		s.store.SaveProducts,
	)
}

// FeaturedProducts returns the featured view of the catalog. The view is
// never mirrored; remote results take local ids from the mirrored catalog so
// both paths identify products alike.
func (s *Service) FeaturedProducts(ctx context.Context) ([]product.Product, datasource.Source) {
	return read(ctx, s, "featured_products",
		func(ctx context.Context) ([]product.Product, error) {
			featured, err := s.remote.Products.ListFeatured(ctx)
			if err != nil {
				return nil, err
			}
			return alignLocalIDs(featured, s.store.Products(ctx)), nil
		},
		s.local.Products.ListFeatured,
		nil,
	)
}

func alignLocalIDs(products, mirrored []product.Product) []product.Product {
	ids := make(map[string]int64, len(mirrored))
	for _, p := range mirrored {
		if p.BackendID != "" {
			ids[p.BackendID] = p.ID
		}
	}
	for i, p := range products {
		if id, ok := ids[p.BackendID]; ok {
			products[i].ID = id
		}
	}
	return products
}

// Certificates returns all certificates.
func (s *Service) Certificates(ctx context.Context) ([]certificate.Certificate, datasource.Source) {
	return read(ctx, s, "certificates",
		s.remote.Certificates.List,
		s.local.Certificates.List,
		s.store.SaveCertificates,
	)
}

// ContactInfo returns the company contact block.
func (s *Service) ContactInfo(ctx context.Context) (*contact.Info, datasource.Source) {
	return read(ctx, s, "contact_info",
		s.remote.Contact.Get,
		s.local.Contact.Get,
		func(ctx context.Context, info *contact.Info) error {
			return s.store.SaveContactInfo(ctx, *info)
		},
	)
}

// Sections returns the catalog taxonomy.
func (s *Service) Sections(ctx context.Context) (*category.Sections, datasource.Source) {
	return read(ctx, s, "sections",
		s.remote.Sections.Get,
		s.local.Sections.Get,
		func(ctx context.Context, sections *category.Sections) error {
			return s.store.SaveSections(ctx, *sections)
		},
	)
}

// Cart returns the visitor cart from the local store.
func (s *Service) Cart(ctx context.Context) []cart.Item {
	return s.store.Cart(ctx)
}

// SaveCart replaces the visitor cart in the local store.
func (s *Service) SaveCart(ctx context.Context, items []cart.Item) error {
	return s.store.SaveCart(ctx, items)
}

// ValidationError wraps submission validation failures.
type ValidationError struct {
	Err error
}

func (e *ValidationError) Error() string {
	return "invalid submission: " + e.Err.Error()
}

func (e *ValidationError) Unwrap() error {
	return e.Err
}

// SubmitInquiry records a visitor inquiry. The backend is tried first; any
// failure there stores the inquiry locally instead, so the visitor always
// gets an inquiry with an id back. Only invalid input is reported as an
// error. Identical submissions in flight at the same time are recorded once.
func (s *Service) SubmitInquiry(ctx context.Context, sub inquiry.Submission) (*inquiry.Inquiry, datasource.Source, error) {
	if err := s.validate.Struct(sub); err != nil {
		return nil, "", &ValidationError{Err: err}
	}

	type result struct {
		in  inquiry.Inquiry
		src datasource.Source
	}
	v, _, _ := s.inflight.Do(submissionKey(sub), func() (any, error) {
		in, src := s.submit(ctx, sub)
		return result{in: in, src: src}, nil
	})
	r := v.(result)
	return &r.in, r.src, nil
}

func (s *Service) submit(ctx context.Context, sub inquiry.Submission) (inquiry.Inquiry, datasource.Source) {
	const op = "submit_inquiry"
	ctx, span := s.tel.Start(ctx, "hybrid."+op)
	defer span.End()

	lg := s.lg.With(zap.String("op", op))
	draft := inquiry.New(sub, "", s.now().UTC())

	if s.selector.Available(ctx) {
		created, err := s.remote.Inquiries.Create(ctx, draft)
		if err == nil {
			if created.ID == "" {
				lg.Warn("Backend returned inquiry without id, assigning one")
				created.ID = uuid.NewString()
			}
			s.tel.Record(ctx, op, datasource.SourceRemote)
			return *created, datasource.SourceRemote
		}
		lg.Warn("Remote inquiry create failed, storing locally", zap.Error(err))
	} else {
		lg.Info("Remote unavailable, storing inquiry locally")
	}

	created, err := s.local.Inquiries.Create(ctx, draft)
	if err != nil {
		lg.Error("Local inquiry store failed", zap.Error(err))
		draft.ID = uuid.NewString()
		created = &draft
	}
	s.tel.Record(ctx, op, datasource.SourceLocal)
	return *created, datasource.SourceLocal
}

func submissionKey(sub inquiry.Submission) string {
	parts := []string{
		strings.ToLower(strings.TrimSpace(sub.Email)),
		strings.TrimSpace(sub.Name),
		strings.TrimSpace(sub.Phone),
		strings.TrimSpace(sub.Company),
		strings.TrimSpace(sub.Requirements),
	}
	parts = append(parts, inquiry.ProductIDs(sub.Products)...)
	return strings.Join(parts, "\x00")
}
