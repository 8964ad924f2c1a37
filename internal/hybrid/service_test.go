package hybrid

import (
	"context"
	"strings"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/go-faster/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/meetjaka/voltherm-sub000/internal/datasource"
	"github.com/meetjaka/voltherm-sub000/internal/domain/cart"
	"github.com/meetjaka/voltherm-sub000/internal/domain/category"
	"github.com/meetjaka/voltherm-sub000/internal/domain/certificate"
	"github.com/meetjaka/voltherm-sub000/internal/domain/contact"
	"github.com/meetjaka/voltherm-sub000/internal/domain/inquiry"
	"github.com/meetjaka/voltherm-sub000/internal/domain/product"
	"github.com/meetjaka/voltherm-sub000/internal/localstore"
	"github.com/meetjaka/voltherm-sub000/internal/mapper"
	"github.com/meetjaka/voltherm-sub000/internal/remote"
)

// --- Mock implementations ---

type mockSelector struct {
	up bool
}

func (m *mockSelector) Available(context.Context) bool { return m.up }

var errRemote = &remote.TransportError{Op: "GET /api", Err: errors.New("connection refused")}

type mockProducts struct {
	list     []product.Product
	featured []product.Product
	err      error
	calls    atomic.Int32
}

func (m *mockProducts) List(context.Context) ([]product.Product, error) {
	m.calls.Add(1)
	return m.list, m.err
}

func (m *mockProducts) ListFeatured(context.Context) ([]product.Product, error) {
	m.calls.Add(1)
	return m.featured, m.err
}

func (m *mockProducts) Create(context.Context, product.Product, product.Files) (*product.Product, error) {
	m.calls.Add(1)
	return nil, m.err
}

func (m *mockProducts) Update(context.Context, product.Product, product.Files) (*product.Product, error) {
	m.calls.Add(1)
	return nil, m.err
}

func (m *mockProducts) Delete(context.Context, product.Product) error {
	m.calls.Add(1)
	return m.err
}

func (m *mockProducts) DeletePDF(context.Context, product.Product) error {
	m.calls.Add(1)
	return m.err
}

type mockCertificates struct {
	list []certificate.Certificate
	err  error
}

func (m *mockCertificates) List(context.Context) ([]certificate.Certificate, error) {
	return m.list, m.err
}

func (m *mockCertificates) Create(context.Context, certificate.Certificate, *product.File) (*certificate.Certificate, error) {
	return nil, m.err
}

func (m *mockCertificates) Update(context.Context, certificate.Certificate, *product.File) (*certificate.Certificate, error) {
	return nil, m.err
}

func (m *mockCertificates) Delete(context.Context, string) error { return m.err }

type mockInquiries struct {
	mu      sync.Mutex
	created []inquiry.Inquiry
	id      string
	delay   time.Duration
	err     error
}

func (m *mockInquiries) List(context.Context) ([]inquiry.Inquiry, error) { return nil, m.err }

func (m *mockInquiries) Create(_ context.Context, in inquiry.Inquiry) (*inquiry.Inquiry, error) {
	if m.delay > 0 {
		time.Sleep(m.delay)
	}
	if m.err != nil {
		return nil, m.err
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	in.ID = m.id
	m.created = append(m.created, in)
	return &in, nil
}

func (m *mockInquiries) UpdateStatus(context.Context, string, inquiry.Status, string) (*inquiry.Inquiry, error) {
	return nil, m.err
}

func (m *mockInquiries) Delete(context.Context, string) error { return m.err }

type mockContact struct {
	info *contact.Info
	err  error
}

func (m *mockContact) Get(context.Context) (*contact.Info, error) { return m.info, m.err }

func (m *mockContact) Update(context.Context, contact.Info) (*contact.Info, error) {
	return nil, m.err
}

func (m *mockContact) CreateOffice(context.Context, contact.Office) (*contact.Office, error) {
	return nil, m.err
}

func (m *mockContact) UpdateOffice(context.Context, contact.Office) (*contact.Office, error) {
	return nil, m.err
}

func (m *mockContact) DeleteOffice(context.Context, string) error { return m.err }

type mockSections struct {
	sections *category.Sections
	err      error
}

func (m *mockSections) Get(context.Context) (*category.Sections, error) { return m.sections, m.err }

func (m *mockSections) Save(context.Context, category.Sections) (*category.Sections, error) {
	return nil, m.err
}

// --- Helpers ---

type fixture struct {
	svc      *Service
	store    *localstore.Store
	selector *mockSelector
	products *mockProducts
	certs    *mockCertificates
	inqs     *mockInquiries
	contact  *mockContact
	sections *mockSections
}

func newFixture(t *testing.T, up bool) *fixture {
	t.Helper()
	f := &fixture{
		store:    localstore.New(localstore.NewMemoryBackend(), nil),
		selector: &mockSelector{up: up},
		products: &mockProducts{},
		certs:    &mockCertificates{},
		inqs:     &mockInquiries{id: "remote-1"},
		contact:  &mockContact{},
		sections: &mockSections{},
	}
	remoteRepos := datasource.Repositories{
		Products:     f.products,
		Certificates: f.certs,
		Inquiries:    f.inqs,
		Contact:      f.contact,
		Sections:     f.sections,
	}
	now := func() time.Time { return time.Date(2026, 2, 3, 4, 5, 6, 0, time.UTC) }
	svc, err := NewService(f.selector, remoteRepos, datasource.NewLocal(f.store, now), f.store, Options{Now: now})
	require.NoError(t, err)
	f.svc = svc
	return f
}

func wireCatalog(t *testing.T) []product.Product {
	t.Helper()
	return mapper.ProductsFromWire([]remote.Product{
		{ProductID: "a1", ProductName: "A", Featured: true},
		{ProductID: "b2", ProductName: "B"},
		{ProductID: "c3", ProductName: "C", Featured: true},
		{ProductID: "d4", ProductName: "D", Featured: true},
	})
}

func ids(products []product.Product) []int64 {
	out := make([]int64, len(products))
	for i, p := range products {
		out[i] = p.ID
	}
	return out
}

// --- Tests ---

func TestProducts_RemoteUnreachableReturnsSeed(t *testing.T) {
	f := newFixture(t, false)

	got, src := f.svc.Products(context.Background())

	assert.Equal(t, datasource.SourceLocal, src)
	assert.Len(t, got, 6)
	assert.Equal(t, localstore.SeedProducts(), got)
	assert.Zero(t, f.products.calls.Load())
}

func TestReads_FallbackInvariant(t *testing.T) {
	ctx := context.Background()

	for _, up := range []bool{false, true} {
		f := newFixture(t, up)
		f.products.err = errRemote
		f.certs.err = errRemote
		f.contact.err = &remote.StatusError{Status: 500}
		f.sections.err = &remote.APIError{Message: "boom"}

		products, src := f.svc.Products(ctx)
		assert.Equal(t, datasource.SourceLocal, src)
		assert.NotEmpty(t, products)

		featured, src := f.svc.FeaturedProducts(ctx)
		assert.Equal(t, datasource.SourceLocal, src)
		assert.NotEmpty(t, featured)

		certs, src := f.svc.Certificates(ctx)
		assert.Equal(t, datasource.SourceLocal, src)
		assert.NotEmpty(t, certs)

		info, src := f.svc.ContactInfo(ctx)
		assert.Equal(t, datasource.SourceLocal, src)
		require.NotNil(t, info)
		assert.NotEmpty(t, info.Sales.Email)

		sections, src := f.svc.Sections(ctx)
		assert.Equal(t, datasource.SourceLocal, src)
		require.NotNil(t, sections)
		assert.NotEmpty(t, sections.Main)
	}
}

func TestProducts_MirrorReplacesLocal(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t, true)
	require.NoError(t, f.store.SaveProducts(ctx, []product.Product{{ID: 42, Title: "Stale"}}))
	f.products.list = wireCatalog(t)

	got, src := f.svc.Products(ctx)

	assert.Equal(t, datasource.SourceRemote, src)
	assert.Equal(t, f.products.list, got)
	assert.Equal(t, f.products.list, f.store.Products(ctx))
}

func TestFeaturedProducts_NotMirrored(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t, true)
	f.products.featured = product.FilterFeatured(wireCatalog(t))

	_, src := f.svc.FeaturedProducts(ctx)

	assert.Equal(t, datasource.SourceRemote, src)
	assert.Equal(t, localstore.SeedProducts(), f.store.Products(ctx))
}

func TestFeaturedProducts_SameOnBothPaths(t *testing.T) {
	ctx := context.Background()
	catalog := wireCatalog(t)

	// The backend featured endpoint sees only its own subset, so its
	// positional ids differ from the full catalog.
	backendFeatured := mapper.ProductsFromWire([]remote.Product{
		{ProductID: "a1", ProductName: "A", Featured: true},
		{ProductID: "c3", ProductName: "C", Featured: true},
		{ProductID: "d4", ProductName: "D", Featured: true},
	})

	online := newFixture(t, true)
	require.NoError(t, online.store.SaveProducts(ctx, catalog))
	online.products.featured = backendFeatured
	remoteView, src := online.svc.FeaturedProducts(ctx)
	require.Equal(t, datasource.SourceRemote, src)

	offline := newFixture(t, false)
	require.NoError(t, offline.store.SaveProducts(ctx, catalog))
	localView, src := offline.svc.FeaturedProducts(ctx)
	require.Equal(t, datasource.SourceLocal, src)

	assert.ElementsMatch(t, ids(localView), ids(remoteView))
	assert.Equal(t, []int64{1, 3, 4}, ids(localView))
}

func TestCertificatesContactSections_Mirror(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t, true)
	f.certs.list = []certificate.Certificate{{ID: "c9", Title: "UL"}}
	f.contact.info = &contact.Info{Sales: contact.ContactPerson{Email: "new@voltherm.in"}}
	f.sections.sections = &category.Sections{Main: []category.MainCategory{{ID: "m9"}}}

	_, _ = f.svc.Certificates(ctx)
	_, _ = f.svc.ContactInfo(ctx)
	_, _ = f.svc.Sections(ctx)

	assert.Equal(t, f.certs.list, f.store.Certificates(ctx))
	assert.Equal(t, "new@voltherm.in", f.store.ContactInfo(ctx).Sales.Email)
	assert.Equal(t, "m9", f.store.Sections(ctx).Main[0].ID)
}

func validSubmission() inquiry.Submission {
	return inquiry.Submission{
		Name:         "Ada",
		Email:        "ada@example.com",
		Phone:        "+91 99999 00000",
		Requirements: "20 units of 100Ah",
		Products:     []inquiry.ProductRef{{ID: "1"}},
	}
}

func TestSubmitInquiry_Remote(t *testing.T) {
	f := newFixture(t, true)

	got, src, err := f.svc.SubmitInquiry(context.Background(), validSubmission())
	require.NoError(t, err)

	assert.Equal(t, datasource.SourceRemote, src)
	assert.Equal(t, "remote-1", got.ID)
	assert.Empty(t, f.store.Inquiries(context.Background()))
}

func TestSubmitInquiry_FallsBackLocally(t *testing.T) {
	tests := []struct {
		name string
		up   bool
		err  error
	}{
		{name: "unreachable", up: false},
		{name: "transport error", up: true, err: errRemote},
		{name: "rejected", up: true, err: &remote.StatusError{Status: 422, Body: "bad"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ctx := context.Background()
			f := newFixture(t, tt.up)
			f.inqs.err = tt.err

			first, src, err := f.svc.SubmitInquiry(ctx, validSubmission())
			require.NoError(t, err)
			second := validSubmission()
			second.Email = "grace@example.com"
			next, _, err := f.svc.SubmitInquiry(ctx, second)
			require.NoError(t, err)

			assert.Equal(t, datasource.SourceLocal, src)
			assert.NotEmpty(t, first.ID)
			assert.NotEqual(t, first.ID, next.ID)
			assert.Equal(t, inquiry.StatusNew, first.Status)
			assert.Empty(t, first.Company)
			assert.Equal(t, time.Date(2026, 2, 3, 4, 5, 6, 0, time.UTC), first.CreatedAt)

			stored := f.store.Inquiries(ctx)
			require.Len(t, stored, 2)
			assert.Equal(t, first.ID, stored[0].ID)
		})
	}
}

func TestSubmitInquiry_Validation(t *testing.T) {
	f := newFixture(t, true)
	sub := validSubmission()
	sub.Email = "not-an-email"

	_, _, err := f.svc.SubmitInquiry(context.Background(), sub)

	var verr *ValidationError
	require.ErrorAs(t, err, &verr)
	assert.Empty(t, f.inqs.created)
}

func TestSubmitInquiry_CoalescesDoubleSubmit(t *testing.T) {
	f := newFixture(t, true)
	f.inqs.delay = 50 * time.Millisecond

	var wg sync.WaitGroup
	results := make([]string, 2)
	for i := range results {
		wg.Add(1)
		go func() {
			defer wg.Done()
			in, _, err := f.svc.SubmitInquiry(context.Background(), validSubmission())
			assert.NoError(t, err)
			results[i] = in.ID
		}()
	}
	wg.Wait()

	f.inqs.mu.Lock()
	defer f.inqs.mu.Unlock()
	assert.Len(t, f.inqs.created, 1)
	assert.Equal(t, results[0], results[1])
}

func TestSubmitInquiry_DistinctCompaniesNotMerged(t *testing.T) {
	f := newFixture(t, true)
	f.inqs.delay = 50 * time.Millisecond

	var wg sync.WaitGroup
	for _, company := range []string{"Acme Solar", "Bright Grid"} {
		wg.Add(1)
		go func() {
			defer wg.Done()
			sub := validSubmission()
			sub.Company = company
			_, _, err := f.svc.SubmitInquiry(context.Background(), sub)
			assert.NoError(t, err)
		}()
	}
	wg.Wait()

	f.inqs.mu.Lock()
	defer f.inqs.mu.Unlock()
	assert.Len(t, f.inqs.created, 2)
}

func TestSubmissionKey(t *testing.T) {
	base := validSubmission()
	base.Company = "Acme Solar"

	other := base
	other.Company = "Another Company"
	assert.NotEqual(t, submissionKey(base), submissionKey(other))

	same := base
	same.Email = strings.ToUpper(base.Email)
	same.Company = " " + base.Company + " "
	assert.Equal(t, submissionKey(base), submissionKey(same))
}

func TestCart_LocalOnly(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t, true)

	require.NoError(t, f.svc.SaveCart(ctx, []cart.Item{{ProductID: "2", Quantity: 3}}))
	assert.Equal(t, []cart.Item{{ProductID: "2", Quantity: 3}}, f.svc.Cart(ctx))
	assert.Zero(t, f.products.calls.Load())
}
