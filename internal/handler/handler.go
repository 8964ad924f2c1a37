// Package handler is the HTTP facade of the storefront data layer.
package handler

import (
	"context"
	"net/http"

	"github.com/meetjaka/voltherm-sub000/internal/admin"
	"github.com/meetjaka/voltherm-sub000/internal/datasource"
	"github.com/meetjaka/voltherm-sub000/internal/domain/auth"
	"github.com/meetjaka/voltherm-sub000/internal/domain/cart"
	"github.com/meetjaka/voltherm-sub000/internal/domain/category"
	"github.com/meetjaka/voltherm-sub000/internal/domain/certificate"
	"github.com/meetjaka/voltherm-sub000/internal/domain/contact"
	"github.com/meetjaka/voltherm-sub000/internal/domain/inquiry"
	"github.com/meetjaka/voltherm-sub000/internal/domain/product"
	"github.com/meetjaka/voltherm-sub000/internal/hybrid"
	"github.com/meetjaka/voltherm-sub000/pkg/httpmiddleware"
)

// Catalog is the public read path.
type Catalog interface {
	Products(ctx context.Context) ([]product.Product, datasource.Source)
	FeaturedProducts(ctx context.Context) ([]product.Product, datasource.Source)
	Certificates(ctx context.Context) ([]certificate.Certificate, datasource.Source)
	ContactInfo(ctx context.Context) (*contact.Info, datasource.Source)
	Sections(ctx context.Context) (*category.Sections, datasource.Source)
	Cart(ctx context.Context) []cart.Item
	SaveCart(ctx context.Context, items []cart.Item) error
	SubmitInquiry(ctx context.Context, sub inquiry.Submission) (*inquiry.Inquiry, datasource.Source, error)
}

// Admin is the back office write path.
type Admin interface {
	Login(ctx context.Context, creds auth.Credentials) (datasource.Source, error)
	Logout(ctx context.Context)
	Profile(ctx context.Context) (*auth.Profile, error)

	CreateProduct(ctx context.Context, p product.Product, files product.Files) (*product.Product, datasource.Source, error)
	CreateProductTwoStep(ctx context.Context, p product.Product, files product.Files) (*admin.CreateResult, error)
	UpdateProduct(ctx context.Context, p product.Product, files product.Files) (*product.Product, datasource.Source, error)
	DeleteProduct(ctx context.Context, p product.Product) (datasource.Source, error)
	DeleteProductPDF(ctx context.Context, p product.Product) (datasource.Source, error)
	SaveProducts(ctx context.Context, products []product.Product) error

	CreateCertificate(ctx context.Context, c certificate.Certificate, image *product.File) (*certificate.Certificate, datasource.Source, error)
	UpdateCertificate(ctx context.Context, c certificate.Certificate, image *product.File) (*certificate.Certificate, datasource.Source, error)
	DeleteCertificate(ctx context.Context, id string) (datasource.Source, error)

	Inquiries(ctx context.Context) ([]inquiry.Inquiry, datasource.Source, error)
	UpdateInquiryStatus(ctx context.Context, id string, status inquiry.Status, notes string) (*inquiry.Inquiry, datasource.Source, error)
	DeleteInquiry(ctx context.Context, id string) (datasource.Source, error)

	UpdateContactInfo(ctx context.Context, info contact.Info) (*contact.Info, datasource.Source, error)
	CreateOffice(ctx context.Context, o contact.Office) (*contact.Office, datasource.Source, error)
	UpdateOffice(ctx context.Context, o contact.Office) (*contact.Office, datasource.Source, error)
	DeleteOffice(ctx context.Context, id string) (datasource.Source, error)
	SaveSections(ctx context.Context, sections category.Sections) (*category.Sections, datasource.Source, error)
}

var (
	_ Catalog = (*hybrid.Service)(nil)
	_ Admin   = (*admin.Service)(nil)
)

// Config holds non-dependency configuration for the Handler.
type Config struct {
	// MaxUploadBytes bounds multipart admin uploads.
	MaxUploadBytes int64
	// MaxBodyBytes bounds JSON request bodies.
	MaxBodyBytes int64
}

// Handler serves the public catalog and the admin API.
type Handler struct {
	catalog   Catalog
	admin     Admin
	keys      *auth.KeyVerifier
	maxUpload int64
	maxBody   int64
}

// NewHandler constructs a Handler.
func NewHandler(cfg Config, catalog Catalog, admin Admin, keys *auth.KeyVerifier) *Handler {
	if cfg.MaxUploadBytes <= 0 {
		cfg.MaxUploadBytes = 32 << 20
	}
	if cfg.MaxBodyBytes <= 0 {
		cfg.MaxBodyBytes = 1 << 20
	}
	return &Handler{
		catalog:   catalog,
		admin:     admin,
		keys:      keys,
		maxUpload: cfg.MaxUploadBytes,
		maxBody:   cfg.MaxBodyBytes,
	}
}

// Register mounts every route on mux. submitLimit guards the anonymous
// inquiry endpoint.
func (h *Handler) Register(mux *http.ServeMux, submitLimit httpmiddleware.Middleware) {
	mux.HandleFunc("GET /api/catalog/products", h.listProducts)
	mux.HandleFunc("GET /api/catalog/products/featured", h.listFeatured)
	mux.HandleFunc("GET /api/catalog/certificates", h.listCertificates)
	mux.HandleFunc("GET /api/catalog/contact-info", h.contactInfo)
	mux.HandleFunc("GET /api/catalog/sections", h.sections)
	mux.HandleFunc("GET /api/cart", h.getCart)
	mux.HandleFunc("PUT /api/cart", h.putCart)
	mux.Handle("POST /api/inquiries", httpmiddleware.Wrap(http.HandlerFunc(h.submitInquiry), submitLimit))

	adminRoutes := map[string]http.HandlerFunc{
		"POST /api/admin/login":                 h.login,
		"POST /api/admin/logout":                h.logout,
		"GET /api/admin/profile":                h.profile,
		"GET /api/admin/inquiries":              h.listInquiries,
		"PATCH /api/admin/inquiries/{id}/status": h.updateInquiryStatus,
		"DELETE /api/admin/inquiries/{id}":      h.deleteInquiry,
		"POST /api/admin/products":              h.createProduct,
		"PUT /api/admin/products":               h.saveProducts,
		"PUT /api/admin/products/{id}":          h.updateProduct,
		"DELETE /api/admin/products/{id}":       h.deleteProduct,
		"DELETE /api/admin/products/{id}/pdf":   h.deleteProductPDF,
		"POST /api/admin/certificates":          h.createCertificate,
		"PUT /api/admin/certificates/{id}":      h.updateCertificate,
		"DELETE /api/admin/certificates/{id}":   h.deleteCertificate,
		"PUT /api/admin/contact-info":           h.updateContactInfo,
		"POST /api/admin/offices":               h.createOffice,
		"PUT /api/admin/offices/{id}":           h.updateOffice,
		"DELETE /api/admin/offices/{id}":        h.deleteOffice,
		"PUT /api/admin/sections":               h.saveSections,
	}
	guard := RequireAdminKey(h.keys)
	for pattern, fn := range adminRoutes {
		mux.Handle(pattern, guard(fn))
	}
}
