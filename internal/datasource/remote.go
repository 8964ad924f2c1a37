package datasource

import (
	"context"

	"github.com/meetjaka/voltherm-sub000/internal/domain/category"
	"github.com/meetjaka/voltherm-sub000/internal/domain/certificate"
	"github.com/meetjaka/voltherm-sub000/internal/domain/contact"
	"github.com/meetjaka/voltherm-sub000/internal/domain/inquiry"
	"github.com/meetjaka/voltherm-sub000/internal/domain/product"
	"github.com/meetjaka/voltherm-sub000/internal/mapper"
	"github.com/meetjaka/voltherm-sub000/internal/remote"
)

var (
	_ product.Repository     = (*RemoteProducts)(nil)
	_ certificate.Repository = (*RemoteCertificates)(nil)
	_ inquiry.Repository     = (*RemoteInquiries)(nil)
	_ contact.Repository     = (*RemoteContact)(nil)
	_ category.Repository    = (*RemoteSections)(nil)
)

// NewRemote returns the backend-backed repositories.
func NewRemote(c *remote.Client) Repositories {
	return Repositories{
		Products:     &RemoteProducts{c: c},
		Certificates: &RemoteCertificates{c: c},
		Inquiries:    &RemoteInquiries{c: c},
		Contact:      &RemoteContact{c: c},
		Sections:     &RemoteSections{c: c},
	}
}

// RemoteProducts maps product operations onto the backend.
type RemoteProducts struct {
	c *remote.Client
}

func (r *RemoteProducts) List(ctx context.Context) ([]product.Product, error) {
	ws, err := r.c.ListProducts(ctx)
	if err != nil {
		return nil, err
	}
	return mapper.ProductsFromWire(ws), nil
}

// ListFeatured uses the backend's featured view and applies the shared
// featured predicate on top of it.
func (r *RemoteProducts) ListFeatured(ctx context.Context) ([]product.Product, error) {
	ws, err := r.c.FeaturedProducts(ctx)
	if err != nil {
		return nil, err
	}
	return product.FilterFeatured(mapper.ProductsFromWire(ws)), nil
}

func (r *RemoteProducts) Create(ctx context.Context, p product.Product, files product.Files) (*product.Product, error) {
	payload, err := mapper.NewProductPayload(p)
	if err != nil {
		return nil, err
	}
	out, err := r.c.CreateProduct(ctx, payload, files)
	if err != nil {
		return nil, err
	}
	created := mapper.ProductFromWire(*out, p.ID)
	return &created, nil
}

func (r *RemoteProducts) Update(ctx context.Context, p product.Product, files product.Files) (*product.Product, error) {
	payload, err := mapper.UpdateProductPayload(p)
	if err != nil {
		return nil, err
	}
	out, err := r.c.UpdateProduct(ctx, payload, files)
	if err != nil {
		return nil, err
	}
	updated := mapper.ProductFromWire(*out, p.ID)
	return &updated, nil
}

func (r *RemoteProducts) Delete(ctx context.Context, p product.Product) error {
	if p.BackendID == "" {
		return product.ErrMissingBackendID
	}
	return r.c.DeleteProduct(ctx, p.BackendID)
}

func (r *RemoteProducts) DeletePDF(ctx context.Context, p product.Product) error {
	if p.BackendID == "" {
		return product.ErrMissingBackendID
	}
	return r.c.DeleteProductPDF(ctx, p.BackendID)
}

// RemoteCertificates maps certificate operations onto the backend.
type RemoteCertificates struct {
	c *remote.Client
}

func (r *RemoteCertificates) List(ctx context.Context) ([]certificate.Certificate, error) {
	ws, err := r.c.ListCertificates(ctx)
	if err != nil {
		return nil, err
	}
	return mapper.CertificatesFromWire(ws), nil
}

func (r *RemoteCertificates) Create(ctx context.Context, c certificate.Certificate, image *product.File) (*certificate.Certificate, error) {
	c.ID = ""
	payload, err := mapper.CertificatePayload(c)
	if err != nil {
		return nil, err
	}
	out, err := r.c.CreateCertificate(ctx, payload, image)
	if err != nil {
		return nil, err
	}
	created := mapper.CertificateFromWire(*out)
	return &created, nil
}

func (r *RemoteCertificates) Update(ctx context.Context, c certificate.Certificate, image *product.File) (*certificate.Certificate, error) {
	payload, err := mapper.CertificatePayload(c)
	if err != nil {
		return nil, err
	}
	out, err := r.c.UpdateCertificate(ctx, payload, image)
	if err != nil {
		return nil, err
	}
	updated := mapper.CertificateFromWire(*out)
	return &updated, nil
}

func (r *RemoteCertificates) Delete(ctx context.Context, id string) error {
	return r.c.DeleteCertificate(ctx, id)
}

// RemoteInquiries maps inquiry operations onto the backend.
type RemoteInquiries struct {
	c *remote.Client
}

func (r *RemoteInquiries) List(ctx context.Context) ([]inquiry.Inquiry, error) {
	ws, err := r.c.ListInquiries(ctx)
	if err != nil {
		return nil, err
	}
	return mapper.InquiriesFromWire(ws), nil
}

func (r *RemoteInquiries) Create(ctx context.Context, in inquiry.Inquiry) (*inquiry.Inquiry, error) {
	payload, err := mapper.InquiryPayload(in)
	if err != nil {
		return nil, err
	}
	out, err := r.c.CreateInquiry(ctx, payload)
	if err != nil {
		return nil, err
	}
	created := mapper.InquiryFromWire(*out)
	return &created, nil
}

func (r *RemoteInquiries) UpdateStatus(ctx context.Context, id string, status inquiry.Status, notes string) (*inquiry.Inquiry, error) {
	payload, err := mapper.StatusPayload(status, notes)
	if err != nil {
		return nil, err
	}
	out, err := r.c.UpdateInquiryStatus(ctx, id, payload)
	if err != nil {
		return nil, err
	}
	updated := mapper.InquiryFromWire(*out)
	return &updated, nil
}

func (r *RemoteInquiries) Delete(ctx context.Context, id string) error {
	return r.c.DeleteInquiry(ctx, id)
}

// RemoteContact maps contact operations onto the backend.
type RemoteContact struct {
	c *remote.Client
}

func (r *RemoteContact) Get(ctx context.Context) (*contact.Info, error) {
	w, err := r.c.ContactInfo(ctx)
	if err != nil {
		return nil, err
	}
	info := mapper.ContactInfoFromWire(*w)
	return &info, nil
}

func (r *RemoteContact) Update(ctx context.Context, info contact.Info) (*contact.Info, error) {
	payload, err := mapper.ContactInfoPayload(info)
	if err != nil {
		return nil, err
	}
	w, err := r.c.UpdateContactInfo(ctx, payload)
	if err != nil {
		return nil, err
	}
	updated := mapper.ContactInfoFromWire(*w)
	return &updated, nil
}

func (r *RemoteContact) CreateOffice(ctx context.Context, o contact.Office) (*contact.Office, error) {
	o.ID = ""
	payload, err := mapper.OfficePayload(o)
	if err != nil {
		return nil, err
	}
	w, err := r.c.CreateOffice(ctx, payload)
	if err != nil {
		return nil, err
	}
	created := mapper.OfficeFromWire(*w)
	return &created, nil
}

func (r *RemoteContact) UpdateOffice(ctx context.Context, o contact.Office) (*contact.Office, error) {
	payload, err := mapper.OfficePayload(o)
	if err != nil {
		return nil, err
	}
	w, err := r.c.UpdateOffice(ctx, payload)
	if err != nil {
		return nil, err
	}
	updated := mapper.OfficeFromWire(*w)
	return &updated, nil
}

func (r *RemoteContact) DeleteOffice(ctx context.Context, id string) error {
	return r.c.DeleteOffice(ctx, id)
}

// RemoteSections maps the taxonomy setting onto the backend.
type RemoteSections struct {
	c *remote.Client
}

func (r *RemoteSections) Get(ctx context.Context) (*category.Sections, error) {
	w, err := r.c.Sections(ctx)
	if err != nil {
		return nil, err
	}
	s := mapper.SectionsFromWire(*w)
	return &s, nil
}

func (r *RemoteSections) Save(ctx context.Context, s category.Sections) (*category.Sections, error) {
	payload, err := mapper.SectionsPayload(s)
	if err != nil {
		return nil, err
	}
	w, err := r.c.SaveSections(ctx, payload)
	if err != nil {
		return nil, err
	}
	saved := mapper.SectionsFromWire(*w)
	return &saved, nil
}
