package datasource

import (
	"context"
	"slices"
	"time"

	"github.com/google/uuid"

	"github.com/meetjaka/voltherm-sub000/internal/domain/category"
	"github.com/meetjaka/voltherm-sub000/internal/domain/certificate"
	"github.com/meetjaka/voltherm-sub000/internal/domain/contact"
	"github.com/meetjaka/voltherm-sub000/internal/domain/inquiry"
	"github.com/meetjaka/voltherm-sub000/internal/domain/product"
	"github.com/meetjaka/voltherm-sub000/internal/localstore"
)

var (
	_ product.Repository     = (*LocalProducts)(nil)
	_ certificate.Repository = (*LocalCertificates)(nil)
	_ inquiry.Repository     = (*LocalInquiries)(nil)
	_ contact.Repository     = (*LocalContact)(nil)
	_ category.Repository    = (*LocalSections)(nil)
)

// NewLocal returns the local store backed repositories. now stamps locally
// created inquiries.
func NewLocal(s *localstore.Store, now func() time.Time) Repositories {
	if now == nil {
		now = time.Now
	}
	return Repositories{
		Products:     &LocalProducts{s: s},
		Certificates: &LocalCertificates{s: s},
		Inquiries:    &LocalInquiries{s: s, now: now},
		Contact:      &LocalContact{s: s},
		Sections:     &LocalSections{s: s},
	}
}

// LocalProducts mutates the product collection in place.
type LocalProducts struct {
	s *localstore.Store
}

func (r *LocalProducts) List(ctx context.Context) ([]product.Product, error) {
	return r.s.Products(ctx), nil
}

func (r *LocalProducts) ListFeatured(ctx context.Context) ([]product.Product, error) {
	return product.FilterFeatured(r.s.Products(ctx)), nil
}

// Create appends p under the next free local id. Attachments cannot be kept
// locally; their file names stand in for missing references.
func (r *LocalProducts) Create(ctx context.Context, p product.Product, files product.Files) (*product.Product, error) {
	err := r.s.UpdateProducts(ctx, func(list []product.Product) ([]product.Product, error) {
		p.ID = product.NextID(list)
		applyFileNames(&p, files)
		return append(list, p), nil
	})
	if err != nil {
		return nil, err
	}
	return &p, nil
}

func (r *LocalProducts) Update(ctx context.Context, p product.Product, files product.Files) (*product.Product, error) {
	err := r.s.UpdateProducts(ctx, func(list []product.Product) ([]product.Product, error) {
		i := indexProduct(list, p)
		if i < 0 {
			return nil, product.ErrNotFound
		}
		p.ID = list[i].ID
		applyFileNames(&p, files)
		list[i] = p
		return list, nil
	})
	if err != nil {
		return nil, err
	}
	return &p, nil
}

func (r *LocalProducts) Delete(ctx context.Context, p product.Product) error {
	return r.s.UpdateProducts(ctx, func(list []product.Product) ([]product.Product, error) {
		i := indexProduct(list, p)
		if i < 0 {
			return nil, product.ErrNotFound
		}
		return slices.Delete(list, i, i+1), nil
	})
}

func (r *LocalProducts) DeletePDF(ctx context.Context, p product.Product) error {
	return r.s.UpdateProducts(ctx, func(list []product.Product) ([]product.Product, error) {
		i := indexProduct(list, p)
		if i < 0 {
			return nil, product.ErrNotFound
		}
		list[i].PDFURL = ""
		return list, nil
	})
}

// indexProduct matches by local id, or by backend id for records that came
// from a mirror.
func indexProduct(list []product.Product, p product.Product) int {
	return slices.IndexFunc(list, func(q product.Product) bool {
		if p.ID != 0 {
			return q.ID == p.ID
		}
		return p.BackendID != "" && q.BackendID == p.BackendID
	})
}

func applyFileNames(p *product.Product, files product.Files) {
	if files.Image != nil && p.Image == "" {
		p.Image = files.Image.Name
	}
	if files.PDF != nil && p.PDFURL == "" {
		p.PDFURL = files.PDF.Name
	}
}

// LocalCertificates mutates the certificate collection in place.
type LocalCertificates struct {
	s *localstore.Store
}

func (r *LocalCertificates) List(ctx context.Context) ([]certificate.Certificate, error) {
	return r.s.Certificates(ctx), nil
}

func (r *LocalCertificates) Create(ctx context.Context, c certificate.Certificate, image *product.File) (*certificate.Certificate, error) {
	if image == nil {
		return nil, certificate.ErrImageRequired
	}
	c.ID = uuid.NewString()
	if c.Image == "" {
		c.Image = image.Name
	}
	err := r.s.UpdateCertificates(ctx, func(list []certificate.Certificate) ([]certificate.Certificate, error) {
		return append(list, c), nil
	})
	if err != nil {
		return nil, err
	}
	return &c, nil
}

func (r *LocalCertificates) Update(ctx context.Context, c certificate.Certificate, image *product.File) (*certificate.Certificate, error) {
	if image != nil && c.Image == "" {
		c.Image = image.Name
	}
	err := r.s.UpdateCertificates(ctx, func(list []certificate.Certificate) ([]certificate.Certificate, error) {
		i := slices.IndexFunc(list, func(x certificate.Certificate) bool { return x.ID == c.ID })
		if i < 0 {
			return nil, certificate.ErrNotFound
		}
		list[i] = c
		return list, nil
	})
	if err != nil {
		return nil, err
	}
	return &c, nil
}

func (r *LocalCertificates) Delete(ctx context.Context, id string) error {
	return r.s.UpdateCertificates(ctx, func(list []certificate.Certificate) ([]certificate.Certificate, error) {
		i := slices.IndexFunc(list, func(x certificate.Certificate) bool { return x.ID == id })
		if i < 0 {
			return nil, certificate.ErrNotFound
		}
		return slices.Delete(list, i, i+1), nil
	})
}

// LocalInquiries mutates the inquiry collection in place.
type LocalInquiries struct {
	s   *localstore.Store
	now func() time.Time
}

func (r *LocalInquiries) List(ctx context.Context) ([]inquiry.Inquiry, error) {
	return r.s.Inquiries(ctx), nil
}

// Create appends in, assigning a fresh id, status and creation time when
// they are missing.
func (r *LocalInquiries) Create(ctx context.Context, in inquiry.Inquiry) (*inquiry.Inquiry, error) {
	if in.ID == "" {
		in.ID = uuid.NewString()
	}
	if in.Status == "" {
		in.Status = inquiry.StatusNew
	}
	if in.CreatedAt.IsZero() {
		in.CreatedAt = r.now().UTC()
	}
	err := r.s.UpdateInquiries(ctx, func(list []inquiry.Inquiry) ([]inquiry.Inquiry, error) {
		return append(list, in), nil
	})
	if err != nil {
		return nil, err
	}
	return &in, nil
}

func (r *LocalInquiries) UpdateStatus(ctx context.Context, id string, status inquiry.Status, notes string) (*inquiry.Inquiry, error) {
	var updated inquiry.Inquiry
	err := r.s.UpdateInquiries(ctx, func(list []inquiry.Inquiry) ([]inquiry.Inquiry, error) {
		i := slices.IndexFunc(list, func(x inquiry.Inquiry) bool { return x.ID == id })
		if i < 0 {
			return nil, inquiry.ErrNotFound
		}
		if err := inquiry.CanTransition(list[i].Status, status); err != nil {
			return nil, err
		}
		list[i].Status = status
		if notes != "" {
			list[i].Notes = notes
		}
		updated = list[i]
		return list, nil
	})
	if err != nil {
		return nil, err
	}
	return &updated, nil
}

func (r *LocalInquiries) Delete(ctx context.Context, id string) error {
	return r.s.UpdateInquiries(ctx, func(list []inquiry.Inquiry) ([]inquiry.Inquiry, error) {
		i := slices.IndexFunc(list, func(x inquiry.Inquiry) bool { return x.ID == id })
		if i < 0 {
			return nil, inquiry.ErrNotFound
		}
		return slices.Delete(list, i, i+1), nil
	})
}

// LocalContact mutates the stored contact block.
type LocalContact struct {
	s *localstore.Store
}

func (r *LocalContact) Get(ctx context.Context) (*contact.Info, error) {
	info := r.s.ContactInfo(ctx)
	return &info, nil
}

func (r *LocalContact) Update(ctx context.Context, info contact.Info) (*contact.Info, error) {
	if err := r.s.SaveContactInfo(ctx, info); err != nil {
		return nil, err
	}
	return &info, nil
}

func (r *LocalContact) CreateOffice(ctx context.Context, o contact.Office) (*contact.Office, error) {
	o.ID = uuid.NewString()
	err := r.s.UpdateContactInfo(ctx, func(info contact.Info) (contact.Info, error) {
		info.Offices = append(info.Offices, o)
		return info, nil
	})
	if err != nil {
		return nil, err
	}
	return &o, nil
}

func (r *LocalContact) UpdateOffice(ctx context.Context, o contact.Office) (*contact.Office, error) {
	err := r.s.UpdateContactInfo(ctx, func(info contact.Info) (contact.Info, error) {
		i := info.IndexOffice(o.ID)
		if i < 0 {
			return info, contact.ErrOfficeNotFound
		}
		info.Offices[i] = o
		return info, nil
	})
	if err != nil {
		return nil, err
	}
	return &o, nil
}

func (r *LocalContact) DeleteOffice(ctx context.Context, id string) error {
	return r.s.UpdateContactInfo(ctx, func(info contact.Info) (contact.Info, error) {
		i := info.IndexOffice(id)
		if i < 0 {
			return info, contact.ErrOfficeNotFound
		}
		info.Offices = slices.Delete(info.Offices, i, i+1)
		return info, nil
	})
}

// LocalSections reads and replaces the stored taxonomy.
type LocalSections struct {
	s *localstore.Store
}

func (r *LocalSections) Get(ctx context.Context) (*category.Sections, error) {
	s := r.s.Sections(ctx)
	return &s, nil
}

func (r *LocalSections) Save(ctx context.Context, s category.Sections) (*category.Sections, error) {
	if err := r.s.SaveSections(ctx, s); err != nil {
		return nil, err
	}
	return &s, nil
}
