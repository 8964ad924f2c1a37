package admin

import (
	"context"

	"github.com/meetjaka/voltherm-sub000/internal/datasource"
	"github.com/meetjaka/voltherm-sub000/internal/domain/category"
	"github.com/meetjaka/voltherm-sub000/internal/domain/certificate"
	"github.com/meetjaka/voltherm-sub000/internal/domain/contact"
	"github.com/meetjaka/voltherm-sub000/internal/domain/product"
)

// CreateCertificate uploads a certificate. Unlike products, the image is
// mandatory and no placeholder is substituted.
func (s *Service) CreateCertificate(ctx context.Context, c certificate.Certificate, image *product.File) (*certificate.Certificate, datasource.Source, error) {
	if image == nil {
		return nil, "", certificate.ErrImageRequired
	}
	return write(ctx, s, "create_certificate", c.Title, []any{c, image},
		func(ctx context.Context) (*certificate.Certificate, error) {
			return s.remote.Certificates.Create(ctx, c, image)
		},
		func(ctx context.Context) (*certificate.Certificate, error) {
			return s.local.Certificates.Create(ctx, c, image)
		},
	)
}

func (s *Service) UpdateCertificate(ctx context.Context, c certificate.Certificate, image *product.File) (*certificate.Certificate, datasource.Source, error) {
	return write(ctx, s, "update_certificate", c.ID, []any{c, image},
		func(ctx context.Context) (*certificate.Certificate, error) {
			return s.remote.Certificates.Update(ctx, c, image)
		},
		func(ctx context.Context) (*certificate.Certificate, error) {
			return s.local.Certificates.Update(ctx, c, image)
		},
	)
}

func (s *Service) DeleteCertificate(ctx context.Context, id string) (datasource.Source, error) {
	_, src, err := write(ctx, s, "delete_certificate", id, nil,
		func(ctx context.Context) (struct{}, error) {
			return struct{}{}, s.remote.Certificates.Delete(ctx, id)
		},
		func(ctx context.Context) (struct{}, error) {
			return struct{}{}, s.local.Certificates.Delete(ctx, id)
		},
	)
	return src, err
}

// UpdateContactInfo replaces the contact block.
func (s *Service) UpdateContactInfo(ctx context.Context, info contact.Info) (*contact.Info, datasource.Source, error) {
	return write(ctx, s, "update_contact_info", "", info,
		func(ctx context.Context) (*contact.Info, error) {
			return s.remote.Contact.Update(ctx, info)
		},
		func(ctx context.Context) (*contact.Info, error) {
			return s.local.Contact.Update(ctx, info)
		},
	)
}

func (s *Service) CreateOffice(ctx context.Context, o contact.Office) (*contact.Office, datasource.Source, error) {
	return write(ctx, s, "create_office", o.Name, o,
		func(ctx context.Context) (*contact.Office, error) {
			return s.remote.Contact.CreateOffice(ctx, o)
		},
		func(ctx context.Context) (*contact.Office, error) {
			return s.local.Contact.CreateOffice(ctx, o)
		},
	)
}

func (s *Service) UpdateOffice(ctx context.Context, o contact.Office) (*contact.Office, datasource.Source, error) {
	return write(ctx, s, "update_office", o.ID, o,
		func(ctx context.Context) (*contact.Office, error) {
			return s.remote.Contact.UpdateOffice(ctx, o)
		},
		func(ctx context.Context) (*contact.Office, error) {
			return s.local.Contact.UpdateOffice(ctx, o)
		},
	)
}

func (s *Service) DeleteOffice(ctx context.Context, id string) (datasource.Source, error) {
	_, src, err := write(ctx, s, "delete_office", id, nil,
		func(ctx context.Context) (struct{}, error) {
			return struct{}{}, s.remote.Contact.DeleteOffice(ctx, id)
		},
		func(ctx context.Context) (struct{}, error) {
			return struct{}{}, s.local.Contact.DeleteOffice(ctx, id)
		},
	)
	return src, err
}

// SaveSections replaces the catalog taxonomy.
func (s *Service) SaveSections(ctx context.Context, sections category.Sections) (*category.Sections, datasource.Source, error) {
	return write(ctx, s, "save_sections", "", sections,
		func(ctx context.Context) (*category.Sections, error) {
			return s.remote.Sections.Save(ctx, sections)
		},
		func(ctx context.Context) (*category.Sections, error) {
			return s.local.Sections.Save(ctx, sections)
		},
	)
}
