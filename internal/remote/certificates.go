package remote

import (
	"context"
	"net/http"
	"net/url"

	"github.com/meetjaka/voltherm-sub000/internal/domain/certificate"
	"github.com/meetjaka/voltherm-sub000/internal/domain/product"
)

// ListCertificates returns all certificates.
func (c *Client) ListCertificates(ctx context.Context) ([]Certificate, error) {
	var out []Certificate
	if err := c.doJSON(ctx, http.MethodGet, "/api/certificates", nil, &out); err != nil {
		return nil, err
	}
	return out, nil
}

// CreateCertificate uploads a new certificate. The image is mandatory.
func (c *Client) CreateCertificate(ctx context.Context, cert Certificate, image *product.File) (*Certificate, error) {
	if image == nil {
		return nil, certificate.ErrImageRequired
	}
	form, err := newMultipartForm(cert, filePart{field: fieldImage, file: image})
	if err != nil {
		return nil, err
	}

	var out Certificate
	if err := c.doMultipart(ctx, http.MethodPost, "/api/certificates", form, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// UpdateCertificate updates metadata and optionally replaces the image.
func (c *Client) UpdateCertificate(ctx context.Context, cert Certificate, image *product.File) (*Certificate, error) {
	path := "/api/certificates/" + url.PathEscape(cert.CertificateID)

	var out Certificate
	if image == nil {
		if err := c.doJSON(ctx, http.MethodPut, path, cert, &out); err != nil {
			return nil, err
		}
		return &out, nil
	}

	form, err := newMultipartForm(cert, filePart{field: fieldImage, file: image})
	if err != nil {
		return nil, err
	}
	if err := c.doMultipart(ctx, http.MethodPut, path, form, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// DeleteCertificate removes a certificate.
func (c *Client) DeleteCertificate(ctx context.Context, id string) error {
	return c.doJSON(ctx, http.MethodDelete, "/api/certificates/"+url.PathEscape(id), nil, nil)
}
