package remote

import (
	"context"
	"net/http"
	"net/url"

	"github.com/go-faster/errors"

	"github.com/meetjaka/voltherm-sub000/internal/domain/product"
)

// ListProducts returns the full backend catalog.
func (c *Client) ListProducts(ctx context.Context) ([]Product, error) {
	var out []Product
	if err := c.doJSON(ctx, http.MethodGet, "/api/products", nil, &out); err != nil {
		return nil, err
	}
	return out, nil
}

// FeaturedProducts returns the products the backend reports as featured.
func (c *Client) FeaturedProducts(ctx context.Context) ([]Product, error) {
	var out []Product
	if err := c.doJSON(ctx, http.MethodGet, "/api/products/featured", nil, &out); err != nil {
		return nil, err
	}
	return out, nil
}

// CreateProduct creates p. The payload must not carry an identity. The
// image part is mandatory for the backend, so a placeholder is sent when
// files has no image.
func (c *Client) CreateProduct(ctx context.Context, p Product, files product.Files) (*Product, error) {
	if p.ProductID != "" {
		return nil, errors.New("create payload must not carry productId")
	}

	image := files.Image
	if image == nil {
		image = placeholderImage()
	}
	form, err := newMultipartForm(p,
		filePart{field: fieldImage, file: image},
		filePart{field: fieldPDF, file: files.PDF},
	)
	if err != nil {
		return nil, err
	}

	var out Product
	if err := c.doMultipart(ctx, http.MethodPost, "/api/products", form, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// UpdateProduct updates the product identified by p.ProductID. Files are
// sent as a multipart form; without files the update is plain JSON.
func (c *Client) UpdateProduct(ctx context.Context, p Product, files product.Files) (*Product, error) {
	if p.ProductID == "" {
		return nil, product.ErrMissingBackendID
	}
	path := "/api/products/" + url.PathEscape(p.ProductID)

	var out Product
	if files.Empty() {
		if err := c.doJSON(ctx, http.MethodPut, path, p, &out); err != nil {
			return nil, err
		}
		return &out, nil
	}

	form, err := newMultipartForm(p,
		filePart{field: fieldImage, file: files.Image},
		filePart{field: fieldPDF, file: files.PDF},
	)
	if err != nil {
		return nil, err
	}
	if err := c.doMultipart(ctx, http.MethodPut, path, form, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// DeleteProduct removes a product.
func (c *Client) DeleteProduct(ctx context.Context, id string) error {
	return c.doJSON(ctx, http.MethodDelete, "/api/products/"+url.PathEscape(id), nil, nil)
}

// DeleteProductPDF removes the data sheet attached to a product.
func (c *Client) DeleteProductPDF(ctx context.Context, id string) error {
	return c.doJSON(ctx, http.MethodDelete, "/api/products/"+url.PathEscape(id)+"/pdf", nil, nil)
}
