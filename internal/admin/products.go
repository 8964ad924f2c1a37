package admin

import (
	"context"
	"strconv"

	"github.com/go-faster/errors"
	"go.uber.org/zap"

	"github.com/meetjaka/voltherm-sub000/internal/datasource"
	"github.com/meetjaka/voltherm-sub000/internal/domain/product"
	"github.com/meetjaka/voltherm-sub000/internal/remote"
)

// CreateResult is the outcome of a two-step product creation.
type CreateResult struct {
	Product *product.Product
	Source  datasource.Source
	// UploadErr is set when the record was created but attaching files
	// failed. The record is kept.
	UploadErr error
}

func (s *Service) validateProduct(p product.Product) error {
	if err := s.validate.Struct(p); err != nil {
		return errors.Wrap(err, "invalid product")
	}
	return p.ValidateSpecs()
}

// resolve fills the backend id of a product addressed by local id from the
// local mirror.
func (s *Service) resolve(ctx context.Context, p product.Product) product.Product {
	if p.BackendID != "" || p.ID == 0 {
		return p
	}
	for _, q := range s.store.Products(ctx) {
		if q.ID == p.ID {
			p.BackendID = q.BackendID
			break
		}
	}
	return p
}

func productKey(p product.Product) string {
	if p.BackendID != "" {
		return p.BackendID
	}
	return strconv.FormatInt(p.ID, 10)
}

// CreateProduct creates p with its files in one request.
func (s *Service) CreateProduct(ctx context.Context, p product.Product, files product.Files) (*product.Product, datasource.Source, error) {
	if err := s.validateProduct(p); err != nil {
		return nil, "", err
	}
	return write(ctx, s, "create_product", p.Title, []any{p, files},
		func(ctx context.Context) (*product.Product, error) {
			return s.remote.Products.Create(ctx, p, files)
		},
		func(ctx context.Context) (*product.Product, error) {
			return s.local.Products.Create(ctx, p, files)
		},
	)
}

// CreateProductTwoStep creates the record first and attaches files in a
// follow-up update, so file URLs embed the backend id. A failed upload does
// not roll back the record; it is reported in CreateResult.UploadErr.
func (s *Service) CreateProductTwoStep(ctx context.Context, p product.Product, files product.Files) (*CreateResult, error) {
	if err := s.validateProduct(p); err != nil {
		return nil, err
	}

	created, src, err := write(ctx, s, "create_product_two_step", p.Title, []any{p, files},
		func(ctx context.Context) (*product.Product, error) {
			return s.remote.Products.Create(ctx, p, product.Files{})
		},
		func(ctx context.Context) (*product.Product, error) {
			return s.local.Products.Create(ctx, p, files)
		},
	)
	if err != nil {
		return nil, err
	}

	res := &CreateResult{Product: created, Source: src}
	if src != datasource.SourceRemote || files.Empty() {
		return res, nil
	}

	updated, err := s.attachFiles(ctx, *created, files)
	if err != nil {
		s.lg.Warn("File upload after create failed",
			zap.String("backend_id", created.BackendID),
			zap.Error(err),
		)
		res.UploadErr = err
		return res, nil
	}
	res.Product = updated
	return res, nil
}

// attachFiles uploads files onto a record just created on the backend. The
// session is checked first, and a 401 on the upload gets one re-login and
// retry.
func (s *Service) attachFiles(ctx context.Context, p product.Product, files product.Files) (*product.Product, error) {
	if err := s.ensureAuth(ctx); err != nil {
		return nil, err
	}
	updated, err := s.remote.Products.Update(ctx, p, files)
	if !remote.IsUnauthorized(err) {
		return updated, err
	}
	if err := s.relogin(ctx); err != nil {
		return nil, err
	}
	return s.remote.Products.Update(ctx, p, files)
}

// UpdateProduct updates p and optionally replaces its files. A product known
// only by local id is sent to the backend under its mirrored backend id.
func (s *Service) UpdateProduct(ctx context.Context, p product.Product, files product.Files) (*product.Product, datasource.Source, error) {
	if err := s.validateProduct(p); err != nil {
		return nil, "", err
	}
	p = s.resolve(ctx, p)
	return write(ctx, s, "update_product", productKey(p), []any{p, files},
		func(ctx context.Context) (*product.Product, error) {
			return s.remote.Products.Update(ctx, p, files)
		},
		func(ctx context.Context) (*product.Product, error) {
			return s.local.Products.Update(ctx, p, files)
		},
	)
}

// DeleteProduct removes p.
func (s *Service) DeleteProduct(ctx context.Context, p product.Product) (datasource.Source, error) {
	p = s.resolve(ctx, p)
	_, src, err := write(ctx, s, "delete_product", productKey(p), nil,
		func(ctx context.Context) (struct{}, error) {
			return struct{}{}, s.remote.Products.Delete(ctx, p)
		},
		func(ctx context.Context) (struct{}, error) {
			return struct{}{}, s.local.Products.Delete(ctx, p)
		},
	)
	return src, err
}

// DeleteProductPDF removes the data sheet of p.
func (s *Service) DeleteProductPDF(ctx context.Context, p product.Product) (datasource.Source, error) {
	p = s.resolve(ctx, p)
	_, src, err := write(ctx, s, "delete_product_pdf", productKey(p), nil,
		func(ctx context.Context) (struct{}, error) {
			return struct{}{}, s.remote.Products.DeletePDF(ctx, p)
		},
		func(ctx context.Context) (struct{}, error) {
			return struct{}{}, s.local.Products.DeletePDF(ctx, p)
		},
	)
	return src, err
}

// SaveProducts replaces the whole catalog in the local store only. Batch
// overwrites are never sent to the backend, whose per-item identities make
// them unsafe; single creates and updates go through CreateProduct and
// UpdateProduct.
func (s *Service) SaveProducts(ctx context.Context, products []product.Product) error {
	if err := s.requireSession(); err != nil {
		return err
	}
	for _, p := range products {
		if err := p.ValidateSpecs(); err != nil {
			return errors.Wrapf(err, "product %d", p.ID)
		}
	}

	ctx, span := s.tel.Start(ctx, "admin.save_products")
	defer span.End()

	if err := s.store.SaveProducts(ctx, products); err != nil {
		return err
	}
	s.tel.Record(ctx, "save_products", datasource.SourceLocal)
	s.lg.Info("Saved product batch locally", zap.Int("count", len(products)))
	return nil
}
