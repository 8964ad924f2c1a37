package certificate

import (
	"context"

	"github.com/go-faster/errors"

	"github.com/meetjaka/voltherm-sub000/internal/domain/product"
)

var (
	// ErrNotFound is returned when a requested certificate does not exist.
	ErrNotFound = errors.New("certificate not found")
	// ErrImageRequired is returned when a certificate is created without an
	// image file. Unlike products, no placeholder is substituted.
	ErrImageRequired = errors.New("certificate image is required")
)

// Certificate is a quality or compliance certificate shown on the site.
type Certificate struct {
	ID    string `json:"id"`
	Image string `json:"image"`
	Alt   string `json:"alt"`
	Title string `json:"title"`
}

// Repository is the capability set shared by the remote and local
// certificate stores.
type Repository interface {
	List(ctx context.Context) ([]Certificate, error)
	Create(ctx context.Context, c Certificate, image *product.File) (*Certificate, error)
	Update(ctx context.Context, c Certificate, image *product.File) (*Certificate, error)
	Delete(ctx context.Context, id string) error
}
