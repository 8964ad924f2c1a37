package product

import (
	"context"
	"encoding/json"

	"github.com/go-faster/errors"
	"github.com/shopspring/decimal"
)

const (
	// MaxTechnicalSpecs is the upper bound of key/value technical spec rows.
	MaxTechnicalSpecs = 6
	// MinTechnicalSpecRows is the number of rows edit forms always receive.
	MinTechnicalSpecRows = 4

	// MinFeatured and MaxFeatured bound the featured set. The bounds are
	// checked by the admin surface, the data layer stores whatever it is given.
	MinFeatured = 3
	MaxFeatured = 6
)

var (
	// ErrNotFound is returned when a requested product does not exist.
	ErrNotFound = errors.New("product not found")
	// ErrMissingBackendID is returned when an update targets a product that
	// has never been persisted remotely.
	ErrMissingBackendID = errors.New("product has no backend id")
	// ErrTooManySpecs is returned when more than MaxTechnicalSpecs rows are set.
	ErrTooManySpecs = errors.New("too many technical specs")
	// ErrFeaturedCount is returned by ValidateFeaturedCount.
	ErrFeaturedCount = errors.Errorf("between %d and %d products must be featured", MinFeatured, MaxFeatured)
)

// Product is a catalog item as rendered by the storefront.
type Product struct {
	ID             int64            `json:"id"`
	BackendID      string           `json:"backendId,omitempty"`
	Title          string           `json:"title" validate:"required"`
	Description    string           `json:"description"`
	Image          string           `json:"image"`
	Specs          []string         `json:"specs"`
	TechnicalSpecs []TechnicalSpec  `json:"technicalSpecs,omitempty"`
	Price          *decimal.Decimal `json:"price,omitempty"`
	Capacity       string           `json:"capacity,omitempty"`
	Voltage        string           `json:"voltage,omitempty"`
	Category       string           `json:"category,omitempty"`
	SubCategoryID  string           `json:"subCategoryId,omitempty"`
	Featured       bool             `json:"featured"`
	Available      bool             `json:"available"`
	PDFURL         string           `json:"pdfUrl,omitempty"`
}

// UnmarshalJSON decodes p. A product without an "available" field is
// available.
func (p *Product) UnmarshalJSON(data []byte) error {
	type plain Product
	v := plain{Available: true}
	if err := json.Unmarshal(data, &v); err != nil {
		return err
	}
	*p = Product(v)
	return nil
}

// TechnicalSpec is a single key/value row of a product data sheet.
type TechnicalSpec struct {
	Key   string `json:"key"`
	Value string `json:"value"`
}

// Blank reports whether both sides of the row are empty.
func (s TechnicalSpec) Blank() bool {
	return s.Key == "" && s.Value == ""
}

// ValidateSpecs checks the technical spec bound. Blank rows are padding and
// do not count.
func (p Product) ValidateSpecs() error {
	n := 0
	for _, s := range p.TechnicalSpecs {
		if !s.Blank() {
			n++
		}
	}
	if n > MaxTechnicalSpecs {
		return ErrTooManySpecs
	}
	return nil
}

// File is a binary attachment uploaded alongside a product or certificate.
type File struct {
	Name        string
	ContentType string
	Data        []byte
}

// Files groups the optional attachments of a product write.
type Files struct {
	Image *File
	PDF   *File
}

// Empty reports whether no attachment is set.
func (f Files) Empty() bool {
	return f.Image == nil && f.PDF == nil
}

// IsFeatured is the single predicate used to compute the featured view on
// every data path.
func IsFeatured(p Product) bool {
	return p.Featured
}

// FilterFeatured returns the featured subset of products, preserving order.
func FilterFeatured(products []Product) []Product {
	out := make([]Product, 0, len(products))
	for _, p := range products {
		if IsFeatured(p) {
			out = append(out, p)
		}
	}
	return out
}

// ValidateFeaturedCount checks the featured bounds for a whole catalog.
func ValidateFeaturedCount(products []Product) error {
	n := len(FilterFeatured(products))
	if n < MinFeatured || n > MaxFeatured {
		return ErrFeaturedCount
	}
	return nil
}

// NextID returns a local id one greater than the largest id in products.
func NextID(products []Product) int64 {
	var max int64
	for _, p := range products {
		if p.ID > max {
			max = p.ID
		}
	}
	return max + 1
}

// Repository is the capability set shared by the remote and local product
// stores.
type Repository interface {
	List(ctx context.Context) ([]Product, error)
	ListFeatured(ctx context.Context) ([]Product, error)
	Create(ctx context.Context, p Product, files Files) (*Product, error)
	Update(ctx context.Context, p Product, files Files) (*Product, error)
	Delete(ctx context.Context, p Product) error
	DeletePDF(ctx context.Context, p Product) error
}
