package mapper

import (
	"strings"

	"github.com/meetjaka/voltherm-sub000/internal/domain/product"
	"github.com/meetjaka/voltherm-sub000/internal/remote"
)

// ProductFromWire converts a backend product into its domain form under the
// given local id.
func ProductFromWire(w remote.Product, localID int64) product.Product {
	p := product.Product{
		ID:             localID,
		BackendID:      w.ProductID,
		Title:          w.ProductName,
		Description:    w.Description,
		Image:          w.Image,
		Specs:          append([]string{}, w.QuickSpecs.Values...),
		TechnicalSpecs: technicalSpecsFromWire(w.SpecificationFields, w.SpecificationValues),
		Capacity:       w.Capacity,
		Voltage:        w.Voltage,
		Category:       w.Category,
		SubCategoryID:  w.SubCategory,
		Featured:       w.Featured,
		Available:      true,
		PDFURL:         w.PDFURL,
	}
	if w.Price != nil {
		price := clamp(w.Price.Decimal)
		p.Price = &price
	}
	if w.IsAvailable != nil {
		p.Available = *w.IsAvailable
	}
	return p
}

// ProductsFromWire converts a backend catalog. Local ids follow the backend
// ids when every one of them is a distinct positive integer, otherwise they
// are assigned by position starting at 1.
func ProductsFromWire(ws []remote.Product) []product.Product {
	ids := make([]int64, len(ws))
	seen := make(map[int64]struct{}, len(ws))
	numeric := true
	for i, w := range ws {
		n, ok := numericID(w.ProductID)
		if _, dup := seen[n]; !ok || dup {
			numeric = false
			break
		}
		seen[n] = struct{}{}
		ids[i] = n
	}

	out := make([]product.Product, len(ws))
	for i, w := range ws {
		id := int64(i + 1)
		if numeric {
			id = ids[i]
		}
		out[i] = ProductFromWire(w, id)
	}
	return out
}

func technicalSpecsFromWire(fields, values []string) []product.TechnicalSpec {
	n := max(len(fields), len(values))
	out := make([]product.TechnicalSpec, 0, max(n, product.MinTechnicalSpecRows))
	for i := range n {
		var s product.TechnicalSpec
		if i < len(fields) {
			s.Key = fields[i]
		}
		if i < len(values) {
			s.Value = values[i]
		}
		out = append(out, s)
	}
	for len(out) < product.MinTechnicalSpecRows {
		out = append(out, product.TechnicalSpec{})
	}
	return out
}

// NewProductPayload builds the wire form of a product that does not exist on
// the backend yet. The identity is never sent.
func NewProductPayload(p product.Product) (remote.Product, error) {
	w, err := productToWire(p)
	if err != nil {
		return remote.Product{}, err
	}
	w.ProductID = ""
	return gate(w)
}

// UpdateProductPayload builds the wire form of an existing backend product.
func UpdateProductPayload(p product.Product) (remote.Product, error) {
	id := strings.TrimSpace(p.BackendID)
	if id == "" {
		return remote.Product{}, product.ErrMissingBackendID
	}
	w, err := productToWire(p)
	if err != nil {
		return remote.Product{}, err
	}
	w.ProductID = id
	return gate(w)
}

func productToWire(p product.Product) (remote.Product, error) {
	fields, values, err := technicalSpecsToWire(p.TechnicalSpecs)
	if err != nil {
		return remote.Product{}, err
	}

	available := p.Available
	w := remote.Product{
		ProductName:         strings.TrimSpace(p.Title),
		Description:         strings.TrimSpace(p.Description),
		Image:               strings.TrimSpace(p.Image),
		QuickSpecs:          remote.StringList{Values: trimAll(p.Specs)},
		SpecificationFields: fields,
		SpecificationValues: values,
		Capacity:            strings.TrimSpace(p.Capacity),
		Voltage:             strings.TrimSpace(p.Voltage),
		Category:            strings.TrimSpace(p.Category),
		SubCategory:         strings.TrimSpace(p.SubCategoryID),
		Featured:            p.Featured,
		IsAvailable:         &available,
		PDFURL:              strings.TrimSpace(p.PDFURL),
	}
	if p.Price != nil {
		w.Price = remote.NewNumber(clamp(*p.Price))
	}
	return w, nil
}

func technicalSpecsToWire(specs []product.TechnicalSpec) (fields, values []string, err error) {
	fields = []string{}
	values = []string{}
	for _, s := range specs {
		s.Key = strings.TrimSpace(s.Key)
		s.Value = strings.TrimSpace(s.Value)
		if s.Blank() {
			continue
		}
		fields = append(fields, s.Key)
		values = append(values, s.Value)
	}
	if len(fields) > product.MaxTechnicalSpecs {
		return nil, nil, product.ErrTooManySpecs
	}
	return fields, values, nil
}
