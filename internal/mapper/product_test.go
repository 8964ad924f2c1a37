package mapper

import (
	"encoding/json"
	"math"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/meetjaka/voltherm-sub000/internal/domain/product"
	"github.com/meetjaka/voltherm-sub000/internal/remote"
)

func price(s string) *decimal.Decimal {
	d := decimal.RequireFromString(s)
	return &d
}

func TestProductFromWire_ClampsAndRenames(t *testing.T) {
	var w remote.Product
	require.NoError(t, json.Unmarshal(
		[]byte(`{"productId":"p1","productName":"X","price":-5,"isAvailable":false}`), &w))

	p := ProductFromWire(w, 7)

	assert.Equal(t, int64(7), p.ID)
	assert.Equal(t, "p1", p.BackendID)
	assert.Equal(t, "X", p.Title)
	require.NotNil(t, p.Price)
	assert.True(t, p.Price.IsZero())
	assert.False(t, p.Available)
}

func TestProductFromWire_Defaults(t *testing.T) {
	p := ProductFromWire(remote.Product{ProductName: "Y"}, 1)

	assert.True(t, p.Available)
	assert.Nil(t, p.Price)
	assert.NotNil(t, p.Specs)
	assert.Len(t, p.TechnicalSpecs, product.MinTechnicalSpecRows)
	for _, s := range p.TechnicalSpecs {
		assert.True(t, s.Blank())
	}
}

func TestTechnicalSpecsFromWire(t *testing.T) {
	tests := []struct {
		name   string
		fields []string
		values []string
		want   []product.TechnicalSpec
	}{
		{
			name:   "pads to minimum rows",
			fields: []string{"Chemistry"},
			values: []string{"LiFePO4"},
			want: []product.TechnicalSpec{
				{Key: "Chemistry", Value: "LiFePO4"}, {}, {}, {},
			},
		},
		{
			name:   "uneven arrays pair by index",
			fields: []string{"A", "B"},
			values: []string{"1"},
			want:   []product.TechnicalSpec{{Key: "A", Value: "1"}, {Key: "B"}, {}, {}},
		},
		{
			name:   "more than minimum kept as is",
			fields: []string{"a", "b", "c", "d", "e"},
			values: []string{"1", "2", "3", "4", "5"},
			want: []product.TechnicalSpec{
				{Key: "a", Value: "1"}, {Key: "b", Value: "2"}, {Key: "c", Value: "3"},
				{Key: "d", Value: "4"}, {Key: "e", Value: "5"},
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, technicalSpecsFromWire(tt.fields, tt.values))
		})
	}
}

func TestProductsFromWire_LocalIDs(t *testing.T) {
	t.Run("numeric backend ids", func(t *testing.T) {
		got := ProductsFromWire([]remote.Product{{ProductID: "10"}, {ProductID: "3"}})
		assert.Equal(t, int64(10), got[0].ID)
		assert.Equal(t, int64(3), got[1].ID)
	})

	t.Run("opaque backend ids use position", func(t *testing.T) {
		got := ProductsFromWire([]remote.Product{{ProductID: "2"}, {ProductID: "abc"}})
		assert.Equal(t, int64(1), got[0].ID)
		assert.Equal(t, int64(2), got[1].ID)
	})

	t.Run("duplicate numeric ids use position", func(t *testing.T) {
		got := ProductsFromWire([]remote.Product{{ProductID: "5"}, {ProductID: "5"}})
		assert.Equal(t, int64(1), got[0].ID)
		assert.Equal(t, int64(2), got[1].ID)
	})
}

func TestNewProductPayload(t *testing.T) {
	p := product.Product{
		ID:        4,
		BackendID: "b4",
		Title:     "  Home Pack ",
		Specs:     []string{" 5kWh", "", "Wall mount "},
		TechnicalSpecs: []product.TechnicalSpec{
			{Key: "Cycles", Value: "6000"}, {}, {Key: " IP ", Value: " 65 "}, {},
		},
		Price:     price("-12"),
		Available: true,
	}

	w, err := NewProductPayload(p)
	require.NoError(t, err)

	assert.Empty(t, w.ProductID)
	assert.Equal(t, "Home Pack", w.ProductName)
	assert.Equal(t, []string{"5kWh", "Wall mount"}, w.QuickSpecs.Values)
	assert.Equal(t, []string{"Cycles", "IP"}, w.SpecificationFields)
	assert.Equal(t, []string{"6000", "65"}, w.SpecificationValues)
	require.NotNil(t, w.Price)
	assert.True(t, w.Price.IsZero())
	require.NotNil(t, w.IsAvailable)
	assert.True(t, *w.IsAvailable)

	b, err := json.Marshal(w)
	require.NoError(t, err)
	assert.NotContains(t, string(b), "productId")
	assert.Contains(t, string(b), `"isAvailable":true`)
	assert.Contains(t, string(b), `"quickSpecs":["5kWh","Wall mount"]`)
}

func TestNewProductPayload_TooManySpecs(t *testing.T) {
	specs := make([]product.TechnicalSpec, product.MaxTechnicalSpecs+1)
	for i := range specs {
		specs[i] = product.TechnicalSpec{Key: "k", Value: "v"}
	}

	_, err := NewProductPayload(product.Product{Title: "T", TechnicalSpecs: specs})
	require.ErrorIs(t, err, product.ErrTooManySpecs)
}

func TestUpdateProductPayload(t *testing.T) {
	_, err := UpdateProductPayload(product.Product{Title: "T"})
	require.ErrorIs(t, err, product.ErrMissingBackendID)

	w, err := UpdateProductPayload(product.Product{Title: "T", BackendID: " b9 "})
	require.NoError(t, err)
	assert.Equal(t, "b9", w.ProductID)
}

func TestProductRoundTrip(t *testing.T) {
	tests := []struct {
		name string
		in   product.Product
	}{
		{
			name: "full product",
			in: product.Product{
				Title:    "Cell 100Ah",
				Price:    price("1299.99"),
				Featured: true,
				TechnicalSpecs: []product.TechnicalSpec{
					{Key: "Voltage", Value: "12.8V"},
					{Key: "Capacity", Value: "100Ah"},
					{Key: "Weight", Value: "11kg"},
				},
				Available: true,
			},
		},
		{
			name: "negative price and unavailable",
			in: product.Product{
				Title:     "Clearance",
				Price:     price("-1"),
				Available: false,
			},
		},
		{
			name: "six specs",
			in: product.Product{
				Title: "Rack",
				TechnicalSpecs: []product.TechnicalSpec{
					{Key: "a", Value: "1"}, {Key: "b", Value: "2"}, {Key: "c", Value: "3"},
					{Key: "d", Value: "4"}, {Key: "e", Value: "5"}, {Key: "f", Value: "6"},
				},
				Available: true,
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w, err := NewProductPayload(tt.in)
			require.NoError(t, err)

			// Cross the wire for real so the codecs take part.
			b, err := json.Marshal(w)
			require.NoError(t, err)
			var back remote.Product
			require.NoError(t, json.Unmarshal(b, &back))

			got := ProductFromWire(back, 1)

			assert.Equal(t, tt.in.Title, got.Title)
			assert.Equal(t, tt.in.Available, got.Available)
			assert.Equal(t, tt.in.Featured, got.Featured)
			if tt.in.Price == nil {
				assert.Nil(t, got.Price)
			} else {
				require.NotNil(t, got.Price)
				want := *tt.in.Price
				if want.IsNegative() {
					want = decimal.Zero
				}
				assert.True(t, want.Equal(*got.Price), "price %s != %s", want, got.Price)
			}

			require.GreaterOrEqual(t, len(got.TechnicalSpecs), len(tt.in.TechnicalSpecs))
			for i, s := range tt.in.TechnicalSpecs {
				assert.Equal(t, s, got.TechnicalSpecs[i])
			}
			for _, s := range got.TechnicalSpecs[len(tt.in.TechnicalSpecs):] {
				assert.True(t, s.Blank())
			}
		})
	}
}

func TestSerializable(t *testing.T) {
	b, err := Serializable(map[string]any{"a": 1})
	require.NoError(t, err)
	assert.JSONEq(t, `{"a":1}`, string(b))

	_, err = Serializable(map[string]any{"f": func() {}})
	require.ErrorIs(t, err, ErrNotSerializable)

	_, err = Serializable(math.Inf(1))
	require.ErrorIs(t, err, ErrNotSerializable)
}
