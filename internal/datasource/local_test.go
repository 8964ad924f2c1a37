package datasource

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/meetjaka/voltherm-sub000/internal/domain/certificate"
	"github.com/meetjaka/voltherm-sub000/internal/domain/contact"
	"github.com/meetjaka/voltherm-sub000/internal/domain/inquiry"
	"github.com/meetjaka/voltherm-sub000/internal/domain/product"
	"github.com/meetjaka/voltherm-sub000/internal/localstore"
)

func newLocal(t *testing.T) (Repositories, *localstore.Store) {
	t.Helper()
	s := localstore.New(localstore.NewMemoryBackend(), nil)
	now := func() time.Time { return time.Date(2026, 5, 4, 12, 0, 0, 0, time.UTC) }
	return NewLocal(s, now), s
}

func TestLocalProducts(t *testing.T) {
	ctx := context.Background()
	repos, store := newLocal(t)

	created, err := repos.Products.Create(ctx, product.Product{Title: "New"}, product.Files{
		Image: &product.File{Name: "new.jpg"},
	})
	require.NoError(t, err)
	assert.Equal(t, int64(7), created.ID)
	assert.Equal(t, "new.jpg", created.Image)
	assert.Len(t, store.Products(ctx), 7)

	created.Title = "Renamed"
	created.PDFURL = "/files/new.pdf"
	_, err = repos.Products.Update(ctx, *created, product.Files{})
	require.NoError(t, err)

	require.NoError(t, repos.Products.DeletePDF(ctx, product.Product{ID: 7}))
	list, err := repos.Products.List(ctx)
	require.NoError(t, err)
	assert.Equal(t, "Renamed", list[6].Title)
	assert.Empty(t, list[6].PDFURL)

	require.NoError(t, repos.Products.Delete(ctx, product.Product{ID: 7}))
	assert.Len(t, store.Products(ctx), 6)

	err = repos.Products.Delete(ctx, product.Product{ID: 99})
	require.ErrorIs(t, err, product.ErrNotFound)
	_, err = repos.Products.Update(ctx, product.Product{ID: 99}, product.Files{})
	require.ErrorIs(t, err, product.ErrNotFound)
}

func TestLocalProducts_MatchByBackendID(t *testing.T) {
	ctx := context.Background()
	repos, store := newLocal(t)
	require.NoError(t, store.SaveProducts(ctx, []product.Product{{ID: 3, BackendID: "b3", Title: "A"}}))

	got, err := repos.Products.Update(ctx, product.Product{BackendID: "b3", Title: "B"}, product.Files{})
	require.NoError(t, err)
	assert.Equal(t, int64(3), got.ID)
}

func TestLocalProducts_FeaturedUsesSharedPredicate(t *testing.T) {
	repos, store := newLocal(t)

	featured, err := repos.Products.ListFeatured(context.Background())
	require.NoError(t, err)
	assert.Equal(t, product.FilterFeatured(store.Products(context.Background())), featured)
	assert.Len(t, featured, 3)
}

func TestLocalCertificates(t *testing.T) {
	ctx := context.Background()
	repos, _ := newLocal(t)

	_, err := repos.Certificates.Create(ctx, certificate.Certificate{Title: "ISO"}, nil)
	require.ErrorIs(t, err, certificate.ErrImageRequired)

	c, err := repos.Certificates.Create(ctx, certificate.Certificate{Title: "ISO"}, &product.File{Name: "iso.png"})
	require.NoError(t, err)
	assert.NotEmpty(t, c.ID)
	assert.Equal(t, "iso.png", c.Image)

	require.NoError(t, repos.Certificates.Delete(ctx, c.ID))
	require.ErrorIs(t, repos.Certificates.Delete(ctx, c.ID), certificate.ErrNotFound)
}

func TestLocalInquiries(t *testing.T) {
	ctx := context.Background()
	repos, _ := newLocal(t)

	a, err := repos.Inquiries.Create(ctx, inquiry.Inquiry{Name: "A"})
	require.NoError(t, err)
	b, err := repos.Inquiries.Create(ctx, inquiry.Inquiry{Name: "B"})
	require.NoError(t, err)

	assert.NotEmpty(t, a.ID)
	assert.NotEqual(t, a.ID, b.ID)
	assert.Equal(t, inquiry.StatusNew, a.Status)
	assert.Equal(t, time.Date(2026, 5, 4, 12, 0, 0, 0, time.UTC), a.CreatedAt)

	tests := []struct {
		name    string
		status  inquiry.Status
		wantErr error
	}{
		{name: "forward", status: inquiry.StatusCompleted},
		{name: "backward", status: inquiry.StatusInProgress},
		{name: "reject", status: inquiry.StatusRejected},
		{name: "reopen", status: inquiry.StatusNew},
		{name: "unknown", status: "archived", wantErr: inquiry.ErrInvalidStatus},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := repos.Inquiries.UpdateStatus(ctx, a.ID, tt.status, "called back")
			if tt.wantErr != nil {
				require.ErrorIs(t, err, tt.wantErr)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.status, got.Status)
			assert.Equal(t, "called back", got.Notes)
		})
	}

	require.NoError(t, repos.Inquiries.Delete(ctx, a.ID))
	_, err = repos.Inquiries.UpdateStatus(ctx, a.ID, inquiry.StatusNew, "")
	require.ErrorIs(t, err, inquiry.ErrNotFound)
}

func TestLocalContactOffices(t *testing.T) {
	ctx := context.Background()
	repos, store := newLocal(t)

	o, err := repos.Contact.CreateOffice(ctx, contact.Office{Name: "Chennai"})
	require.NoError(t, err)
	assert.NotEmpty(t, o.ID)
	assert.Len(t, store.ContactInfo(ctx).Offices, 2)

	o.Phone = "+91 44 1234"
	_, err = repos.Contact.UpdateOffice(ctx, *o)
	require.NoError(t, err)
	info := store.ContactInfo(ctx)
	assert.Equal(t, "+91 44 1234", info.Offices[info.IndexOffice(o.ID)].Phone)

	require.NoError(t, repos.Contact.DeleteOffice(ctx, o.ID))
	require.ErrorIs(t, repos.Contact.DeleteOffice(ctx, o.ID), contact.ErrOfficeNotFound)
}
