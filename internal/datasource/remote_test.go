package datasource

import (
	"context"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/meetjaka/voltherm-sub000/internal/domain/product"
	"github.com/meetjaka/voltherm-sub000/internal/remote"
)

func newRemote(t *testing.T, h http.Handler) Repositories {
	t.Helper()
	srv := httptest.NewServer(h)
	t.Cleanup(srv.Close)

	c, err := remote.New(remote.Config{
		BaseURL:       srv.URL,
		JSONTimeout:   time.Second,
		UploadTimeout: time.Second,
		ProbeAttempts: 1,
	})
	require.NoError(t, err)
	return NewRemote(c)
}

func TestRemoteProducts_List(t *testing.T) {
	repos := newRemote(t, http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		_, _ = io.WriteString(w, `{"success":true,"data":[
			{"productId":"p1","productName":"X","price":-5,"isAvailable":false,"featured":true},
			{"productId":"p2","productName":"Y"}
		]}`)
	}))

	got, err := repos.Products.List(context.Background())
	require.NoError(t, err)
	require.Len(t, got, 2)
	assert.Equal(t, "X", got[0].Title)
	assert.True(t, got[0].Price.IsZero())
	assert.False(t, got[0].Available)
	assert.Equal(t, int64(2), got[1].ID)
}

func TestRemoteProducts_FeaturedFiltersAgain(t *testing.T) {
	repos := newRemote(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/api/products/featured", r.URL.Path)
		_, _ = io.WriteString(w, `{"success":true,"data":[
			{"productId":"1","productName":"A","featured":true},
			{"productId":"2","productName":"B","featured":false}
		]}`)
	}))

	got, err := repos.Products.ListFeatured(context.Background())
	require.NoError(t, err)
	require.Len(t, got, 1)
	assert.Equal(t, "1", got[0].BackendID)
}

func TestRemoteProducts_IdentityRequired(t *testing.T) {
	repos := newRemote(t, http.NotFoundHandler())

	require.ErrorIs(t, repos.Products.Delete(context.Background(), product.Product{ID: 1}), product.ErrMissingBackendID)
	_, err := repos.Products.Update(context.Background(), product.Product{ID: 1}, product.Files{})
	require.ErrorIs(t, err, product.ErrMissingBackendID)
}
