package handler

import (
	"net/http"

	"github.com/go-faster/sdk/zctx"
	"go.uber.org/zap"

	"github.com/meetjaka/voltherm-sub000/internal/domain/auth"
	"github.com/meetjaka/voltherm-sub000/pkg/httpmiddleware"
)

// AdminKeyHeader carries the back office key.
const AdminKeyHeader = "X-Admin-Key"

// RequireAdminKey rejects requests whose admin key does not verify. A nil
// verifier rejects everything, so the admin API stays closed until a key
// hash is configured.
func RequireAdminKey(keys *auth.KeyVerifier) httpmiddleware.Middleware {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if keys == nil || !keys.Verify(r.Header.Get(AdminKeyHeader)) {
				zctx.From(r.Context()).Warn("Admin key rejected", zap.String("path", r.URL.Path))
				httpmiddleware.WriteError(w, http.StatusUnauthorized, "UNAUTHORIZED", "invalid admin key")
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}
