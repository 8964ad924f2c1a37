package handler

import (
	"encoding/json"
	"net/http"

	"github.com/go-faster/errors"
	"github.com/go-faster/jx"
	"github.com/go-faster/sdk/zctx"
	"github.com/go-playground/validator/v10"
	"go.uber.org/zap"

	"github.com/meetjaka/voltherm-sub000/internal/admin"
	"github.com/meetjaka/voltherm-sub000/internal/datasource"
	"github.com/meetjaka/voltherm-sub000/internal/domain/certificate"
	"github.com/meetjaka/voltherm-sub000/internal/domain/contact"
	"github.com/meetjaka/voltherm-sub000/internal/domain/inquiry"
	"github.com/meetjaka/voltherm-sub000/internal/domain/product"
	"github.com/meetjaka/voltherm-sub000/internal/hybrid"
	"github.com/meetjaka/voltherm-sub000/internal/remote"
	"github.com/meetjaka/voltherm-sub000/pkg/httpmiddleware"
)

// writeData writes the success envelope. src is omitted when empty.
func writeData(w http.ResponseWriter, r *http.Request, status int, data any, src datasource.Source) {
	raw, err := json.Marshal(data)
	if err != nil {
		writeErr(w, r, errors.Wrap(err, "encode response"))
		return
	}

	var e jx.Encoder
	e.Obj(func(e *jx.Encoder) {
		e.Field("success", func(e *jx.Encoder) { e.Bool(true) })
		e.Field("data", func(e *jx.Encoder) { e.Raw(raw) })
		if src != "" {
			e.Field("source", func(e *jx.Encoder) { e.Str(string(src)) })
		}
	})
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_, _ = w.Write(e.Bytes())
}

// badRequest marks client input errors found by the handler itself.
type badRequest struct {
	msg string
	err error
}

func (e *badRequest) Error() string {
	if e.err == nil {
		return e.msg
	}
	return e.msg + ": " + e.err.Error()
}

func (e *badRequest) Unwrap() error { return e.err }

func invalid(msg string, err error) error {
	return &badRequest{msg: msg, err: err}
}

// writeErr maps err onto the failure envelope.
func writeErr(w http.ResponseWriter, r *http.Request, err error) {
	status, code := classify(err)
	lg := zctx.From(r.Context())
	if status >= http.StatusInternalServerError {
		lg.Error("Request failed", zap.String("path", r.URL.Path), zap.Error(err))
	} else {
		lg.Debug("Request rejected", zap.String("path", r.URL.Path), zap.Int("status", status), zap.Error(err))
	}
	httpmiddleware.WriteError(w, status, code, err.Error())
}

func classify(err error) (int, string) {
	var (
		br     *badRequest
		ve     *hybrid.ValidationError
		vErr   validator.ValidationErrors
		se     *remote.StatusError
		ae     *remote.APIError
		tooBig *http.MaxBytesError
	)
	switch {
	case errors.Is(err, admin.ErrNotAuthenticated):
		return http.StatusUnauthorized, "NOT_AUTHENTICATED"
	case errors.As(err, &tooBig):
		return http.StatusRequestEntityTooLarge, "PAYLOAD_TOO_LARGE"
	case errors.As(err, &br), errors.As(err, &ve), errors.As(err, &vErr),
		errors.Is(err, product.ErrTooManySpecs),
		errors.Is(err, product.ErrMissingBackendID),
		errors.Is(err, certificate.ErrImageRequired),
		errors.Is(err, inquiry.ErrInvalidStatus):
		return http.StatusBadRequest, "INVALID_REQUEST"
	case errors.Is(err, product.ErrNotFound),
		errors.Is(err, certificate.ErrNotFound),
		errors.Is(err, inquiry.ErrNotFound),
		errors.Is(err, contact.ErrOfficeNotFound):
		return http.StatusNotFound, "NOT_FOUND"
	case errors.As(err, &se):
		return backendStatus(se.Status), "BACKEND_REJECTED"
	case errors.As(err, &ae):
		return backendStatus(ae.Status), "BACKEND_REJECTED"
	default:
		return http.StatusInternalServerError, "INTERNAL"
	}
}

// backendStatus passes client errors of the backend through and reports
// everything else as a bad gateway.
func backendStatus(status int) int {
	if status >= 400 && status < 500 {
		return status
	}
	return http.StatusBadGateway
}

// decodeJSON reads a JSON body of at most h.maxBody bytes into v.
func (h *Handler) decodeJSON(w http.ResponseWriter, r *http.Request, v any) error {
	r.Body = http.MaxBytesReader(w, r.Body, h.maxBody)
	if err := json.NewDecoder(r.Body).Decode(v); err != nil {
		return invalid("malformed JSON body", err)
	}
	return nil
}
