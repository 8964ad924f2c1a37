// Package remote is a thin client of the storefront backend REST API.
//
// Every response is normalized into the backend envelope; transport failures,
// timeouts and non-2xx responses surface as typed errors so callers can
// decide whether to fall back to the local store.
package remote

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/cookiejar"
	"net/url"
	"strings"
	"time"

	"github.com/cenkalti/backoff/v4"
	"github.com/go-faster/errors"
	"go.opentelemetry.io/contrib/instrumentation/net/http/otelhttp"
	"go.opentelemetry.io/otel/metric"
	"go.opentelemetry.io/otel/trace"
	"go.uber.org/zap"
)

// Config holds the client timeouts and probe policy.
type Config struct {
	BaseURL       string
	JSONTimeout   time.Duration
	UploadTimeout time.Duration
	ProbeAttempts int
	ProbeInterval time.Duration
}

// DefaultConfig returns the production defaults for baseURL.
func DefaultConfig(baseURL string) Config {
	return Config{
		BaseURL:       baseURL,
		JSONTimeout:   30 * time.Second,
		UploadTimeout: 60 * time.Second,
		ProbeAttempts: 3,
		ProbeInterval: time.Second,
	}
}

// Client issues requests against the backend.
type Client struct {
	cfg  Config
	base string
	http *http.Client
	lg   *zap.Logger
}

type options struct {
	httpClient     *http.Client
	logger         *zap.Logger
	tracerProvider trace.TracerProvider
	meterProvider  metric.MeterProvider
}

// Option configures a Client.
type Option func(*options)

// WithHTTPClient replaces the default cookie-carrying HTTP client.
func WithHTTPClient(c *http.Client) Option {
	return func(o *options) { o.httpClient = c }
}

// WithLogger sets the client logger.
func WithLogger(lg *zap.Logger) Option {
	return func(o *options) { o.logger = lg }
}

// WithTracerProvider sets the tracer provider of the default transport.
func WithTracerProvider(tp trace.TracerProvider) Option {
	return func(o *options) { o.tracerProvider = tp }
}

// WithMeterProvider sets the meter provider of the default transport.
func WithMeterProvider(mp metric.MeterProvider) Option {
	return func(o *options) { o.meterProvider = mp }
}

// New creates a Client. The default HTTP client keeps a cookie jar so the
// admin session cookie set at login rides along on every later request.
func New(cfg Config, opts ...Option) (*Client, error) {
	u, err := url.Parse(cfg.BaseURL)
	if err != nil {
		return nil, errors.Wrap(err, "parse base url")
	}
	if u.Scheme == "" || u.Host == "" {
		return nil, errors.Errorf("base url %q must be absolute", cfg.BaseURL)
	}
	if cfg.JSONTimeout <= 0 {
		cfg.JSONTimeout = 30 * time.Second
	}
	if cfg.UploadTimeout <= 0 {
		cfg.UploadTimeout = 60 * time.Second
	}
	if cfg.ProbeAttempts <= 0 {
		cfg.ProbeAttempts = 1
	}

	o := options{logger: zap.NewNop()}
	for _, opt := range opts {
		opt(&o)
	}

	hc := o.httpClient
	if hc == nil {
		jar, err := cookiejar.New(nil)
		if err != nil {
			return nil, errors.Wrap(err, "create cookie jar")
		}
		var topts []otelhttp.Option
		if o.tracerProvider != nil {
			topts = append(topts, otelhttp.WithTracerProvider(o.tracerProvider))
		}
		if o.meterProvider != nil {
			topts = append(topts, otelhttp.WithMeterProvider(o.meterProvider))
		}
		hc = &http.Client{
			Jar:       jar,
			Transport: otelhttp.NewTransport(http.DefaultTransport, topts...),
		}
	}

	return &Client{
		cfg:  cfg,
		base: strings.TrimRight(u.String(), "/"),
		http: hc,
		lg:   o.logger,
	}, nil
}

// TestConnection reports whether the backend answers a lightweight read.
// It retries with a fixed backoff up to the configured number of attempts.
func (c *Client) TestConnection(ctx context.Context) bool {
	attempt := 0
	probe := func() error {
		attempt++
		err := c.doJSON(ctx, http.MethodGet, "/api/products?limit=1", nil, nil)
		if err != nil {
			c.lg.Debug("Connectivity probe failed", zap.Int("attempt", attempt), zap.Error(err))
		}
		return err
	}

	policy := backoff.WithContext(
		backoff.WithMaxRetries(backoff.NewConstantBackOff(c.cfg.ProbeInterval), uint64(c.cfg.ProbeAttempts-1)),
		ctx,
	)
	if err := backoff.Retry(probe, policy); err != nil {
		c.lg.Info("Remote unavailable", zap.Int("attempts", attempt), zap.Error(err))
		return false
	}
	return true
}

func (c *Client) url(path string) string {
	return c.base + path
}

// doJSON sends body as JSON and decodes the envelope data into out.
func (c *Client) doJSON(ctx context.Context, method, path string, body, out any) error {
	ctx, cancel := context.WithTimeout(ctx, c.cfg.JSONTimeout)
	defer cancel()

	var r io.Reader
	if body != nil {
		b, err := json.Marshal(body)
		if err != nil {
			return errors.Wrap(err, "encode request body")
		}
		r = bytes.NewReader(b)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.url(path), r)
	if err != nil {
		return errors.Wrap(err, "create request")
	}
	req.Header.Set("Accept", "application/json")
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	return c.send(req, out)
}

// doMultipart sends meta and files as a multipart form under the upload
// timeout.
func (c *Client) doMultipart(ctx context.Context, method, path string, form *multipartForm, out any) error {
	ctx, cancel := context.WithTimeout(ctx, c.cfg.UploadTimeout)
	defer cancel()

	req, err := http.NewRequestWithContext(ctx, method, c.url(path), form.body)
	if err != nil {
		return errors.Wrap(err, "create request")
	}
	req.Header.Set("Accept", "application/json")
	req.Header.Set("Content-Type", form.contentType)
	return c.send(req, out)
}

func (c *Client) send(req *http.Request, out any) error {
	op := req.Method + " " + req.URL.Path

	start := time.Now()
	resp, err := c.http.Do(req)
	if err != nil {
		return &TransportError{Op: op, Err: err}
	}
	defer func() { _ = resp.Body.Close() }()

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return &TransportError{Op: op, Err: err}
	}

	c.lg.Debug("Remote call",
		zap.String("op", op),
		zap.Int("status", resp.StatusCode),
		zap.Duration("took", time.Since(start)),
	)

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return &StatusError{Op: op, Status: resp.StatusCode, Body: string(data)}
	}
	if len(bytes.TrimSpace(data)) == 0 {
		return nil
	}

	env, err := decodeEnvelope(data)
	if err != nil {
		return errors.Wrap(err, op)
	}
	if err := env.unwrap(out); err != nil {
		return errors.Wrap(err, op)
	}
	return nil
}
