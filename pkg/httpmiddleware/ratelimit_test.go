package httpmiddleware

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strconv"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var t0 = time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)

type fakeClock struct{ now time.Time }

func (c *fakeClock) Now() time.Time          { return c.now }
func (c *fakeClock) Advance(d time.Duration) { c.now = c.now.Add(d) }

func okHandler() http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusOK)
	})
}

func TestLimiterAllow(t *testing.T) {
	clock := &fakeClock{now: t0}
	l := NewLimiter(RateLimitConfig{Max: 3, Window: time.Minute, Now: clock.Now})

	for _, want := range []int{2, 1, 0} {
		d := l.Allow("client")
		require.True(t, d.Allowed)
		assert.Equal(t, want, d.Remaining)
		assert.Equal(t, t0.Add(time.Minute), d.ResetAt)
	}

	d := l.Allow("client")
	assert.False(t, d.Allowed)
	assert.Zero(t, d.Remaining)

	assert.True(t, l.Allow("other").Allowed, "clients are counted separately")
}

func TestLimiterSlidingWindow(t *testing.T) {
	clock := &fakeClock{now: t0}
	l := NewLimiter(RateLimitConfig{Max: 2, Window: time.Minute, Now: clock.Now})

	require.True(t, l.Allow("c").Allowed)
	require.True(t, l.Allow("c").Allowed)

	// Half of the previous window still counts: 2*0.5 = 1 used.
	clock.Advance(90 * time.Second)
	d := l.Allow("c")
	require.True(t, d.Allowed)
	assert.Zero(t, d.Remaining)
	assert.False(t, l.Allow("c").Allowed)

	// A skipped window clears both counters.
	clock.Advance(2 * time.Minute)
	assert.True(t, l.Allow("c").Allowed)
}

func TestLimiterEvict(t *testing.T) {
	clock := &fakeClock{now: t0}
	l := NewLimiter(RateLimitConfig{Max: 5, Window: time.Minute, Now: clock.Now})

	l.Allow("idle")
	clock.Advance(90 * time.Second)
	l.Allow("active")
	clock.Advance(30 * time.Second)

	assert.Equal(t, 1, l.Evict())
	assert.Contains(t, l.clients, "active")
	assert.NotContains(t, l.clients, "idle")
}

func TestLimiterMiddleware(t *testing.T) {
	clock := &fakeClock{now: t0.Add(15 * time.Second)}
	handler := NewLimiter(RateLimitConfig{Max: 1, Window: time.Minute, Now: clock.Now}).Middleware()(okHandler())

	send := func() *httptest.ResponseRecorder {
		req := httptest.NewRequest(http.MethodPost, "/api/inquiries", nil)
		req.RemoteAddr = "10.0.0.1:9999"
		w := httptest.NewRecorder()
		handler.ServeHTTP(w, req)
		return w
	}

	w := send()
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "1", w.Header().Get("X-RateLimit-Limit"))
	assert.Equal(t, "0", w.Header().Get("X-RateLimit-Remaining"))
	assert.Equal(t, strconv.FormatInt(t0.Add(time.Minute).Unix(), 10), w.Header().Get("X-RateLimit-Reset"))

	w = send()
	assert.Equal(t, http.StatusTooManyRequests, w.Code)
	assert.Equal(t, "application/json", w.Header().Get("Content-Type"))
	assert.Equal(t, "45", w.Header().Get("Retry-After"))

	var body struct {
		Success bool `json:"success"`
		Error   struct {
			Code   string `json:"code"`
			Status int    `json:"status"`
		} `json:"error"`
	}
	require.NoError(t, json.NewDecoder(w.Body).Decode(&body))
	assert.False(t, body.Success)
	assert.Equal(t, "RATE_LIMITED", body.Error.Code)
	assert.Equal(t, http.StatusTooManyRequests, body.Error.Status)
}

func TestLimiterKeyFunc(t *testing.T) {
	handler := NewLimiter(RateLimitConfig{
		Max:     1,
		Window:  time.Minute,
		KeyFunc: func(r *http.Request) string { return r.Header.Get("X-Visitor") },
	}).Middleware()(okHandler())

	codes := make([]int, 0, 3)
	for _, visitor := range []string{"a", "a", "b"} {
		req := httptest.NewRequest(http.MethodPost, "/", nil)
		req.Header.Set("X-Visitor", visitor)
		w := httptest.NewRecorder()
		handler.ServeHTTP(w, req)
		codes = append(codes, w.Code)
	}
	assert.Equal(t, []int{http.StatusOK, http.StatusTooManyRequests, http.StatusOK}, codes)
}

func TestClientAddr(t *testing.T) {
	tests := []struct {
		name       string
		remote     string
		xff        string
		realIP     string
		trustProxy bool
		want       string
	}{
		{name: "remote addr", remote: "192.168.1.1:4444", want: "192.168.1.1"},
		{name: "forwarded ignored", remote: "192.168.1.1:4444", xff: "203.0.113.50", want: "192.168.1.1"},
		{name: "forwarded first hop", remote: "192.168.1.1:4444", xff: "203.0.113.50, 70.41.3.18", trustProxy: true, want: "203.0.113.50"},
		{name: "real ip", remote: "192.168.1.1:4444", realIP: " 198.51.100.7 ", trustProxy: true, want: "198.51.100.7"},
		{name: "no port", remote: "pipe", want: "pipe"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodGet, "/", nil)
			req.RemoteAddr = tt.remote
			if tt.xff != "" {
				req.Header.Set("X-Forwarded-For", tt.xff)
			}
			if tt.realIP != "" {
				req.Header.Set("X-Real-IP", tt.realIP)
			}
			assert.Equal(t, tt.want, clientAddr(req, tt.trustProxy))
		})
	}
}
