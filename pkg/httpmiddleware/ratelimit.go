package httpmiddleware

import (
	"context"
	"math"
	"net"
	"net/http"
	"strconv"
	"strings"
	"sync"
	"time"
)

// RateLimitConfig configures a Limiter.
type RateLimitConfig struct {
	// Max is the number of requests a client may make per window.
	Max int
	// Window is the length of one counting window.
	Window time.Duration
	// TrustProxy takes the client address from X-Forwarded-For or
	// X-Real-IP. Only enable it behind a proxy that overwrites them.
	TrustProxy bool
	// KeyFunc overrides client identification.
	KeyFunc func(*http.Request) string
	// Now is the clock, time.Now when nil.
	Now func() time.Time
}

// Decision is the outcome of a single Limiter.Allow call.
type Decision struct {
	Allowed   bool
	Remaining int
	ResetAt   time.Time
}

// counter holds hits of the current aligned window and the one before it.
type counter struct {
	start time.Time
	curr  int
	prev  int
}

// roll moves c to the window containing now.
func (c *counter) roll(now time.Time, window time.Duration) {
	start := now.Truncate(window)
	switch {
	case start.Equal(c.start):
	case start.Equal(c.start.Add(window)):
		c.prev, c.curr = c.curr, 0
		c.start = start
	default:
		c.prev, c.curr = 0, 0
		c.start = start
	}
}

// estimate weights the previous window by the share of it still inside the
// sliding window ending at now.
func (c *counter) estimate(now time.Time, window time.Duration) float64 {
	overlap := 1 - float64(now.Sub(c.start))/float64(window)
	if overlap < 0 {
		overlap = 0
	}
	return float64(c.prev)*overlap + float64(c.curr)
}

// Limiter is a per-client sliding window counter.
type Limiter struct {
	cfg RateLimitConfig

	mu      sync.Mutex
	clients map[string]*counter
}

// NewLimiter returns a Limiter. Entries are only evicted by Evict or Run.
func NewLimiter(cfg RateLimitConfig) *Limiter {
	if cfg.Now == nil {
		cfg.Now = time.Now
	}
	if cfg.KeyFunc == nil {
		trust := cfg.TrustProxy
		cfg.KeyFunc = func(r *http.Request) string { return clientAddr(r, trust) }
	}
	return &Limiter{
		cfg:     cfg,
		clients: make(map[string]*counter),
	}
}

// Allow records a hit for key unless it is over the limit.
func (l *Limiter) Allow(key string) Decision {
	now := l.cfg.Now()

	l.mu.Lock()
	defer l.mu.Unlock()

	c, ok := l.clients[key]
	if !ok {
		c = &counter{start: now.Truncate(l.cfg.Window)}
		l.clients[key] = c
	}
	c.roll(now, l.cfg.Window)

	d := Decision{ResetAt: c.start.Add(l.cfg.Window)}
	used := c.estimate(now, l.cfg.Window)
	if used >= float64(l.cfg.Max) {
		return d
	}
	c.curr++
	d.Allowed = true
	d.Remaining = max(l.cfg.Max-int(math.Ceil(used+1)), 0)
	return d
}

// Evict drops clients idle for two full windows and reports how many.
func (l *Limiter) Evict() int {
	now := l.cfg.Now()

	l.mu.Lock()
	defer l.mu.Unlock()

	n := 0
	for key, c := range l.clients {
		if now.Sub(c.start) >= 2*l.cfg.Window {
			delete(l.clients, key)
			n++
		}
	}
	return n
}

// Run evicts idle clients every two windows until ctx is done.
func (l *Limiter) Run(ctx context.Context) {
	ticker := time.NewTicker(2 * l.cfg.Window)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			l.Evict()
		}
	}
}

// Middleware rejects requests over the limit with 429 and the failure
// envelope. X-RateLimit-* headers are set on every response.
func (l *Limiter) Middleware() Middleware {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			d := l.Allow(l.cfg.KeyFunc(r))

			h := w.Header()
			h.Set("X-RateLimit-Limit", strconv.Itoa(l.cfg.Max))
			h.Set("X-RateLimit-Remaining", strconv.Itoa(d.Remaining))
			h.Set("X-RateLimit-Reset", strconv.FormatInt(d.ResetAt.Unix(), 10))

			if !d.Allowed {
				wait := max(d.ResetAt.Sub(l.cfg.Now()), 0)
				h.Set("Retry-After", strconv.Itoa(int(math.Ceil(wait.Seconds()))))
				WriteError(w, http.StatusTooManyRequests, "RATE_LIMITED", "too many submissions, retry later")
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}

func clientAddr(r *http.Request, trustProxy bool) string {
	if trustProxy {
		if xff := r.Header.Get("X-Forwarded-For"); xff != "" {
			first, _, _ := strings.Cut(xff, ",")
			return strings.TrimSpace(first)
		}
		if xri := r.Header.Get("X-Real-IP"); xri != "" {
			return strings.TrimSpace(xri)
		}
	}
	host, _, err := net.SplitHostPort(r.RemoteAddr)
	if err != nil {
		return r.RemoteAddr
	}
	return host
}
