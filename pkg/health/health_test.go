package health

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"
	"time"

	"github.com/go-faster/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type response struct {
	Status       string            `json:"status"`
	Checks       map[string]string `json:"checks"`
	Dependencies map[string]string `json:"dependencies"`
}

func passing() CheckFunc {
	return func(context.Context) error { return nil }
}

func failing(msg string) CheckFunc {
	return func(context.Context) error { return errors.New(msg) }
}

func serve(t *testing.T, fn http.HandlerFunc) (int, response) {
	t.Helper()
	w := httptest.NewRecorder()
	fn(w, httptest.NewRequest(http.MethodGet, "/", nil))
	assert.Equal(t, "application/json", w.Header().Get("Content-Type"))

	var body response
	require.NoError(t, json.NewDecoder(w.Body).Decode(&body))
	return w.Code, body
}

func runN(h *Health, n int) {
	for _, c := range h.checks {
		for range n {
			c.run(context.Background())
		}
	}
}

func TestLiveEndpoint(t *testing.T) {
	for _, tt := range []struct {
		name   string
		fn     CheckFunc
		runs   int
		status int
	}{
		{"Passing", passing(), 3, http.StatusOK},
		{"BelowThreshold", failing("temporary"), failureThreshold - 1, http.StatusOK},
		{"Failing", failing("leak"), failureThreshold, http.StatusServiceUnavailable},
	} {
		t.Run(tt.name, func(t *testing.T) {
			h := New()
			h.AddLivenessCheck("goroutines", time.Second, tt.fn)
			runN(h, tt.runs)

			code, body := serve(t, h.LiveEndpoint)
			assert.Equal(t, tt.status, code)
			if tt.status != http.StatusOK {
				assert.Equal(t, "unhealthy", body.Status)
				assert.Equal(t, "leak", body.Checks["goroutines"])
			}
		})
	}
}

func TestReadyEndpoint(t *testing.T) {
	t.Run("NotReadyByDefault", func(t *testing.T) {
		h := New()
		code, body := serve(t, h.ReadyEndpoint)
		assert.Equal(t, http.StatusServiceUnavailable, code)
		assert.Contains(t, body.Checks, "_readiness")
	})

	t.Run("StoreDown", func(t *testing.T) {
		h := New()
		h.AddReadinessCheck("local_store", time.Second, failing("bolt closed"))
		h.SetReady(true)
		runN(h, failureThreshold)

		code, body := serve(t, h.ReadyEndpoint)
		assert.Equal(t, http.StatusServiceUnavailable, code)
		assert.Equal(t, "bolt closed", body.Checks["local_store"])
		assert.False(t, h.IsReady())
	})

	t.Run("BackendDownStillReady", func(t *testing.T) {
		h := New()
		h.AddReadinessCheck("local_store", time.Second, passing())
		h.AddDependencyCheck("backend", time.Second, ReachableCheck(func(context.Context) bool { return false }))
		h.SetReady(true)
		runN(h, failureThreshold)

		code, body := serve(t, h.ReadyEndpoint)
		assert.Equal(t, http.StatusOK, code)
		assert.Equal(t, "ok", body.Status)
		assert.Equal(t, "unreachable", body.Dependencies["backend"])
		assert.True(t, h.IsReady())
	})

	t.Run("DrainClearsReadiness", func(t *testing.T) {
		h := New()
		h.SetReady(true)
		code, _ := serve(t, h.ReadyEndpoint)
		assert.Equal(t, http.StatusOK, code)

		h.SetReady(false)
		code, _ = serve(t, h.ReadyEndpoint)
		assert.Equal(t, http.StatusServiceUnavailable, code)
	})
}

func TestCheckRecovers(t *testing.T) {
	down := true
	h := New()
	h.AddReadinessCheck("local_store", time.Second, func(context.Context) error {
		if down {
			return errors.New("down")
		}
		return nil
	})
	c := h.checks[0]

	assert.NoError(t, c.err())
	runN(h, failureThreshold)
	assert.False(t, c.healthy.Load())
	assert.EqualError(t, c.err(), "down")

	down = false
	c.run(context.Background())
	assert.True(t, c.healthy.Load())
}

func TestConcurrentAccess(t *testing.T) {
	h := New()
	h.AddLivenessCheck("live", time.Second, failing("err"))
	h.AddReadinessCheck("ready", time.Second, passing())
	h.AddDependencyCheck("dep", time.Second, passing())
	h.SetReady(true)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	h.Start(ctx, 5*time.Millisecond)

	var wg sync.WaitGroup
	for range 8 {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for range 50 {
				h.IsReady()
				h.LiveEndpoint(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/livez", nil))
				h.ReadyEndpoint(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/readyz", nil))
			}
		}()
	}
	wg.Wait()
	h.Stop()
	h.Stop()
}

type pinger struct{ err error }

func (p pinger) Ping(context.Context) error { return p.err }

func TestCheckers(t *testing.T) {
	ctx := context.Background()

	assert.NoError(t, GoroutineCountCheck(100000)(ctx))
	assert.ErrorContains(t, GoroutineCountCheck(0)(ctx), "exceeds threshold")

	assert.NoError(t, PingCheck(pinger{})(ctx))
	assert.ErrorContains(t, PingCheck(pinger{err: errors.New("closed")})(ctx), "closed")

	assert.NoError(t, ReachableCheck(func(context.Context) bool { return true })(ctx))
}
