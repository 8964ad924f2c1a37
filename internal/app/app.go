package app

import (
	"context"
	"net/http"
	"time"

	"github.com/go-faster/errors"
	"github.com/go-faster/sdk/app"
	"go.uber.org/zap"

	"github.com/meetjaka/voltherm-sub000/internal/admin"
	"github.com/meetjaka/voltherm-sub000/internal/datasource"
	"github.com/meetjaka/voltherm-sub000/internal/domain/auth"
	"github.com/meetjaka/voltherm-sub000/internal/handler"
	"github.com/meetjaka/voltherm-sub000/internal/hybrid"
	"github.com/meetjaka/voltherm-sub000/internal/localstore"
	"github.com/meetjaka/voltherm-sub000/internal/remote"
	"github.com/meetjaka/voltherm-sub000/pkg/health"
	"github.com/meetjaka/voltherm-sub000/pkg/httpmiddleware"
)

// Run creates all dependencies, starts the HTTP server, and handles graceful
// shutdown. It is the single wiring point for the application.
func Run(ctx context.Context, lg *zap.Logger, m *app.Telemetry, cfg *Config) error {
	lg, closeLog := withFileLog(lg, cfg.Log)
	defer func() { _ = closeLog() }()

	lg.Info("Initializing",
		zap.String("addr", cfg.Addr),
		zap.String("remote", cfg.Remote.BaseURL),
		zap.String("store", cfg.Store.Driver),
	)

	// Local store.
	backend, err := OpenBackend(ctx, cfg.Store, lg.Named("store"))
	if err != nil {
		return err
	}
	store := localstore.New(backend, lg.Named("store"))
	defer func() {
		if err := store.Close(); err != nil {
			lg.Error("Close local store", zap.Error(err))
		}
	}()

	// Backend client and source selection.
	client, err := remote.New(remote.Config{
		BaseURL:       cfg.Remote.BaseURL,
		JSONTimeout:   cfg.Remote.JSONTimeout,
		UploadTimeout: cfg.Remote.UploadTimeout,
		ProbeAttempts: cfg.Remote.ProbeAttempts,
		ProbeInterval: cfg.Remote.ProbeInterval,
	},
		remote.WithLogger(lg.Named("remote")),
		remote.WithTracerProvider(m.TracerProvider()),
		remote.WithMeterProvider(m.MeterProvider()),
	)
	if err != nil {
		return errors.Wrap(err, "create remote client")
	}
	strategy := datasource.NewStrategy(client, datasource.WithProbeTTL(cfg.Remote.ProbeCacheTTL))
	remoteRepos := datasource.NewRemote(client)
	localRepos := datasource.NewLocal(store, time.Now)

	// Services.
	catalog, err := hybrid.NewService(strategy, remoteRepos, localRepos, store, hybrid.Options{
		Logger:         lg.Named("hybrid"),
		MeterProvider:  m.MeterProvider(),
		TracerProvider: m.TracerProvider(),
	})
	if err != nil {
		return errors.Wrap(err, "create catalog service")
	}

	adminOpts := admin.Options{
		Logger:         lg.Named("admin"),
		MeterProvider:  m.MeterProvider(),
		TracerProvider: m.TracerProvider(),
	}
	if cfg.Admin.Username != "" {
		adminOpts.LocalCredentials = &auth.Credentials{
			Username: cfg.Admin.Username,
			Password: cfg.Admin.Password,
		}
	}
	adminSvc, err := admin.NewService(strategy, remoteRepos, localRepos, store, client, auth.NewSession(), adminOpts)
	if err != nil {
		return errors.Wrap(err, "create admin service")
	}

	var keys *auth.KeyVerifier
	if cfg.Admin.KeyHash != "" {
		keys, err = auth.NewKeyVerifier(cfg.Admin.KeyHash, []byte(cfg.Admin.KeyPepper))
		if err != nil {
			return errors.Wrap(err, "admin key")
		}
	} else {
		lg.Warn("No admin key hash configured, admin API is closed")
	}

	// Health check service.
	healthSvc := health.New()
	healthSvc.AddReadinessCheck("local_store", 5*time.Second, health.PingCheck(store))
	healthSvc.AddDependencyCheck("backend", 10*time.Second, health.ReachableCheck(client.TestConnection))
	healthSvc.AddLivenessCheck("goroutines", time.Second, health.GoroutineCountCheck(10000))
	healthSvc.Start(ctx, 30*time.Second)
	healthSvc.SetReady(true)

	// Routes.
	mux := http.NewServeMux()
	mux.HandleFunc("/livez", healthSvc.LiveEndpoint)
	mux.HandleFunc("/readyz", healthSvc.ReadyEndpoint)
	limiter := httpmiddleware.NewLimiter(httpmiddleware.RateLimitConfig{
		Max:        cfg.RateLimit.Max,
		Window:     cfg.RateLimit.Window,
		TrustProxy: cfg.RateLimit.TrustProxy,
	})
	go limiter.Run(ctx)
	handler.NewHandler(handler.Config{}, catalog, adminSvc, keys).Register(mux, limiter.Middleware())

	server := &http.Server{
		ReadHeaderTimeout: time.Second,
		ReadTimeout:       cfg.Remote.UploadTimeout,
		WriteTimeout:      cfg.Remote.UploadTimeout + 10*time.Second,
		IdleTimeout:       120 * time.Second,
		MaxHeaderBytes:    1 << 20,
		Addr:              cfg.Addr,
		Handler: httpmiddleware.Wrap(mux,
			httpmiddleware.Recovery(),
			httpmiddleware.CORS(httpmiddleware.CORSConfig{
				AllowOrigins:     cfg.CORS.Origins,
				AllowHeaders:     []string{"Content-Type", handler.AdminKeyHeader, httpmiddleware.RequestIDHeader},
				ExposeHeaders:    []string{httpmiddleware.RequestIDHeader},
				AllowCredentials: cfg.CORS.AllowCredentials,
				MaxAge:           86400,
			}),
			httpmiddleware.RequestID(),
			httpmiddleware.InjectLogger(lg.Named("http")),
			httpmiddleware.LogRequests(),
			httpmiddleware.Instrument("voltherm-storefront", m.TracerProvider(), m.MeterProvider()),
		),
	}

	// Graceful shutdown: wait for context cancellation, drain, then stop.
	shutdownDone := make(chan struct{})
	go func() {
		<-ctx.Done()
		healthSvc.SetReady(false)
		lg.Info("Readiness set to false, draining", zap.Duration("delay", cfg.Graceful.ReadinessDelay))
		time.Sleep(cfg.Graceful.ReadinessDelay)

		shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.Graceful.ShutdownTimeout)
		defer cancel()

		lg.Info("Shutting down server", zap.Duration("timeout", cfg.Graceful.ShutdownTimeout))
		if err := server.Shutdown(shutdownCtx); err != nil {
			lg.Error("Server shutdown error", zap.Error(err))
		}
		healthSvc.Stop()
		close(shutdownDone)
	}()

	lg.Info("Server listening", zap.String("addr", cfg.Addr))
	if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return errors.Wrap(err, "server")
	}
	<-shutdownDone
	return nil
}
