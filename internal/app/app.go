package app

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/sony/gobreaker/v2"

	"github.com/oomerozdemir/TUAgiyim-frontend-sub000/internal/backend"
	"github.com/oomerozdemir/TUAgiyim-frontend-sub000/internal/config"
	handler "github.com/oomerozdemir/TUAgiyim-frontend-sub000/internal/handler/http"
	"github.com/oomerozdemir/TUAgiyim-frontend-sub000/internal/repository/kv"
	"github.com/oomerozdemir/TUAgiyim-frontend-sub000/internal/service"
	"github.com/oomerozdemir/TUAgiyim-frontend-sub000/internal/storage"
	"github.com/oomerozdemir/TUAgiyim-frontend-sub000/internal/storage/file"
	"github.com/oomerozdemir/TUAgiyim-frontend-sub000/internal/storage/memory"
	redisstore "github.com/oomerozdemir/TUAgiyim-frontend-sub000/internal/storage/redis"
	"github.com/oomerozdemir/TUAgiyim-frontend-sub000/internal/storage/sqlite"
	"github.com/oomerozdemir/TUAgiyim-frontend-sub000/pkg/health"
	"github.com/oomerozdemir/TUAgiyim-frontend-sub000/pkg/httpclient"
	"github.com/oomerozdemir/TUAgiyim-frontend-sub000/pkg/middleware"
	"github.com/oomerozdemir/TUAgiyim-frontend-sub000/pkg/tracing"
)

// version is reported as service.version on exported spans.
const version = "0.1.0"

const catalogFallbackBody = `{"error":{"code":"SERVICE_UNAVAILABLE","message":"catalog temporarily unavailable"}}`

// initTracer is swapped in tests.
var initTracer = tracing.InitTracer

// App wires together all dependencies and runs the storefront.
type App struct {
	cfg            *config.Config
	logger         *slog.Logger
	store          storage.Store
	httpServer     *http.Server
	tracerShutdown func(context.Context) error
}

// NewApp creates a new application instance, initializing all dependencies.
func NewApp(cfg *config.Config, logger *slog.Logger) (*App, error) {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	// Initialize OpenTelemetry tracing.
	tracingCfg := tracing.DefaultConfig("storefront")
	tracingCfg.ServiceVersion = version
	tracingCfg.Environment = cfg.Environment
	tracingCfg.OTLPEndpoint = cfg.OTELEndpoint
	tracingCfg.SampleRate = cfg.OTELSampleRate
	tracingCfg.Enabled = cfg.OTELEnabled
	tracerShutdown, err := initTracer(ctx, tracingCfg)
	if err != nil {
		return nil, fmt.Errorf("init tracer: %w", err)
	}

	rawStore, err := openStore(ctx, cfg, logger)
	if err != nil {
		_ = tracerShutdown(ctx)
		return nil, err
	}
	store := storage.Traced(rawStore, cfg.StorageBackend, cfg.StorageSlowOp(), logger)

	// Backend pipeline: every call carries the credential; catalog reads are
	// additionally guarded by a circuit breaker.
	sessionRepo := kv.NewSessionRepository(store)
	creds := httpclient.NewCredentialStore(sessionRepo, logger)

	clientCfg := httpclient.DefaultConfig()
	clientCfg.Timeout = cfg.HTTPTimeout()
	clientCfg.MaxRetries = cfg.HTTPMaxRetries
	transport := httpclient.New(clientCfg)

	var sessions *service.SessionService
	authClient, err := httpclient.NewAuthClient(transport, creds, httpclient.AuthConfig{
		BaseURL:        cfg.APIBase,
		RefreshTimeout: cfg.RefreshTimeout(),
		OnSessionExpired: func(ctx context.Context) {
			sessions.Expire(ctx)
		},
	}, logger)
	if err != nil {
		_ = store.Close()
		_ = tracerShutdown(ctx)
		return nil, fmt.Errorf("create auth client: %w", err)
	}

	catalogClient := httpclient.NewCircuitBreakerClient(authClient, httpclient.DefaultCircuitBreakerConfig("catalog"), logger).
		WithFallback(httpclient.StaticFallback(http.StatusServiceUnavailable, catalogFallbackBody))

	api := backend.New(cfg.APIBase, authClient, catalogClient, logger)

	// Build the dependency graph.
	notifications := service.NewNotifications(service.DefaultNotificationLimit)
	cart := service.NewCartStore(ctx, kv.NewCartRepository(store), logger)
	recent := service.NewRecentlyViewed(ctx, kv.NewRecentlyViewedRepository(store), logger)
	sessions = service.NewSessionService(api, creds, sessionRepo, notifications, logger)
	favorites := service.NewFavorites(api, sessions, notifications, logger)
	sessions.Subscribe(favorites)
	sessions.Hydrate(ctx)

	services := handler.Services{
		Cart:          cart,
		Sessions:      sessions,
		Catalog:       service.NewCatalogService(api, recent, logger),
		Recent:        recent,
		Favorites:     favorites,
		Checkout:      service.NewCheckoutService(cart, api, sessions, notifications, cfg.PaymentPageURL, logger),
		Notifications: notifications,
	}

	// Health checks.
	healthHandler := health.NewHandler()
	healthHandler.RegisterCritical("storage", store.Ping)
	healthHandler.RegisterNonCritical("backend", func(context.Context) error {
		if catalogClient.State() == gobreaker.StateOpen {
			return errors.New("catalog circuit open")
		}
		return nil
	})

	corsCfg := middleware.DefaultCORSConfig()
	corsCfg.AllowedOrigins = cfg.CORSAllowedOrigins
	corsCfg.AllowCredentials = true
	corsCfg.Environment = cfg.Environment

	// HTTP router.
	router := handler.NewRouter(services, healthHandler, logger, handler.RouterConfig{
		CORS:                corsCfg,
		CatalogCacheSeconds: cfg.CatalogCacheSecs,
		PprofEnabled:        cfg.PprofEnabled,
		PprofCIDRs:          cfg.PprofAllowedCIDRs,
		AuthRateLimitRPS:    cfg.AuthRateLimitRPS,
		AuthRateLimitBurst:  cfg.AuthRateLimitBurst,
	})

	httpServer := &http.Server{
		Addr:              fmt.Sprintf(":%d", cfg.HTTPPort),
		Handler:           router,
		ReadTimeout:       15 * time.Second,
		WriteTimeout:      35 * time.Second,
		IdleTimeout:       60 * time.Second,
		ReadHeaderTimeout: 10 * time.Second,
	}

	return &App{
		cfg:            cfg,
		logger:         logger,
		store:          store,
		httpServer:     httpServer,
		tracerShutdown: tracerShutdown,
	}, nil
}

// openStore opens the configured local storage backend.
func openStore(ctx context.Context, cfg *config.Config, logger *slog.Logger) (storage.Store, error) {
	switch cfg.StorageBackend {
	case config.StorageMemory:
		logger.Warn("using in-memory storage, state is lost on restart")
		return memory.New(), nil

	case config.StorageFile:
		s, err := file.New(cfg.StorageDir)
		if err != nil {
			return nil, fmt.Errorf("open file storage: %w", err)
		}
		logger.Info("using file storage", slog.String("dir", cfg.StorageDir))
		return s, nil

	case config.StorageRedis:
		s, err := redisstore.Connect(ctx, redisstore.Options{
			Addr:      cfg.RedisAddr,
			Password:  cfg.RedisPass,
			DB:        cfg.RedisDB,
			Namespace: cfg.StorageNamespace,
		})
		if err != nil {
			return nil, fmt.Errorf("connect to redis: %w", err)
		}
		logger.Info("connected to Redis",
			slog.String("addr", cfg.RedisAddr),
			slog.Int("db", cfg.RedisDB),
			slog.String("namespace", cfg.StorageNamespace),
		)
		return s, nil

	case config.StorageSQLite:
		s, err := sqlite.Open(ctx, cfg.SQLitePath)
		if err != nil {
			return nil, fmt.Errorf("open sqlite storage: %w", err)
		}
		logger.Info("using sqlite storage", slog.String("path", cfg.SQLitePath))
		return s, nil
	}
	return nil, fmt.Errorf("unknown storage backend: %q", cfg.StorageBackend)
}

// Run starts the HTTP server and blocks until the context is canceled.
func (a *App) Run(ctx context.Context) error {
	errCh := make(chan error, 1)

	go func() {
		a.logger.Info("starting HTTP server",
			slog.String("addr", a.httpServer.Addr),
		)
		if err := a.httpServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			errCh <- fmt.Errorf("http server: %w", err)
		}
	}()

	select {
	case <-ctx.Done():
		a.logger.Info("shutdown signal received")
	case err := <-errCh:
		return err
	}

	return a.Shutdown()
}

// Shutdown gracefully stops all components in order: the HTTP server first so
// in-flight mutations reach storage, then the tracer, then storage.
func (a *App) Shutdown() error {
	a.logger.Info("shutting down application...")

	var errs []error

	httpCtx, httpCancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer httpCancel()
	if err := a.httpServer.Shutdown(httpCtx); err != nil {
		a.logger.Error("http server shutdown error", slog.String("error", err.Error()))
		errs = append(errs, err)
	}

	if a.tracerShutdown != nil {
		tracerCtx, tracerCancel := context.WithTimeout(context.Background(), 3*time.Second)
		defer tracerCancel()
		if err := a.tracerShutdown(tracerCtx); err != nil {
			a.logger.Error("tracer shutdown error", slog.String("error", err.Error()))
			errs = append(errs, err)
		}
	}

	if err := a.store.Close(); err != nil {
		a.logger.Error("storage close error", slog.String("error", err.Error()))
		errs = append(errs, err)
	}

	a.logger.Info("application shutdown complete")
	return errors.Join(errs...)
}
