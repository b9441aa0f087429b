package http

import (
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/oomerozdemir/TUAgiyim-frontend-sub000/internal/service"
	"github.com/oomerozdemir/TUAgiyim-frontend-sub000/pkg/health"
	"github.com/oomerozdemir/TUAgiyim-frontend-sub000/pkg/middleware"
)

const component = "storefront"

// Services are the application services behind the UI API.
type Services struct {
	Cart          *service.CartStore
	Sessions      *service.SessionService
	Catalog       *service.CatalogService
	Recent        *service.RecentlyViewed
	Favorites     *service.Favorites
	Checkout      *service.CheckoutService
	Notifications *service.Notifications
}

// RouterConfig carries the HTTP-level knobs of the UI API.
type RouterConfig struct {
	CORS                middleware.CORSConfig
	CatalogCacheSeconds int
	RequestTimeout      time.Duration
	PprofEnabled        bool
	PprofCIDRs          []string
	// Credential endpoints (login, register) are throttled per client.
	AuthRateLimitRPS   float64
	AuthRateLimitBurst int
}

// NewRouter creates a chi router with all storefront UI routes registered.
func NewRouter(
	svc Services,
	healthHandler *health.Handler,
	logger *slog.Logger,
	cfg RouterConfig,
) http.Handler {
	if cfg.RequestTimeout <= 0 {
		cfg.RequestTimeout = 30 * time.Second
	}

	r := chi.NewRouter()

	// Global middleware
	r.Use(middleware.Recovery(logger))
	r.Use(middleware.CORS(cfg.CORS))
	r.Use(chimw.Compress(5))
	r.Use(chimw.Timeout(cfg.RequestTimeout))
	r.Use(middleware.RequestLogging(logger))
	r.Use(middleware.PrometheusMetrics(component))
	r.Use(middleware.Tracing(component))
	r.Use(middleware.RequestLogger(logger))

	// Health check endpoints
	r.Get("/health/live", healthHandler.LivenessHandler())
	r.Get("/health/ready", healthHandler.ReadinessHandler())
	r.Get("/metrics", func(w http.ResponseWriter, r *http.Request) {
		promhttp.Handler().ServeHTTP(w, r)
	})

	if cfg.PprofEnabled {
		middleware.RegisterPprof(r, cfg.PprofCIDRs, logger)
	}

	cartHandler := NewCartHandler(svc.Cart, logger)
	sessionHandler := NewSessionHandler(svc.Sessions, logger)
	catalogHandler := NewCatalogHandler(svc.Catalog, svc.Recent, logger)
	favoritesHandler := NewFavoritesHandler(svc.Favorites, logger)
	checkoutHandler := NewCheckoutHandler(svc.Checkout, logger)
	notificationHandler := NewNotificationHandler(svc.Notifications, logger)

	r.Route("/api/v1", func(r chi.Router) {
		r.Use(ContentTypeJSON)
		r.Use(middleware.Session(svc.Sessions.Lookup))

		r.Route("/cart", func(r chi.Router) {
			r.Get("/", cartHandler.GetCart)
			r.Delete("/", cartHandler.ClearCart)

			r.Post("/items", cartHandler.AddItem)
			r.Put("/items/{key}", cartHandler.UpdateQuantity)
			r.Delete("/items/{key}", cartHandler.RemoveItem)
			r.Post("/items/{key}/increment", cartHandler.Increment)
			r.Post("/items/{key}/decrement", cartHandler.Decrement)

			r.Post("/open", cartHandler.Open)
			r.Post("/close", cartHandler.Close)
			r.Post("/toggle", cartHandler.Toggle)
		})

		r.Route("/session", func(r chi.Router) {
			r.Get("/", sessionHandler.GetSession)
			r.Group(func(r chi.Router) {
				r.Use(middleware.RateLimit(cfg.AuthRateLimitRPS, cfg.AuthRateLimitBurst, logger))
				r.Post("/login", sessionHandler.Login)
				r.Post("/register", sessionHandler.Register)
			})
			r.Post("/logout", sessionHandler.Logout)
		})

		r.Route("/catalog", func(r chi.Router) {
			r.Use(middleware.CacheControl(cfg.CatalogCacheSeconds))
			r.Get("/categories", catalogHandler.ListCategories)
			r.Get("/products", catalogHandler.ListProducts)
			r.Get("/products/{id}", catalogHandler.GetProduct)
		})
		r.Get("/recently-viewed", catalogHandler.RecentlyViewed)

		r.Get("/favorites", favoritesHandler.ListFavorites)
		r.With(middleware.RequireSession()).Post("/favorites/{productId}/toggle", favoritesHandler.Toggle)

		r.Group(func(r chi.Router) {
			r.Use(middleware.RequireSession())
			r.Get("/orders", checkoutHandler.ListOrders)
			r.Post("/checkout", checkoutHandler.StartCheckout)
		})
		r.Post("/checkout/complete", checkoutHandler.CompleteCheckout)

		r.Get("/notifications", notificationHandler.ListNotifications)
		r.Delete("/notifications/{id}", notificationHandler.Dismiss)
	})

	return r
}
