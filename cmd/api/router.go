package main

import (
	"log/slog"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"

	"github.com/newsdesk/newsdesk/internal/cache"
	"github.com/newsdesk/newsdesk/internal/config"
	"github.com/newsdesk/newsdesk/internal/handler"
	"github.com/newsdesk/newsdesk/internal/metrics"
	"github.com/newsdesk/newsdesk/internal/middleware"
)

// routerDeps are the components the HTTP routes call into.
type routerDeps struct {
	accounts    handler.Accounts
	chat        handler.ChatRouter
	db          handler.HealthChecker
	cache       *cache.Cache
	preferences handler.Counter
	metrics     metrics.Snapshotter
}

// setupRouter configures the chi router with all routes and middleware.
func setupRouter(deps routerDeps, cfg *config.Config, logger *slog.Logger) *chi.Mux {
	r := chi.NewRouter()

	// Global middleware
	r.Use(chimiddleware.RealIP)
	r.Use(middleware.RequestID)
	r.Use(middleware.Logger(logger))
	r.Use(middleware.Recoverer(logger))
	r.Use(middleware.Security(middleware.SecurityConfig{
		IsDevelopment:      cfg.IsDevelopment(),
		MaxRequestBodySize: cfg.MaxRequestBodySize,
	}))

	corsCfg := middleware.DefaultCORSConfig()
	corsCfg.AllowedOrigins = cfg.GetCORSAllowedOrigins()
	r.Use(middleware.CORS(corsCfg))
	r.Use(middleware.MaxBodySize(cfg.MaxRequestBodySize))

	h := handler.New()

	// A nil *cache.Cache must not become a non-nil interface.
	var cacheChecker handler.HealthChecker
	rateLimitCfg := middleware.RateLimitConfig{
		Logger:    logger,
		Enabled:   cfg.RateLimitAuthEnabled,
		PerMinute: cfg.RateLimitAuthRPM,
		Burst:     cfg.RateLimitAuthBurst,
	}
	if deps.cache != nil {
		cacheChecker = deps.cache
		rateLimitCfg.Limiter = deps.cache
	}

	healthHandler := handler.NewHealthHandler(deps.db, cacheChecker, deps.preferences)
	metricsHandler := handler.NewMetricsHandler(deps.metrics)
	authHandler := handler.NewAuthHandler(deps.accounts, logger)
	chatHandler := handler.NewChatHandler(deps.chat, logger)

	r.Get("/", h.Hello)
	r.Get("/healthz", healthHandler.Healthz)
	r.Get("/readyz", healthHandler.Readyz)
	r.Get("/metrics", metricsHandler.Metrics)

	r.Group(func(r chi.Router) {
		r.Use(middleware.RateLimitAuth(rateLimitCfg))
		r.Post("/register", authHandler.Register)
		r.Post("/login", authHandler.Login)
	})

	r.Post("/chat", chatHandler.Chat)

	r.NotFound(h.NotFound)
	r.MethodNotAllowed(h.MethodNotAllowed)

	return r
}
