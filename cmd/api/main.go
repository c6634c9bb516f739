// Package main is the entrypoint for the newsdesk API server.
package main

import (
	"context"
	"fmt"
	"log/slog"
	"net/url"
	"os"
	"regexp"
	"strings"

	"github.com/newsdesk/newsdesk/internal/auth"
	"github.com/newsdesk/newsdesk/internal/cache"
	"github.com/newsdesk/newsdesk/internal/chat"
	"github.com/newsdesk/newsdesk/internal/config"
	"github.com/newsdesk/newsdesk/internal/metrics"
	"github.com/newsdesk/newsdesk/internal/news"
	"github.com/newsdesk/newsdesk/internal/preference"
	"github.com/newsdesk/newsdesk/internal/repository"
	"github.com/newsdesk/newsdesk/internal/server"
	"github.com/newsdesk/newsdesk/internal/service"
)

// store is the credential store plus its lifecycle hooks.
type store interface {
	service.UserStore
	Migrate(ctx context.Context) error
	Ping(ctx context.Context) error
	Close()
}

func main() {
	ctx := context.Background()

	cfg, err := config.Load()
	if err != nil {
		slog.Error("failed to load config", "error", err)
		os.Exit(1)
	}

	logger := initLogger(cfg)

	if err := run(ctx, cfg, logger); err != nil {
		logger.Error("server error", "error", err)
		os.Exit(1)
	}
}

func run(ctx context.Context, cfg *config.Config, logger *slog.Logger) error {
	scheme, err := auth.ParseScheme(cfg.PasswordHashScheme)
	if err != nil {
		return err
	}
	hasher, err := auth.NewHasher(scheme)
	if err != nil {
		return err
	}

	db, err := openStore(ctx, cfg.DatabaseURL)
	if err != nil {
		logger.Error(
			"failed to open database",
			slog.String("error", sanitizeError(err, cfg.DatabaseURL)),
			slog.String("database_url", redactURL(cfg.DatabaseURL)),
		)
		return fmt.Errorf("open database: %w", err)
	}
	if err := db.Migrate(ctx); err != nil {
		db.Close()
		return fmt.Errorf("migrate database: %w", err)
	}
	logger.Info("connected to database", slog.String("database_url", redactURL(cfg.DatabaseURL)))

	var cacheClient *cache.Cache
	if cfg.RedisEnabled() {
		cacheClient, err = cache.New(ctx, cfg.RedisURL)
		if err != nil {
			db.Close()
			logger.Error(
				"failed to connect to Redis",
				slog.String("error", sanitizeError(err, cfg.RedisURL)),
				slog.String("redis_url", redactURL(cfg.RedisURL)),
			)
			return fmt.Errorf("connect redis: %w", err)
		}
		logger.Info("connected to Redis")
	} else {
		logger.Info("Redis not configured; headline cache and auth rate limiting disabled")
	}

	recorder := metrics.NewInMemory()

	newsOpts := []news.Option{
		news.WithMetrics(recorder),
		news.WithLogger(logger),
	}
	if cacheClient != nil {
		newsOpts = append(newsOpts, news.WithCache(cacheClient))
	}
	newsClient := news.NewClient(news.Config{
		APIKey:      cfg.NewsAPIKey,
		Endpoint:    cfg.NewsAPIURL,
		Timeout:     cfg.NewsTimeout,
		MinInterval: cfg.NewsMinInterval,
		CacheTTL:    cfg.NewsCacheTTL,
	}, newsOpts...)
	if !newsClient.Available() {
		logger.Warn("NEWS_API_KEY not set; news replies will fall back to the no-updates text")
	}

	prefs := preference.NewMemory()
	accounts := service.NewAccountService(db, hasher, recorder, logger)
	chatRouter := chat.NewRouter(accounts, prefs, newsClient, recorder, logger)

	r := setupRouter(routerDeps{
		accounts:    accounts,
		chat:        chatRouter,
		db:          db,
		cache:       cacheClient,
		preferences: prefs,
		metrics:     recorder,
	}, cfg, logger)

	srv := server.New(r, server.Config{
		Port:            cfg.AppPort,
		ReadTimeout:     cfg.ReadTimeout,
		WriteTimeout:    cfg.WriteTimeout,
		ShutdownTimeout: cfg.ShutdownTimeout,
	}, logger)

	srv.OnShutdown("database", func(ctx context.Context) error {
		db.Close()
		return nil
	})
	if cacheClient != nil {
		srv.OnShutdown("redis", func(ctx context.Context) error {
			return cacheClient.Close()
		})
	}

	logger.Info("starting server",
		"port", cfg.AppPort,
		"env", cfg.AppEnv,
		"password_scheme", string(hasher.Scheme()),
	)

	return srv.Run(ctx)
}

// openStore picks SQLite or PostgreSQL from the URL scheme.
func openStore(ctx context.Context, databaseURL string) (store, error) {
	if repository.IsSQLiteURL(databaseURL) {
		repo, err := repository.NewSQLite(ctx, databaseURL)
		if err != nil {
			return nil, err
		}
		return repo, nil
	}

	repo, err := repository.New(ctx, databaseURL)
	if err != nil {
		return nil, err
	}
	return repo, nil
}

// initLogger initializes the slog logger based on configuration.
func initLogger(cfg *config.Config) *slog.Logger {
	var h slog.Handler

	opts := &slog.HandlerOptions{
		Level: parseLogLevel(cfg.LogLevel),
	}

	if cfg.LogFormat == "json" {
		h = slog.NewJSONHandler(os.Stdout, opts)
	} else {
		h = slog.NewTextHandler(os.Stdout, opts)
	}

	logger := slog.New(h)
	slog.SetDefault(logger)

	return logger
}

// parseLogLevel converts string log level to slog.Level.
func parseLogLevel(level string) slog.Level {
	switch strings.ToLower(level) {
	case "debug":
		return slog.LevelDebug
	case "warn":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}

var passwordPattern = regexp.MustCompile(`(?i)password=[^\s]+`)

func redactURL(raw string) string {
	if raw == "" {
		return ""
	}

	parsed, err := url.Parse(raw)
	if err != nil {
		return "[redacted]"
	}

	if parsed.User != nil {
		username := parsed.User.Username()
		if username == "" {
			parsed.User = url.User("redacted")
		} else {
			parsed.User = url.User(username)
		}
	}

	return parsed.String()
}

func sanitizeError(err error, secrets ...string) string {
	if err == nil {
		return ""
	}

	msg := err.Error()
	for _, secret := range secrets {
		if secret == "" {
			continue
		}
		redacted := redactURL(secret)
		if redacted == "" {
			redacted = "[redacted]"
		}
		msg = strings.ReplaceAll(msg, secret, redacted)
	}

	return passwordPattern.ReplaceAllString(msg, "password=redacted")
}
