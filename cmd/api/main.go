// Package main is the entrypoint for the Tasklight API server.
package main

import (
	"context"
	"log/slog"
	"net/url"
	"os"
	"strings"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus"

	"github.com/tasklight/tasklight/internal/auth"
	"github.com/tasklight/tasklight/internal/config"
	"github.com/tasklight/tasklight/internal/database"
	"github.com/tasklight/tasklight/internal/handler"
	"github.com/tasklight/tasklight/internal/metrics"
	"github.com/tasklight/tasklight/internal/middleware"
	"github.com/tasklight/tasklight/internal/repository"
	"github.com/tasklight/tasklight/internal/server"
	"github.com/tasklight/tasklight/internal/service"
)

func main() {
	ctx := context.Background()

	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		slog.Error("failed to load config", "error", err)
		os.Exit(1)
	}

	// Initialize logger
	logger := initLogger(cfg)

	// Apply schema migrations
	if err := database.RunMigrations(cfg.DatabaseURL); err != nil {
		logger.Error("failed to run migrations",
			slog.String("error", sanitizeError(err, cfg.DatabaseURL)),
		)
		os.Exit(1)
	}
	logger.Info("migrations applied")

	// Initialize database
	repo, err := repository.New(ctx, cfg.DatabaseURL)
	if err != nil {
		logger.Error(
			"failed to connect to database",
			slog.String("error", sanitizeError(err, cfg.DatabaseURL)),
			slog.String("database_url", redactURL(cfg.DatabaseURL)),
		)
		os.Exit(1)
	}
	logger.Info("connected to database")

	// Initialize metrics
	registry := prometheus.NewRegistry()
	recorder := metrics.NewCollector(registry)

	// Initialize services
	tokens := auth.NewTokenIssuer(cfg.JWTSecret, cfg.TokenTTL)
	authService := service.NewAuthService(repo, tokens, recorder)
	taskService := service.NewTaskService(repo, recorder)

	// Initialize handlers
	h := handler.New()
	healthHandler := handler.NewHealthHandler(repo)
	authHandler := handler.NewAuthHandler(authService, logger)
	taskHandler := handler.NewTaskHandler(taskService, logger)

	// Setup router
	r := setupRouter(routerDeps{
		base:    h,
		health:  healthHandler,
		auth:    authHandler,
		tasks:   taskHandler,
		tokens:  tokens,
		metrics: recorder,
		gather:  registry,
		cfg:     cfg,
		logger:  logger,
	})

	// Create and run server
	srv := server.New(
		r,
		cfg.AppPort,
		cfg.ReadTimeout,
		cfg.WriteTimeout,
		cfg.ShutdownTimeout,
		logger,
	)

	srv.OnShutdown("database", func(ctx context.Context) error {
		repo.Close()
		return nil
	})

	logger.Info("starting server",
		"port", cfg.AppPort,
		"env", cfg.AppEnv,
		"token_ttl", cfg.TokenTTL.String(),
	)

	if err := srv.Run(); err != nil {
		logger.Error("server error", "error", err)
		os.Exit(1)
	}
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
	switch level {
	case "debug":
		return slog.LevelDebug
	case "info":
		return slog.LevelInfo
	case "warn":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}

// routerDeps carries everything setupRouter needs.
type routerDeps struct {
	base    *handler.Handler
	health  *handler.HealthHandler
	auth    *handler.AuthHandler
	tasks   *handler.TaskHandler
	tokens  *auth.TokenIssuer
	metrics metrics.Recorder
	gather  prometheus.Gatherer
	cfg     *config.Config
	logger  *slog.Logger
}

// setupRouter configures the chi router with all routes and middleware.
func setupRouter(deps routerDeps) *chi.Mux {
	r := chi.NewRouter()

	// Global middleware
	r.Use(chimiddleware.RealIP)
	r.Use(middleware.RequestID)
	r.Use(middleware.Logger(deps.logger))
	r.Use(middleware.Recoverer(deps.logger))
	r.Use(middleware.Security(deps.cfg.IsDevelopment()))
	r.Use(middleware.Metrics(deps.metrics))
	r.Use(middleware.MaxBodySize(deps.cfg.MaxRequestBodySize))

	corsCfg := middleware.DefaultCORSConfig()
	corsCfg.AllowedOrigins = deps.cfg.GetCORSAllowedOrigins()
	r.Use(middleware.CORS(corsCfg))

	// Health and observability endpoints (no auth required)
	r.Get("/healthz", deps.health.Healthz)
	r.Get("/readyz", deps.health.Readyz)
	r.Method("GET", "/metrics", metrics.Handler(deps.gather))

	// Root info endpoint
	r.Get("/", deps.base.Hello)

	// Public auth endpoints
	r.Post("/register", deps.auth.Register)
	r.Post("/login", deps.auth.Login)

	// Task routes (require a valid bearer token)
	authCfg := middleware.AuthConfig{
		Logger: deps.logger,
		Tokens: deps.tokens,
	}

	r.Route("/tasks", func(r chi.Router) {
		r.Use(middleware.Auth(authCfg))

		r.Get("/", deps.tasks.List)
		r.Post("/", deps.tasks.Create)
		r.Put("/{id}", deps.tasks.Update)
		r.Delete("/{id}", deps.tasks.Delete)
	})

	// 404 and 405 handlers
	r.NotFound(deps.base.NotFound)
	r.MethodNotAllowed(deps.base.MethodNotAllowed)

	return r
}

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

	return msg
}
