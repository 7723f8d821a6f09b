// Package main is the entrypoint for the finance dashboard API server.
package main

import (
	"context"
	"log/slog"
	"net/url"
	"os"
	"regexp"
	"strings"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/joho/godotenv"

	"github.com/findash/findash/internal/cache"
	"github.com/findash/findash/internal/config"
	"github.com/findash/findash/internal/handler"
	"github.com/findash/findash/internal/metrics"
	"github.com/findash/findash/internal/middleware"
	"github.com/findash/findash/internal/repository"
	"github.com/findash/findash/internal/server"
	"github.com/findash/findash/internal/service"
)

func main() {
	ctx := context.Background()

	// Optional .env file for local development; real environments set
	// variables directly.
	_ = godotenv.Load()

	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		slog.Error("failed to load config", "error", err)
		os.Exit(1)
	}

	// Initialize logger
	logger := initLogger(cfg)

	// Apply schema migrations before opening the pool
	if cfg.MigrateOnStart {
		if err := repository.RunMigrations(cfg.DatabaseURL); err != nil {
			logger.Error(
				"failed to run migrations",
				slog.String("error", sanitizeError(err, cfg.DatabaseURL)),
			)
			os.Exit(1)
		}
		logger.Info("migrations applied")
	}

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
	defer repo.Close()
	logger.Info("connected to database")

	// Initialize cache; the API runs without it when Redis is not configured.
	var cacheClient *cache.Cache
	if cfg.CacheEnabled() {
		cacheClient, err = cache.New(ctx, cfg.RedisURL)
		if err != nil {
			logger.Error(
				"failed to connect to Redis",
				slog.String("error", sanitizeError(err, cfg.RedisURL)),
				slog.String("redis_url", redactURL(cfg.RedisURL)),
			)
			os.Exit(1)
		}
		defer cacheClient.Close()
		logger.Info("connected to Redis")
	} else {
		logger.Info("user cache disabled, REDIS_URL not set")
	}

	// Initialize services
	recorder := metrics.NewInMemory()

	var userCache service.UserCache
	if cacheClient != nil {
		userCache = cacheClient
	}
	userService := service.NewUserService(repo, userCache, recorder)
	expenseService := service.NewExpenseService(repo, recorder)
	incomeService := service.NewIncomeService(repo, recorder)
	goalService := service.NewGoalService(repo, recorder)

	// Initialize handlers
	h := handler.New()
	var cacheChecker handler.HealthChecker
	if cacheClient != nil {
		cacheChecker = cacheClient
	}
	healthHandler := handler.NewHealthHandler(repo, cacheChecker)
	metricsHandler := handler.NewMetricsHandler(recorder)
	userHandler := handler.NewUserHandler(userService, logger)
	expenseHandler := handler.NewExpenseHandler(expenseService, logger)
	incomeHandler := handler.NewIncomeHandler(incomeService, logger)
	goalHandler := handler.NewGoalHandler(goalService, logger)

	// Setup router
	r := setupRouter(routerDeps{
		base:    h,
		health:  healthHandler,
		metrics: metricsHandler,
		user:    userHandler,
		expense: expenseHandler,
		income:  incomeHandler,
		goal:    goalHandler,
	}, cfg, logger)

	// Create and run server
	srv := server.New(
		r,
		cfg.AppPort,
		cfg.ReadTimeout,
		cfg.WriteTimeout,
		cfg.ShutdownTimeout,
		logger,
	)

	logger.Info("starting server",
		"port", cfg.AppPort,
		"env", cfg.AppEnv,
	)

	if err := srv.Run(); err != nil {
		logger.Error("server error", "error", err)
		os.Exit(1)
	}
}

// routerDeps bundles the handlers wired into the router.
type routerDeps struct {
	base    *handler.Handler
	health  *handler.HealthHandler
	metrics *handler.MetricsHandler
	user    *handler.UserHandler
	expense *handler.ExpenseHandler
	income  *handler.IncomeHandler
	goal    *handler.GoalHandler
}

func setupRouter(deps routerDeps, cfg *config.Config, logger *slog.Logger) *chi.Mux {
	r := chi.NewRouter()

	// Global middleware
	r.Use(chimiddleware.RealIP)
	r.Use(chimiddleware.RequestSize(cfg.MaxRequestBodySize))
	r.Use(middleware.RequestID)
	r.Use(middleware.Logger(logger))
	r.Use(middleware.Recoverer(logger))

	if origins := cfg.GetCORSAllowedOrigins(); len(origins) > 0 {
		corsCfg := middleware.DefaultCORSConfig()
		corsCfg.AllowedOrigins = origins
		r.Use(middleware.CORS(corsCfg))
	}

	// Health and observability endpoints
	r.Get("/healthz", deps.health.Healthz)
	r.Get("/readyz", deps.health.Readyz)
	r.Get("/metrics", deps.metrics.Metrics)

	r.Route("/api", func(r chi.Router) {
		r.Route("/users", func(r chi.Router) {
			r.Get("/", deps.user.List)
			r.Get("/{id}", deps.user.Get)
			r.Get("/email/{email}", deps.user.GetByEmail)
			r.Post("/", deps.user.Create)
			r.Put("/{id}", deps.user.Update)
			r.Delete("/{id}", deps.user.Delete)
		})

		r.Route("/expense", func(r chi.Router) {
			r.Get("/", deps.expense.List)
			r.Get("/{userID}", deps.expense.ListByUser)
			r.Post("/", deps.expense.CreateBatch)
			r.Put("/{id}", deps.expense.Update)
			r.Delete("/", deps.expense.DeleteBatch)
			r.Delete("/{id}", deps.expense.Delete)
		})

		r.Route("/income", func(r chi.Router) {
			r.Get("/", deps.income.List)
			r.Get("/{userID}", deps.income.ListByUser)
			r.Post("/", deps.income.CreateBatch)
			r.Put("/{id}", deps.income.Update)
			r.Delete("/", deps.income.DeleteBatch)
			r.Delete("/{id}", deps.income.Delete)
		})

		r.Route("/goal", func(r chi.Router) {
			r.Get("/", deps.goal.List)
			r.Get("/{userID}", deps.goal.ListByUser)
			r.Post("/", deps.goal.Create)
			r.Put("/{id}", deps.goal.Update)
			r.Delete("/{id}", deps.goal.Delete)
		})
	})

	// 404 and 405 handlers
	r.NotFound(deps.base.NotFound)
	r.MethodNotAllowed(deps.base.MethodNotAllowed)

	return r
}

// initLogger initializes the slog logger based on configuration.
func initLogger(cfg *config.Config) *slog.Logger {
	var h slog.Handler

	level := parseLogLevel(cfg.LogLevel)

	opts := &slog.HandlerOptions{
		Level: level,
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
