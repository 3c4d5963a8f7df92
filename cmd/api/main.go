// AngelaMos | 2026
// main.go

package main

import (
	"context"
	"flag"
	"log/slog"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/shopspring/decimal"

	"github.com/carterperez-dev/recraft/internal/auth"
	"github.com/carterperez-dev/recraft/internal/cache"
	"github.com/carterperez-dev/recraft/internal/config"
	"github.com/carterperez-dev/recraft/internal/core"
	"github.com/carterperez-dev/recraft/internal/health"
	"github.com/carterperez-dev/recraft/internal/middleware"
	"github.com/carterperez-dev/recraft/internal/order"
	"github.com/carterperez-dev/recraft/internal/post"
	"github.com/carterperez-dev/recraft/internal/product"
	"github.com/carterperez-dev/recraft/internal/server"
	"github.com/carterperez-dev/recraft/internal/user"
	"github.com/carterperez-dev/recraft/internal/web"
)

const (
	drainDelay = 5 * time.Second
)

func main() {
	configPath := flag.String("config", "", "path to config file")
	flag.Parse()

	if err := run(*configPath); err != nil {
		slog.Error("application error", "error", err)
		os.Exit(1)
	}
}

//nolint:funlen // bootstrap code is inherently verbose
func run(configPath string) error {
	ctx, stop := signal.NotifyContext(
		context.Background(),
		syscall.SIGINT,
		syscall.SIGTERM,
	)
	defer stop()

	cfg, err := config.Load(configPath)
	if err != nil {
		return err
	}

	logger := setupLogger(cfg.Log)
	slog.SetDefault(logger)

	isProduction := cfg.App.Environment == "production"
	core.SetErrorDetail(!isProduction)
	decimal.MarshalJSONWithoutQuotes = true

	logger.Info("starting application",
		"name", cfg.App.Name,
		"version", cfg.App.Version,
		"environment", cfg.App.Environment,
	)

	var telemetry *core.Telemetry
	if cfg.Otel.Enabled {
		tel, telErr := core.NewTelemetry(ctx, cfg.Otel, cfg.App)
		if telErr != nil {
			logger.Warn("failed to initialize telemetry", "error", telErr)
		} else {
			telemetry = tel
			logger.Info("OpenTelemetry tracer initialized",
				"endpoint", cfg.Otel.Endpoint,
			)
		}
	}

	db, err := core.NewDatabase(ctx, cfg.Database)
	if err != nil {
		return err
	}
	logger.Info("database connected",
		"max_open_conns", cfg.Database.MaxOpenConns,
		"max_idle_conns", cfg.Database.MaxIdleConns,
	)

	redis, err := core.NewRedis(ctx, cfg.Redis)
	if err != nil {
		return err
	}
	logger.Info("redis connected",
		"pool_size", cfg.Redis.PoolSize,
	)

	jwtManager, err := auth.NewJWTManager(cfg.JWT)
	if err != nil {
		return err
	}
	logger.Info("JWT manager initialized",
		"algorithm", "ES256",
		"key_id", jwtManager.GetKeyID(),
		"token_expire", cfg.JWT.TokenExpire,
	)

	listings := cache.New(redis.Client, cfg.Cache.ListingTTL)

	userSvc := user.NewService(user.NewRepository(db.DB), listings)
	authSvc := auth.NewService(jwtManager, userSvc)
	productSvc := product.NewService(product.NewRepository(db.DB), listings)
	postSvc := post.NewService(post.NewRepository(db.DB), listings)
	orderSvc := order.NewService(order.NewRepository(db.DB), listings)

	healthHandler := health.NewHandler(
		health.Dependency{Name: "database", Checker: db},
		health.Dependency{Name: "redis", Checker: redis},
	)

	srv := server.New(server.Config{
		ServerConfig:  cfg.Server,
		HealthHandler: healthHandler,
		Logger:        logger,
	})

	router := srv.Router()

	router.Use(middleware.RequestID)
	router.Use(middleware.Logger(logger))
	router.Use(middleware.SecurityHeaders(isProduction))
	router.Use(middleware.CORS(cfg.CORS))

	globalLimiter := middleware.GlobalThrottle(redis.Client, cfg.RateLimit).Middleware

	authenticator := middleware.Authenticator(jwtManager, userSvc)
	authLimiter := middleware.AuthThrottle(redis.Client, cfg.RateLimit).Middleware

	var webHandler *web.Handler
	if cfg.Web.Enabled {
		webHandler, err = web.NewHandler(web.Deps{
			Products:    productSvc,
			Posts:       postSvc,
			Artisans:    userSvc,
			Profiles:    userSvc,
			Orders:      orderSvc,
			Credentials: authSvc,
		}, cfg.Web)
		if err != nil {
			return err
		}
	}

	srv.Mount(
		func(r chi.Router) {
			healthHandler.RegisterRoutes(r)

			if cfg.Metrics.Enabled {
				core.RegisterPoolMetrics(db.Stats, redis.PoolStats)
				r.Handle(cfg.Metrics.Path, promhttp.Handler())
			}
		},
		func(r chi.Router) {
			r.Get("/.well-known/jwks.json", jwtManager.GetJWKSHandler())

			r.Route("/api", func(r chi.Router) {
				auth.NewHandler(authSvc).RegisterRoutes(r, authLimiter)
				user.NewHandler(userSvc).RegisterRoutes(r, authenticator)
				product.NewHandler(productSvc).RegisterRoutes(r, authenticator)
				post.NewHandler(postSvc).RegisterRoutes(r, authenticator)
				order.NewHandler(orderSvc).RegisterRoutes(r, authenticator)
			})

			if webHandler != nil {
				webHandler.RegisterRoutes(r, middleware.OptionalAuth(
					jwtManager,
					userSvc,
					middleware.ExtractToken,
					middleware.CookieToken(cfg.Web.TokenCookie),
				))
			}
		},
		globalLimiter,
	)

	errChan := make(chan error, 1)
	go func() {
		errChan <- srv.Start()
	}()

	select {
	case err := <-errChan:
		return err
	case <-ctx.Done():
		logger.Info("shutdown signal received")
	}

	shutdownCtx, cancel := context.WithTimeout(
		context.Background(),
		cfg.Server.ShutdownTimeout+drainDelay+5*time.Second,
	)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx, drainDelay); err != nil {
		logger.Error("server shutdown error", "error", err)
	}

	if telemetry != nil {
		if err := telemetry.Shutdown(shutdownCtx); err != nil {
			logger.Error("telemetry shutdown error", "error", err)
		}
	}

	if err := redis.Close(); err != nil {
		logger.Error("redis close error", "error", err)
	}

	if err := db.Close(); err != nil {
		logger.Error("database close error", "error", err)
	}

	logger.Info("application stopped")
	return nil
}

func setupLogger(cfg config.LogConfig) *slog.Logger {
	var handler slog.Handler

	level := slog.LevelInfo
	switch cfg.Level {
	case "debug":
		level = slog.LevelDebug
	case "warn":
		level = slog.LevelWarn
	case "error":
		level = slog.LevelError
	}

	opts := &slog.HandlerOptions{Level: level}

	if cfg.Format == "json" {
		handler = slog.NewJSONHandler(os.Stdout, opts)
	} else {
		handler = slog.NewTextHandler(os.Stdout, opts)
	}

	return slog.New(handler)
}
