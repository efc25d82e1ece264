// @title Delivery Service API
// @version 1.0
// @description Delivery fee quoting, courier order ranking and order chat for the campus food delivery backend.
// @BasePath /
// @securityDefinitions.apikey InternalAPIKey
// @in header
// @name X-Internal-API-Key
package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
	"golang.org/x/sync/errgroup"

	"github.com/howard522/eating-at-ntou-sub000/config"
	_ "github.com/howard522/eating-at-ntou-sub000/docs"
	"github.com/howard522/eating-at-ntou-sub000/internal/chat"
	"github.com/howard522/eating-at-ntou-sub000/internal/database"
	"github.com/howard522/eating-at-ntou-sub000/internal/handlers"
	"github.com/howard522/eating-at-ntou-sub000/internal/middleware"
	"github.com/howard522/eating-at-ntou-sub000/internal/orders"
	"github.com/howard522/eating-at-ntou-sub000/internal/pricing"
	"github.com/howard522/eating-at-ntou-sub000/internal/ranking"
	"github.com/howard522/eating-at-ntou-sub000/internal/telemetry"
)

func main() {
	cfg, err := config.Load("")
	if err != nil {
		fmt.Printf("Failed to load config: %v\n", err)
		os.Exit(1)
	}
	logger := initLogger(cfg.Logging)
	log.Logger = logger

	if err := run(cfg, logger); err != nil {
		logger.Fatal().Err(err).Msg("Server exited with error")
	}
	logger.Info().Msg("Server exited")
}

func run(cfg *config.Config, logger zerolog.Logger) error {
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	logger.Info().Msg("Starting delivery service")

	shutdownTelemetry, err := telemetry.Init(ctx, telemetry.FromConfig(cfg.Telemetry))
	if err != nil {
		return fmt.Errorf("telemetry: %w", err)
	}
	defer func() {
		flushCtx, cancel := context.WithTimeout(context.Background(), cfg.Server.ShutdownTimeout)
		defer cancel()
		if err := shutdownTelemetry(flushCtx); err != nil {
			logger.Warn().Err(err).Msg("Failed to flush telemetry")
		}
	}()

	orderMetrics := orders.NewMetricsRecorder()
	store, pinger, err := openStore(ctx, cfg, orderMetrics, logger)
	if err != nil {
		return err
	}
	defer database.Close()

	quoter := pricing.NewQuoter(store, pricing.NewMetricsRecorder())
	ranker := ranking.NewRanker(ranking.NewMetricsRecorder())
	service := orders.NewService(store, quoter, ranker, orderMetrics)
	registry := chat.NewRegistry(chat.NewMetricsRecorder())

	if cfg.Logging.Level == "debug" {
		gin.SetMode(gin.DebugMode)
	} else {
		gin.SetMode(gin.ReleaseMode)
	}

	ipLimiter := middleware.NewIPRateLimiter(middleware.RateLimiterConfig{
		RequestsPerSecond: cfg.RateLimit.PerIPPerSecond,
		BurstSize:         cfg.RateLimit.PerIPBurst,
	})

	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(middleware.Tracing(telemetry.InstrumentationName))
	router.Use(middleware.RequestLogger(logger))
	router.Use(middleware.RateLimit(ipLimiter))

	router.GET("/metrics", gin.WrapH(promhttp.Handler()))
	router.GET("/docs/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))

	h := handlers.New(handlers.Deps{
		Orders: service,
		Quoter: quoter,
		Ranker: ranker,
		Chat:   registry,
		ChatOptions: chat.Options{
			WriteWait:      cfg.Chat.WriteWait,
			PongWait:       cfg.Chat.PongWait,
			MaxMessageSize: cfg.Chat.MaxMessageSize,
			SendBuffer:     cfg.Chat.SendBuffer,
		},
		AllowedOrigins: cfg.Chat.AllowedOrigins,
		Database:       pinger,
	})
	h.RegisterRoutes(router,
		middleware.InternalAuth(cfg.Server.InternalAPIKey),
		middleware.ServiceRateLimit(cfg.RateLimit.RequestsPerSecond, cfg.RateLimit.Burst),
	)

	addr := fmt.Sprintf("%s:%d", cfg.Server.Host, cfg.Server.Port)
	srv := &http.Server{
		Addr:         addr,
		Handler:      router,
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
	}

	g, gctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		logger.Info().Str("addr", addr).Msg("Server listening")
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return fmt.Errorf("listen: %w", err)
		}
		return nil
	})

	g.Go(func() error {
		ipLimiter.RunCleanup(gctx, time.Minute)
		return nil
	})

	g.Go(func() error {
		<-gctx.Done()
		logger.Info().Msg("Shutting down server...")

		// Hijacked websocket connections are not tracked by Shutdown.
		registry.Close()

		shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.Server.ShutdownTimeout)
		defer cancel()
		if err := srv.Shutdown(shutdownCtx); err != nil {
			logger.Error().Err(err).Msg("Server forced to shutdown")
			return err
		}
		return nil
	})

	return g.Wait()
}

// openStore returns the Postgres-backed store when a database URL is set and the
// in-memory store otherwise. The pinger is nil without a database.
func openStore(ctx context.Context, cfg *config.Config, metrics *orders.MetricsRecorder, logger zerolog.Logger) (orders.Store, handlers.Pinger, error) {
	dbURL := config.GetDatabaseURL()
	if dbURL == "" {
		logger.Warn().Msg("DATABASE_URL not set, orders are kept in memory and lost on restart")
		return orders.NewMemoryStore(), nil, nil
	}

	retry := database.DefaultRetryConfig()
	retry.MaxAttempts = cfg.Database.ConnectAttempts
	retry.InitialBackoff = cfg.Database.ConnectBackoff
	if err := database.ConnectWithRetry(ctx, dbURL, database.PoolOptions{
		MaxConns:        cfg.Database.MaxConnections,
		MinConns:        cfg.Database.MinConnections,
		MaxConnLifetime: cfg.Database.MaxConnLifetime,
		MaxConnIdleTime: cfg.Database.MaxConnIdleTime,
	}, retry); err != nil {
		return nil, nil, fmt.Errorf("failed to connect to database: %w", err)
	}
	logger.Info().Str("url", database.Redact(dbURL)).Msg("Database connected")

	pg := orders.NewPostgresStore(database.Pool())
	if cfg.Database.MigrateOnStart {
		if err := pg.Migrate(ctx); err != nil {
			return nil, nil, err
		}
		logger.Info().Msg("Order schema applied")
	}

	breaker := orders.NewCircuitBreaker("order_store", orders.DefaultBreakerConfig(), metrics,
		logger.With().Str("component", "order_store").Logger())
	return orders.NewGuardedStore(pg, breaker, metrics), pg, nil
}

func initLogger(cfg config.LoggingConfig) zerolog.Logger {
	zerolog.TimeFieldFormat = zerolog.TimeFormatUnix

	level, err := zerolog.ParseLevel(cfg.Level)
	if err != nil {
		level = zerolog.InfoLevel
	}
	zerolog.SetGlobalLevel(level)

	var output io.Writer
	if cfg.Format == "json" {
		output = os.Stdout
	} else {
		output = zerolog.ConsoleWriter{Out: os.Stdout, NoColor: cfg.NoColor}
	}

	return zerolog.New(output).Level(level).With().Timestamp().Str("service", "delivery-service").Logger()
}
