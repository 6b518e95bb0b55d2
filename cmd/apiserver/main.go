// API server entry point for SPAC-Sentinel.
package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/turtacn/SPAC-Sentinel/internal/application/compliance"
	"github.com/turtacn/SPAC-Sentinel/internal/config"
	"github.com/turtacn/SPAC-Sentinel/internal/domain/checklist"
	"github.com/turtacn/SPAC-Sentinel/internal/infrastructure/database/postgres"
	"github.com/turtacn/SPAC-Sentinel/internal/infrastructure/database/postgres/repositories"
	redisdb "github.com/turtacn/SPAC-Sentinel/internal/infrastructure/database/redis"
	"github.com/turtacn/SPAC-Sentinel/internal/infrastructure/edgar"
	"github.com/turtacn/SPAC-Sentinel/internal/infrastructure/messaging/kafka"
	"github.com/turtacn/SPAC-Sentinel/internal/infrastructure/monitoring/logging"
	"github.com/turtacn/SPAC-Sentinel/internal/infrastructure/monitoring/prometheus"
	httpserver "github.com/turtacn/SPAC-Sentinel/internal/interfaces/http"
	"github.com/turtacn/SPAC-Sentinel/internal/interfaces/http/handlers"
	"github.com/turtacn/SPAC-Sentinel/internal/interfaces/http/middleware"
)

const (
	defaultConfigPath = "configs/config.yaml"
	startupTimeout    = 30 * time.Second
)

func main() {
	configPath := flag.String("config", defaultConfigPath, "path to configuration file")
	httpPort := flag.Int("http-port", 0, "HTTP server port (overrides config)")
	skipMigrations := flag.Bool("skip-migrations", false, "do not run database migrations on startup")
	flag.Parse()

	cfg, err := loadConfig(*configPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to load configuration: %v\n", err)
		os.Exit(1)
	}
	if *httpPort > 0 {
		cfg.Server.Port = *httpPort
	}

	logger, err := logging.NewLogger(logging.LogConfig{
		Level:  cfg.Log.Level,
		Format: cfg.Log.Format,
	})
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to initialize logger: %v\n", err)
		os.Exit(1)
	}
	logging.SetDefault(logger)

	logger.Info("starting SPAC-Sentinel API server",
		logging.Int("port", cfg.Server.Port),
		logging.String("mode", cfg.Server.Mode),
	)

	ctx, cancel := context.WithTimeout(context.Background(), startupTimeout)
	defer cancel()

	if !*skipMigrations {
		if err := postgres.RunMigrations(postgres.MigrationURL(cfg.Database), cfg.Database.MigrationPath); err != nil {
			logger.Fatal("database migration failed", logging.Err(err))
		}
	}

	pool, err := postgres.NewPool(ctx, cfg.Database, logger)
	if err != nil {
		logger.Fatal("failed to connect to postgres", logging.Err(err))
	}
	defer pool.Close()

	redisClient, err := redisdb.NewClient(ctx, cfg.Redis, logger)
	if err != nil {
		logger.Fatal("failed to connect to redis", logging.Err(err))
	}
	defer redisClient.Close()
	cache := redisdb.NewCache(redisClient, logger,
		redisdb.WithDefaultTTL(cfg.Redis.DefaultTTL))

	producer, err := kafka.NewProducer(cfg.Kafka, logger)
	if err != nil {
		logger.Fatal("failed to create kafka producer", logging.Err(err))
	}
	defer producer.Close()
	alertPublisher := kafka.NewAlertPublisher(producer)

	edgarClient, err := edgar.NewClient(cfg.Edgar, logger)
	if err != nil {
		logger.Fatal("failed to create filings-index client", logging.Err(err))
	}

	collector, err := prometheus.NewMetricsCollector(prometheus.CollectorConfig{
		Namespace:            "spac_sentinel",
		EnableProcessMetrics: true,
		EnableGoMetrics:      true,
	}, logger)
	if err != nil {
		logger.Fatal("failed to create metrics collector", logging.Err(err))
	}
	metrics := prometheus.NewAppMetrics(collector)

	registry, err := checklist.NewDefaultRegistry()
	if err != nil {
		logger.Fatal("invalid checklist templates", logging.Err(err))
	}

	repo := repositories.NewSpacRepository(pool.Pool(), logger)
	service := compliance.NewService(repo, registry, cache, alertPublisher,
		metrics, logger, compliance.ServiceConfig{
			DeadlineCacheTTL:      cfg.Engine.DeadlineCacheTTL,
			PeriodicHorizonMonths: cfg.Engine.PeriodicHorizonMonths,
		})

	rateLimitCfg := middleware.DefaultRateLimitConfig()
	if cfg.Server.RateLimitRPS > 0 {
		rateLimitCfg.RequestsPerSecond = cfg.Server.RateLimitRPS
	}
	if cfg.Server.RateLimitBurst > 0 {
		rateLimitCfg.Burst = cfg.Server.RateLimitBurst
	}
	rateLimiter := middleware.NewClientRateLimiter(
		rateLimitCfg.RequestsPerSecond, rateLimitCfg.Burst, rateLimitCfg.CleanupInterval)
	defer rateLimiter.Stop()

	router := httpserver.NewRouter(httpserver.RouterConfig{
		ComplianceHandler: handlers.NewComplianceHandler(service),
		ChecklistHandler:  handlers.NewChecklistHandler(service),
		RegistryHandler:   handlers.NewRegistryHandler(),
		FilingsHandler:    handlers.NewFilingsHandler(edgarClient),
		HealthHandler: handlers.NewHealthHandler(map[string]handlers.HealthChecker{
			"postgres": pool.HealthCheck,
			"redis":    cache.Ping,
		}),
		RateLimiter:     rateLimiter,
		RateLimitConfig: rateLimitCfg,
		CORSConfig:      middleware.DefaultCORSConfig(),
		Logger:          logger,
		Metrics:         metrics,
		Collector:       collector,
		Mode:            ginMode(cfg.Server.Mode),
	})

	srv := httpserver.NewServer(cfg.Server, router, logger)

	errCh := make(chan error, 1)
	go func() {
		errCh <- srv.Start()
	}()

	// Reload-on-change only logs for now; live reconfiguration of the pool
	// and server would require a restart anyway.
	if _, err := os.Stat(*configPath); err == nil {
		if err := config.Watch(*configPath, func(updated *config.Config) {
			logger.Info("configuration file changed; restart to apply",
				logging.String("path", *configPath))
		}); err != nil {
			logger.Warn("config watch unavailable", logging.Err(err))
		}
	}

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)

	select {
	case sig := <-quit:
		logger.Info("shutdown signal received", logging.String("signal", sig.String()))
	case err := <-errCh:
		if err != nil {
			logger.Error("http server failed", logging.Err(err))
		}
	}

	shutdownCtx, shutdownCancel := context.WithTimeout(
		context.Background(), cfg.Server.ShutdownTimeout)
	defer shutdownCancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Error("http server shutdown error", logging.Err(err))
	}
	logger.Info("server stopped")
}

// loadConfig reads the config file when it exists, otherwise falls back to
// environment variables and defaults.
func loadConfig(path string) (*config.Config, error) {
	if _, err := os.Stat(path); os.IsNotExist(err) {
		return config.Load("")
	}
	return config.Load(path)
}

func ginMode(mode string) string {
	if mode == "" {
		return "release"
	}
	return mode
}
