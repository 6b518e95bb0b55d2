// Background worker entry point for SPAC-Sentinel.  The worker consumes
// compliance alerts for downstream notification and entity updates for
// deadline-cache invalidation.
package main

import (
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"strings"
	"sync"
	"syscall"
	"time"

	"github.com/turtacn/SPAC-Sentinel/internal/application/compliance"
	"github.com/turtacn/SPAC-Sentinel/internal/config"
	redisdb "github.com/turtacn/SPAC-Sentinel/internal/infrastructure/database/redis"
	"github.com/turtacn/SPAC-Sentinel/internal/infrastructure/messaging/kafka"
	"github.com/turtacn/SPAC-Sentinel/internal/infrastructure/monitoring/logging"
	"github.com/turtacn/SPAC-Sentinel/internal/infrastructure/monitoring/prometheus"
)

const (
	defaultConfigPath = "configs/config.yaml"
	defaultHealthPort = 8081
	startupTimeout    = 30 * time.Second
)

func main() {
	configPath := flag.String("config", defaultConfigPath, "path to configuration file")
	topicFilter := flag.String("topics", "", "comma-separated list of topics to consume (default: all)")
	healthPort := flag.Int("health-port", defaultHealthPort, "health probe port")
	flag.Parse()

	cfg, err := loadConfig(*configPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to load configuration: %v\n", err)
		os.Exit(1)
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

	topics := selectTopics(*topicFilter)
	if len(topics) == 0 {
		logger.Fatal("no known topics selected", logging.String("filter", *topicFilter))
	}
	logger.Info("starting SPAC-Sentinel worker",
		logging.Any("topics", topics),
		logging.String("group_id", cfg.Kafka.GroupID),
	)

	startCtx, startCancel := context.WithTimeout(context.Background(), startupTimeout)
	redisClient, err := redisdb.NewClient(startCtx, cfg.Redis, logger)
	startCancel()
	if err != nil {
		logger.Fatal("failed to connect to redis", logging.Err(err))
	}
	defer redisClient.Close()
	cache := redisdb.NewCache(redisClient, logger)

	collector, err := prometheus.NewMetricsCollector(prometheus.CollectorConfig{
		Namespace: "spac_sentinel_worker",
	}, logger)
	if err != nil {
		logger.Fatal("failed to create metrics collector", logging.Err(err))
	}
	metrics := prometheus.NewAppMetrics(collector)

	handlers := map[string]kafka.Handler{
		kafka.TopicComplianceAlerts: alertHandler(logger, metrics),
		kafka.TopicEntityUpdates:    entityUpdateHandler(cache, logger),
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	var wg sync.WaitGroup
	consumers := make([]*kafka.Consumer, 0, len(topics))
	for _, topic := range topics {
		consumer, err := kafka.NewConsumer(cfg.Kafka, topic, logger)
		if err != nil {
			logger.Fatal("failed to create consumer",
				logging.String("topic", topic), logging.Err(err))
		}
		consumers = append(consumers, consumer)

		handler := handlers[topic]
		wg.Add(1)
		go func(topic string, consumer *kafka.Consumer) {
			defer wg.Done()
			if err := consumer.Run(ctx, handler); err != nil {
				logger.Error("consumer stopped",
					logging.String("topic", topic), logging.Err(err))
			}
		}(topic, consumer)
	}

	healthSrv := startHealthServer(*healthPort, collector, logger)

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	sig := <-quit
	logger.Info("shutdown signal received", logging.String("signal", sig.String()))

	cancel()
	for _, consumer := range consumers {
		if err := consumer.Close(); err != nil {
			logger.Warn("consumer close error", logging.Err(err))
		}
	}
	wg.Wait()

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer shutdownCancel()
	if err := healthSrv.Shutdown(shutdownCtx); err != nil {
		logger.Warn("health server shutdown error", logging.Err(err))
	}
	logger.Info("worker stopped")
}

// alertHandler logs each consumed alert at a level matching its severity.
// Notification channels (email, chat webhooks) hang off this handler.
func alertHandler(logger logging.Logger, metrics *prometheus.AppMetrics) kafka.Handler {
	return func(ctx context.Context, msg kafka.Message) error {
		var alert compliance.DeadlineAlert
		if err := json.Unmarshal(msg.Value, &alert); err != nil {
			// A malformed message never becomes valid; drop it.
			logger.Error("dropping undecodable alert", logging.Err(err))
			return nil
		}

		prometheus.RecordAlert(metrics, string(alert.Severity), "deadline")

		fields := []logging.Field{
			logging.String("spac_id", alert.SpacID),
			logging.String("filing_type", string(alert.FilingType)),
			logging.Time("deadline", alert.Deadline),
			logging.String("message", alert.Message),
		}
		switch alert.Severity {
		case compliance.SeverityCritical:
			logger.Error("critical compliance alert", fields...)
		case compliance.SeverityWarning:
			logger.Warn("compliance alert", fields...)
		default:
			logger.Info("compliance alert", fields...)
		}
		return nil
	}
}

// entityUpdateHandler invalidates the cached deadline sets of an updated
// entity so the next read recomputes from the fresh snapshot.
func entityUpdateHandler(cache redisdb.Cache, logger logging.Logger) kafka.Handler {
	return func(ctx context.Context, msg kafka.Message) error {
		var update struct {
			SpacID string `json:"spac_id"`
		}
		if err := json.Unmarshal(msg.Value, &update); err != nil {
			logger.Error("dropping undecodable entity update", logging.Err(err))
			return nil
		}
		if update.SpacID == "" {
			return nil
		}

		deleted, err := cache.DeleteByPrefix(ctx, "deadlines:"+update.SpacID+":")
		if err != nil {
			// Returning the error leaves the offset uncommitted for retry.
			return err
		}
		logger.Info("invalidated deadline cache",
			logging.String("spac_id", update.SpacID),
			logging.Int64("keys", deleted))
		return nil
	}
}

func selectTopics(filter string) []string {
	if filter == "" {
		return kafka.AllTopics
	}
	known := make(map[string]bool, len(kafka.AllTopics))
	for _, t := range kafka.AllTopics {
		known[t] = true
	}
	var topics []string
	for _, t := range strings.Split(filter, ",") {
		t = strings.TrimSpace(t)
		if known[t] {
			topics = append(topics, t)
		}
	}
	return topics
}

func startHealthServer(port int, collector prometheus.MetricsCollector, logger logging.Logger) *http.Server {
	mux := http.NewServeMux()
	mux.HandleFunc("/healthz", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("ok"))
	})
	mux.Handle("/metrics", collector.Handler())

	srv := &http.Server{
		Addr:         fmt.Sprintf(":%d", port),
		Handler:      mux,
		ReadTimeout:  5 * time.Second,
		WriteTimeout: 10 * time.Second,
	}
	go func() {
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Error("health server error", logging.Err(err))
		}
	}()
	return srv
}

func loadConfig(path string) (*config.Config, error) {
	if _, err := os.Stat(path); os.IsNotExist(err) {
		return config.Load("")
	}
	return config.Load(path)
}
