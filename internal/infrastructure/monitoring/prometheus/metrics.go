package prometheus

import (
	"fmt"
	"time"
)

// AppMetrics holds all application metrics.
type AppMetrics struct {
	// HTTP layer
	HTTPRequestsTotal   CounterVec
	HTTPRequestDuration HistogramVec
	HTTPActiveRequests  GaugeVec
	HTTPRateLimited     CounterVec

	// Compliance engine
	DeadlineComputeTotal    CounterVec
	DeadlineComputeDuration HistogramVec
	DeadlinesGenerated      HistogramVec
	AlertsEmittedTotal      CounterVec
	OverdueDeadlines        GaugeVec
	ChecklistProgress       GaugeVec

	// Filings index client
	EdgarRequestsTotal   CounterVec
	EdgarRequestDuration HistogramVec

	// Infrastructure
	DBConnectionPoolSize   GaugeVec
	DBConnectionPoolActive GaugeVec
	DBQueryDuration        HistogramVec
	CacheHitsTotal         CounterVec
	CacheMissesTotal       CounterVec
	KafkaPublishTotal      CounterVec
	KafkaPublishDuration   HistogramVec

	// System health
	ServiceUptime     GaugeVec
	HealthCheckStatus GaugeVec
	ErrorsTotal       CounterVec
}

// Default buckets
var (
	DefaultHTTPDurationBuckets   = []float64{.005, .01, .025, .05, .1, .25, .5, 1, 2.5, 5, 10}
	DefaultEngineDurationBuckets = []float64{.001, .005, .01, .025, .05, .1, .25, .5, 1}
	DefaultDBDurationBuckets     = []float64{.001, .005, .01, .025, .05, .1, .25, .5, 1, 5}
	DefaultCountBuckets          = []float64{0, 1, 2, 5, 10, 20, 50, 100}
)

// NewAppMetrics registers all metrics and returns the AppMetrics struct.
func NewAppMetrics(collector MetricsCollector) *AppMetrics {
	m := &AppMetrics{}

	// HTTP
	m.HTTPRequestsTotal = collector.RegisterCounter("http_requests_total", "Total HTTP requests", "method", "path", "status_code")
	m.HTTPRequestDuration = collector.RegisterHistogram("http_request_duration_seconds", "HTTP request duration", DefaultHTTPDurationBuckets, "method", "path")
	m.HTTPActiveRequests = collector.RegisterGauge("http_active_requests", "Active HTTP requests", "method", "path")
	m.HTTPRateLimited = collector.RegisterCounter("http_rate_limited_total", "Requests rejected by the rate limiter", "path")

	// Compliance engine
	m.DeadlineComputeTotal = collector.RegisterCounter("deadline_compute_total", "Deadline set computations", "stage", "status")
	m.DeadlineComputeDuration = collector.RegisterHistogram("deadline_compute_duration_seconds", "Deadline set computation duration", DefaultEngineDurationBuckets, "stage")
	m.DeadlinesGenerated = collector.RegisterHistogram("deadlines_generated_count", "Deadlines generated per computation", DefaultCountBuckets, "stage")
	m.AlertsEmittedTotal = collector.RegisterCounter("alerts_emitted_total", "Alerts emitted", "severity", "alert_type")
	m.OverdueDeadlines = collector.RegisterGauge("overdue_deadlines", "Currently overdue deadlines", "filing_type")
	m.ChecklistProgress = collector.RegisterGauge("checklist_progress_ratio", "Checklist completion ratio", "filing_type")

	// Filings index
	m.EdgarRequestsTotal = collector.RegisterCounter("edgar_requests_total", "Filings index requests", "endpoint", "status")
	m.EdgarRequestDuration = collector.RegisterHistogram("edgar_request_duration_seconds", "Filings index request duration", DefaultHTTPDurationBuckets, "endpoint")

	// Infrastructure
	m.DBConnectionPoolSize = collector.RegisterGauge("db_pool_size", "Database connection pool size", "db")
	m.DBConnectionPoolActive = collector.RegisterGauge("db_pool_active", "Database active connections", "db")
	m.DBQueryDuration = collector.RegisterHistogram("db_query_duration_seconds", "Database query duration", DefaultDBDurationBuckets, "db", "operation")
	m.CacheHitsTotal = collector.RegisterCounter("cache_hits_total", "Cache hits", "cache")
	m.CacheMissesTotal = collector.RegisterCounter("cache_misses_total", "Cache misses", "cache")
	m.KafkaPublishTotal = collector.RegisterCounter("kafka_publish_total", "Kafka messages published", "topic", "status")
	m.KafkaPublishDuration = collector.RegisterHistogram("kafka_publish_duration_seconds", "Kafka publish duration", DefaultHTTPDurationBuckets, "topic")

	// System health
	m.ServiceUptime = collector.RegisterGauge("service_uptime_seconds", "Service uptime", "service")
	m.HealthCheckStatus = collector.RegisterGauge("health_check_status", "Health check status (1=up, 0=down)", "component")
	m.ErrorsTotal = collector.RegisterCounter("errors_total", "Total errors", "component", "error_type")

	return m
}

// Helpers

func RecordHTTPRequest(metrics *AppMetrics, method, path string, statusCode int, duration time.Duration) {
	status := fmt.Sprintf("%d", statusCode)
	metrics.HTTPRequestsTotal.WithLabelValues(method, path, status).Inc()
	metrics.HTTPRequestDuration.WithLabelValues(method, path).Observe(duration.Seconds())
}

func RecordDeadlineCompute(metrics *AppMetrics, stage string, generated int, duration time.Duration, err error) {
	status := "success"
	if err != nil {
		status = "failure"
	}
	metrics.DeadlineComputeTotal.WithLabelValues(stage, status).Inc()
	metrics.DeadlineComputeDuration.WithLabelValues(stage).Observe(duration.Seconds())
	if err == nil {
		metrics.DeadlinesGenerated.WithLabelValues(stage).Observe(float64(generated))
	}
}

func RecordAlert(metrics *AppMetrics, severity, alertType string) {
	metrics.AlertsEmittedTotal.WithLabelValues(severity, alertType).Inc()
}

func RecordDBQuery(metrics *AppMetrics, db, operation string, duration time.Duration, err error) {
	metrics.DBQueryDuration.WithLabelValues(db, operation).Observe(duration.Seconds())
	if err != nil {
		metrics.ErrorsTotal.WithLabelValues(db, "query_error").Inc()
	}
}

func RecordCacheAccess(metrics *AppMetrics, cache string, hit bool) {
	if hit {
		metrics.CacheHitsTotal.WithLabelValues(cache).Inc()
	} else {
		metrics.CacheMissesTotal.WithLabelValues(cache).Inc()
	}
}

func RecordKafkaPublish(metrics *AppMetrics, topic string, duration time.Duration, err error) {
	status := "success"
	if err != nil {
		status = "failure"
	}
	metrics.KafkaPublishTotal.WithLabelValues(topic, status).Inc()
	metrics.KafkaPublishDuration.WithLabelValues(topic).Observe(duration.Seconds())
}
