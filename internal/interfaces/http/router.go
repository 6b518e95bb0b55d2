// Package http wires the gin route tree and the HTTP server lifecycle.
package http

import (
	"github.com/gin-gonic/gin"

	"github.com/turtacn/SPAC-Sentinel/internal/infrastructure/monitoring/logging"
	"github.com/turtacn/SPAC-Sentinel/internal/infrastructure/monitoring/prometheus"
	"github.com/turtacn/SPAC-Sentinel/internal/interfaces/http/handlers"
	"github.com/turtacn/SPAC-Sentinel/internal/interfaces/http/middleware"
)

// RouterConfig aggregates the handler and middleware dependencies for the
// complete route tree.
type RouterConfig struct {
	ComplianceHandler *handlers.ComplianceHandler
	ChecklistHandler  *handlers.ChecklistHandler
	RegistryHandler   *handlers.RegistryHandler
	FilingsHandler    *handlers.FilingsHandler
	HealthHandler     *handlers.HealthHandler

	RateLimiter     *middleware.ClientRateLimiter
	RateLimitConfig middleware.RateLimitConfig
	CORSConfig      middleware.CORSConfig

	Logger  logging.Logger
	Metrics *prometheus.AppMetrics
	// MetricsHandler serves GET /metrics when non-nil.
	Collector prometheus.MetricsCollector

	Mode string
}

// NewRouter constructs the gin engine with global middleware, public probes,
// and the versioned API group.
func NewRouter(cfg RouterConfig) *gin.Engine {
	if cfg.Mode != "" {
		gin.SetMode(cfg.Mode)
	}
	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(middleware.RequestID())
	if cfg.Logger != nil {
		r.Use(middleware.RequestLogger(cfg.Logger, cfg.Metrics))
	}
	r.Use(middleware.CORS(cfg.CORSConfig))
	if cfg.RateLimiter != nil {
		r.Use(middleware.RateLimit(cfg.RateLimiter, cfg.RateLimitConfig))
	}

	if cfg.HealthHandler != nil {
		r.GET("/healthz", cfg.HealthHandler.Liveness)
		r.GET("/readyz", cfg.HealthHandler.Readiness)
	}
	if cfg.Collector != nil {
		r.GET("/metrics", gin.WrapH(cfg.Collector.Handler()))
	}

	api := r.Group("/api/v1")
	{
		if cfg.ComplianceHandler != nil {
			api.GET("/deadlines", cfg.ComplianceHandler.ListDeadlines)
			api.GET("/alerts", cfg.ComplianceHandler.ListAlerts)
			api.GET("/dashboard", cfg.ComplianceHandler.GetDashboard)
			api.GET("/spacs/:id/deadlines", cfg.ComplianceHandler.GetSpacDeadlines)
		}
		if cfg.ChecklistHandler != nil {
			api.GET("/checklists/:filingType", cfg.ChecklistHandler.GetTemplate)
			api.GET("/spacs/:id/checklists/:filingType", cfg.ChecklistHandler.GetProgress)
		}
		if cfg.RegistryHandler != nil {
			registry := api.Group("/registry")
			registry.GET("/filings", cfg.RegistryHandler.ListFilings)
			registry.GET("/filings/:type", cfg.RegistryHandler.GetFiling)
			registry.GET("/filer-statuses", cfg.RegistryHandler.ListFilerStatuses)
			registry.GET("/blackouts", cfg.RegistryHandler.ListBlackouts)
			registry.GET("/statuses", cfg.RegistryHandler.ListStatuses)
		}
		if cfg.FilingsHandler != nil {
			api.GET("/filings/:cik", cfg.FilingsHandler.RecentFilings)
		}
	}

	return r
}
