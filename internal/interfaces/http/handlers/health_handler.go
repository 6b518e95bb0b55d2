package handlers

import (
	"context"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
)

// HealthChecker verifies one dependency.
type HealthChecker func(ctx context.Context) error

// HealthHandler serves liveness and readiness probes.
type HealthHandler struct {
	checkers map[string]HealthChecker
	started  time.Time
}

// NewHealthHandler constructs the handler.  checkers maps dependency name to
// its probe; nil probes are skipped.
func NewHealthHandler(checkers map[string]HealthChecker) *HealthHandler {
	filtered := make(map[string]HealthChecker, len(checkers))
	for name, check := range checkers {
		if check != nil {
			filtered[name] = check
		}
	}
	return &HealthHandler{checkers: filtered, started: time.Now()}
}

// Liveness handles GET /healthz.  Always healthy while the process serves.
func (h *HealthHandler) Liveness(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"status": "ok",
		"uptime": time.Since(h.started).String(),
	})
}

// Readiness handles GET /readyz with a bounded probe of every dependency.
func (h *HealthHandler) Readiness(c *gin.Context) {
	ctx, cancel := context.WithTimeout(c.Request.Context(), 3*time.Second)
	defer cancel()

	results := make(map[string]string, len(h.checkers))
	healthy := true
	for name, check := range h.checkers {
		if err := check(ctx); err != nil {
			results[name] = err.Error()
			healthy = false
		} else {
			results[name] = "ok"
		}
	}

	status := http.StatusOK
	overall := "ok"
	if !healthy {
		status = http.StatusServiceUnavailable
		overall = "degraded"
	}
	c.JSON(status, gin.H{"status": overall, "dependencies": results})
}
