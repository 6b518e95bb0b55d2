package handlers

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/turtacn/SPAC-Sentinel/internal/application/compliance"
	"github.com/turtacn/SPAC-Sentinel/internal/domain/spac"
	"github.com/turtacn/SPAC-Sentinel/pkg/errors"
)

// ComplianceHandler serves deadline, alert, and dashboard queries.
type ComplianceHandler struct {
	service compliance.Service
}

// NewComplianceHandler constructs the handler.
func NewComplianceHandler(service compliance.Service) *ComplianceHandler {
	return &ComplianceHandler{service: service}
}

// GetSpacDeadlines handles GET /api/v1/spacs/:id/deadlines.
func (h *ComplianceHandler) GetSpacDeadlines(c *gin.Context) {
	items, err := h.service.GetDeadlines(c.Request.Context(), c.Param("id"))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"deadlines": items, "count": len(items)})
}

// ListDeadlines handles GET /api/v1/deadlines.  Optional "status" holds a
// comma-separated list of lifecycle statuses.
func (h *ComplianceHandler) ListDeadlines(c *gin.Context) {
	filter, err := parseListFilter(c)
	if err != nil {
		respondError(c, err)
		return
	}

	items, err := h.service.ListDeadlines(c.Request.Context(), filter)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"deadlines": items, "count": len(items)})
}

// ListAlerts handles GET /api/v1/alerts.
func (h *ComplianceHandler) ListAlerts(c *gin.Context) {
	filter, err := parseListFilter(c)
	if err != nil {
		respondError(c, err)
		return
	}

	alerts, err := h.service.GetAlerts(c.Request.Context(), filter)
	if err != nil {
		respondError(c, err)
		return
	}

	if severity := c.Query("severity"); severity != "" {
		want := compliance.AlertSeverity(strings.ToUpper(severity))
		filtered := make([]compliance.DeadlineAlert, 0, len(alerts))
		for _, a := range alerts {
			if a.Severity == want {
				filtered = append(filtered, a)
			}
		}
		alerts = filtered
	}
	c.JSON(http.StatusOK, gin.H{"alerts": alerts, "count": len(alerts)})
}

// GetDashboard handles GET /api/v1/dashboard.
func (h *ComplianceHandler) GetDashboard(c *gin.Context) {
	dash, err := h.service.GetDashboard(c.Request.Context())
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, dash)
}

func parseListFilter(c *gin.Context) (spac.ListFilter, error) {
	filter := spac.ListFilter{
		Limit:  queryInt(c, "limit", 0),
		Offset: queryInt(c, "offset", 0),
	}
	if raw := c.Query("status"); raw != "" {
		for _, part := range strings.Split(raw, ",") {
			status := spac.LifecycleStatus(strings.ToUpper(strings.TrimSpace(part)))
			if !status.IsValid() {
				return spac.ListFilter{}, errors.New(errors.ErrCodeSpacStatusInvalid,
					"unknown lifecycle status: "+string(status))
			}
			filter.Statuses = append(filter.Statuses, status)
		}
	}
	return filter, nil
}
