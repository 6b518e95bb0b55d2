package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/turtacn/SPAC-Sentinel/internal/domain/filing"
	"github.com/turtacn/SPAC-Sentinel/internal/domain/spac"
)

// RegistryHandler exposes the static rule catalog: filing definitions,
// filer-status tiers, blackout windows, and lifecycle statuses.
type RegistryHandler struct{}

// NewRegistryHandler constructs the handler.
func NewRegistryHandler() *RegistryHandler {
	return &RegistryHandler{}
}

// ListFilings handles GET /api/v1/registry/filings.
func (h *RegistryHandler) ListFilings(c *gin.Context) {
	defs := filing.AllDefinitions()
	if category := c.Query("category"); category != "" {
		defs = filing.DefinitionsByCategory(filing.FilingCategory(category))
	}
	c.JSON(http.StatusOK, gin.H{"filings": defs, "count": len(defs)})
}

// GetFiling handles GET /api/v1/registry/filings/:type.
func (h *RegistryHandler) GetFiling(c *gin.Context) {
	def, err := filing.DefinitionFor(filing.FilingType(c.Param("type")))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, def)
}

// ListFilerStatuses handles GET /api/v1/registry/filer-statuses.
func (h *RegistryHandler) ListFilerStatuses(c *gin.Context) {
	tiers := make([]filing.FilerStatusTier, 0, len(filing.AllFilerStatuses))
	for _, status := range filing.AllFilerStatuses {
		tier, err := filing.TierFor(status)
		if err != nil {
			respondError(c, err)
			return
		}
		tiers = append(tiers, tier)
	}
	c.JSON(http.StatusOK, gin.H{"filer_statuses": tiers, "count": len(tiers)})
}

// ListBlackouts handles GET /api/v1/registry/blackouts.
func (h *RegistryHandler) ListBlackouts(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"blackouts": filing.StandardBlackoutPeriods,
		"count":     len(filing.StandardBlackoutPeriods),
	})
}

// ListStatuses handles GET /api/v1/registry/statuses.
func (h *RegistryHandler) ListStatuses(c *gin.Context) {
	type statusView struct {
		Status   spac.LifecycleStatus `json:"status"`
		Name     string               `json:"name"`
		Terminal bool                 `json:"terminal"`
	}
	out := make([]statusView, 0, len(spac.AllStatuses))
	for _, status := range spac.AllStatuses {
		name, err := status.Name()
		if err != nil {
			respondError(c, err)
			return
		}
		out = append(out, statusView{Status: status, Name: name, Terminal: status.IsTerminal()})
	}
	c.JSON(http.StatusOK, gin.H{"statuses": out, "count": len(out)})
}
