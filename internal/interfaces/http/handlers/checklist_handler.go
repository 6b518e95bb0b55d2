package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/turtacn/SPAC-Sentinel/internal/application/compliance"
	"github.com/turtacn/SPAC-Sentinel/internal/domain/filing"
)

// ChecklistHandler serves checklist templates and per-entity progress.
type ChecklistHandler struct {
	service compliance.Service
}

// NewChecklistHandler constructs the handler.
func NewChecklistHandler(service compliance.Service) *ChecklistHandler {
	return &ChecklistHandler{service: service}
}

// GetTemplate handles GET /api/v1/checklists/:filingType.
func (h *ChecklistHandler) GetTemplate(c *gin.Context) {
	filingType := filing.FilingType(c.Param("filingType"))
	tmpl, err := h.service.GetChecklist(c.Request.Context(), filingType)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, tmpl)
}

// GetProgress handles GET /api/v1/spacs/:id/checklists/:filingType.
func (h *ChecklistHandler) GetProgress(c *gin.Context) {
	filingType := filing.FilingType(c.Param("filingType"))
	view, err := h.service.GetChecklistProgress(c.Request.Context(), c.Param("id"), filingType)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, view)
}
