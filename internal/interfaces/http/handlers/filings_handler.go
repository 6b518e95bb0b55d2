package handlers

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/turtacn/SPAC-Sentinel/internal/infrastructure/edgar"
)

// FilingsIndex is the read-only submissions-index collaborator.
type FilingsIndex interface {
	RecentFilings(ctx context.Context, cik string) ([]edgar.Filing, error)
}

// FilingsHandler surfaces the public filings index next to computed
// deadlines.  Display only; nothing downstream depends on it.
type FilingsHandler struct {
	index FilingsIndex
}

// NewFilingsHandler constructs the handler.
func NewFilingsHandler(index FilingsIndex) *FilingsHandler {
	return &FilingsHandler{index: index}
}

// RecentFilings handles GET /api/v1/filings/:cik.
func (h *FilingsHandler) RecentFilings(c *gin.Context) {
	filings, err := h.index.RecentFilings(c.Request.Context(), c.Param("cik"))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"filings": filings, "count": len(filings)})
}
