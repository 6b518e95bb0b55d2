// Package handlers implements the HTTP API surface.
package handlers

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/turtacn/SPAC-Sentinel/pkg/errors"
)

// ErrorResponse is the standard error body.
type ErrorResponse struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

// respondError maps application errors onto HTTP statuses using their module
// error code.  Server-side errors are masked.
func respondError(c *gin.Context, err error) {
	code := errors.GetCode(err)
	status := errors.HTTPStatusForCode(code)

	msg := err.Error()
	if status >= http.StatusInternalServerError {
		msg = errors.DefaultMessageForCode(code)
	}
	c.JSON(status, ErrorResponse{Code: string(code), Message: msg})
}

// queryInt parses an integer query parameter, returning def when absent or
// malformed.
func queryInt(c *gin.Context, name string, def int) int {
	raw := c.Query(name)
	if raw == "" {
		return def
	}
	v, err := strconv.Atoi(raw)
	if err != nil || v < 0 {
		return def
	}
	return v
}
