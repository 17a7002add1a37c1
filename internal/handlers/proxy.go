package handlers

import (
	"fmt"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/amaumene/mainstream/internal/errors"
	"github.com/amaumene/mainstream/internal/models"
)

const proxyCacheControl = "public, max-age=3600"

// handleProxy forwards GET /api/tmdb/{path...}?{query} to TMDB with the
// server's API key appended, so the browser never sees the key.
func (h *Handler) handleProxy(c *gin.Context) {
	path := strings.Trim(c.Param("path"), "/")
	if path == "" {
		c.JSON(http.StatusBadRequest, models.ErrorResponse{Error: "missing TMDB path"})
		return
	}

	if !h.services.TMDB.HasCredential() {
		h.services.Logger.Errorf("[Proxy] TMDB API key not configured")
		c.JSON(http.StatusInternalServerError, models.ErrorResponse{Error: "API key not configured"})
		return
	}

	body, err := h.services.TMDB.FetchRaw(c.Request.Context(), path, c.Request.URL.RawQuery)
	if err != nil {
		status, msg := proxyError(err)
		h.services.Logger.Warnf("[Proxy] /%s failed: %v", path, err)
		c.JSON(status, models.ErrorResponse{Error: msg})
		return
	}

	c.Header("Cache-Control", proxyCacheControl)
	c.Data(http.StatusOK, "application/json; charset=utf-8", body)
}

func proxyError(err error) (int, string) {
	if status, ok := errors.IsUpstream(err); ok {
		return errors.HTTPStatus(err), fmt.Sprintf("TMDB API error: %d", status)
	}
	if errors.IsConfiguration(err) {
		return http.StatusInternalServerError, "API key not configured"
	}
	return http.StatusInternalServerError, "Failed to fetch from TMDB"
}
