// Package handlers implements the HTTP surface: the TMDB proxy used by the
// in-browser search and the server-rendered pages.
package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/amaumene/mainstream/internal/config"
	"github.com/amaumene/mainstream/internal/middleware"
	"github.com/amaumene/mainstream/internal/services"
	"github.com/amaumene/mainstream/pkg/ratelimiter"
)

// Handler handles HTTP requests for the site.
type Handler struct {
	services *services.Container
	config   *config.Config
	limiter  ratelimiter.RateLimiter
}

// New creates a new Handler with the provided services and configuration.
// Proxy calls are rate limited per client IP unless cfg.ProxyRateLimit is 0.
func New(services *services.Container, config *config.Config) *Handler {
	h := &Handler{
		services: services,
		config:   config,
	}
	if config.ProxyRateLimit > 0 {
		h.limiter = ratelimiter.NewKeyed(config.ProxyRateLimit, config.ProxyRateBurst)
	}
	return h
}

// Limiter exposes the proxy limiter so idle clients can be swept.
func (h *Handler) Limiter() *ratelimiter.KeyedLimiter {
	kl, _ := h.limiter.(*ratelimiter.KeyedLimiter)
	return kl
}

// RegisterRoutes registers all HTTP routes. Templates must be loaded on r
// first, see LoadTemplates.
func (h *Handler) RegisterRoutes(r *gin.Engine) {
	r.GET("/healthz", h.handleHealth)

	// Proxy for browser-side search
	api := r.Group("/api/tmdb", middleware.RateLimit(h.limiter))
	api.GET("/*path", h.handleProxy)

	// Pages
	r.GET("/", h.handleHome)
	r.GET("/filmes", h.handleMovies)
	r.GET("/series", h.handleSeries)
	r.GET("/catalogo/:type", h.handleCatalog)
	r.GET("/assistir/:slug", h.handleWatch)
	r.GET("/tv/:id", h.handleTV)

	registerStatic(r)
	r.NoRoute(h.handleNotFound)
}

func (h *Handler) handleHealth(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"status":     "ok",
		"credential": h.services.TMDB.HasCredential(),
	})
}
