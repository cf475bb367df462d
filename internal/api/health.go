package api

import (
	"context"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
)

const readyTimeout = 2 * time.Second

// HealthHandler provides liveness and readiness endpoints.
//
//   - /healthz: always 200 while the process serves requests.
//   - /readyz: 200 when the cache backend and every extra check answer, 503 otherwise.
type HealthHandler struct {
	cachePing func(ctx context.Context) error
	checks    []readyCheck
}

type readyCheck struct {
	name string
	ping func(ctx context.Context) error
}

// NewHealthHandler takes the cache backend's Ping; nil means always ready.
func NewHealthHandler(cachePing func(ctx context.Context) error) *HealthHandler {
	return &HealthHandler{cachePing: cachePing}
}

// WithCheck adds a named dependency to /readyz.
func (h *HealthHandler) WithCheck(name string, ping func(ctx context.Context) error) *HealthHandler {
	h.checks = append(h.checks, readyCheck{name: name, ping: ping})
	return h
}

// Register mounts /healthz and /readyz on r.
func (h *HealthHandler) Register(r *gin.Engine) {
	r.GET("/healthz", h.Healthz)
	r.GET("/readyz", h.Readyz)
}

// Healthz godoc
// @Summary      Liveness probe
// @Tags         health
// @Produce      json
// @Success      200  {object}  map[string]string
// @Router       /healthz [get]
func (h *HealthHandler) Healthz(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}

// Readyz godoc
// @Summary      Readiness probe
// @Description  Ready when the cache backend (and the analysis service, if enabled) is reachable
// @Tags         health
// @Produce      json
// @Success      200  {object}  map[string]string
// @Failure      503  {object}  map[string]string
// @Router       /readyz [get]
func (h *HealthHandler) Readyz(c *gin.Context) {
	ctx, cancel := context.WithTimeout(c.Request.Context(), readyTimeout)
	defer cancel()

	checks := h.checks
	if h.cachePing != nil {
		checks = append([]readyCheck{{name: "cache", ping: h.cachePing}}, checks...)
	}
	for _, chk := range checks {
		if err := chk.ping(ctx); err != nil {
			c.JSON(http.StatusServiceUnavailable, gin.H{"status": "degraded", "check": chk.name, "error": err.Error()})
			return
		}
	}
	c.JSON(http.StatusOK, gin.H{"status": "ready"})
}
