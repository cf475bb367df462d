package api

import (
	"context"
	"time"

	"github.com/gin-gonic/gin"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"

	"github.com/guttosm/stabletide/internal/metrics"
	"github.com/guttosm/stabletide/internal/middleware"
)

// DefaultRequestTimeout bounds request handling when RouterOptions leaves it unset.
const DefaultRequestTimeout = 10 * time.Second

// RouterOptions tunes NewRouter.
type RouterOptions struct {
	// RequestTimeout is the deadline put on every request context.
	RequestTimeout time.Duration
	// Limiter guards POST /query; nil disables rate limiting.
	Limiter *middleware.RateLimiter
}

// NewRouter builds the gin engine.
//
//   - Global middlewares: RequestID, RequestLogger, RecoveryMiddleware, ErrorHandler.
//   - A per-request context deadline.
//   - POST /query (rate limited), GET / and GET /api/v1/report.
//   - GET /metrics and GET /swagger/*any.
//
// Health endpoints are registered by app.InitializeApp.
func NewRouter(handler *Handler, opts RouterOptions) *gin.Engine {
	router := gin.New()

	// ─── Middlewares ───────────────────────────────
	router.Use(
		middleware.RequestID(),
		middleware.RequestLogger(),
		middleware.RecoveryMiddleware(),
		middleware.ErrorHandler,
	)

	// ─── Timeout ──────────────────────────────────
	timeout := opts.RequestTimeout
	if timeout <= 0 {
		timeout = DefaultRequestTimeout
	}
	router.Use(func(c *gin.Context) {
		ctx, cancel := context.WithTimeout(c.Request.Context(), timeout)
		defer cancel()
		c.Request = c.Request.WithContext(ctx)
		c.Next()
	})

	// ─── Swagger / metrics ────────────────────────
	router.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))
	router.GET("/metrics", gin.WrapH(metrics.Handler()))

	// ─── Query + report ───────────────────────────
	submit := []gin.HandlerFunc{handler.SubmitQuery}
	if opts.Limiter != nil {
		submit = append([]gin.HandlerFunc{opts.Limiter.Handler()}, submit...)
	}
	router.POST("/query", submit...)
	router.GET("/", handler.GetReport)

	v1 := router.Group("/api/v1")
	{
		v1.GET("/report", handler.GetReport)
	}

	return router
}
