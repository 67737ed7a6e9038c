package api

import (
	"context"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"
	"github.com/use-agent/prospects/api/handler"
	"github.com/use-agent/prospects/api/middleware"
	"github.com/use-agent/prospects/cache"
	"github.com/use-agent/prospects/config"
)

// NewRouter creates a configured Gin engine with all routes and middleware.
// ctx bounds the middleware's background goroutines.
//
// Middleware chain:
//
//	Global:  Recovery → Logger
//	API:     Auth (if enabled) → RateLimit
//
// Health endpoint is intentionally outside auth so monitoring probes always work.
func NewRouter(ctx context.Context, run handler.Runner, cc *cache.Cache, cfg *config.Config, startTime time.Time) *gin.Engine {
	gin.SetMode(cfg.Server.Mode)

	// Request bodies share the roster's `validate` struct tags.
	if v, ok := binding.Validator.Engine().(*validator.Validate); ok {
		v.SetTagName("validate")
	}

	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(gin.Logger())

	v1 := r.Group("/api/v1")

	// Health: no auth required.
	v1.GET("/health", handler.Health(cc, startTime))

	// Protected group: auth + rate limit.
	protected := v1.Group("")
	if cfg.Auth.Enabled {
		protected.Use(middleware.Auth(cfg.Auth.APIKeys))
	}
	protected.Use(middleware.RateLimit(ctx, cfg.RateLimit))

	protected.POST("/players", handler.Players(run, cc, cfg.Pipeline))
	protected.POST("/profile", handler.Profile(run, cc, cfg.Pipeline))

	return r
}
