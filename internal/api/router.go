package api

import (
	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"

	"meal-concierge/internal/logger"
)

// RouterConfig wires the HTTP surface.
type RouterConfig struct {
	Handler        *Handler
	Verifier       TokenVerifier
	Log            *logger.Logger
	AllowedOrigins []string
}

// NewRouter builds the gin engine.
func NewRouter(cfg RouterConfig) *gin.Engine {
	router := gin.New()
	router.Use(gin.Recovery(), RequestLogger(cfg.Log))

	if len(cfg.AllowedOrigins) > 0 {
		router.Use(cors.New(cors.Config{
			AllowOrigins: cfg.AllowedOrigins,
			AllowMethods: []string{"GET", "POST", "OPTIONS"},
			AllowHeaders: []string{"Authorization", "Content-Type"},
		}))
	}

	// Public
	router.GET("/healthcheck", HealthCheck)
	router.GET("/plan", cfg.Handler.Plan)
	router.GET("/seed", cfg.Handler.Seed)

	// Admin
	admin := router.Group("/admin")
	admin.Use(RequireAdmin(cfg.Verifier, cfg.Log))
	admin.POST("/catalog/reload", cfg.Handler.ReloadCatalog)
	admin.GET("/metrics", cfg.Handler.Metrics)

	return router
}
