package main

import (
	"context"
	"errors"
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"

	"gpevim-backend/internal/infrastructure/metrics"
	"gpevim-backend/internal/shared/middleware"
	"gpevim-backend/internal/shared/response"
	"gpevim-backend/pkg/container"
)

func SetupRouter(c *container.Container) *gin.Engine {
	router := gin.New()

	router.Use(
		middleware.RequestID(),
		middleware.ClientIP(),
		middleware.Logger(),
		middleware.Recovery(),
		middleware.CORS(),
	)

	// multipart parts beyond this are spooled to disk
	router.MaxMultipartMemory = c.Config.Upload.MaxBytes + 1<<20

	var write []gin.HandlerFunc
	if c.Config.Admin.AuthRequired {
		write = append(write, middleware.AdminAuth(c.JWTManager))
	}

	api := router.Group("/api")
	{
		api.GET("/health", healthCheckHandler(c))

		c.AuthHandler.RegisterRoutes(api)
		c.UploadHandler.RegisterRoutes(api, write...)
		c.PublicationHandler.RegisterRoutes(api, write...)
		c.MemberHandler.RegisterRoutes(api, write...)
	}

	router.GET("/metrics", metrics.Handler())

	if uploadDir := c.Config.Upload.Dir; uploadDir != "" {
		router.Static("/uploads", uploadDir)
	}

	router.NoRoute(noRouteHandler(newPages(c.Config.StaticDir)))

	return router
}

func noRouteHandler(site *pages) gin.HandlerFunc {
	return func(c *gin.Context) {
		path := c.Request.URL.Path
		if path == "/api" || strings.HasPrefix(path, "/api/") {
			response.NotFound(c, "Route not found")
			return
		}

		if c.Request.Method != http.MethodGet && c.Request.Method != http.MethodHead {
			response.NotFound(c, "Route not found")
			return
		}

		site.serve(c)
	}
}

// GET /api/health
func healthCheckHandler(appCtx *container.Container) gin.HandlerFunc {
	return func(c *gin.Context) {
		cfg := appCtx.Config
		status := http.StatusOK
		health := gin.H{
			"status":    "ok",
			"timestamp": time.Now().UTC().Format(time.RFC3339),
			"version":   cfg.App.Version,
			"store":     cfg.StoreDriver,
			"storage":   cfg.StorageDriver,
			"fallback":  cfg.FallbackEnabled,
		}
		services := gin.H{}

		ctx, cancel := context.WithTimeout(c.Request.Context(), 3*time.Second)
		defer cancel()

		err := appCtx.Ping(ctx)
		switch {
		case errors.Is(err, container.ErrNoDurableBackend):
			services["durable"] = "not_configured"
		case err != nil:
			services["durable"] = "unreachable"
			health["status"] = "degraded"
			status = http.StatusServiceUnavailable
			metrics.SetDurableBackendUp(false)
		default:
			services["durable"] = "ok"
			metrics.SetDurableBackendUp(true)
		}

		if appCtx.DB != nil {
			if stats, err := appCtx.DB.Stats(); err == nil {
				health["pool"] = stats
			}
		}

		if appCtx.Cache != nil {
			services["redis"] = "ok"
			if err := appCtx.Cache.Ping(ctx); err != nil {
				services["redis"] = "unreachable"
			}
		}

		health["services"] = services
		c.JSON(status, health)
	}
}
