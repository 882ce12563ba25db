package main

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"promptvault-backend/internal/shared/middleware"
	"promptvault-backend/pkg/container"
)

func SetupRouter(c *container.Container) *gin.Engine {
	router := gin.New()

	// Global middlewares
	router.Use(
		middleware.Recovery(),
		middleware.RequestID(),
		middleware.Logger(),
		middleware.CORS(),
	)

	v1 := router.Group("/api/v1")
	{
		v1.GET("/health", healthCheckHandler(c))

		setupPromptRoutes(v1, c)
		setupTagRoutes(v1, c)
		setupUploadRoutes(v1, c)
	}

	return router
}

// ========================================
// PROMPT ROUTES
// ========================================
func setupPromptRoutes(v1 *gin.RouterGroup, c *container.Container) {
	jwtSecret := c.Config.JWT.Secret

	prompts := v1.Group("/prompts")
	{
		// The collection listing serves both anonymous and signed-in
		// callers; visibility is resolved per request.
		prompts.GET("", middleware.OptionalAuth(jwtSecret), c.PromptHandler.ListPrompts)

		prompts.POST("", middleware.Auth(jwtSecret), c.PromptHandler.CreatePrompt)
		prompts.GET("/:id", middleware.Auth(jwtSecret), c.PromptHandler.GetPrompt)
		prompts.POST("/:id", middleware.Auth(jwtSecret), c.PromptHandler.UpdatePrompt)
		prompts.PUT("/:id", middleware.Auth(jwtSecret), c.PromptHandler.UpdatePrompt)
		prompts.DELETE("/:id", middleware.Auth(jwtSecret), c.PromptHandler.DeletePrompt)
		prompts.POST("/:id/share", middleware.Auth(jwtSecret), c.PromptHandler.SharePrompt)
	}

	// Public share link, no auth.
	v1.GET("/share/:id", c.PromptHandler.GetSharedPrompt)
}

// ========================================
// TAG ROUTES
// ========================================
func setupTagRoutes(v1 *gin.RouterGroup, c *container.Container) {
	tags := v1.Group("/tags")
	{
		tags.GET("", c.TagHandler.ListTags)
		tags.POST("", c.TagHandler.CreateTag)
	}
}

// ========================================
// UPLOAD ROUTES
// ========================================
func setupUploadRoutes(v1 *gin.RouterGroup, c *container.Container) {
	upload := v1.Group("/upload")
	upload.Use(middleware.Auth(c.Config.JWT.Secret))
	{
		upload.POST("", c.AssetHandler.Upload)
		upload.GET("", c.AssetHandler.List)
		upload.DELETE("", c.AssetHandler.Remove)
	}
}

// ========================================
// HEALTH CHECK
// ========================================
func healthCheckHandler(c *container.Container) gin.HandlerFunc {
	return func(ctx *gin.Context) {
		checks := gin.H{}
		healthy := true

		if err := c.DB.HealthCheck(ctx.Request.Context()); err != nil {
			checks["database"] = err.Error()
			healthy = false
		} else {
			checks["database"] = "ok"
		}

		if err := c.Cache.Ping(ctx.Request.Context()); err != nil {
			checks["cache"] = err.Error()
			healthy = false
		} else {
			checks["cache"] = "ok"
		}

		if err := c.Storage.HealthCheck(ctx.Request.Context()); err != nil {
			checks["storage"] = err.Error()
			healthy = false
		} else {
			checks["storage"] = "ok"
		}

		status := http.StatusOK
		overall := "healthy"
		if !healthy {
			status = http.StatusServiceUnavailable
			overall = "degraded"
		}

		ctx.JSON(status, gin.H{
			"status":  overall,
			"version": c.Config.App.Version,
			"checks":  checks,
		})
	}
}
