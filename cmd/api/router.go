package main

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"blognest-backend/internal/shared/middleware"
	"blognest-backend/internal/shared/response"
	"blognest-backend/pkg/container"
)

func SetupRouter(c *container.Container) *gin.Engine {
	router := gin.New()

	router.Use(
		middleware.Recovery(),
		middleware.RequestID(),
		middleware.Logger(),
		middleware.CORS(),
	)

	v1 := router.Group("/api/v1")
	{
		v1.GET("/health", healthCheckHandler(c))

		setupPostRoutes(v1, c)
		setupProfileRoutes(v1, c)
		setupAdminRoutes(v1, c)
	}

	return router
}

// Public post reads.
func setupPostRoutes(v1 *gin.RouterGroup, c *container.Container) {
	posts := v1.Group("/posts")
	{
		posts.GET("", c.PostHandler.ListPublished)
		posts.GET("/tags", c.PostHandler.AllTags)
		posts.GET("/:key", c.PostHandler.Get)
	}
}

// Public profile reads plus the authenticated "me" surface.
func setupProfileRoutes(v1 *gin.RouterGroup, c *container.Container) {
	v1.GET("/profiles/:uid", c.ProfileHandler.Get)

	me := v1.Group("/me")
	me.Use(middleware.Auth(c.Config.Auth.JWTSecret))
	{
		me.GET("/profile", c.ProfileHandler.GetMe)
		me.PUT("/profile", c.ProfileHandler.UpdateMe)
	}
}

// Authoring surface: admin allow-list only.
func setupAdminRoutes(v1 *gin.RouterGroup, c *container.Container) {
	admin := v1.Group("/admin")
	admin.Use(middleware.Auth(c.Config.Auth.JWTSecret), middleware.Admin(c.Session))
	{
		admin.GET("/posts", c.PostHandler.ListMine)
		admin.POST("/posts", c.PostHandler.Create)
		admin.PUT("/posts/:id", c.PostHandler.Update)
		admin.DELETE("/posts/:id", c.PostHandler.Delete)
		admin.POST("/posts/:id/publish", c.PostHandler.Publish)
		admin.POST("/posts/:id/unpublish", c.PostHandler.Unpublish)

		admin.POST("/uploads", c.UploadHandler.Upload)
		admin.POST("/uploads/batch", c.UploadHandler.UploadBatch)
	}
}

func healthCheckHandler(c *container.Container) gin.HandlerFunc {
	return func(ctx *gin.Context) {
		dbStatus := "ok"
		if err := c.DB.HealthCheck(ctx.Request.Context()); err != nil {
			dbStatus = err.Error()
		}
		cacheStatus := "ok"
		if err := c.Cache.Ping(ctx.Request.Context()); err != nil {
			cacheStatus = err.Error()
		}

		status := http.StatusOK
		if dbStatus != "ok" {
			status = http.StatusServiceUnavailable
		}

		response.Success(ctx, status, gin.H{
			"name":        c.Config.App.Name,
			"version":     c.Config.App.Version,
			"environment": c.Config.App.Environment,
			"database":    dbStatus,
			"cache":       cacheStatus,
		})
	}
}
