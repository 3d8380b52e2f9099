package main

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"library-backend/internal/shared/middleware"
	"library-backend/internal/shared/response"
	"library-backend/pkg/container"
)

// SetupRouter wires middleware and routes.
func SetupRouter(c *container.Container) *gin.Engine {
	router := gin.New()

	router.Use(middleware.RequestID())
	router.Use(middleware.Logger())
	router.Use(middleware.Recovery())

	identity := middleware.NewIdentityResolver(c.Tokens, c.UserRepo, c.BookRepo)

	router.GET("/health", func(ctx *gin.Context) {
		if err := c.DB.HealthCheck(ctx.Request.Context()); err != nil {
			response.ErrorResponse(ctx, http.StatusServiceUnavailable, "UNHEALTHY", "database unreachable")
			return
		}
		if err := c.Cache.Ping(ctx.Request.Context()); err != nil {
			response.ErrorResponse(ctx, http.StatusServiceUnavailable, "UNHEALTHY", "cache unreachable")
			return
		}
		response.Success(ctx, http.StatusOK, gin.H{
			"status":  "ok",
			"version": c.Config.App.Version,
		})
	})

	v1 := router.Group("/api/v1")
	v1.Use(identity.Resolve())
	{
		auth := v1.Group("/auth")
		{
			auth.POST("/register", c.UserHandler.Register)
			auth.POST("/login", c.UserHandler.Login)
		}

		v1.GET("/me", middleware.RequireAuth(), c.UserHandler.Me)

		v1.GET("/books", c.BookHandler.List)
		v1.POST("/books", middleware.RequireAuth(), c.LibraryHandler.AddBook)

		v1.GET("/authors", c.AuthorHandler.List)
		v1.PATCH("/authors/:id", middleware.RequireAuth(), c.LibraryHandler.EditAuthor)

		subs := v1.Group("/subscriptions")
		{
			subs.GET("/book-added", c.LibraryHandler.SubscribeBookAdded)
			subs.GET("/author-edited", c.LibraryHandler.SubscribeAuthorEdited)
		}
	}

	return router
}
