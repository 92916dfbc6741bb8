package main

import (
	"context"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"filmorate-backend/internal/shared/middleware"
	"filmorate-backend/internal/shared/response"
	"filmorate-backend/pkg/container"
)

func SetupRouter(c *container.Container) *gin.Engine {
	router := gin.New()

	// Global middlewares
	router.Use(
		middleware.Recovery(),
		middleware.RequestID(),
		middleware.Logger(),
	)

	v1 := router.Group("/api/v1")
	{
		v1.GET("/health", healthCheckHandler(c))

		setupFilmRoutes(v1, c)
		setupUserRoutes(v1, c)
		setupReferenceRoutes(v1, c)
	}

	return router
}

// ========================================
// FILM ROUTES
// ========================================
func setupFilmRoutes(v1 *gin.RouterGroup, c *container.Container) {
	films := v1.Group("/films")
	{
		films.GET("", c.FilmHandler.ListFilms)
		films.POST("", c.FilmHandler.CreateFilm)
		films.PUT("", c.FilmHandler.UpdateFilm)
		films.GET("/popular", c.FilmHandler.Popular)
		films.GET("/:id", c.FilmHandler.GetFilm)
		films.GET("/:id/likes", c.FilmHandler.Likers)
		films.PUT("/:id/like/:userId", c.FilmHandler.AddLike)
		films.DELETE("/:id/like/:userId", c.FilmHandler.RemoveLike)
	}
}

// ========================================
// USER ROUTES
// ========================================
func setupUserRoutes(v1 *gin.RouterGroup, c *container.Container) {
	users := v1.Group("/users")
	{
		users.GET("", c.UserHandler.ListUsers)
		users.POST("", c.UserHandler.CreateUser)
		users.PUT("", c.UserHandler.UpdateUser)
		users.GET("/:id", c.UserHandler.GetUser)
		users.GET("/:id/friends", c.UserHandler.Friends)
		users.GET("/:id/friends/common/:otherId", c.UserHandler.CommonFriends)
		users.PUT("/:id/friends/:friendId", c.UserHandler.AddFriend)
		users.DELETE("/:id/friends/:friendId", c.UserHandler.RemoveFriend)
	}
}

// ========================================
// REFERENCE ROUTES (genres, mpa)
// ========================================
func setupReferenceRoutes(v1 *gin.RouterGroup, c *container.Container) {
	v1.GET("/genres", c.ReferenceHandler.ListGenres)
	v1.GET("/genres/:id", c.ReferenceHandler.GetGenre)
	v1.GET("/mpa", c.ReferenceHandler.ListMpa)
	v1.GET("/mpa/:id", c.ReferenceHandler.GetMpa)
}

func healthCheckHandler(c *container.Container) gin.HandlerFunc {
	return func(ctx *gin.Context) {
		checkCtx, cancel := context.WithTimeout(ctx.Request.Context(), 3*time.Second)
		defer cancel()

		status := c.HealthStatus(checkCtx)
		if !c.Healthy(status) {
			response.ErrorWithDetails(ctx, http.StatusServiceUnavailable, "UNHEALTHY", "service degraded", status)
			return
		}
		response.Success(ctx, http.StatusOK, status)
	}
}
