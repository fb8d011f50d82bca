package main

import (
	"net/http"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"

	"artplatform-backend/internal/config"
	artisthandler "artplatform-backend/internal/domains/artist/handler"
	artworkhandler "artplatform-backend/internal/domains/artwork/handler"
	eventhandler "artplatform-backend/internal/domains/event/handler"
	userhandler "artplatform-backend/internal/domains/user/handler"
	"artplatform-backend/internal/infrastructure/database"
	"artplatform-backend/internal/shared/middleware"
	"artplatform-backend/pkg/cache"
	"artplatform-backend/pkg/jwt"
)

type routerDeps struct {
	cfg        *config.Config
	db         *database.PostgresDB
	cache      cache.Cache
	jwtManager *jwt.Manager
	events     *eventhandler.EventHandler
	artists    *artisthandler.ArtistHandler
	artworks   *artworkhandler.ArtworkHandler
	users      *userhandler.UserHandler
}

func setupRouter(deps routerDeps) *gin.Engine {
	router := gin.New()

	router.Use(middleware.RequestID())
	router.Use(middleware.Recovery())
	router.Use(middleware.Logger())
	router.Use(cors.New(cors.Config{
		AllowOrigins:     deps.cfg.App.CORSOrigins,
		AllowMethods:     []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Authorization"},
		ExposeHeaders:    []string{"Content-Disposition"},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}))

	router.GET("/health", func(c *gin.Context) {
		dbStatus := "ok"
		if err := deps.db.HealthCheck(c.Request.Context()); err != nil {
			dbStatus = "down"
		}
		cacheStatus := "ok"
		if err := deps.cache.Ping(c.Request.Context()); err != nil {
			cacheStatus = "down"
		}

		status := http.StatusOK
		if dbStatus != "ok" {
			status = http.StatusServiceUnavailable
		}
		c.JSON(status, gin.H{
			"status":   dbStatus,
			"cache":    cacheStatus,
			"version":  deps.cfg.App.Version,
			"database": dbStatus,
		})
	})

	v1 := router.Group("/v1")
	{
		// Public catalog
		v1.GET("/events", deps.events.List)
		v1.GET("/events/:id", deps.events.Get)
		v1.POST("/events/:id/attend", deps.events.Attend)

		v1.GET("/artists", deps.artists.List)
		v1.GET("/artists/:id", deps.artists.Get)

		v1.GET("/artworks", deps.artworks.List)
		v1.GET("/artworks/:id", deps.artworks.Get)

		// Auth
		auth := v1.Group("/auth")
		{
			auth.POST("/login", deps.users.Login)
			auth.POST("/refresh", deps.users.Refresh)
			auth.GET("/me", middleware.AuthMiddleware(deps.jwtManager), deps.users.Me)
		}

		// Admin (authenticated + admin role)
		admin := v1.Group("/admin")
		admin.Use(middleware.AuthMiddleware(deps.jwtManager), middleware.AdminMiddleware())
		{
			admin.POST("/events", deps.events.Create)
			admin.PUT("/events/:id", deps.events.Update)
			admin.DELETE("/events/:id", deps.events.Delete)
			admin.GET("/events/export", deps.events.Export)

			admin.POST("/artists", deps.artists.Create)
			admin.PUT("/artists/:id", deps.artists.Update)
			admin.DELETE("/artists/:id", deps.artists.Delete)

			admin.POST("/artworks", deps.artworks.Create)
			admin.PUT("/artworks/:id", deps.artworks.Update)
			admin.DELETE("/artworks/:id", deps.artworks.Delete)
		}
	}

	return router
}
