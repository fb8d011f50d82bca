package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/hibiken/asynq"
	"github.com/joho/godotenv"
	"github.com/rs/zerolog/log"

	"artplatform-backend/internal/config"
	artisthandler "artplatform-backend/internal/domains/artist/handler"
	artistrepo "artplatform-backend/internal/domains/artist/repository"
	artistservice "artplatform-backend/internal/domains/artist/service"
	artworkhandler "artplatform-backend/internal/domains/artwork/handler"
	artworkrepo "artplatform-backend/internal/domains/artwork/repository"
	artworkservice "artplatform-backend/internal/domains/artwork/service"
	eventhandler "artplatform-backend/internal/domains/event/handler"
	eventrepo "artplatform-backend/internal/domains/event/repository"
	eventservice "artplatform-backend/internal/domains/event/service"
	userhandler "artplatform-backend/internal/domains/user/handler"
	userrepo "artplatform-backend/internal/domains/user/repository"
	userservice "artplatform-backend/internal/domains/user/service"
	"artplatform-backend/internal/infrastructure/cache"
	"artplatform-backend/internal/infrastructure/database"
	"artplatform-backend/internal/infrastructure/storage"
	"artplatform-backend/pkg/jwt"
	"artplatform-backend/pkg/logger"
)

func main() {
	// ===== Configuration =====
	if err := godotenv.Load(); err != nil {
		log.Warn().Msg("No .env file found, using environment variables")
	}

	cfg, err := config.Load()
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to load configuration")
	}

	logger.Init(cfg.App.Environment)

	if cfg.App.Environment == "production" {
		gin.SetMode(gin.ReleaseMode)
	}

	ctx := context.Background()

	// ===== Database =====
	dbConfig, err := config.LoadDatabaseConfig()
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to load database configuration")
	}

	db := database.NewPostgresDB(dbConfig)
	if err := db.Connect(ctx); err != nil {
		log.Fatal().Err(err).Msg("Failed to connect to database")
	}
	defer db.Close()

	// ===== Redis =====
	redisCache := cache.NewRedisCache(cfg.Redis.Host, cfg.Redis.Password, cfg.Redis.DB)
	if err := redisCache.Connect(ctx); err != nil {
		log.Fatal().Err(err).Msg("Failed to connect to Redis")
	}
	defer redisCache.Close()

	// ===== Object storage =====
	objectStorage, err := storage.NewMinIOStorage(cfg.MinIO)
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to initialize object storage")
	}
	imageProcessor := storage.NewImageProcessor()

	// ===== Background tasks =====
	taskClient := asynq.NewClient(asynq.RedisClientOpt{
		Addr:     cfg.Redis.Host,
		Password: cfg.Redis.Password,
		DB:       cfg.Redis.DB,
	})
	defer taskClient.Close()

	// ===== Auth =====
	jwtManager := jwt.NewManager(cfg.JWT.Secret, cfg.JWT.AccessExpiry, cfg.JWT.RefreshExpiry)

	// ===== Domains =====
	eventRepository := eventrepo.NewPostgresRepository(db.Pool, redisCache)
	eventService := eventservice.NewEventService(eventRepository, objectStorage, imageProcessor, taskClient)
	eventHandler := eventhandler.NewEventHandler(eventService)

	artistRepository := artistrepo.NewPostgresRepository(db.Pool, redisCache)
	artistService := artistservice.NewArtistService(artistRepository, objectStorage, imageProcessor, taskClient)
	artistHandler := artisthandler.NewArtistHandler(artistService)

	artworkRepository := artworkrepo.NewPostgresRepository(db.Pool, redisCache)
	artworkService := artworkservice.NewArtworkService(artworkRepository, objectStorage, imageProcessor, taskClient)
	artworkHandler := artworkhandler.NewArtworkHandler(artworkService)

	userRepository := userrepo.NewPostgresRepository(db.Pool)
	userService := userservice.NewUserService(userRepository, jwtManager)
	userHandler := userhandler.NewUserHandler(userService)

	// ===== Router =====
	router := setupRouter(routerDeps{
		cfg:        cfg,
		db:         db,
		cache:      redisCache,
		jwtManager: jwtManager,
		events:     eventHandler,
		artists:    artistHandler,
		artworks:   artworkHandler,
		users:      userHandler,
	})

	// ===== Serve =====
	srv := &http.Server{
		Addr:         ":" + cfg.App.Port,
		Handler:      router,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 30 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	go func() {
		log.Info().
			Str("port", cfg.App.Port).
			Str("env", cfg.App.Environment).
			Msg("Starting API server")
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatal().Err(err).Msg("Server failed")
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info().Msg("Shutting down server...")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("Forced shutdown")
	}
	log.Info().Msg("Server stopped")
}
