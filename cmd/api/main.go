package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"github.com/plateful/plateful-backend/config"
	"github.com/plateful/plateful-backend/internal/database"
	"github.com/plateful/plateful-backend/internal/middleware"
	"github.com/plateful/plateful-backend/internal/router"
	"github.com/plateful/plateful-backend/internal/server"
	"github.com/plateful/plateful-backend/internal/service"
	"github.com/plateful/plateful-backend/internal/storage"
)

func main() {
	zerolog.TimeFieldFormat = zerolog.TimeFormatUnix
	if !config.IsProduction() {
		log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stderr})
	}

	cfg, err := config.LoadConfig()
	if err != nil {
		log.Fatal().Err(err).Msg("failed to load configuration")
	}

	db, err := database.New(cfg)
	if err != nil {
		log.Fatal().Err(err).Msg("failed to connect to database")
	}

	if err := database.RunMigrations(db, cfg.MigrationsDir); err != nil {
		log.Fatal().Err(err).Msg("failed to run migrations")
	}

	redisClient, err := database.NewRedisClient(cfg)
	if err != nil {
		log.Fatal().Err(err).Msg("failed to connect to Redis")
	}

	var rateLimiter *middleware.RateLimiter
	if redisClient != nil {
		rateLimiter = middleware.NewRateLimiter(redisClient, middleware.RateLimitConfig{
			Window:    time.Minute,
			Limit:     30,
			KeyPrefix: "ratelimit:image",
		})
	}

	ctx := context.Background()
	s3cfg, err := config.NewS3Config(ctx, cfg)
	if err != nil {
		log.Fatal().Err(err).Msg("failed to configure S3")
	}

	var store storage.ImageStore
	if s3cfg != nil {
		store = storage.NewS3Store(s3cfg)
		log.Info().Str("bucket", s3cfg.BucketName).Msg("storing images in S3")
	} else {
		store = storage.NewLocalStore(cfg.UploadDir)
		log.Info().Str("dir", cfg.UploadDir).Msg("storing images on local disk")
	}

	authService := service.NewAuthService(db, cfg.JWTSecret)
	imageService := service.NewImageService(store)

	userHandler, recipeHandler, tagHandler, ingredientHandler := router.Handlers(db, authService, imageService, rateLimiter)
	engine := router.SetupRouter(db, userHandler, recipeHandler, tagHandler, ingredientHandler, cfg.CORSOrigins)

	srv := server.New(cfg.ServerHost+":"+cfg.ServerPort, engine)

	errChan := make(chan error, 1)
	go func() {
		errChan <- srv.Start()
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)

	select {
	case err := <-errChan:
		if err != nil {
			log.Fatal().Err(err).Msg("server error")
		}
	case sig := <-quit:
		log.Info().Str("signal", sig.String()).Msg("shutting down")
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Fatal().Err(err).Msg("server shutdown error")
	}
	log.Info().Msg("server stopped")
}
