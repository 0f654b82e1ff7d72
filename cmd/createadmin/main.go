package main

import (
	"context"
	"flag"

	"github.com/rs/zerolog/log"

	"github.com/plateful/plateful-backend/config"
	"github.com/plateful/plateful-backend/internal/database"
	"github.com/plateful/plateful-backend/internal/service"
)

// createadmin creates a superuser: an ordinary account with the staff and
// superuser flags set.
func main() {
	var (
		name     = flag.String("name", "", "display name")
		email    = flag.String("email", "", "login email")
		password = flag.String("password", "", "password (min 6 characters)")
	)
	flag.Parse()

	if *email == "" || *password == "" {
		log.Fatal().Msg("-email and -password are required")
	}
	if len(*password) < 6 {
		log.Fatal().Msg("password must be at least 6 characters")
	}

	cfg, err := config.LoadConfig()
	if err != nil {
		log.Fatal().Err(err).Msg("failed to load configuration")
	}

	db, err := database.New(cfg)
	if err != nil {
		log.Fatal().Err(err).Msg("failed to connect to database")
	}

	authService := service.NewAuthService(db, cfg.JWTSecret)
	user, err := authService.RegisterSuperuser(context.Background(), *name, *email, *password)
	if err != nil {
		log.Fatal().Err(err).Msg("failed to create superuser")
	}

	log.Info().Str("id", user.ID.String()).Str("email", user.Email).Msg("superuser created")
}
