package main

import (
	"os"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"nanolink/auth"
	"nanolink/config"
	"nanolink/database"
	"nanolink/handlers"
	"nanolink/services"
	"nanolink/store"
)

func main() {
	cfg := config.Load()

	if cfg.Env == "development" {
		log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stderr})
	} else {
		gin.SetMode(gin.ReleaseMode)
	}

	db, err := database.Connect(cfg)
	if err != nil {
		log.Fatal().Err(err).Msg("database is unavailable")
	}

	st := store.NewGormStore(db)
	tokens := auth.NewTokenService(cfg.AccessTokenSecret, cfg.RefreshTokenSecret, cfg.AccessTokenTTL, cfg.RefreshTokenTTL)
	authService := services.NewAuthService(st, tokens)
	linkService := services.NewLinkService(st)

	router := handlers.NewRouter(log.Logger, tokens, authService, linkService)

	log.Info().Str("port", cfg.Port).Msg("nanolink listening")
	if err := router.Run(":" + cfg.Port); err != nil {
		log.Fatal().Err(err).Msg("server stopped")
	}
}
