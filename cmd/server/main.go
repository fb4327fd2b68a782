package main

import (
	"os"
	"strings"

	"github.com/joho/godotenv"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"github.com/Univearth/ai-hackathon/cmd/config"
	"github.com/Univearth/ai-hackathon/internal/utils"
)

func main() {
	_ = godotenv.Load()
	utils.LoadConfig()

	setupLogger()

	app, err := config.NewApp()
	if err != nil {
		log.Fatal().Err(err).Msg("failed to build application")
	}

	port := utils.GetConfig("PORT")
	if port == "" {
		port = "8000"
	}

	log.Info().Str("port", port).Msg("starting server")
	if err := app.Listen(":" + port); err != nil {
		log.Fatal().Err(err).Msg("server stopped")
	}
}

func setupLogger() {
	zerolog.TimeFieldFormat = zerolog.TimeFormatUnix
	log.Logger = zerolog.New(os.Stderr).With().Timestamp().Logger()

	level, err := zerolog.ParseLevel(strings.ToLower(utils.GetConfig("LOG_LEVEL")))
	if err != nil || level == zerolog.NoLevel {
		level = zerolog.InfoLevel
	}
	zerolog.SetGlobalLevel(level)
}
