package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/joho/godotenv"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"github.com/Srinathnulidonda/CineBrainLinksBot/internal/business"
	"github.com/Srinathnulidonda/CineBrainLinksBot/internal/config"
	"github.com/Srinathnulidonda/CineBrainLinksBot/internal/infrastructure"
	"github.com/Srinathnulidonda/CineBrainLinksBot/internal/parser"
	"github.com/Srinathnulidonda/CineBrainLinksBot/internal/service/bot"
)

func main() {
	godotenv.Load()
	log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stdout})

	settings, err := config.Load()
	if err != nil {
		log.Fatal().Err(err).Msg("Could not load settings")
	}

	level, err := zerolog.ParseLevel(settings.LogLevel)
	if err != nil {
		level = zerolog.InfoLevel
	}
	zerolog.SetGlobalLevel(level)

	metadata, err := infrastructure.NewMetadataWrapper(settings.TMDBAPIKey, settings.MaxRetries)
	if err != nil {
		log.Fatal().Err(err).Msg("Could not initialize TMDB client")
	}
	posters := infrastructure.NewPosterCache(
		settings.PosterCacheSizeMB,
		settings.PosterCacheTTL,
		settings.RequestTimeout)

	p := parser.New()
	mm := business.NewMovieManagerWrapper(metadata, posters, p)

	handler, err := bot.NewHandler(settings, mm, p)
	if err != nil {
		log.Fatal().Err(err).Msg("Could not connect to Telegram")
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := handler.Run(ctx); err != nil {
		log.Fatal().Err(err).Msg("Bot stopped with error")
	}
}
