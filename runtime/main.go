package main

import (
	"github.com/criss159/fauna-kids/services"

	"github.com/alphabatem/common/context"
	"github.com/joho/godotenv"
	"github.com/rs/zerolog/log"
)

func main() {
	if err := godotenv.Load(); err != nil {
		log.Warn().Err(err).Msg("No .env file loaded")
	}

	ctx, err := context.NewCtx(
		&services.MonitoringService{},
		&services.PostgresService{},
		&services.RedisService{},
		&services.RateLimitService{},
		&services.JWTService{},
		&services.MinIOService{},

		&services.ProgressService{},
		&services.AuthService{},
		&services.UserService{},
		&services.ChatService{},
		&services.GeminiService{},
		&services.ImageService{},
		&services.SpeechService{},

		&services.HttpService{},
	)
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to build service context")
		return
	}

	if err := ctx.Run(); err != nil {
		log.Fatal().Err(err).Msg("Service context stopped")
		return
	}
}
