package main

import (
	"os"

	"github.com/joho/godotenv"

	"github.com/ozgur/teamup/internal/pkg/logger"
	"github.com/ozgur/teamup/internal/server"
)

// @title TeamUp API
// @version 1.0
// @description Team roster and recruitment service for student team formation

// @host localhost:8080
// @BasePath /api/v1
// @schemes http https

// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
// @description JWT token for authorization

func main() {
	// A missing .env file is fine; the environment may already be set
	_ = godotenv.Load()

	srv, err := server.NewServer()
	if err != nil {
		logger.Error().Err(err).Msg("Failed to initialize server")
		os.Exit(1)
	}

	if err := srv.Run(); err != nil {
		logger.Error().Err(err).Msg("Server execution failed or shutdown encountered errors")
		os.Exit(1)
	}

	logger.Info().Msg("Application finished gracefully.")
}
