package main

import (
	"os"

	"github.com/yogastudio/yoga-app/internal/pkg/logger"
	"github.com/yogastudio/yoga-app/internal/server"
)

// @title Yoga App API
// @version 1.0
// @description API for booking yoga sessions with the studio's teachers
// @termsOfService http://swagger.io/terms/

// @license.name MIT
// @license.url https://opensource.org/licenses/MIT

// @host localhost:8080
// @BasePath /api
// @schemes http https

// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
// @description JWT token for authorization, prefixed with "Bearer "

func main() {
	srv, err := server.NewServer()
	if err != nil {
		// setup functions log the details
		logger.Error().Err(err).Msg("Failed to initialize server")
		os.Exit(1)
	}

	// blocks until shutdown signal
	if err := srv.Run(); err != nil {
		logger.Error().Err(err).Msg("Server execution failed or shutdown encountered errors")
		os.Exit(1)
	}

	logger.Info().Msg("Application finished gracefully.")
}
