package main

import (
	"os"

	"github.com/tinkerlab/labtrack/internal/pkg/logger"
	"github.com/tinkerlab/labtrack/internal/server"
)

// @title Tinker Lab API
// @version 1.0
// @description Equipment reservations, usage tracking and training records for the Tinker Lab
// @termsOfService http://swagger.io/terms/

// @contact.name Lab Support
// @contact.email lab-support@tinkerlab.local

// @license.name MIT
// @license.url https://opensource.org/licenses/MIT

// @host localhost:5000
// @BasePath /api
// @schemes http https

// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
// @description JWT token for authorization

func main() {
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
