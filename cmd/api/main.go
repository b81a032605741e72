package main

import (
	"os"

	"github.com/winrydberg/alumni-backend/internal/pkg/logger"
	"github.com/winrydberg/alumni-backend/internal/server"
)

// @title Alumni Association API
// @version 1.0
// @description Backend for the alumni association platform: accounts, approvals and chapter membership

// @contact.name API Support
// @contact.email support@alumni-association.org

// @license.name MIT
// @license.url https://opensource.org/licenses/MIT

// @host localhost:8080
// @BasePath /api/v1
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
	os.Exit(0)
}
