package main

import (
	"os"

	_ "github.com/joho/godotenv/autoload"

	"github.com/yigit/courseapi/internal/pkg/logger"
)

// @title Course API
// @version 1.0
// @description Read-only course catalogue served as JSON or Protocol Buffers

// @license.name MIT
// @license.url https://opensource.org/licenses/MIT

// @host localhost:8080
// @BasePath /
// @schemes http

func main() {
	if err := rootCmd.Execute(); err != nil {
		logger.Error().Err(err).Msg("Command failed")
		os.Exit(1)
	}
}
