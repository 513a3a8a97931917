package main

import (
	"github.com/spf13/cobra"

	"github.com/yigit/courseapi/internal/pkg/logger"
	"github.com/yigit/courseapi/internal/server"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the HTTP server",
	Args:  cobra.NoArgs,
	RunE:  runServe,
}

func init() {
	rootCmd.AddCommand(serveCmd)
}

func runServe(cmd *cobra.Command, args []string) error {
	srv, err := server.NewServer(cmd.Context(), configPath)
	if err != nil {
		return err
	}

	if err := srv.Run(cmd.Context()); err != nil {
		return err
	}

	logger.Info().Msg("Application finished gracefully.")
	return nil
}
