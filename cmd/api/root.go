package main

import (
	"github.com/spf13/cobra"

	"github.com/yigit/courseapi/internal/config"
)

var configPath string

var rootCmd = &cobra.Command{
	Use:   "courseapi",
	Short: "Course catalogue REST API",
	Long: `courseapi serves GET /courses/{id} from an in-memory or PostgreSQL
course store. Responses are JSON unless the client accepts application/x-protobuf.`,
	SilenceUsage: true,
	RunE:         runServe,
}

func init() {
	rootCmd.PersistentFlags().StringVarP(&configPath, "config", "c",
		config.GetEnv("COURSEAPI_CONFIG", "configs/config.yaml"), "Path to the YAML config file")
}
