// Command api runs the job tracker HTTP API and its maintenance tasks.
package main

import (
	"fmt"
	"os"

	_ "github.com/joho/godotenv/autoload"
	"github.com/spf13/cobra"

	"jobtracker/internal/config"
	"jobtracker/internal/logger"
)

var rootCmd = &cobra.Command{
	Use:   "api",
	Short: "Job application tracker API",
	Long:  "Tracks job applications, computes dashboards from them and exports reports. Runs the HTTP server when no subcommand is given.",
	RunE:  runServe,
	SilenceUsage: true,
}

// @title Job Tracker API
// @version 1.0
// @BasePath /
// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

// bootstrap loads configuration and builds the process logger.
func bootstrap() (*config.AppConfig, logger.Logger) {
	cfg := config.Load()
	return cfg, logger.New(cfg.Log.Level, cfg.Log.Pretty)
}
