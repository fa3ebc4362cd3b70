package cmd

import (
	"fmt"

	"github.com/fintrack/fintrack/internal/auth/app"
	"github.com/spf13/cobra"
)

var envFile string

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the HTTP server",
	Long: `Starts the HTTP server. Configuration is read from the environment,
optionally pre-loaded from a dotenv file with --env-file.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		if err := app.LoadEnvFile(envFile); err != nil {
			return err
		}

		application, err := app.New(app.LoadConfig())
		if err != nil {
			return fmt.Errorf("failed to initialize application: %w", err)
		}

		return application.Run()
	},
}

func init() {
	serveCmd.Flags().StringVar(&envFile, "env-file", "", "Load environment variables from this file first (existing variables win)")
}
