package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/dharmasatrya/farewatch/internal/app"
	"github.com/dharmasatrya/farewatch/internal/config"
	"github.com/dharmasatrya/farewatch/internal/logging"
)

// global flags
var (
	configFile string
	logLevel   string
	logFormat  string
)

// state shared by subcommands, built in PersistentPreRunE
var (
	logger      *zap.Logger
	application *app.App
)

var rootCmd = &cobra.Command{
	Use:   "farewatch",
	Short: "Search flights and inspect fares from the terminal",
	Long: `farewatch talks to the configured flight-data provider using the same
	credentials, cache and rate limits as the HTTP server.`,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := config.Load(configFile)
		if err != nil {
			return err
		}

		// the CLI logs to the terminal; LOG_LEVEL and LOG_FORMAT only shape the server
		logger, err = logging.New(logLevel, logFormat)
		if err != nil {
			return err
		}

		application, err = app.New(cmd.Context(), cfg, logger)
		if err != nil {
			return fmt.Errorf("initializing: %w", err)
		}
		return nil
	},
	PersistentPostRunE: func(cmd *cobra.Command, args []string) error {
		_ = logger.Sync()
		return application.Close()
	},
}

func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "error:", err)
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().StringVar(&configFile, "config", os.Getenv("CONFIG_FILE"),
		"Optional YAML config file; environment variables override it")
	rootCmd.PersistentFlags().StringVar(&logLevel, "log-level", "warn", "Log level (debug, info, warn, error)")
	rootCmd.PersistentFlags().StringVar(&logFormat, "log-format", "console", "Log format (console, json)")

	rootCmd.SilenceUsage = true
	rootCmd.SilenceErrors = true
}
