package main

import (
	"errors"
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"github.com/tupyy/property-search-agent/cmd"
	"github.com/tupyy/property-search-agent/internal/config"
	"github.com/tupyy/property-search-agent/pkg/logger"
)

func main() {
	// default configuration
	cfg := config.NewConfigurationWithOptionsAndDefaults(
		config.WithLogFormat("console"),
		config.WithLogLevel("info"),
	)

	var undo func()
	var log *zap.Logger

	rootCmd := &cobra.Command{
		Use:           "property",
		Short:         "Property search and administration",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(c *cobra.Command, args []string) error {
			if err := validateConfig(cfg); err != nil {
				return err
			}

			// serve logs on stdout, the other commands keep stdout for their results
			output := "stderr"
			if c.Name() == "serve" {
				output = "stdout"
			}
			log = logger.Init(cfg.LogFormat, cfg.LogLevel, output)
			undo = zap.ReplaceGlobals(log)

			return nil
		},
	}
	registerLoggingFlags(rootCmd, cfg)

	rootCmd.AddCommand(
		cmd.NewServeCommand(cfg),
		cmd.NewSearchCommand(cfg),
		cmd.NewAdminCommand(cfg),
		cmd.NewImportCommand(cfg),
	)

	err := rootCmd.Execute()

	if log != nil {
		_ = log.Sync()
		undo()
	}

	if err != nil {
		if !cmd.IsNotified(err) || errors.Is(err, cmd.ErrNotConfigured) {
			fmt.Fprintf(os.Stderr, "Error: %s\n", err)
		}
		os.Exit(1)
	}
}

func validateConfig(cfg *config.Configuration) error {
	switch cfg.LogFormat {
	case "console":
	case "json":
	default:
		return fmt.Errorf("invalid log-format: %s", cfg.LogFormat)
	}

	if _, err := zapcore.ParseLevel(cfg.LogLevel); err != nil {
		return fmt.Errorf("invalid log level %s", cfg.LogLevel)
	}

	return nil
}

func registerLoggingFlags(cmd *cobra.Command, config *config.Configuration) {
	cmd.PersistentFlags().StringVar(&config.LogFormat, "log-format", config.LogFormat, "format of the logs: console or json")
	cmd.PersistentFlags().StringVar(&config.LogLevel, "log-level", config.LogLevel, "log level")
}
