package cmd

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/dosanma1/vncard-cli/internal/config"
	"github.com/dosanma1/vncard-cli/internal/logger"
)

var rootCmd = &cobra.Command{
	Use:   "vncard",
	Short: "vncard - Vietnamese name card generator",
	Long: `vncard collects Vietnamese full names that were never emitted before and
renders each one onto a template image.

Names come from Gemini, a local word list, HTTP endpoints, namefake.com or the
built-in offline generator. Every emitted name is recorded in a history log so
later runs never repeat it.`,
	Version:       "1.0.0",
	SilenceUsage:  true,
	SilenceErrors: true,
}

var (
	configPath string
	logLevel   string
	logFormat  string
)

// Execute runs the root command. SIGINT and SIGTERM cancel the context.
func Execute() error {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()
	return rootCmd.ExecuteContext(ctx)
}

func init() {
	rootCmd.PersistentFlags().StringVarP(&configPath, "config", "c", config.FileName, "Config file (optional unless set explicitly)")
	rootCmd.PersistentFlags().StringVar(&logLevel, "log-level", "", "Log level: debug, info, warn, error")
	rootCmd.PersistentFlags().StringVar(&logFormat, "log-format", "", "Log format: text or json")

	rootCmd.AddCommand(generateCmd)
	rootCmd.AddCommand(sourcesCmd)
	rootCmd.AddCommand(validateCmd)
	rootCmd.AddCommand(initCmd)
	rootCmd.AddCommand(historyCmd)
}

// loadConfig resolves defaults, vncard.yaml, .env and VNCARD_* variables,
// then applies the global flags. The file is only required when --config was
// passed.
func loadConfig(cmd *cobra.Command) (*config.Config, error) {
	cfg, err := config.Resolve(configPath, cmd.Flags().Changed("config"))
	if err != nil {
		return nil, err
	}
	if logLevel != "" {
		cfg.Log.Level = logLevel
	}
	if logFormat != "" {
		cfg.Log.Format = logFormat
	}
	return cfg, nil
}

// newLogger builds the run logger writing to the command's stderr.
func newLogger(cmd *cobra.Command, cfg *config.Config) (*slog.Logger, error) {
	level, err := logger.ParseLevel(cfg.Log.Level)
	if err != nil {
		return nil, fmt.Errorf("invalid log level: %w", err)
	}
	format, err := logger.ParseFormat(cfg.Log.Format)
	if err != nil {
		return nil, fmt.Errorf("invalid log format: %w", err)
	}
	return logger.New(
		logger.WithLevel(level),
		logger.WithFormat(format),
		logger.WithOutput(cmd.ErrOrStderr()),
		logger.WithRunID(logger.NewRunID()),
	), nil
}
