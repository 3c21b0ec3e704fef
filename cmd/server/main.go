package main

import (
	"os"

	"github.com/spf13/cobra"

	"github.com/vytor/kaiwa/internal/config"
	"github.com/vytor/kaiwa/internal/logger"
)

var rootCmd = &cobra.Command{
	Use:           "kaiwa",
	Short:         "Japanese conversation practice backend",
	Long:          "Kaiwa serves scenario-based Japanese conversation practice with AI feedback and personalised recommendations.",
	SilenceUsage:  true,
	SilenceErrors: true,
}

func init() {
	rootCmd.PersistentFlags().String("db", "", "Path to SQLite database file (overrides DB_PATH)")
	rootCmd.PersistentFlags().String("log-level", "", "Log level: DEBUG, INFO, WARN or ERROR (overrides LOG_LEVEL)")

	rootCmd.AddCommand(serveCmd)
	rootCmd.AddCommand(recommendCmd)
	rootCmd.AddCommand(sweepCmd)
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		logger.Default().Error("%v", err)
		logger.Default().Sync()
		os.Exit(1)
	}
}

// loadConfig reads the environment, applies flag overrides and installs the
// default logger.
func loadConfig(cmd *cobra.Command) config.Config {
	cfg := config.Load()
	if p, _ := cmd.Flags().GetString("db"); p != "" {
		cfg.DBPath = p
	}
	if l, _ := cmd.Flags().GetString("log-level"); l != "" {
		cfg.LogLevel = l
	}

	log := logger.New(
		logger.WithLevel(logger.ParseLevel(cfg.LogLevel)),
		logger.WithColors(cfg.LogColors),
	)
	logger.SetDefault(log)
	return cfg
}
