package main

import (
	"os"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"

	"github.com/arenoe-studio/terzaghi-calculator/internal/calc/bearing"
	"github.com/arenoe-studio/terzaghi-calculator/internal/logger"
)

func main() {
	_ = godotenv.Load()
	if err := newRootCmd().Execute(); err != nil {
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	var level string

	rootCmd := &cobra.Command{
		Use:          "terzaghi",
		Short:        "Terzaghi shallow-foundation bearing capacity calculator",
		SilenceUsage: true,
		PersistentPreRun: func(cmd *cobra.Command, _ []string) {
			bearing.SetLogger(logger.NewTo(cmd.ErrOrStderr(), level, "text"))
		},
	}
	rootCmd.PersistentFlags().StringVar(&level, "log-level", envOr("LOG_LEVEL", "warn"), "log level (debug, info, warn, error)")

	rootCmd.AddCommand(calcCmd())
	rootCmd.AddCommand(batchCmd())
	rootCmd.AddCommand(factorsCmd())
	return rootCmd
}

func envOr(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}
