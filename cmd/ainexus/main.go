package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/deusflow/ainexus/internal/app"
	"github.com/deusflow/ainexus/internal/config"
	"github.com/deusflow/ainexus/internal/logger"
	"github.com/spf13/cobra"
)

var version = "dev"

var rootCmd = &cobra.Command{
	Use:   "ainexus",
	Short: "Build the AI news snapshot consumed by the static dashboard",
	Long: `ainexus fetches AI launches from Product Hunt and Hacker News, resolves a
localized description for each, tops the list up with curated entries and
writes everything as a JavaScript assignment (window.AI_DATA = {...};).

Configuration comes from the environment and an optional .env file.`,
	Args:          cobra.NoArgs,
	SilenceUsage:  true,
	SilenceErrors: true,
	RunE: func(cmd *cobra.Command, args []string) error {
		return run(cmd.Context())
	},
}

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print the version",
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Fprintln(cmd.OutOrStdout(), "ainexus", version)
	},
}

func init() {
	rootCmd.AddCommand(versionCmd)
}

func run(ctx context.Context) error {
	cfg, err := config.Load()
	logger.Init(cfg.Debug)
	if err != nil {
		logger.Error("invalid settings replaced with defaults", "error", err)
	}

	a := app.New(ctx, cfg)
	defer a.Close()

	logger.Info("run started", "output", cfg.OutputFile, "target", cfg.TargetNewsCount, "locale", cfg.TargetLocale)
	report, err := a.Run(ctx)
	logger.Info("run finished",
		"duration", report.Duration,
		"sources", report.Sources,
		"fillers", report.Fillers,
		"total", report.Total,
		"complete", report.Complete())
	if err != nil && cfg.StrictExit {
		return fmt.Errorf("run incomplete: %w", err)
	}
	return nil
}

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := rootCmd.ExecuteContext(ctx); err != nil {
		logger.Error("ainexus failed", "error", err)
		stop()
		os.Exit(1)
	}
}
