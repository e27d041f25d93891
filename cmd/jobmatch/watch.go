package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/Kamalesh-E-S/LearnWiseV2/internal/scheduler"
)

var watchCmd = &cobra.Command{
	Use:   "watch",
	Short: "Re-run saved searches on a schedule",
	Long:  "Runs every watch.searches entry on the watch.schedule cron spec and notifies on results; blocks until SIGINT/SIGTERM.",
	RunE:  runWatch,
}

func init() {
	rootCmd.AddCommand(watchCmd)
}

func runWatch(cmd *cobra.Command, args []string) error {
	logger := setupLogger()

	cfg, err := loadConfig()
	if err != nil {
		logger.Error("failed to load config", "error", err)
		os.Exit(1)
	}
	if len(cfg.Watch.Searches) == 0 {
		logger.Error("no saved searches to watch")
		os.Exit(1)
	}

	logger.Info("config loaded",
		"schedule", cfg.Watch.Schedule,
		"searches", len(cfg.Watch.Searches),
		"providers", len(cfg.EnabledProviders()),
	)

	eng, err := buildEngine(cfg, logger)
	if err != nil {
		return err
	}
	matcher := buildMatcher(eng, cfg.Retry.MaxRetries, cfg, logger)

	runStore, err := openStore(cfg, logger)
	if err != nil {
		logger.Error("failed to open run history", "error", err)
		os.Exit(1)
	}
	defer runStore.Close()

	n := setupNotifier(cfg, newHTTPClient(cfg), logger)

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	sched := scheduler.NewScheduler(matcher, cfg.Watch.Searches, cfg.Watch.Schedule, cfg.Defaults.Count, n, runStore, logger)
	if err := sched.Run(ctx); err != nil {
		logger.Error("scheduler error", "error", err)
		os.Exit(1)
	}

	logger.Info("goodbye")
	return nil
}
