package main

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/Kamalesh-E-S/LearnWiseV2/internal/config"
	"github.com/Kamalesh-E-S/LearnWiseV2/internal/engine"
	"github.com/Kamalesh-E-S/LearnWiseV2/internal/store"
)

// errMatchFailed reports a failed outcome that was already printed.
var errMatchFailed = errors.New("match failed")

var matchCmd = &cobra.Command{
	Use:   "match",
	Short: "Run one match query and print the outcome as JSON",
	Long:  "Queries every enabled provider for the given skills and prints the ranked outcome. Exits non-zero when the match fails.",
	RunE:  runMatch,
}

func init() {
	addQueryFlags(matchCmd)
	matchCmd.Flags().Int("retries", 0, "retries for transient failures (default: retry.max_retries from config)")
	matchCmd.Flags().Bool("notify", false, "send successful results through the configured notifier")
	rootCmd.AddCommand(matchCmd)
}

func addQueryFlags(cmd *cobra.Command) {
	cmd.Flags().StringSliceP("skill", "s", nil, "skill to match (repeatable or comma-separated)")
	cmd.Flags().StringSliceP("level", "l", nil, "desired level, e.g. senior (only the first is scored)")
	cmd.Flags().String("location", "", "preferred location")
	cmd.Flags().IntP("count", "n", 0, "number of jobs to return (default: defaults.count from config)")
	cmd.Flags().String("search", "", "run a saved search from watch.searches by name")
}

// queryFromFlags builds the query and its saved-search name. Explicit flags
// override the saved search's fields.
func queryFromFlags(cmd *cobra.Command, cfg *config.Config) (engine.Query, string, error) {
	var q engine.Query
	var name string

	if searchName, _ := cmd.Flags().GetString("search"); searchName != "" {
		s, ok := cfg.Search(searchName)
		if !ok {
			return q, "", fmt.Errorf("no saved search named %q", searchName)
		}
		name = s.Name
		q = engine.Query{Skills: s.Skills, Levels: s.Levels, Location: s.Location, Count: s.Count}
	}

	if cmd.Flags().Changed("skill") {
		q.Skills, _ = cmd.Flags().GetStringSlice("skill")
	}
	if cmd.Flags().Changed("level") {
		q.Levels, _ = cmd.Flags().GetStringSlice("level")
	}
	if cmd.Flags().Changed("location") {
		q.Location, _ = cmd.Flags().GetString("location")
	}
	if cmd.Flags().Changed("count") {
		q.Count, _ = cmd.Flags().GetInt("count")
	} else if q.Count == 0 {
		q.Count = cfg.Defaults.Count
	}
	return q, name, nil
}

func runMatch(cmd *cobra.Command, args []string) error {
	logger := setupLogger()

	cfg, err := loadConfig()
	if err != nil {
		logger.Error("failed to load config", "error", err)
		os.Exit(1)
	}

	q, searchName, err := queryFromFlags(cmd, cfg)
	if err != nil {
		return err
	}

	eng, err := buildEngine(cfg, logger)
	if err != nil {
		return err
	}

	maxRetries := cfg.Retry.MaxRetries
	if cmd.Flags().Changed("retries") {
		maxRetries, _ = cmd.Flags().GetInt("retries")
	}
	matcher := buildMatcher(eng, maxRetries, cfg, logger)

	runStore, err := openStore(cfg, logger)
	if err != nil {
		logger.Error("failed to open run history", "error", err)
		os.Exit(1)
	}
	defer runStore.Close()

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	out := matcher.MatchJobs(ctx, q)

	if err := runStore.Record(store.NewRun(searchName, q, out)); err != nil {
		logger.Warn("recording run failed", "error", err)
	}

	if notify, _ := cmd.Flags().GetBool("notify"); notify && out.Success {
		n := setupNotifier(cfg, newHTTPClient(cfg), logger)
		label := searchName
		if label == "" {
			label = "match"
		}
		if err := n.Notify(label, out.Jobs); err != nil {
			logger.Error("notification failed", "error", err)
		}
	}

	return writeOutcome(cmd.OutOrStdout(), out)
}

// writeOutcome prints the outcome as indented JSON. A failed match returns
// errMatchFailed so main exits non-zero after deferred cleanup has run.
func writeOutcome(w io.Writer, out engine.Outcome) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	if err := enc.Encode(out); err != nil {
		return fmt.Errorf("encode outcome: %w", err)
	}
	if !out.Success {
		return errMatchFailed
	}
	return nil
}
