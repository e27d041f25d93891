package main

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/Kamalesh-E-S/LearnWiseV2/internal/browse"
	"github.com/Kamalesh-E-S/LearnWiseV2/internal/config"
	"github.com/Kamalesh-E-S/LearnWiseV2/internal/engine"
	"github.com/Kamalesh-E-S/LearnWiseV2/internal/retry"
	"github.com/Kamalesh-E-S/LearnWiseV2/internal/store"
)

var browseCmd = &cobra.Command{
	Use:   "browse",
	Short: "Browse matches interactively (TUI)",
	Long:  "Runs a match behind a spinner and opens the ranked list. Without --skill or --search, shows a picker over the saved searches.",
	RunE:  runBrowseCmd,
}

func init() {
	addQueryFlags(browseCmd)
	rootCmd.AddCommand(browseCmd)
}

func runBrowseCmd(cmd *cobra.Command, args []string) error {
	logger := setupLogger()

	cfg, err := loadConfig()
	if err != nil {
		logger.Error("failed to load config", "error", err)
		os.Exit(1)
	}

	// Any log output once the TUI starts corrupts the display.
	silentLogger := slog.New(slog.NewTextHandler(io.Discard, nil))

	eng, err := buildEngine(cfg, silentLogger)
	if err != nil {
		return err
	}
	matcher := buildMatcher(eng, cfg.Retry.MaxRetries, cfg, silentLogger)

	runStore, err := openStore(cfg, logger)
	if err != nil {
		logger.Error("failed to open run history", "error", err)
		os.Exit(1)
	}
	defer runStore.Close()

	if cmd.Flags().Changed("skill") || cmd.Flags().Changed("search") {
		q, name, err := queryFromFlags(cmd, cfg)
		if err != nil {
			return err
		}
		browseOnce(matcher, runStore, name, q)
		return nil
	}

	runBrowse(cfg, matcher, runStore)
	return nil
}

func runBrowse(cfg *config.Config, matcher retry.Matcher, runStore store.RunStore) {
	searches := cfg.Watch.Searches
	if len(searches) == 0 {
		fmt.Println("No saved searches in config; pass --skill to browse an ad-hoc query.")
		return
	}

	for {
		choice, err := browse.RunSearchPicker(searches)
		if err != nil {
			fmt.Printf("Picker error: %v\n", err)
			return
		}
		if choice < 0 {
			return
		}
		s := searches[choice]
		q := engine.Query{Skills: s.Skills, Levels: s.Levels, Location: s.Location, Count: s.Count}
		if q.Count <= 0 {
			q.Count = cfg.Defaults.Count
		}

		if wantQuit := browseOnce(matcher, runStore, s.Name, q); wantQuit {
			return
		}
		// else: loop → back to picker
	}
}

// browseOnce runs one query and shows its results. It reports whether the
// user asked to quit rather than go back.
func browseOnce(matcher retry.Matcher, runStore store.RunStore, name string, q engine.Query) bool {
	label := name
	if label == "" {
		label = strings.Join(q.Skills, ", ")
	}

	out, err := browse.RunLoader(label, func(ctx context.Context) engine.Outcome {
		return matcher.MatchJobs(ctx, q)
	})
	if err != nil {
		fmt.Printf("Error matching jobs: %v\n", err)
		return true
	}
	if warning := recordRun(runStore, name, q, out); warning != "" {
		// Printed once the TUI has released the terminal.
		defer fmt.Println(warning)
	}

	if !out.Success {
		fmt.Printf("%s: %s\n", out.ErrorKind, out.Message)
		return false
	}

	wantQuit, err := browse.RunBrowseTUI(label, out.Jobs)
	if err != nil {
		fmt.Printf("TUI error: %v\n", err)
		return true
	}
	return wantQuit
}

// recordRun stores the run and returns a warning for the user when the
// history write fails, or "" on success.
func recordRun(runStore store.RunStore, name string, q engine.Query, out engine.Outcome) string {
	if err := runStore.Record(store.NewRun(name, q, out)); err != nil {
		return fmt.Sprintf("Warning: recording run failed: %v", err)
	}
	return ""
}
