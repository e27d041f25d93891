package main

import (
	"fmt"
	"os"
	"strings"

	"github.com/dustin/go-humanize"
	"github.com/spf13/cobra"

	"github.com/Kamalesh-E-S/LearnWiseV2/internal/store"
)

var historyCmd = &cobra.Command{
	Use:   "history",
	Short: "Show recent match runs",
	Long:  "Prints the most recent runs from the SQLite run history. Requires history.enabled.",
	RunE:  runHistory,
}

func init() {
	historyCmd.Flags().IntP("limit", "n", 20, "number of runs to show")
	rootCmd.AddCommand(historyCmd)
}

func runHistory(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to load config: %v\n", err)
		os.Exit(1)
	}
	if !cfg.History.Enabled {
		fmt.Println("Run history is disabled; set history.enabled: true in config.yaml.")
		return nil
	}

	s, err := store.NewSQLiteStore(cfg.History.Path)
	if err != nil {
		return err
	}
	defer s.Close()

	limit, _ := cmd.Flags().GetInt("limit")
	runs, err := s.Recent(limit)
	if err != nil {
		return err
	}
	if len(runs) == 0 {
		fmt.Println("No runs recorded yet.")
		return nil
	}

	fmt.Printf("%-16s %-14s %-30s %-18s %s\n", "When", "Search", "Skills", "Outcome", "Jobs")
	fmt.Println(strings.Repeat("─", 86))
	for _, r := range runs {
		search := r.Search
		if search == "" {
			search = "-"
		}
		fmt.Printf("%-16s %-14s %-30s %-18s %d/%d\n",
			humanize.Time(r.RanAt), search, truncate(strings.Join(r.Skills, ","), 30), r.Outcome, r.Returned, r.Count)
	}
	return nil
}

func truncate(s string, n int) string {
	if len([]rune(s)) <= n {
		return s
	}
	return string([]rune(s)[:n-1]) + "…"
}
