package main

import (
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/Kamalesh-E-S/LearnWiseV2/internal/config"
)

var providersCmd = &cobra.Command{
	Use:   "providers",
	Short: "List all configured providers",
	Long:  "Reads the config and prints a table of all configured job board providers.",
	RunE:  runProviders,
}

func init() {
	rootCmd.AddCommand(providersCmd)
}

func runProviders(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to load config: %v\n", err)
		os.Exit(1)
	}

	fmt.Printf("%-20s %-12s %-20s %-10s %s\n", "Provider", "Type", "Target", "Delay", "Status")
	fmt.Println(strings.Repeat("─", 74))

	enabled, disabled := 0, 0
	for _, p := range cfg.Providers {
		status := "enabled"
		if !p.Enabled {
			status = "disabled"
			disabled++
		} else {
			enabled++
		}
		fmt.Printf("%-20s %-12s %-20s %-10s %s\n", p.Name, p.Type, providerTarget(p), cfg.RateLimit.MinDelayFor(p.Name), status)
	}

	fmt.Printf("\nTotal: %d providers (%d enabled, %d disabled)\n", len(cfg.Providers), enabled, disabled)
	return nil
}

// providerTarget is the board or region a provider queries.
func providerTarget(p config.ProviderConfig) string {
	switch p.Type {
	case config.ProviderJobSpy:
		return p.Site
	case config.ProviderAdzuna:
		return p.Country
	case config.ProviderHeadHunter:
		if p.Area != "" {
			return "area " + p.Area
		}
		return "all areas"
	}
	return "-"
}
