package main

import (
	"fmt"
	"log/slog"
	"net/http"
	"os"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/Kamalesh-E-S/LearnWiseV2/internal/adapter"
	"github.com/Kamalesh-E-S/LearnWiseV2/internal/config"
	"github.com/Kamalesh-E-S/LearnWiseV2/internal/engine"
	"github.com/Kamalesh-E-S/LearnWiseV2/internal/model"
	"github.com/Kamalesh-E-S/LearnWiseV2/internal/notifier"
	"github.com/Kamalesh-E-S/LearnWiseV2/internal/ratelimit"
	"github.com/Kamalesh-E-S/LearnWiseV2/internal/retry"
	"github.com/Kamalesh-E-S/LearnWiseV2/internal/store"
)

var rootCmd = &cobra.Command{
	Use:   "jobmatch",
	Short: "Skill-based job matching across job boards",
	Long:  "jobmatch queries several job boards for a skill set and returns the best-ranked listings.",
	PersistentPreRun: func(cmd *cobra.Command, args []string) {
		// A missing .env is fine; secrets may come from the environment.
		_ = godotenv.Load()
	},
	SilenceUsage:  true,
	SilenceErrors: true,
}

func init() {
	rootCmd.PersistentFlags().StringP("config", "c", "", "path to config file (default: JOBMATCH_CONFIG env var or ./config.yaml)")
	rootCmd.PersistentFlags().Bool("debug", false, "enable debug logging")
	rootCmd.PersistentFlags().Bool("json", false, "log in JSON instead of text")

	viper.SetEnvPrefix("jobmatch")
	viper.AutomaticEnv()
	for _, name := range []string{"config", "debug", "json"} {
		_ = viper.BindPFlag(name, rootCmd.PersistentFlags().Lookup(name))
	}
}

// loadConfig resolves the config path and parses it.
// Priority: --config flag > JOBMATCH_CONFIG env var > "./config.yaml"
func loadConfig() (*config.Config, error) {
	path := viper.GetString("config")
	if path == "" {
		path = "config.yaml"
	}
	return config.Load(path)
}

// setupLogger logs to stderr so stdout stays clean for JSON results.
func setupLogger() *slog.Logger {
	logLevel := slog.LevelInfo
	if viper.GetBool("debug") {
		logLevel = slog.LevelDebug
	}
	opts := &slog.HandlerOptions{Level: logLevel}
	if viper.GetBool("json") {
		return slog.New(slog.NewJSONHandler(os.Stderr, opts))
	}
	return slog.New(slog.NewTextHandler(os.Stderr, opts))
}

func newHTTPClient(cfg *config.Config) *http.Client {
	return &http.Client{Timeout: cfg.HTTPTimeout}
}

func setupNotifier(cfg *config.Config, httpClient *http.Client, logger *slog.Logger) notifier.Notifier {
	switch cfg.Notification.Type {
	case "slack":
		logger.Debug("using slack notifier")
		return notifier.NewSlackNotifier(cfg.Notification.WebhookURL, httpClient, logger)
	default:
		return notifier.NewLogNotifier(logger)
	}
}

func createProvider(p config.ProviderConfig, hoursOld int, httpClient *http.Client) (model.Provider, error) {
	switch p.Type {
	case config.ProviderJobSpy:
		return adapter.NewJobSpyAdapter(p.Name, p.Site, p.BaseURL, p.APIKey, hoursOld, httpClient), nil
	case config.ProviderAdzuna:
		return adapter.NewAdzunaAdapter(p.Name, p.AppID, p.AppKey, p.Country, hoursOld, httpClient), nil
	case config.ProviderHeadHunter:
		return adapter.NewHeadHunterAdapter(p.Name, p.BaseURL, p.Area, p.Token, p.UserAgent, hoursOld, httpClient), nil
	default:
		return nil, fmt.Errorf("provider %q: unknown type %q", p.Name, p.Type)
	}
}

// buildProviders creates one adapter per enabled provider, each behind its
// own politeness limiter.
func buildProviders(cfg *config.Config, httpClient *http.Client, logger *slog.Logger) ([]model.Provider, error) {
	var providers []model.Provider
	for _, p := range cfg.EnabledProviders() {
		provider, err := createProvider(p, cfg.Defaults.HoursOld, httpClient)
		if err != nil {
			return nil, err
		}
		delay := cfg.RateLimit.MinDelayFor(p.Name)
		providers = append(providers, ratelimit.NewRateLimitedProvider(provider, delay))
		logger.Debug("registered provider", "provider", p.Name, "type", p.Type, "min_delay", delay)
	}
	return providers, nil
}

func buildEngine(cfg *config.Config, logger *slog.Logger) (*engine.Engine, error) {
	providers, err := buildProviders(cfg, newHTTPClient(cfg), logger)
	if err != nil {
		return nil, err
	}
	return engine.New(providers, engine.Options{
		DefaultLocation: cfg.Defaults.Location,
		MinPerProvider:  cfg.Defaults.MinResultsPerProvider,
	}, logger), nil
}

// buildMatcher wraps the engine in the retry policy when retries are enabled.
func buildMatcher(eng *engine.Engine, maxRetries int, cfg *config.Config, logger *slog.Logger) retry.Matcher {
	if maxRetries <= 0 {
		return eng
	}
	return retry.NewRetryMatcher(eng, maxRetries, cfg.Retry.BaseDelay, logger)
}

// openStore opens the run history, pruning runs past the retention window.
func openStore(cfg *config.Config, logger *slog.Logger) (store.RunStore, error) {
	if !cfg.History.Enabled {
		return store.NewNopStore(), nil
	}
	s, err := store.NewSQLiteStore(cfg.History.Path)
	if err != nil {
		return nil, err
	}
	if err := s.Cleanup(cfg.History.Retention); err != nil {
		logger.Warn("pruning run history failed", "error", err)
	}
	return s, nil
}
