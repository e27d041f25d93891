package config

import (
	"fmt"
	"os"
	"strings"
	"time"

	"gopkg.in/yaml.v3"
)

// Provider types understood by the CLI.
const (
	ProviderJobSpy     = "jobspy"
	ProviderAdzuna     = "adzuna"
	ProviderHeadHunter = "headhunter"
)

const slackWebhookPrefix = "https://hooks.slack.com/"

// Config is the root configuration for jobmatch.
type Config struct {
	Defaults     DefaultsConfig
	HTTPTimeout  time.Duration // per-call network timeout owned by the adapters
	Providers    []ProviderConfig
	RateLimit    RateLimitConfig
	Retry        RetryConfig
	History      HistoryConfig
	Notification NotificationConfig
	Watch        WatchConfig
}

// DefaultsConfig holds the query defaults applied by the CLI and engine.
type DefaultsConfig struct {
	Location              string `yaml:"location"`                 // sent to providers when the query has none
	Count                 int    `yaml:"count"`                    // results returned when --count is not given
	MinResultsPerProvider int    `yaml:"min_results_per_provider"` // floor on listings asked of each provider
	HoursOld              int    `yaml:"hours_old"`                // recency window handed to providers
}

// ProviderConfig describes one listing source. Which keys are required
// depends on Type.
type ProviderConfig struct {
	Name    string `yaml:"name"`
	Type    string `yaml:"type"`
	Enabled bool   `yaml:"enabled"`

	// jobspy
	Site    string `yaml:"site"`
	BaseURL string `yaml:"base_url"` // also overrides the hh.ru API root
	APIKey  string `yaml:"api_key"`

	// adzuna
	AppID   string `yaml:"app_id"`
	AppKey  string `yaml:"app_key"`
	Country string `yaml:"country"`

	// headhunter
	Token     string `yaml:"token"`
	Area      string `yaml:"area"`
	UserAgent string `yaml:"user_agent"`
}

// RateLimitConfig controls per-provider politeness delays.
type RateLimitConfig struct {
	MinDelay  time.Duration            // minimum gap between requests to the same provider
	Overrides map[string]time.Duration // per-provider overrides, keyed by provider name
}

// MinDelayFor returns the configured delay for the given provider, falling back to MinDelay.
func (r RateLimitConfig) MinDelayFor(provider string) time.Duration {
	if d, ok := r.Overrides[provider]; ok {
		return d
	}
	return r.MinDelay
}

// RetryConfig controls caller-side retries of transient match failures.
type RetryConfig struct {
	MaxRetries int
	BaseDelay  time.Duration
}

// HistoryConfig controls the SQLite run log.
type HistoryConfig struct {
	Enabled   bool
	Path      string
	Retention time.Duration
}

// NotificationConfig controls which notifier is used and its settings.
type NotificationConfig struct {
	Type       string `yaml:"type"`        // "log" or "slack"
	WebhookURL string `yaml:"webhook_url"` // required if type is "slack"
}

// WatchConfig lists the saved searches re-run by the watch command.
type WatchConfig struct {
	Schedule string
	Searches []SearchConfig
}

// SearchConfig is a saved match query.
type SearchConfig struct {
	Name     string   `yaml:"name"`
	Skills   []string `yaml:"skills"`
	Levels   []string `yaml:"levels"`
	Location string   `yaml:"location"`
	Count    int      `yaml:"count"`
}

// rawConfig is used for YAML unmarshaling (snake_case fields and durations as strings).
type rawConfig struct {
	Defaults     DefaultsConfig     `yaml:"defaults"`
	HTTPTimeout  string             `yaml:"http_timeout"`
	Providers    []ProviderConfig   `yaml:"providers"`
	RateLimit    rawRateLimitConfig `yaml:"rate_limit"`
	Retry        rawRetryConfig     `yaml:"retry"`
	History      rawHistoryConfig   `yaml:"history"`
	Notification NotificationConfig `yaml:"notification"`
	Watch        rawWatchConfig     `yaml:"watch"`
}

type rawRateLimitConfig struct {
	MinDelay  string            `yaml:"min_delay"`
	Overrides map[string]string `yaml:"overrides"`
}

type rawRetryConfig struct {
	MaxRetries *int   `yaml:"max_retries"`
	BaseDelay  string `yaml:"base_delay"`
}

type rawHistoryConfig struct {
	Enabled   bool   `yaml:"enabled"`
	Path      string `yaml:"path"`
	Retention string `yaml:"retention"`
}

type rawWatchConfig struct {
	Schedule string         `yaml:"schedule"`
	Searches []SearchConfig `yaml:"searches"`
}

// Load reads and parses the YAML config file at path, validates it, and returns Config.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read config: %w", err)
	}
	return Parse(data)
}

// Parse builds a validated Config from YAML bytes. ${VAR} references are
// expanded from the environment first.
func Parse(data []byte) (*Config, error) {
	expanded := os.ExpandEnv(string(data))

	var raw rawConfig
	if err := yaml.Unmarshal([]byte(expanded), &raw); err != nil {
		return nil, fmt.Errorf("parse config: %w", err)
	}

	httpTimeout, err := parseDuration("http_timeout", raw.HTTPTimeout, 30*time.Second)
	if err != nil {
		return nil, err
	}
	minDelay, err := parseDuration("rate_limit.min_delay", raw.RateLimit.MinDelay, 0)
	if err != nil {
		return nil, err
	}
	overrides := make(map[string]time.Duration)
	for name, value := range raw.RateLimit.Overrides {
		d, err := time.ParseDuration(value)
		if err != nil {
			return nil, fmt.Errorf("parse rate_limit.overrides[%q]: %w", name, err)
		}
		overrides[name] = d
	}
	baseDelay, err := parseDuration("retry.base_delay", raw.Retry.BaseDelay, 5*time.Second)
	if err != nil {
		return nil, err
	}
	retention, err := parseDuration("history.retention", raw.History.Retention, 720*time.Hour)
	if err != nil {
		return nil, err
	}

	maxRetries := 2
	if raw.Retry.MaxRetries != nil {
		maxRetries = *raw.Retry.MaxRetries
	}

	defaults := raw.Defaults
	if defaults.Location == "" {
		defaults.Location = "India"
	}
	if defaults.Count == 0 {
		defaults.Count = 9
	}
	if defaults.MinResultsPerProvider == 0 {
		defaults.MinResultsPerProvider = 15
	}
	if defaults.HoursOld == 0 {
		defaults.HoursOld = 72
	}

	historyPath := raw.History.Path
	if historyPath == "" {
		historyPath = "jobmatch.db"
	}

	schedule := raw.Watch.Schedule
	if schedule == "" {
		schedule = "@every 6h"
	}

	providers := raw.Providers
	for i := range providers {
		providers[i].Type = strings.ToLower(providers[i].Type)
	}

	cfg := &Config{
		Defaults:    defaults,
		HTTPTimeout: httpTimeout,
		Providers:   providers,
		RateLimit: RateLimitConfig{
			MinDelay:  minDelay,
			Overrides: overrides,
		},
		Retry: RetryConfig{
			MaxRetries: maxRetries,
			BaseDelay:  baseDelay,
		},
		History: HistoryConfig{
			Enabled:   raw.History.Enabled,
			Path:      historyPath,
			Retention: retention,
		},
		Notification: raw.Notification,
		Watch: WatchConfig{
			Schedule: schedule,
			Searches: raw.Watch.Searches,
		},
	}

	if err := validate(cfg); err != nil {
		return nil, err
	}

	return cfg, nil
}

// EnabledProviders returns the enabled providers in configuration order.
func (c *Config) EnabledProviders() []ProviderConfig {
	var out []ProviderConfig
	for _, p := range c.Providers {
		if p.Enabled {
			out = append(out, p)
		}
	}
	return out
}

// Search returns the saved search with the given name.
func (c *Config) Search(name string) (SearchConfig, bool) {
	for _, s := range c.Watch.Searches {
		if strings.EqualFold(s.Name, name) {
			return s, true
		}
	}
	return SearchConfig{}, false
}

func parseDuration(key, value string, def time.Duration) (time.Duration, error) {
	if value == "" {
		return def, nil
	}
	d, err := time.ParseDuration(value)
	if err != nil {
		return 0, fmt.Errorf("parse %s %q: %w", key, value, err)
	}
	return d, nil
}

func validate(cfg *Config) error {
	if cfg.Defaults.Count <= 0 {
		return fmt.Errorf("defaults.count must be positive, got %d", cfg.Defaults.Count)
	}
	if cfg.Defaults.MinResultsPerProvider <= 0 {
		return fmt.Errorf("defaults.min_results_per_provider must be positive, got %d", cfg.Defaults.MinResultsPerProvider)
	}
	if cfg.Defaults.HoursOld <= 0 {
		return fmt.Errorf("defaults.hours_old must be positive, got %d", cfg.Defaults.HoursOld)
	}
	if cfg.HTTPTimeout <= 0 {
		return fmt.Errorf("http_timeout must be positive, got %v", cfg.HTTPTimeout)
	}
	if cfg.Retry.MaxRetries < 0 {
		return fmt.Errorf("retry.max_retries must not be negative, got %d", cfg.Retry.MaxRetries)
	}

	enabled := 0
	names := make(map[string]bool)
	for _, p := range cfg.Providers {
		if p.Name == "" {
			return fmt.Errorf("every provider needs a name")
		}
		if names[p.Name] {
			return fmt.Errorf("duplicate provider name %q", p.Name)
		}
		names[p.Name] = true
		if !p.Enabled {
			continue
		}
		enabled++
		if err := validateProvider(p); err != nil {
			return err
		}
	}
	if enabled == 0 {
		return fmt.Errorf("at least one provider must be enabled")
	}

	if cfg.Notification.Type == "slack" {
		if cfg.Notification.WebhookURL == "" {
			return fmt.Errorf("notification.webhook_url is required when type is \"slack\"")
		}
		if !strings.HasPrefix(cfg.Notification.WebhookURL, slackWebhookPrefix) {
			return fmt.Errorf("notification.webhook_url must start with %s", slackWebhookPrefix)
		}
	}

	for i, s := range cfg.Watch.Searches {
		if s.Name == "" {
			return fmt.Errorf("watch.searches[%d]: name is required", i)
		}
		if len(s.Skills) == 0 {
			return fmt.Errorf("watch.searches[%d] %q: at least one skill is required", i, s.Name)
		}
	}

	return nil
}

func validateProvider(p ProviderConfig) error {
	switch p.Type {
	case ProviderJobSpy:
		if p.Site == "" || p.BaseURL == "" {
			return fmt.Errorf("provider %q: site and base_url are required for type jobspy", p.Name)
		}
	case ProviderAdzuna:
		if p.AppID == "" || p.AppKey == "" || p.Country == "" {
			return fmt.Errorf("provider %q: app_id, app_key and country are required for type adzuna", p.Name)
		}
	case ProviderHeadHunter:
	default:
		return fmt.Errorf("provider %q: unknown type %q", p.Name, p.Type)
	}
	return nil
}
