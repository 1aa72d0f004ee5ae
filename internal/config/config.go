// Package config provides configuration types and defaults for mirage.
package config

import (
	"fmt"
	"net/url"
	"os"
	"path/filepath"
	"strings"

	"mirage/internal/log"
	"mirage/internal/tracing"
)

// Config holds all configuration options for mirage.
type Config struct {
	// SearchURL is the search engine format string. It must contain
	// exactly one %s placeholder for the escaped query.
	SearchURL string `mapstructure:"search_url"`

	// HistoryLimit caps the global history list.
	HistoryLimit int `mapstructure:"history_limit"`

	// DownloadsDir is the folder shown on the downloads pages.
	// Default: ~/Downloads
	DownloadsDir string `mapstructure:"downloads_dir"`

	Provider ProviderConfig `mapstructure:"provider"`
	UI       UIConfig       `mapstructure:"ui"`
	Tracing  tracing.Config `mapstructure:"tracing"`
}

// ProviderConfig holds content provider settings.
type ProviderConfig struct {
	// Model is the generative model used to synthesize pages.
	Model string `mapstructure:"model"`

	// APIKeyEnv names the environment variable holding the API key.
	// When the variable is empty mirage falls back to the built-in
	// demo provider.
	APIKeyEnv string `mapstructure:"api_key_env"`

	// TimeoutSeconds bounds a single page generation.
	TimeoutSeconds int `mapstructure:"timeout_seconds"`

	// CacheTTLMinutes controls how long generated pages and suggestion
	// lists are reused. Zero disables the cache.
	CacheTTLMinutes int `mapstructure:"cache_ttl_minutes"`
}

// UIConfig holds user interface configuration options.
type UIConfig struct {
	// MarkdownStyle selects the page rendering style: "dark" (default)
	// or "light".
	MarkdownStyle string `mapstructure:"markdown_style"`

	// SuggestDebounceMs is the typing pause before suggestions are
	// requested.
	SuggestDebounceMs int `mapstructure:"suggest_debounce_ms"`

	// ShowStatusBar toggles the status bar at the bottom.
	ShowStatusBar bool `mapstructure:"show_status_bar"`
}

// DefaultDownloadsDir returns ~/Downloads, or empty string if the home
// directory is unavailable.
func DefaultDownloadsDir() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ""
	}
	return filepath.Join(home, "Downloads")
}

// DefaultTracesFilePath returns the default path for trace file export.
func DefaultTracesFilePath() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ""
	}
	return filepath.Join(home, ".config", "mirage", "traces", "traces.jsonl")
}

// Defaults returns a Config with sensible default values.
func Defaults() Config {
	return Config{
		SearchURL:    "https://www.google.com/search?q=%s",
		HistoryLimit: 100,
		DownloadsDir: DefaultDownloadsDir(),
		Provider: ProviderConfig{
			Model:           "gemini-2.5-flash",
			APIKeyEnv:       "GEMINI_API_KEY",
			TimeoutSeconds:  90,
			CacheTTLMinutes: 15,
		},
		UI: UIConfig{
			MarkdownStyle:     "dark",
			SuggestDebounceMs: 300,
			ShowStatusBar:     true,
		},
		Tracing: tracing.DefaultConfig(),
	}
}

// Validate checks the configuration for errors. Zero values are treated
// as "use the default" and pass.
func Validate(cfg Config) error {
	if cfg.SearchURL != "" {
		if strings.Count(cfg.SearchURL, "%s") != 1 {
			return fmt.Errorf("search_url must contain exactly one %%s placeholder, got %q", cfg.SearchURL)
		}
		if _, err := url.Parse(fmt.Sprintf(cfg.SearchURL, "probe")); err != nil {
			return fmt.Errorf("search_url is not a valid URL template: %w", err)
		}
	}

	if cfg.HistoryLimit < 0 {
		return fmt.Errorf("history_limit must not be negative, got %d", cfg.HistoryLimit)
	}

	if cfg.Provider.TimeoutSeconds < 0 {
		return fmt.Errorf("provider.timeout_seconds must not be negative, got %d", cfg.Provider.TimeoutSeconds)
	}
	if cfg.Provider.CacheTTLMinutes < 0 {
		return fmt.Errorf("provider.cache_ttl_minutes must not be negative, got %d", cfg.Provider.CacheTTLMinutes)
	}

	if cfg.UI.MarkdownStyle != "" && cfg.UI.MarkdownStyle != "dark" && cfg.UI.MarkdownStyle != "light" {
		return fmt.Errorf("ui.markdown_style must be \"dark\" or \"light\", got %q", cfg.UI.MarkdownStyle)
	}
	if cfg.UI.SuggestDebounceMs < 0 {
		return fmt.Errorf("ui.suggest_debounce_ms must not be negative, got %d", cfg.UI.SuggestDebounceMs)
	}

	return ValidateTracing(cfg.Tracing)
}

// ValidateTracing checks tracing configuration for errors. Empty values
// use defaults.
func ValidateTracing(tc tracing.Config) error {
	if tc.SampleRate < 0.0 || tc.SampleRate > 1.0 {
		return fmt.Errorf("tracing.sample_rate must be between 0.0 and 1.0, got %v", tc.SampleRate)
	}

	switch tc.Exporter {
	case "", "none", "file", "stdout", "otlp":
	default:
		return fmt.Errorf("tracing.exporter must be \"none\", \"file\", \"stdout\", or \"otlp\", got %q", tc.Exporter)
	}

	if tc.Enabled {
		if tc.Exporter == "file" && tc.FilePath == "" {
			return fmt.Errorf("tracing.file_path is required when exporter is \"file\"")
		}
		if tc.Exporter == "otlp" && tc.OTLPEndpoint == "" {
			return fmt.Errorf("tracing.otlp_endpoint is required when exporter is \"otlp\"")
		}
	}

	return nil
}

// DefaultConfigTemplate returns the default config as a YAML string with comments.
func DefaultConfigTemplate() string {
	return `# Mirage Configuration

# Search engine used for queries typed into the omnibox.
# Must contain exactly one %s placeholder for the escaped query.
search_url: "https://www.google.com/search?q=%s"

# Maximum number of entries kept in browsing history (about:history)
history_limit: 100

# Folder shown on the downloads pages (default: ~/Downloads)
# downloads_dir: /home/you/Downloads

# Content provider settings
provider:
  # Model used to synthesize pages
  model: gemini-2.5-flash

  # Environment variable holding the API key. When unset or empty,
  # mirage runs against a built-in demo provider instead.
  api_key_env: GEMINI_API_KEY

  # Per-page generation timeout in seconds
  timeout_seconds: 90

  # How long generated pages are reused, in minutes (0 disables caching)
  cache_ttl_minutes: 15

# UI settings
ui:
  # markdown_style: dark     # Page rendering style: "dark" (default) or "light"
  suggest_debounce_ms: 300   # Typing pause before suggestions are requested
  show_status_bar: true      # Show status bar at bottom

# Tracing configuration
# Gives visibility into navigation and page generation timing
# tracing:
#   enabled: false                 # Enable/disable tracing (default: false)
#   exporter: file                 # Export backend: none, file, stdout, otlp
#   file_path: ~/.config/mirage/traces/traces.jsonl
#   otlp_endpoint: localhost:4317  # OTLP collector endpoint (for otlp exporter)
#   sample_rate: 1.0               # Trace sampling rate 0.0-1.0
`
}

// WriteDefaultConfig creates a config file at the given path with default
// settings and comments. Creates the parent directory if it doesn't exist.
func WriteDefaultConfig(configPath string) error {
	log.Debug(log.CatConfig, "Writing default config", "path", configPath)

	dir := filepath.Dir(configPath)
	if err := os.MkdirAll(dir, 0o750); err != nil {
		log.ErrorErr(log.CatConfig, "Failed to create config directory", err, "dir", dir)
		return fmt.Errorf("creating config directory: %w", err)
	}

	if err := os.WriteFile(configPath, []byte(DefaultConfigTemplate()), 0o600); err != nil {
		log.ErrorErr(log.CatConfig, "Failed to write config file", err, "path", configPath)
		return fmt.Errorf("writing config file: %w", err)
	}

	log.Info(log.CatConfig, "Created default config", "path", configPath)
	return nil
}
